package staff

// EmployeeForm is the typed add_employee submission. Salary stays a
// string so a non-numeric value can be rejected with the legacy
// message instead of a binding error.
type EmployeeForm struct {
	FullName string `form:"full_name" binding:"required"`

	Position   uint   `form:"position" binding:"required"`
	Department uint   `form:"department" binding:"required"`
	Status     string `form:"status" binding:"required,oneof=working not_working probation"`

	EmploymentDate  string `form:"employment_date" binding:"required"`
	TerminationDate string `form:"termination_date"`

	Citizenship         string `form:"citizenship"`
	ResidenceAddress    string `form:"residence_address"`
	RegistrationAddress string `form:"registration_address"`

	PassportSeries    string `form:"passport_series" binding:"required"`
	PassportNumber    string `form:"passport_number" binding:"required"`
	PassportIssuedBy  string `form:"passport_issued_by" binding:"required"`
	PassportIssueDate string `form:"passport_issue_date" binding:"required"`

	TypeSalary     string `form:"type_salary" binding:"required,oneof=fixed not_fixed"`
	Salary         string `form:"salary"`
	PaymentDetails string `form:"payment_details"`

	// optional login identity
	Username string `form:"username"`
	Password string `form:"password"`
	IsStaff  string `form:"is_staff"`
}

// RefactorEmployeeForm mirrors EmployeeForm with partial-update
// semantics: nil keeps the stored value.
type RefactorEmployeeForm struct {
	FullName *string `form:"full_name"`

	Position   *uint   `form:"position"`
	Department *uint   `form:"department"`
	Status     *string `form:"status" binding:"omitempty,oneof=working not_working probation"`

	EmploymentDate  *string `form:"employment_date"`
	TerminationDate *string `form:"termination_date"`

	Citizenship         *string `form:"citizenship"`
	ResidenceAddress    *string `form:"residence_address"`
	RegistrationAddress *string `form:"registration_address"`

	PassportSeries    *string `form:"passport_series"`
	PassportNumber    *string `form:"passport_number"`
	PassportIssuedBy  *string `form:"passport_issued_by"`
	PassportIssueDate *string `form:"passport_issue_date"`

	TypeSalary     *string `form:"type_salary" binding:"omitempty,oneof=fixed not_fixed"`
	Salary         *string `form:"salary"`
	PaymentDetails *string `form:"payment_details"`
}

// ListQuery are the /staff/ filter parameters.
type ListQuery struct {
	SearchName  string `form:"search_name"`
	Status      string `form:"status" binding:"omitempty,oneof=working not_working probation"`
	Department  uint   `form:"department"`
	PaymentType string `form:"payment_type" binding:"omitempty,oneof=fixed not_fixed"`
}

// EmployeeRow is one row of the staff list projection.
type EmployeeRow struct {
	ID             uint   `json:"id"`
	AvatarURL      string `json:"avatar_url"`
	FullName       string `json:"full_name"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	Status         string `json:"status"`
	EmploymentDate string `json:"employment_date"`
	TypeSalary     string `json:"type_salary"`
	Salary         *int   `json:"salary,omitempty"`
}

// ListResponse is the AJAX payload of /staff/.
type ListResponse struct {
	Data       []EmployeeRow `json:"data"`
	TotalCount int64         `json:"total_count"`
}
