package domain

import (
	"strings"
	"time"
)

// Department is a production department (упаковка, сборка, ...).
type Department struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100"`
	Description string `json:"description" gorm:"type:text"`
}

// JobTitle carries the access level that gates protected operations.
type JobTitle struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100"`
	Description string `json:"description" gorm:"type:text"`
	MinSalary   *int   `json:"min_salary,omitempty"`
	MaxSalary   *int   `json:"max_salary,omitempty"`
	AccessLvl   *int   `json:"access_lvl"`
}

type EmployeeStatus string

const (
	EmployeeWorking    EmployeeStatus = "working"
	EmployeeNotWorking EmployeeStatus = "not_working"
	EmployeeProbation  EmployeeStatus = "probation"
)

var employeeStatusLabels = map[EmployeeStatus]string{
	EmployeeWorking:    "Работает",
	EmployeeNotWorking: "Уволен",
	EmployeeProbation:  "Испытательный срок",
}

func (s EmployeeStatus) Label() string { return employeeStatusLabels[s] }

type SalaryType string

const (
	SalaryFixed    SalaryType = "fixed"
	SalaryNotFixed SalaryType = "not_fixed"
)

var salaryTypeLabels = map[SalaryType]string{
	SalaryFixed:    "Фиксированный",
	SalaryNotFixed: "Сдельный",
}

func (t SalaryType) Label() string { return salaryTypeLabels[t] }

type Employee struct {
	ID     uint  `json:"id" gorm:"primaryKey"`
	UserID *uint `json:"user_id,omitempty" gorm:"uniqueIndex"`
	User   *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	FirstName  string `json:"first_name" gorm:"size:100"`
	LastName   string `json:"last_name" gorm:"size:100"`
	MiddleName string `json:"middle_name" gorm:"size:100"`

	PositionID   uint       `json:"position_id" gorm:"not null"`
	Position     JobTitle   `json:"position" gorm:"foreignKey:PositionID;constraint:OnDelete:CASCADE"`
	DepartmentID uint       `json:"department_id" gorm:"not null"`
	Department   Department `json:"department" gorm:"constraint:OnDelete:CASCADE"`

	Status          EmployeeStatus `json:"status" gorm:"size:50"`
	EmploymentDate  time.Time      `json:"employment_date" gorm:"type:date"`
	TerminationDate *time.Time     `json:"termination_date,omitempty" gorm:"type:date"`

	Citizenship         string `json:"citizenship" gorm:"size:50"`
	ResidenceAddress    string `json:"residence_address" gorm:"size:255"`
	RegistrationAddress string `json:"registration_address" gorm:"size:255"`

	PassportSeries   string    `json:"passport_series" gorm:"size:10"`
	PassportNumber   string    `json:"passport_number" gorm:"size:50"`
	PassportIssuedBy string    `json:"passport_issued_by" gorm:"size:255"`
	PassportIssue    time.Time `json:"passport_issue_date" gorm:"column:passport_issue_date;type:date"`

	TypeSalary     SalaryType `json:"type_salary" gorm:"size:50"`
	Salary         *int       `json:"salary,omitempty"`
	PaymentDetails string     `json:"payment_details" gorm:"type:text"`

	AvatarURL string `json:"avatar_url" gorm:"size:255"`
}

// FullName returns "Фамилия Имя Отчество" with empty parts skipped.
func (e *Employee) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.LastName, e.FirstName, e.MiddleName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// DisplayName is the short form used in order rows ("Имя Фамилия").
func (e *Employee) DisplayName() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{e.FirstName, e.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// AccessLevel resolves the employee's access level through the job
// title. A missing job title or a NULL access_lvl counts as level 0.
func (e *Employee) AccessLevel() int {
	if e.Position.AccessLvl == nil {
		return 0
	}
	return *e.Position.AccessLvl
}
