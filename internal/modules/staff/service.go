package staff

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/almondloverr/CRM/internal/domain"
	"github.com/almondloverr/CRM/internal/metrics"
	"github.com/almondloverr/CRM/internal/pkg/format"
	"github.com/almondloverr/CRM/internal/pkg/names"
	"github.com/almondloverr/CRM/internal/pkg/validator"
	"github.com/almondloverr/CRM/internal/repository"
	"github.com/almondloverr/CRM/internal/uploads"
)

const formDateLayout = "2006-01-02"

type Service struct {
	employees *repository.EmployeeRepository
	users     *repository.UserRepository
	uploads   *uploads.Service
}

func NewService(employees *repository.EmployeeRepository, users *repository.UserRepository, up *uploads.Service) *Service {
	return &Service{employees: employees, users: users, uploads: up}
}

// Add creates an employee card, optionally together with a login
// identity when username and password are submitted.
func (s *Service) Add(ctx context.Context, form *EmployeeForm, avatar *multipart.FileHeader) (uint, error) {
	if errs := validator.Validate(form); errs != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	employmentDate, err := parseDate("employment_date", form.EmploymentDate)
	if err != nil {
		return 0, err
	}
	passportIssue, err := parseDate("passport_issue_date", form.PassportIssueDate)
	if err != nil {
		return 0, err
	}
	terminationDate, err := parseDatePtr("termination_date", form.TerminationDate)
	if err != nil {
		return 0, err
	}
	salary, err := parseSalary(form.Salary)
	if err != nil {
		return 0, err
	}

	avatarURL := ""
	if avatar != nil {
		avatarURL, err = s.uploads.SaveImage(avatar, "avatars")
		if err != nil {
			return 0, fmt.Errorf("%w: avatar: %v", ErrValidation, err)
		}
	}

	var userID *uint
	if form.Username != "" && form.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
		if err != nil {
			return 0, err
		}
		user := &domain.User{
			Username:     form.Username,
			PasswordHash: string(hash),
			IsStaff:      form.IsStaff == "true",
		}
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return 0, ErrUsernameTaken
			}
			return 0, err
		}
		userID = &user.ID
	}

	name := names.Split(form.FullName)
	employee := &domain.Employee{
		UserID:     userID,
		FirstName:  name.FirstName,
		LastName:   name.LastName,
		MiddleName: name.MiddleName,

		PositionID:   form.Position,
		DepartmentID: form.Department,
		Status:       domain.EmployeeStatus(form.Status),

		EmploymentDate:  employmentDate,
		TerminationDate: terminationDate,

		Citizenship:         form.Citizenship,
		ResidenceAddress:    form.ResidenceAddress,
		RegistrationAddress: form.RegistrationAddress,

		PassportSeries:   form.PassportSeries,
		PassportNumber:   form.PassportNumber,
		PassportIssuedBy: form.PassportIssuedBy,
		PassportIssue:    passportIssue,

		TypeSalary:     domain.SalaryType(form.TypeSalary),
		Salary:         salary,
		PaymentDetails: form.PaymentDetails,

		AvatarURL: avatarURL,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return 0, err
	}

	metrics.EmployeesCreated.Inc()
	return employee.ID, nil
}

// Refactor applies a partial update to an employee card. A fresh
// avatar file replaces the stored one; absence keeps it.
func (s *Service) Refactor(ctx context.Context, id uint, form *RefactorEmployeeForm, avatar *multipart.FileHeader) error {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	if form.FullName != nil && *form.FullName != "" {
		name := names.Split(*form.FullName)
		e.FirstName, e.LastName, e.MiddleName = name.FirstName, name.LastName, name.MiddleName
	}
	if form.Position != nil && *form.Position != 0 {
		e.PositionID = *form.Position
	}
	if form.Department != nil && *form.Department != 0 {
		e.DepartmentID = *form.Department
	}
	if form.Status != nil && *form.Status != "" {
		e.Status = domain.EmployeeStatus(*form.Status)
	}
	if err := setDate(&e.EmploymentDate, "employment_date", form.EmploymentDate); err != nil {
		return err
	}
	if err := setDate(&e.PassportIssue, "passport_issue_date", form.PassportIssueDate); err != nil {
		return err
	}
	if form.TerminationDate != nil && *form.TerminationDate != "" {
		t, err := parseDate("termination_date", *form.TerminationDate)
		if err != nil {
			return err
		}
		e.TerminationDate = &t
	}
	setString(&e.Citizenship, form.Citizenship)
	setString(&e.ResidenceAddress, form.ResidenceAddress)
	setString(&e.RegistrationAddress, form.RegistrationAddress)
	setString(&e.PassportSeries, form.PassportSeries)
	setString(&e.PassportNumber, form.PassportNumber)
	setString(&e.PassportIssuedBy, form.PassportIssuedBy)
	setString(&e.PaymentDetails, form.PaymentDetails)
	if form.TypeSalary != nil && *form.TypeSalary != "" {
		e.TypeSalary = domain.SalaryType(*form.TypeSalary)
	}
	if form.Salary != nil && *form.Salary != "" {
		salary, err := parseSalary(*form.Salary)
		if err != nil {
			return err
		}
		e.Salary = salary
	}

	if avatar != nil {
		url, err := s.uploads.SaveImage(avatar, "avatars")
		if err != nil {
			return fmt.Errorf("%w: avatar: %v", ErrValidation, err)
		}
		e.AvatarURL = url
	}

	return s.employees.Save(ctx, e)
}

// Delete removes the employee card; orders and activities referencing
// it go away through cascade keys.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

// List returns filtered staff rows plus the unfiltered table count.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResponse, error) {
	f := repository.StaffFilter{
		SearchName:   q.SearchName,
		Status:       domain.EmployeeStatus(q.Status),
		DepartmentID: q.Department,
		PaymentType:  domain.SalaryType(q.PaymentType),
	}

	list, err := s.employees.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.employees.Count(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]EmployeeRow, 0, len(list))
	for i := range list {
		rows = append(rows, buildRow(&list[i]))
	}
	return &ListResponse{Data: rows, TotalCount: total}, nil
}

// Directory is the /active/ payload: the full employee roster with
// the reference lists, readable at any access level.
type Directory struct {
	Employees   []EmployeeRow       `json:"employees"`
	Departments []domain.Department `json:"departments"`
	Positions   []domain.JobTitle   `json:"positions"`
}

func (s *Service) Directory(ctx context.Context) (*Directory, error) {
	list, err := s.employees.List(ctx, repository.StaffFilter{})
	if err != nil {
		return nil, err
	}
	departments, err := s.employees.Departments(ctx)
	if err != nil {
		return nil, err
	}
	positions, err := s.employees.JobTitles(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]EmployeeRow, 0, len(list))
	for i := range list {
		rows = append(rows, buildRow(&list[i]))
	}
	return &Directory{Employees: rows, Departments: departments, Positions: positions}, nil
}

// FormChoices are the reference lists behind the add/edit employee
// form selects.
type FormChoices struct {
	Departments []domain.Department `json:"departments"`
	Positions   []domain.JobTitle   `json:"positions"`
}

func (s *Service) FormChoices(ctx context.Context) (*FormChoices, error) {
	departments, err := s.employees.Departments(ctx)
	if err != nil {
		return nil, err
	}
	positions, err := s.employees.JobTitles(ctx)
	if err != nil {
		return nil, err
	}
	return &FormChoices{Departments: departments, Positions: positions}, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return e, nil
}

func buildRow(e *domain.Employee) EmployeeRow {
	return EmployeeRow{
		ID:             e.ID,
		AvatarURL:      e.AvatarURL,
		FullName:       e.FullName(),
		Position:       e.Position.Name,
		Department:     e.Department.Name,
		Status:         e.Status.Label(),
		EmploymentDate: format.Date(e.EmploymentDate),
		TypeSalary:     e.TypeSalary.Label(),
		Salary:         e.Salary,
	}
}

func parseSalary(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, ErrInvalidSalary
	}
	return &n, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(formDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad %s", ErrValidation, field)
	}
	return t, nil
}

func parseDatePtr(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func setString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func setDate(dst *time.Time, field string, src *string) error {
	if src == nil || *src == "" {
		return nil
	}
	t, err := parseDate(field, *src)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}
