package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/almondloverr/CRM/internal/domain"
)

// StaffFilter is the query surface of the staff list view. All
// predicates are ANDed; the name search ORs across the three name
// columns for every whitespace-separated term.
type StaffFilter struct {
	SearchName   string
	Status       domain.EmployeeStatus
	DepartmentID uint
	PaymentType  domain.SalaryType
}

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

func (r *EmployeeRepository) Save(ctx context.Context, e *domain.Employee) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uint) (*domain.Employee, error) {
	var e domain.Employee
	tx := r.db.WithContext(ctx).
		Preload("Position").
		Preload("Department").
		First(&e, id)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return &e, nil
}

// GetByUserID resolves the employee card linked to a login identity.
// Called by the access gate on every protected request.
func (r *EmployeeRepository) GetByUserID(ctx context.Context, userID uint) (*domain.Employee, error) {
	var e domain.Employee
	tx := r.db.WithContext(ctx).
		Preload("Position").
		Preload("Department").
		Where("user_id = ?", userID).
		First(&e)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return &e, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) List(ctx context.Context, f StaffFilter) ([]domain.Employee, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Preload("Position").
		Preload("Department")

	if f.SearchName != "" {
		for _, term := range strings.Fields(f.SearchName) {
			pat := "%" + term + "%"
			q = q.Where(
				r.db.Where("LOWER(first_name) LIKE LOWER(?)", pat).
					Or("LOWER(last_name) LIKE LOWER(?)", pat).
					Or("LOWER(middle_name) LIKE LOWER(?)", pat),
			)
		}
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DepartmentID != 0 {
		q = q.Where("department_id = ?", f.DepartmentID)
	}
	if f.PaymentType != "" {
		q = q.Where("type_salary = ?", f.PaymentType)
	}

	var employees []domain.Employee
	if err := q.Order("id").Find(&employees).Error; err != nil {
		return nil, translate(err)
	}
	return employees, nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).Count(&n).Error
	return n, translate(err)
}

// ListByPositionName returns employees holding the named job title,
// used to populate the manager/executor pickers on intake forms.
func (r *EmployeeRepository) ListByPositionName(ctx context.Context, position string) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Joins("JOIN job_titles ON job_titles.id = employees.position_id").
		Where("job_titles.name = ?", position).
		Preload("Position").
		Order("employees.id").
		Find(&employees).Error
	if err != nil {
		return nil, translate(err)
	}
	return employees, nil
}

func (r *EmployeeRepository) Departments(ctx context.Context) ([]domain.Department, error) {
	var out []domain.Department
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, translate(err)
}

func (r *EmployeeRepository) JobTitles(ctx context.Context) ([]domain.JobTitle, error) {
	var out []domain.JobTitle
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, translate(err)
}
