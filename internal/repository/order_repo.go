package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/almondloverr/CRM/internal/domain"
)

// OrderFilter is the query surface of the order list view. Predicates
// compose with AND; the free-text search ORs over the order number and
// the technical specification short description.
type OrderFilter struct {
	SearchQuery   string
	Status        domain.OrderStatus
	FurnitureType domain.FurnitureType
	PaymentStatus domain.PaymentStatus
	StartDate     *time.Time
	EndDate       *time.Time
}

// OrderGraph is the full set of rows the refactor workflow touches.
type OrderGraph struct {
	Order                  *domain.Order
	Contract               *domain.Contract
	Client                 *domain.Client
	TechnicalSpecification *domain.TechnicalSpecification
	Materials              []domain.Material
	PickupDelivery         *domain.PickupDelivery
}

// DashboardStats backs the main page counters.
type DashboardStats struct {
	TotalOrders        int64   `json:"total_orders"`
	TotalEmployees     int64   `json:"total_employees"`
	TotalContractValue float64 `json:"total_contract_value"`
	CompletedCount     int64   `json:"completed_count"`
	QueueCount         int64   `json:"queue_count"`
	InProgressCount    int64   `json:"in_progress_count"`
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Transaction runs fn against a repository bound to one transaction.
// The intake workflow uses it for the atomic mode; the legacy mode
// calls the plain methods one by one.
func (r *OrderRepository) Transaction(ctx context.Context, fn func(tx *OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OrderRepository{db: tx})
	})
}

func (r *OrderRepository) CreateClient(ctx context.Context, c *domain.Client) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *OrderRepository) CreateContract(ctx context.Context, c *domain.Contract) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *OrderRepository) CreateOrder(ctx context.Context, o *domain.Order) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error)
}

func (r *OrderRepository) CreateTechnicalSpecification(ctx context.Context, ts *domain.TechnicalSpecification) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(ts).Error)
}

func (r *OrderRepository) CreateMaterial(ctx context.Context, m *domain.Material) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error)
}

func (r *OrderRepository) CreatePickupDelivery(ctx context.Context, pd *domain.PickupDelivery) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(pd).Error)
}

func (r *OrderRepository) GetEmployee(ctx context.Context, id uint) (*domain.Employee, error) {
	var e domain.Employee
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// GetGraph loads an order and everything the refactor workflow edits.
func (r *OrderRepository) GetGraph(ctx context.Context, orderID uint) (*OrderGraph, error) {
	var order domain.Order
	tx := r.db.WithContext(ctx).
		Preload("Contract").
		Preload("Contract.Client").
		Preload("TechnicalSpecifications").
		Preload("Materials").
		Preload("PickupDeliveries").
		First(&order, orderID)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}

	g := &OrderGraph{
		Order:     &order,
		Contract:  &order.Contract,
		Client:    &order.Contract.Client,
		Materials: order.Materials,
	}
	if len(order.TechnicalSpecifications) > 0 {
		g.TechnicalSpecification = &order.TechnicalSpecifications[0]
	}
	if len(order.PickupDeliveries) > 0 {
		g.PickupDelivery = &order.PickupDeliveries[0]
	}
	return g, nil
}

func (r *OrderRepository) SaveClient(ctx context.Context, c *domain.Client) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error)
}

func (r *OrderRepository) SaveContract(ctx context.Context, c *domain.Contract) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error)
}

func (r *OrderRepository) SaveOrder(ctx context.Context, o *domain.Order) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(o).Error)
}

func (r *OrderRepository) SaveTechnicalSpecification(ctx context.Context, ts *domain.TechnicalSpecification) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(ts).Error)
}

func (r *OrderRepository) SaveMaterial(ctx context.Context, m *domain.Material) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error)
}

func (r *OrderRepository) SavePickupDelivery(ctx context.Context, pd *domain.PickupDelivery) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(pd).Error)
}

// Delete removes an order; dependents go with it via cascade keys.
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Order{}, id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List applies the filter and returns orders with every relation the
// row projection needs, ordered by id. Filtering runs as an id
// sub-select so that join fan-out never duplicates rows.
func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Distinct("orders.id").
		Joins("JOIN contracts ON contracts.id = orders.contract_id").
		Joins("LEFT JOIN technical_specifications ON technical_specifications.order_id = orders.id").
		Joins("LEFT JOIN pickup_deliveries ON pickup_deliveries.order_id = orders.id")

	if f.SearchQuery != "" {
		pat := "%" + f.SearchQuery + "%"
		q = q.Where(
			r.db.Where("LOWER(orders.number) LIKE LOWER(?)", pat).
				Or("LOWER(technical_specifications.short_descr) LIKE LOWER(?)", pat),
		)
	}
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	if f.FurnitureType != "" {
		q = q.Where("technical_specifications.furniture_type1 = ?", f.FurnitureType)
	}

	switch f.PaymentStatus {
	case domain.PaymentAwaitingPrepayment:
		q = q.Where("contracts.is_prepayment_paid = ? AND contracts.is_postpayment_paid = ?", false, false)
	case domain.PaymentPrepaymentMade:
		q = q.Where("contracts.is_prepayment_paid = ? AND contracts.is_postpayment_paid = ?", true, false).
			Where("pickup_deliveries.delivery_date IS NULL")
	case domain.PaymentAwaitingPayment:
		q = q.Where("contracts.is_prepayment_paid = ? AND contracts.is_postpayment_paid = ?", true, false).
			Where("pickup_deliveries.delivery_date IS NOT NULL")
	case domain.PaymentDone:
		q = q.Where("contracts.is_postpayment_paid = ?", true)
	}

	if f.StartDate != nil && f.EndDate != nil {
		q = q.Where("contracts.create_date BETWEEN ? AND ?", *f.StartDate, *f.EndDate)
	}

	var ids []uint
	if err := q.Order("orders.id").Pluck("orders.id", &ids).Error; err != nil {
		return nil, translate(err)
	}
	if len(ids) == 0 {
		return []domain.Order{}, nil
	}

	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Contract").
		Preload("Manager").
		Preload("Executor1").
		Preload("Executor2").
		Preload("Executor3").
		Preload("TechnicalSpecifications").
		Preload("PickupDeliveries").
		Where("id IN ?", ids).
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&n).Error
	return n, translate(err)
}

func (r *OrderRepository) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, translate(err)
	}
	if err := db.Model(&domain.Employee{}).Count(&stats.TotalEmployees).Error; err != nil {
		return nil, translate(err)
	}

	var total *float64
	err := db.Model(&domain.Order{}).
		Joins("JOIN contracts ON contracts.id = orders.contract_id").
		Select("SUM(contracts.total_value)").
		Scan(&total).Error
	if err != nil {
		return nil, translate(err)
	}
	if total != nil {
		stats.TotalContractValue = *total
	}

	countByStatus := func(statuses []domain.OrderStatus, dst *int64) error {
		return db.Model(&domain.Order{}).Where("status IN ?", statuses).Count(dst).Error
	}
	if err := countByStatus([]domain.OrderStatus{domain.OrderClosed, domain.OrderDelivered}, &stats.CompletedCount); err != nil {
		return nil, translate(err)
	}
	if err := countByStatus([]domain.OrderStatus{
		domain.OrderToDo, domain.OrderRegistered, domain.OrderToPickup, domain.OrderIsPicked, domain.OrderToDeliver,
	}, &stats.QueueCount); err != nil {
		return nil, translate(err)
	}
	if err := countByStatus([]domain.OrderStatus{
		domain.OrderInProgress, domain.OrderInReview, domain.OrderSuspended,
	}, &stats.InProgressCount); err != nil {
		return nil, translate(err)
	}

	return &stats, nil
}
