package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/almondloverr/CRM/internal/database"
	"github.com/almondloverr/CRM/internal/domain"
	"github.com/almondloverr/CRM/internal/repository"
	"github.com/almondloverr/CRM/internal/uploads"
)

type testEnv struct {
	db        *gorm.DB
	service   *Service
	managerID uint
	workerID  uint
	worker2ID uint
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	dept := domain.Department{Name: "Производство"}
	require.NoError(t, db.Create(&dept).Error)

	managerLvl, workerLvl := 2, 1
	managerTitle := domain.JobTitle{Name: "Менеджер", AccessLvl: &managerLvl}
	workerTitle := domain.JobTitle{Name: "Рабочий", AccessLvl: &workerLvl}
	require.NoError(t, db.Create(&managerTitle).Error)
	require.NoError(t, db.Create(&workerTitle).Error)

	manager := domain.Employee{
		FirstName: "Иван", LastName: "Петров",
		PositionID: managerTitle.ID, DepartmentID: dept.ID,
		Status: domain.EmployeeWorking,
	}
	worker := domain.Employee{
		FirstName: "Сергей", LastName: "Кузнецов",
		PositionID: workerTitle.ID, DepartmentID: dept.ID,
		Status: domain.EmployeeWorking,
	}
	worker2 := domain.Employee{
		FirstName: "Олег", LastName: "Смирнов",
		PositionID: workerTitle.ID, DepartmentID: dept.ID,
		Status: domain.EmployeeWorking,
	}
	require.NoError(t, db.Create(&manager).Error)
	require.NoError(t, db.Create(&worker).Error)
	require.NoError(t, db.Create(&worker2).Error)

	up := uploads.NewService(t.TempDir(), "/static/uploads")
	svc := NewService(
		repository.NewOrderRepository(db),
		repository.NewEmployeeRepository(db),
		up,
		true,
	)

	return &testEnv{
		db:        db,
		service:   svc,
		managerID: manager.ID,
		workerID:  worker.ID,
		worker2ID: worker2.ID,
	}
}

func (e *testEnv) baseForm() *IntakeForm {
	return &IntakeForm{
		Number:    "З-101",
		Manager:   e.managerID,
		Executors: fmt.Sprintf("%d,%d", e.workerID, e.worker2ID),
		Source:    "site",

		ContractNum:     "Д-101",
		CreateDate:      "2026-03-01",
		CompletionDate:  "2026-03-15",
		TotalValue:      150000,
		PaymentType:     "cash",
		PrepaymentShare: 30,
		PrepaymentValue: 45000,

		FullName:      "Сидорова Анна Павловна",
		ContactNumber: "+79990001122",
		Address:       "г. Казань, ул. Ленина, 5",

		ItemsQty:       1,
		ShortDescr:     "Диван угловой",
		FurnitureType1: "soft",
		WorkTypes:      "reupholster,restoration",

		MaterialName: "Велюр синий",
		MaterialCost: 12000,
		Stock:        "true",

		PickupType:   "pickup",
		DeliveryType: "delivery",
	}
}

func TestIntakeCreatesFullGraph(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	form := env.baseForm()
	form.IsPrepaymentPaid = "true"

	id, err := env.service.Intake(ctx, form, Photos{})
	require.NoError(t, err)
	require.NotZero(t, id)

	g, err := env.service.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderRegistered, g.Order.Status)
	assert.Equal(t, env.managerID, g.Order.ManagerID)
	require.NotNil(t, g.Order.Executor1ID)
	require.NotNil(t, g.Order.Executor2ID)
	assert.Equal(t, env.workerID, *g.Order.Executor1ID)
	assert.Equal(t, env.worker2ID, *g.Order.Executor2ID)
	assert.Nil(t, g.Order.Executor3ID)

	assert.Equal(t, 14, g.Contract.Duration)
	assert.Equal(t, float64(150000), g.Contract.TotalValue)
	assert.Equal(t, g.Contract.TotalValue, g.Contract.TotalWorkCost)
	assert.True(t, g.Contract.IsPrepaymentPaid)
	assert.False(t, g.Contract.IsPostpaymentPaid)

	assert.Equal(t, "Сидорова", g.Client.LastName)
	assert.Equal(t, "Анна", g.Client.FirstName)
	assert.Equal(t, "Павловна", g.Client.MiddleName)

	require.NotNil(t, g.TechnicalSpecification)
	assert.Equal(t, domain.WorkReupholster, g.TechnicalSpecification.WorkType1)
	require.NotNil(t, g.TechnicalSpecification.WorkType2)
	assert.Equal(t, domain.WorkRestoration, *g.TechnicalSpecification.WorkType2)

	require.Len(t, g.Materials, 1)
	assert.True(t, g.Materials[0].InStock)
	assert.Equal(t, domain.MaterialNotOrdered, g.Materials[0].OrderStatus)

	require.NotNil(t, g.PickupDelivery)
	assert.Equal(t, domain.PickupCourier, g.PickupDelivery.PickupType)
	assert.Equal(t, domain.DeliveryCourier, g.PickupDelivery.DeliveryType)
}

func TestIntakeIgnoresSubmittedStatus(t *testing.T) {
	env := newTestEnv(t)

	// the form carries no status field at all; the workflow pins it
	id, err := env.service.Intake(context.Background(), env.baseForm(), Photos{})
	require.NoError(t, err)

	var order domain.Order
	require.NoError(t, env.db.First(&order, id).Error)
	assert.Equal(t, domain.OrderRegistered, order.Status)
}

func TestIntakeUnknownManagerRollsBack(t *testing.T) {
	env := newTestEnv(t)

	form := env.baseForm()
	form.Manager = 9999

	_, err := env.service.Intake(context.Background(), form, Photos{})
	require.ErrorIs(t, err, ErrEmployeeNotFound)

	var clients, contracts int64
	env.db.Model(&domain.Client{}).Count(&clients)
	env.db.Model(&domain.Contract{}).Count(&contracts)
	assert.Zero(t, clients)
	assert.Zero(t, contracts)
}

func TestIntakeBadDate(t *testing.T) {
	env := newTestEnv(t)

	form := env.baseForm()
	form.CreateDate = "01.03.2026"

	_, err := env.service.Intake(context.Background(), form, Photos{})
	require.ErrorIs(t, err, ErrValidation)
}

func TestRefactorPartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	form := env.baseForm()
	form.IsPrepaymentPaid = "true"
	id, err := env.service.Intake(ctx, form, Photos{})
	require.NoError(t, err)

	// second material row must stay untouched by the edit
	second := domain.Material{OrderID: id, Name: "Фанера"}
	require.NoError(t, env.db.Create(&second).Error)

	newNumber := "З-101/2"
	newTotal := 180000.0
	newStatus := "in_progress"
	newMaterial := "Велюр зеленый"
	edit := &RefactorForm{
		Number:       &newNumber,
		TotalValue:   &newTotal,
		Status:       &newStatus,
		MaterialName: &newMaterial,
		Executors:    fmt.Sprintf("%d", env.worker2ID),
		// prepayment checkbox not ticked this time
	}
	require.NoError(t, env.service.Refactor(ctx, id, edit, Photos{}))

	g, err := env.service.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "З-101/2", g.Order.Number)
	assert.Equal(t, domain.OrderInProgress, g.Order.Status)
	assert.Equal(t, float64(180000), g.Contract.TotalValue)

	// untouched fields survive
	assert.Equal(t, "Д-101", g.Contract.Num)
	assert.Equal(t, "Сидорова", g.Client.LastName)
	assert.Equal(t, 14, g.Contract.Duration)

	// flags recompute from absence
	assert.False(t, g.Contract.IsPrepaymentPaid)
	assert.False(t, g.Materials[0].InStock)

	// executors recompute from the submitted list
	require.NotNil(t, g.Order.Executor1ID)
	assert.Equal(t, env.worker2ID, *g.Order.Executor1ID)
	assert.Nil(t, g.Order.Executor2ID)

	// only the first material row changes
	require.Len(t, g.Materials, 2)
	assert.Equal(t, "Велюр зеленый", g.Materials[0].Name)
	assert.Equal(t, "Фанера", g.Materials[1].Name)
}

func TestRefactorUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	err := env.service.Refactor(context.Background(), 404, &RefactorForm{}, Photos{})
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.service.Intake(ctx, env.baseForm(), Photos{})
	require.NoError(t, err)

	require.NoError(t, env.service.Delete(ctx, id))

	var orders, specs, materials, pds int64
	env.db.Model(&domain.Order{}).Count(&orders)
	env.db.Model(&domain.TechnicalSpecification{}).Count(&specs)
	env.db.Model(&domain.Material{}).Count(&materials)
	env.db.Model(&domain.PickupDelivery{}).Count(&pds)
	assert.Zero(t, orders)
	assert.Zero(t, specs)
	assert.Zero(t, materials)
	assert.Zero(t, pds)

	require.ErrorIs(t, env.service.Delete(ctx, id), ErrOrderNotFound)
}

func TestListRowsAndTotalCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.baseForm()
	first.IsPrepaymentPaid = "true"
	firstID, err := env.service.Intake(ctx, first, Photos{})
	require.NoError(t, err)

	second := env.baseForm()
	second.Number = "З-102"
	second.ShortDescr = "Шкаф-купе"
	second.FurnitureType1 = "cabinet"
	second.WorkTypes = "create"
	_, err = env.service.Intake(ctx, second, Photos{})
	require.NoError(t, err)

	inProgress := "in_progress"
	edit := &RefactorForm{
		Status:           &inProgress,
		IsPrepaymentPaid: "true",
		Executors:        fmt.Sprintf("%d,%d", env.workerID, env.worker2ID),
	}
	require.NoError(t, env.service.Refactor(ctx, firstID, edit, Photos{}))

	res, err := env.service.List(ctx, ListQuery{Status: "in_progress"})
	require.NoError(t, err)

	// total_count counts the whole table, not the filtered page
	require.Len(t, res.Data, 1)
	assert.Equal(t, int64(2), res.TotalCount)

	row := res.Data[0]
	assert.Equal(t, "З-101", row.Number)
	assert.Equal(t, "01.03.2026", row.CreateDate)
	assert.Equal(t, "15.03.2026", row.CompletionDate)
	assert.Equal(t, "150 000,00", row.TotalValue)
	assert.Equal(t, "Мягкая мебель", row.Type)
	assert.Equal(t, "Диван угловой", row.Description)
	assert.Equal(t, "Взято в работу", row.Status)
	assert.Equal(t, "Внесена предоплата", row.PaymentStatus)
	assert.Equal(t, "Иван Петров", row.Manager.FullName)
	require.Len(t, row.Executors, 2)
	assert.Equal(t, "Сергей Кузнецов", row.Executors[0].FullName)
}

func TestListSearchQuery(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Intake(ctx, env.baseForm(), Photos{})
	require.NoError(t, err)

	second := env.baseForm()
	second.Number = "З-102"
	second.ShortDescr = "Шкаф-купе"
	_, err = env.service.Intake(ctx, second, Photos{})
	require.NoError(t, err)

	res, err := env.service.List(ctx, ListQuery{SearchQuery: "Шкаф"})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "З-102", res.Data[0].Number)

	res, err = env.service.List(ctx, ListQuery{SearchQuery: "З-101"})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Диван угловой", res.Data[0].Description)
}

func TestListPaymentStatusFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	unpaid := env.baseForm()
	_, err := env.service.Intake(ctx, unpaid, Photos{})
	require.NoError(t, err)

	paid := env.baseForm()
	paid.Number = "З-102"
	paid.IsPrepaymentPaid = "true"
	paid.IsPostpaymentPaid = "true"
	_, err = env.service.Intake(ctx, paid, Photos{})
	require.NoError(t, err)

	res, err := env.service.List(ctx, ListQuery{PaymentStatus: "payment_done"})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "З-102", res.Data[0].Number)

	res, err = env.service.List(ctx, ListQuery{PaymentStatus: "awaiting_prepayment"})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "З-101", res.Data[0].Number)
}

func TestDashboardCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	firstID, err := env.service.Intake(ctx, env.baseForm(), Photos{})
	require.NoError(t, err)
	second := env.baseForm()
	second.Number = "З-102"
	_, err = env.service.Intake(ctx, second, Photos{})
	require.NoError(t, err)

	closed := "closed"
	require.NoError(t, env.service.Refactor(ctx, firstID, &RefactorForm{Status: &closed}, Photos{}))

	stats, err := env.service.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.CompletedCount)
	assert.Equal(t, float64(300000), stats.TotalContractValue)
}

func TestFormChoices(t *testing.T) {
	env := newTestEnv(t)

	choices, err := env.service.FormChoices(context.Background())
	require.NoError(t, err)
	require.Len(t, choices.Managers, 1)
	assert.Equal(t, "Петров", choices.Managers[0].LastName)
	require.Len(t, choices.Executors, 2)
}
