package activity

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/almondloverr/CRM/internal/database"
	"github.com/almondloverr/CRM/internal/domain"
	"github.com/almondloverr/CRM/internal/repository"
	"github.com/almondloverr/CRM/internal/uploads"
)

type testEnv struct {
	db         *gorm.DB
	service    *Service
	orderID    uint
	employeeID uint
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	dept := domain.Department{Name: "Производство"}
	require.NoError(t, db.Create(&dept).Error)
	lvl := 1
	position := domain.JobTitle{Name: "Рабочий", AccessLvl: &lvl}
	require.NoError(t, db.Create(&position).Error)
	employee := domain.Employee{
		FirstName: "Сергей", LastName: "Кузнецов",
		PositionID: position.ID, DepartmentID: dept.ID,
		Status: domain.EmployeeWorking,
	}
	require.NoError(t, db.Create(&employee).Error)

	client := domain.Client{FirstName: "Анна", LastName: "Сидорова"}
	require.NoError(t, db.Create(&client).Error)
	contract := domain.Contract{Num: "Д-1", ClientID: client.ID, CreateDate: time.Now()}
	require.NoError(t, db.Create(&contract).Error)
	order := domain.Order{
		Number: "З-1", ContractID: contract.ID, ManagerID: employee.ID,
		Source: domain.SourceSite, Status: domain.OrderRegistered,
	}
	require.NoError(t, db.Omit("Contract", "Manager").Create(&order).Error)

	svc := NewService(
		repository.NewActivityRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewEventRepository(db),
		uploads.NewService(t.TempDir(), "/static/uploads"),
	)
	return &testEnv{db: db, service: svc, orderID: order.ID, employeeID: employee.ID}
}

func TestAddActivityDefaultsToBacklog(t *testing.T) {
	env := newTestEnv(t)

	id, err := env.service.Add(context.Background(), &ActivityForm{
		Order:         env.orderID,
		Employee:      env.employeeID,
		ActivityDescr: "Перетяжка спинки",
		DateStart:     "2026-04-01",
		TotalWorkCost: 8000,
	}, Photos{})
	require.NoError(t, err)

	var a domain.Activity
	require.NoError(t, env.db.First(&a, id).Error)
	assert.Equal(t, domain.ActivityBacklog, a.Status)
	assert.Equal(t, domain.PaymentCash, a.PaymentType)
	assert.False(t, a.IsPaid)
}

func TestAddActivityUnknownOrder(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Add(context.Background(), &ActivityForm{
		Order:         9999,
		Employee:      env.employeeID,
		ActivityDescr: "x",
		DateStart:     "2026-04-01",
		TotalWorkCost: 1,
	}, Photos{})
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListByOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Add(ctx, &ActivityForm{
		Order:         env.orderID,
		Employee:      env.employeeID,
		ActivityDescr: "Сборка каркаса",
		Status:        "in_progress",
		DateStart:     "2026-04-01",
		TotalWorkCost: 12500.5,
		IsPaid:        "true",
	}, Photos{})
	require.NoError(t, err)

	rows, err := env.service.ListByOrder(ctx, env.orderID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Сергей Кузнецов", rows[0].Employee)
	assert.Equal(t, "Взято в работу", rows[0].Status)
	assert.Equal(t, "01.04.2026", rows[0].DateStart)
	assert.Equal(t, "12 500,50", rows[0].TotalWorkCost)
	assert.True(t, rows[0].IsPaid)

	_, err = env.service.ListByOrder(ctx, 9999)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestEventsWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.AddEvent(ctx, &EventForm{
		Title: "Замер у клиента",
		Start: "2026-05-10T10:00",
		End:   "2026-05-10T12:00",
	})
	require.NoError(t, err)
	_, err = env.service.AddEvent(ctx, &EventForm{
		Title:  "Выставка",
		Start:  "2026-06-01",
		End:    "2026-06-03",
		AllDay: "true",
	})
	require.NoError(t, err)

	all, err := env.service.Events(ctx, EventsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	may, err := env.service.Events(ctx, EventsQuery{From: "2026-05-01", To: "2026-05-31"})
	require.NoError(t, err)
	require.Len(t, may, 1)
	assert.Equal(t, "Замер у клиента", may[0].Title)
	assert.False(t, may[0].AllDay)
}

func TestAddEventEndBeforeStart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.AddEvent(context.Background(), &EventForm{
		Title: "x",
		Start: "2026-05-10",
		End:   "2026-05-09",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.service.AddEvent(ctx, &EventForm{Title: "x", Start: "2026-05-10", End: "2026-05-11"})
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteEvent(ctx, id))
	require.ErrorIs(t, env.service.DeleteEvent(ctx, id), ErrEventNotFound)
}
