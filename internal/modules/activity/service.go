package activity

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/almondloverr/CRM/internal/domain"
	"github.com/almondloverr/CRM/internal/metrics"
	"github.com/almondloverr/CRM/internal/pkg/format"
	"github.com/almondloverr/CRM/internal/pkg/validator"
	"github.com/almondloverr/CRM/internal/repository"
	"github.com/almondloverr/CRM/internal/uploads"
)

const formDateLayout = "2006-01-02"

// Photos are the optional activity images, slot order photo1..photo4.
type Photos [4]*multipart.FileHeader

type Service struct {
	activities *repository.ActivityRepository
	employees  *repository.EmployeeRepository
	events     *repository.EventRepository
	uploads    *uploads.Service
}

func NewService(activities *repository.ActivityRepository, employees *repository.EmployeeRepository, events *repository.EventRepository, up *uploads.Service) *Service {
	return &Service{activities: activities, employees: employees, events: events, uploads: up}
}

// Add records one unit of work against an order. Status defaults to
// backlog when the form leaves it out.
func (s *Service) Add(ctx context.Context, form *ActivityForm, photos Photos) (uint, error) {
	if errs := validator.Validate(form); errs != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	dateStart, err := parseDate("date_start", form.DateStart)
	if err != nil {
		return 0, err
	}
	dateReview, err := parseDatePtr("date_review", form.DateReview)
	if err != nil {
		return 0, err
	}
	dateEnd, err := parseDatePtr("date_end", form.DateEnd)
	if err != nil {
		return 0, err
	}
	paymentDate, err := parseDatePtr("payment_date", form.PaymentDate)
	if err != nil {
		return 0, err
	}

	if _, err := s.activities.GetOrder(ctx, form.Order); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrOrderNotFound
		}
		return 0, err
	}
	if _, err := s.employees.GetByID(ctx, form.Employee); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrEmployeeNotFound
		}
		return 0, err
	}

	var urls [4]string
	for i, fh := range photos {
		if fh == nil {
			continue
		}
		url, err := s.uploads.SaveImage(fh, "activities")
		if err != nil {
			return 0, fmt.Errorf("%w: photo%d: %v", ErrValidation, i+1, err)
		}
		urls[i] = url
	}

	status := domain.ActivityBacklog
	if form.Status != "" {
		status = domain.ActivityStatus(form.Status)
	}
	paymentType := domain.PaymentCash
	if form.PaymentType != "" {
		paymentType = domain.PaymentType(form.PaymentType)
	}

	a := &domain.Activity{
		OrderID:    form.Order,
		EmployeeID: form.Employee,

		ActivityDescr: form.ActivityDescr,
		Status:        status,

		DateStart:  dateStart,
		DateReview: dateReview,
		DateEnd:    dateEnd,

		TotalWorkCost: form.TotalWorkCost,
		IsPaid:        form.IsPaid == "true",
		PaymentDate:   paymentDate,
		PaymentType:   paymentType,

		Photo1: urls[0],
		Photo2: urls[1],
		Photo3: urls[2],
		Photo4: urls[3],
	}
	if err := s.activities.Create(ctx, a); err != nil {
		return 0, err
	}

	metrics.ActivitiesCreated.Inc()
	return a.ID, nil
}

// ListByOrder returns the activity feed of one order.
func (s *Service) ListByOrder(ctx context.Context, orderID uint) ([]ActivityRow, error) {
	if _, err := s.activities.GetOrder(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	list, err := s.activities.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	rows := make([]ActivityRow, 0, len(list))
	for i := range list {
		a := &list[i]
		rows = append(rows, ActivityRow{
			ID:            a.ID,
			Employee:      a.Employee.DisplayName(),
			AvatarURL:     a.Employee.AvatarURL,
			ActivityDescr: a.ActivityDescr,
			Status:        a.Status.Label(),
			DateStart:     format.Date(a.DateStart),
			DateEnd:       format.DatePtr(a.DateEnd),
			TotalWorkCost: format.Money(a.TotalWorkCost),
			IsPaid:        a.IsPaid,
			PaymentType:   a.PaymentType.Label(),
		})
	}
	return rows, nil
}

// AddEvent creates a calendar entry. Timestamps accept RFC 3339 or a
// bare date.
func (s *Service) AddEvent(ctx context.Context, form *EventForm) (uint, error) {
	start, err := parseTimestamp("start", form.Start)
	if err != nil {
		return 0, err
	}
	end, err := parseTimestamp("end", form.End)
	if err != nil {
		return 0, err
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: end before start", ErrValidation)
	}

	e := &domain.Event{
		Title:  form.Title,
		Start:  start,
		End:    end,
		AllDay: form.AllDay == "true",
	}
	if err := s.events.Create(ctx, e); err != nil {
		return 0, err
	}
	return e.ID, nil
}

// Events returns calendar entries overlapping the requested window;
// an empty window means everything.
func (s *Service) Events(ctx context.Context, q EventsQuery) ([]domain.Event, error) {
	var from, to time.Time
	if q.From != "" && q.To != "" {
		var err error
		if from, err = parseTimestamp("from", q.From); err != nil {
			return nil, err
		}
		if to, err = parseTimestamp("to", q.To); err != nil {
			return nil, err
		}
	}
	return s.events.List(ctx, from, to)
}

func (s *Service) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
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

func parseTimestamp(field, value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", formDateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad %s", ErrValidation, field)
}
