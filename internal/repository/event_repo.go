package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/almondloverr/CRM/internal/domain"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	return translate(r.db.WithContext(ctx).Create(e).Error)
}

// List returns calendar entries overlapping the window; a zero window
// returns everything.
func (r *EventRepository) List(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	q := r.db.WithContext(ctx).Model(&domain.Event{})
	if !from.IsZero() && !to.IsZero() {
		q = q.Where(`"end" >= ? AND start <= ?`, from, to)
	}

	var events []domain.Event
	if err := q.Order("start").Find(&events).Error; err != nil {
		return nil, translate(err)
	}
	return events, nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Event{}, id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
