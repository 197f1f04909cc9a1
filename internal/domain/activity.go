package domain

import "time"

type ActivityStatus string

const (
	ActivityBacklog        ActivityStatus = "backlog"
	ActivityInReview       ActivityStatus = "in_review"
	ActivityToDo           ActivityStatus = "to_do"
	ActivityInProgress     ActivityStatus = "in_progress"
	ActivityClosedPositive ActivityStatus = "closed_positive"
	ActivityClosedNegative ActivityStatus = "closed_negative"
	ActivityNeedsRework    ActivityStatus = "needs_rework"
	ActivitySuspended      ActivityStatus = "suspended"
)

var activityStatusLabels = map[ActivityStatus]string{
	ActivityBacklog:        "Активность зарегистрирована",
	ActivityInReview:       "Ждет проверки управляющего",
	ActivityToDo:           "К выполнению работником",
	ActivityInProgress:     "Взято в работу",
	ActivityClosedPositive: "Выполнено успешно",
	ActivityClosedNegative: "Выполнено неуспешно",
	ActivityNeedsRework:    "Необходима доработка",
	ActivitySuspended:      "Приостановлено",
}

func (s ActivityStatus) Label() string { return activityStatusLabels[s] }

// Activity is a paid unit of work performed by one employee on an order.
type Activity struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null"`
	EmployeeID uint     `json:"employee_id" gorm:"not null"`
	Employee   Employee `json:"employee" gorm:"constraint:OnDelete:CASCADE"`

	ActivityDescr string         `json:"activity_descr" gorm:"type:text"`
	Status        ActivityStatus `json:"status" gorm:"size:100;default:backlog"`

	DateStart  time.Time  `json:"date_start" gorm:"type:date"`
	DateReview *time.Time `json:"date_review,omitempty" gorm:"type:date"`
	DateEnd    *time.Time `json:"date_end,omitempty" gorm:"type:date"`

	TotalWorkCost float64     `json:"total_work_cost" gorm:"not null"`
	IsPaid        bool        `json:"is_paid" gorm:"default:false"`
	PaymentDate   *time.Time  `json:"payment_date,omitempty" gorm:"type:date"`
	PaymentType   PaymentType `json:"payment_type" gorm:"size:100;default:cash"`

	Photo1 string `json:"photo1" gorm:"size:255"`
	Photo2 string `json:"photo2" gorm:"size:255"`
	Photo3 string `json:"photo3" gorm:"size:255"`
	Photo4 string `json:"photo4" gorm:"size:255"`
}

// Event is a calendar entry shown on the planning page.
type Event struct {
	ID     uint      `json:"id" gorm:"primaryKey"`
	Title  string    `json:"title" gorm:"size:200"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"all_day" gorm:"default:false"`
}
