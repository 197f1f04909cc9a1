package activity

// ActivityForm is the add_activity submission. Photos arrive as
// multipart files photo1..photo4, read from the form directly.
type ActivityForm struct {
	Order    uint `form:"order" binding:"required"`
	Employee uint `form:"employee" binding:"required"`

	ActivityDescr string `form:"activity_descr" binding:"required"`
	Status        string `form:"status" binding:"omitempty,oneof=backlog in_review to_do in_progress closed_positive closed_negative needs_rework suspended"`

	DateStart  string `form:"date_start" binding:"required"`
	DateReview string `form:"date_review"`
	DateEnd    string `form:"date_end"`

	TotalWorkCost float64 `form:"total_work_cost" binding:"required"`
	IsPaid        string  `form:"is_paid"`
	PaymentDate   string  `form:"payment_date"`
	PaymentType   string  `form:"payment_type" binding:"omitempty,oneof=cash card transaction"`
}

// ActivityRow is the per-order activity list projection.
type ActivityRow struct {
	ID            uint   `json:"id"`
	Employee      string `json:"employee"`
	AvatarURL     string `json:"avatar_url"`
	ActivityDescr string `json:"activity_descr"`
	Status        string `json:"status"`
	DateStart     string `json:"date_start"`
	DateEnd       string `json:"date_end"`
	TotalWorkCost string `json:"total_work_cost"`
	IsPaid        bool   `json:"is_paid"`
	PaymentType   string `json:"payment_type"`
}

// EventForm is a calendar entry submission.
type EventForm struct {
	Title  string `form:"title" json:"title" binding:"required"`
	Start  string `form:"start" json:"start" binding:"required"`
	End    string `form:"end" json:"end" binding:"required"`
	AllDay string `form:"all_day" json:"all_day"`
}

// EventsQuery is the calendar feed window.
type EventsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}
