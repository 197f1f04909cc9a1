package domain

import "time"

type PaymentType string

const (
	PaymentCash        PaymentType = "cash"
	PaymentCard        PaymentType = "card"
	PaymentTransaction PaymentType = "transaction"
)

var paymentTypeLabels = map[PaymentType]string{
	PaymentCash:        "Наличные",
	PaymentCard:        "По карте",
	PaymentTransaction: "Переводом",
}

func (t PaymentType) Label() string { return paymentTypeLabels[t] }

// Contract carries the payment terms agreed with the client.
// Duration is written by the intake workflow as completion_date minus
// create_date in whole days; the storage layer does not enforce it.
type Contract struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Num      string `json:"num" gorm:"size:100"`
	ClientID uint   `json:"client_id" gorm:"not null"`
	Client   Client `json:"client" gorm:"constraint:OnDelete:CASCADE"`
	FirmID   *uint  `json:"firm_id,omitempty"`
	Firm     *Firm  `json:"firm,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	CreateDate     time.Time `json:"create_date" gorm:"type:date"`
	CompletionDate time.Time `json:"completion_date" gorm:"type:date"`
	Duration       int       `json:"duration"`

	TotalValue    float64     `json:"total_value"`
	TotalWorkCost float64     `json:"total_work_cost"`
	PaymentType   PaymentType `json:"payment_type" gorm:"size:100;default:cash"`

	PrepaymentShare  float64    `json:"prepayment_share"`
	PrepaymentValue  int        `json:"prepayment_value"`
	PrepaymentDate   *time.Time `json:"prepayment_date,omitempty" gorm:"type:date"`
	IsPrepaymentPaid bool       `json:"is_prepayment_paid" gorm:"default:false"`

	PostpaymentValue  int        `json:"postpayment_value" gorm:"not null"`
	PostpaymentDate   *time.Time `json:"postpayment_date,omitempty" gorm:"type:date"`
	IsPostpaymentPaid bool       `json:"is_postpayment_paid" gorm:"default:false"`

	Comments string `json:"comments" gorm:"type:text"`
}

// PaymentStatus is derived on read, never stored.
type PaymentStatus string

const (
	PaymentAwaitingPrepayment PaymentStatus = "awaiting_prepayment"
	PaymentPrepaymentMade     PaymentStatus = "prepayment_made"
	PaymentAwaitingPayment    PaymentStatus = "awaiting_payment"
	PaymentDone               PaymentStatus = "payment_done"
)

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentAwaitingPrepayment: "Ожидает предоплаты",
	PaymentPrepaymentMade:     "Внесена предоплата",
	PaymentAwaitingPayment:    "Ожидает оплаты",
	PaymentDone:               "Оплата произведена",
}

func (s PaymentStatus) Label() string { return paymentStatusLabels[s] }

// DerivePaymentStatus maps the contract payment flags and the presence
// of a delivery date to the four-way payment status. Postpayment paid
// wins over everything else.
func DerivePaymentStatus(prepaymentPaid, postpaymentPaid, hasDeliveryDate bool) PaymentStatus {
	switch {
	case postpaymentPaid:
		return PaymentDone
	case prepaymentPaid && hasDeliveryDate:
		return PaymentAwaitingPayment
	case prepaymentPaid:
		return PaymentPrepaymentMade
	default:
		return PaymentAwaitingPrepayment
	}
}
