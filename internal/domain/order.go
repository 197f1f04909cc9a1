package domain

import "time"

type OrderStatus string

const (
	OrderRegistered OrderStatus = "registered"
	OrderToPickup   OrderStatus = "to_pickup"
	OrderIsPicked   OrderStatus = "is_picked"
	OrderToDo       OrderStatus = "to_do"
	OrderInProgress OrderStatus = "in_progress"
	OrderInReview   OrderStatus = "in_review"
	OrderClosed     OrderStatus = "closed"
	OrderSuspended  OrderStatus = "suspended"
	OrderToDeliver  OrderStatus = "to_deliver"
	OrderDelivered  OrderStatus = "delivered"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderRegistered: "Заказ зарегистрирован",
	OrderToPickup:   "Необходимо забрать",
	OrderIsPicked:   "Заказ привезли",
	OrderToDo:       "В очереди",
	OrderInProgress: "Взято в работу",
	OrderInReview:   "Ждет проверки управляющего",
	OrderClosed:     "Выполнено успешно",
	OrderSuspended:  "Приостановлено",
	OrderToDeliver:  "Необходима доставка",
	OrderDelivered:  "Доставлено клиенту",
}

func (s OrderStatus) Label() string { return orderStatusLabels[s] }

type OrderSource string

const (
	SourceSite              OrderSource = "site"
	SourceRecommendation    OrderSource = "recommendation"
	SourceReturningCustomer OrderSource = "returning_customer"
)

var orderSourceLabels = map[OrderSource]string{
	SourceSite:              "Сайт",
	SourceRecommendation:    "Рекомендация",
	SourceReturningCustomer: "Повторный клиент",
}

func (s OrderSource) Label() string { return orderSourceLabels[s] }

// Order is the hub entity: one contract, one manager, up to three
// executors, and zero-or-more of each dependent below.
type Order struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	Number     string   `json:"number" gorm:"size:100"`
	ContractID uint     `json:"contract_id" gorm:"not null"`
	Contract   Contract `json:"contract" gorm:"constraint:OnDelete:CASCADE"`
	ManagerID  uint     `json:"manager_id" gorm:"not null"`
	Manager    Employee `json:"manager" gorm:"foreignKey:ManagerID;constraint:OnDelete:CASCADE"`

	Source OrderSource `json:"source" gorm:"size:100"`
	Status OrderStatus `json:"status" gorm:"size:100"`

	Executor1ID *uint     `json:"executor1_id,omitempty"`
	Executor1   *Employee `json:"executor1,omitempty" gorm:"foreignKey:Executor1ID;constraint:OnDelete:CASCADE"`
	Executor2ID *uint     `json:"executor2_id,omitempty"`
	Executor2   *Employee `json:"executor2,omitempty" gorm:"foreignKey:Executor2ID;constraint:OnDelete:CASCADE"`
	Executor3ID *uint     `json:"executor3_id,omitempty"`
	Executor3   *Employee `json:"executor3,omitempty" gorm:"foreignKey:Executor3ID;constraint:OnDelete:CASCADE"`

	Comments string `json:"comments" gorm:"type:text"`

	TechnicalSpecifications []TechnicalSpecification `json:"technical_specifications,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Materials               []Material               `json:"materials,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	PickupDeliveries        []PickupDelivery         `json:"pickup_deliveries,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Activities              []Activity               `json:"activities,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// Executors returns the assigned executors in slot order, nils skipped.
func (o *Order) Executors() []*Employee {
	out := make([]*Employee, 0, 3)
	for _, e := range []*Employee{o.Executor1, o.Executor2, o.Executor3} {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

type WorkType string

const (
	WorkCreate      WorkType = "create"
	WorkReupholster WorkType = "reupholster"
	WorkRestoration WorkType = "restoration"
	WorkNewBuild    WorkType = "new_build"
)

var workTypeLabels = map[WorkType]string{
	WorkCreate:      "Изготовление",
	WorkReupholster: "Перетяжка",
	WorkRestoration: "Реставрация",
	WorkNewBuild:    "Новодел",
}

func (t WorkType) Label() string { return workTypeLabels[t] }

type FurnitureType string

const (
	FurnitureSoft    FurnitureType = "soft"
	FurnitureCabinet FurnitureType = "cabinet"
)

var furnitureTypeLabels = map[FurnitureType]string{
	FurnitureSoft:    "Мягкая мебель",
	FurnitureCabinet: "Корпусная мебель",
}

func (t FurnitureType) Label() string { return furnitureTypeLabels[t] }

// TechnicalSpecification is the work description attached to an order.
type TechnicalSpecification struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	OrderID uint `json:"order_id" gorm:"not null"`

	ItemsQty   int    `json:"items_qty"`
	ShortDescr string `json:"short_descr" gorm:"size:100"`
	FullDescr  string `json:"full_descr" gorm:"type:text"`

	WorkType1      WorkType       `json:"work_type1" gorm:"size:50"`
	WorkType2      *WorkType      `json:"work_type2,omitempty" gorm:"size:50"`
	FurnitureType1 FurnitureType  `json:"furniture_type1" gorm:"size:50"`
	FurnitureType2 *FurnitureType `json:"furniture_type2,omitempty" gorm:"size:50"`

	ItemType string `json:"item_type" gorm:"size:30"`
	Comments string `json:"comments" gorm:"type:text"`

	Photo1 string `json:"photo1" gorm:"size:255"`
	Photo2 string `json:"photo2" gorm:"size:255"`
	Photo3 string `json:"photo3" gorm:"size:255"`
	Photo4 string `json:"photo4" gorm:"size:255"`
}

type MaterialOrderStatus string

const (
	MaterialNotOrdered MaterialOrderStatus = "not_ordered"
	MaterialOrdered    MaterialOrderStatus = "ordered"
)

type MaterialPaymentStatus string

const (
	MaterialPaid    MaterialPaymentStatus = "paid"
	MaterialUnpaid  MaterialPaymentStatus = "unpaid"
	MaterialPartial MaterialPaymentStatus = "partial"
)

type Material struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	OrderID uint `json:"order_id" gorm:"not null"`

	Name    string   `json:"name" gorm:"size:100"`
	InStock bool     `json:"in_stock" gorm:"default:false"`
	Cost    *float64 `json:"cost,omitempty"`

	OrderStatus MaterialOrderStatus   `json:"order_status" gorm:"size:100;default:not_ordered"`
	OrderDate   *time.Time            `json:"order_date,omitempty" gorm:"type:date"`
	PayStatus   MaterialPaymentStatus `json:"payment_status" gorm:"column:payment_status;size:100;default:unpaid"`
	PaymentDate *time.Time            `json:"payment_date,omitempty" gorm:"type:date"`

	FittingName    string `json:"fitting_name" gorm:"size:100"`
	FittingInStock bool   `json:"fitting_in_stock" gorm:"default:false"`
	Comments       string `json:"comments" gorm:"type:text"`
}

type PickupType string

const (
	PickupSelfDelivery PickupType = "self_delivery"
	PickupCourier      PickupType = "pickup"
)

type DeliveryType string

const (
	DeliverySelf    DeliveryType = "self_delivery"
	DeliveryCourier DeliveryType = "delivery"
)

// PickupDelivery tracks both legs of the logistics for one order.
// Times are stored as submitted ("HH:MM") rather than parsed.
type PickupDelivery struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	OrderID uint `json:"order_id" gorm:"not null"`

	IsPicked    bool       `json:"is_picked" gorm:"default:false"`
	PickupType  PickupType `json:"pickup_type" gorm:"size:50"`
	PickupDate  *time.Time `json:"pickup_date,omitempty" gorm:"type:date"`
	PickupTime  string     `json:"pickup_time" gorm:"size:10"`
	PickupGuyID *uint      `json:"pickup_guy_id,omitempty"`
	PickupGuy   *Employee  `json:"pickup_guy,omitempty" gorm:"foreignKey:PickupGuyID;constraint:OnDelete:CASCADE"`

	IsDelivered   bool         `json:"is_delivered" gorm:"default:false"`
	DeliveryType  DeliveryType `json:"delivery_type" gorm:"size:50"`
	DeliveryDate  *time.Time   `json:"delivery_date,omitempty" gorm:"type:date"`
	DeliveryTime  string       `json:"delivery_time" gorm:"size:10"`
	DeliveryGuyID *uint        `json:"delivery_guy_id,omitempty"`
	DeliveryGuy   *Employee    `json:"delivery_guy,omitempty" gorm:"foreignKey:DeliveryGuyID;constraint:OnDelete:CASCADE"`

	PickupComments   string `json:"pickup_comments" gorm:"type:text"`
	DeliveryComments string `json:"delivery_comments" gorm:"type:text"`
}
