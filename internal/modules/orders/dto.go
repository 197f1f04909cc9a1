package orders

// IntakeForm is the typed shape of the add_order multipart form. Field
// names are part of the HTTP contract. Checkbox-style flags arrive as
// the literal string "true"; everything else is absent or unchecked.
// Files (photo1..photo4) are read from the multipart form directly.
type IntakeForm struct {
	// order
	Number    string `form:"number" binding:"required"`
	Manager   uint   `form:"manager" binding:"required"`
	Executors string `form:"executors"`
	Source    string `form:"source" binding:"required,oneof=site recommendation returning_customer"`

	// contract
	ContractNum       string  `form:"contract_num" binding:"required"`
	CreateDate        string  `form:"create_date" binding:"required"`
	CompletionDate    string  `form:"completion_date" binding:"required"`
	TotalValue        float64 `form:"total_value" binding:"required"`
	PaymentType       string  `form:"payment_type" binding:"required,oneof=cash card transaction"`
	PrepaymentShare   float64 `form:"prepayment_share"`
	PrepaymentValue   int     `form:"prepayment_value"`
	IsPrepaymentPaid  string  `form:"is_prepayment_paid"`
	PrepaymentDate    string  `form:"prepayment_date"`
	PostpaymentValue  int     `form:"postpayment_value"`
	IsPostpaymentPaid string  `form:"is_postpayment_paid"`
	PostpaymentDate   string  `form:"postpayment_date"`

	// client
	Address       string `form:"address"`
	ContactNumber string `form:"contact_number" binding:"required"`
	FullName      string `form:"full_name" binding:"required"`
	Comments      string `form:"comments"`

	// technical specification
	ItemsQty       int    `form:"items_qty" binding:"required,min=1"`
	ShortDescr     string `form:"short_descr" binding:"required"`
	ItemType       string `form:"item_type"`
	FurnitureType1 string `form:"furniture_type1" binding:"required,oneof=soft cabinet"`
	WorkTypes      string `form:"work_types" binding:"required"`
	FullDescr      string `form:"full_descr"`
	TSComments     string `form:"technicalspecification_comments"`

	// material
	MaterialName          string  `form:"material_name" binding:"required"`
	Stock                 string  `form:"stock"`
	FittingName           string  `form:"fitting_name"`
	FittingInStock        string  `form:"fitting_in_stock"`
	MaterialComments      string  `form:"material_comments"`
	MaterialCost          float64 `form:"material_cost"`
	MaterialOrderStatus   string  `form:"material_order_status" binding:"omitempty,oneof=not_ordered ordered"`
	MaterialOrderDate     string  `form:"material_order_date"`
	MaterialPaymentStatus string  `form:"material_payment_status" binding:"omitempty,oneof=paid unpaid partial"`
	MaterialPaymentDate   string  `form:"material_payment_date"`

	// pickup / delivery
	IsPicked         string `form:"pickupdelivery_is_picked"`
	PickupDate       string `form:"pickupdelivery_pickup_date"`
	PickupTime       string `form:"pickupdelivery_pickup_time"`
	PickupType       string `form:"pickupdelivery_pickup_type" binding:"omitempty,oneof=self_delivery pickup"`
	PickupGuy        *uint  `form:"pickup_guy"`
	PickupComments   string `form:"pickupdelivery_pickup_comments"`
	IsDelivered      string `form:"pickupdelivery_is_delivered"`
	DeliveryDate     string `form:"pickupdelivery_delivery_date"`
	DeliveryTime     string `form:"pickupdelivery_delivery_time"`
	DeliveryType     string `form:"pickupdelivery_delivery_type" binding:"omitempty,oneof=self_delivery delivery"`
	DeliveryGuy      *uint  `form:"delivery_guy"`
	DeliveryComments string `form:"pickupdelivery_delivery_comments"`
}

// RefactorForm carries the same field set with partial-update
// semantics: a nil pointer means "leave the stored value alone".
// Flag fields stay plain strings: they are always recomputed from the
// presence of the literal "true".
type RefactorForm struct {
	Number    *string `form:"number"`
	Manager   *uint   `form:"manager"`
	Executors string  `form:"executors"`
	Source    *string `form:"source" binding:"omitempty,oneof=site recommendation returning_customer"`
	Status    *string `form:"status" binding:"omitempty,oneof=registered to_pickup is_picked to_do in_progress in_review closed suspended to_deliver delivered"`

	ContractNum       *string  `form:"contract_num"`
	CreateDate        *string  `form:"create_date"`
	CompletionDate    *string  `form:"completion_date"`
	TotalValue        *float64 `form:"total_value"`
	PaymentType       *string  `form:"payment_type" binding:"omitempty,oneof=cash card transaction"`
	PrepaymentShare   *float64 `form:"prepayment_share"`
	PrepaymentValue   *int     `form:"prepayment_value"`
	IsPrepaymentPaid  string   `form:"is_prepayment_paid"`
	PrepaymentDate    *string  `form:"prepayment_date"`
	PostpaymentValue  *int     `form:"postpayment_value"`
	IsPostpaymentPaid string   `form:"is_postpayment_paid"`
	PostpaymentDate   *string  `form:"postpayment_date"`

	Address       *string `form:"address"`
	ContactNumber *string `form:"contact_number"`
	FullName      *string `form:"full_name"`
	Comments      *string `form:"comments"`

	ItemsQty       *int    `form:"items_qty"`
	ShortDescr     *string `form:"short_descr"`
	ItemType       *string `form:"item_type"`
	FurnitureType1 *string `form:"furniture_type1" binding:"omitempty,oneof=soft cabinet"`
	WorkTypes      *string `form:"work_types"`
	FullDescr      *string `form:"full_descr"`
	TSComments     *string `form:"technicalspecification_comments"`

	MaterialName          *string  `form:"material_name"`
	Stock                 string   `form:"stock"`
	FittingName           *string  `form:"fitting_name"`
	FittingInStock        string   `form:"fitting_in_stock"`
	MaterialComments      *string  `form:"material_comments"`
	MaterialCost          *float64 `form:"material_cost"`
	MaterialOrderStatus   *string  `form:"material_order_status" binding:"omitempty,oneof=not_ordered ordered"`
	MaterialOrderDate     *string  `form:"material_order_date"`
	MaterialPaymentStatus *string  `form:"material_payment_status" binding:"omitempty,oneof=paid unpaid partial"`
	MaterialPaymentDate   *string  `form:"material_payment_date"`

	IsPicked         string  `form:"pickupdelivery_is_picked"`
	PickupDate       *string `form:"pickupdelivery_pickup_date"`
	PickupTime       *string `form:"pickupdelivery_pickup_time"`
	PickupType       *string `form:"pickupdelivery_pickup_type" binding:"omitempty,oneof=self_delivery pickup"`
	PickupGuy        *uint   `form:"pickup_guy"`
	PickupComments   *string `form:"pickupdelivery_pickup_comments"`
	IsDelivered      string  `form:"pickupdelivery_is_delivered"`
	DeliveryDate     *string `form:"pickupdelivery_delivery_date"`
	DeliveryTime     *string `form:"pickupdelivery_delivery_time"`
	DeliveryType     *string `form:"pickupdelivery_delivery_type" binding:"omitempty,oneof=self_delivery delivery"`
	DeliveryGuy      *uint   `form:"delivery_guy"`
	DeliveryComments *string `form:"pickupdelivery_delivery_comments"`
}

// ListQuery are the /orders/ filter parameters.
type ListQuery struct {
	SearchQuery   string `form:"search_query"`
	Status        string `form:"status" binding:"omitempty,oneof=registered to_pickup is_picked to_do in_progress in_review closed suspended to_deliver delivered"`
	Type          string `form:"type" binding:"omitempty,oneof=soft cabinet"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=awaiting_prepayment prepayment_made awaiting_payment payment_done"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
}

// PersonRow is the avatar+name pair shown for managers and executors.
type PersonRow struct {
	AvatarURL string `json:"avatar_url"`
	FullName  string `json:"full_name"`
}

// OrderRow is one row of the order list projection.
type OrderRow struct {
	ID             uint        `json:"id"`
	Number         string      `json:"number"`
	CreateDate     string      `json:"create_date"`
	CompletionDate string      `json:"completion_date"`
	TotalValue     string      `json:"total_value"`
	Type           string      `json:"type"`
	Description    string      `json:"description"`
	PaymentStatus  string      `json:"payment_status"`
	Status         string      `json:"status"`
	Executors      []PersonRow `json:"executors"`
	Manager        PersonRow   `json:"manager"`
}

// ListResponse is the AJAX payload of /orders/.
type ListResponse struct {
	Data       []OrderRow `json:"data"`
	TotalCount int64      `json:"total_count"`
}
