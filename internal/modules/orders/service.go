package orders

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/almondloverr/CRM/internal/domain"
	"github.com/almondloverr/CRM/internal/metrics"
	"github.com/almondloverr/CRM/internal/pkg/format"
	"github.com/almondloverr/CRM/internal/pkg/names"
	"github.com/almondloverr/CRM/internal/pkg/validator"
	"github.com/almondloverr/CRM/internal/repository"
	"github.com/almondloverr/CRM/internal/uploads"
)

const formDateLayout = "2006-01-02"

// Photos are the optional technical specification images, slot order
// matching photo1..photo4.
type Photos [4]*multipart.FileHeader

type Service struct {
	orders    *repository.OrderRepository
	employees *repository.EmployeeRepository
	uploads   *uploads.Service

	// atomic wraps intake and edit in one transaction. The legacy
	// mode writes sequentially and can leave a partial graph behind
	// on failure.
	atomic bool
}

func NewService(orders *repository.OrderRepository, employees *repository.EmployeeRepository, up *uploads.Service, atomic bool) *Service {
	return &Service{orders: orders, employees: employees, uploads: up, atomic: atomic}
}

// Intake creates the full order graph from one submitted form:
// client, contract, order, technical specification, material and
// pickup/delivery rows. The order status is always "registered" no
// matter what the form claims.
func (s *Service) Intake(ctx context.Context, form *IntakeForm, photos Photos) (uint, error) {
	if errs := validator.Validate(form); errs != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	createDate, err := parseDate("create_date", form.CreateDate)
	if err != nil {
		return 0, err
	}
	completionDate, err := parseDate("completion_date", form.CompletionDate)
	if err != nil {
		return 0, err
	}

	executorIDs, err := parseIDList(form.Executors)
	if err != nil {
		return 0, err
	}
	if len(executorIDs) > 3 {
		executorIDs = executorIDs[:3]
	}

	workType1, workType2, err := parseWorkTypes(form.WorkTypes)
	if err != nil {
		return 0, err
	}

	prepaymentDate, err := parseDatePtr("prepayment_date", form.PrepaymentDate)
	if err != nil {
		return 0, err
	}
	postpaymentDate, err := parseDatePtr("postpayment_date", form.PostpaymentDate)
	if err != nil {
		return 0, err
	}
	materialOrderDate, err := parseDatePtr("material_order_date", form.MaterialOrderDate)
	if err != nil {
		return 0, err
	}
	materialPaymentDate, err := parseDatePtr("material_payment_date", form.MaterialPaymentDate)
	if err != nil {
		return 0, err
	}
	pickupDate, err := parseDatePtr("pickupdelivery_pickup_date", form.PickupDate)
	if err != nil {
		return 0, err
	}
	deliveryDate, err := parseDatePtr("pickupdelivery_delivery_date", form.DeliveryDate)
	if err != nil {
		return 0, err
	}

	photoURLs, err := s.savePhotos(photos)
	if err != nil {
		return 0, err
	}

	var orderID uint
	run := func(tx *repository.OrderRepository) error {
		if _, err := tx.GetEmployee(ctx, form.Manager); err != nil {
			return employeeErr(err)
		}
		for _, id := range executorIDs {
			if _, err := tx.GetEmployee(ctx, id); err != nil {
				return employeeErr(err)
			}
		}
		if err := checkEmployeePtr(ctx, tx, form.PickupGuy); err != nil {
			return err
		}
		if err := checkEmployeePtr(ctx, tx, form.DeliveryGuy); err != nil {
			return err
		}

		name := names.Split(form.FullName)
		client := &domain.Client{
			FirstName:     name.FirstName,
			LastName:      name.LastName,
			MiddleName:    name.MiddleName,
			ContactNumber: form.ContactNumber,
			Address:       form.Address,
			Comments:      form.Comments,
		}
		if err := tx.CreateClient(ctx, client); err != nil {
			return err
		}

		contract := &domain.Contract{
			Num:            form.ContractNum,
			ClientID:       client.ID,
			CreateDate:     createDate,
			CompletionDate: completionDate,
			Duration:       int(completionDate.Sub(createDate).Hours() / 24),

			TotalValue:    form.TotalValue,
			TotalWorkCost: form.TotalValue,
			PaymentType:   domain.PaymentType(form.PaymentType),

			PrepaymentShare:  form.PrepaymentShare,
			PrepaymentValue:  form.PrepaymentValue,
			PrepaymentDate:   prepaymentDate,
			IsPrepaymentPaid: isTrue(form.IsPrepaymentPaid),

			PostpaymentValue:  form.PostpaymentValue,
			PostpaymentDate:   postpaymentDate,
			IsPostpaymentPaid: isTrue(form.IsPostpaymentPaid),
		}
		if err := tx.CreateContract(ctx, contract); err != nil {
			return err
		}

		order := &domain.Order{
			Number:     form.Number,
			ContractID: contract.ID,
			ManagerID:  form.Manager,
			Source:     domain.OrderSource(form.Source),
			Status:     domain.OrderRegistered,
		}
		assignExecutors(order, executorIDs)
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		ts := &domain.TechnicalSpecification{
			OrderID:        order.ID,
			ItemsQty:       form.ItemsQty,
			ShortDescr:     form.ShortDescr,
			FullDescr:      form.FullDescr,
			WorkType1:      workType1,
			WorkType2:      workType2,
			FurnitureType1: domain.FurnitureType(form.FurnitureType1),
			ItemType:       form.ItemType,
			Comments:       form.TSComments,
			Photo1:         photoURLs[0],
			Photo2:         photoURLs[1],
			Photo3:         photoURLs[2],
			Photo4:         photoURLs[3],
		}
		if err := tx.CreateTechnicalSpecification(ctx, ts); err != nil {
			return err
		}

		cost := form.MaterialCost
		material := &domain.Material{
			OrderID:        order.ID,
			Name:           form.MaterialName,
			InStock:        isTrue(form.Stock),
			Cost:           &cost,
			OrderStatus:    materialOrderStatusOr(form.MaterialOrderStatus, domain.MaterialNotOrdered),
			OrderDate:      materialOrderDate,
			PayStatus:      materialPayStatusOr(form.MaterialPaymentStatus, domain.MaterialUnpaid),
			PaymentDate:    materialPaymentDate,
			FittingName:    form.FittingName,
			FittingInStock: isTrue(form.FittingInStock),
			Comments:       form.MaterialComments,
		}
		if err := tx.CreateMaterial(ctx, material); err != nil {
			return err
		}

		pd := &domain.PickupDelivery{
			OrderID:          order.ID,
			IsPicked:         isTrue(form.IsPicked),
			PickupType:       pickupTypeOr(form.PickupType),
			PickupDate:       pickupDate,
			PickupTime:       form.PickupTime,
			PickupGuyID:      normalizeID(form.PickupGuy),
			PickupComments:   form.PickupComments,
			IsDelivered:      isTrue(form.IsDelivered),
			DeliveryType:     deliveryTypeOr(form.DeliveryType),
			DeliveryDate:     deliveryDate,
			DeliveryTime:     form.DeliveryTime,
			DeliveryGuyID:    normalizeID(form.DeliveryGuy),
			DeliveryComments: form.DeliveryComments,
		}
		if err := tx.CreatePickupDelivery(ctx, pd); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	}

	if s.atomic {
		err = s.orders.Transaction(ctx, run)
	} else {
		err = run(s.orders)
	}
	if err != nil {
		return 0, err
	}

	metrics.OrdersCreated.Inc()
	return orderID, nil
}

// Refactor applies a partial update across the order graph. A missing
// field keeps its stored value; the checkbox flags and the executor
// list are always recomputed from the submission. Only the first
// material row is touched.
func (s *Service) Refactor(ctx context.Context, id uint, form *RefactorForm, photos Photos) error {
	g, err := s.orders.GetGraph(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	executorIDs, err := parseIDList(form.Executors)
	if err != nil {
		return err
	}
	if len(executorIDs) > 3 {
		executorIDs = executorIDs[:3]
	}

	photoURLs, err := s.savePhotos(photos)
	if err != nil {
		return err
	}

	run := func(tx *repository.OrderRepository) error {
		for _, eid := range executorIDs {
			if _, err := tx.GetEmployee(ctx, eid); err != nil {
				return employeeErr(err)
			}
		}

		o := g.Order
		setString(&o.Number, form.Number)
		if form.Manager != nil && *form.Manager != 0 {
			if _, err := tx.GetEmployee(ctx, *form.Manager); err != nil {
				return employeeErr(err)
			}
			o.ManagerID = *form.Manager
		}
		if form.Source != nil && *form.Source != "" {
			o.Source = domain.OrderSource(*form.Source)
		}
		if form.Status != nil && *form.Status != "" {
			o.Status = domain.OrderStatus(*form.Status)
		}
		o.Executor1ID, o.Executor2ID, o.Executor3ID = nil, nil, nil
		assignExecutors(o, executorIDs)
		if err := tx.SaveOrder(ctx, o); err != nil {
			return err
		}

		ct := g.Contract
		setString(&ct.Num, form.ContractNum)
		if err := setDate(&ct.CreateDate, "create_date", form.CreateDate); err != nil {
			return err
		}
		if err := setDate(&ct.CompletionDate, "completion_date", form.CompletionDate); err != nil {
			return err
		}
		if form.TotalValue != nil {
			ct.TotalValue = *form.TotalValue
		}
		if form.PaymentType != nil && *form.PaymentType != "" {
			ct.PaymentType = domain.PaymentType(*form.PaymentType)
		}
		if form.PrepaymentShare != nil {
			ct.PrepaymentShare = *form.PrepaymentShare
		}
		if form.PrepaymentValue != nil {
			ct.PrepaymentValue = *form.PrepaymentValue
		}
		if form.PostpaymentValue != nil {
			ct.PostpaymentValue = *form.PostpaymentValue
		}
		if err := setDatePtr(&ct.PrepaymentDate, "prepayment_date", form.PrepaymentDate); err != nil {
			return err
		}
		if err := setDatePtr(&ct.PostpaymentDate, "postpayment_date", form.PostpaymentDate); err != nil {
			return err
		}
		ct.IsPrepaymentPaid = isTrue(form.IsPrepaymentPaid)
		ct.IsPostpaymentPaid = isTrue(form.IsPostpaymentPaid)
		if err := tx.SaveContract(ctx, ct); err != nil {
			return err
		}

		cl := g.Client
		if form.FullName != nil && *form.FullName != "" {
			name := names.Split(*form.FullName)
			cl.FirstName, cl.LastName, cl.MiddleName = name.FirstName, name.LastName, name.MiddleName
		}
		setString(&cl.ContactNumber, form.ContactNumber)
		setString(&cl.Address, form.Address)
		setString(&cl.Comments, form.Comments)
		if err := tx.SaveClient(ctx, cl); err != nil {
			return err
		}

		if ts := g.TechnicalSpecification; ts != nil {
			if form.ItemsQty != nil {
				ts.ItemsQty = *form.ItemsQty
			}
			setString(&ts.ShortDescr, form.ShortDescr)
			setString(&ts.FullDescr, form.FullDescr)
			setString(&ts.ItemType, form.ItemType)
			setString(&ts.Comments, form.TSComments)
			if form.FurnitureType1 != nil && *form.FurnitureType1 != "" {
				ts.FurnitureType1 = domain.FurnitureType(*form.FurnitureType1)
			}
			if form.WorkTypes != nil && *form.WorkTypes != "" {
				wt1, wt2, err := parseWorkTypes(*form.WorkTypes)
				if err != nil {
					return err
				}
				ts.WorkType1, ts.WorkType2 = wt1, wt2
			}
			for i, url := range photoURLs {
				if url == "" {
					continue
				}
				switch i {
				case 0:
					ts.Photo1 = url
				case 1:
					ts.Photo2 = url
				case 2:
					ts.Photo3 = url
				case 3:
					ts.Photo4 = url
				}
			}
			if err := tx.SaveTechnicalSpecification(ctx, ts); err != nil {
				return err
			}
		}

		if len(g.Materials) > 0 {
			m := &g.Materials[0]
			setString(&m.Name, form.MaterialName)
			setString(&m.FittingName, form.FittingName)
			setString(&m.Comments, form.MaterialComments)
			if form.MaterialCost != nil {
				m.Cost = form.MaterialCost
			}
			if form.MaterialOrderStatus != nil && *form.MaterialOrderStatus != "" {
				m.OrderStatus = domain.MaterialOrderStatus(*form.MaterialOrderStatus)
			}
			if form.MaterialPaymentStatus != nil && *form.MaterialPaymentStatus != "" {
				m.PayStatus = domain.MaterialPaymentStatus(*form.MaterialPaymentStatus)
			}
			if err := setDatePtr(&m.OrderDate, "material_order_date", form.MaterialOrderDate); err != nil {
				return err
			}
			if err := setDatePtr(&m.PaymentDate, "material_payment_date", form.MaterialPaymentDate); err != nil {
				return err
			}
			m.InStock = isTrue(form.Stock)
			m.FittingInStock = isTrue(form.FittingInStock)
			if err := tx.SaveMaterial(ctx, m); err != nil {
				return err
			}
		}

		if pd := g.PickupDelivery; pd != nil {
			if form.PickupType != nil && *form.PickupType != "" {
				pd.PickupType = domain.PickupType(*form.PickupType)
			}
			if form.DeliveryType != nil && *form.DeliveryType != "" {
				pd.DeliveryType = domain.DeliveryType(*form.DeliveryType)
			}
			if err := setDatePtr(&pd.PickupDate, "pickupdelivery_pickup_date", form.PickupDate); err != nil {
				return err
			}
			if err := setDatePtr(&pd.DeliveryDate, "pickupdelivery_delivery_date", form.DeliveryDate); err != nil {
				return err
			}
			setString(&pd.PickupTime, form.PickupTime)
			setString(&pd.DeliveryTime, form.DeliveryTime)
			setString(&pd.PickupComments, form.PickupComments)
			setString(&pd.DeliveryComments, form.DeliveryComments)
			if id := normalizeID(form.PickupGuy); id != nil {
				if err := checkEmployeePtr(ctx, tx, id); err != nil {
					return err
				}
				pd.PickupGuyID = id
			}
			if id := normalizeID(form.DeliveryGuy); id != nil {
				if err := checkEmployeePtr(ctx, tx, id); err != nil {
					return err
				}
				pd.DeliveryGuyID = id
			}
			pd.IsPicked = isTrue(form.IsPicked)
			pd.IsDelivered = isTrue(form.IsDelivered)
			if err := tx.SavePickupDelivery(ctx, pd); err != nil {
				return err
			}
		}

		return nil
	}

	if s.atomic {
		return s.orders.Transaction(ctx, run)
	}
	return run(s.orders)
}

// Get loads the full graph for the edit page.
func (s *Service) Get(ctx context.Context, id uint) (*repository.OrderGraph, error) {
	g, err := s.orders.GetGraph(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return g, nil
}

// Delete removes the order and, through cascade keys, its contract
// graph, specifications, materials, logistics and activity rows.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	metrics.OrdersDeleted.Inc()
	return nil
}

// List returns the filtered order rows plus the unfiltered table
// count. Dates that do not parse are ignored rather than rejected.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResponse, error) {
	f := repository.OrderFilter{
		SearchQuery:   q.SearchQuery,
		Status:        domain.OrderStatus(q.Status),
		FurnitureType: domain.FurnitureType(q.Type),
		PaymentStatus: domain.PaymentStatus(q.PaymentStatus),
	}
	if t, err := time.Parse(formDateLayout, q.StartDate); err == nil {
		f.StartDate = &t
	}
	if t, err := time.Parse(formDateLayout, q.EndDate); err == nil {
		f.EndDate = &t
	}

	list, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]OrderRow, 0, len(list))
	for i := range list {
		rows = append(rows, buildRow(&list[i]))
	}
	return &ListResponse{Data: rows, TotalCount: total}, nil
}

// Dashboard returns the main page counters.
func (s *Service) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	return s.orders.Dashboard(ctx)
}

// FormChoices are the employee reference lists the intake and edit
// pages offer for the manager and executor selects.
type FormChoices struct {
	Managers  []domain.Employee `json:"managers"`
	Executors []domain.Employee `json:"executors"`
}

func (s *Service) FormChoices(ctx context.Context) (*FormChoices, error) {
	managers, err := s.employees.ListByPositionName(ctx, "Менеджер")
	if err != nil {
		return nil, err
	}
	workers, err := s.employees.ListByPositionName(ctx, "Рабочий")
	if err != nil {
		return nil, err
	}
	return &FormChoices{Managers: managers, Executors: workers}, nil
}

func buildRow(o *domain.Order) OrderRow {
	row := OrderRow{
		ID:            o.ID,
		Number:        o.Number,
		CreateDate:    format.Date(o.Contract.CreateDate),
		TotalValue:    format.Money(o.Contract.TotalValue),
		Status:        o.Status.Label(),
		PaymentStatus: paymentStatusLabel(o),
		Manager: PersonRow{
			AvatarURL: o.Manager.AvatarURL,
			FullName:  o.Manager.DisplayName(),
		},
		Executors: []PersonRow{},
	}
	if !o.Contract.CompletionDate.IsZero() {
		row.CompletionDate = format.Date(o.Contract.CompletionDate)
	}
	if len(o.TechnicalSpecifications) > 0 {
		ts := o.TechnicalSpecifications[0]
		row.Type = ts.FurnitureType1.Label()
		row.Description = ts.ShortDescr
	}
	for _, e := range o.Executors() {
		row.Executors = append(row.Executors, PersonRow{
			AvatarURL: e.AvatarURL,
			FullName:  e.DisplayName(),
		})
	}
	return row
}

func paymentStatusLabel(o *domain.Order) string {
	hasDeliveryDate := false
	if len(o.PickupDeliveries) > 0 {
		hasDeliveryDate = o.PickupDeliveries[0].DeliveryDate != nil
	}
	return domain.DerivePaymentStatus(
		o.Contract.IsPrepaymentPaid,
		o.Contract.IsPostpaymentPaid,
		hasDeliveryDate,
	).Label()
}

func (s *Service) savePhotos(photos Photos) ([4]string, error) {
	var urls [4]string
	for i, fh := range photos {
		if fh == nil {
			continue
		}
		url, err := s.uploads.SaveImage(fh, "orders")
		if err != nil {
			return urls, fmt.Errorf("%w: photo%d: %v", ErrValidation, i+1, err)
		}
		urls[i] = url
	}
	return urls, nil
}

func assignExecutors(o *domain.Order, ids []uint) {
	slots := []**uint{&o.Executor1ID, &o.Executor2ID, &o.Executor3ID}
	for i, id := range ids {
		if i >= len(slots) {
			break
		}
		v := id
		*slots[i] = &v
	}
}

func checkEmployeePtr(ctx context.Context, tx *repository.OrderRepository, id *uint) error {
	if id == nil || *id == 0 {
		return nil
	}
	if _, err := tx.GetEmployee(ctx, *id); err != nil {
		return employeeErr(err)
	}
	return nil
}

func employeeErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEmployeeNotFound
	}
	return err
}

func isTrue(s string) bool { return s == "true" }

func normalizeID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
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

func parseIDList(s string) ([]uint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad executors list", ErrValidation)
		}
		ids = append(ids, uint(v))
	}
	return ids, nil
}

var validWorkTypes = map[domain.WorkType]bool{
	domain.WorkCreate:      true,
	domain.WorkReupholster: true,
	domain.WorkRestoration: true,
	domain.WorkNewBuild:    true,
}

// parseWorkTypes splits the comma-joined list into the two stored
// slots; anything past the second value is dropped.
func parseWorkTypes(s string) (domain.WorkType, *domain.WorkType, error) {
	parts := strings.Split(s, ",")
	types := make([]domain.WorkType, 0, 2)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		wt := domain.WorkType(p)
		if !validWorkTypes[wt] {
			return "", nil, fmt.Errorf("%w: bad work_types", ErrValidation)
		}
		types = append(types, wt)
	}
	if len(types) == 0 {
		return "", nil, fmt.Errorf("%w: bad work_types", ErrValidation)
	}
	if len(types) == 1 {
		return types[0], nil, nil
	}
	second := types[1]
	return types[0], &second, nil
}

func materialOrderStatusOr(v string, def domain.MaterialOrderStatus) domain.MaterialOrderStatus {
	if v == "" {
		return def
	}
	return domain.MaterialOrderStatus(v)
}

func materialPayStatusOr(v string, def domain.MaterialPaymentStatus) domain.MaterialPaymentStatus {
	if v == "" {
		return def
	}
	return domain.MaterialPaymentStatus(v)
}

func pickupTypeOr(v string) domain.PickupType {
	if v == "" {
		return domain.PickupSelfDelivery
	}
	return domain.PickupType(v)
}

func deliveryTypeOr(v string) domain.DeliveryType {
	if v == "" {
		return domain.DeliverySelf
	}
	return domain.DeliveryType(v)
}

func setString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func setDate(dst *time.Time, field string, src *string) error {
	if src == nil || *src == "" {
		return nil
	}
	t, err := parseDate(field, *src)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

func setDatePtr(dst **time.Time, field string, src *string) error {
	if src == nil || *src == "" {
		return nil
	}
	t, err := parseDate(field, *src)
	if err != nil {
		return err
	}
	*dst = &t
	return nil
}
