package orders

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/almondloverr/CRM/internal/domain"
	"github.com/almondloverr/CRM/internal/pkg/response"
	"github.com/almondloverr/CRM/internal/report"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/main/", h.Dashboard)
	rg.GET("/orders/", h.List)
	rg.GET("/orders/export/", h.Export)
	rg.GET("/add_order/", h.AddOrderPage)
	rg.POST("/add_order/", h.AddOrder)
	rg.GET("/refactor_order/:id/", h.RefactorOrderPage)
	rg.POST("/refactor_order/:id/", h.RefactorOrder)
	rg.POST("/delete-order/:id/", h.DeleteOrder)
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// List serves the order table. An XMLHttpRequest caller gets the bare
// rows payload; a page load additionally gets the filter choices.
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid filter parameters")
		return
	}

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load orders")
		return
	}

	if isAjax(c) {
		c.JSON(http.StatusOK, res)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"orders":           res.Data,
		"total_count":      res.TotalCount,
		"statuses":         statusChoices(),
		"furniture_types":  furnitureChoices(),
		"payment_statuses": paymentChoices(),
	})
}

func (h *Handler) Export(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid filter parameters")
		return
	}

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load orders")
		return
	}

	rows := make([]report.Row, 0, len(res.Data))
	for _, r := range res.Data {
		execs := make([]string, 0, len(r.Executors))
		for _, e := range r.Executors {
			execs = append(execs, e.FullName)
		}
		rows = append(rows, report.Row{
			ID:             r.ID,
			Number:         r.Number,
			CreateDate:     r.CreateDate,
			CompletionDate: r.CompletionDate,
			TotalValue:     r.TotalValue,
			Type:           r.Type,
			Description:    r.Description,
			PaymentStatus:  r.PaymentStatus,
			Status:         r.Status,
			Manager:        r.Manager.FullName,
			Executors:      execs,
		})
	}

	buf, err := report.Generate(rows)
	if err != nil {
		if errors.Is(err, report.ErrNoRows) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Нет заказов для выгрузки")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build export")
		return
	}

	filename := "orders_" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

func (h *Handler) AddOrderPage(c *gin.Context) {
	choices, err := h.service.FormChoices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load form data")
		return
	}
	response.Success(c, http.StatusOK, choices)
}

func (h *Handler) AddOrder(c *gin.Context) {
	var form IntakeForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	id, err := h.service.Intake(c.Request.Context(), &form, photosFromForm(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	if isAjax(c) {
		response.Success(c, http.StatusOK, gin.H{"id": id, "redirect": "/orders/"})
		return
	}
	c.Redirect(http.StatusFound, "/orders/")
}

func (h *Handler) RefactorOrderPage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Неверный запрос")
		return
	}

	g, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	choices, err := h.service.FormChoices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load form data")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"order":                   g.Order,
		"contract":                g.Contract,
		"client":                  g.Client,
		"technical_specification": g.TechnicalSpecification,
		"materials":               g.Materials,
		"pickup_delivery":         g.PickupDelivery,
		"managers":                choices.Managers,
		"executors":               choices.Executors,
	})
}

func (h *Handler) RefactorOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Неверный запрос")
		return
	}

	var form RefactorForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.Refactor(c.Request.Context(), id, &form, photosFromForm(c)); err != nil {
		h.writeError(c, err)
		return
	}

	if isAjax(c) {
		response.Success(c, http.StatusOK, gin.H{"id": id, "redirect": "/orders/"})
		return
	}
	c.Redirect(http.StatusFound, "/orders/")
}

// DeleteOrder keeps the legacy flat contract: HTTP 200 either way,
// success plus an optional Russian error message in the body.
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Plain(c, false, "Неверный запрос")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			response.Plain(c, false, "Заказ не найден")
			return
		}
		response.Plain(c, false, "Не удалось удалить заказ")
		return
	}
	response.Plain(c, true, "")
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Заказ не найден")
	case errors.Is(err, ErrEmployeeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Сотрудник не найден")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Request failed")
	}
}

func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func pathID(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func photosFromForm(c *gin.Context) Photos {
	var p Photos
	for i, name := range []string{"photo1", "photo2", "photo3", "photo4"} {
		if fh, err := c.FormFile(name); err == nil {
			p[i] = fh
		}
	}
	return p
}

type choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func statusChoices() []choice {
	statuses := []domain.OrderStatus{
		domain.OrderRegistered, domain.OrderToPickup, domain.OrderIsPicked,
		domain.OrderToDo, domain.OrderInProgress, domain.OrderInReview,
		domain.OrderClosed, domain.OrderSuspended, domain.OrderToDeliver,
		domain.OrderDelivered,
	}
	out := make([]choice, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, choice{Value: string(s), Label: s.Label()})
	}
	return out
}

func furnitureChoices() []choice {
	return []choice{
		{Value: string(domain.FurnitureSoft), Label: domain.FurnitureSoft.Label()},
		{Value: string(domain.FurnitureCabinet), Label: domain.FurnitureCabinet.Label()},
	}
}

func paymentChoices() []choice {
	statuses := []domain.PaymentStatus{
		domain.PaymentAwaitingPrepayment, domain.PaymentPrepaymentMade,
		domain.PaymentAwaitingPayment, domain.PaymentDone,
	}
	out := make([]choice, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, choice{Value: string(s), Label: s.Label()})
	}
	return out
}
