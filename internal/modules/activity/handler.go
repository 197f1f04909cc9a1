package activity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/almondloverr/CRM/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/add_activity/", h.ListByOrder)
	rg.POST("/add_activity/", h.AddActivity)
	rg.GET("/events/", h.Events)
	rg.POST("/events/", h.AddEvent)
	rg.POST("/delete-event/:id/", h.DeleteEvent)
}

// ListByOrder serves the activity feed of the order named by the
// `order` query parameter, shown on the add_activity page.
func (h *Handler) ListByOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Query("order"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Неверный запрос")
		return
	}

	rows, err := h.service.ListByOrder(c.Request.Context(), uint(orderID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"activities": rows})
}

func (h *Handler) AddActivity(c *gin.Context) {
	var form ActivityForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var photos Photos
	for i, name := range []string{"photo1", "photo2", "photo3", "photo4"} {
		if fh, err := c.FormFile(name); err == nil {
			photos[i] = fh
		}
	}

	id, err := h.service.Add(c.Request.Context(), &form, photos)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) Events(c *gin.Context) {
	var q EventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid window")
		return
	}

	events, err := h.service.Events(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, events)
}

func (h *Handler) AddEvent(c *gin.Context) {
	var form EventForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	id, err := h.service.AddEvent(c.Request.Context(), &form)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Plain(c, false, "Неверный запрос")
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.Plain(c, false, "Событие не найдено")
			return
		}
		response.Plain(c, false, "Не удалось удалить событие")
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
