package staff

import (
	"errors"
	"mime/multipart"
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

// RegisterRoutes mounts the manager-gated staff routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/staff/", h.List)
	rg.GET("/add_employee/", h.AddEmployeePage)
	rg.POST("/add_employee/", h.AddEmployee)
	rg.GET("/refactor_employee/:id/", h.RefactorEmployeePage)
	rg.POST("/refactor_employee/:id/", h.RefactorEmployee)
	rg.POST("/delete-employee/:id/", h.DeleteEmployee)
}

// RegisterActiveRoutes mounts the low-privilege directory view, the
// redirect target of the access gate.
func (h *Handler) RegisterActiveRoutes(rg *gin.RouterGroup) {
	rg.GET("/active/", h.Active)
}

func (h *Handler) Active(c *gin.Context) {
	dir, err := h.service.Directory(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load directory")
		return
	}
	response.Success(c, http.StatusOK, dir)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid filter parameters")
		return
	}

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load staff")
		return
	}

	if isAjax(c) {
		c.JSON(http.StatusOK, res)
		return
	}
	choices, err := h.service.FormChoices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load staff")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"employees":   res.Data,
		"total_count": res.TotalCount,
		"departments": choices.Departments,
		"positions":   choices.Positions,
	})
}

func (h *Handler) AddEmployeePage(c *gin.Context) {
	choices, err := h.service.FormChoices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load form data")
		return
	}
	response.Success(c, http.StatusOK, choices)
}

func (h *Handler) AddEmployee(c *gin.Context) {
	var form EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	id, err := h.service.Add(c.Request.Context(), &form, avatarFromForm(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	if isAjax(c) {
		response.Success(c, http.StatusOK, gin.H{"id": id, "redirect": "/staff/"})
		return
	}
	c.Redirect(http.StatusFound, "/staff/")
}

func (h *Handler) RefactorEmployeePage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Неверный запрос")
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
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
		"employee":    e,
		"departments": choices.Departments,
		"positions":   choices.Positions,
	})
}

func (h *Handler) RefactorEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Неверный запрос")
		return
	}

	var form RefactorEmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.Refactor(c.Request.Context(), id, &form, avatarFromForm(c)); err != nil {
		h.writeError(c, err)
		return
	}

	if isAjax(c) {
		response.Success(c, http.StatusOK, gin.H{"id": id, "redirect": "/staff/"})
		return
	}
	c.Redirect(http.StatusFound, "/staff/")
}

// DeleteEmployee keeps the legacy flat contract: HTTP 200 either way.
func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Plain(c, false, "Неверный запрос")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			response.Plain(c, false, "Сотрудник не найден")
			return
		}
		response.Plain(c, false, "Не удалось удалить сотрудника")
		return
	}
	response.Plain(c, true, "")
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidSalary):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid salary input.")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrUsernameTaken):
		response.Error(c, http.StatusConflict, "DUPLICATE", "Имя пользователя уже занято")
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

func avatarFromForm(c *gin.Context) *multipart.FileHeader {
	if fh, err := c.FormFile("avatar"); err == nil {
		return fh
	}
	return nil
}
