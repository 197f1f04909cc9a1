package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/almondloverr/CRM/internal/domain"
	"github.com/almondloverr/CRM/internal/pkg/response"
	"github.com/almondloverr/CRM/internal/repository"
)

// ManagerAccessLevel gates everything beyond the employee directory.
const ManagerAccessLevel = 2

// RestrictedPath is where under-leveled employees are sent instead of
// the operation they asked for.
const RestrictedPath = "/active/"

// EmployeeResolver maps an authenticated login to its employee card.
type EmployeeResolver interface {
	GetByUserID(ctx context.Context, userID uint) (*domain.Employee, error)
}

// RequireAccessLevel resolves the requesting employee and its job
// title on every call. The decision is never cached, so an access
// level change takes effect on the next request. An authenticated
// login with no employee card is a hard NotFound.
func RequireAccessLevel(employees EmployeeResolver, min int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		employee, err := employees.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Error(c, http.StatusNotFound, "NOT_FOUND", "Employee record not found for this user")
				c.Abort()
				return
			}
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve employee")
			c.Abort()
			return
		}

		if employee.AccessLevel() < min {
			c.Redirect(http.StatusFound, RestrictedPath)
			c.Abort()
			return
		}

		c.Set("employee_id", employee.ID)
		c.Next()
	}
}
