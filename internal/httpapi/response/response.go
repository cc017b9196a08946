package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errorsx "github.com/yungbote/ndtplanner-backend/internal/pkg/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondDomainError maps the shared error sentinels onto HTTP statuses so
// handlers do not repeat the switch.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errorsx.ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "plan_not_found", err)
	case errors.Is(err, errorsx.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, errorsx.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
