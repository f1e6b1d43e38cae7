// Package response writes the uniform error envelope shared by every
// endpoint: {code, type, message, date, errorDetail}.
package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/terrasapp/sales-api/internal/domain/repository"
	"github.com/terrasapp/sales-api/pkg/helpers"
)

type APIError struct {
	Code        int    `json:"code"`
	Type        string `json:"type"`
	Message     string `json:"message"`
	Date        string `json:"date"`
	ErrorDetail string `json:"errorDetail"`
}

// SendError writes the error envelope. Uniqueness violations take precedence
// over the caller's status: they always answer 409 with the constraint's own
// message. errorDetail dumps the underlying error, empty when there is none.
func SendError(c *gin.Context, err error, status int, errType, message string) {
	detail := ""
	if err != nil {
		detail = fmt.Sprintf("%+v", err)
	}

	if conflict := repository.AsConflict(err); conflict != nil {
		c.JSON(http.StatusConflict, APIError{
			Code:        http.StatusConflict,
			Type:        "warning",
			Message:     conflict.Message,
			Date:        helpers.FormatDatetime(time.Now()),
			ErrorDetail: detail,
		})
		return
	}

	c.JSON(status, APIError{
		Code:        status,
		Type:        errType,
		Message:     message,
		Date:        helpers.FormatDatetime(time.Now()),
		ErrorDetail: detail,
	})
}

// SendErrorDetail is SendError with a caller-supplied detail string, used
// when the detail is richer than the error's own dump (binding failures).
func SendErrorDetail(c *gin.Context, status int, errType, message, detail string) {
	c.JSON(status, APIError{
		Code:        status,
		Type:        errType,
		Message:     message,
		Date:        helpers.FormatDatetime(time.Now()),
		ErrorDetail: detail,
	})
}

// RouteNotFound answers unmatched routes. The legacy body has no errorDetail
// field, so this one uses its own shape.
func RouteNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"code":    http.StatusNotFound,
		"type":    "error",
		"message": "Rota não encontrada",
		"date":    helpers.FormatDatetime(time.Now()),
	})
}
