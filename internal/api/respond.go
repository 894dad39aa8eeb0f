package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"universo/internal/apperr"
)

// fail writes the error response for err and aborts the chain. Expected
// failures map to 4xx; anything else is logged and returned as 500 with the
// raw error attached.
func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		verr      *apperr.ValidationError
		nf        *apperr.NotFoundError
		authErr   *apperr.AuthError
		forbidden *apperr.ForbiddenError
		conflict  *apperr.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		fields := verr.Fields
		if fields == nil {
			fields = []apperr.FieldError{}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": verr.Message, "errors": fields})
	case errors.As(err, &nf):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": nf.UserMessage()})
	case errors.As(err, &authErr):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": authErr.Message})
	case errors.As(err, &forbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": forbidden.Message})
	case errors.As(err, &conflict):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": conflict.Message})
	default:
		h.logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": "Error interno del servidor",
			"error":   err.Error(),
		})
	}
}

// bind decodes the JSON body into dst. Decoding problems become validation
// errors; field rules are checked by the services.
func bind(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apperr.FieldInvalid(typeErr.Field, "Valor inválido")
	case errors.Is(err, io.EOF):
		return apperr.NewValidationError("El cuerpo de la petición está vacío")
	default:
		return apperr.NewValidationError("JSON inválido")
	}
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, error) {
	return parseID(c.Param("id"), "id")
}

func parseID(raw, field string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || n == 0 {
		return 0, apperr.FieldInvalid(field, "ID inválido")
	}
	return uint(n), nil
}
