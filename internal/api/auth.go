package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"universo/internal/service"
)

func (h *Handler) login(c *gin.Context) {
	var input service.LoginInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	session, err := h.svc.Auth.Login(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.Auth.Me(c.Request.Context(), caller(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
