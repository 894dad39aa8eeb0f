package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"universo/internal/apperr"
	"universo/internal/auth"
)

// TokenHeader is the header the browser client sends its session token in.
const TokenHeader = "auth-token"

// requireAuth verifies the session token and stores the caller identity in
// the request context.
func (h *Handler) requireAuth(c *gin.Context) {
	id, err := h.svc.Auth.Authenticate(tokenFrom(c.Request))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Request = c.Request.WithContext(auth.NewContext(c.Request.Context(), id))
	c.Next()
}

// tokenFrom reads the token from auth-token, then a bearer Authorization
// header, then the token query parameter used by websocket clients.
func tokenFrom(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return r.URL.Query().Get("token")
}

func (h *Handler) requireAdmin(c *gin.Context) {
	if id, ok := auth.FromContext(c.Request.Context()); ok && id.IsAdmin() {
		c.Next()
		return
	}
	h.fail(c, &apperr.ForbiddenError{Message: "Acceso restringido a administradores"})
}

// caller returns the identity set by requireAuth.
func caller(c *gin.Context) auth.Identity {
	id, _ := auth.FromContext(c.Request.Context())
	return id
}
