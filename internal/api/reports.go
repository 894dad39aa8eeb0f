package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// reportSummary serves the dashboard digest; ?format=html returns the same
// text that scheduled reports deliver.
func (h *Handler) reportSummary(c *gin.Context) {
	sum, err := h.svc.Reports.Summary(c.Request.Context(), h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.svc.Reports.Render(sum)))
		return
	}
	c.JSON(http.StatusOK, sum)
}
