package logging_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"

	"universo/internal/logging"
)

func TestNewRespectsLevel(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	l := logging.New(&buf, "warn", "text")
	l.Info("hidden")
	l.Warn("shown", "key", "value")

	out := buf.String()
	c.Assert(out, qt.Not(qt.Contains), "hidden")
	c.Assert(out, qt.Contains, "shown")
	c.Assert(out, qt.Contains, "key=value")
}

func TestNewJSONFormat(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	logging.New(&buf, "info", "json").Info("started", "addr", ":3000")

	var entry map[string]any
	c.Assert(json.Unmarshal(buf.Bytes(), &entry), qt.IsNil)
	c.Assert(entry["msg"], qt.Equals, "started")
	c.Assert(entry["addr"], qt.Equals, ":3000")
}

func TestRequests(t *testing.T) {
	c := qt.New(t)
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	r := gin.New()
	r.Use(logging.Requests(logging.New(&buf, "info", "logfmt")))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
	c.Assert(buf.String(), qt.Contains, "status=404")
	c.Assert(buf.String(), qt.Contains, "level=warn")
}
