package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAttendanceWritesCounter(t *testing.T) {
	before := testutil.ToFloat64(AttendanceWrites().WithLabelValues("insert"))
	AttendanceWrites().WithLabelValues("insert").Add(2)
	assert.Equal(t, before+2, testutil.ToFloat64(AttendanceWrites().WithLabelValues("insert")))
}

func TestMetricsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", MetricsHandler())

	AuditEntries().WithLabelValues("ADD_EMPLOYEE").Inc()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "audit_entries_total")
}
