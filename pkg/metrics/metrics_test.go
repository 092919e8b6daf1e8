package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_ExposesRequestAndBusinessMetrics(t *testing.T) {
	// unregistered collector: must not panic
	ObserveBusinessProcess("mp_reconcile", "processed", time.Now())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	p := NewPrometheus(NewPrometheusOptions{
		Subsystem:   "storefront_test",
		MetricsList: []*Metric{MetricsBusinessProcess},
		ReqCntURLLabelMappingFn: func(c *gin.Context) string {
			return c.FullPath()
		},
	})
	p.Use(r)
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping/42", nil))
	ObserveBusinessProcess("mp_reconcile", "processed", time.Now().Add(-30*time.Millisecond))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `storefront_test_req_total{code="204",method="GET",ref="",url="/ping/:id"} 1`)
	require.Contains(t, body, `storefront_test_bp_dur_count{subtype="processed",type="mp_reconcile"} 1`)
}

func TestMillisecondsSince(t *testing.T) {
	require.GreaterOrEqual(t, MillisecondsSince(time.Now().Add(-time.Second)), 1000.0)
}
