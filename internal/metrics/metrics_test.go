package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func TestObserveSale(t *testing.T) {
	committedBefore := testutil.ToFloat64(SalesTotal.WithLabelValues(OutcomeCommitted))
	stockBefore := testutil.ToFloat64(SalesTotal.WithLabelValues(OutcomeInsufficientStock))
	amountBefore := testutil.ToFloat64(SalesAmount)

	ObserveSale(OutcomeCommitted, decimal.RequireFromString("200.00"))
	ObserveSale(OutcomeInsufficientStock, decimal.RequireFromString("999.00"))

	if got := testutil.ToFloat64(SalesTotal.WithLabelValues(OutcomeCommitted)) - committedBefore; got != 1 {
		t.Errorf("committed delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(SalesTotal.WithLabelValues(OutcomeInsufficientStock)) - stockBefore; got != 1 {
		t.Errorf("insufficient_stock delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(SalesAmount) - amountBefore; got != 200 {
		t.Errorf("amount delta = %v, want 200", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `aerozone_http_request_duration_seconds_count{method="GET",route="/ping",status="200"}`) {
		t.Errorf("metrics output does not contain the /ping observation")
	}
}
