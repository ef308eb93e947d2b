// Package metrics holds the Prometheus collectors of the store backend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Sale outcomes used as the "outcome" label of SalesTotal.
const (
	OutcomeCommitted         = "committed"
	OutcomeValidation        = "validation"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeNotFound          = "not_found"
	OutcomeForbidden         = "forbidden"
	OutcomePersistence       = "persistence"
)

var (
	SalesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aerozone",
		Name:      "sales_total",
		Help:      "Sale attempts by outcome.",
	}, []string{"outcome"})

	SalesAmount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "aerozone",
		Name:      "sales_amount_total",
		Help:      "Sum of committed sale totals.",
	})

	StockAddedUnits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "aerozone",
		Name:      "stock_added_units_total",
		Help:      "Units added to stock through add-stock calls.",
	})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "aerozone",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(SalesTotal, SalesAmount, StockAddedUnits, RequestDuration)
}

// ObserveSale counts one sale attempt. amount is added only for committed sales.
func ObserveSale(outcome string, amount decimal.Decimal) {
	SalesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeCommitted {
		SalesAmount.Add(amount.InexactFloat64())
	}
}

// ObserveStockAdded counts units received into stock.
func ObserveStockAdded(units int) {
	StockAddedUnits.Add(float64(units))
}

// Middleware records request latency labelled with the matched route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
