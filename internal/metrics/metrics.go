package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pos"

// Recorder holds the service collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	salesSaved  *prometheus.CounterVec
	salesAmount prometheus.Counter
	rejected    *prometheus.CounterVec
	sellers     prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		salesSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_saved_total",
			Help:      "Sales committed, by payment method.",
		}, []string{"payment_method"}),
		salesAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_amount_total",
			Help:      "Sum of committed sale totals in currency units.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_rejected_total",
			Help:      "Operations refused by validation or integrity checks.",
		}, []string{"operation", "kind"}),
		sellers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sellers",
			Help:      "Sellers currently on the roster.",
		}),
	}
	reg.MustRegister(r.salesSaved, r.salesAmount, r.rejected, r.sellers)
	return r
}

// SaleSaved counts a committed sale.
func (r *Recorder) SaleSaved(paymentMethod string, total float64) {
	if r == nil {
		return
	}
	r.salesSaved.WithLabelValues(paymentMethod).Inc()
	r.salesAmount.Add(total)
}

// Rejected counts a refused operation; kind is "validation" or "constraint".
func (r *Recorder) Rejected(operation, kind string) {
	if r == nil {
		return
	}
	r.rejected.WithLabelValues(operation, kind).Inc()
}

// Sellers sets the roster size.
func (r *Recorder) Sellers(n int) {
	if r == nil {
		return
	}
	r.sellers.Set(float64(n))
}
