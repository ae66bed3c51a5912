package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrderMetrics counts the write paths of the ordering API.
type OrderMetrics struct {
	ordersCreated *prometheus.CounterVec
	cakesCreated  *prometheus.CounterVec
	statsRefresh  prometheus.Counter
}

// NewOrderMetrics registers the ordering counters on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders placed, labeled by delivery surcharge applied.",
	}, []string{"surcharged"})
	cakesCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cakes_created_total",
		Help: "Cakes configured, labeled by cake kind.",
	}, []string{"kind"})
	statsRefresh := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "statistics_refresh_total",
		Help: "Explicit statistics snapshot refreshes.",
	})
	reg.MustRegister(ordersCreated, cakesCreated, statsRefresh)
	return &OrderMetrics{
		ordersCreated: ordersCreated,
		cakesCreated:  cakesCreated,
		statsRefresh:  statsRefresh,
	}
}

// IncOrderCreated counts a placed order.
func (m *OrderMetrics) IncOrderCreated(surcharged bool) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	label := "no"
	if surcharged {
		label = "yes"
	}
	m.ordersCreated.WithLabelValues(label).Inc()
}

// IncCakeCreated counts a configured cake.
func (m *OrderMetrics) IncCakeCreated(kind string) {
	if m == nil || m.cakesCreated == nil {
		return
	}
	m.cakesCreated.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncStatsRefresh counts a statistics snapshot refresh.
func (m *OrderMetrics) IncStatsRefresh() {
	if m == nil || m.statsRefresh == nil {
		return
	}
	m.statsRefresh.Inc()
}
