package metrics

import "github.com/prometheus/client_golang/prometheus"

// CatalogMetrics counts product-detail reconciliation outcomes.
type CatalogMetrics struct {
	linked  prometheus.Counter
	skipped prometheus.Counter
}

// NewCatalogMetrics registers the catalog counters on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	linked := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "product_details_linked_total",
		Help: "Product details created for existing customers.",
	})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "product_details_skipped_total",
		Help: "Product detail candidates dropped because the customer does not exist.",
	})
	reg.MustRegister(linked, skipped)
	return &CatalogMetrics{linked: linked, skipped: skipped}
}

func (c *CatalogMetrics) AddLinked(n int) {
	if c == nil || c.linked == nil || n <= 0 {
		return
	}
	c.linked.Add(float64(n))
}

func (c *CatalogMetrics) AddSkipped(n int) {
	if c == nil || c.skipped == nil || n <= 0 {
		return
	}
	c.skipped.Add(float64(n))
}
