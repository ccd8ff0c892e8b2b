// Package revenue aggregates monetary totals across completed orders.
//
// Upstream storage sometimes persists order totals at 1/1000 of their
// true magnitude (a currency-formatting defect in the data source), and
// legacy rows carry totals as formatted strings. Naive summation would
// silently understate revenue, so aggregation runs the totals through a
// repair heuristic cross-checked against the item-level prices, which
// are not affected by the defect. The heuristic is a symptom-level
// patch: every correction is surfaced as an Anomaly so repeated
// triggering shows up as a data-quality regression.
package revenue

import (
	"fmt"

	"resto/internal/logger"
	"resto/internal/models"
)

const (
	// plausibilityFloor is the smallest believable rupiah total for a
	// restaurant order. Totals below it are magnitude-truncated.
	plausibilityFloor = 1000

	// referenceFloor is the item-based total above which the item
	// reference is trusted enough to override per-order totals.
	referenceFloor = 10000

	// magnitudeFactor restores a truncated total.
	magnitudeFactor = 1000

	// divergenceRatio bounds how far the per-order sum may drift from
	// the item-based reference before the reference wins outright.
	divergenceRatio = 10
)

// Record is one completed order as read from storage. Total carries the
// raw persisted value: int64, float64, or a formatted string such as
// "Rp 45.000".
type Record struct {
	OrderID string
	Total   interface{}
	Items   []models.OrderItem
}

// Anomaly describes one correction applied during aggregation.
type Anomaly struct {
	OrderID string
	Kind    AnomalyKind
	Before  int64
	After   int64
}

// AnomalyKind categorizes revenue corrections.
type AnomalyKind string

const (
	// AnomalyMagnitude means a per-order total was restored by x1000.
	AnomalyMagnitude AnomalyKind = "magnitude_corrected"

	// AnomalySumDiscarded means the summed per-order totals were
	// replaced wholesale by the item-based reference.
	AnomalySumDiscarded AnomalyKind = "sum_discarded"
)

func (a Anomaly) String() string {
	if a.OrderID != "" {
		return fmt.Sprintf("%s: order %s total %d -> %d", a.Kind, a.OrderID, a.Before, a.After)
	}
	return fmt.Sprintf("%s: revenue %d -> %d", a.Kind, a.Before, a.After)
}

// Normalizer computes corrected revenue. The logger is optional; when
// set, every anomaly is logged as a warning.
type Normalizer struct {
	log *logger.Logger
}

// New creates a Normalizer.
func New(log *logger.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// FromOrders maps completed orders into records, dropping all others.
func FromOrders(orders []models.Order) []Record {
	records := make([]Record, 0, len(orders))
	for _, o := range orders {
		if o.Status != models.StatusCompleted {
			continue
		}
		records = append(records, Record{OrderID: o.ID, Total: o.TotalPrice, Items: o.Items})
	}
	return records
}

// Revenue returns the corrected total revenue over the given completed
// orders, together with every anomaly corrected along the way.
func (n *Normalizer) Revenue(records []Record) (int64, []Anomaly) {
	var anomalies []Anomaly

	// Item-level prices are the trusted reference.
	var itemTotal int64
	for _, r := range records {
		for _, item := range r.Items {
			itemTotal += item.Price * int64(item.Quantity)
		}
	}

	var total int64
	for _, r := range records {
		t := CoerceAmount(r.Total)

		if t > 0 && t < plausibilityFloor {
			anomalies = append(anomalies, Anomaly{OrderID: r.OrderID, Kind: AnomalyMagnitude, Before: t, After: t * magnitudeFactor})
			t *= magnitudeFactor
		}

		// Still implausibly low while the item reference says revenue
		// is real: correct once more.
		if itemTotal > referenceFloor && t > 0 && t < plausibilityFloor {
			anomalies = append(anomalies, Anomaly{OrderID: r.OrderID, Kind: AnomalyMagnitude, Before: t, After: t * magnitudeFactor})
			t *= magnitudeFactor
		}

		total += t
	}

	// The per-order totals collapsed even though items carry real
	// revenue: the reference wins.
	if total < plausibilityFloor && itemTotal > referenceFloor {
		anomalies = append(anomalies, Anomaly{Kind: AnomalySumDiscarded, Before: total, After: itemTotal})
		total = itemTotal
	}

	if total > 0 && total < plausibilityFloor && len(records) > 0 {
		anomalies = append(anomalies, Anomaly{Kind: AnomalyMagnitude, Before: total, After: total * magnitudeFactor})
		total *= magnitudeFactor
	}

	// Corrected per-order totals that still disagree with the item
	// reference by an order of magnitude mean the correction itself
	// overshot or undershot; fall back on the reference.
	if itemTotal > referenceFloor && (total > itemTotal*divergenceRatio || total*divergenceRatio < itemTotal) {
		anomalies = append(anomalies, Anomaly{Kind: AnomalySumDiscarded, Before: total, After: itemTotal})
		total = itemTotal
	}

	n.report(anomalies)
	return total, anomalies
}

func (n *Normalizer) report(anomalies []Anomaly) {
	if n.log == nil {
		return
	}
	for _, a := range anomalies {
		n.log.Warn("revenue_anomaly", a.String(), "", map[string]interface{}{
			"order_id": a.OrderID,
			"kind":     string(a.Kind),
			"before":   a.Before,
			"after":    a.After,
		})
	}
}
