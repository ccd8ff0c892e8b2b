package revenue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/internal/models"
)

func items(total int64) []models.OrderItem {
	return []models.OrderItem{{MenuID: "m", Name: "Item", Quantity: 1, Price: total}}
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"int64", int64(45000), 45000},
		{"int", 45000, 45000},
		{"float", 45000.0, 45000},
		{"float rounds", 37999.6, 38000},
		{"plain numeric string", "45000", 45000},
		{"rupiah formatted", "Rp 45.000", 45000},
		{"comma separated", "38,500", 38500},
		{"currency prefix and suffix", "IDR 25.000,-", 25000},
		{"garbage string", "n/a", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"unsupported type", []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceAmount(tt.in))
		})
	}
}

func TestRevenueNoOrders(t *testing.T) {
	total, anomalies := New(nil).Revenue(nil)
	assert.Zero(t, total)
	assert.Empty(t, anomalies)
}

func TestRevenueCorrectlyScaledUntouched(t *testing.T) {
	records := []Record{
		{OrderID: "o1", Total: int64(45000), Items: items(45000)},
	}

	total, anomalies := New(nil).Revenue(records)
	assert.Equal(t, int64(45000), total)
	assert.Empty(t, anomalies, "a correctly scaled total must not be corrected")
}

func TestRevenueRestoresTruncatedMagnitude(t *testing.T) {
	// Totals persisted at 1/1000: 38 for a true 38000.
	records := []Record{
		{OrderID: "o1", Total: int64(38), Items: items(38000)},
		{OrderID: "o2", Total: int64(52), Items: items(52000)},
	}

	total, anomalies := New(nil).Revenue(records)
	assert.Equal(t, int64(90000), total)
	require.Len(t, anomalies, 2)
	assert.Equal(t, AnomalyMagnitude, anomalies[0].Kind)
	assert.Equal(t, int64(38), anomalies[0].Before)
	assert.Equal(t, int64(38000), anomalies[0].After)
}

func TestRevenueFallsBackOnItemReference(t *testing.T) {
	// Anomalous totals whose x1000 correction still disagrees with the
	// item-based reference: the reference wins.
	records := []Record{
		{OrderID: "o1", Total: int64(500), Items: items(15000)},
		{OrderID: "o2", Total: int64(750), Items: items(22000)},
	}

	total, anomalies := New(nil).Revenue(records)
	assert.Equal(t, int64(37000), total)

	require.NotEmpty(t, anomalies)
	last := anomalies[len(anomalies)-1]
	assert.Equal(t, AnomalySumDiscarded, last.Kind)
	assert.Equal(t, int64(37000), last.After)
}

func TestRevenueZeroTotalsUseItemReference(t *testing.T) {
	records := []Record{
		{OrderID: "o1", Total: int64(0), Items: items(15000)},
		{OrderID: "o2", Total: nil, Items: items(22000)},
	}

	total, anomalies := New(nil).Revenue(records)
	assert.Equal(t, int64(37000), total)
	require.NotEmpty(t, anomalies)
	assert.Equal(t, AnomalySumDiscarded, anomalies[len(anomalies)-1].Kind)
}

func TestRevenueCoercesLegacyStringTotals(t *testing.T) {
	records := []Record{
		{OrderID: "o1", Total: "Rp 45.000", Items: items(45000)},
		{OrderID: "o2", Total: "30000", Items: items(30000)},
	}

	total, anomalies := New(nil).Revenue(records)
	assert.Equal(t, int64(75000), total)
	assert.Empty(t, anomalies)
}

func TestRevenueSmallLegitimateOrders(t *testing.T) {
	// Tiny but matching totals: the item reference is equally small, so
	// nothing overrides the corrected sum.
	records := []Record{
		{OrderID: "o1", Total: int64(500), Items: items(500)},
	}

	total, _ := New(nil).Revenue(records)
	assert.Equal(t, int64(500000), total)
}

func TestFromOrders(t *testing.T) {
	orders := []models.Order{
		{ID: "a", Status: models.StatusCompleted, TotalPrice: 45000, Items: items(45000)},
		{ID: "b", Status: models.StatusPending, TotalPrice: 20000},
		{ID: "c", Status: models.StatusCancelled, TotalPrice: 30000},
		{ID: "d", Status: models.StatusCompleted, TotalPrice: 15000, Items: items(15000)},
	}

	records := FromOrders(orders)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].OrderID)
	assert.Equal(t, "d", records[1].OrderID)

	total, anomalies := New(nil).Revenue(records)
	assert.Equal(t, int64(60000), total)
	assert.Empty(t, anomalies)
}
