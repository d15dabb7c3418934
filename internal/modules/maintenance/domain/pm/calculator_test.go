package pm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestRuleWindows(t *testing.T) {
	assert.Equal(t, 500.0, VehicleRule.DueSoonWindow)
	assert.Equal(t, 25.0, EquipmentRule.DueSoonWindow)
	assert.Equal(t, UnitMiles, VehicleRule.Unit)
	assert.Equal(t, UnitHours, EquipmentRule.Unit)

	_, ok := RuleFor("trailer")
	assert.False(t, ok)
}

func TestEvaluateVehicle(t *testing.T) {
	row, ok := Evaluate(VehicleRule, "v-1", f(5050), nil)
	require.True(t, ok)
	assert.Equal(t, StatusOverdue, row.Status)
	assert.Equal(t, 50.0, row.OverdueAmount)
	assert.Equal(t, 5000.0, row.DueAt)

	row, ok = Evaluate(VehicleRule, "v-2", f(4950), f(0))
	require.True(t, ok)
	assert.Equal(t, StatusDueSoon, row.Status)
	assert.Equal(t, 50.0, row.Remaining)

	_, ok = Evaluate(VehicleRule, "v-3", f(1000), nil)
	assert.False(t, ok)
}

func TestEvaluateUsesLastService(t *testing.T) {
	row, ok := Evaluate(VehicleRule, "v-1", f(10100), f(5000))
	require.True(t, ok)
	assert.Equal(t, 10000.0, row.DueAt)
	assert.Equal(t, 100.0, row.OverdueAmount)

	// 恰好到期算逾期
	row, ok = Evaluate(EquipmentRule, "e-1", f(500), f(250))
	require.True(t, ok)
	assert.Equal(t, StatusOverdue, row.Status)
	assert.Equal(t, 0.0, row.OverdueAmount)

	// 窗口边界算即将到期
	row, ok = Evaluate(EquipmentRule, "e-2", f(225), nil)
	require.True(t, ok)
	assert.Equal(t, StatusDueSoon, row.Status)

	_, ok = Evaluate(EquipmentRule, "e-3", f(224.9), nil)
	assert.False(t, ok)
}

func TestEvaluateSkipsBadCurrentValues(t *testing.T) {
	for _, v := range []*float64{nil, f(-1), f(math.NaN()), f(math.Inf(1))} {
		_, ok := Evaluate(VehicleRule, "v", v, nil)
		assert.False(t, ok)
	}
}

func TestSortBoard(t *testing.T) {
	rows := []BoardRow{
		{AssetID: "soon-40", Status: StatusDueSoon, Remaining: 40},
		{AssetID: "over-50", Status: StatusOverdue, OverdueAmount: 50},
		{AssetID: "soon-10", Status: StatusDueSoon, Remaining: 10},
		{AssetID: "over-200", Status: StatusOverdue, OverdueAmount: 200},
	}
	SortBoard(rows)
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.AssetID)
	}
	assert.Equal(t, []string{"over-200", "over-50", "soon-10", "soon-40"}, ids)
}

func TestSortBoardTieBreaksByAsset(t *testing.T) {
	rows := []BoardRow{
		{AssetID: "b", AssetType: "vehicle", Status: StatusDueSoon, Remaining: 10},
		{AssetID: "a", AssetType: "vehicle", Status: StatusDueSoon, Remaining: 10},
		{AssetID: "z", AssetType: "equipment", Status: StatusDueSoon, Remaining: 10},
	}
	SortBoard(rows)
	assert.Equal(t, "z", rows[0].AssetID)
	assert.Equal(t, "a", rows[1].AssetID)
	assert.Equal(t, "b", rows[2].AssetID)
}
