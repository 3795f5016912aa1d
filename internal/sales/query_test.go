package sales

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func saleAt(id, seller, total string, at time.Time) Sale {
	return Sale{ID: id, SellerID: seller, CreatedAt: at, PaymentMethod: PaymentCash, Total: dec(total)}
}

func sampleSales() []Sale {
	return []Sale{
		saleAt("a", "1", "11.00", time.Date(2024, 3, 9, 23, 59, 0, 0, brt)),
		saleAt("b", "2", "7.50", time.Date(2024, 3, 10, 0, 5, 0, 0, brt)),
		saleAt("c", "1", "20.00", time.Date(2024, 3, 10, 23, 30, 0, 0, brt)),
		saleAt("d", "3", "3.00", time.Date(2024, 3, 11, 8, 0, 0, 0, brt)),
	}
}

func ids(list []Sale) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestFilter_NoCriteriaIsIdentity(t *testing.T) {
	all := sampleSales()
	got := Filter(all, Criteria{})
	assert.Equal(t, all, got)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
}

func TestFilter_BySeller(t *testing.T) {
	all := sampleSales()
	got := Filter(all, Criteria{SellerID: "1"})

	assert.Equal(t, []string{"a", "c"}, ids(got))
	for _, s := range got {
		assert.Equal(t, "1", s.SellerID)
	}
	kept := map[string]bool{}
	for _, s := range got {
		kept[s.ID] = true
	}
	for _, s := range all {
		if !kept[s.ID] {
			assert.NotEqual(t, "1", s.SellerID, "excluded sale %s should belong to another seller", s.ID)
		}
	}
}

func TestFilter_DateRangeIsInclusiveByCalendarDay(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, brt)

	t.Run("from", func(t *testing.T) {
		got := Filter(sampleSales(), Criteria{DateFrom: day})
		assert.Equal(t, []string{"b", "c", "d"}, ids(got))
	})

	t.Run("to keeps late sales on the last day", func(t *testing.T) {
		got := Filter(sampleSales(), Criteria{DateTo: day})
		assert.Equal(t, []string{"a", "b", "c"}, ids(got))
	})

	t.Run("single day", func(t *testing.T) {
		got := Filter(sampleSales(), Criteria{DateFrom: day, DateTo: day.Add(15 * time.Hour)})
		assert.Equal(t, []string{"b", "c"}, ids(got))
	})

	t.Run("compared in the criteria location", func(t *testing.T) {
		// 01:30 UTC on the 11th is still the 10th in BRT
		late := saleAt("utc", "1", "1", time.Date(2024, 3, 11, 1, 30, 0, 0, time.UTC))
		got := Filter([]Sale{late}, Criteria{DateFrom: day, DateTo: day})
		assert.Equal(t, []string{"utc"}, ids(got))
	})
}

func TestFilter_CombinesWithAnd(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, brt)
	got := Filter(sampleSales(), Criteria{SellerID: "1", DateFrom: day})
	assert.Equal(t, []string{"c"}, ids(got))

	assert.Empty(t, Filter(sampleSales(), Criteria{SellerID: "9"}))
}

// TestSummarize_Commission covers two sales of one seller at 5%.
func TestSummarize_Commission(t *testing.T) {
	all := []Sale{
		saleAt("x", "1", "11.00", time.Now()),
		saleAt("y", "1", "20.00", time.Now()),
	}
	filtered := Filter(all, Criteria{SellerID: "1"})
	require.Len(t, filtered, 2)

	summary := Summarize(filtered, dec("5"))

	assertDecimal(t, "31.00", summary.TotalSales)
	assertDecimal(t, "1.55", summary.Commission)
	assert.InDelta(t, 31.0*5/100, summary.Commission.InexactFloat64(), 1e-9)
}

func TestSummarize_CommissionIsNotClamped(t *testing.T) {
	all := []Sale{saleAt("x", "1", "10", time.Now())}

	assertDecimal(t, "15", Summarize(all, dec("150")).Commission)
	assertDecimal(t, "-1", Summarize(all, dec("-10")).Commission)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, dec("5"))
	assert.True(t, summary.TotalSales.IsZero())
	assert.True(t, summary.Commission.IsZero())
}

func TestRunReport_States(t *testing.T) {
	var never Report
	assert.Equal(t, ReportNotRun, never.State, "Expected the zero report to be not run")

	empty := RunReport(sampleSales(), Criteria{SellerID: "nobody"}, dec("5"))
	assert.Equal(t, ReportEmpty, empty.State)
	assert.NotNil(t, empty.Results)
	assert.Empty(t, empty.Results)

	populated := RunReport(sampleSales(), Criteria{SellerID: "1"}, dec("10"))
	assert.Equal(t, ReportPopulated, populated.State)
	assertDecimal(t, "31", populated.Summary.TotalSales)
	assertDecimal(t, "3.1", populated.Summary.Commission)
	assertDecimal(t, "10", populated.CommissionPercent)
}

func TestReportState_JSON(t *testing.T) {
	b, err := json.Marshal(RunReport(nil, Criteria{}, decimal.Zero))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"state":"empty"`)

	var decoded Report
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, ReportEmpty, decoded.State)

	var s ReportState
	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &s))
}
