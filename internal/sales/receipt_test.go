package sales

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReceipt(t *testing.T) {
	items, err := AddItem(nil, ItemInput{Name: "Bread", Quantity: dec("2"), UnitPrice: dec("3.5")})
	require.NoError(t, err)
	items, err = AddItem(items, ItemInput{Name: "Ham", Quantity: dec("0.250"), UnitPrice: dec("39.90")})
	require.NoError(t, err)

	sale, err := NewSale("1", items, PaymentInstantTransfer, time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, RenderReceipt(&sb, sale, "João Silva"))
	out := sb.String()

	assert.Contains(t, out, "SALE RECEIPT")
	assert.Contains(t, out, "Date: 2024-03-10")
	assert.Contains(t, out, "Seller: João Silva")
	assert.Contains(t, out, "Bread")
	assert.Contains(t, out, "2.000")
	assert.Contains(t, out, "3.50")
	assert.Contains(t, out, "7.00")
	assert.Contains(t, out, "0.250")
	assert.Contains(t, out, "39.90")
	assert.Contains(t, out, "9.98")
	assert.Contains(t, out, "Total:")
	assert.Contains(t, out, "16.98")
	assert.Contains(t, out, "Payment: Instant transfer")

	lines := strings.Split(out, "\n")
	var rows int
	for _, l := range lines {
		if strings.Contains(l, "Bread") || strings.Contains(l, "Ham") {
			rows++
		}
	}
	assert.Equal(t, 2, rows, "Expected one row per item")
}
