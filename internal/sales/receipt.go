package sales

import (
	"fmt"
	"io"
	"text/tabwriter"
)

const receiptDateLayout = "2006-01-02"

// RenderReceipt writes a printable plain-text receipt for sale.
// Money is printed with two decimals and quantities with three.
func RenderReceipt(w io.Writer, sale Sale, sellerName string) error {
	if _, err := fmt.Fprintf(w, "SALE RECEIPT\nDate: %s\nSeller: %s\n\n",
		sale.CreatedAt.Format(receiptDateLayout), sellerName); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tItem\tQty\tUnit\tSubtotal\t")
	for i, it := range sale.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			i+1, it.Name, it.Quantity.StringFixed(3), it.UnitPrice.StringFixed(2), it.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t\tTotal:\t%s\t\n", sale.Total.StringFixed(2))
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nPayment: %s\n", sale.PaymentMethod.Label())
	return err
}
