package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos_sales/pkg/client"
	"pos_sales/pkg/logger"
)

const usage = `usage: posctl <command> [flags]

commands:
  sellers                      list sellers
  add-seller -name NAME        register a seller
  rm-seller  -id ID            remove a seller without sales
  sale -seller ID -pay METHOD -item "name:qty:price" [-item ...]
  report [-seller ID] [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-commission PCT]
  receipt [-id SALE_ID]        print a receipt (default: last sale)
`

type itemFlags []string

func (f *itemFlags) String() string     { return strings.Join(*f, ",") }
func (f *itemFlags) Set(v string) error { *f = append(*f, v); return nil }

func main() {
	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	baseURL := os.Getenv("POS_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8081"
	}
	c := client.New(baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, c, os.Args[1], os.Args[2:]); err != nil {
		log.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)

	switch cmd {
	case "sellers":
		list, err := c.Sellers(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME")
		for _, s := range list {
			fmt.Fprintf(tw, "%s\t%s\n", s.ID, s.Name)
		}
		return tw.Flush()

	case "add-seller":
		name := fs.String("name", "", "seller name")
		_ = fs.Parse(args)
		s, err := c.AddSeller(ctx, *name)
		if err != nil {
			return err
		}
		fmt.Printf("added seller %s (%s)\n", s.ID, s.Name)
		return nil

	case "rm-seller":
		id := fs.String("id", "", "seller id")
		_ = fs.Parse(args)
		if err := c.RemoveSeller(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("removed seller %s\n", *id)
		return nil

	case "sale":
		seller := fs.String("seller", "", "seller id")
		pay := fs.String("pay", "cash", "payment method: cash, credit, debit, instant-transfer")
		var items itemFlags
		fs.Var(&items, "item", `line item as "name:quantity:unit_price" (repeatable, max 5)`)
		_ = fs.Parse(args)

		req := client.CreateSaleRequest{SellerID: *seller, PaymentMethod: *pay}
		for _, raw := range items {
			it, err := parseItem(raw)
			if err != nil {
				return err
			}
			req.Items = append(req.Items, it)
		}
		sale, err := c.CreateSale(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("sale %s saved, total %s\n", sale.ID, sale.Total.StringFixed(2))
		return nil

	case "report":
		q := client.Query{}
		fs.StringVar(&q.SellerID, "seller", "", "seller id")
		fs.StringVar(&q.DateFrom, "from", "", "first day, YYYY-MM-DD")
		fs.StringVar(&q.DateTo, "to", "", "last day, YYYY-MM-DD")
		fs.StringVar(&q.Commission, "commission", "", "commission percentage")
		_ = fs.Parse(args)

		report, err := c.QuerySales(ctx, q)
		if err != nil {
			return err
		}
		if len(report.Results) == 0 {
			fmt.Println("no sales found for the selected filters")
			return nil
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tSELLER\tITEMS\tPAYMENT\tTOTAL")
		for _, s := range report.Results {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
				s.CreatedAt.Format("2006-01-02"), s.SellerID, len(s.Items), s.PaymentMethod, s.Total.StringFixed(2))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Printf("total sales: %s\ncommission (%s%%): %s\n",
			report.Summary.TotalSales.StringFixed(2), report.CommissionPercent.String(), report.Summary.Commission.StringFixed(2))
		return nil

	case "receipt":
		id := fs.String("id", "", "sale id")
		_ = fs.Parse(args)
		text, err := c.Receipt(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	}

	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

func parseItem(raw string) (client.Item, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return client.Item{}, fmt.Errorf("item %q: want name:quantity:unit_price", raw)
	}
	qty, err := decimal.NewFromString(parts[1])
	if err != nil {
		return client.Item{}, fmt.Errorf("item %q quantity: %w", raw, err)
	}
	price, err := decimal.NewFromString(parts[2])
	if err != nil {
		return client.Item{}, fmt.Errorf("item %q unit price: %w", raw, err)
	}
	return client.Item{Name: parts[0], Quantity: qty, UnitPrice: price}, nil
}
