package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/config"
	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/alextreichler/pharmadmin/internal/store"
)

const usage = "expected 'seed' or 'orders' subcommand"

func main() {
	config.LoadEnvFile()

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedFile := seedCmd.String("file", "seed.yaml", "YAML fixture file to load")
	seedDB := seedCmd.String("db", getEnv("DEVAPI_DB_PATH", "./devapi.db"), "Dev API database path")

	orders := newOrdersFlags(flag.ExitOnError)

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		seed(*seedDB, *seedFile)
	case "orders":
		orders.Parse(os.Args[2:])
		if orders.email == "" || orders.password == "" {
			fmt.Println("email and password are required")
			orders.PrintDefaults()
			os.Exit(1)
		}
		state, err := orders.state()
		if err != nil {
			log.Fatal(err)
		}
		listOrders(orders.backend, orders.email, orders.password, state)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

type ordersFlags struct {
	*flag.FlagSet
	backend, email, password string
	page, limit              int
	filter                   listing.OrderFilter
}

func newOrdersFlags(onError flag.ErrorHandling) *ordersFlags {
	f := &ordersFlags{FlagSet: flag.NewFlagSet("orders", onError)}
	f.StringVar(&f.backend, "backend", getEnv("BACKEND_URL", "http://localhost:4000"), "Backend base URL")
	f.StringVar(&f.email, "email", getEnv("ADMIN_EMAIL", ""), "Admin email")
	f.StringVar(&f.password, "password", os.Getenv("ADMIN_PASSWORD"), "Admin password")
	f.IntVar(&f.page, "page", 1, "Page number")
	f.IntVar(&f.limit, "limit", listing.DefaultPageSize, "Page size (10, 20, 50 or 100)")
	f.StringVar(&f.filter.Status, "status", "", "Filter by order status")
	f.StringVar(&f.filter.Email, "customer", "", "Filter by customer email")
	f.StringVar(&f.filter.PaymentType, "payment-type", "", "Filter by payment method")
	f.StringVar(&f.filter.Amount, "amount", "", "Filter by exact order amount")
	f.StringVar(&f.filter.PaymentStatus, "paid", "", "Filter by payment status (true or false)")
	f.StringVar(&f.filter.StartDate, "from", "", "Orders placed on or after this date (YYYY-MM-DD)")
	f.StringVar(&f.filter.EndDate, "to", "", "Orders placed on or before this date (YYYY-MM-DD)")
	return f
}

// state builds the list state the parsed flags ask for.
func (f *ordersFlags) state() (*listing.State[listing.OrderFilter], error) {
	state := listing.NewState(f.filter)
	if err := state.SetPageSize(f.limit); err != nil {
		return nil, err
	}
	state.SetPage(f.page)
	return state, nil
}

func seed(dbPath, file string) {
	ctx := context.Background()
	f, err := os.Open(file)
	if err != nil {
		log.Fatalf("Failed to open seed file: %v", err)
	}
	defer f.Close()

	fixtures, err := store.ParseSeed(f)
	if err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	// Ensure tables exist if running cli before the dev API
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := db.LoadSeed(ctx, fixtures); err != nil {
		log.Fatalf("Failed to load seed: %v", err)
	}

	counts, err := db.GetCounts(ctx)
	if err != nil {
		log.Fatalf("Failed to count records: %v", err)
	}
	fmt.Printf("Seeded %s: %d products, %d orders, %d contacts, %d coupons, %d wallets, %d blogs.\n",
		dbPath, counts.Products, counts.Orders, counts.Contacts, counts.Coupons, counts.Wallets, counts.Blogs)
}

func listOrders(backend, email, password string, state *listing.State[listing.OrderFilter]) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.New(backend)
	cred, err := client.AdminLogin(ctx, email, password)
	if err != nil {
		log.Fatalf("Login failed: %s", api.Message(err))
	}
	res, err := listing.NewLoader(func(ctx context.Context, q listing.Query[listing.OrderFilter]) (listing.Result[models.Order], error) {
		return client.ListOrders(ctx, cred, q)
	}).Load(ctx, state)
	if err != nil {
		log.Fatalf("Failed to list orders: %s", api.Message(err))
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCUSTOMER\tITEMS\tAMOUNT\tMETHOD\tPAID\tSTATUS")
	for _, o := range res.Items {
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%t\t%s\n",
			o.Date.Time().UTC().Format("2006-01-02"), o.Address.Email, strings.Join(names, ", "),
			o.Amount, o.PaymentMethod, o.Payment, o.Status)
	}
	tw.Flush()
	fmt.Printf("Page %d of %d (%d orders)\n", res.Page, res.DisplayPages(), res.Total)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
