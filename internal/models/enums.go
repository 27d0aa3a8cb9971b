package models

// Order statuses in fulfilment order.
const (
	StatusOrderPlaced    = "Order Placed"
	StatusPacking        = "Packing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
)

var OrderStatuses = []string{
	StatusOrderPlaced,
	StatusPacking,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

const (
	PaymentCOD      = "COD"
	PaymentManual   = "Manual"
	PaymentRazorpay = "Razorpay"
	PaymentStripe   = "Stripe"
)

var PaymentMethods = []string{PaymentCOD, PaymentManual, PaymentRazorpay, PaymentStripe}

const (
	ContactUnread    = "Unread"
	ContactRead      = "Read"
	ContactResponded = "Responded"
)

var ContactStatuses = []string{ContactUnread, ContactRead, ContactResponded}

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

var DiscountTypes = []string{DiscountPercentage, DiscountFixed}

// Option is a value/label pair for select inputs.
type Option struct {
	Value string
	Label string
}

var CryptoTypes = []Option{
	{"BTC", "Bitcoin (BTC)"},
	{"USDT", "Tether (USDT)"},
	{"ETH", "Ethereum (ETH)"},
	{"BNB", "Binance Coin (BNB)"},
	{"USDC", "USD Coin (USDC)"},
	{"XRP", "XRP"},
	{"ADA", "Cardano (ADA)"},
	{"SOL", "Solana (SOL)"},
	{"DOGE", "Dogecoin (DOGE)"},
}

var Categories = []Option{
	{"Prescription", "Prescription Medicines"},
	{"OTC", "Over The Counter"},
	{"Healthcare", "Healthcare Devices"},
	{"Wellness", "Wellness Products"},
	{"Personal Care", "Personal Care"},
	{"Ayurvedic", "Ayurvedic Medicines"},
}

var SubCategories = []Option{
	{"Tablets", "Tablets"},
	{"Capsules", "Capsules"},
	{"Syrups", "Syrups"},
	{"Injectables", "Injectables"},
	{"Topical", "Topical Applications"},
	{"Drops", "Drops"},
	{"Equipment", "Medical Equipment"},
}

// ValidOption reports whether value is one of opts.
func ValidOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Contains reports whether value is one of values.
func Contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
