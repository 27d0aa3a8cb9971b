package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                string     `json:"_id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Price             float64    `json:"price"`
	Category          string     `json:"category"`
	SubCategory       string     `json:"subCategory"`
	Images            []string   `json:"image"`
	Bestseller        bool       `json:"bestseller"`
	MinOrderQuantity  int        `json:"minOrderQuantity,omitempty"`
	QuantityPriceList PriceTiers `json:"quantityPriceList,omitempty"`
	Date              Millis     `json:"date"`
}

// HasTieredPricing reports whether the tier list overrides the flat price.
func (p Product) HasTieredPricing() bool {
	return len(p.QuantityPriceList) > 0
}

// QuantityPrice is one tier of a product's quantity price list.
type QuantityPrice struct {
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type OrderItem struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
	Image    string `json:"image,omitempty" yaml:"image"`
}

type Address struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Street    string `json:"street" yaml:"street"`
	City      string `json:"city" yaml:"city"`
	State     string `json:"state" yaml:"state"`
	Country   string `json:"country" yaml:"country"`
	Zipcode   string `json:"zipcode" yaml:"zipcode"`
}

func (a Address) Name() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Manual payment variants, keyed by ManualPayment.PaymentType.
const (
	ManualPayPal     = "paypal"
	ManualCrypto     = "crypto"
	ManualCreditCard = "credit_card"
	ManualDebitCard  = "debit_card"
)

type ManualPayment struct {
	PaymentType         string `json:"paymentType" yaml:"paymentType"`
	PayPalEmail         string `json:"paypalEmail,omitempty" yaml:"paypalEmail"`
	CryptoTransactionID string `json:"cryptoTransactionId,omitempty" yaml:"cryptoTransactionId"`
	CardNumber          string `json:"cardNumber,omitempty" yaml:"cardNumber"`
	CardHolderName      string `json:"cardHolderName,omitempty" yaml:"cardHolderName"`
	ExpiryDate          string `json:"expiryDate,omitempty" yaml:"expiryDate"`
	CVV                 string `json:"cvv,omitempty" yaml:"cvv"`
}

// IsCard reports whether the payment was made with a credit or debit card.
func (m ManualPayment) IsCard() bool {
	return m.PaymentType == ManualCreditCard || m.PaymentType == ManualDebitCard
}

type Order struct {
	ID                   string         `json:"_id"`
	UserID               string         `json:"userId,omitempty"`
	Items                []OrderItem    `json:"items"`
	Address              Address        `json:"address"`
	Amount               float64        `json:"amount"`
	PaymentMethod        string         `json:"paymentMethod"`
	ManualPaymentDetails *ManualPayment `json:"manualPaymentDetails,omitempty"`
	Status               string         `json:"status"`
	Payment              bool           `json:"payment"`
	Date                 Millis         `json:"date"`
}

// PaymentEditable reports whether the payment flag may be changed by hand.
// Gateway payments (Razorpay, Stripe) are settled by the gateway.
func (o Order) PaymentEditable() bool {
	return o.PaymentMethod == PaymentCOD || o.PaymentMethod == PaymentManual
}

type Contact struct {
	ID      string    `json:"_id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Email   string    `json:"email" yaml:"email"`
	Phone   string    `json:"phone" yaml:"phone"`
	Message string    `json:"message" yaml:"message"`
	Status  string    `json:"status" yaml:"status"`
	Date    time.Time `json:"date" yaml:"date"`
}

type Coupon struct {
	ID            string     `json:"_id"`
	Code          string     `json:"code"`
	DiscountType  string     `json:"discountType"`
	DiscountValue float64    `json:"discountValue"`
	MinOrderValue float64    `json:"minOrderValue"`
	MaxUses       *int       `json:"maxUses"`
	UsedCount     int        `json:"usedCount"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	IsActive      bool       `json:"isActive"`
}

type CryptoWallet struct {
	ID            string `json:"_id"`
	CryptoType    string `json:"cryptoType"`
	Network       string `json:"network"`
	WalletAddress string `json:"walletAddress"`
	QRCodeImage   string `json:"qrCodeImage"`
	IsActive      bool   `json:"isActive"`
}

type Blog struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SiteSettings is the singleton settings record. It has no id.
type SiteSettings struct {
	ContactEmail   string `json:"contactEmail" yaml:"contactEmail"`
	ContactPhone   string `json:"contactPhone" yaml:"contactPhone"`
	ContactAddress string `json:"contactAddress" yaml:"contactAddress"`
	BusinessHours  string `json:"businessHours" yaml:"businessHours"`
	FooterEmail    string `json:"footerEmail" yaml:"footerEmail"`
	FooterPhone    string `json:"footerPhone" yaml:"footerPhone"`
}

// Pagination is the metadata returned next to a page of list results.
type Pagination struct {
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// BlogPagination is the blog listing's own pagination shape.
type BlogPagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalBlogs  int `json:"totalBlogs"`
}
