package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Seed is the YAML fixture format accepted by LoadSeed.
type Seed struct {
	Products []SeedProduct        `yaml:"products"`
	Orders   []SeedOrder          `yaml:"orders"`
	Contacts []models.Contact     `yaml:"contacts"`
	Coupons  []SeedCoupon         `yaml:"coupons"`
	Wallets  []SeedWallet         `yaml:"wallets"`
	Blogs    []SeedBlog           `yaml:"blogs"`
	Settings *models.SiteSettings `yaml:"settings"`
}

type SeedTier struct {
	Quantity string `yaml:"quantity"`
	Price    string `yaml:"price"`
}

type SeedProduct struct {
	Name              string     `yaml:"name"`
	Description       string     `yaml:"description"`
	Price             float64    `yaml:"price"`
	Category          string     `yaml:"category"`
	SubCategory       string     `yaml:"subCategory"`
	Images            []string   `yaml:"images"`
	Bestseller        bool       `yaml:"bestseller"`
	MinOrderQuantity  int        `yaml:"minOrderQuantity"`
	QuantityPriceList []SeedTier `yaml:"quantityPriceList"`
	Date              time.Time  `yaml:"date"`
}

type SeedOrder struct {
	ID            string                `yaml:"id"`
	Items         []models.OrderItem    `yaml:"items"`
	Address       models.Address        `yaml:"address"`
	Amount        float64               `yaml:"amount"`
	PaymentMethod string                `yaml:"paymentMethod"`
	ManualPayment *models.ManualPayment `yaml:"manualPaymentDetails"`
	Status        string                `yaml:"status"`
	Payment       bool                  `yaml:"payment"`
	Date          time.Time             `yaml:"date"`
}

type SeedCoupon struct {
	Code          string     `yaml:"code"`
	DiscountType  string     `yaml:"discountType"`
	DiscountValue float64    `yaml:"discountValue"`
	MinOrderValue float64    `yaml:"minOrderValue"`
	MaxUses       *int       `yaml:"maxUses"`
	UsedCount     int        `yaml:"usedCount"`
	StartDate     time.Time  `yaml:"startDate"`
	EndDate       *time.Time `yaml:"endDate"`
	IsActive      bool       `yaml:"isActive"`
}

type SeedWallet struct {
	CryptoType    string `yaml:"cryptoType"`
	Network       string `yaml:"network"`
	WalletAddress string `yaml:"walletAddress"`
	QRCodeImage   string `yaml:"qrCodeImage"`
	IsActive      bool   `yaml:"isActive"`
}

type SeedBlog struct {
	Title       string    `yaml:"title"`
	Author      string    `yaml:"author"`
	Content     string    `yaml:"content"`
	Image       string    `yaml:"image"`
	IsPublished bool      `yaml:"isPublished"`
	CreatedAt   time.Time `yaml:"createdAt"`
}

// ParseSeed decodes a YAML fixture document.
func ParseSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	return &seed, nil
}

// LoadSeed inserts every fixture in one transaction.
func (s *Store) LoadSeed(ctx context.Context, seed *Seed) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, sp := range seed.Products {
		p := models.Product{
			Name:             sp.Name,
			Description:      sp.Description,
			Price:            sp.Price,
			Category:         sp.Category,
			SubCategory:      sp.SubCategory,
			Images:           sp.Images,
			Bestseller:       sp.Bestseller,
			MinOrderQuantity: sp.MinOrderQuantity,
		}
		if !sp.Date.IsZero() {
			p.Date = models.MillisOf(sp.Date)
		}
		for _, t := range sp.QuantityPriceList {
			q, qerr := decimal.NewFromString(t.Quantity)
			pr, perr := decimal.NewFromString(t.Price)
			if qerr != nil || perr != nil {
				return fmt.Errorf("product %d (%s): invalid price tier %+v", i, sp.Name, t)
			}
			p.QuantityPriceList = append(p.QuantityPriceList, models.QuantityPrice{Quantity: q, Price: pr})
		}
		if err := createProduct(ctx, tx, &p); err != nil {
			return fmt.Errorf("product %d (%s): %w", i, sp.Name, err)
		}
	}

	for i, so := range seed.Orders {
		o := models.Order{
			ID:                   so.ID,
			Items:                so.Items,
			Address:              so.Address,
			Amount:               so.Amount,
			PaymentMethod:        so.PaymentMethod,
			ManualPaymentDetails: so.ManualPayment,
			Status:               so.Status,
			Payment:              so.Payment,
		}
		if !so.Date.IsZero() {
			o.Date = models.MillisOf(so.Date)
		}
		if err := createOrder(ctx, tx, &o); err != nil {
			return fmt.Errorf("order %d: %w", i, err)
		}
	}

	for i := range seed.Contacts {
		if err := createContact(ctx, tx, &seed.Contacts[i]); err != nil {
			return fmt.Errorf("contact %d: %w", i, err)
		}
	}

	for i, sc := range seed.Coupons {
		c := models.Coupon{
			Code:          sc.Code,
			DiscountType:  sc.DiscountType,
			DiscountValue: sc.DiscountValue,
			MinOrderValue: sc.MinOrderValue,
			MaxUses:       sc.MaxUses,
			UsedCount:     sc.UsedCount,
			StartDate:     sc.StartDate,
			EndDate:       sc.EndDate,
			IsActive:      sc.IsActive,
		}
		if err := createCoupon(ctx, tx, &c); err != nil {
			return fmt.Errorf("coupon %d (%s): %w", i, sc.Code, err)
		}
	}

	for i, sw := range seed.Wallets {
		w := models.CryptoWallet{
			CryptoType:    sw.CryptoType,
			Network:       sw.Network,
			WalletAddress: sw.WalletAddress,
			QRCodeImage:   sw.QRCodeImage,
			IsActive:      sw.IsActive,
		}
		if err := createWallet(ctx, tx, &w); err != nil {
			return fmt.Errorf("wallet %d: %w", i, err)
		}
	}

	for i, sb := range seed.Blogs {
		b := models.Blog{
			Title:       sb.Title,
			Author:      sb.Author,
			Content:     sb.Content,
			Image:       sb.Image,
			IsPublished: sb.IsPublished,
			CreatedAt:   sb.CreatedAt,
		}
		if err := createBlog(ctx, tx, &b); err != nil {
			return fmt.Errorf("blog %d: %w", i, err)
		}
	}

	if seed.Settings != nil {
		if err := saveSettings(ctx, tx, *seed.Settings); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	}

	return tx.Commit()
}
