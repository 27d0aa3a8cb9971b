package forms

import (
	"net/url"
	"strings"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/shopspring/decimal"
)

// TierInput is one editable row of the quantity price list.
type TierInput struct {
	Quantity string
	Price    string
}

// DefaultTiers prefill the quantity price list editor.
var DefaultTiers = []TierInput{
	{"100", "95"},
	{"250", "140"},
	{"500", "210"},
	{"1000", "325"},
}

type ProductForm struct {
	Name             string `validate:"required"`
	Description      string `validate:"required"`
	Price            string `validate:"required"`
	Category         string
	SubCategory      string
	Bestseller       bool
	EnableMinOrder   bool
	MinOrderQuantity string
	EnableTiers      bool
	Tiers            []TierInput
}

var productMessages = map[string]string{
	"Name":        "Product name is required",
	"Description": "Product description is required",
	"Price":       "Product price is required",
}

// NewProductForm returns the blank add-product form.
func NewProductForm() ProductForm {
	return ProductForm{
		Category:         models.Categories[0].Value,
		SubCategory:      models.SubCategories[0].Value,
		MinOrderQuantity: "1",
		Tiers:            append([]TierInput(nil), DefaultTiers...),
	}
}

// ParseProductForm reads the form. Tier rows arrive as parallel
// tierQuantity/tierPrice values; rows with both cells blank are dropped.
func ParseProductForm(v url.Values) ProductForm {
	f := ProductForm{
		Name:             trimmed(v, "name"),
		Description:      trimmed(v, "description"),
		Price:            trimmed(v, "price"),
		Category:         v.Get("category"),
		SubCategory:      v.Get("subCategory"),
		Bestseller:       checked(v, "bestseller"),
		EnableMinOrder:   checked(v, "enableMinOrder"),
		MinOrderQuantity: trimmed(v, "minOrderQuantity"),
		EnableTiers:      checked(v, "enableQuantityPriceList"),
	}
	qs, ps := v["tierQuantity"], v["tierPrice"]
	for i := 0; i < max(len(qs), len(ps)); i++ {
		var t TierInput
		if i < len(qs) {
			t.Quantity = strings.TrimSpace(qs[i])
		}
		if i < len(ps) {
			t.Price = strings.TrimSpace(ps[i])
		}
		if t.Quantity == "" && t.Price == "" {
			continue
		}
		f.Tiers = append(f.Tiers, t)
	}
	return f
}

func (f ProductForm) Validate() error {
	if err := check(f, productMessages); err != nil {
		return err
	}
	if f.EnableTiers {
		if _, err := f.tiers(); err != nil {
			return err
		}
	}
	return nil
}

func (f ProductForm) tiers() (models.PriceTiers, error) {
	out := make(models.PriceTiers, 0, len(f.Tiers))
	for _, t := range f.Tiers {
		q, qerr := decimal.NewFromString(t.Quantity)
		p, perr := decimal.NewFromString(t.Price)
		if qerr != nil || perr != nil {
			return nil, &ValidationError{Field: "Tiers", Message: "Please enter a valid quantity and price"}
		}
		out = append(out, models.QuantityPrice{Quantity: q, Price: p})
	}
	return out, nil
}

// Payload converts a valid form into the add-product request. Images are
// attached by the caller. The minimum order quantity and tier list are only
// sent when their toggles are on.
func (f ProductForm) Payload() (api.NewProduct, error) {
	p := api.NewProduct{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		SubCategory: f.SubCategory,
		Bestseller:  f.Bestseller,
	}
	if f.EnableMinOrder {
		p.MinOrderQuantity = f.MinOrderQuantity
	}
	if f.EnableTiers {
		tiers, err := f.tiers()
		if err != nil {
			return api.NewProduct{}, err
		}
		p.QuantityPriceList = tiers
	}
	return p, nil
}
