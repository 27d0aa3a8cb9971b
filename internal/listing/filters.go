package listing

import (
	"net/url"
	"strings"
	"time"

	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/shopspring/decimal"
)

// DateLayout is the layout of date filter inputs.
const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar-day range. Either bound may be empty.
type DateRange struct {
	Start string
	End   string
}

// Contains reports whether t falls within the range. Unparseable bounds are
// ignored; the end bound covers the whole end day.
func (d DateRange) Contains(t time.Time) bool {
	if start, err := time.Parse(DateLayout, d.Start); err == nil && t.Before(start) {
		return false
	}
	if end, err := time.Parse(DateLayout, d.End); err == nil && !t.Before(end.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Bounds returns the parsed range as [from, to) with zero values for open
// ends.
func (d DateRange) Bounds() (from, to time.Time) {
	if t, err := time.Parse(DateLayout, d.Start); err == nil {
		from = t
	}
	if t, err := time.Parse(DateLayout, d.End); err == nil {
		to = t.AddDate(0, 0, 1)
	}
	return from, to
}

// ProductFilter narrows the product list. It is forwarded to the backend.
type ProductFilter struct {
	StartDate        string
	EndDate          string
	Name             string
	Category         string
	SubCategory      string
	HasMinOrder      bool
	HasQuantityPrice bool
}

func (f ProductFilter) Fields() map[string]any {
	return map[string]any{
		"startDate":        f.StartDate,
		"endDate":          f.EndDate,
		"name":             f.Name,
		"category":         f.Category,
		"subCategory":      f.SubCategory,
		"hasMinOrder":      f.HasMinOrder,
		"hasQuantityPrice": f.HasQuantityPrice,
	}
}

func (f ProductFilter) Encode(v url.Values) {
	setNonEmpty(v, "startDate", f.StartDate)
	setNonEmpty(v, "endDate", f.EndDate)
	setNonEmpty(v, "name", f.Name)
	setNonEmpty(v, "category", f.Category)
	setNonEmpty(v, "subCategory", f.SubCategory)
	setFlag(v, "hasMinOrder", f.HasMinOrder)
	setFlag(v, "hasQuantityPrice", f.HasQuantityPrice)
}

func (f ProductFilter) IsZero() bool {
	return f == ProductFilter{}
}

func ParseProductFilter(v url.Values) ProductFilter {
	return ProductFilter{
		StartDate:        strings.TrimSpace(v.Get("startDate")),
		EndDate:          strings.TrimSpace(v.Get("endDate")),
		Name:             strings.TrimSpace(v.Get("name")),
		Category:         v.Get("category"),
		SubCategory:      v.Get("subCategory"),
		HasMinOrder:      flag(v.Get("hasMinOrder")),
		HasQuantityPrice: flag(v.Get("hasQuantityPrice")),
	}
}

// Match evaluates the filter against one product.
func (f ProductFilter) Match(p models.Product) bool {
	if !(DateRange{f.StartDate, f.EndDate}).Contains(p.Date.Time()) {
		return false
	}
	if f.Name != "" && !containsFold(p.Name, f.Name) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.SubCategory != "" && p.SubCategory != f.SubCategory {
		return false
	}
	if f.HasMinOrder && p.MinOrderQuantity <= 1 {
		return false
	}
	if f.HasQuantityPrice && !p.HasTieredPricing() {
		return false
	}
	return true
}

// OrderFilter narrows the order list. It is forwarded to the backend.
type OrderFilter struct {
	StartDate     string
	EndDate       string
	Email         string
	PaymentType   string
	Amount        string
	Status        string
	PaymentStatus string
}

func (f OrderFilter) Fields() map[string]any {
	return map[string]any{
		"startDate":     f.StartDate,
		"endDate":       f.EndDate,
		"email":         f.Email,
		"paymentType":   f.PaymentType,
		"amount":        f.Amount,
		"status":        f.Status,
		"paymentStatus": f.PaymentStatus,
	}
}

func (f OrderFilter) Encode(v url.Values) {
	setNonEmpty(v, "startDate", f.StartDate)
	setNonEmpty(v, "endDate", f.EndDate)
	setNonEmpty(v, "email", f.Email)
	setNonEmpty(v, "paymentType", f.PaymentType)
	setNonEmpty(v, "amount", f.Amount)
	setNonEmpty(v, "status", f.Status)
	setNonEmpty(v, "paymentStatus", f.PaymentStatus)
}

func (f OrderFilter) IsZero() bool {
	return f == OrderFilter{}
}

func ParseOrderFilter(v url.Values) OrderFilter {
	return OrderFilter{
		StartDate:     strings.TrimSpace(v.Get("startDate")),
		EndDate:       strings.TrimSpace(v.Get("endDate")),
		Email:         strings.TrimSpace(v.Get("email")),
		PaymentType:   v.Get("paymentType"),
		Amount:        strings.TrimSpace(v.Get("amount")),
		Status:        v.Get("status"),
		PaymentStatus: v.Get("paymentStatus"),
	}
}

// AmountValue returns the amount constraint and whether it applies. Values
// that do not parse as a number impose no constraint.
func (f OrderFilter) AmountValue() (decimal.Decimal, bool) {
	if f.Amount == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(f.Amount)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// PaymentValue returns the payment flag constraint and whether it applies.
func (f OrderFilter) PaymentValue() (paid bool, ok bool) {
	switch f.PaymentStatus {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// Match evaluates the filter against one order.
func (f OrderFilter) Match(o models.Order) bool {
	if !(DateRange{f.StartDate, f.EndDate}).Contains(o.Date.Time()) {
		return false
	}
	if f.Email != "" && !containsFold(o.Address.Email, f.Email) {
		return false
	}
	if f.PaymentType != "" && !strings.EqualFold(o.PaymentMethod, f.PaymentType) {
		return false
	}
	if amount, ok := f.AmountValue(); ok && !decimal.NewFromFloat(o.Amount).Equal(amount) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(o.Status, f.Status) {
		return false
	}
	if paid, ok := f.PaymentValue(); ok && o.Payment != paid {
		return false
	}
	return true
}

// ContactFilter narrows the contact list. The contact endpoint returns the
// full list, so this filter is only ever applied client-side.
type ContactFilter struct {
	Status string
	Email  string
}

func (f ContactFilter) Fields() map[string]any {
	return map[string]any{"status": f.Status, "email": f.Email}
}

func (f ContactFilter) Encode(v url.Values) {
	setNonEmpty(v, "status", f.Status)
	setNonEmpty(v, "email", f.Email)
}

func (f ContactFilter) IsZero() bool {
	return f == ContactFilter{}
}

func ParseContactFilter(v url.Values) ContactFilter {
	return ContactFilter{
		Status: v.Get("status"),
		Email:  strings.TrimSpace(v.Get("email")),
	}
}

func (f ContactFilter) Match(c models.Contact) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Email != "" && !containsFold(c.Email, f.Email) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func setNonEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setFlag(v url.Values, key string, on bool) {
	if on {
		v.Set(key, "true")
	}
}

func flag(s string) bool {
	switch strings.ToLower(s) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// None is the filter of lists that are paginated but not filtered.
type None struct{}

func (None) Fields() map[string]any { return map[string]any{} }

func (None) Encode(url.Values) {}

func (None) IsZero() bool { return true }

func ParseNone(url.Values) None { return None{} }
