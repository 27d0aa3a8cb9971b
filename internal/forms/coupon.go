package forms

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CouponForm struct {
	// ID is set when editing; the code is then read-only.
	ID            string
	Code          string `validate:"required"`
	DiscountType  string `validate:"oneof=percentage fixed"`
	DiscountValue string `validate:"positive"`
	MinOrderValue string `validate:"decimal"`
	MaxUses       string `validate:"omitempty,number"`
	StartDate     string
	EndDate       string
	IsActive      bool
}

var couponMessages = map[string]string{
	"Code":          "Coupon code is required",
	"DiscountType":  "Please choose a discount type",
	"DiscountValue": "Please enter a valid discount value",
	"MinOrderValue": "Please enter a valid minimum order value",
	"MaxUses":       "Please enter a valid maximum number of uses",
}

// NewCouponForm returns the blank form with the start date set to now.
func NewCouponForm(now time.Time) CouponForm {
	return CouponForm{
		DiscountType:  models.DiscountPercentage,
		MinOrderValue: "0",
		StartDate:     now.UTC().Format(dateLayout),
		IsActive:      true,
	}
}

// CouponFormFrom prefills the form from an existing coupon.
func CouponFormFrom(c models.Coupon) CouponForm {
	f := CouponForm{
		ID:            c.ID,
		Code:          c.Code,
		DiscountType:  c.DiscountType,
		DiscountValue: decimal.NewFromFloat(c.DiscountValue).String(),
		MinOrderValue: decimal.NewFromFloat(c.MinOrderValue).String(),
		IsActive:      c.IsActive,
	}
	if c.MaxUses != nil {
		f.MaxUses = strconv.Itoa(*c.MaxUses)
	}
	if !c.StartDate.IsZero() {
		f.StartDate = c.StartDate.UTC().Format(dateLayout)
	}
	if c.EndDate != nil && !c.EndDate.IsZero() {
		f.EndDate = c.EndDate.UTC().Format(dateLayout)
	}
	return f
}

func ParseCouponForm(v url.Values) CouponForm {
	return CouponForm{
		ID:            trimmed(v, "id"),
		Code:          strings.ToUpper(trimmed(v, "code")),
		DiscountType:  v.Get("discountType"),
		DiscountValue: trimmed(v, "discountValue"),
		MinOrderValue: trimmed(v, "minOrderValue"),
		MaxUses:       trimmed(v, "maxUses"),
		StartDate:     trimmed(v, "startDate"),
		EndDate:       trimmed(v, "endDate"),
		IsActive:      checked(v, "isActive"),
	}
}

func (f CouponForm) Editing() bool {
	return f.ID != ""
}

func (f CouponForm) Validate() error {
	return check(f, couponMessages)
}

// Input converts a valid form into the request payload. An empty minimum
// order value becomes 0 and an empty max uses becomes null.
func (f CouponForm) Input() api.CouponInput {
	in := api.CouponInput{
		Code:         f.Code,
		DiscountType: f.DiscountType,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		IsActive:     f.IsActive,
	}
	if d, err := decimal.NewFromString(f.DiscountValue); err == nil {
		in.DiscountValue = d.InexactFloat64()
	}
	if d, err := decimal.NewFromString(f.MinOrderValue); err == nil {
		in.MinOrderValue = d.InexactFloat64()
	}
	if n, err := strconv.Atoi(f.MaxUses); err == nil {
		in.MaxUses = &n
	}
	return in
}
