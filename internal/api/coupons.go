package api

import (
	"context"

	"github.com/alextreichler/pharmadmin/internal/models"
)

// CouponInput is the create/update payload. Dates use the 2006-01-02
// layout; an empty EndDate means no expiry.
type CouponInput struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
	MinOrderValue float64 `json:"minOrderValue"`
	MaxUses       *int    `json:"maxUses"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	IsActive      bool    `json:"isActive"`
}

func (c *Client) ListCoupons(ctx context.Context, cred Credential) ([]models.Coupon, error) {
	var out struct {
		Coupons []models.Coupon `json:"coupons"`
	}
	if err := c.getJSON(ctx, &cred, "/api/order/coupons", &out); err != nil {
		return nil, err
	}
	return out.Coupons, nil
}

func (c *Client) AddCoupon(ctx context.Context, cred Credential, in CouponInput) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/order/coupon/add", in, &out)
	return out.Message, err
}

func (c *Client) UpdateCoupon(ctx context.Context, cred Credential, id string, in CouponInput) (string, error) {
	payload := struct {
		CouponInput
		CouponID string `json:"couponId"`
	}{in, id}
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/order/coupon/update", payload, &out)
	return out.Message, err
}

func (c *Client) DeleteCoupon(ctx context.Context, cred Credential, id string) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/order/coupon/delete", map[string]string{"couponId": id}, &out)
	return out.Message, err
}
