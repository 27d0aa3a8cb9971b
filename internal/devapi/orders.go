package devapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/alextreichler/pharmadmin/internal/store"
)

type orderListRequest struct {
	Page          int        `json:"page"`
	Limit         int        `json:"limit"`
	StartDate     string     `json:"startDate"`
	EndDate       string     `json:"endDate"`
	Email         string     `json:"email"`
	PaymentType   string     `json:"paymentType"`
	Amount        flexString `json:"amount"`
	Status        string     `json:"status"`
	PaymentStatus flexString `json:"paymentStatus"`
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	var req orderListRequest
	if !decode(w, r, &req) {
		return
	}
	page, limit := pageParams(req.Page, req.Limit)
	q := listing.Query[listing.OrderFilter]{
		Page:  page,
		Limit: limit,
		Filter: listing.OrderFilter{
			StartDate:     strings.TrimSpace(req.StartDate),
			EndDate:       strings.TrimSpace(req.EndDate),
			Email:         strings.TrimSpace(req.Email),
			PaymentType:   req.PaymentType,
			Amount:        strings.TrimSpace(string(req.Amount)),
			Status:        req.Status,
			PaymentStatus: string(req.PaymentStatus),
		},
	}
	res, err := s.Store.ListOrders(r.Context(), q)
	if err != nil {
		s.internal(w, r, err)
		return
	}
	ok(w, map[string]any{
		"orders":     res.Items,
		"pagination": models.Pagination{Total: res.Total, Pages: res.Pages},
	})
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !models.Contains(models.OrderStatuses, req.Status) {
		fail(w, http.StatusBadRequest, "Invalid order status")
		return
	}
	if err := s.Store.UpdateOrderStatus(r.Context(), req.OrderID, req.Status); err != nil {
		s.storeErr(w, r, err, "Order not found")
		return
	}
	done(w, "Status Updated")
}

func (s *Server) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"orderId"`
		Payment bool   `json:"payment"`
	}
	if !decode(w, r, &req) {
		return
	}
	o, err := s.Store.GetOrder(r.Context(), req.OrderID)
	if err != nil {
		s.storeErr(w, r, err, "Order not found")
		return
	}
	if !o.PaymentEditable() {
		fail(w, http.StatusBadRequest, "Payment status can only be changed for COD and manual orders")
		return
	}
	if err := s.Store.UpdateOrderPayment(r.Context(), req.OrderID, req.Payment); err != nil {
		s.storeErr(w, r, err, "Order not found")
		return
	}
	done(w, "Payment Status Updated")
}

func (s *Server) listCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := s.Store.ListCoupons(r.Context())
	if err != nil {
		s.internal(w, r, err)
		return
	}
	ok(w, map[string]any{"coupons": coupons})
}

type couponRequest struct {
	api.CouponInput
	CouponID string `json:"couponId"`
}

// coupon validates the request and converts it to a stored coupon. It
// answers the request itself when validation fails.
func (req couponRequest) coupon(w http.ResponseWriter) (models.Coupon, bool) {
	c := models.Coupon{
		ID:            req.CouponID,
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinOrderValue: req.MinOrderValue,
		MaxUses:       req.MaxUses,
		IsActive:      req.IsActive,
	}
	if c.Code == "" {
		fail(w, http.StatusBadRequest, "Coupon code is required")
		return c, false
	}
	if !models.Contains(models.DiscountTypes, c.DiscountType) {
		fail(w, http.StatusBadRequest, "Invalid discount type")
		return c, false
	}
	if c.DiscountValue <= 0 {
		fail(w, http.StatusBadRequest, "Discount value must be greater than 0")
		return c, false
	}
	if c.DiscountType == models.DiscountPercentage && c.DiscountValue > 100 {
		fail(w, http.StatusBadRequest, "Percentage discount cannot exceed 100")
		return c, false
	}
	if req.StartDate != "" {
		t, err := time.Parse(listing.DateLayout, req.StartDate)
		if err != nil {
			fail(w, http.StatusBadRequest, "Invalid start date")
			return c, false
		}
		c.StartDate = t
	}
	if req.EndDate != "" {
		t, err := time.Parse(listing.DateLayout, req.EndDate)
		if err != nil {
			fail(w, http.StatusBadRequest, "Invalid end date")
			return c, false
		}
		c.EndDate = &t
	}
	return c, true
}

func (s *Server) addCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if !decode(w, r, &req) {
		return
	}
	c, valid := req.coupon(w)
	if !valid {
		return
	}
	err := s.Store.CreateCoupon(r.Context(), &c)
	if errors.Is(err, store.ErrDuplicate) {
		fail(w, http.StatusConflict, "Coupon code already exists")
		return
	}
	if err != nil {
		s.internal(w, r, err)
		return
	}
	done(w, "Coupon created successfully")
}

// updateCoupon keeps the stored code; codes are fixed once created.
func (s *Server) updateCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if !decode(w, r, &req) {
		return
	}
	existing, err := s.Store.GetCoupon(r.Context(), req.CouponID)
	if err != nil {
		s.storeErr(w, r, err, "Coupon not found")
		return
	}
	req.Code = existing.Code
	c, valid := req.coupon(w)
	if !valid {
		return
	}
	if c.StartDate.IsZero() {
		c.StartDate = existing.StartDate
	}
	if err := s.Store.UpdateCoupon(r.Context(), c); err != nil {
		s.storeErr(w, r, err, "Coupon not found")
		return
	}
	done(w, "Coupon updated successfully")
}

func (s *Server) deleteCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CouponID string `json:"couponId"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.Store.DeleteCoupon(r.Context(), req.CouponID); err != nil {
		s.storeErr(w, r, err, "Coupon not found")
		return
	}
	done(w, "Coupon deleted successfully")
}

func (s *Server) listWallets(w http.ResponseWriter, r *http.Request) {
	wallets, err := s.Store.ListWallets(r.Context())
	if err != nil {
		s.internal(w, r, err)
		return
	}
	ok(w, map[string]any{"wallets": wallets})
}

type walletRequest struct {
	api.WalletInput
	WalletID string `json:"walletId"`
}

func (req walletRequest) wallet(w http.ResponseWriter) (models.CryptoWallet, bool) {
	wl := models.CryptoWallet{
		ID:            req.WalletID,
		CryptoType:    req.CryptoType,
		Network:       strings.TrimSpace(req.Network),
		WalletAddress: strings.TrimSpace(req.WalletAddress),
		QRCodeImage:   strings.TrimSpace(req.QRCodeImage),
		IsActive:      req.IsActive,
	}
	if wl.Network == "" || wl.WalletAddress == "" || wl.QRCodeImage == "" {
		fail(w, http.StatusBadRequest, "All fields are required")
		return wl, false
	}
	if !models.ValidOption(models.CryptoTypes, wl.CryptoType) {
		fail(w, http.StatusBadRequest, "Invalid crypto type")
		return wl, false
	}
	return wl, true
}

func (s *Server) addWallet(w http.ResponseWriter, r *http.Request) {
	var req walletRequest
	if !decode(w, r, &req) {
		return
	}
	wl, valid := req.wallet(w)
	if !valid {
		return
	}
	if err := s.Store.CreateWallet(r.Context(), &wl); err != nil {
		s.internal(w, r, err)
		return
	}
	done(w, "Wallet added successfully")
}

func (s *Server) updateWallet(w http.ResponseWriter, r *http.Request) {
	var req walletRequest
	if !decode(w, r, &req) {
		return
	}
	wl, valid := req.wallet(w)
	if !valid {
		return
	}
	if err := s.Store.UpdateWallet(r.Context(), wl); err != nil {
		s.storeErr(w, r, err, "Wallet not found")
		return
	}
	done(w, "Wallet updated successfully")
}

func (s *Server) deleteWallet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WalletID string `json:"walletId"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.Store.DeleteWallet(r.Context(), req.WalletID); err != nil {
		s.storeErr(w, r, err, "Wallet not found")
		return
	}
	done(w, "Wallet deleted successfully")
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Store.GetSettings(r.Context())
	if err != nil {
		s.internal(w, r, err)
		return
	}
	ok(w, map[string]any{"settings": settings})
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.SiteSettings
	if !decode(w, r, &settings) {
		return
	}
	if err := s.Store.SaveSettings(r.Context(), settings); err != nil {
		s.internal(w, r, err)
		return
	}
	done(w, "Settings updated successfully")
}
