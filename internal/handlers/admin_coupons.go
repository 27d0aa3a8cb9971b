package handlers

import (
	"context"
	"net/http"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/forms"
	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
)

const couponsPath = "/admin/coupons"

func (h *AdminHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	cred := credential(r)
	data, err := loadList(r, couponsPath, listing.None{}, listing.ParseNone,
		clientSide(
			func(ctx context.Context) ([]models.Coupon, error) {
				return h.API.ListCoupons(ctx, cred)
			},
			func(listing.None) func(models.Coupon) bool { return nil },
		))
	h.renderList(w, r, "coupons.html", data, err)
}

func (h *AdminHandler) NewCoupon(w http.ResponseWriter, r *http.Request) {
	h.renderCouponForm(w, r, http.StatusOK, forms.NewCouponForm(h.now()), "")
}

// EditCoupon prefills the form from the coupon list; the backend has no
// single-coupon read.
func (h *AdminHandler) EditCoupon(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	coupons, err := h.API.ListCoupons(r.Context(), credential(r))
	if err != nil {
		h.failed(w, r, couponsPath, err)
		return
	}
	for _, c := range coupons {
		if c.ID == id {
			h.renderCouponForm(w, r, http.StatusOK, forms.CouponFormFrom(c), "")
			return
		}
	}
	h.redirect(w, r, couponsPath, "error", "Coupon not found")
}

func (h *AdminHandler) renderCouponForm(w http.ResponseWriter, r *http.Request, status int, form forms.CouponForm, errMsg string) {
	h.render(w, r, status, "coupon_form.html", map[string]any{
		"Form":          form,
		"Error":         errMsg,
		"DiscountTypes": models.DiscountTypes,
	})
}

// SaveCoupon creates or updates a coupon. The form is validated before any
// request is made; a rejected form is shown again.
func (h *AdminHandler) SaveCoupon(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, couponsPath, "error", "Could not read the form.")
		return
	}
	form := forms.ParseCouponForm(r.PostForm)
	if err := form.Validate(); err != nil {
		h.renderCouponForm(w, r, http.StatusUnprocessableEntity, form, formMessage(err))
		return
	}

	var msg string
	var err error
	if form.Editing() {
		msg, err = h.API.UpdateCoupon(r.Context(), credential(r), form.ID, form.Input())
	} else {
		msg, err = h.API.AddCoupon(r.Context(), credential(r), form.Input())
	}
	if err != nil {
		if api.IsUnauthorized(err) {
			h.failed(w, r, couponsPath, err)
			return
		}
		h.renderCouponForm(w, r, http.StatusOK, form, api.Message(err))
		return
	}
	if msg == "" {
		msg = "Coupon saved"
	}
	h.redirect(w, r, couponsPath, "success", msg)
}

func (h *AdminHandler) DeleteCouponConfirm(w http.ResponseWriter, r *http.Request) {
	h.confirmDelete(w, r, couponsPath+"/delete", "coupon", couponsPath)
}

func (h *AdminHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	h.deleteConfirmed(w, r, couponsPath, "Coupon deleted", h.API.DeleteCoupon)
}
