package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
)

const ordersPath = "/admin/orders"

// ListOrders shows one page of the server-side filtered order list.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	cred := credential(r)
	data, err := loadList(r, ordersPath, listing.OrderFilter{}, listing.ParseOrderFilter,
		func(ctx context.Context, q listing.Query[listing.OrderFilter]) (listing.Result[models.Order], error) {
			return h.API.ListOrders(ctx, cred, q)
		})
	data["Statuses"] = models.OrderStatuses
	data["PaymentMethods"] = models.PaymentMethods
	h.renderList(w, r, "orders.html", data, err)
}

// UpdateOrderStatus changes the fulfilment status, then returns to the same
// list page, which fetches it again.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	target := returnTo(r, ordersPath)
	id := r.FormValue("id")
	status := r.FormValue("status")
	if id == "" || !models.Contains(models.OrderStatuses, status) {
		h.redirect(w, r, target, "error", "Invalid order status.")
		return
	}

	msg, err := h.API.UpdateOrderStatus(r.Context(), credential(r), id, status)
	if err != nil {
		h.failed(w, r, target, err)
		return
	}
	if msg == "" {
		msg = "Order status updated"
	}
	h.redirect(w, r, target, "success", msg)
}

// UpdatePaymentStatus changes the paid flag of a COD or manual order.
func (h *AdminHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	target := returnTo(r, ordersPath)
	id := r.FormValue("id")
	paid, err := strconv.ParseBool(r.FormValue("payment"))
	if id == "" || err != nil {
		h.redirect(w, r, target, "error", "Invalid payment status.")
		return
	}

	msg, err := h.API.UpdatePaymentStatus(r.Context(), credential(r), id, paid)
	if err != nil {
		h.failed(w, r, target, err)
		return
	}
	if msg == "" {
		msg = "Payment status updated"
	}
	h.redirect(w, r, target, "success", msg)
}
