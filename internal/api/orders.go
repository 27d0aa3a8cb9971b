package api

import (
	"context"

	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
)

type orderListResponse struct {
	Orders     []models.Order    `json:"orders"`
	Pagination models.Pagination `json:"pagination"`
}

// ListOrders fetches one page of the server-side filtered order list.
func (c *Client) ListOrders(ctx context.Context, cred Credential, q listing.Query[listing.OrderFilter]) (listing.Result[models.Order], error) {
	var out orderListResponse
	if err := c.postJSON(ctx, &cred, "/api/order/list", q.Body(), &out); err != nil {
		return listing.Result[models.Order]{}, err
	}
	return listing.Result[models.Order]{
		Items:    out.Orders,
		Total:    out.Pagination.Total,
		Pages:    out.Pagination.Pages,
		Page:     q.Page,
		PageSize: q.Limit,
	}, nil
}

// UpdateOrderStatus sets the fulfilment status of an order.
func (c *Client) UpdateOrderStatus(ctx context.Context, cred Credential, orderID, status string) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/order/status", map[string]any{
		"orderId": orderID,
		"status":  status,
	}, &out)
	return out.Message, err
}

// UpdatePaymentStatus sets the paid flag of an order.
func (c *Client) UpdatePaymentStatus(ctx context.Context, cred Credential, orderID string, paid bool) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/order/payment-status", map[string]any{
		"orderId": orderID,
		"payment": paid,
	}, &out)
	return out.Message, err
}
