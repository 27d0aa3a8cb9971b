package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
)

const orderColumns = `id, user_id, items, address, amount, payment_method, manual_payment, status, payment, date`

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	return createOrder(ctx, s.DB, o)
}

func createOrder(ctx context.Context, db execer, o *models.Order) error {
	if o.ID == "" {
		o.ID = newID()
	}
	if o.Date == 0 {
		o.Date = models.MillisOf(time.Now())
	}
	if o.Status == "" {
		o.Status = models.StatusOrderPlaced
	}
	items, err := json.Marshal(nonNil(o.Items))
	if err != nil {
		return err
	}
	address, err := json.Marshal(o.Address)
	if err != nil {
		return err
	}
	var manual sql.NullString
	if o.ManualPaymentDetails != nil {
		b, err := json.Marshal(o.ManualPaymentDetails)
		if err != nil {
			return err
		}
		manual = sql.NullString{String: string(b), Valid: true}
	}
	_, err = db.ExecContext(ctx, `INSERT INTO orders (`+orderColumns+`, email) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, string(items), string(address), o.Amount, o.PaymentMethod, manual,
		o.Status, boolInt(o.Payment), int64(o.Date), o.Address.Email)
	return err
}

func orderConds(f listing.OrderFilter) *conds {
	c := &conds{}
	c.dateRange("date", listing.DateRange{Start: f.StartDate, End: f.EndDate})
	if f.Email != "" {
		c.containsFold("email", f.Email)
	}
	if f.PaymentType != "" {
		c.add("lower(payment_method) = lower(?)", f.PaymentType)
	}
	if amount, ok := f.AmountValue(); ok {
		c.add("amount = ?", amount.InexactFloat64())
	}
	if f.Status != "" {
		c.add("lower(status) = lower(?)", f.Status)
	}
	if paid, ok := f.PaymentValue(); ok {
		c.add("payment = ?", boolInt(paid))
	}
	return c
}

// ListOrders returns one page of the filtered orders, newest first.
func (s *Store) ListOrders(ctx context.Context, q listing.Query[listing.OrderFilter]) (listing.Result[models.Order], error) {
	c := orderConds(q.Filter)

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+c.String(), c.args...).Scan(&total); err != nil {
		return listing.Result[models.Order]{}, fmt.Errorf("counting orders: %w", err)
	}

	args := append(append([]any{}, c.args...), q.Limit, q.Offset())
	rows, err := s.DB.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders`+c.String()+` ORDER BY date DESC, id LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return listing.Result[models.Order]{}, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return listing.Result[models.Order]{}, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return listing.Result[models.Order]{}, err
	}

	return listing.Result[models.Order]{
		Items:    orders,
		Total:    total,
		Pages:    listing.PageCount(total, q.Limit),
		Page:     q.Page,
		PageSize: q.Limit,
	}, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (models.Order, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return models.Order{}, ErrNotFound
	}
	return o, err
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return affected(s.DB.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id))
}

func (s *Store) UpdateOrderPayment(ctx context.Context, id string, paid bool) error {
	return affected(s.DB.ExecContext(ctx, `UPDATE orders SET payment = ? WHERE id = ?`, boolInt(paid), id))
}

func scanOrder(sc scanner) (models.Order, error) {
	var (
		o       models.Order
		items   string
		address string
		manual  sql.NullString
		payment int
		date    int64
	)
	err := sc.Scan(&o.ID, &o.UserID, &items, &address, &o.Amount, &o.PaymentMethod, &manual, &o.Status, &payment, &date)
	if err != nil {
		return models.Order{}, err
	}
	if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
		return models.Order{}, fmt.Errorf("order %s items: %w", o.ID, err)
	}
	if err := json.Unmarshal([]byte(address), &o.Address); err != nil {
		return models.Order{}, fmt.Errorf("order %s address: %w", o.ID, err)
	}
	if manual.Valid {
		o.ManualPaymentDetails = &models.ManualPayment{}
		if err := json.Unmarshal([]byte(manual.String), o.ManualPaymentDetails); err != nil {
			return models.Order{}, fmt.Errorf("order %s manual payment: %w", o.ID, err)
		}
	}
	o.Payment = payment != 0
	o.Date = models.Millis(date)
	return o, nil
}
