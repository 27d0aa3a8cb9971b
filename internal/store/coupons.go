package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/alextreichler/pharmadmin/internal/models"
)

func (s *Store) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	return createCoupon(ctx, s.DB, c)
}

func createCoupon(ctx context.Context, db execer, c *models.Coupon) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.StartDate.IsZero() {
		c.StartDate = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx, `INSERT INTO coupons (id, code, discount_type, discount_value, min_order_value, max_uses, used_count, start_date, end_date, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Code, c.DiscountType, c.DiscountValue, c.MinOrderValue, nullInt(c.MaxUses), c.UsedCount,
		c.StartDate.UnixMilli(), nullMillis(c.EndDate), boolInt(c.IsActive))
	return uniqueErr(err)
}

const couponColumns = `id, code, discount_type, discount_value, min_order_value, max_uses, used_count, start_date, end_date, is_active`

func (s *Store) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY start_date DESC, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coupons := []models.Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (s *Store) GetCoupon(ctx context.Context, id string) (models.Coupon, error) {
	c, err := scanCoupon(s.DB.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Coupon{}, ErrNotFound
	}
	return c, err
}

func scanCoupon(sc scanner) (models.Coupon, error) {
	var (
		c       models.Coupon
		maxUses sql.NullInt64
		start   int64
		end     sql.NullInt64
		active  int
	)
	if err := sc.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderValue, &maxUses, &c.UsedCount, &start, &end, &active); err != nil {
		return models.Coupon{}, err
	}
	if maxUses.Valid {
		n := int(maxUses.Int64)
		c.MaxUses = &n
	}
	c.StartDate = time.UnixMilli(start).UTC()
	if end.Valid {
		t := time.UnixMilli(end.Int64).UTC()
		c.EndDate = &t
	}
	c.IsActive = active != 0
	return c, nil
}

// UpdateCoupon replaces the editable fields of the coupon with c.ID. The
// usage count is kept.
func (s *Store) UpdateCoupon(ctx context.Context, c models.Coupon) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE coupons SET code = ?, discount_type = ?, discount_value = ?, min_order_value = ?, max_uses = ?, start_date = ?, end_date = ?, is_active = ?
		WHERE id = ?`,
		c.Code, c.DiscountType, c.DiscountValue, c.MinOrderValue, nullInt(c.MaxUses),
		c.StartDate.UnixMilli(), nullMillis(c.EndDate), boolInt(c.IsActive), c.ID)
	return affected(res, uniqueErr(err))
}

func (s *Store) DeleteCoupon(ctx context.Context, id string) error {
	return affected(s.DB.ExecContext(ctx, `DELETE FROM coupons WHERE id = ?`, id))
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil || t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func uniqueErr(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}
