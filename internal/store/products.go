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

const productColumns = `id, name, description, price, category, sub_category, images, bestseller, min_order_quantity, quantity_price_list, date`

// CreateProduct inserts p, assigning its id and, when unset, its date.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return createProduct(ctx, s.DB, p)
}

func createProduct(ctx context.Context, db execer, p *models.Product) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Date == 0 {
		p.Date = models.MillisOf(time.Now())
	}
	images, err := json.Marshal(nonNil(p.Images))
	if err != nil {
		return err
	}
	tiers := ""
	if len(p.QuantityPriceList) > 0 {
		if tiers, err = p.QuantityPriceList.Encode(); err != nil {
			return err
		}
	}
	_, err = db.ExecContext(ctx, `INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.SubCategory, string(images),
		boolInt(p.Bestseller), p.MinOrderQuantity, tiers, int64(p.Date))
	return err
}

func productConds(f listing.ProductFilter) *conds {
	c := &conds{}
	c.dateRange("date", listing.DateRange{Start: f.StartDate, End: f.EndDate})
	if f.Name != "" {
		c.containsFold("name", f.Name)
	}
	if f.Category != "" {
		c.add("category = ?", f.Category)
	}
	if f.SubCategory != "" {
		c.add("sub_category = ?", f.SubCategory)
	}
	if f.HasMinOrder {
		c.add("min_order_quantity > 1")
	}
	if f.HasQuantityPrice {
		c.add("quantity_price_list NOT IN ('', '[]', 'null')")
	}
	return c
}

// ListProducts returns one page of the filtered products, newest first.
func (s *Store) ListProducts(ctx context.Context, q listing.Query[listing.ProductFilter]) (listing.Result[models.Product], error) {
	c := productConds(q.Filter)

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+c.String(), c.args...).Scan(&total); err != nil {
		return listing.Result[models.Product]{}, fmt.Errorf("counting products: %w", err)
	}

	args := append(append([]any{}, c.args...), q.Limit, q.Offset())
	rows, err := s.DB.QueryContext(ctx, `SELECT `+productColumns+` FROM products`+c.String()+` ORDER BY date DESC, id LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return listing.Result[models.Product]{}, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return listing.Result[models.Product]{}, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return listing.Result[models.Product]{}, err
	}

	return listing.Result[models.Product]{
		Items:    products,
		Total:    total,
		Pages:    listing.PageCount(total, q.Limit),
		Page:     q.Page,
		PageSize: q.Limit,
	}, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (models.Product, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return affected(s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(sc scanner) (models.Product, error) {
	var (
		p          models.Product
		images     string
		tiers      string
		bestseller int
		date       int64
	)
	err := sc.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.SubCategory,
		&images, &bestseller, &p.MinOrderQuantity, &tiers, &date)
	if err != nil {
		return models.Product{}, err
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return models.Product{}, fmt.Errorf("product %s images: %w", p.ID, err)
	}
	if tiers != "" {
		if err := p.QuantityPriceList.UnmarshalJSON([]byte(tiers)); err != nil {
			return models.Product{}, fmt.Errorf("product %s price list: %w", p.ID, err)
		}
	}
	p.Bestseller = bestseller != 0
	p.Date = models.Millis(date)
	return p, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
