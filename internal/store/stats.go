package store

import "context"

// Counts is the number of stored documents per collection.
type Counts struct {
	Products int
	Orders   int
	Contacts int
	Coupons  int
	Wallets  int
	Blogs    int
	// OrdersByStatus counts orders per fulfilment status.
	OrdersByStatus map[string]int
}

func (s *Store) GetCounts(ctx context.Context) (*Counts, error) {
	c := &Counts{OrdersByStatus: make(map[string]int)}

	tables := []struct {
		name string
		dst  *int
	}{
		{"products", &c.Products},
		{"orders", &c.Orders},
		{"contacts", &c.Contacts},
		{"coupons", &c.Coupons},
		{"crypto_wallets", &c.Wallets},
		{"blogs", &c.Blogs},
	}
	for _, t := range tables {
		if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.name).Scan(t.dst); err != nil {
			return nil, err
		}
	}

	rows, err := s.DB.QueryContext(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		c.OrdersByStatus[status] = count
	}
	return c, rows.Err()
}
