package store

import (
	"context"
	"time"

	"github.com/alextreichler/pharmadmin/internal/models"
)

func (s *Store) CreateContact(ctx context.Context, c *models.Contact) error {
	return createContact(ctx, s.DB, c)
}

func createContact(ctx context.Context, db execer, c *models.Contact) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Date.IsZero() {
		c.Date = time.Now().UTC()
	}
	if c.Status == "" {
		c.Status = models.ContactUnread
	}
	_, err := db.ExecContext(ctx, `INSERT INTO contacts (id, name, email, phone, message, status, date) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Message, c.Status, c.Date.UnixMilli())
	return err
}

// ListContacts returns every contact message, newest first.
func (s *Store) ListContacts(ctx context.Context) ([]models.Contact, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, email, phone, message, status, date FROM contacts ORDER BY date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		var date int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &c.Status, &date); err != nil {
			return nil, err
		}
		c.Date = time.UnixMilli(date).UTC()
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (s *Store) UpdateContactStatus(ctx context.Context, id, status string) error {
	return affected(s.DB.ExecContext(ctx, `UPDATE contacts SET status = ? WHERE id = ?`, status, id))
}

func (s *Store) DeleteContact(ctx context.Context, id string) error {
	return affected(s.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id))
}
