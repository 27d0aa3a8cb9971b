package store

import (
	"context"
	"database/sql"

	"github.com/alextreichler/pharmadmin/internal/models"
)

// GetSettings returns the settings row, or zero settings before the first
// save.
func (s *Store) GetSettings(ctx context.Context) (models.SiteSettings, error) {
	var st models.SiteSettings
	err := s.DB.QueryRowContext(ctx, `SELECT contact_email, contact_phone, contact_address, business_hours, footer_email, footer_phone
		FROM site_settings WHERE id = 1`).
		Scan(&st.ContactEmail, &st.ContactPhone, &st.ContactAddress, &st.BusinessHours, &st.FooterEmail, &st.FooterPhone)
	if err == sql.ErrNoRows {
		return models.SiteSettings{}, nil
	}
	return st, err
}

func (s *Store) SaveSettings(ctx context.Context, st models.SiteSettings) error {
	return saveSettings(ctx, s.DB, st)
}

func saveSettings(ctx context.Context, db execer, st models.SiteSettings) error {
	_, err := db.ExecContext(ctx, `INSERT INTO site_settings (id, contact_email, contact_phone, contact_address, business_hours, footer_email, footer_phone)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			contact_email = excluded.contact_email,
			contact_phone = excluded.contact_phone,
			contact_address = excluded.contact_address,
			business_hours = excluded.business_hours,
			footer_email = excluded.footer_email,
			footer_phone = excluded.footer_phone`,
		st.ContactEmail, st.ContactPhone, st.ContactAddress, st.BusinessHours, st.FooterEmail, st.FooterPhone)
	return err
}
