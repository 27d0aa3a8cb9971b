package store

import (
	"context"

	"github.com/alextreichler/pharmadmin/internal/models"
)

func (s *Store) CreateWallet(ctx context.Context, w *models.CryptoWallet) error {
	return createWallet(ctx, s.DB, w)
}

func createWallet(ctx context.Context, db execer, w *models.CryptoWallet) error {
	if w.ID == "" {
		w.ID = newID()
	}
	_, err := db.ExecContext(ctx, `INSERT INTO crypto_wallets (id, crypto_type, network, wallet_address, qr_code_image, is_active) VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.CryptoType, w.Network, w.WalletAddress, w.QRCodeImage, boolInt(w.IsActive))
	return err
}

func (s *Store) ListWallets(ctx context.Context) ([]models.CryptoWallet, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, crypto_type, network, wallet_address, qr_code_image, is_active FROM crypto_wallets ORDER BY crypto_type, network`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wallets := []models.CryptoWallet{}
	for rows.Next() {
		var w models.CryptoWallet
		var active int
		if err := rows.Scan(&w.ID, &w.CryptoType, &w.Network, &w.WalletAddress, &w.QRCodeImage, &active); err != nil {
			return nil, err
		}
		w.IsActive = active != 0
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (s *Store) UpdateWallet(ctx context.Context, w models.CryptoWallet) error {
	return affected(s.DB.ExecContext(ctx, `UPDATE crypto_wallets SET crypto_type = ?, network = ?, wallet_address = ?, qr_code_image = ?, is_active = ? WHERE id = ?`,
		w.CryptoType, w.Network, w.WalletAddress, w.QRCodeImage, boolInt(w.IsActive), w.ID))
}

func (s *Store) DeleteWallet(ctx context.Context, id string) error {
	return affected(s.DB.ExecContext(ctx, `DELETE FROM crypto_wallets WHERE id = ?`, id))
}
