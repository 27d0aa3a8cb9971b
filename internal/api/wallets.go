package api

import (
	"context"

	"github.com/alextreichler/pharmadmin/internal/models"
)

// WalletInput is the create/update payload for a crypto wallet.
type WalletInput struct {
	CryptoType    string `json:"cryptoType"`
	Network       string `json:"network"`
	WalletAddress string `json:"walletAddress"`
	QRCodeImage   string `json:"qrCodeImage"`
	IsActive      bool   `json:"isActive"`
}

func (c *Client) ListWallets(ctx context.Context, cred Credential) ([]models.CryptoWallet, error) {
	var out struct {
		Wallets []models.CryptoWallet `json:"wallets"`
	}
	if err := c.getJSON(ctx, &cred, "/api/order/crypto-wallets", &out); err != nil {
		return nil, err
	}
	return out.Wallets, nil
}

func (c *Client) AddWallet(ctx context.Context, cred Credential, in WalletInput) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/order/crypto-wallet/add", in, &out)
	return out.Message, err
}

func (c *Client) UpdateWallet(ctx context.Context, cred Credential, id string, in WalletInput) (string, error) {
	payload := struct {
		WalletInput
		WalletID string `json:"walletId"`
	}{in, id}
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/order/crypto-wallet/update", payload, &out)
	return out.Message, err
}

func (c *Client) DeleteWallet(ctx context.Context, cred Credential, id string) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/order/crypto-wallet/delete", map[string]string{"walletId": id}, &out)
	return out.Message, err
}
