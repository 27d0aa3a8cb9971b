package handlers

import (
	"context"
	"net/http"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/forms"
	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
)

const walletsPath = "/admin/wallets"

func (h *AdminHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	cred := credential(r)
	data, err := loadList(r, walletsPath, listing.None{}, listing.ParseNone,
		clientSide(
			func(ctx context.Context) ([]models.CryptoWallet, error) {
				return h.API.ListWallets(ctx, cred)
			},
			func(listing.None) func(models.CryptoWallet) bool { return nil },
		))
	data["CryptoTypes"] = models.CryptoTypes
	h.renderList(w, r, "wallets.html", data, err)
}

func (h *AdminHandler) NewWallet(w http.ResponseWriter, r *http.Request) {
	h.renderWalletForm(w, r, http.StatusOK, forms.NewWalletForm(), "")
}

func (h *AdminHandler) EditWallet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	wallets, err := h.API.ListWallets(r.Context(), credential(r))
	if err != nil {
		h.failed(w, r, walletsPath, err)
		return
	}
	for _, wl := range wallets {
		if wl.ID == id {
			h.renderWalletForm(w, r, http.StatusOK, forms.WalletFormFrom(wl), "")
			return
		}
	}
	h.redirect(w, r, walletsPath, "error", "Wallet not found")
}

func (h *AdminHandler) renderWalletForm(w http.ResponseWriter, r *http.Request, status int, form forms.WalletForm, errMsg string) {
	h.render(w, r, status, "wallet_form.html", map[string]any{
		"Form":        form,
		"Error":       errMsg,
		"CryptoTypes": models.CryptoTypes,
		"MaxQRSize":   "2MB",
	})
}

// UploadWalletQR uploads the QR image and shows the form again with its
// URL filled in. Files that are not images or exceed 2MB are refused
// before anything is sent.
func (h *AdminHandler) UploadWalletQR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormMemory)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.redirect(w, r, walletsPath+"/new", "error", "Image file size should be less than 2MB")
		return
	}
	form := forms.ParseWalletForm(r.PostForm)

	file, header, err := r.FormFile("qrCode")
	if err != nil {
		h.renderWalletForm(w, r, http.StatusUnprocessableEntity, form, "Please choose a QR code image")
		return
	}
	defer file.Close()
	if err := forms.CheckQRUpload(file, header); err != nil {
		h.renderWalletForm(w, r, http.StatusUnprocessableEntity, form, formMessage(err))
		return
	}

	url, err := h.API.UploadImage(r.Context(), credential(r), api.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		if api.IsUnauthorized(err) {
			h.failed(w, r, walletsPath, err)
			return
		}
		h.renderWalletForm(w, r, http.StatusOK, form, api.Message(err))
		return
	}
	form.QRCodeImage = url
	h.renderWalletForm(w, r, http.StatusOK, form, "")
}

// SaveWallet creates or updates a wallet once every field, the QR image
// included, is present.
func (h *AdminHandler) SaveWallet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, walletsPath, "error", "Could not read the form.")
		return
	}
	form := forms.ParseWalletForm(r.PostForm)
	err := form.Validate()
	if err == nil && !models.ValidOption(models.CryptoTypes, form.CryptoType) {
		err = &forms.ValidationError{Field: "CryptoType", Message: "Please choose a supported cryptocurrency"}
	}
	if err != nil {
		h.renderWalletForm(w, r, http.StatusUnprocessableEntity, form, formMessage(err))
		return
	}

	var msg string
	if form.Editing() {
		msg, err = h.API.UpdateWallet(r.Context(), credential(r), form.ID, form.Input())
	} else {
		msg, err = h.API.AddWallet(r.Context(), credential(r), form.Input())
	}
	if err != nil {
		if api.IsUnauthorized(err) {
			h.failed(w, r, walletsPath, err)
			return
		}
		h.renderWalletForm(w, r, http.StatusOK, form, api.Message(err))
		return
	}
	if msg == "" {
		msg = "Wallet saved"
	}
	h.redirect(w, r, walletsPath, "success", msg)
}

func (h *AdminHandler) DeleteWalletConfirm(w http.ResponseWriter, r *http.Request) {
	h.confirmDelete(w, r, walletsPath+"/delete", "wallet", walletsPath)
}

func (h *AdminHandler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	h.deleteConfirmed(w, r, walletsPath, "Wallet deleted", h.API.DeleteWallet)
}
