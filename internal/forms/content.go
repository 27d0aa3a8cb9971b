package forms

import (
	"net/url"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/models"
)

type WalletForm struct {
	ID            string
	CryptoType    string `validate:"required"`
	Network       string `validate:"required"`
	WalletAddress string `validate:"required"`
	QRCodeImage   string `validate:"required"`
	IsActive      bool
}

var walletMessages = map[string]string{
	"CryptoType":    "All fields are required",
	"Network":       "All fields are required",
	"WalletAddress": "All fields are required",
	"QRCodeImage":   "All fields are required",
}

func NewWalletForm() WalletForm {
	return WalletForm{CryptoType: models.CryptoTypes[0].Value, IsActive: true}
}

func WalletFormFrom(w models.CryptoWallet) WalletForm {
	return WalletForm{
		ID:            w.ID,
		CryptoType:    w.CryptoType,
		Network:       w.Network,
		WalletAddress: w.WalletAddress,
		QRCodeImage:   w.QRCodeImage,
		IsActive:      w.IsActive,
	}
}

func ParseWalletForm(v url.Values) WalletForm {
	return WalletForm{
		ID:            trimmed(v, "id"),
		CryptoType:    v.Get("cryptoType"),
		Network:       trimmed(v, "network"),
		WalletAddress: trimmed(v, "walletAddress"),
		QRCodeImage:   trimmed(v, "qrCodeImage"),
		IsActive:      checked(v, "isActive"),
	}
}

func (f WalletForm) Editing() bool { return f.ID != "" }

func (f WalletForm) Validate() error {
	return check(f, walletMessages)
}

func (f WalletForm) Input() api.WalletInput {
	return api.WalletInput{
		CryptoType:    f.CryptoType,
		Network:       f.Network,
		WalletAddress: f.WalletAddress,
		QRCodeImage:   f.QRCodeImage,
		IsActive:      f.IsActive,
	}
}

type BlogForm struct {
	ID          string
	Title       string `validate:"required"`
	Author      string `validate:"required"`
	Content     string `validate:"required"`
	Image       string `validate:"required_without=HasUpload"`
	IsPublished bool
	// HasUpload is set when a new image file accompanies the submission.
	HasUpload bool
}

var blogMessages = map[string]string{
	"Title":   "Title is required",
	"Author":  "Author is required",
	"Content": "Content is required",
	"Image":   "Image is required",
}

func BlogFormFrom(b models.Blog) BlogForm {
	return BlogForm{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Content:     b.Content,
		Image:       b.Image,
		IsPublished: b.IsPublished,
	}
}

func ParseBlogForm(v url.Values) BlogForm {
	return BlogForm{
		ID:          trimmed(v, "id"),
		Title:       trimmed(v, "title"),
		Author:      trimmed(v, "author"),
		Content:     trimmed(v, "content"),
		Image:       trimmed(v, "image"),
		IsPublished: checked(v, "isPublished"),
	}
}

func (f BlogForm) Editing() bool { return f.ID != "" }

func (f BlogForm) Validate() error {
	return check(f, blogMessages)
}

func (f BlogForm) Input() api.BlogInput {
	return api.BlogInput{
		Title:       f.Title,
		Author:      f.Author,
		Content:     f.Content,
		Image:       f.Image,
		IsPublished: f.IsPublished,
	}
}

type SettingsForm struct {
	ContactEmail   string `validate:"required,email"`
	ContactPhone   string `validate:"required"`
	ContactAddress string `validate:"required"`
	BusinessHours  string `validate:"required"`
	FooterEmail    string `validate:"required"`
	FooterPhone    string `validate:"required"`
}

var settingsMessages = map[string]string{
	"ContactEmail.required": "Contact email is required",
	"ContactEmail.email":    "Please enter a valid contact email",
	"ContactPhone":          "Contact phone is required",
	"ContactAddress":        "Contact address is required",
	"BusinessHours":         "Business hours are required",
	"FooterEmail":           "Footer email is required",
	"FooterPhone":           "Footer phone is required",
}

func SettingsFormFrom(s models.SiteSettings) SettingsForm {
	return SettingsForm(s)
}

func ParseSettingsForm(v url.Values) SettingsForm {
	return SettingsForm{
		ContactEmail:   trimmed(v, "contactEmail"),
		ContactPhone:   trimmed(v, "contactPhone"),
		ContactAddress: trimmed(v, "contactAddress"),
		BusinessHours:  trimmed(v, "businessHours"),
		FooterEmail:    trimmed(v, "footerEmail"),
		FooterPhone:    trimmed(v, "footerPhone"),
	}
}

func (f SettingsForm) Validate() error {
	return check(f, settingsMessages)
}

func (f SettingsForm) Settings() models.SiteSettings {
	return models.SiteSettings(f)
}
