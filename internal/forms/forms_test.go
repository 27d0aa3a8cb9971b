package forms

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"
	"time"

	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestCouponDiscountMustBePositive(t *testing.T) {
	for _, value := range []string{"", "0", "-5", "abc", "0.00"} {
		f := ParseCouponForm(url.Values{"code": {"save10"}, "discountType": {"percentage"}, "discountValue": {value}})
		err := f.Validate()
		require.Error(t, err, value)
		assert.Equal(t, "Please enter a valid discount value", Message(err), value)
	}
}

func TestCouponFirstErrorWins(t *testing.T) {
	f := ParseCouponForm(url.Values{"discountType": {"percentage"}, "discountValue": {"0"}})
	assert.Equal(t, "Coupon code is required", Message(f.Validate()))
}

func TestCouponInput(t *testing.T) {
	f := ParseCouponForm(url.Values{
		"code":          {" save10 "},
		"discountType":  {"fixed"},
		"discountValue": {"12.5"},
		"minOrderValue": {""},
		"maxUses":       {""},
		"startDate":     {"2024-06-01"},
		"isActive":      {"on"},
	})
	require.NoError(t, f.Validate())
	in := f.Input()
	assert.Equal(t, "SAVE10", in.Code)
	assert.Equal(t, 12.5, in.DiscountValue)
	assert.Equal(t, 0.0, in.MinOrderValue)
	assert.Nil(t, in.MaxUses)
	assert.True(t, in.IsActive)

	f.MaxUses = "100"
	require.NotNil(t, f.Input().MaxUses)
	assert.Equal(t, 100, *f.Input().MaxUses)
}

func TestCouponFormRoundTrip(t *testing.T) {
	maxUses := 5
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f := CouponFormFrom(models.Coupon{
		ID:            "c1",
		Code:          "WELCOME",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 15,
		MaxUses:       &maxUses,
		StartDate:     start,
	})
	assert.True(t, f.Editing())
	assert.Equal(t, "15", f.DiscountValue)
	assert.Equal(t, "5", f.MaxUses)
	assert.Equal(t, "2024-06-01", f.StartDate)
	assert.Empty(t, f.EndDate)
	assert.NoError(t, f.Validate())
}

func TestNewCouponFormDefaults(t *testing.T) {
	f := NewCouponForm(time.Date(2024, 6, 3, 22, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-06-03", f.StartDate)
	assert.Equal(t, "0", f.MinOrderValue)
	assert.Equal(t, models.DiscountPercentage, f.DiscountType)
	assert.True(t, f.IsActive)
}

func TestWalletAllFieldsRequired(t *testing.T) {
	f := ParseWalletForm(url.Values{"cryptoType": {"BTC"}, "network": {"Bitcoin"}, "walletAddress": {"bc1q"}})
	assert.Equal(t, "All fields are required", Message(f.Validate()))

	f.QRCodeImage = "http://cdn/qr.png"
	assert.NoError(t, f.Validate())
}

func TestBlogImageRequiredUnlessUploading(t *testing.T) {
	f := ParseBlogForm(url.Values{"title": {"Hi"}, "author": {"Ann"}, "content": {"<p>x</p>"}})
	assert.Equal(t, "Image is required", Message(f.Validate()))

	f.HasUpload = true
	assert.NoError(t, f.Validate())

	f.HasUpload = false
	f.Image = "http://cdn/b.png"
	assert.NoError(t, f.Validate())
}

func TestBlogFieldOrder(t *testing.T) {
	f := ParseBlogForm(url.Values{"content": {"x"}})
	assert.Equal(t, "Title is required", Message(f.Validate()))
}

func TestSettingsEmail(t *testing.T) {
	v := url.Values{
		"contactEmail":   {"not-an-email"},
		"contactPhone":   {"1"},
		"contactAddress": {"a"},
		"businessHours":  {"9-5"},
		"footerEmail":    {"f@example.com"},
		"footerPhone":    {"2"},
	}
	f := ParseSettingsForm(v)
	assert.Equal(t, "Please enter a valid contact email", Message(f.Validate()))

	f.ContactEmail = "c@example.com"
	require.NoError(t, f.Validate())
	assert.Equal(t, "c@example.com", f.Settings().ContactEmail)

	f.FooterPhone = ""
	assert.Equal(t, "Footer phone is required", Message(f.Validate()))
}

func TestProductForm(t *testing.T) {
	f := ParseProductForm(url.Values{
		"name":                    {"Cough Syrup"},
		"description":             {"Soothes"},
		"price":                   {"8"},
		"category":                {"OTC"},
		"subCategory":             {"Syrups"},
		"enableMinOrder":          {"on"},
		"minOrderQuantity":        {"3"},
		"enableQuantityPriceList": {"on"},
		"tierQuantity":            {"10", "", "50"},
		"tierPrice":               {"7.5", "", "6"},
	})
	require.NoError(t, f.Validate())
	p, err := f.Payload()
	require.NoError(t, err)
	assert.Equal(t, "3", p.MinOrderQuantity)
	require.Len(t, p.QuantityPriceList, 2)
	assert.Equal(t, "7.5", p.QuantityPriceList[0].Price.String())

	f.EnableMinOrder = false
	f.EnableTiers = false
	p, err = f.Payload()
	require.NoError(t, err)
	assert.Empty(t, p.MinOrderQuantity)
	assert.Empty(t, p.QuantityPriceList)
}

func TestProductFormRequired(t *testing.T) {
	f := ParseProductForm(url.Values{"name": {"x"}, "price": {"1"}})
	assert.Equal(t, "Product description is required", Message(f.Validate()))

	f = ParseProductForm(url.Values{
		"name": {"x"}, "description": {"y"}, "price": {"1"},
		"enableQuantityPriceList": {"on"},
		"tierQuantity":            {"ten"},
		"tierPrice":               {"1"},
	})
	assert.Equal(t, "Please enter a valid quantity and price", Message(f.Validate()))
}

func TestNewProductFormDefaults(t *testing.T) {
	f := NewProductForm()
	assert.Len(t, f.Tiers, 4)
	assert.Equal(t, "1", f.MinOrderQuantity)
	f.Tiers[0].Price = "1"
	assert.Equal(t, "95", DefaultTiers[0].Price, "defaults are copied")
}

func uploadedFile(t *testing.T, contentType string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="qr.png"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/admin/wallets/qr", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(8<<20))
	f, hdr, err := req.FormFile("image")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f, hdr
}

func TestCheckQRUpload(t *testing.T) {
	f, hdr := uploadedFile(t, "image/png", pngHeader)
	assert.NoError(t, CheckQRUpload(f, hdr))

	big := append(append([]byte{}, pngHeader...), make([]byte, 3<<20)...)
	f, hdr = uploadedFile(t, "image/png", big)
	assert.Same(t, ErrImageTooLarge, CheckQRUpload(f, hdr))

	f, hdr = uploadedFile(t, "application/pdf", []byte("%PDF-1.4"))
	assert.Same(t, ErrNotImage, CheckQRUpload(f, hdr))

	f, hdr = uploadedFile(t, "image/png", []byte("just some text"))
	assert.Same(t, ErrNotImage, CheckQRUpload(f, hdr))
}

func TestCheckQRUploadRewinds(t *testing.T) {
	f, hdr := uploadedFile(t, "image/png", pngHeader)
	require.NoError(t, CheckQRUpload(f, hdr))
	first := make([]byte, 4)
	_, err := f.Read(first)
	require.NoError(t, err)
	assert.Equal(t, pngHeader[:4], first)
}
