package devapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/alextreichler/pharmadmin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type fixture struct {
	client *api.Client
	cred   api.Credential
	store  *store.Store
	url    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	st, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(ctx))

	srv := &Server{Store: st, Secret: []byte("test-secret"), UploadDir: t.TempDir()}
	require.NoError(t, srv.EnsureAdmin(ctx, "admin@example.com", "s3cret"))

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	srv.PublicURL = ts.URL

	client := api.New(ts.URL)
	cred, err := client.AdminLogin(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.True(t, cred.Valid())

	return &fixture{client: client, cred: cred, store: st, url: ts.URL}
}

// seedOrders inserts n orders one day apart, cycling through statuses and
// payment methods.
func (f *fixture) seedOrders(t *testing.T, n int) {
	t.Helper()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		o := models.Order{
			Items:         []models.OrderItem{{Name: "Paracetamol", Quantity: 1 + i%3}},
			Address:       models.Address{FirstName: "User", LastName: fmt.Sprint(i), Email: fmt.Sprintf("user%d@%s", i, []string{"example.com", "sample.org"}[i%2])},
			Amount:        float64(10 + i%4*5),
			PaymentMethod: models.PaymentMethods[i%len(models.PaymentMethods)],
			Status:        models.OrderStatuses[i%len(models.OrderStatuses)],
			Payment:       i%3 == 0,
			Date:          models.MillisOf(base.AddDate(0, 0, i)),
		}
		require.NoError(t, f.store.CreateOrder(context.Background(), &o))
	}
}

func orderIDs(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.client.AdminLogin(context.Background(), "admin@example.com", "nope")
	require.Error(t, err)
	assert.True(t, api.IsApplication(err))
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", api.Message(err))
}

func TestPrivilegedEndpointsRequireToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.client.ListCoupons(ctx, api.Credential{})
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))

	_, err = f.client.ListCoupons(ctx, api.Credential{Token: "forged"})
	assert.True(t, api.IsUnauthorized(err))

	// Settings are public.
	_, err = f.client.GetSettings(ctx, api.Credential{})
	assert.NoError(t, err)
}

func TestOrdersSecondPage(t *testing.T) {
	f := newFixture(t)
	f.seedOrders(t, 25)

	q := listing.Query[listing.OrderFilter]{Page: 2, Limit: 10}
	res, err := f.client.ListOrders(context.Background(), f.cred, q)
	require.NoError(t, err)
	assert.Len(t, res.Items, 10)
	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 3, res.Pages)

	last, err := f.client.ListOrders(context.Background(), f.cred, listing.Query[listing.OrderFilter]{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)
}

func TestServerFilteringMatchesPredicates(t *testing.T) {
	f := newFixture(t)
	f.seedOrders(t, 25)
	ctx := context.Background()

	all, err := f.client.ListOrders(ctx, f.cred, listing.Query[listing.OrderFilter]{Page: 1, Limit: 100})
	require.NoError(t, err)
	require.Len(t, all.Items, 25)

	filters := []listing.OrderFilter{
		{},
		{Email: "SAMPLE.ORG"},
		{PaymentType: "cod"},
		{Amount: "15"},
		{Amount: "not-a-number"},
		{Status: models.StatusShipped},
		{PaymentStatus: "true"},
		{PaymentStatus: "false"},
		{StartDate: "2024-03-05", EndDate: "2024-03-10"},
		{StartDate: "2024-03-20"},
		{Email: "example.com", PaymentStatus: "false", EndDate: "2024-03-15"},
	}
	for _, filter := range filters {
		t.Run(fmt.Sprintf("%+v", filter), func(t *testing.T) {
			got, err := f.client.ListOrders(ctx, f.cred, listing.Query[listing.OrderFilter]{Page: 1, Limit: 100, Filter: filter})
			require.NoError(t, err)
			want := listing.Filtered(all.Items, filter.Match)
			assert.Equal(t, orderIDs(want), orderIDs(got.Items))
			assert.Equal(t, len(want), got.Total)
		})
	}
}

func TestEmptyFilterEqualsUnfilteredPage(t *testing.T) {
	f := newFixture(t)
	f.seedOrders(t, 25)
	ctx := context.Background()

	plain, err := f.client.ListOrders(ctx, f.cred, listing.Query[listing.OrderFilter]{Page: 2, Limit: 10})
	require.NoError(t, err)

	s := listing.NewState(listing.OrderFilter{})
	s.SetFilter(listing.OrderFilter{Email: "x"})
	s.SetFilter(listing.OrderFilter{})
	s.SetPage(2)
	cleared, err := f.client.ListOrders(ctx, f.cred, s.Query())
	require.NoError(t, err)

	assert.Equal(t, orderIDs(plain.Items), orderIDs(cleared.Items))
	assert.Equal(t, plain.Pages, cleared.Pages)
}

func TestStatusChangeVisibleOnRefetch(t *testing.T) {
	f := newFixture(t)
	f.seedOrders(t, 3)
	ctx := context.Background()
	q := listing.Query[listing.OrderFilter]{Page: 1, Limit: 10}

	res, err := f.client.ListOrders(ctx, f.cred, q)
	require.NoError(t, err)
	target := res.Items[1]

	msg, err := f.client.UpdateOrderStatus(ctx, f.cred, target.ID, models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, "Status Updated", msg)

	_, err = f.client.UpdateOrderStatus(ctx, f.cred, target.ID, "Lost")
	assert.True(t, api.IsApplication(err))

	res, err = f.client.ListOrders(ctx, f.cred, q)
	require.NoError(t, err)
	for _, o := range res.Items {
		if o.ID == target.ID {
			assert.Equal(t, models.StatusDelivered, o.Status)
		}
	}
}

func TestPaymentStatusOnlyForCODAndManual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cod := models.Order{PaymentMethod: models.PaymentCOD, Amount: 5}
	stripe := models.Order{PaymentMethod: models.PaymentStripe, Amount: 5}
	require.NoError(t, f.store.CreateOrder(ctx, &cod))
	require.NoError(t, f.store.CreateOrder(ctx, &stripe))

	_, err := f.client.UpdatePaymentStatus(ctx, f.cred, cod.ID, true)
	require.NoError(t, err)
	got, err := f.store.GetOrder(ctx, cod.ID)
	require.NoError(t, err)
	assert.True(t, got.Payment)

	_, err = f.client.UpdatePaymentStatus(ctx, f.cred, stripe.ID, true)
	require.Error(t, err)
	assert.True(t, api.IsApplication(err))

	_, err = f.client.UpdatePaymentStatus(ctx, f.cred, "missing", true)
	assert.Equal(t, "Order not found", api.Message(err))
}

func TestAddListRemoveProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tiers := models.PriceTiers{}
	require.NoError(t, tiers.UnmarshalJSON([]byte(`[{"quantity":"100","price":"95"}]`)))
	msg, err := f.client.AddProduct(ctx, f.cred, api.NewProduct{
		Name:              "Ibuprofen 200mg",
		Description:       "Pain relief",
		Price:             "6.5",
		Category:          "OTC",
		SubCategory:       "Tablets",
		Bestseller:        true,
		MinOrderQuantity:  "5",
		QuantityPriceList: tiers,
		Images:            []api.Image{{Filename: "front.png", ContentType: "image/png", Body: bytes.NewReader(pngBytes)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Product Added", msg)

	q := listing.Query[listing.ProductFilter]{Page: 1, Limit: 10, Filter: listing.ProductFilter{Name: "ibu", HasMinOrder: true, HasQuantityPrice: true}}
	res, err := f.client.ListProducts(ctx, f.cred, q)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	p := res.Items[0]
	assert.Equal(t, 5, p.MinOrderQuantity)
	assert.True(t, p.Bestseller)
	require.Len(t, p.Images, 1)

	resp, err := http.Get(p.Images[0])
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, pngBytes, body)

	_, err = f.client.RemoveProduct(ctx, f.cred, p.ID)
	require.NoError(t, err)

	res, err = f.client.ListProducts(ctx, f.cred, listing.Query[listing.ProductFilter]{Page: 1, Limit: 10})
	require.NoError(t, err)
	for _, item := range res.Items {
		assert.NotEqual(t, p.ID, item.ID)
	}
}

func TestUploadRejectsNonImages(t *testing.T) {
	f := newFixture(t)
	_, err := f.client.UploadImage(context.Background(), f.cred, api.Image{Filename: "notes.txt", Body: bytes.NewReader([]byte("plain text"))})
	require.Error(t, err)
	assert.Equal(t, "Only image files are allowed", api.Message(err))

	url, err := f.client.UploadImage(context.Background(), f.cred, api.Image{Filename: "qr.png", Body: bytes.NewReader(pngBytes)})
	require.NoError(t, err)
	assert.Contains(t, url, f.url+"/uploads/")
}

func TestCouponCodeIsFixedAfterCreation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := api.CouponInput{Code: "save10", DiscountType: models.DiscountPercentage, DiscountValue: 10, StartDate: "2024-06-01", IsActive: true}
	_, err := f.client.AddCoupon(ctx, f.cred, in)
	require.NoError(t, err)

	_, err = f.client.AddCoupon(ctx, f.cred, in)
	assert.Equal(t, "Coupon code already exists", api.Message(err))

	coupons, err := f.client.ListCoupons(ctx, f.cred)
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, "SAVE10", coupons[0].Code)

	in.Code = "OTHER"
	in.DiscountValue = 15
	in.EndDate = "2024-12-31"
	_, err = f.client.UpdateCoupon(ctx, f.cred, coupons[0].ID, in)
	require.NoError(t, err)

	coupons, err = f.client.ListCoupons(ctx, f.cred)
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", coupons[0].Code)
	assert.Equal(t, 15.0, coupons[0].DiscountValue)
	require.NotNil(t, coupons[0].EndDate)

	_, err = f.client.DeleteCoupon(ctx, f.cred, coupons[0].ID)
	require.NoError(t, err)
	coupons, err = f.client.ListCoupons(ctx, f.cred)
	require.NoError(t, err)
	assert.Empty(t, coupons)
}

func TestWalletLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.client.AddWallet(ctx, f.cred, api.WalletInput{CryptoType: "BTC", Network: "Bitcoin"})
	assert.Equal(t, "All fields are required", api.Message(err))

	in := api.WalletInput{CryptoType: "USDT", Network: "TRC20", WalletAddress: "T123", QRCodeImage: "https://cdn.example.com/qr.png", IsActive: true}
	_, err = f.client.AddWallet(ctx, f.cred, in)
	require.NoError(t, err)

	wallets, err := f.client.ListWallets(ctx, f.cred)
	require.NoError(t, err)
	require.Len(t, wallets, 1)

	in.IsActive = false
	_, err = f.client.UpdateWallet(ctx, f.cred, wallets[0].ID, in)
	require.NoError(t, err)
	wallets, err = f.client.ListWallets(ctx, f.cred)
	require.NoError(t, err)
	assert.False(t, wallets[0].IsActive)

	_, err = f.client.DeleteWallet(ctx, f.cred, wallets[0].ID)
	require.NoError(t, err)
}

func TestContactStatusAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := models.Contact{Name: "Dee", Email: "dee@example.com", Message: "Do you ship abroad?"}
	require.NoError(t, f.store.CreateContact(ctx, &c))

	contacts, err := f.client.ListContacts(ctx, f.cred)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, models.ContactUnread, contacts[0].Status)

	_, err = f.client.UpdateContactStatus(ctx, f.cred, c.ID, models.ContactRead)
	require.NoError(t, err)
	contacts, err = f.client.ListContacts(ctx, f.cred)
	require.NoError(t, err)
	assert.Equal(t, models.ContactRead, contacts[0].Status)

	_, err = f.client.DeleteContact(ctx, f.cred, c.ID)
	require.NoError(t, err)
	_, err = f.client.DeleteContact(ctx, f.cred, c.ID)
	assert.Equal(t, "Contact not found", api.Message(err))
}

func TestBlogLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := api.BlogInput{Title: "Cold season", Author: "Pharmacist", Content: "<p>Stay warm</p>", Image: "https://cdn.example.com/b.jpg"}
	for i := 0; i < 3; i++ {
		_, err := f.client.CreateBlog(ctx, f.cred, in)
		require.NoError(t, err)
	}

	blogs, pag, err := f.client.ListBlogs(ctx, f.cred, 2, 2)
	require.NoError(t, err)
	assert.Len(t, blogs, 1)
	assert.Equal(t, models.BlogPagination{CurrentPage: 2, TotalPages: 2, TotalBlogs: 3}, pag)

	in.IsPublished = true
	in.Title = "Cold season, updated"
	_, err = f.client.UpdateBlog(ctx, f.cred, blogs[0].ID, in)
	require.NoError(t, err)

	_, err = f.client.DeleteBlog(ctx, f.cred, blogs[0].ID)
	require.NoError(t, err)
	_, pag, err = f.client.ListBlogs(ctx, f.cred, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, pag.TotalBlogs)

	_, err = f.client.CreateBlog(ctx, f.cred, api.BlogInput{Title: "No body"})
	assert.True(t, api.IsApplication(err))
}

func TestSettingsRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	want := models.SiteSettings{
		ContactEmail:   "help@example.com",
		ContactPhone:   "555-0100",
		ContactAddress: "1 Main St",
		BusinessHours:  "Mon-Fri 9-5",
		FooterEmail:    "info@example.com",
		FooterPhone:    "555-0199",
	}
	_, err := f.client.UpdateSettings(ctx, f.cred, want)
	require.NoError(t, err)

	got, err := f.client.GetSettings(ctx, f.cred)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
