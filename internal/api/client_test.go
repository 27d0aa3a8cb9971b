package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var cred = Credential{Token: "tok-123"}

func TestListOrdersForwardsFilterAndToken(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/order/list", r.URL.Path)
		assert.Equal(t, "tok-123", r.Header.Get(TokenHeader))
		assert.Equal(t, "req-1", r.Header.Get(RequestIDHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"orders": []map[string]any{
				{"_id": "o1", "status": "Packing", "amount": 12.5, "date": 1714550400000},
			},
			"pagination": map[string]any{"total": 21, "pages": 3},
		})
	})

	ctx := WithRequestID(context.Background(), "req-1")
	q := listing.Query[listing.OrderFilter]{Page: 2, Limit: 10, Filter: listing.OrderFilter{Email: "bob"}}
	res, err := c.ListOrders(ctx, cred, q)
	require.NoError(t, err)

	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 10, body["limit"])
	assert.Equal(t, "bob", body["email"])
	assert.Equal(t, "", body["status"], "empty filter fields are still sent")

	require.Len(t, res.Items, 1)
	assert.Equal(t, "o1", res.Items[0].ID)
	assert.Equal(t, 21, res.Total)
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, int64(1714550400000), int64(res.Items[0].Date))
}

func TestApplicationErrorCarriesBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Coupon code already exists"})
	})

	_, err := c.AddCoupon(context.Background(), cred, CouponInput{Code: "SAVE10"})
	require.Error(t, err)
	assert.True(t, IsApplication(err))
	assert.Equal(t, "Coupon code already exists", Message(err))
}

func TestErrorStatusWithoutMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
	})

	_, err := c.ListCoupons(context.Background(), cred)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Unauthorized", Message(err))
}

func TestNonJSONBodyIsTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := c.ListWallets(context.Background(), cred)
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.GetSettings(context.Background(), cred)
	require.Error(t, err)
	assert.False(t, IsApplication(err))
}

func TestTimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	after := New("http://backend", WithHTTPClient(shared), WithTimeout(2*time.Second))
	before := New("http://backend", WithTimeout(3*time.Second), WithHTTPClient(shared))

	assert.Equal(t, 2*time.Second, after.http.Timeout)
	assert.Equal(t, 3*time.Second, before.http.Timeout)
	assert.Equal(t, time.Minute, shared.Timeout)
	assert.NotSame(t, shared, after.http)

	plain := New("http://backend", WithHTTPClient(shared))
	assert.Same(t, shared, plain.http)
}

func TestAdminLoginSendsNoToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(TokenHeader))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in["password"] != "secret" {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": "jwt"})
	})

	got, err := c.AdminLogin(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", got.Token)

	_, err = c.AdminLogin(context.Background(), "admin@example.com", "wrong")
	assert.Equal(t, "Invalid credentials", Message(err))
}

func TestAddProductMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Paracetamol", r.FormValue("name"))
		assert.Equal(t, "true", r.FormValue("bestseller"))
		assert.Equal(t, "5", r.FormValue("minOrderQuantity"))

		var tiers []map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("quantityPriceList")), &tiers))
		assert.Len(t, tiers, 1)

		_, hdr, err := r.FormFile("image1")
		require.NoError(t, err)
		assert.Equal(t, "front.png", hdr.Filename)
		_, _, err = r.FormFile("image2")
		assert.Error(t, err)

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Product Added"})
	})

	msg, err := c.AddProduct(context.Background(), cred, NewProduct{
		Name:             "Paracetamol",
		Description:      "Pain relief",
		Price:            "4.99",
		Category:         "OTC",
		SubCategory:      "Tablets",
		Bestseller:       true,
		MinOrderQuantity: "5",
		QuantityPriceList: models.PriceTiers{
			{Quantity: decimal.NewFromInt(10), Price: decimal.RequireFromString("3.99")},
		},
		Images: []Image{{Filename: "front.png", ContentType: "image/png", Body: strings.NewReader("png")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Product Added", msg)
}

func TestAddProductRejectsTooManyImages(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	images := make([]Image, MaxProductImages+1)
	for i := range images {
		images[i] = Image{Filename: "x.png", Body: strings.NewReader("x")}
	}
	_, err := c.AddProduct(context.Background(), cred, NewProduct{Name: "x", Images: images})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestBlogVerbs(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.RequestURI())
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, map[string]any{
				"success":    true,
				"blogs":      []map[string]any{{"_id": "b1", "title": "Hello"}},
				"pagination": map[string]any{"currentPage": 2, "totalPages": 4, "totalBlogs": 37},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "ok"})
	})
	ctx := context.Background()

	blogs, pg, err := c.ListBlogs(ctx, cred, 2, 10)
	require.NoError(t, err)
	assert.Len(t, blogs, 1)
	assert.Equal(t, models.BlogPagination{CurrentPage: 2, TotalPages: 4, TotalBlogs: 37}, pg)

	_, err = c.UpdateBlog(ctx, cred, "b1", BlogInput{Title: "Hi"})
	require.NoError(t, err)
	_, err = c.DeleteBlog(ctx, cred, "b1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /api/blog/admin/list?limit=10&page=2",
		"PUT /api/blog/update/b1",
		"DELETE /api/blog/delete/b1",
	}, seen)
}

func TestUploadImageRequiresURL(t *testing.T) {
	withURL := true
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _, err := r.FormFile("image")
		require.NoError(t, err)
		if withURL {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "url": "http://cdn/x.png"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	u, err := c.UploadImage(context.Background(), cred, Image{Filename: "x.png", Body: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/x.png", u)

	withURL = false
	_, err = c.UploadImage(context.Background(), cred, Image{Filename: "x.png", Body: strings.NewReader("x")})
	assert.True(t, IsApplication(err))
}

func TestUpdateCouponSendsID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "c1", in["couponId"])
		assert.Equal(t, "SAVE10", in["code"])
		assert.EqualValues(t, 10, in["discountValue"])
		assert.Nil(t, in["maxUses"])
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Coupon updated"})
	})

	msg, err := c.UpdateCoupon(context.Background(), cred, "c1", CouponInput{Code: "SAVE10", DiscountValue: 10})
	require.NoError(t, err)
	assert.Equal(t, "Coupon updated", msg)
}
