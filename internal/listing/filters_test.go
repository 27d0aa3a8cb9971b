package listing

import (
	"fmt"
	"testing"
	"time"

	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrders() []models.Order {
	day := func(d, h int) models.Millis {
		return models.MillisOf(time.Date(2024, 5, d, h, 30, 0, 0, time.UTC))
	}
	return []models.Order{
		{ID: "o1", Address: models.Address{Email: "Alice@Example.com"}, PaymentMethod: "COD", Amount: 25, Status: "Order Placed", Date: day(1, 9)},
		{ID: "o2", Address: models.Address{Email: "bob@example.com"}, PaymentMethod: "Stripe", Amount: 19.99, Status: "Shipped", Payment: true, Date: day(2, 23)},
		{ID: "o3", Address: models.Address{Email: "carol@sample.org"}, PaymentMethod: "Manual", Amount: 25, Status: "Delivered", Payment: true, Date: day(3, 12)},
		{ID: "o4", Address: models.Address{Email: "alice@other.net"}, PaymentMethod: "cod", Amount: 7.5, Status: "shipped", Date: day(5, 0)},
	}
}

func ids(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestOrderFilterPredicates(t *testing.T) {
	all := sampleOrders()
	cases := []struct {
		name   string
		filter OrderFilter
		want   []string
	}{
		{"empty", OrderFilter{}, []string{"o1", "o2", "o3", "o4"}},
		{"email substring ignores case", OrderFilter{Email: "ALICE"}, []string{"o1", "o4"}},
		{"payment type ignores case", OrderFilter{PaymentType: "COD"}, []string{"o1", "o4"}},
		{"exact amount", OrderFilter{Amount: "25"}, []string{"o1", "o3"}},
		{"decimal amount", OrderFilter{Amount: "19.99"}, []string{"o2"}},
		{"unparseable amount is ignored", OrderFilter{Amount: "abc"}, []string{"o1", "o2", "o3", "o4"}},
		{"status ignores case", OrderFilter{Status: "Shipped"}, []string{"o2", "o4"}},
		{"paid", OrderFilter{PaymentStatus: "true"}, []string{"o2", "o3"}},
		{"pending", OrderFilter{PaymentStatus: "false"}, []string{"o1", "o4"}},
		{"end date covers whole day", OrderFilter{StartDate: "2024-05-02", EndDate: "2024-05-03"}, []string{"o2", "o3"}},
		{"open start", OrderFilter{EndDate: "2024-05-01"}, []string{"o1"}},
		{"open end", OrderFilter{StartDate: "2024-05-04"}, []string{"o4"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Filtered(all, tc.filter.Match)))
		})
	}
}

func TestEmptyFilterEqualsUnfiltered(t *testing.T) {
	all := sampleOrders()
	q := NewState(OrderFilter{}).Query()
	q.Limit = 2

	withEmpty := Paginate(all, q, OrderFilter{}.Match)
	unfiltered := Slice(all, q.Page, q.Limit)
	assert.Equal(t, unfiltered, withEmpty)

	var products []models.Product
	for i := 0; i < 5; i++ {
		products = append(products, models.Product{ID: fmt.Sprint(i), MinOrderQuantity: i})
	}
	assert.Equal(t, products, Filtered(products, ProductFilter{}.Match))
	assert.Len(t, Filtered(products, ProductFilter{HasMinOrder: true}.Match), 3)
}

func TestPaginateEqualsFilterThenSlice(t *testing.T) {
	var all []models.Order
	for i := 0; i < 37; i++ {
		status := models.StatusPacking
		if i%3 == 0 {
			status = models.StatusDelivered
		}
		all = append(all, models.Order{ID: fmt.Sprintf("o%02d", i), Status: status, Amount: float64(i % 5)})
	}
	f := OrderFilter{Status: models.StatusDelivered}

	var manual []models.Order
	for _, o := range all {
		if o.Status == models.StatusDelivered {
			manual = append(manual, o)
		}
	}

	for page := 1; page <= 3; page++ {
		q := Query[OrderFilter]{Page: page, Limit: 5, Filter: f}
		got := Paginate(all, q, f.Match)
		assert.Equal(t, len(manual), got.Total)
		assert.Equal(t, PageCount(len(manual), 5), got.Pages)

		end := min(page*5, len(manual))
		assert.Equal(t, ids(manual[(page-1)*5:end]), ids(got.Items))
	}
}

func TestSliceOrdersPage(t *testing.T) {
	var all []models.Order
	for i := 0; i < 25; i++ {
		all = append(all, models.Order{ID: fmt.Sprint(i)})
	}
	res := Slice(all, 2, 10)
	require.Len(t, res.Items, 10)
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 11, res.From())
	assert.Equal(t, 20, res.To())
	assert.True(t, res.HasPrev())
	assert.True(t, res.HasNext())

	last := Slice(all, 3, 10)
	assert.Len(t, last.Items, 5)
	assert.Equal(t, 25, last.To())
	assert.False(t, last.HasNext())

	past := Slice(all, 9, 10)
	assert.Empty(t, past.Items)
	assert.Equal(t, 0, past.From())
}

func TestContactFilter(t *testing.T) {
	contacts := []models.Contact{
		{ID: "c1", Email: "a@x.com", Status: models.ContactUnread},
		{ID: "c2", Email: "b@x.com", Status: models.ContactRead},
		{ID: "c3", Email: "a@y.com", Status: models.ContactUnread},
	}
	got := Filtered(contacts, ContactFilter{Status: models.ContactUnread, Email: "A@"}.Match)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "c3", got[1].ID)
}

func TestProductFilterMatch(t *testing.T) {
	tiers := models.PriceTiers{{}}
	p := models.Product{
		Name:              "Paracetamol 500mg",
		Category:          "OTC",
		SubCategory:       "Tablets",
		MinOrderQuantity:  10,
		QuantityPriceList: tiers,
		Date:              models.MillisOf(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)),
	}
	assert.True(t, ProductFilter{Name: "paracetamol", Category: "OTC", HasMinOrder: true, HasQuantityPrice: true}.Match(p))
	assert.False(t, ProductFilter{SubCategory: "Syrups"}.Match(p))
	assert.False(t, ProductFilter{StartDate: "2024-01-11"}.Match(p))
	assert.True(t, ProductFilter{EndDate: "2024-01-10"}.Match(p))
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, OrderFilter{}.IsZero())
	assert.False(t, OrderFilter{Amount: "15"}.IsZero())
	assert.True(t, ProductFilter{}.IsZero())
	assert.False(t, ProductFilter{HasMinOrder: true}.IsZero())
	assert.True(t, ContactFilter{}.IsZero())
	assert.False(t, ContactFilter{Status: "Read"}.IsZero())
	assert.True(t, None{}.IsZero())

	s := NewState(OrderFilter{})
	s.Filter.Email = "alice"
	assert.False(t, s.Filter.IsZero())
	s.Clear()
	assert.True(t, s.Filter.IsZero())
}
