package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
)

// MaxProductImages is the number of image slots on a product.
const MaxProductImages = 4

// Image is a file to send in a multipart request.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// NewProduct is the add-product payload.
type NewProduct struct {
	Name        string
	Description string
	Price       string
	Category    string
	SubCategory string
	Bestseller  bool
	// MinOrderQuantity is sent only when non-empty.
	MinOrderQuantity string
	// QuantityPriceList is sent only when non-empty.
	QuantityPriceList models.PriceTiers
	// Images fill the image1..image4 slots in order.
	Images []Image
}

type productListResponse struct {
	Products   []models.Product  `json:"products"`
	Pagination models.Pagination `json:"pagination"`
}

// ListProducts fetches one page of the server-side filtered product list.
func (c *Client) ListProducts(ctx context.Context, cred Credential, q listing.Query[listing.ProductFilter]) (listing.Result[models.Product], error) {
	var out productListResponse
	if err := c.postJSON(ctx, &cred, "/api/product/list", q.Body(), &out); err != nil {
		return listing.Result[models.Product]{}, err
	}
	return listing.Result[models.Product]{
		Items:    out.Products,
		Total:    out.Pagination.Total,
		Pages:    out.Pagination.Pages,
		Page:     q.Page,
		PageSize: q.Limit,
	}, nil
}

// RemoveProduct deletes a product and returns the backend's message.
func (c *Client) RemoveProduct(ctx context.Context, cred Credential, id string) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/product/remove", map[string]string{"id": id}, &out)
	return out.Message, err
}

// AddProduct creates a product from a multipart form.
func (c *Client) AddProduct(ctx context.Context, cred Credential, p NewProduct) (string, error) {
	if len(p.Images) > MaxProductImages {
		return "", fmt.Errorf("add product: at most %d images, got %d", MaxProductImages, len(p.Images))
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"name", p.Name},
		{"description", p.Description},
		{"price", p.Price},
		{"category", p.Category},
		{"subCategory", p.SubCategory},
		{"bestseller", strconv.FormatBool(p.Bestseller)},
	}
	if p.MinOrderQuantity != "" {
		fields = append(fields, [2]string{"minOrderQuantity", p.MinOrderQuantity})
	}
	if len(p.QuantityPriceList) > 0 {
		encoded, err := p.QuantityPriceList.Encode()
		if err != nil {
			return "", fmt.Errorf("add product: encoding price list: %w", err)
		}
		fields = append(fields, [2]string{"quantityPriceList", encoded})
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return "", fmt.Errorf("add product: %w", err)
		}
	}
	for i, img := range p.Images {
		if err := writeFile(mw, "image"+strconv.Itoa(i+1), img); err != nil {
			return "", fmt.Errorf("add product: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("add product: %w", err)
	}

	var out envelope
	err := c.do(ctx, &cred, http.MethodPost, "/api/product/add", &buf, mw.FormDataContentType(), &out)
	return out.Message, err
}

func writeFile(mw *multipart.Writer, field string, img Image) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, img.Filename))
	ct := img.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, img.Body)
	return err
}
