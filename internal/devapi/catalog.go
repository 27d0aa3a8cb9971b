package devapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const maxUploadMemory = 32 << 20

var errNotImage = errors.New("upload is not an image")

// pageParams clamps list paging to page >= 1 and 1 <= limit <= 100.
func pageParams(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = listing.DefaultPageSize
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

type productListRequest struct {
	Page             int    `json:"page"`
	Limit            int    `json:"limit"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	SubCategory      string `json:"subCategory"`
	HasMinOrder      bool   `json:"hasMinOrder"`
	HasQuantityPrice bool   `json:"hasQuantityPrice"`
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	var req productListRequest
	if !decode(w, r, &req) {
		return
	}
	page, limit := pageParams(req.Page, req.Limit)
	q := listing.Query[listing.ProductFilter]{
		Page:  page,
		Limit: limit,
		Filter: listing.ProductFilter{
			StartDate:        strings.TrimSpace(req.StartDate),
			EndDate:          strings.TrimSpace(req.EndDate),
			Name:             strings.TrimSpace(req.Name),
			Category:         req.Category,
			SubCategory:      req.SubCategory,
			HasMinOrder:      req.HasMinOrder,
			HasQuantityPrice: req.HasQuantityPrice,
		},
	}
	res, err := s.Store.ListProducts(r.Context(), q)
	if err != nil {
		s.internal(w, r, err)
		return
	}
	ok(w, map[string]any{
		"products":   res.Items,
		"pagination": models.Pagination{Total: res.Total, Pages: res.Pages},
	})
}

func (s *Server) removeProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.Store.DeleteProduct(r.Context(), req.ID); err != nil {
		s.storeErr(w, r, err, "Product not found")
		return
	}
	done(w, "Product Removed")
}

func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		fail(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	p := models.Product{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Category:    r.FormValue("category"),
		SubCategory: r.FormValue("subCategory"),
		Bestseller:  r.FormValue("bestseller") == "true",
	}
	if p.Name == "" || p.Description == "" {
		fail(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		fail(w, http.StatusBadRequest, "Invalid price")
		return
	}
	p.Price = price

	if v := r.FormValue("minOrderQuantity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fail(w, http.StatusBadRequest, "Invalid minimum order quantity")
			return
		}
		p.MinOrderQuantity = n
	}
	if v := r.FormValue("quantityPriceList"); v != "" {
		if err := p.QuantityPriceList.UnmarshalJSON([]byte(v)); err != nil {
			fail(w, http.StatusBadRequest, "Invalid quantity price list")
			return
		}
	}

	for i := 1; i <= 4; i++ {
		file, _, err := r.FormFile("image" + strconv.Itoa(i))
		if err != nil {
			continue
		}
		url, err := s.saveImage(file)
		file.Close()
		if errors.Is(err, errNotImage) {
			fail(w, http.StatusBadRequest, "Only image files are allowed")
			return
		}
		if err != nil {
			s.internal(w, r, err)
			return
		}
		p.Images = append(p.Images, url)
	}

	if err := s.Store.CreateProduct(r.Context(), &p); err != nil {
		s.internal(w, r, err)
		return
	}
	done(w, "Product Added")
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		fail(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		fail(w, http.StatusBadRequest, "No image provided")
		return
	}
	defer file.Close()

	url, err := s.saveImage(file)
	if errors.Is(err, errNotImage) {
		fail(w, http.StatusBadRequest, "Only image files are allowed")
		return
	}
	if err != nil {
		s.internal(w, r, err)
		return
	}
	ok(w, map[string]any{"url": url})
}

// saveImage stores an uploaded image under a fresh uuid name and returns
// its public URL. The extension follows the sniffed content, not the
// client's file name.
func (s *Server) saveImage(file multipart.File) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", errNotImage
	}
	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}
	name := uuid.New().String() + mt.Extension()
	out, err := os.Create(filepath.Join(s.UploadDir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return s.PublicURL + "/uploads/" + name, nil
}

// flexString accepts a JSON string or number, for filter fields that some
// clients send as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	switch string(data) {
	case "null":
		*f = ""
		return nil
	case "true", "false":
		*f = flexString(data)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
