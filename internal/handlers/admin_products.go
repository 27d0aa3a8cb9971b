package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/forms"
	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/media"
	"github.com/alextreichler/pharmadmin/internal/models"
)

const productsPath = "/admin/products"

// maxFormMemory bounds multipart parsing; larger parts spill to disk.
const maxFormMemory = 10 << 20

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	cred := credential(r)
	data, err := loadList(r, productsPath, listing.ProductFilter{}, listing.ParseProductFilter,
		func(ctx context.Context, q listing.Query[listing.ProductFilter]) (listing.Result[models.Product], error) {
			return h.API.ListProducts(ctx, cred, q)
		})
	data["Categories"] = models.Categories
	data["SubCategories"] = models.SubCategories
	h.renderList(w, r, "products.html", data, err)
}

func (h *AdminHandler) AddProductForm(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, http.StatusOK, forms.NewProductForm(), "")
}

func (h *AdminHandler) renderProductForm(w http.ResponseWriter, r *http.Request, status int, form forms.ProductForm, errMsg string) {
	h.render(w, r, status, "product_form.html", map[string]any{
		"Form":          form,
		"Error":         errMsg,
		"Categories":    models.Categories,
		"SubCategories": models.SubCategories,
		"ImageSlots":    []int{1, 2, 3, 4},
	})
}

// CreateProduct validates the form, then sends one multipart add request
// carrying up to four images. A rejected form is shown again with the
// entered values.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.redirect(w, r, productsPath+"/new", "error", "Could not read the form. Images must total less than 10MB.")
		return
	}

	form := forms.ParseProductForm(r.PostForm)
	var payload api.NewProduct
	err := form.Validate()
	if err == nil {
		payload, err = form.Payload()
	}
	if err != nil {
		h.renderProductForm(w, r, http.StatusUnprocessableEntity, form, formMessage(err))
		return
	}

	images, closeAll, err := h.productImages(r.MultipartForm)
	defer closeAll()
	if err != nil {
		h.renderProductForm(w, r, http.StatusUnprocessableEntity, form, formMessage(err))
		return
	}
	payload.Images = images

	msg, err := h.API.AddProduct(r.Context(), credential(r), payload)
	if err != nil {
		if api.IsUnauthorized(err) {
			h.failed(w, r, productsPath, err)
			return
		}
		h.renderProductForm(w, r, http.StatusOK, form, api.Message(err))
		return
	}
	if msg == "" {
		msg = "Product added successfully!"
	}
	h.redirect(w, r, productsPath, "success", msg)
}

// productImages collects the image1..image4 uploads in slot order, scaled
// down to ImageMaxWidth. The returned func closes every opened file.
func (h *AdminHandler) productImages(mf *multipart.Form) ([]api.Image, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	var images []api.Image
	for i := 1; i <= api.MaxProductImages; i++ {
		headers := mf.File["image"+strconv.Itoa(i)]
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, &forms.ValidationError{Field: "image", Message: fmt.Sprintf("Could not read image %d", i)}
		}
		files = append(files, f)
		img, err := media.Downscale(f, fh.Filename, fh.Header.Get("Content-Type"), h.ImageMaxWidth)
		if err != nil {
			return nil, closeAll, &forms.ValidationError{Field: "image", Message: fmt.Sprintf("Could not process image %d", i)}
		}
		images = append(images, img)
	}
	return images, closeAll, nil
}

func (h *AdminHandler) DeleteProductConfirm(w http.ResponseWriter, r *http.Request) {
	h.confirmDelete(w, r, productsPath+"/delete", "product", productsPath)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.deleteConfirmed(w, r, productsPath, "Product removed", h.API.RemoveProduct)
}
