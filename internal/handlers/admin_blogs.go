package handlers

import (
	"context"
	"net/http"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/forms"
	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/media"
	"github.com/alextreichler/pharmadmin/internal/models"
)

const blogsPath = "/admin/blogs"

// ListBlogs pages through the backend's blog listing.
func (h *AdminHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	cred := credential(r)
	data, err := loadList(r, blogsPath, listing.None{}, listing.ParseNone,
		func(ctx context.Context, q listing.Query[listing.None]) (listing.Result[models.Blog], error) {
			blogs, p, err := h.API.ListBlogs(ctx, cred, q.Page, q.Limit)
			return listing.Result[models.Blog]{Items: blogs, Total: p.TotalBlogs, Pages: p.TotalPages}, err
		})
	h.renderList(w, r, "blogs.html", data, err)
}

func (h *AdminHandler) NewBlog(w http.ResponseWriter, r *http.Request) {
	h.renderBlogForm(w, r, http.StatusOK, forms.BlogForm{}, "")
}

// EditBlog walks the blog listing for the post; there is no single-post
// admin read.
func (h *AdminHandler) EditBlog(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	limit := listing.PageSizes[len(listing.PageSizes)-1]
	for page := 1; ; page++ {
		blogs, p, err := h.API.ListBlogs(r.Context(), credential(r), page, limit)
		if err != nil {
			h.failed(w, r, blogsPath, err)
			return
		}
		for _, b := range blogs {
			if b.ID == id {
				h.renderBlogForm(w, r, http.StatusOK, forms.BlogFormFrom(b), "")
				return
			}
		}
		if page >= p.TotalPages || len(blogs) == 0 {
			break
		}
	}
	h.redirect(w, r, blogsPath, "error", "Blog not found")
}

func (h *AdminHandler) renderBlogForm(w http.ResponseWriter, r *http.Request, status int, form forms.BlogForm, errMsg string) {
	h.render(w, r, status, "blog_form.html", map[string]any{
		"Form":  form,
		"Error": errMsg,
	})
}

// SaveBlog uploads a newly chosen cover image first, then creates or
// updates the post with the image URL.
func (h *AdminHandler) SaveBlog(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.redirect(w, r, blogsPath, "error", "Could not read the form. Images must be less than 10MB.")
		return
	}
	form := forms.ParseBlogForm(r.PostForm)
	file, header, fileErr := r.FormFile("imageFile")
	if fileErr == nil {
		defer file.Close()
		form.HasUpload = true
	}
	if err := form.Validate(); err != nil {
		h.renderBlogForm(w, r, http.StatusUnprocessableEntity, form, formMessage(err))
		return
	}
	cred := credential(r)

	if form.HasUpload {
		img, err := media.Downscale(file, header.Filename, header.Header.Get("Content-Type"), h.ImageMaxWidth)
		if err != nil {
			h.renderBlogForm(w, r, http.StatusUnprocessableEntity, form, "Could not process the image")
			return
		}
		url, err := h.API.UploadImage(r.Context(), cred, img)
		if err != nil {
			h.blogFailed(w, r, form, err)
			return
		}
		form.Image = url
		form.HasUpload = false
	}

	var msg string
	var err error
	if form.Editing() {
		msg, err = h.API.UpdateBlog(r.Context(), cred, form.ID, form.Input())
	} else {
		msg, err = h.API.CreateBlog(r.Context(), cred, form.Input())
	}
	if err != nil {
		h.blogFailed(w, r, form, err)
		return
	}
	if msg == "" {
		msg = "Blog saved"
	}
	h.redirect(w, r, blogsPath, "success", msg)
}

func (h *AdminHandler) blogFailed(w http.ResponseWriter, r *http.Request, form forms.BlogForm, err error) {
	if api.IsUnauthorized(err) {
		h.failed(w, r, blogsPath, err)
		return
	}
	h.renderBlogForm(w, r, http.StatusOK, form, api.Message(err))
}

func (h *AdminHandler) DeleteBlogConfirm(w http.ResponseWriter, r *http.Request) {
	h.confirmDelete(w, r, blogsPath+"/delete", "blog post", blogsPath)
}

func (h *AdminHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	h.deleteConfirmed(w, r, blogsPath, "Blog deleted", h.API.DeleteBlog)
}
