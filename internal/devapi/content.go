package devapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.Store.ListContacts(r.Context())
	if err != nil {
		s.internal(w, r, err)
		return
	}
	ok(w, map[string]any{"contacts": contacts})
}

func (s *Server) updateContactStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContactID string `json:"contactId"`
		Status    string `json:"status"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !models.Contains(models.ContactStatuses, req.Status) {
		fail(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if err := s.Store.UpdateContactStatus(r.Context(), req.ContactID, req.Status); err != nil {
		s.storeErr(w, r, err, "Contact not found")
		return
	}
	done(w, "Status updated successfully")
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContactID string `json:"contactId"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.Store.DeleteContact(r.Context(), req.ContactID); err != nil {
		s.storeErr(w, r, err, "Contact not found")
		return
	}
	done(w, "Contact deleted successfully")
}

func (s *Server) listBlogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, limit = pageParams(page, limit)

	blogs, total, err := s.Store.ListBlogs(r.Context(), page, limit)
	if err != nil {
		s.internal(w, r, err)
		return
	}
	ok(w, map[string]any{
		"blogs": blogs,
		"pagination": models.BlogPagination{
			CurrentPage: page,
			TotalPages:  listing.PageCount(total, limit),
			TotalBlogs:  total,
		},
	})
}

func blogFrom(in api.BlogInput) (models.Blog, bool) {
	b := models.Blog{
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Content:     in.Content,
		Image:       strings.TrimSpace(in.Image),
		IsPublished: in.IsPublished,
	}
	return b, b.Title != "" && b.Author != "" && strings.TrimSpace(b.Content) != "" && b.Image != ""
}

func (s *Server) createBlog(w http.ResponseWriter, r *http.Request) {
	var in api.BlogInput
	if !decode(w, r, &in) {
		return
	}
	b, valid := blogFrom(in)
	if !valid {
		fail(w, http.StatusBadRequest, "Title, author, content and image are required")
		return
	}
	if err := s.Store.CreateBlog(r.Context(), &b); err != nil {
		s.internal(w, r, err)
		return
	}
	ok(w, map[string]any{"message": "Blog created successfully", "blog": b})
}

func (s *Server) updateBlog(w http.ResponseWriter, r *http.Request) {
	var in api.BlogInput
	if !decode(w, r, &in) {
		return
	}
	b, valid := blogFrom(in)
	if !valid {
		fail(w, http.StatusBadRequest, "Title, author, content and image are required")
		return
	}
	b.ID = chi.URLParam(r, "id")
	if err := s.Store.UpdateBlog(r.Context(), b); err != nil {
		s.storeErr(w, r, err, "Blog not found")
		return
	}
	done(w, "Blog updated successfully")
}

func (s *Server) deleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DeleteBlog(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.storeErr(w, r, err, "Blog not found")
		return
	}
	done(w, "Blog deleted successfully")
}
