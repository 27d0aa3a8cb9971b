package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/forms"
	"github.com/alextreichler/pharmadmin/internal/listing"
)

func link(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// loadList runs one list fetch for the state in the request URL and returns
// the template data shared by every list page. A failed fetch is reported in
// "Error" and the page renders without rows.
func loadList[F listing.Filter, T any](r *http.Request, path string, def F, parse func(url.Values) F, fetch listing.FetchFunc[F, T]) (map[string]any, error) {
	state := listing.ParseState(r.URL.Query(), def, parse)
	loader := listing.NewLoader(fetch)
	res, err := loader.Load(r.Context(), state)
	if err != nil {
		// Keep the requested page in the pager when nothing was loaded.
		res.Page = state.Page
		res.PageSize = state.PageSize
	}

	hidden := url.Values{}
	state.Filter.Encode(hidden)
	cleared := *state
	cleared.Clear()

	data := map[string]any{
		"State":        state,
		"Result":       res,
		"Items":        res.Items,
		"ListPath":     path,
		"Return":       link(path, state.Values()),
		"FilterHidden": hidden,
		"Filtered":     !state.Filter.IsZero(),
		"ClearURL":     link(path, cleared.FilterValues()),
		"PrevURL":      link(path, state.PageValues(state.Page-1)),
		"NextURL":      link(path, state.PageValues(state.Page+1)),
		"PageSizes":    listing.PageSizes,
	}
	if err != nil {
		slog.Warn("List fetch failed", "path", path, "error", err, "request_id", api.RequestID(r.Context()))
		data["Error"] = api.Message(err)
	}
	return data, err
}

// clientSide adapts an unpaginated fetch to the filter-then-slice strategy.
func clientSide[F listing.Filter, T any](fetchAll func(ctx context.Context) ([]T, error), match func(F) func(T) bool) listing.FetchFunc[F, T] {
	return func(ctx context.Context, q listing.Query[F]) (listing.Result[T], error) {
		all, err := fetchAll(ctx)
		if err != nil {
			return listing.Result[T]{}, err
		}
		return listing.Paginate(all, q, match(q.Filter)), nil
	}
}

// renderList renders a loaded list page, ending the session when the
// backend rejected the credential.
func (h *AdminHandler) renderList(w http.ResponseWriter, r *http.Request, name string, data map[string]any, err error) {
	if err != nil && api.IsUnauthorized(err) {
		h.endSession(w, r, "Your session has expired. Please log in again.")
		return
	}
	h.render(w, r, http.StatusOK, name, data)
}

// confirmDelete renders the confirmation step of a delete. Nothing is sent
// to the backend until the confirmation form is posted.
func (h *AdminHandler) confirmDelete(w http.ResponseWriter, r *http.Request, action, what, fallback string) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.redirect(w, r, fallback, "error", "Invalid ID.")
		return
	}
	h.render(w, r, http.StatusOK, "confirm_delete.html", map[string]any{
		"Action": action,
		"ID":     id,
		"What":   what,
		"Label":  r.URL.Query().Get("label"),
		"Return": returnTo(r, fallback),
	})
}

type deleteFunc func(ctx context.Context, cred api.Credential, id string) (string, error)

// deleteConfirmed issues del only when the confirmation form said yes.
// Declining is a no-op that returns to the list.
func (h *AdminHandler) deleteConfirmed(w http.ResponseWriter, r *http.Request, fallback, success string, del deleteFunc) {
	target := returnTo(r, fallback)
	id := r.FormValue("id")
	if r.FormValue("confirm") != "yes" || id == "" {
		h.redirect(w, r, target, "", "")
		return
	}
	msg, err := del(r.Context(), credential(r), id)
	if err != nil {
		h.failed(w, r, target, err)
		return
	}
	if msg == "" {
		msg = success
	}
	h.redirect(w, r, target, "success", msg)
}

// formMessage is the text shown for a rejected form.
func formMessage(err error) string {
	if msg := forms.Message(err); msg != "" {
		return msg
	}
	return err.Error()
}
