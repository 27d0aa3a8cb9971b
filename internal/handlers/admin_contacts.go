package handlers

import (
	"context"
	"net/http"

	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
)

const contactsPath = "/admin/contacts"

func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	cred := credential(r)
	data, err := loadList(r, contactsPath, listing.ContactFilter{}, listing.ParseContactFilter,
		clientSide(
			func(ctx context.Context) ([]models.Contact, error) {
				return h.API.ListContacts(ctx, cred)
			},
			func(f listing.ContactFilter) func(models.Contact) bool { return f.Match },
		))
	data["Statuses"] = models.ContactStatuses
	h.renderList(w, r, "contacts.html", data, err)
}

// ViewContact shows one message. Opening an unread message marks it read
// with a single status update, patched into the loaded list rather than
// fetched again.
func (h *AdminHandler) ViewContact(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	target := returnTo(r, contactsPath)
	if id == "" {
		h.redirect(w, r, target, "error", "Invalid ID.")
		return
	}

	cred := credential(r)
	// The contact endpoint has no single-record read, so the whole list is
	// loaded as one page.
	loader := listing.NewLoader(func(ctx context.Context, q listing.Query[listing.None]) (listing.Result[models.Contact], error) {
		all, err := h.API.ListContacts(ctx, cred)
		return listing.Slice(all, 1, max(len(all), 1)), err
	})
	res, err := loader.Load(r.Context(), listing.NewState(listing.None{}))
	if err != nil {
		h.failed(w, r, target, err)
		return
	}
	byID := func(c models.Contact) bool { return c.ID == id }
	found := listing.Filtered(res.Items, byID)
	if len(found) == 0 {
		h.redirect(w, r, target, "error", "Contact not found")
		return
	}

	if found[0].Status == models.ContactUnread {
		if _, err := h.API.UpdateContactStatus(r.Context(), cred, id, models.ContactRead); err != nil {
			h.failed(w, r, target, err)
			return
		}
		loader.Patch(byID, func(c *models.Contact) { c.Status = models.ContactRead })
		res, _ = loader.Result()
		found = listing.Filtered(res.Items, byID)
	}
	contact := found[0]

	h.render(w, r, http.StatusOK, "contact_view.html", map[string]any{
		"Contact":  contact,
		"Statuses": models.ContactStatuses,
		"Return":   target,
	})
}

func (h *AdminHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	target := returnTo(r, contactsPath)
	id := r.FormValue("id")
	status := r.FormValue("status")
	if id == "" || !models.Contains(models.ContactStatuses, status) {
		h.redirect(w, r, target, "error", "Invalid contact status.")
		return
	}
	msg, err := h.API.UpdateContactStatus(r.Context(), credential(r), id, status)
	if err != nil {
		h.failed(w, r, target, err)
		return
	}
	if msg == "" {
		msg = "Contact status updated"
	}
	h.redirect(w, r, target, "success", msg)
}

func (h *AdminHandler) DeleteContactConfirm(w http.ResponseWriter, r *http.Request) {
	h.confirmDelete(w, r, contactsPath+"/delete", "contact message", contactsPath)
}

func (h *AdminHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	h.deleteConfirmed(w, r, contactsPath, "Contact deleted", h.API.DeleteContact)
}
