package handlers

import (
	"net/http"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/forms"
)

const settingsPath = "/admin/settings"

func (h *AdminHandler) SettingsForm(w http.ResponseWriter, r *http.Request) {
	settings, err := h.API.GetSettings(r.Context(), credential(r))
	if err != nil {
		if api.IsUnauthorized(err) {
			h.failed(w, r, "/admin", err)
			return
		}
		h.renderSettings(w, r, http.StatusOK, forms.SettingsForm{}, api.Message(err))
		return
	}
	h.renderSettings(w, r, http.StatusOK, forms.SettingsFormFrom(settings), "")
}

func (h *AdminHandler) renderSettings(w http.ResponseWriter, r *http.Request, status int, form forms.SettingsForm, errMsg string) {
	h.render(w, r, status, "settings.html", map[string]any{
		"Form":  form,
		"Error": errMsg,
	})
}

func (h *AdminHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, settingsPath, "error", "Could not read the form.")
		return
	}
	form := forms.ParseSettingsForm(r.PostForm)
	if err := form.Validate(); err != nil {
		h.renderSettings(w, r, http.StatusUnprocessableEntity, form, formMessage(err))
		return
	}
	msg, err := h.API.UpdateSettings(r.Context(), credential(r), form.Settings())
	if err != nil {
		if api.IsUnauthorized(err) {
			h.failed(w, r, settingsPath, err)
			return
		}
		h.renderSettings(w, r, http.StatusOK, form, api.Message(err))
		return
	}
	if msg == "" {
		msg = "Settings updated"
	}
	h.redirect(w, r, settingsPath, "success", msg)
}
