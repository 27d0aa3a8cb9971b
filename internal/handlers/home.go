package handlers

import "net/http"

// Home sends the browser to the dashboard or to the login page.
func (h *AdminHandler) Home(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	if auth, ok := session.Values["authenticated"].(bool); ok && auth {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
