// Package handlers serves the admin dashboard pages. Every page reads from
// and writes to the backend through the API client; the session only holds
// the backend token and flash messages.
package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"
)

const sessionName = "admin-session"

type AdminHandler struct {
	API          *api.Client
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	// Currency prefixes money amounts.
	Currency string
	// StoreURL links to the public storefront when set.
	StoreURL string
	// ImageMaxWidth caps product image width before upload; 0 keeps
	// images as they are.
	ImageMaxWidth uint
	// Now is the clock used for form defaults.
	Now func() time.Time
}

type credentialKey struct{}

func withCredential(ctx context.Context, cred api.Credential) context.Context {
	return context.WithValue(ctx, credentialKey{}, cred)
}

// credential returns the backend credential attached by AuthMiddleware.
func credential(r *http.Request) api.Credential {
	cred, _ := r.Context().Value(credentialKey{}).(api.Credential)
	return cred
}

func (h *AdminHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *AdminHandler) session(r *http.Request) *sessions.Session {
	// A cookie that no longer decodes yields a fresh session.
	session, _ := h.SessionStore.Get(r, sessionName)
	return session
}

// render executes a page inside the layout. Flashes, the CSRF field and the
// currency are added to data.
func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session := h.session(r)
	if data == nil {
		data = map[string]any{}
	}
	data["CsrfField"] = csrf.TemplateField(r)
	data["Flashes"] = GetFlash(session)
	data["Currency"] = h.Currency
	data["Path"] = r.URL.Path
	data["StoreURL"] = h.StoreURL
	if auth, ok := session.Values["authenticated"].(bool); ok && auth {
		data["AdminEmail"] = session.Values["email"]
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutFile, data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err, "request_id", api.RequestID(r.Context()))
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	session.Save(r, w) // Save session to clear flashes
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// redirect adds a flash and sends the browser to target.
func (h *AdminHandler) redirect(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	session := h.session(r)
	if message != "" {
		session.AddFlash(FlashMessage{Type: kind, Message: message})
	}
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// failed reports a backend failure. A rejected credential ends the session;
// anything else is flashed and the browser returns to target, which
// re-renders the data it showed before.
func (h *AdminHandler) failed(w http.ResponseWriter, r *http.Request, target string, err error) {
	slog.Warn("Backend call failed", "path", r.URL.Path, "error", err, "request_id", api.RequestID(r.Context()))
	if api.IsUnauthorized(err) {
		h.endSession(w, r, "Your session has expired. Please log in again.")
		return
	}
	h.redirect(w, r, target, "error", api.Message(err))
}

func (h *AdminHandler) endSession(w http.ResponseWriter, r *http.Request, message string) {
	session := h.session(r)
	delete(session.Values, "token")
	delete(session.Values, "email")
	session.Values["authenticated"] = false
	session.AddFlash(FlashMessage{Type: "error", Message: message})
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// returnTo is the list URL a mutation goes back to. Only dashboard paths
// are accepted.
func returnTo(r *http.Request, fallback string) string {
	target := r.FormValue("return")
	if strings.HasPrefix(target, "/admin") && !strings.HasPrefix(target, "//") {
		return target
	}
	return fallback
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", map[string]any{
		"Email": r.URL.Query().Get("email"),
	})
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.redirect(w, r, "/login", "error", "Email and password are required")
		return
	}

	cred, err := h.API.AdminLogin(r.Context(), email, password)
	if err != nil {
		slog.Info("Login failed", "email", email, "error", err)
		h.redirect(w, r, "/login", "error", api.Message(err))
		return
	}

	session := h.session(r)
	session.Values["authenticated"] = true
	session.Values["token"] = cred.Token
	session.Values["email"] = email
	session.Options.Path = "/"
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome back!"})
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful", "email", email)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	delete(session.Values, "token")
	delete(session.Values, "email")
	session.Values["authenticated"] = false
	session.AddFlash(FlashMessage{Type: "success", Message: "Logged out successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// AuthMiddleware ensures the user is logged in and attaches the backend
// credential to the request context.
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := h.session(r)
		auth, _ := session.Values["authenticated"].(bool)
		token, _ := session.Values["token"].(string)
		if !auth || token == "" {
			slog.Debug("AuthMiddleware: not authenticated, redirecting to /login", "path", r.URL.Path)
			h.redirect(w, r, "/login", "error", "You must be logged in to access this page.")
			return
		}
		next(w, r.WithContext(withCredential(r.Context(), api.Credential{Token: token})))
	}
}

// Stats are the overview counters.
type Stats struct {
	Products       int
	Orders         int
	PendingOrders  int
	UnreadContacts int
	ActiveCoupons  int
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	cred := credential(r)
	var stats Stats

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		res, err := h.API.ListProducts(ctx, cred, listing.NewState(listing.ProductFilter{}).Query())
		stats.Products = res.Total
		return err
	})
	g.Go(func() error {
		res, err := h.API.ListOrders(ctx, cred, listing.NewState(listing.OrderFilter{}).Query())
		stats.Orders = res.Total
		return err
	})
	g.Go(func() error {
		pending := listing.NewState(listing.OrderFilter{PaymentStatus: "false"})
		res, err := h.API.ListOrders(ctx, cred, pending.Query())
		stats.PendingOrders = res.Total
		return err
	})
	g.Go(func() error {
		contacts, err := h.API.ListContacts(ctx, cred)
		stats.UnreadContacts = len(listing.Filtered(contacts, listing.ContactFilter{Status: models.ContactUnread}.Match))
		return err
	})
	g.Go(func() error {
		coupons, err := h.API.ListCoupons(ctx, cred)
		for _, c := range coupons {
			if c.IsActive {
				stats.ActiveCoupons++
			}
		}
		return err
	})

	err := g.Wait()
	data := map[string]any{"Stats": stats}
	if err != nil {
		if api.IsUnauthorized(err) {
			h.endSession(w, r, "Your session has expired. Please log in again.")
			return
		}
		slog.Warn("Failed to load dashboard stats", "error", err, "request_id", api.RequestID(r.Context()))
		data["Error"] = api.Message(err)
	}
	h.render(w, r, http.StatusOK, "admin.html", data)
}
