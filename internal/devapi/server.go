// Package devapi is a local stand-in for the shop backend. It serves the
// same HTTP contract the dashboard consumes, backed by SQLite, for local
// development and end-to-end tests.
package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an admin token stays valid.
const TokenTTL = 24 * time.Hour

type Server struct {
	Store *store.Store
	// Secret signs admin tokens.
	Secret []byte
	// UploadDir receives images posted to the upload endpoint.
	UploadDir string
	// PublicURL prefixes the URLs returned for uploaded images.
	PublicURL string
	Logger    *slog.Logger
}

// EnsureAdmin stores the admin account with a bcrypt hash of password.
func (s *Server) EnsureAdmin(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	return s.Store.UpsertAdmin(ctx, strings.ToLower(email), string(hash))
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Post("/api/user/admin", s.adminLogin)
	r.Get("/api/order/settings", s.getSettings)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.UploadDir))))

	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)

		r.Post("/api/product/add", s.addProduct)
		r.Post("/api/product/list", s.listProducts)
		r.Post("/api/product/remove", s.removeProduct)

		r.Post("/api/order/list", s.listOrders)
		r.Post("/api/order/status", s.updateOrderStatus)
		r.Post("/api/order/payment-status", s.updatePaymentStatus)

		r.Get("/api/order/coupons", s.listCoupons)
		r.Post("/api/order/coupon/add", s.addCoupon)
		r.Post("/api/order/coupon/update", s.updateCoupon)
		r.Post("/api/order/coupon/delete", s.deleteCoupon)

		r.Get("/api/order/crypto-wallets", s.listWallets)
		r.Post("/api/order/crypto-wallet/add", s.addWallet)
		r.Post("/api/order/crypto-wallet/update", s.updateWallet)
		r.Post("/api/order/crypto-wallet/delete", s.deleteWallet)

		r.Post("/api/order/settings/update", s.updateSettings)

		r.Post("/api/contact/list", s.listContacts)
		r.Post("/api/contact/update-status", s.updateContactStatus)
		r.Post("/api/contact/delete", s.deleteContact)

		r.Get("/api/blog/admin/list", s.listBlogs)
		r.Post("/api/blog/create", s.createBlog)
		r.Put("/api/blog/update/{id}", s.updateBlog)
		r.Delete("/api/blog/delete/{id}", s.deleteBlog)

		r.Post("/api/upload-image/add", s.uploadImage)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fail(w, http.StatusNotFound, "Route not found")
	})
	return r
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger().Info("API request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", requestID(r),
		)
	})
}

// requestID prefers the id forwarded by the dashboard.
func requestID(r *http.Request) string {
	if id := r.Header.Get(api.RequestIDHeader); id != "" {
		return id
	}
	return middleware.GetReqID(r.Context())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	admin, err := s.Store.GetAdminByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.internal(w, r, err)
		return
	}
	if admin == nil || bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   admin.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		s.internal(w, r, err)
		return
	}
	ok(w, map[string]any{"token": signed})
}

// requireAdmin rejects requests without a valid admin token.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(api.TokenHeader)
		if raw == "" {
			fail(w, http.StatusUnauthorized, "Not Authorized Login Again")
			return
		}
		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
			return s.Secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			s.logger().Warn("Rejected admin token", "error", err, "request_id", requestID(r))
			fail(w, http.StatusUnauthorized, "Not Authorized Login Again")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ok(w http.ResponseWriter, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["success"] = true
	writeJSON(w, http.StatusOK, payload)
}

func done(w http.ResponseWriter, message string) {
	ok(w, map[string]any{"message": message})
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// decode reads a JSON body into v, answering 400 when it is malformed.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) internal(w http.ResponseWriter, r *http.Request, err error) {
	s.logger().Error("API request failed", "path", r.URL.Path, "error", err, "request_id", requestID(r))
	fail(w, http.StatusInternalServerError, "Internal server error")
}

// storeErr maps store errors to responses; notFound is the message for a
// missing document.
func (s *Server) storeErr(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(w, http.StatusNotFound, notFound)
	default:
		s.internal(w, r, err)
	}
}
