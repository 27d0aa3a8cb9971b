package handlers

import "net/http"

// Routes registers the login pages and every dashboard page. Login posts
// go through loginLimiter.
func (h *AdminHandler) Routes(loginLimiter *RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()
	auth := h.AuthMiddleware

	mux.Handle("GET /static/", http.StripPrefix("/static", http.FileServerFS(Static())))
	mux.HandleFunc("GET /{$}", h.Home)

	mux.HandleFunc("GET /login", h.LoginGet)
	mux.HandleFunc("POST /login", loginLimiter.Middleware(h.LoginPost))
	mux.HandleFunc("/logout", h.Logout)

	// Protected Routes
	mux.HandleFunc("GET /admin", auth(h.Dashboard))

	mux.HandleFunc("GET /admin/products", auth(h.ListProducts))
	mux.HandleFunc("GET /admin/products/new", auth(h.AddProductForm))
	mux.HandleFunc("POST /admin/products", auth(h.CreateProduct))
	mux.HandleFunc("GET /admin/products/delete", auth(h.DeleteProductConfirm))
	mux.HandleFunc("POST /admin/products/delete", auth(h.DeleteProduct))

	mux.HandleFunc("GET /admin/orders", auth(h.ListOrders))
	mux.HandleFunc("POST /admin/orders/status", auth(h.UpdateOrderStatus))
	mux.HandleFunc("POST /admin/orders/payment", auth(h.UpdatePaymentStatus))

	mux.HandleFunc("GET /admin/contacts", auth(h.ListContacts))
	mux.HandleFunc("GET /admin/contacts/view", auth(h.ViewContact))
	mux.HandleFunc("POST /admin/contacts/status", auth(h.UpdateContactStatus))
	mux.HandleFunc("GET /admin/contacts/delete", auth(h.DeleteContactConfirm))
	mux.HandleFunc("POST /admin/contacts/delete", auth(h.DeleteContact))

	mux.HandleFunc("GET /admin/coupons", auth(h.ListCoupons))
	mux.HandleFunc("GET /admin/coupons/new", auth(h.NewCoupon))
	mux.HandleFunc("GET /admin/coupons/edit", auth(h.EditCoupon))
	mux.HandleFunc("POST /admin/coupons", auth(h.SaveCoupon))
	mux.HandleFunc("GET /admin/coupons/delete", auth(h.DeleteCouponConfirm))
	mux.HandleFunc("POST /admin/coupons/delete", auth(h.DeleteCoupon))

	mux.HandleFunc("GET /admin/wallets", auth(h.ListWallets))
	mux.HandleFunc("GET /admin/wallets/new", auth(h.NewWallet))
	mux.HandleFunc("GET /admin/wallets/edit", auth(h.EditWallet))
	mux.HandleFunc("POST /admin/wallets", auth(h.SaveWallet))
	mux.HandleFunc("POST /admin/wallets/qr", auth(h.UploadWalletQR))
	mux.HandleFunc("GET /admin/wallets/delete", auth(h.DeleteWalletConfirm))
	mux.HandleFunc("POST /admin/wallets/delete", auth(h.DeleteWallet))

	mux.HandleFunc("GET /admin/blogs", auth(h.ListBlogs))
	mux.HandleFunc("GET /admin/blogs/new", auth(h.NewBlog))
	mux.HandleFunc("GET /admin/blogs/edit", auth(h.EditBlog))
	mux.HandleFunc("POST /admin/blogs", auth(h.SaveBlog))
	mux.HandleFunc("GET /admin/blogs/delete", auth(h.DeleteBlogConfirm))
	mux.HandleFunc("POST /admin/blogs/delete", auth(h.DeleteBlog))

	mux.HandleFunc("GET /admin/settings", auth(h.SettingsForm))
	mux.HandleFunc("POST /admin/settings", auth(h.SaveSettings))

	return mux
}
