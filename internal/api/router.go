package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"

	"stylemart/internal/api/handler"
	"stylemart/internal/app/service"
	"stylemart/internal/common/security"
)

func NewRouter(
	tokens *security.TokenManager,
	authService *service.AuthService,
	adminService *service.AdminService,
	addressService *service.AddressService,
	productService *service.ProductService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Extracts a bearer token from "Authorization: Bearer T" and stores the
	// verification outcome in the context. middleware.Authenticator decides
	// per-route whether that outcome admits the request.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		adminHandler := handler.NewAdminHandler(adminService)
		v1.Route("/admin", adminHandler.RegisterRoutes)

		addressHandler := handler.NewAddressHandler(addressService)
		v1.Route("/addresses", addressHandler.RegisterRoutes)

		productHandler := handler.NewProductHandler(productService)
		v1.Route("/products", productHandler.RegisterRoutes)
	})

	return r
}
