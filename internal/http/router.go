package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/sahabulislamsifat/PlantStore/internal/auth"
	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"github.com/sahabulislamsifat/PlantStore/internal/service"
)

// RouterConfig bundles the dependencies the route tree needs
type RouterConfig struct {
	Catalog        *service.CatalogService
	Orders         *service.OrderService
	Users          *service.UserService
	Tokens         *auth.TokenMaker
	Logger         zerolog.Logger
	RequestTimeout time.Duration
	CookieTTL      time.Duration
	SecureCookies  bool
}

// NewRouter mounts the REST surface. Each mutating route declares its
// required capability through the middleware chain; role checks run
// before any data access.
func NewRouter(cfg RouterConfig) *chi.Mux {
	authHandler := NewAuthHandler(cfg.Tokens, cfg.CookieTTL, cfg.SecureCookies)
	userHandler := NewUserHandler(cfg.Users, cfg.RequestTimeout)
	plantHandler := NewPlantHandler(cfg.Catalog, cfg.RequestTimeout)
	orderHandler := NewOrderHandler(cfg.Orders, cfg.RequestTimeout)

	anyUser := RequireUser(cfg.Users)
	seller := RequireRole(cfg.Users, domain.RoleSeller, domain.RoleAdmin)
	customer := RequireRole(cfg.Users, domain.RoleCustomer)
	admin := RequireRole(cfg.Users, domain.RoleAdmin)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware(cfg.Tokens))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Session
	r.Post("/jwt", authHandler.IssueToken)
	r.Get("/logout", authHandler.Logout)

	// Users
	r.Post("/user/{email}", userHandler.Upsert)
	r.Get("/users/role/{email}", userHandler.GetRole)
	r.With(anyUser).Patch("/user/{email}", userHandler.RequestSeller)
	r.With(admin).Get("/all-users/{email}", userHandler.ListAll)
	r.With(admin).Patch("/user/role/{email}", userHandler.SetRole)

	// Catalog
	r.Get("/plants", plantHandler.List)
	r.Get("/plant/{id}", plantHandler.Get)
	r.With(seller).Get("/plants/seller", plantHandler.SellerPlants)
	r.With(seller).Post("/plant", plantHandler.Create)
	r.With(seller).Put("/plants/{id}", plantHandler.Update)
	r.With(seller).Delete("/plants/{id}", plantHandler.Delete)
	r.With(anyUser).Patch("/plant/quantity/{id}", plantHandler.AdjustQuantity)

	// Orders
	r.With(customer).Post("/order", orderHandler.Place)
	r.With(anyUser).Delete("/order/{id}", orderHandler.Cancel)
	r.With(seller).Patch("/orders/{id}", orderHandler.UpdateStatus)
	r.With(anyUser).Get("/customer-orders/{email}", orderHandler.CustomerOrders)
	r.With(seller).Get("/seller-orders/{email}", orderHandler.SellerOrders)

	return r
}
