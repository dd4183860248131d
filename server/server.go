package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/foodcart/backoffice/config"
	"github.com/foodcart/backoffice/geocode"
	"github.com/foodcart/backoffice/handlers"
	"github.com/foodcart/backoffice/middlewares"
	"github.com/foodcart/backoffice/models"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes(cfg *config.Config, cache *geocode.Cache) *Server {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	router.HandleFunc("/register", handlers.Register).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")
	router.HandleFunc("/login", handlers.Login).Methods("POST")

	orderAPI := handlers.NewOrderAPI(cache, cfg.PhoneRegion)

	// public storefront API
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", handlers.ListProducts).Methods("GET")
	api.HandleFunc("/banners", handlers.ListBanners).Methods("GET")
	api.HandleFunc("/order", orderAPI.RegisterOrder).Methods("POST")

	authRoutes := router.PathPrefix("/api").Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware)
	authRoutes.HandleFunc("/logout", handlers.Logout).Methods("POST")

	// manager back office
	manager := authRoutes.PathPrefix("/manager").Subrouter()
	manager.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin, models.RoleManager))

	manager.HandleFunc("/orders", orderAPI.ListOrders).Methods("GET")
	manager.HandleFunc("/restaurants", handlers.ListRestaurants).Methods("GET")
	manager.HandleFunc("/resources", handlers.CreateResource).Methods("POST")

	// admin only
	admin := authRoutes.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin))

	admin.HandleFunc("/managers", handlers.PromoteManager).Methods("POST")
	admin.HandleFunc("/managers", handlers.ListManagers).Methods("GET")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(port string, allowedOrigins []string) error {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	svr.server = &http.Server{
		Addr:              port,
		Handler:           c.Handler(svr.Router),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
