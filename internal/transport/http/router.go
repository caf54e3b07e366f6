package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/whatsdish-gateway/internal/application/catalog"
	"github.com/whatsdish-gateway/internal/application/otp"
	"github.com/whatsdish-gateway/internal/config"
	"github.com/whatsdish-gateway/internal/transport/http/handler"
	appmiddleware "github.com/whatsdish-gateway/internal/transport/http/middleware"
)

// NewRouter builds and returns the gateway router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	otpSvc := otp.NewService(deps.Upstream, deps.IPs)
	catalogSvc := catalog.NewService(deps.Store)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(otpSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	proxyH := handler.NewProxyHandler(deps.Upstream)

	// ── Public routes ────────────────────────────────────────────────────
	r.Get("/health-check/{action}", healthH.Ping)
	r.Get("/restaurant", catalogH.ListRestaurants)
	r.Get("/menu", catalogH.Menu)
	r.Post("/api/send-code", otpH.SendCode)
	r.Post("/api/verify-code", otpH.VerifyCode)

	// ── Proxied provider resources ───────────────────────────────────────
	for _, rt := range handler.ProxyRoutes {
		mw := appmiddleware.OptionalBearer
		if rt.RequireAuth {
			mw = appmiddleware.RequireBearer
		}
		r.With(mw).MethodFunc(rt.Method, rt.Pattern, proxyH.Handle(rt))
	}

	return r
}
