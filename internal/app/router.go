// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package app assembles the route table of the Pawradise web tier.
package app

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/cache"
	"github.com/HariHaran212/Pawradize-sub000/internal/cart"
	"github.com/HariHaran212/Pawradize-sub000/internal/handler"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/middleware"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/render"
	"github.com/HariHaran212/Pawradize-sub000/web"
)

const (
	requestTimeout = 30 * time.Second
	staticMaxAge   = 365 * 24 * time.Hour

	// Public-only screens (sign in, register, reset) per client IP.
	authRateLimit = 2
	authBurst     = 20
)

// Deps holds everything the route table is built from.
type Deps struct {
	DB              *sql.DB
	Redis           *redis.Client // optional
	Sessions        *scs.SessionManager
	Client          *api.Client
	Resolver        *identity.Resolver
	Renderer        *render.Renderer
	Carts           *cart.Service
	GuideCache      cache.Cache // optional
	LoginProtection *middleware.LoginProtection
	CSRF            middleware.CSRFConfig
	Security        middleware.SecurityHeadersConfig
	MetricsCIDRs    []string
	Logger          *slog.Logger
}

// branch is one back-office section: the role admitted to it and the
// fragments it mounts. Its shell follows from the role.
type branch struct {
	role   model.Role
	mounts []func(chi.Router, Deps, render.Shell)
}

var branches = []branch{
	{
		role: model.RoleSuperAdmin,
		mounts: []func(chi.Router, Deps, render.Shell){
			mountPetRoutes, mountProductRoutes, mountOrderRoutes,
			mountGuideRoutes, mountVisitRoutes, mountUserRoutes,
		},
	},
	{
		role:   model.RoleStoreManager,
		mounts: []func(chi.Router, Deps, render.Shell){mountProductRoutes, mountOrderRoutes},
	},
	{
		role:   model.RoleAdoptionCoordinator,
		mounts: []func(chi.Router, Deps, render.Shell){mountPetRoutes, mountGuideRoutes, mountVisitRoutes},
	},
}

// NewRouter builds the chi route table.
func NewRouter(d Deps) (http.Handler, error) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(d.Security))
	r.Use(middleware.Metrics)

	health := handler.NewHealthHandler(d.DB, d.Client, d.Redis)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.With(middleware.IPAllowlist(d.MetricsCIDRs, d.Logger)).Handle("/metrics", promhttp.Handler())

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}
	r.With(middleware.StaticCache(staticMaxAge)).
		Handle("/static/dist/*", http.StripPrefix("/static/dist/", http.FileServer(http.FS(staticFS))))

	auth := handler.NewAuthHandler(d.Renderer, d.Client, d.Resolver, d.LoginProtection)
	storefront := handler.NewStorefrontHandler(d.Renderer, d.Client, d.GuideCache)
	carts := handler.NewCartHandler(d.Renderer, d.Client, d.Carts)
	account := handler.NewAccountHandler(d.Renderer, d.Client, d.Resolver)
	authLimiter := middleware.NewRateLimiter(authRateLimit, authBurst)

	r.Group(func(r chi.Router) {
		r.Use(d.Sessions.LoadAndSave)
		r.Use(d.Resolver.Middleware)
		r.Use(middleware.CSRF(d.CSRF))
		r.Use(middleware.NoStore)

		r.Get("/health", health.Health)

		// Storefront, open to everyone.
		r.Get(handler.RouteRoot, storefront.Home)
		r.Get(handler.RoutePets, storefront.Pets)
		r.Get(handler.RoutePets+handler.RouteParamID, storefront.Pet)
		r.Get(handler.RouteShop, storefront.Shop)
		r.Get(handler.RouteShop+handler.RouteParamID, storefront.Product)
		r.Get(handler.RouteGuides, storefront.Guides)
		r.Get(handler.RouteGuides+handler.RouteParamID, storefront.Guide)
		r.Route(handler.RouteCart, func(r chi.Router) {
			r.Get(handler.RouteRoot, carts.View)
			r.Post("/add", carts.Add)
			r.Post("/update", carts.Update)
			r.Post("/remove", carts.Remove)
			r.Post("/clear", carts.Clear)
		})
		r.Get(handler.RouteUnauthorized, auth.Unauthorized)
		r.Get(handler.RouteOAuthCallback, auth.OAuthCallback)

		r.Group(func(r chi.Router) {
			r.Use(middleware.PublicOnly())
			r.Use(authLimiter.Middleware())
			r.Get(handler.RouteLogin, auth.LoginForm)
			r.With(d.LoginProtection.Middleware()).Post(handler.RouteLogin, auth.Login)
			r.Get(handler.RouteRegister, auth.RegisterForm)
			r.Post(handler.RouteRegister, auth.Register)
			r.Get(handler.RouteForgotPassword, auth.ForgotPasswordForm)
			r.Post(handler.RouteForgotPassword, auth.ForgotPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticated())
			r.Post(handler.RouteLogout, auth.Logout)
			r.Post(handler.RoutePets+handler.RouteParamID+"/visit", storefront.RequestVisit)
			r.Get(handler.RouteCheckout, carts.CheckoutForm)
			r.Post(handler.RouteCheckout, carts.Checkout)
			r.Route(handler.RouteAccount, func(r chi.Router) {
				r.Get(handler.RouteRoot, account.Profile)
				r.Post(handler.RouteRoot, account.UpdateProfile)
				r.Get(handler.RouteOrders, account.Orders)
				r.Get(handler.RouteOrders+handler.RouteParamID, account.Order)
			})
		})

		for _, b := range branches {
			shell := render.ShellFor(b.role)
			r.Route(shell.BasePath, func(r chi.Router) {
				r.Use(middleware.RequireRoles(b.role))

				dashboard := handler.NewDashboardHandler(d.Renderer, d.Client, shell)
				r.Get(handler.RouteRoot, dashboard.Dashboard)
				r.Get(handler.RouteDashboard, dashboard.Dashboard)
				for _, mount := range b.mounts {
					mount(r, d, shell)
				}
				r.NotFound(dashboard.NotFound)
			})
		}

		r.NotFound(storefront.NotFound)
	})

	return r, nil
}

func mountPetRoutes(r chi.Router, d Deps, shell render.Shell) {
	h := handler.NewPetsHandler(d.Renderer, d.Client, shell)
	r.Route(handler.RoutePets, func(r chi.Router) {
		r.Get(handler.RouteRoot, h.List)
		r.Post(handler.RouteRoot, h.Create)
		r.Get(handler.RouteSuffixNew, h.New)
		r.Get(handler.RouteEditID, h.Edit)
		r.Post(handler.RouteEditID, h.Update)
		r.Post(handler.RouteDeleteID, h.Delete)
	})
}

func mountProductRoutes(r chi.Router, d Deps, shell render.Shell) {
	h := handler.NewProductsHandler(d.Renderer, d.Client, shell)
	r.Route(handler.RouteProducts, func(r chi.Router) {
		r.Get(handler.RouteRoot, h.List)
		r.Post(handler.RouteRoot, h.Create)
		r.Get(handler.RouteSuffixNew, h.New)
		r.Get(handler.RouteEditID, h.Edit)
		r.Post(handler.RouteEditID, h.Update)
		r.Post(handler.RouteDeleteID, h.Delete)
	})
}

func mountOrderRoutes(r chi.Router, d Deps, shell render.Shell) {
	h := handler.NewOrdersHandler(d.Renderer, d.Client, shell)
	r.Route(handler.RouteOrders, func(r chi.Router) {
		r.Get(handler.RouteRoot, h.List)
		r.Get(handler.RouteParamID, h.Show)
		r.Post(handler.RouteStatusID, h.UpdateStatus)
	})
}

func mountGuideRoutes(r chi.Router, d Deps, shell render.Shell) {
	h := handler.NewGuidesHandler(d.Renderer, d.Client, shell)
	r.Route(handler.RouteGuides, func(r chi.Router) {
		r.Get(handler.RouteRoot, h.List)
		r.Post(handler.RouteRoot, h.Create)
		r.Get(handler.RouteSuffixNew, h.New)
		r.Get(handler.RouteEditID, h.Edit)
		r.Post(handler.RouteEditID, h.Update)
		r.Post(handler.RouteDeleteID, h.Delete)
	})
}

func mountVisitRoutes(r chi.Router, d Deps, shell render.Shell) {
	h := handler.NewVisitsHandler(d.Renderer, d.Client, shell)
	r.Route(handler.RouteVisits, func(r chi.Router) {
		r.Get(handler.RouteRoot, h.List)
		r.Post(handler.RouteStatusID, h.UpdateStatus)
	})
}

func mountUserRoutes(r chi.Router, d Deps, shell render.Shell) {
	h := handler.NewUsersHandler(d.Renderer, d.Client, shell)
	r.Route(handler.RouteUsers, func(r chi.Router) {
		r.Get(handler.RouteRoot, h.List)
		r.Post(handler.RouteRoleID, h.UpdateRole)
	})
}
