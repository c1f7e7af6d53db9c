package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/toolrent/internal/app"
	"github.com/MrJamesThe3rd/toolrent/internal/auth"
	"github.com/MrJamesThe3rd/toolrent/internal/http/authn"
	"github.com/MrJamesThe3rd/toolrent/internal/http/category"
	"github.com/MrJamesThe3rd/toolrent/internal/http/customer"
	"github.com/MrJamesThe3rd/toolrent/internal/http/export"
	"github.com/MrJamesThe3rd/toolrent/internal/http/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/http/importcsv"
	"github.com/MrJamesThe3rd/toolrent/internal/http/kardex"
	"github.com/MrJamesThe3rd/toolrent/internal/http/loan"
	"github.com/MrJamesThe3rd/toolrent/internal/http/rate"
	"github.com/MrJamesThe3rd/toolrent/internal/http/tool"
)

type Handlers struct {
	Loans      *loan.Handler
	Fines      *fine.Handler
	Tools      *tool.Handler
	Import     *importcsv.Handler
	Kardex     *kardex.Handler
	Customers  *customer.Handler
	Rates      *rate.Handler
	Categories *category.Handler
	Reports    *export.Handler
}

func NewHandlers(s *app.Services) Handlers {
	return Handlers{
		Loans:      loan.NewHandler(s.Loans),
		Fines:      fine.NewHandler(s.Fines, s.Loans),
		Tools:      tool.NewHandler(s.Inventory),
		Import:     importcsv.NewHandler(s.Importer),
		Kardex:     kardex.NewHandler(s.Inventory),
		Customers:  customer.NewHandler(s.Customers, s.Tracker),
		Rates:      rate.NewHandler(s.Rates),
		Categories: category.NewHandler(s.Inventory),
		Reports:    export.NewHandler(s.Reports, s.Loans),
	}
}

// New builds the API router. A nil verifier disables authentication.
func New(v1 Handlers, verifier authn.Verifier, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authn.Authenticate(verifier))

		r.Route("/loans", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Loans.Routes(r)
		})

		r.Route("/fines", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Fines.Routes(r)
		})

		r.Route("/tools", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authn.RequireRole(auth.RoleAdmin))
				v1.Import.Routes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				v1.Tools.Routes(r)
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Customers.Routes(r)
		})

		r.Route("/kardex", v1.Kardex.Routes)
		r.Route("/rates", v1.Rates.Routes)
		r.Route("/categories", v1.Categories.Routes)
		r.Route("/reports", v1.Reports.Routes)
	})

	return router
}
