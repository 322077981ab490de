package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/openrms/pos-backend-go/internal/handler/http/middleware"
	"github.com/openrms/pos-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	FrontendURL string
	Env         string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	companyHandler CompanyHandler,
	employeeHandler EmployeeHandler,
	payrollHandler PayrollHandler,
	productHandler ProductHandler,
	saleHandler SaleHandler,
	billHandler BillHandler,
	cashflowHandler CashflowHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "openrms-pos"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/companies/my", func(r chi.Router) {
				r.Get("/", companyHandler.GetMy)

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Put("/", companyHandler.UpdateMy)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)

				// Manager or owner
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/timesheets/import", payrollHandler.ImportTimesheet)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/settings", func(r chi.Router) {
					r.Get("/", payrollHandler.GetSettings)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireOwner)
						r.Put("/", payrollHandler.UpdateSettings)
					})
				})

				r.Route("/sheets", func(r chi.Router) {
					r.Get("/", payrollHandler.ListSheets)
					r.Get("/{id}", payrollHandler.GetSheet)
					r.Get("/{id}/export", payrollHandler.ExportSheet)
					r.Get("/{id}/entries/{entryID}/payslip", payrollHandler.RenderPayslip)

					// Manager or owner
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Post("/{id}/finalize", payrollHandler.FinalizeSheet)
						r.Delete("/{id}", payrollHandler.DeleteSheet)
						r.Post("/{id}/entries", payrollHandler.AddEntry)
						r.Patch("/{id}/entries/{entryID}", payrollHandler.UpdateEntry)
						r.Delete("/{id}/entries/{entryID}", payrollHandler.DeleteEntry)
						r.Patch("/{id}/entries/{entryID}/shifts/{shiftID}", payrollHandler.UpdateShift)
						r.Delete("/{id}/entries/{entryID}/shifts/{shiftID}", payrollHandler.DeleteShift)
					})
				})
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", productHandler.List)
				r.Get("/{id}", productHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", productHandler.Create)
					r.Put("/{id}", productHandler.Update)
					r.Delete("/{id}", productHandler.Delete)
				})
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", saleHandler.List)
				r.Get("/revenue", saleHandler.RevenueSummary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/import", saleHandler.Import)
					r.Delete("/{id}", saleHandler.Delete)
				})
			})

			r.Route("/tables", func(r chi.Router) {
				r.Get("/", billHandler.ListTables)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", billHandler.CreateTable)
					r.Delete("/{id}", billHandler.DeleteTable)
				})
			})

			// Staff can run bills; voiding needs a manager.
			r.Route("/bills", func(r chi.Router) {
				r.Get("/", billHandler.ListBills)
				r.Get("/{id}", billHandler.GetBill)
				r.Post("/", billHandler.OpenBill)
				r.Post("/{id}/items", billHandler.AddItem)
				r.Delete("/{id}/items/{itemID}", billHandler.RemoveItem)
				r.Post("/{id}/close", billHandler.CloseBill)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{id}/void", billHandler.VoidBill)
				})
			})

			r.Route("/cashflow", func(r chi.Router) {
				r.Get("/", cashflowHandler.List)
				r.Get("/report", cashflowHandler.Report)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", cashflowHandler.Create)
					r.Delete("/{id}", cashflowHandler.Delete)
				})
			})
		})
	})
	return r
}
