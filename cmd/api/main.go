package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/openrms/pos-backend-go/internal/config"
	appHTTP "github.com/openrms/pos-backend-go/internal/handler/http"
	"github.com/openrms/pos-backend-go/internal/pkg/cron"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
	"github.com/openrms/pos-backend-go/internal/pkg/jwt"
	"github.com/openrms/pos-backend-go/internal/pkg/oauth"
	"github.com/openrms/pos-backend-go/internal/pkg/storage"
	"github.com/openrms/pos-backend-go/internal/repository/postgresql"
	authService "github.com/openrms/pos-backend-go/internal/service/auth"
	billService "github.com/openrms/pos-backend-go/internal/service/bill"
	cashflowService "github.com/openrms/pos-backend-go/internal/service/cashflow"
	companyService "github.com/openrms/pos-backend-go/internal/service/company"
	employeeService "github.com/openrms/pos-backend-go/internal/service/employee"
	payrollService "github.com/openrms/pos-backend-go/internal/service/payroll"
	productService "github.com/openrms/pos-backend-go/internal/service/product"
	saleService "github.com/openrms/pos-backend-go/internal/service/sale"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	productRepo := postgresql.NewProductRepository(db)
	saleRepo := postgresql.NewSaleRepository(db)
	tableRepo := postgresql.NewTableRepository(db)
	billRepo := postgresql.NewBillRepository(db)
	cashflowRepo := postgresql.NewCashflowRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	authSvc := authService.NewAuthService(db, userRepo, companyRepo, jwtService, jwtRepo, googleService)
	companySvc := companyService.NewCompanyService(db, companyRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, companyRepo, fileStorage)
	productSvc := productService.NewProductService(db, productRepo)
	saleSvc := saleService.NewSaleService(saleRepo, productRepo, fileStorage)
	billSvc := billService.NewBillService(tableRepo, billRepo, productRepo)
	cashflowSvc := cashflowService.NewCashflowService(cashflowRepo, saleRepo, payrollRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, cfg.App.FrontendURL)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	productHandler := appHTTP.NewProductHandler(productSvc)
	saleHandler := appHTTP.NewSaleHandler(saleSvc)
	billHandler := appHTTP.NewBillHandler(billSvc)
	cashflowHandler := appHTTP.NewCashflowHandler(cashflowSvc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("sales-rollup", 24*time.Hour, cashflowSvc.RollupSales)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
		},
		jwtService,
		authHandler,
		companyHandler,
		employeeHandler,
		payrollHandler,
		productHandler,
		saleHandler,
		billHandler,
		cashflowHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
