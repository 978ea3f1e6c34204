package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/vespaiach/ledger-api/internal/app"
	"github.com/vespaiach/ledger-api/internal/config"
	"github.com/vespaiach/ledger-api/internal/controllers"
	"github.com/vespaiach/ledger-api/internal/middleware"
	"github.com/vespaiach/ledger-api/internal/repositories"
	"github.com/vespaiach/ledger-api/internal/services"
	"github.com/vespaiach/ledger-api/internal/utils"
)

func main() {
	utils.InitLogger("ledger-api")
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	signinKeyRepo := repositories.NewSigninKeyRepository(application.DB)
	revokedTokenRepo := repositories.NewRevokedTokenRepository(application.DB)
	rateLimitRepo := repositories.NewRateLimitRepository(application.DB)
	reasonRepo := repositories.NewReasonRepository(application.DB)
	transactionRepo := repositories.NewTransactionRepository(application.DB)

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, cfg)
	tokenService := services.NewTokenService(cfg)
	mailer := services.NewSendgridMailer(cfg)

	signinService := services.NewSigninService(
		signinKeyRepo,
		revokedTokenRepo,
		rateLimiterService,
		tokenService,
		mailer,
		cfg,
	)

	reasonService := services.NewReasonService(reasonRepo, transactionRepo)
	transactionService := services.NewTransactionService(transactionRepo, reasonService)

	cleanupService := services.NewCleanupService(
		signinKeyRepo,
		revokedTokenRepo,
		rateLimitRepo,
		cfg,
	)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	authController := controllers.NewAuthController(signinService)
	transactionController := controllers.NewTransactionController(transactionService)
	reasonController := controllers.NewReasonController(reasonService)
	healthController := controllers.NewHealthController(application)

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()

	// Every matched request gets an auth context; the middleware never
	// rejects on its own.
	router.Use(middleware.Authenticator(tokenService, revokedTokenRepo))

	// Health
	router.HandleFunc("/health", healthController.HealthCheckHandler).Methods("GET")

	// /auth/v1
	authRouter := router.PathPrefix("/auth").Subrouter()
	authV1 := authRouter.PathPrefix("/v1").Subrouter()

	authV1.HandleFunc("/signin", authController.Signin).Methods("POST")
	authV1.HandleFunc("/token", authController.Token).Methods("POST")

	authProtected := authV1.NewRoute().Subrouter()
	authProtected.Use(middleware.RequireAuth)
	authProtected.HandleFunc("/signout", authController.Signout).Methods("POST")

	// /ledger/v1: everything here requires a signed-in caller
	ledgerRouter := router.PathPrefix("/ledger").Subrouter()
	ledgerV1 := ledgerRouter.PathPrefix("/v1").Subrouter()
	ledgerV1.Use(middleware.RequireAuth)

	ledgerV1.HandleFunc("/transactions", transactionController.List).Methods("GET")
	ledgerV1.HandleFunc("/transactions", transactionController.Create).Methods("POST")
	ledgerV1.HandleFunc("/transactions/{id}", transactionController.Get).Methods("GET")
	ledgerV1.HandleFunc("/transactions/{id}", transactionController.Update).Methods("PUT")
	ledgerV1.HandleFunc("/transactions/{id}", transactionController.Delete).Methods("DELETE")

	ledgerV1.HandleFunc("/reasons", reasonController.List).Methods("GET")
	ledgerV1.HandleFunc("/reasons", reasonController.Create).Methods("POST")
	ledgerV1.HandleFunc("/reasons/{id}", reasonController.Update).Methods("PUT")
	ledgerV1.HandleFunc("/reasons/{id}", reasonController.Delete).Methods("DELETE")

	//----------------------------------------------------------------------
	// Setup daily cleanup via cron
	//----------------------------------------------------------------------
	c := cron.New()

	_, schErr := c.AddFunc("0 3 * * *", func() {
		if e := cleanupService.CleanupDaily(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled cleanup failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule cleanup job")
	}

	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := co.Handler(router)
	addr := ":" + cfg.AppPort

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		utils.Logger.Infof("Starting %s with TLS on port: %s", cfg.AppName, cfg.AppPort)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, handler)
	} else {
		utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
		err = http.ListenAndServe(addr, handler)
	}
	if err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
