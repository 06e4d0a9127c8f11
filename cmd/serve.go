package cmd

import (
	"database/sql"
	"fmt"
	"net"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-jobtrack/app/controller"
	"github.com/vibast-solutions/ms-go-jobtrack/app/mailer"
	"github.com/vibast-solutions/ms-go-jobtrack/app/middleware"
	"github.com/vibast-solutions/ms-go-jobtrack/app/repository"
	"github.com/vibast-solutions/ms-go-jobtrack/app/service"
	"github.com/vibast-solutions/ms-go-jobtrack/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	userRepo := repository.NewUserRepository(db)
	verificationRepo := repository.NewVerificationTokenRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	tokenService := service.NewTokenService(cfg)
	verificationService := service.NewVerificationService(verificationRepo, cfg.VerificationTTL)
	authService := service.NewAuthService(userRepo, verificationService, tokenService, mailer.NewSMTPMailer(cfg.SMTP))
	companyService := service.NewCompanyService(companyRepo)
	applicationService := service.NewApplicationService(applicationRepo)

	startHTTPServer(cfg, authService, tokenService, companyService, applicationService)
}

func startHTTPServer(
	cfg *config.Config,
	authService *service.AuthService,
	tokenService *service.TokenService,
	companyService *service.CompanyService,
	applicationService *service.ApplicationService,
) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			entry := logrus.WithFields(logrus.Fields{
				"remote_ip": v.RemoteIP,
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency.String(),
			})
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	authController := controller.NewAuthController(authService)
	companyController := controller.NewCompanyController(companyService)
	applicationController := controller.NewApplicationController(applicationService)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	e.POST("/login/", authController.Login)
	e.POST("/register/", authController.Register)
	e.GET("/send_verification_email/", authController.SendVerificationEmail)
	e.POST("/send_verification_email/", authController.SendVerificationEmail)
	e.POST("/login_with_token/", authController.LoginWithToken)
	e.POST("/token/refresh/", authController.RefreshToken)
	e.POST("/token/verify/", authController.VerifyToken)
	e.GET("/selfinfo/", authController.SelfInfo, authMiddleware.RequireAuth)

	api := e.Group("/api/v1", authMiddleware.Resolve)
	api.GET("/companies/", companyController.List)
	api.POST("/companies/create/", companyController.Create)
	api.PUT("/companies/:id/update/", companyController.Update)
	api.DELETE("/companies/:id/delete/", companyController.Delete)
	api.GET("/companies/options/", companyController.Options)

	api.GET("/applications/", applicationController.List)
	api.POST("/applications/create/", applicationController.Create)
	api.PUT("/applications/:id/update/", applicationController.Update)
	api.DELETE("/applications/:id/delete/", applicationController.Delete)

	api.GET("/dashboard/stats/", applicationController.DashboardStats)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logrus.SetLevel(level)

	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
