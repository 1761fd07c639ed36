package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/audit"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/config"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/handlers"
	infraRepo "github.com/VidaFitCoaching01/coach-backoffice/internal/infra/repository"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/llm"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/mailer"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/middleware"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/payments"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/ratelimit"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/storage"
	ucIntake "github.com/VidaFitCoaching01/coach-backoffice/internal/usecase/intake"
	ucInvoice "github.com/VidaFitCoaching01/coach-backoffice/internal/usecase/invoice"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	invoiceRepo := infraRepo.NewInvoiceGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	limiter := newLimiter(cfg)

	mailClient := mailer.New(cfg)
	llmClient := llm.New(cfg)

	// interface nil de verdad cuando no hay credenciales: los handlers
	// comprueban `!= nil` y un puntero nil envuelto la rompería
	var store handlers.ObjectStore
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		store = storage.New(cfg)
	} else {
		logrus.Warn("object storage sin credenciales; subidas deshabilitadas")
	}

	var paymentLinker ucInvoice.PaymentLinker
	if cfg.MPAccessToken != "" {
		mp, err := payments.New(cfg)
		if err != nil {
			logrus.WithError(err).Warn("mercado pago no disponible; facturas sin link de pago")
		} else {
			paymentLinker = mp
		}
	}

	// ======================================================
	// 🧠 USE CASES — LEDGER
	// ======================================================
	ensureMonthUC := ucInvoice.NewEnsureMonth(
		invoiceRepo,
		auditDispatcher,
		paymentLinker,
	)

	toggleStatusUC := ucInvoice.NewToggleStatus(
		invoiceRepo,
		auditDispatcher,
	)

	listYearUC := ucInvoice.NewListYear(invoiceRepo)

	dashboardUC := ucInvoice.NewDashboard(invoiceRepo)

	// ======================================================
	// 🧠 USE CASES — INTAKE / FUNNEL
	// ======================================================
	submitUC := ucIntake.NewSubmit(mailClient, clientRepo, auditDispatcher)

	planUC := ucIntake.NewPlan(mailClient, clientRepo, llmClient, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	publicHandler := handlers.NewPublicHandler(cfg, mailClient, submitUC, planUC)

	clientHandler := handlers.NewClientHandler(db, store, auditDispatcher)
	paymentsHandler := handlers.NewPaymentsHandler(ensureMonthUC, toggleStatusUC, listYearUC)
	invoiceHandler := handlers.NewInvoiceHandler(db, auditDispatcher)
	fileHandler := handlers.NewFileHandler(db, store, auditDispatcher)

	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	searchHandler := handlers.NewSearchHandler(db)
	activityLogHandler := handlers.NewActivityLogHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (rate limit por IP)
		// ------------------------------
		public := api.Group("/")
		public.Use(middleware.PublicRateLimit(limiter))
		{
			public.POST("/contact", publicHandler.Contact)
			public.POST("/intake-form", publicHandler.IntakeForm)
			public.POST("/generate-plan", publicHandler.GeneratePlan)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 BACK OFFICE (JWT + rol admin + rate limit por usuario)
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(db, cfg))
		admin.Use(middleware.RequireAdmin(db, limiter))
		{
			admin.GET("/me", authHandler.Me)

			admin.GET("/clients", clientHandler.List)
			admin.POST("/clients", clientHandler.Create)
			admin.GET("/clients/:id", clientHandler.Get)
			admin.PATCH("/clients/:id", clientHandler.Update)
			admin.DELETE("/clients/:id", clientHandler.Delete)

			// ------------------------------
			// LEDGER MENSAL
			// ------------------------------
			admin.GET("/clients/:id/payments", paymentsHandler.ListYear)
			admin.POST("/clients/:id/payments", paymentsHandler.Act)

			admin.GET("/invoices", invoiceHandler.List)
			admin.POST("/invoices", invoiceHandler.Create)
			admin.PATCH("/invoices/:id", invoiceHandler.Update)
			admin.DELETE("/invoices/:id", invoiceHandler.Delete)

			admin.GET("/files", fileHandler.List)
			admin.POST("/files", fileHandler.Upload)
			admin.GET("/files/:id/url", fileHandler.SignedURL)

			admin.GET("/dashboard", dashboardHandler.Get)
			admin.GET("/search", searchHandler.Search)
			admin.GET("/activity-logs", activityLogHandler.List)
		}

		// el logout solo necesita el JWT: un no-admin también cierra sesión
		authed := api.Group("/auth")
		authed.Use(middleware.AuthMiddleware(db, cfg))
		{
			authed.POST("/logout", authHandler.Logout)
		}
	}
}

// newLimiter elige el store: Redis cuando está configurado (contador
// compartido entre instancias), memoria en caso contrario.
func newLimiter(cfg *config.Config) *ratelimit.Limiter {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Warn("REDIS_URL inválida; rate limit en memoria")
		} else {
			return ratelimit.New(ratelimit.NewRedisStore(redis.NewClient(opts)))
		}
	}
	return ratelimit.New(ratelimit.NewMemoryStore())
}
