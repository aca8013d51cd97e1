package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/auth"
	"github.com/BruksfildServices01/barbershop-manager/internal/cache"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/storage"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
	ucCut "github.com/BruksfildServices01/barbershop-manager/internal/usecase/cut"
	"github.com/BruksfildServices01/barbershop-manager/internal/web"
)

type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Tokens  *auth.TokenService
	Revoker auth.Revoker
	Store   storage.Store
	Audit   *audit.Dispatcher

	// nil sem Redis
	Redis cache.Cmdable
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLogger(),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	cutRepo := infraRepo.NewCutGormRepository(d.DB)
	files := ucCut.NewFileRemover(d.Store)

	// ======================================================
	// 🧠 USE CASES — CUTS
	// ======================================================
	createCutUC := ucCut.NewCreateCut(cutRepo, d.Audit)
	listCutsUC := ucCut.NewListCuts(cutRepo)
	getCutUC := ucCut.NewGetCut(cutRepo)
	updateCutUC := ucCut.NewUpdateCut(cutRepo, d.Audit)
	deleteCutUC := ucCut.NewDeleteCut(cutRepo, files, d.Audit)
	addPhotoUC := ucCut.NewAddPhoto(cutRepo, d.Store, files, d.Audit)
	deletePhotoUC := ucCut.NewDeletePhoto(cutRepo, files, d.Audit)

	deleteClientUC := ucCut.NewDeleteClient(cutRepo, files, d.Audit)
	deleteBarberUC := ucCut.NewDeleteBarber(cutRepo, files, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB, d.Redis)
	authHandler := handlers.NewAuthHandler(d.DB, d.Tokens, d.Revoker)
	meHandler := handlers.NewMeHandler(d.DB)
	userHandler := handlers.NewUserHandler(d.DB, d.Audit)
	clientHandler := handlers.NewClientHandler(d.DB, deleteClientUC, d.Audit)
	barberHandler := handlers.NewBarberHandler(d.DB, deleteBarberUC, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, timezone.Location(d.Config.Timezone))

	cutHandler := handlers.NewCutHandler(
		createCutUC,
		listCutsUC,
		getCutUC,
		updateCutUC,
		deleteCutUC,
		addPhotoUC,
		deletePhotoUC,
		d.Config.MaxUploadBytes(),
	)

	// ======================================================
	// 📦 ARQUIVOS + MÉTRICAS
	// ======================================================
	if local, ok := d.Store.(*storage.LocalStore); ok {
		r.Static(local.URLPrefix(), local.Dir())
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/health", healthHandler.Liveness)
		api.GET("/health/ready", healthHandler.Readiness)
		api.POST("/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (admin)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens, d.Revoker))
		{
			secured.POST("/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/users", userHandler.List)
			secured.POST("/users", userHandler.Create)
			secured.GET("/users/:id", userHandler.Get)
			secured.PUT("/users/:id", userHandler.Update)
			secured.DELETE("/users/:id", userHandler.Delete)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.GET("/barbers", barberHandler.List)
			secured.POST("/barbers", barberHandler.Create)
			secured.GET("/barbers/:id", barberHandler.Get)
			secured.PUT("/barbers/:id", barberHandler.Update)
			secured.DELETE("/barbers/:id", barberHandler.Delete)

			// ------------------------------
			// CUTS + FOTOS
			// ------------------------------
			secured.GET("/cuts", cutHandler.List)
			secured.POST("/cuts", cutHandler.Create)
			secured.GET("/cuts/:id", cutHandler.Get)
			secured.PUT("/cuts/:id", cutHandler.Update)
			secured.DELETE("/cuts/:id", cutHandler.Delete)
			secured.POST("/cuts/:id/photo", cutHandler.UploadPhoto)
			secured.DELETE("/cuts/:id/photos/:photoId", cutHandler.DeletePhoto)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	// ======================================================
	// 🌍 FRONTEND (SPA)
	// ======================================================
	web.RegisterSPA(r, d.Config.FrontendDir)
}
