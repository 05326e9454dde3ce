package router

import (
	"time"

	"github.com/youssef7511/AVCNA/internal/config"
	"github.com/youssef7511/AVCNA/internal/excel"
	"github.com/youssef7511/AVCNA/internal/handler"
	"github.com/youssef7511/AVCNA/internal/middleware"
	"github.com/youssef7511/AVCNA/internal/model"
	"github.com/youssef7511/AVCNA/internal/repository"
	"github.com/youssef7511/AVCNA/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	medicationRepo := repository.NewMedicationRepository(db)
	dciRepo := repository.New[model.Dci](db)
	familyRepo := repository.New[model.Family](db)
	laboRepo := repository.New[model.Labo](db)
	formeRepo := repository.New[model.Forme](db)
	voieRepo := repository.New[model.Voie](db)
	stockRepo := repository.NewStockRepository(db)
	interactionRepo := repository.New[model.Interaction](db)

	// ── Services ─────────────────────────────────────────────────────────────
	syncSvc := service.NewSyncService(medicationRepo, dciRepo, familyRepo, laboRepo, formeRepo, voieRepo)
	medicationSvc := service.NewMedicationService(medicationRepo, syncSvc, rdb)
	stockSvc := service.NewStockService(stockRepo, medicationRepo, cfg.ExpiryAlertDays)
	interactionSvc := service.NewInteractionService(interactionRepo)
	reportSvc := service.NewReportService(medicationRepo, stockRepo, interactionSvc, cfg.PDFStoragePath)

	dciSvc := service.NewLookupService[model.Dci](dciRepo, service.FanOutFuncs{
		Rename: syncSvc.RenameDciInMedications,
		Clear:  syncSvc.ClearDciFromMedications,
		Count:  syncSvc.CountMedicationsUsingDci,
	}, "dci", service.ApplyDci)
	familySvc := service.NewLookupService[model.Family](familyRepo, service.FanOutFuncs{
		Rename: syncSvc.RenameFamilyInMedications,
		Clear:  syncSvc.ClearFamilyFromMedications,
		Count:  syncSvc.CountMedicationsUsingFamily,
	}, "family", service.ApplyFamily)
	laboSvc := service.NewLookupService[model.Labo](laboRepo, service.FanOutFuncs{
		Rename: syncSvc.RenameLaboInMedications,
		Clear:  syncSvc.ClearLaboFromMedications,
		Count:  syncSvc.CountMedicationsUsingLabo,
	}, "labo", service.ApplyLabo)
	formeSvc := service.NewLookupService[model.Forme](formeRepo, service.FanOutFuncs{
		Rename: syncSvc.RenameFormeInMedications,
		Clear:  syncSvc.ClearFormeFromMedications,
		Count:  syncSvc.CountMedicationsUsingForme,
	}, "forme", service.ApplyForme)
	voieSvc := service.NewLookupService[model.Voie](voieRepo, service.FanOutFuncs{
		Rename: syncSvc.RenameVoieInMedications,
		Clear:  syncSvc.ClearVoieFromMedications,
		Count:  syncSvc.CountMedicationsUsingVoie,
	}, "voie", service.ApplyVoie)

	dciImport := service.NewStrictSyncService[model.Dci](dciRepo, excel.DciCodec(), "dci")
	familyImport := service.NewStrictSyncService[model.Family](familyRepo, excel.FamilyCodec(), "family")
	laboImport := service.NewStrictSyncService[model.Labo](laboRepo, excel.LaboCodec(), "labos")
	formeImport := service.NewStrictSyncService[model.Forme](formeRepo, excel.FormeCodec(), "formes")
	voieImport := service.NewStrictSyncService[model.Voie](voieRepo, excel.VoieCodec(), "voie")

	// ── Handlers ─────────────────────────────────────────────────────────────
	medicationsH := handler.NewMedicationsHandler(medicationSvc, interactionSvc)
	stockH := handler.NewStockHandler(stockSvc)
	interactionsH := handler.NewInteractionsHandler(interactionSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	medicationExportH := handler.NewMedicationExportHandler(medicationRepo, cfg.ImportTmpPath)

	dciH := handler.NewLookupHandler(dciSvc)
	familyH := handler.NewLookupHandler(familySvc)
	laboH := handler.NewLookupHandler(laboSvc)
	formeH := handler.NewLookupHandler(formeSvc)
	voieH := handler.NewLookupHandler(voieSvc)

	dciImpH := handler.NewImportHandler(dciImport, "dci", cfg.ImportTmpPath)
	familyImpH := handler.NewImportHandler(familyImport, "familles", cfg.ImportTmpPath)
	laboImpH := handler.NewImportHandler(laboImport, "labos", cfg.ImportTmpPath)
	formeImpH := handler.NewImportHandler(formeImport, "formes", cfg.ImportTmpPath)
	voieImpH := handler.NewImportHandler(voieImport, "voies", cfg.ImportTmpPath)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))
	r.GET("/health/diagnostics", handler.Diagnostics(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		meds := v1.Group("/medications")
		{
			meds.GET("", medicationsH.List)
			meds.POST("", medicationsH.Create)
			meds.GET("/barcode/:barcode", medicationsH.GetByBarcode)
			meds.GET("/:id", medicationsH.Get)
			meds.PUT("/:id", medicationsH.Update)
			meds.DELETE("/:id", medicationsH.Deactivate)
			meds.GET("/:id/interactions", medicationsH.Interactions)
			meds.GET("/:id/stock", stockH.ForMedication)
			meds.PUT("/:id/thresholds", stockH.SetThresholds)
		}

		registerLookup(v1.Group("/dcis"), dciH)
		registerLookup(v1.Group("/families"), familyH)
		registerLookup(v1.Group("/labos"), laboH)
		registerLookup(v1.Group("/formes"), formeH)
		registerLookup(v1.Group("/voies"), voieH)

		imp := v1.Group("/import")
		{
			registerImport(imp, "dcis", dciImpH)
			registerImport(imp, "families", familyImpH)
			registerImport(imp, "labos", laboImpH)
			registerImport(imp, "formes", formeImpH)
			registerImport(imp, "voies", voieImpH)
		}

		exp := v1.Group("/export")
		{
			exp.GET("/medications", medicationExportH.Export)
			exp.GET("/dcis", dciImpH.Export)
			exp.GET("/families", familyImpH.Export)
			exp.GET("/labos", laboImpH.Export)
			exp.GET("/formes", formeImpH.Export)
			exp.GET("/voies", voieImpH.Export)
		}

		stock := v1.Group("/stock")
		{
			stock.GET("", stockH.List)
			stock.POST("", stockH.Add)
			stock.POST("/remove", stockH.Remove)
			stock.GET("/alerts", stockH.Alerts)
			stock.GET("/valuation", stockH.Valuation)
		}

		interactions := v1.Group("/interactions")
		{
			interactions.GET("", interactionsH.List)
			interactions.POST("", interactionsH.Create)
			interactions.POST("/check", interactionsH.Check)
			interactions.GET("/:id", interactionsH.Get)
			interactions.PUT("/:id", interactionsH.Update)
			interactions.DELETE("/:id", interactionsH.Delete)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/medications/:id", reportsH.MedicationFiche)
			reports.GET("/stock", reportsH.Stock)
			reports.POST("/interactions", reportsH.Interactions)
		}
	}

	// Swagger UI is only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

func registerLookup[T any, PT service.LookupEntity[T]](g *gin.RouterGroup, h *handler.LookupHandler[T, PT]) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/usage", h.Usage)
}

func registerImport[T any, PT service.Importable[T]](g *gin.RouterGroup, name string, h *handler.ImportHandler[T, PT]) {
	g.POST("/"+name, h.Import)
	g.POST("/"+name+"/validate", h.Validate)
	g.GET("/"+name+"/template", h.Template)
}
