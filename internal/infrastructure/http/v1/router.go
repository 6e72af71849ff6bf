// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"treefnio/internal/domain/audit"
	"treefnio/internal/domain/auth"
	"treefnio/internal/domain/catalogs/department"
	"treefnio/internal/domain/catalogs/material"
	"treefnio/internal/domain/catalogs/product"
	"treefnio/internal/domain/catalogs/segment"
	"treefnio/internal/domain/catalogs/unit"
	"treefnio/internal/domain/costing"
	"treefnio/internal/domain/documents"
	"treefnio/internal/domain/documents/material_receipt"
	"treefnio/internal/domain/documents/sale_batch"
	"treefnio/internal/domain/imports"
	"treefnio/internal/domain/posting"
	"treefnio/internal/domain/recipes"
	"treefnio/internal/domain/registers/stock"
	"treefnio/internal/domain/reports"
	"treefnio/internal/domain/settings"
	"treefnio/internal/infrastructure/http/v1/handlers"
	"treefnio/internal/infrastructure/http/v1/middleware"
	"treefnio/internal/infrastructure/storage/postgres"
	"treefnio/internal/infrastructure/storage/postgres/catalog_repo"
	"treefnio/internal/infrastructure/storage/postgres/document_repo"
	"treefnio/internal/infrastructure/storage/postgres/register_repo"
	"treefnio/internal/infrastructure/storage/postgres/report_repo"
	"treefnio/internal/infrastructure/storage/postgres/settings_repo"
	"treefnio/pkg/logger"
	"treefnio/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (health checks, idempotency)
	Pool *postgres.Pool

	// TxManager runs repository operations in transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for document/catalog code generation
	Numerator *numerator.Service

	// Broadcaster distributes settings change events across instances.
	// Nil still works: watch delivers events from this instance only.
	Broadcaster settings.Broadcaster

	// IdempotencyEnabled enables idempotency middleware
	IdempotencyEnabled bool

	// IdempotencyTTL bounds how long completed responses are replayed
	IdempotencyTTL time.Duration
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		if cfg.IdempotencyEnabled {
			ttl := cfg.IdempotencyTTL
			if ttl == 0 {
				ttl = 10 * time.Minute
			}
			store := postgres.NewIdempotencyStore(cfg.Pool, cfg.TxManager, ttl)
			protected.Use(middleware.Idempotency(store))
		}

		// Shared domain wiring: catalogs feed documents, documents feed
		// registers and reports
		deps := buildDomainServices(cfg)

		registerCatalogRoutes(protected, deps)
		registerRecipeRoutes(protected, deps)
		registerDocumentRoutes(protected, deps)
		registerRegisterRoutes(protected, deps)
		registerReportRoutes(protected, deps)
		registerImportRoutes(protected, deps)
		registerSettingsRoutes(protected, deps)
	}

	return router
}

// domainServices bundles the services shared across route groups.
type domainServices struct {
	departments *department.Service
	segments    *segment.Service
	units       *unit.Service
	materials   *material.Service
	products    *product.Service
	recipes     *recipes.Service
	costing     *costing.Service
	stock       *stock.Service
	saleBatches *sale_batch.Service
	receipts    *material_receipt.Service
	reports     *reports.Service
	imports     *imports.Service
	settings    *settings.Service
}

// buildDomainServices wires repositories and services once at startup.
func buildDomainServices(cfg RouterConfig) *domainServices {
	txm := cfg.TxManager

	departmentRepo := catalog_repo.NewDepartmentRepo(txm)
	segmentRepo := catalog_repo.NewSegmentRepo(txm)
	unitRepo := catalog_repo.NewUnitRepo(txm)
	materialRepo := catalog_repo.NewMaterialRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)
	recipeRepo := catalog_repo.NewRecipeRepo(txm)

	costingSvc := costing.NewService(productRepo, recipeRepo, materialRepo)
	resolver := documents.NewProductRefResolver(productRepo, departmentRepo, segmentRepo, costingSvc)

	stockRepo := register_repo.NewStockRepo(txm)
	stockSvc := stock.NewService(stockRepo)

	// Audit trail is best-effort at startup: posting works without it.
	var auditLog audit.Logger
	if auditSvc, err := postgres.NewAuditService(txm); err == nil {
		auditLog = auditSvc
	}
	postingEngine := posting.NewEngine(txm, stockSvc, auditLog)

	saleBatchRepo := document_repo.NewSaleBatchRepo(txm)
	saleBatchSvc := sale_batch.NewService(saleBatchRepo, resolver, resolver, postingEngine, cfg.Numerator, txm)

	receiptRepo := document_repo.NewMaterialReceiptRepo(txm)
	receiptSvc := material_receipt.NewService(receiptRepo, postingEngine, cfg.Numerator, txm)

	reportRepo := report_repo.NewReportRepo(txm)
	reportSvc := reports.NewService(reportRepo, reports.NewEngine(nil))

	settingsRepo := settings_repo.NewSettingsRepo(txm)
	settingsSvc := settings.NewService(settingsRepo, cfg.Broadcaster)

	return &domainServices{
		departments: department.NewService(departmentRepo, txm, cfg.Numerator),
		segments:    segment.NewService(segmentRepo, txm, cfg.Numerator),
		units:       unit.NewService(unitRepo, txm, cfg.Numerator),
		materials:   material.NewService(materialRepo, txm, cfg.Numerator),
		products:    product.NewService(productRepo, txm, cfg.Numerator),
		recipes:     recipes.NewService(recipeRepo, txm, cfg.Numerator),
		costing:     costingSvc,
		stock:       stockSvc,
		saleBatches: saleBatchSvc,
		receipts:    receiptSvc,
		reports:     reportSvc,
		imports:     imports.NewService(productRepo, saleBatchSvc),
		settings:    settingsSvc,
	}
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required)
	publicAuth := rg.Group("/auth")

	// Protected auth endpoints (JWT required)
	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, deps *domainServices) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- DEPARTMENTS ---
	{
		handler := handlers.NewDepartmentHandler(baseHandler, deps.departments)
		RegisterCatalogRoutes(catalogs.Group("/departments"), handler, "catalog:department")
	}

	// --- PRODUCTION SEGMENTS ---
	{
		handler := handlers.NewSegmentHandler(baseHandler, deps.segments)
		RegisterCatalogRoutes(catalogs.Group("/segments"), handler, "catalog:segment")
	}

	// --- UNITS ---
	{
		handler := handlers.NewUnitHandler(baseHandler, deps.units)
		RegisterCatalogRoutes(catalogs.Group("/units"), handler, "catalog:unit")
	}

	// --- MATERIALS ---
	{
		handler := handlers.NewMaterialHandler(baseHandler, deps.materials)
		group := catalogs.Group("/materials")
		group.GET("/low-stock", middleware.RequirePermission("catalog:material:read"), handler.LowStock)
		group.PUT("/:id/price", middleware.RequirePermission("catalog:material:update"), handler.UpdatePrice)
		RegisterCatalogRoutes(group, handler, "catalog:material")
	}

	// --- PRODUCTS ---
	{
		handler := handlers.NewProductHandler(baseHandler, deps.products)
		group := catalogs.Group("/products")
		group.GET("/by-department/:departmentId", middleware.RequirePermission("catalog:product:read"), handler.ListByDepartment)
		group.PUT("/:id/active-recipe", middleware.RequirePermission("catalog:product:update"), handler.SetActiveRecipe)
		group.DELETE("/:id/active-recipe", middleware.RequirePermission("catalog:product:update"), handler.ClearActiveRecipe)
		RegisterCatalogRoutes(group, handler, "catalog:product")
	}
}

// registerRecipeRoutes registers recipe endpoints.
func registerRecipeRoutes(rg *gin.RouterGroup, deps *domainServices) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewRecipeHandler(baseHandler, deps.recipes)

	group := rg.Group("/recipes")
	group.Use(middleware.RequirePermission("catalog:recipe:read"))
	handler.RegisterRoutes(group)
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, deps *domainServices) {
	docsGroup := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	// --- SALE BATCHES ---
	{
		handler := handlers.NewSaleBatchHandler(baseHandler, deps.saleBatches)
		RegisterPostableDocumentRoutes(docsGroup.Group("/sale-batches"), handler, "document:sale_batch")
	}

	// --- MATERIAL RECEIPTS ---
	{
		handler := handlers.NewMaterialReceiptHandler(baseHandler, deps.receipts)
		RegisterPostableDocumentRoutes(docsGroup.Group("/material-receipts"), handler, "document:material_receipt")
	}
}

// registerRegisterRoutes registers accumulation register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, deps *domainServices) {
	registers := rg.Group("/registers")
	baseHandler := handlers.NewBaseHandler()

	stockHandler := handlers.NewStockHandler(baseHandler, deps.stock)
	stockGroup := registers.Group("/stock")
	stockGroup.Use(middleware.RequirePermission("register:stock:read"))
	stockHandler.RegisterRoutes(stockGroup)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, deps *domainServices) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewReportsHandler(baseHandler, deps.reports)

	group := rg.Group("/reports")
	group.Use(middleware.RequirePermission("report:sales:read"))
	handler.RegisterRoutes(group)
}

// registerImportRoutes registers sales file import endpoints.
func registerImportRoutes(rg *gin.RouterGroup, deps *domainServices) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewImportsHandler(baseHandler, deps.imports)

	group := rg.Group("/imports")
	group.Use(middleware.RequirePermission("import:sales"))
	handler.RegisterRoutes(group)
}

// registerSettingsRoutes registers settings endpoints.
func registerSettingsRoutes(rg *gin.RouterGroup, deps *domainServices) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewSettingsHandler(baseHandler, deps.settings)

	group := rg.Group("/settings")
	group.Use(middleware.RequirePermission("settings:manage"))
	handler.RegisterRoutes(group)
}
