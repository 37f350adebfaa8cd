package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	StoreUC         *usecase.StoreUseCase
	LedgerUC        *inventory.LedgerUseCase
	TransferUC      *inventory.TransferUseCase
	StockUC         *inventory.StockQueryUseCase
	ReplenishmentUC *usecase.ReplenishmentUseCase
	UserUC          *usecase.UserUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; escritura restringida a admin y bodeguero)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Stores (protegido)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), storeHandler.Create)
	stores.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), storeHandler.Update)
	stores.Delete("/:id", RequireRole(entity.RoleAdmin), storeHandler.Delete)

	// Movements: ledger append-only con updates/deletes correctivos (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/", movementHandler.Register)
	movements.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), movementHandler.Update)
	movements.Delete("/:id", RequireRole(entity.RoleAdmin), movementHandler.Delete)

	// Stock derivado (protegido, solo lectura)
	stockHandler := NewStockHandler(deps.StockUC)
	protected.Get("/stock", stockHandler.List)

	// Transfers (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/", transferHandler.Create)
	transfers.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), transferHandler.Update)
	transfers.Delete("/:id", RequireRole(entity.RoleAdmin), transferHandler.Delete)

	// Replenishments (protegido; cambio de estado solo admin)
	replenishments := protected.Group("/replenishments")
	replenishmentHandler := NewReplenishmentHandler(deps.ReplenishmentUC)
	replenishments.Get("/", replenishmentHandler.List)
	replenishments.Get("/:id", replenishmentHandler.GetByID)
	replenishments.Post("/", replenishmentHandler.Create)
	replenishments.Put("/:id", replenishmentHandler.Update)
	replenishments.Patch("/:id/status", RequireRole(entity.RoleAdmin), replenishmentHandler.UpdateStatus)
	replenishments.Delete("/:id", RequireRole(entity.RoleAdmin), replenishmentHandler.Delete)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
