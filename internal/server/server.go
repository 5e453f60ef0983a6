package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	log    *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, log *zap.Logger, blocklist *service.Blocklist) *Server {
	userRepo := repository.NewUserRepository(db, log)
	storeRepo := repository.NewStoreRepository(db, log)
	itemRepo := repository.NewItemRepository(db, log)

	return &Server{
		router: NewRouter(cfg, log, blocklist, userRepo, storeRepo, itemRepo),
		log:    log,
	}
}

// NewRouter wires the full route table over the given repositories. Split
// from NewServer so the routes can run against any store implementation.
func NewRouter(cfg *config.Config, log *zap.Logger, blocklist *service.Blocklist,
	userRepo repository.UserRepository, storeRepo repository.StoreRepository, itemRepo repository.ItemRepository) *gin.Engine {

	router := gin.Default()

	tokens := service.NewTokenService([]byte(cfg.Auth.Secret), cfg.AccessTTL(), cfg.RefreshTTL(), log)
	authService := service.NewAuthService(userRepo, tokens, blocklist, log)
	userService := service.NewUserService(userRepo, log)
	storeService := service.NewStoreService(storeRepo, itemRepo, log)
	itemService := service.NewItemService(itemRepo, log)

	authHandler := handler.NewAuthHandler(authService, log)
	userHandler := handler.NewUserHandler(userService, log)
	storeHandler := handler.NewStoreHandler(storeService, log)
	itemHandler := handler.NewItemHandler(itemService, log)

	guard := func(policy middleware.Policy) gin.HandlerFunc {
		return middleware.Guard(policy, tokens, blocklist, log)
	}

	// Health route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	// Authentication routes
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/refresh", guard(middleware.AuthRefresh), authHandler.Refresh)
	router.POST("/logout", guard(middleware.AuthRequired), authHandler.Logout)

	// User routes. Lookup protection is a deployment choice.
	userLookupPolicy := middleware.AuthNone
	if cfg.Auth.ProtectUserLookup {
		userLookupPolicy = middleware.AuthRequired
	}
	router.GET("/user/:id", guard(userLookupPolicy), userHandler.Get)
	router.PUT("/user/:id", userHandler.Put)
	router.DELETE("/user/:id", guard(middleware.AuthFresh), userHandler.Delete)
	router.GET("/users", userHandler.List)

	// Store routes
	router.GET("/store/:name", guard(middleware.AuthRequired), storeHandler.Get)
	router.POST("/store/:name", storeHandler.Create)
	router.PUT("/store/:name", storeHandler.Put)
	router.DELETE("/store/:name", storeHandler.Delete)
	router.GET("/stores", storeHandler.List)

	// Item routes
	router.GET("/item/:name", guard(middleware.AuthRequired), itemHandler.Get)
	router.POST("/item/:name", itemHandler.Create)
	router.PUT("/item/:name", itemHandler.Put)
	router.DELETE("/item/:name", guard(middleware.AuthAdmin), itemHandler.Delete)
	router.GET("/items", guard(middleware.AuthOptional), itemHandler.List)

	return router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	s.log.Info("Server starting", zap.String("port", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
