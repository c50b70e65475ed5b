package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	_ "github.com/hugohenrick/nexpos-assistant/docs"
	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/controller"
	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/route"
	"github.com/hugohenrick/nexpos-assistant/internal/adapter/repository"
	"github.com/hugohenrick/nexpos-assistant/internal/config"
	"github.com/hugohenrick/nexpos-assistant/internal/dialogue"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
	"github.com/hugohenrick/nexpos-assistant/internal/session"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
	"github.com/hugohenrick/nexpos-assistant/pkg/llm"
	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
	"github.com/hugohenrick/nexpos-assistant/pkg/middleware"
	"github.com/hugohenrick/nexpos-assistant/pkg/pkcs12"
	pkgtenant "github.com/hugohenrick/nexpos-assistant/pkg/tenant"
)

const shutdownTimeout = 15 * time.Second

// App representa a aplicação e suas dependências
type App struct {
	cfg        *config.Config
	log        *logger.ZapLogger
	router     *gin.Engine
	db         *database.PostgresDB
	store      *repository.Store
	sessions   *session.Store
	engine     *dialogue.Engine
	jwtService *auth.JWTService
	validator  pkgtenant.TenantValidator
	modelName  string

	authController       *controller.AuthController
	tenantController     *controller.TenantController
	capabilityController *controller.CapabilityController
	chatController       *controller.ChatController
	wsController         *controller.WebSocketController
	healthController     *controller.HealthController
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log *logger.ZapLogger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	seed, err := repository.DefaultSeed()
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	// Configurar repositórios
	checks := map[string]controller.HealthChecker{}
	switch cfg.RepositoryDriver {
	case config.DriverPostgres:
		db, err := database.NewPostgresDB(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.store = repository.NewPostgresStore(db, seed)
		checks["database"] = db.Pool()
	default:
		a.store = repository.NewMemoryStore(seed)
	}

	registry, err := capability.DefaultRegistry()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("capabilities: %w", err)
	}

	opts := []dialogue.Option{
		dialogue.WithLogger(log),
		dialogue.WithSpecificityWords(cfg.SpecificityWords),
	}
	assistant, err := llm.New(ctx, cfg.Model, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("model: %w", err)
	}
	if assistant != nil {
		a.modelName = assistant.Model()
		opts = append(opts,
			dialogue.WithClassifier(assistant),
			dialogue.WithSynthesizer(assistant),
			dialogue.WithModelName(a.modelName),
		)
	}

	a.sessions = session.NewStore(cfg.SessionTTL)
	a.engine, err = dialogue.NewEngine(registry, repositoriesOf(a.store), a.sessions, opts...)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.jwtService, err = auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.validator = repository.NewTenantValidator(a.store.Tenants)

	// Criar controllers
	history := repository.NewMemoryChatRepository(cfg.HistoryLimit)
	a.authController = controller.NewAuthController(a.store.Users, a.jwtService, log)
	a.tenantController = controller.NewTenantController(a.store.Tenants, log)
	a.capabilityController = controller.NewCapabilityController(registry)
	a.chatController = controller.NewChatController(a.engine, history, log)
	a.wsController = controller.NewWebSocketController(ctx, a.engine, a.sessions, history, a.jwtService, a.validator, cfg.CORSOrigins, log)
	a.healthController = controller.NewHealthController(a.modelName, a.sessions.Len, checks)

	// Configurar router com modo correto
	gin.SetMode(cfg.GinMode)
	a.router = gin.New()
	a.router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		cors.New(corsConfig(cfg.CORSOrigins)),
	)

	log.Info("application ready",
		"repository", cfg.RepositoryDriver,
		"model", a.modelName,
		"specificity_words", cfg.SpecificityWords,
	)
	return a, nil
}

func repositoriesOf(s *repository.Store) dialogue.Repositories {
	return dialogue.Repositories{
		Devices:   s.Devices,
		Merchants: s.Merchants,
		Alerts:    s.Alerts,
		Reports:   s.Reports,
		FAQ:       s.FAQ,
		Activity:  s.Activity,
		Tenants:   s.Tenants,
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes() {
	v1 := a.router.Group("/api/v1")
	route.SetupHealthRoutes(v1, a.healthController)
	route.SetupAuthRoutes(v1, a.authController, a.jwtService, a.cfg.DemoLogin)
	route.SetupCapabilityRoutes(v1, a.capabilityController, a.jwtService)
	route.SetupChatRoutes(v1, a.chatController, a.jwtService, a.validator)
	route.SetupTenantRoutes(v1, a.tenantController, a.jwtService)

	// Caminhos do cliente web antigo
	route.SetupLegacyRoutes(a.router.Group("/api"), a.authController, a.capabilityController, a.healthController, a.cfg.DemoLogin)
	route.SetupWebSocketRoutes(a.router, a.wsController)

	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if a.cfg.StaticDir != "" {
		a.router.NoRoute(gin.WrapH(http.FileServer(http.Dir(a.cfg.StaticDir))))
	}
}

// Run inicia o servidor HTTP e a limpeza de sessões até ctx ser cancelado
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if a.cfg.TLSEnabled() {
		tlsConfig, err := pkcs12.LoadTLSConfig(a.cfg.TLSPFXPath, a.cfg.TLSPFXPassword)
		if err != nil {
			return fmt.Errorf("tls: %w", err)
		}
		srv.TLSConfig = tlsConfig
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.sessions.Run(gctx, a.cfg.SweepInterval)
	})

	g.Go(func() error {
		a.log.Info("http server listening", "addr", a.cfg.HTTPAddr, "tls", a.cfg.TLSEnabled())
		var err error
		if srv.TLSConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
