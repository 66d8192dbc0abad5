package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/miniapp-api/internal/application/auth"
	"github.com/jhoicas/miniapp-api/internal/application/notification"
	"github.com/jhoicas/miniapp-api/internal/application/ports"
	"github.com/jhoicas/miniapp-api/internal/application/usecase"
	"github.com/jhoicas/miniapp-api/internal/infrastructure/cache"
	"github.com/jhoicas/miniapp-api/internal/infrastructure/onec"
	infrapdf "github.com/jhoicas/miniapp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/miniapp-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/miniapp-api/internal/interfaces/http"
	"github.com/jhoicas/miniapp-api/pkg/config"
	"github.com/jhoicas/miniapp-api/pkg/logger"
	"github.com/jhoicas/miniapp-api/pkg/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}
	if cfg.Telegram.BotToken == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN vacío: todo initData será rechazado")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	actionRepo := postgres.NewUserActionRepository(pool)

	auditUC := usecase.NewAuditUseCase(actionRepo)

	verifier := telegram.NewVerifier(cfg.Telegram.BotToken)
	authUC := auth.NewAuthUseCase(verifier, userRepo, auditUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.ExpMinutes,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Notifications.DefaultRole, log)

	notificationUC := notification.NewUseCase(notificationRepo, userRepo, log)
	userUC := usecase.NewUserUseCase(userRepo)

	// Cliente 1C: sin ONEC_BASE_URL trabaja en modo demo con datos fijos.
	onecClient := onec.NewClient(onec.Config{
		BaseURL:  cfg.OneC.BaseURL,
		User:     cfg.OneC.User,
		Password: cfg.OneC.Password,
		Timeout:  cfg.OneC.Timeout,
	}, log)

	// Caché de ventas: Redis si está configurado, si no un no-op.
	var salesCache ports.SalesCache = cache.NewNoopSalesCache()
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisSalesCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.SalesTTL, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, caché de ventas deshabilitada")
		} else {
			salesCache = redisCache
		}
	}

	salesUC := usecase.NewSalesUseCase(onecClient, salesCache, infrapdf.NewMarotoSalesReport(), auditUC, log)
	processUC := usecase.NewProcessUseCase(onecClient, auditUC, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		NotificationUC: notificationUC,
		SalesUC:        salesUC,
		ProcessUC:      processUC,
		UserUC:         userUC,
		AuditUC:        auditUC,
		Log:            log,
	})

	// Job de purga: elimina notificaciones leídas más viejas que la retención.
	pruneCtx, stopPrune := context.WithCancel(ctx)
	go pruneLoop(pruneCtx, notificationUC, cfg.Notifications, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopPrune()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// pruneLoop ejecuta la purga de retención a intervalos fijos hasta que el
// contexto se cancele. Un fallo de purga se registra y se reintenta en el
// siguiente tick.
func pruneLoop(ctx context.Context, uc *notification.UseCase, cfg config.NotificationsConfig, log *logger.Logger) {
	ticker := time.NewTicker(cfg.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.Prune(ctx, cfg.RetentionDays); err != nil {
				log.Error().Err(err).Msg("purga de notificaciones")
			}
		}
	}
}
