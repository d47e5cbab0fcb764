package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/swiftstock-api/internal/application/assistant"
	"github.com/jhoicas/swiftstock-api/internal/application/lateral"
	"github.com/jhoicas/swiftstock-api/internal/application/network"
	"github.com/jhoicas/swiftstock-api/internal/application/ports"
	"github.com/jhoicas/swiftstock-api/internal/application/procurement"
	"github.com/jhoicas/swiftstock-api/internal/domain/inventory"
	infraai "github.com/jhoicas/swiftstock-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/swiftstock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/swiftstock-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/swiftstock-api/internal/interfaces/http"
	"github.com/jhoicas/swiftstock-api/pkg/config"
	"github.com/jhoicas/swiftstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Str("ai", cfg.AI.Provider).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer st.Close()

	if cfg.Store.Driver == config.DriverSQLite {
		// base local: crear tablas en el primer arranque
		if err := st.Loader.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("crear esquema SQLite")
		}
	}

	networkUC := network.NewUseCase(st.Inventory, inventory.Thresholds{
		LowStockUnits: cfg.Status.LowStockUnits,
		WarningDays:   cfg.Status.WarningDays,
	})
	matcher := lateral.NewMatcher(st.Facilities, st.Inventory, lateral.Config{
		MinStock:      cfg.Matcher.MinStock,
		MaxDistanceKm: cfg.Matcher.MaxDistanceKm,
		Limit:         cfg.Matcher.Limit,
	})
	procurementUC := procurement.NewUseCase(st.Inventory, infrapdf.NewMarotoPDFGenerator(), procurement.Config{
		HorizonDays:  cfg.Reorder.HorizonDays,
		CoverageDays: cfg.Reorder.CoverageDays,
		UrgentDays:   cfg.Reorder.UrgentDays,
	})

	resolver := itemResolver(cfg, log)
	bot := assistant.New(st.Inventory, resolver, networkUC, procurementUC, matcher, log.Component("assistant"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Docs.SwaggerEnabled {
		if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.Docs.SwaggerFile,
				Path:     "docs",
				Title:    "SwiftStock API",
			}))
		} else {
			log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": st.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Facilities:  st.Facilities,
		Network:     networkUC,
		Lateral:     matcher,
		Procurement: procurementUC,
		Assistant:   bot,
		Sessions:    assistant.NewSessionStore(),
		JWTSecret:   cfg.JWT.Secret,
		Log:         log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// itemResolver coincidencia local por texto; con proveedor LLM la local queda como respaldo.
func itemResolver(cfg *config.Config, log *logger.Logger) ports.ItemResolver {
	local := assistant.NewSubstringResolver()
	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second

	var llm ports.LLMService
	switch cfg.AI.Provider {
	case config.AIProviderAnthropic:
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel, timeout)
	case config.AIProviderGemini:
		llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, timeout)
	default:
		return local
	}
	return assistant.NewFallbackResolver(assistant.NewLLMResolver(llm, timeout), local, log.Component("resolver"))
}
