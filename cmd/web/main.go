package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/mdaskas/customer-console/internal/application/auth"
	"github.com/mdaskas/customer-console/internal/application/customers"
	"github.com/mdaskas/customer-console/internal/application/editor"
	"github.com/mdaskas/customer-console/internal/application/terms"
	"github.com/mdaskas/customer-console/internal/application/validation"
	"github.com/mdaskas/customer-console/internal/infrastructure/graphql"
	infrapdf "github.com/mdaskas/customer-console/internal/infrastructure/pdf"
	httpRouter "github.com/mdaskas/customer-console/internal/interfaces/http"
	"github.com/mdaskas/customer-console/pkg/config"
	"github.com/mdaskas/customer-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("graphql", cfg.GraphQL.URL).
		Msg("iniciando consola")

	ctx := context.Background()

	// Caché de respuestas: memoria por defecto, Redis si se comparte entre réplicas.
	var cache graphql.ResponseCache = graphql.NewMemoryCache(cfg.Cache.TTL())
	if cfg.Cache.Backend == "redis" {
		rc, err := graphql.NewRedisCache(ctx, cfg.Redis, cfg.Cache.TTL())
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rc.Close()
		cache = rc
	}

	var tokens graphql.TokenSource
	if cfg.GraphQL.JWTSecret != "" {
		tokens = auth.UpstreamTokens(cfg.GraphQL.JWTSecret, cfg.GraphQL.JWTIssuer, time.Minute)
	}
	client := graphql.NewClient(graphql.ClientConfig{
		Endpoint:    cfg.GraphQL.URL,
		Timeout:     cfg.GraphQL.Timeout(),
		TokenSource: tokens,
	}, cache, log)
	defer client.Close()

	customerRepo := graphql.NewCustomerRepository(client)
	billingRepo := graphql.NewBillingTermRepository(client)
	shippingRepo := graphql.NewShippingTermRepository(client)

	val := validation.New()
	billingUC := terms.NewBillingUseCase(billingRepo, client, val, log)
	shippingUC := terms.NewShippingUseCase(shippingRepo, client, val, log)
	customerUC := customers.NewUseCase(
		customerRepo, billingRepo, shippingRepo, client, val,
		infrapdf.NewMarotoCustomerSheet(cfg.App.Name), log,
	)
	authUC := auth.NewUseCase(auth.Config{
		Operator:     cfg.Auth.OperatorUser,
		PasswordHash: cfg.Auth.OperatorPasswordHash,
		JWTSecret:    cfg.Auth.JWTSecret,
		ExpMinutes:   cfg.Auth.JWTExpiration,
		Issuer:       cfg.Auth.JWTIssuer,
	})
	if !authUC.Enabled() {
		log.Warn().Msg("login de operador deshabilitado (AUTH_OPERATOR_PASSWORD_HASH vacío)")
	}

	policy := editor.ErrorPolicySurface
	if cfg.Editor.SwallowErrors {
		policy = editor.ErrorPolicySwallow
	}
	sessions := httpRouter.NewSessionStore(cfg.Editor.SessionTTL(),
		httpRouter.TermEditors(billingUC, shippingUC, policy, log))

	app := httpRouter.NewApp(httpRouter.AppConfig{Name: cfg.App.Name, Log: log})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Customer Console API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		BillingUC:  billingUC,
		ShippingUC: shippingUC,
		AuthUC:     authUC,
		Validator:  val,
		Sessions:   sessions,
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

	log.Info().Msg("consola detenida")
}
