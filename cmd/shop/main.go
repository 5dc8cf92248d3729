package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/text/language"

	"github.com/kosmp/BD-5-sem/internal/application/session"
	"github.com/kosmp/BD-5-sem/internal/application/shop"
	"github.com/kosmp/BD-5-sem/internal/infrastructure/postgres"
	"github.com/kosmp/BD-5-sem/internal/interfaces/console"
	"github.com/kosmp/BD-5-sem/pkg/config"
	"github.com/kosmp/BD-5-sem/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("login_key", cfg.Auth.LoginKey).
		Msg("iniciando aplicación")

	loginKey, err := shop.ParseLoginKey(cfg.Auth.LoginKey)
	if err != nil {
		log.Fatal().Err(err).Msg("clave de login")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	engine := shop.New(postgres.NewTxRunner(pool), postgres.NewRepositories(pool), shop.Options{
		LoginKey: loginKey,
		Logger:   log.Zerolog(),
	})
	sess := session.New()
	ui := console.New(engine, sess, os.Stdin, os.Stdout, language.Spanish)

	// La lectura de stdin no se puede interrumpir: ante una señal se sale sin esperarla.
	done := make(chan error, 1)
	go func() { done <- ui.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Msg("consola finalizada con error")
		}
	case <-ctx.Done():
		log.Info().Msg("señal de apagado recibida")
	}

	log.Info().Str("session_id", sess.ID()).Msg("aplicación detenida")
}
