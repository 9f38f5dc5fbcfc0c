package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/app"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/bootstrap"
	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resources, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer func() {
		if err := resources.Close(); err != nil {
			appLogger.S().Warnw("erro ao liberar recursos", "error", err)
		}
	}()
	defer appLogger.Sync()

	cfg := bootstrap.LoadRuntimeConfig()
	application, err := bootstrap.BuildApplication(ctx, appLogger.S(), resources, cfg)
	if err != nil {
		appLogger.S().Fatalw("falha ao montar a aplicação", "error", err)
	}
	defer application.Catalog.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.S().Infow("portal no ar",
			"addr", srv.Addr,
			"backend", application.Catalog.Backend(),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		appLogger.S().Infow("sinal de desligamento recebido")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.S().Fatalw("servidor http encerrou com erro", "error", err)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.S().Warnw("desligamento forçado", "error", err)
	}
}
