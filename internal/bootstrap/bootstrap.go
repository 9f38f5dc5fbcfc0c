// Package bootstrap monta a aplicação: escolhe as implementações de store e
// sessão do modo ativo, liga o mediador, os handlers e o roteador.
package bootstrap

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/app"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/handler"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/captcha"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/metrics"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/ratelimit"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/token"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/middleware"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/repository"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/server"
	authsvc "github.com/andrensaraiva/PortalJogosSENAI/internal/service/auth"
	catalogsvc "github.com/andrensaraiva/PortalJogosSENAI/internal/service/catalog"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/store"
	localstore "github.com/andrensaraiva/PortalJogosSENAI/internal/store/local"
	remotestore "github.com/andrensaraiva/PortalJogosSENAI/internal/store/remote"

	"go.uber.org/zap"
)

// RuntimeConfig reúne o que o servidor HTTP precisa além dos recursos.
type RuntimeConfig struct {
	Port       string
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// LoadRuntimeConfig monta a configuração a partir do ambiente, com padrões
// de desenvolvimento.
func LoadRuntimeConfig() RuntimeConfig {
	cfg := RuntimeConfig{
		Port:       os.Getenv("PORT"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "portal-senai-dev-secret"
	}
	if raw := os.Getenv("JWT_ACCESS_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			cfg.AccessTTL = time.Duration(minutes) * time.Minute
		}
	}
	if raw := os.Getenv("JWT_REFRESH_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			cfg.RefreshTTL = time.Duration(hours) * time.Hour
		}
	}
	return cfg
}

// Application agrupa as peças montadas do portal.
type Application struct {
	Resources *app.Resources
	Catalog   *catalogsvc.Service
	Sessions  authsvc.Authenticator
	Router    http.Handler
}

// BuildApplication liga store, sessão, mediador, handlers e roteador, e
// executa a carga inicial do cache.
func BuildApplication(ctx context.Context, logger *zap.SugaredLogger, resources *app.Resources, cfg RuntimeConfig) (*Application, error) {
	remoteMode := resources.Flags.Remote()

	var st store.Store
	if remoteMode {
		st = remotestore.New(resources.DB)
	} else {
		st = localstore.New()
	}

	var (
		sessions   authsvc.Authenticator
		remoteAuth *authsvc.RemoteService
		adminMW    middleware.Authenticator
	)
	if remoteMode {
		tokens := token.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

		var refreshStore authsvc.RefreshTokenStore
		if resources.Redis != nil {
			refreshStore = token.NewRedisRefreshTokenStore(resources.Redis, "")
		} else {
			refreshStore = token.NewMemoryRefreshTokenStore()
			logger.Infow("sessões de renovação em memória; reiniciar o processo derruba as sessões")
		}

		var captchaManager authsvc.CaptchaManager
		if captchaEnabled() && resources.Redis != nil {
			captchaManager = captcha.NewManager(resources.Redis, captcha.LoadOptionsFromEnv())
			logger.Infow("captcha habilitado no login do painel")
		}

		adminRepo := repository.NewAdminRepository(resources.DB)
		remoteAuth = authsvc.NewRemoteService(adminRepo, tokens, refreshStore, captchaManager)
		sessions = remoteAuth
		adminMW = middleware.NewAuthMiddleware(tokens)
	} else {
		localAuth := authsvc.NewLocalService(resources.Prefs)
		sessions = localAuth
		adminMW = middleware.NewLocalAuthMiddleware(localAuth)
	}

	metrics.MustRegister()

	mediator := catalogsvc.New(st, remoteMode, resources.Prefs, sessions)
	mediator.Refresh(ctx)

	var limiter ratelimit.Limiter
	if resources.Redis != nil {
		limiter = ratelimit.NewRedisLimiter(resources.Redis, "")
	} else {
		limiter = ratelimit.NewMemoryLimiter()
	}
	submitGuard := middleware.NewSubmitGuardMiddleware(limiter, middleware.SubmitGuardConfig{
		Enabled: os.Getenv("SUBMIT_GUARD_DISABLED") != "1",
	})

	uploadsDir := ""
	if resources.ObjCfg.Driver == "file" {
		uploadsDir = filepath.Clean(resources.ObjCfg.BaseDir)
	}
	var staticFS http.FileSystem
	if staticDir := os.Getenv("STATIC_DIR"); staticDir != "" {
		staticFS = server.NewHybridStaticFS(staticDir, uploadsDir)
	}

	router := server.NewRouter(server.RouterOptions{
		AuthHandler:    handler.NewAuthHandler(sessions, remoteAuth),
		GameHandler:    handler.NewGameHandler(mediator),
		StudentHandler: handler.NewStudentHandler(mediator),
		DevlogHandler:  handler.NewDevlogHandler(mediator),
		StateHandler:   handler.NewStateHandler(mediator),
		UploadHandler:  handler.NewUploadHandler(resources.Objects),
		AdminMW:        adminMW,
		SubmitGuard:    submitGuard,
		StaticFS:       staticFS,
		UploadsDir:     uploadsDir,
	})

	return &Application{
		Resources: resources,
		Catalog:   mediator,
		Sessions:  sessions,
		Router:    router,
	}, nil
}

func captchaEnabled() bool {
	switch os.Getenv("CAPTCHA_ENABLED") {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
