package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	response "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/common"
	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmitGuardConfig parametriza a proteção das rotas públicas de envio
// (avaliações e devlogs).
type SubmitGuardConfig struct {
	Enabled     bool
	Prefix      string
	Window      time.Duration
	MaxRequests int
}

// SubmitGuardMiddleware limita por IP o envio de avaliações e devlogs, as
// únicas escritas abertas ao visitante anônimo.
type SubmitGuardMiddleware struct {
	limiter ratelimit.Limiter
	cfg     SubmitGuardConfig
	logger  *zap.SugaredLogger
}

// NewSubmitGuardMiddleware constrói o guarda de envio sobre um limitador
// (Redis no modo remoto, memória no local).
func NewSubmitGuardMiddleware(limiter ratelimit.Limiter, cfg SubmitGuardConfig) *SubmitGuardMiddleware {
	if cfg.Prefix == "" {
		cfg.Prefix = "submit"
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 10
	}
	return &SubmitGuardMiddleware{
		limiter: limiter,
		cfg:     cfg,
		logger:  appLogger.S().With("component", "middleware.submitguard"),
	}
}

// Handle devolve o middleware Gin que aplica o limite por IP.
func (m *SubmitGuardMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.cfg.Enabled || m.limiter == nil {
			c.Next()
			return
		}
		ip := strings.TrimSpace(c.ClientIP())
		if ip == "" {
			c.Next()
			return
		}

		key := m.cfg.Prefix + ":" + ip
		result, err := m.limiter.Allow(c.Request.Context(), key, m.cfg.MaxRequests, m.cfg.Window)
		if err != nil {
			// Limitador indisponível não derruba a rota.
			m.logger.Warnw("falha ao consultar limitador", "ip", ip, "error", err)
			c.Next()
			return
		}
		if !result.Allowed {
			if result.RetryAfter > 0 {
				c.Header("Retry-After", fmt.Sprintf("%d", int(result.RetryAfter.Seconds())))
			}
			m.logger.Infow("envio bloqueado por excesso", "ip", ip)
			response.Fail(c, http.StatusTooManyRequests, response.ErrTooManyRequests, "muitos envios, aguarde um instante", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
