package middleware

import (
	"net/http"

	response "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/common"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// LocalAuthMiddleware protege as rotas administrativas no modo local. Sem
// tokens: vale a sessão em processo do autenticador local, restaurada do
// arquivo de preferências.
type LocalAuthMiddleware struct {
	sessions auth.Authenticator
}

// NewLocalAuthMiddleware constrói o guarda de sessão local.
func NewLocalAuthMiddleware(sessions auth.Authenticator) *LocalAuthMiddleware {
	return &LocalAuthMiddleware{sessions: sessions}
}

// Handle barra a requisição quando não há sessão administrativa ativa.
func (m *LocalAuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := m.sessions.Current()
		if !session.Admin {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized, "sessão administrativa necessária", nil)
			c.Abort()
			return
		}

		c.Set(ContextAdminEmail, session.Identity.Email)
		c.Set(ContextAdminName, session.Identity.Name)
		c.Next()
	}
}
