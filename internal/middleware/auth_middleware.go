package middleware

import (
	"net/http"
	"strings"

	response "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/common"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// Chaves de contexto preenchidas pelos guardas administrativos.
const (
	ContextAdminEmail = "adminEmail"
	ContextAdminName  = "adminName"
)

// AuthMiddleware protege as rotas administrativas no modo remoto validando o
// token de acesso JWT.
type AuthMiddleware struct {
	tokens auth.TokenManager
}

// NewAuthMiddleware cria o guarda JWT com o gerenciador de tokens.
func NewAuthMiddleware(tokens auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle devolve o middleware Gin que valida o Bearer token e injeta a
// identidade do admin no contexto.
func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized, "cabeçalho de autorização ausente", nil)
			c.Abort()
			return
		}

		identity, err := m.tokens.ParseAccessToken(strings.TrimSpace(authHeader[7:]))
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized, "token inválido", nil)
			c.Abort()
			return
		}

		c.Set(ContextAdminEmail, identity.Email)
		c.Set(ContextAdminName, identity.Name)
		c.Next()
	}
}
