// Package auth cuida da sessão administrativa do portal. Há duas
// implementações: a local compara credenciais fixas e persiste a sessão no
// arquivo de preferências; a remota valida contra o banco com bcrypt e emite
// JWTs com renovação controlada.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/captcha"
)

var (
	ErrInvalidLogin         = errors.New("credenciais inválidas")
	ErrCaptchaRequired      = errors.New("captcha obrigatório")
	ErrCaptchaInvalid       = errors.New("captcha incorreto")
	ErrCaptchaExpired       = errors.New("captcha expirado ou inexistente")
	ErrCaptchaRateLimited   = errors.New("muitas solicitações de captcha")
	ErrRefreshTokenInvalid  = errors.New("token de renovação inválido")
	ErrRefreshTokenExpired  = errors.New("token de renovação expirado")
	ErrRefreshTokenRevoked  = errors.New("token de renovação revogado")
	ErrRefreshTokenRequired = errors.New("token de renovação é obrigatório")
)

// AdminIdentity identifica o admin autenticado.
type AdminIdentity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenPair agrega o token de acesso, o de renovação e os metadados usados
// para registrar a renovação no armazenamento.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	ExpiresIn             int64     `json:"expires_in"` // segundos
	RefreshTokenID        string    `json:"-"`
	RefreshTokenExpiresAt time.Time `json:"-"`
}

// RefreshTokenClaims traz o essencial extraído de um token de renovação.
type RefreshTokenClaims struct {
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenManager abstrai a emissão e a leitura dos tokens do admin.
type TokenManager interface {
	GenerateTokens(ctx context.Context, identity AdminIdentity) (TokenPair, error)
	ParseAccessToken(token string) (AdminIdentity, error)
	ParseRefreshToken(token string) (RefreshTokenClaims, error)
}

// RefreshTokenStore guarda e confere os tokens de renovação emitidos.
type RefreshTokenStore interface {
	Save(ctx context.Context, email, tokenID string, expiresAt time.Time) error
	Delete(ctx context.Context, email, tokenID string) error
	Exists(ctx context.Context, email, tokenID string) (bool, error)
}

// CaptchaManager reúne geração e verificação de captcha, injetado quando o
// login do painel exige captcha.
type CaptchaManager interface {
	captcha.Generator
	captcha.Verifier
}

// Session descreve o estado corrente da sessão administrativa. Tokens só é
// preenchido pela implementação remota.
type Session struct {
	Admin    bool          `json:"isAdmin"`
	Identity AdminIdentity `json:"identity"`
	Tokens   *TokenPair    `json:"tokens,omitempty"`
}

// LoginParams carrega as credenciais enviadas ao login do painel.
type LoginParams struct {
	Email       string
	Password    string
	CaptchaID   string
	CaptchaCode string
}

// Authenticator é o contrato comum das duas implementações de sessão. O
// Subscribe replica o fluxo de assinatura de estado de autenticação que o
// mediador do catálogo consome: o callback é chamado a cada mudança de
// sessão e a função retornada cancela a assinatura.
type Authenticator interface {
	Login(ctx context.Context, params LoginParams) (Session, error)
	Logout(ctx context.Context, refreshToken string) error
	Current() Session
	Subscribe(fn func(Session)) (unsubscribe func())
}

// notifier distribui mudanças de sessão aos assinantes. Embutido pelas duas
// implementações.
type notifier struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]func(Session)
}

func (n *notifier) Subscribe(fn func(Session)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subscribers == nil {
		n.subscribers = make(map[int]func(Session))
	}
	id := n.nextID
	n.nextID++
	n.subscribers[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subscribers, id)
	}
}

// notify chama os assinantes fora do lock de quem publica a sessão.
func (n *notifier) notify(session Session) {
	n.mu.Lock()
	fns := make([]func(Session), 0, len(n.subscribers))
	for _, fn := range n.subscribers {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(session)
	}
}
