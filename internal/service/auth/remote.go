package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/captcha"
	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RemoteService valida as credenciais do admin contra o banco e mantém a
// sessão com par de tokens JWT. O token de renovação é de uso único: cada
// renovação apaga o jti anterior e grava um novo.
type RemoteService struct {
	notifier

	mu      sync.RWMutex
	session Session

	admins       *repository.AdminRepository
	tokenManager TokenManager
	refreshStore RefreshTokenStore
	captcha      CaptchaManager
	logger       *zap.SugaredLogger
}

// NewRemoteService monta o serviço remoto. O captcha é opcional; sem ele o
// login não exige desafio.
func NewRemoteService(admins *repository.AdminRepository, tm TokenManager, store RefreshTokenStore, cm CaptchaManager) *RemoteService {
	return &RemoteService{
		admins:       admins,
		tokenManager: tm,
		refreshStore: store,
		captcha:      cm,
		logger:       appLogger.S().With("component", "auth.remote"),
	}
}

// Login confere captcha (quando habilitado), busca a conta pelo e-mail,
// compara o hash bcrypt e emite o par de tokens.
func (s *RemoteService) Login(ctx context.Context, params LoginParams) (Session, error) {
	email := strings.TrimSpace(params.Email)
	log := s.scope("login").With("email", email)

	log.Infow("tentativa de login do admin")

	if s.captcha != nil {
		if strings.TrimSpace(params.CaptchaID) == "" || strings.TrimSpace(params.CaptchaCode) == "" {
			log.Warnw("captcha obrigatório ausente")
			return Session{}, ErrCaptchaRequired
		}
		if err := s.captcha.Verify(ctx, params.CaptchaID, params.CaptchaCode); err != nil {
			switch {
			case errors.Is(err, captcha.ErrCaptchaNotFound):
				log.Warnw("captcha expirado", "captcha_id", params.CaptchaID)
				return Session{}, ErrCaptchaExpired
			case errors.Is(err, captcha.ErrCaptchaMismatch):
				log.Warnw("captcha incorreto", "captcha_id", params.CaptchaID)
				return Session{}, ErrCaptchaInvalid
			default:
				log.Errorw("falha ao verificar captcha", "error", err)
				return Session{}, fmt.Errorf("verificar captcha: %w", err)
			}
		}
	}

	account, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnw("conta não encontrada")
			return Session{}, ErrInvalidLogin
		}
		log.Errorw("falha ao buscar conta", "error", err)
		return Session{}, fmt.Errorf("buscar conta: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(params.Password)); err != nil {
		log.Warnw("senha não confere")
		return Session{}, ErrInvalidLogin
	}

	if err := s.admins.TouchLastLogin(ctx, account.ID, time.Now()); err != nil {
		log.Warnw("falha ao registrar último login", "error", err)
	}

	identity := AdminIdentity{Email: account.Email, Name: account.Name}
	tokens, err := s.issueAndStoreTokens(ctx, identity)
	if err != nil {
		return Session{}, err
	}

	session := Session{Admin: true, Identity: identity, Tokens: &tokens}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	log.Infow("login do admin aceito")
	s.notify(session)
	return session, nil
}

// Logout revoga o token de renovação e limpa a sessão corrente.
func (s *RemoteService) Logout(ctx context.Context, refreshToken string) error {
	log := s.scope("logout")

	if strings.TrimSpace(refreshToken) == "" {
		log.Warnw("token de renovação ausente")
		return ErrRefreshTokenRequired
	}

	claims, err := s.tokenManager.ParseRefreshToken(refreshToken)
	if err != nil {
		log.Warnw("falha ao interpretar token de renovação", "error", err)
		return ErrRefreshTokenInvalid
	}

	if s.refreshStore == nil {
		log.Errorw("armazenamento de renovação não configurado")
		return fmt.Errorf("armazenamento de renovação ausente")
	}

	if err := s.refreshStore.Delete(ctx, claims.Email, claims.TokenID); err != nil {
		log.Errorw("falha ao remover token de renovação", "error", err, "token_id", claims.TokenID)
		return fmt.Errorf("remover token de renovação: %w", err)
	}

	s.mu.Lock()
	s.session = Session{}
	s.mu.Unlock()

	log.Infow("logout do admin")
	s.notify(Session{})
	return nil
}

// Refresh troca um token de renovação válido por um novo par de tokens.
//
// Passo a passo:
//  1. Interpreta o token e extrai e-mail, jti e expiração.
//  2. Rejeita tokens expirados ou malformados.
//  3. Confere no armazenamento se o jti ainda existe (não revogado, não
//     reutilizado).
//  4. Remove o jti antigo, emite novo par e grava o novo jti.
func (s *RemoteService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	log := s.scope("refresh")

	if strings.TrimSpace(refreshToken) == "" {
		log.Warnw("token de renovação ausente")
		return TokenPair{}, ErrRefreshTokenRequired
	}

	claims, err := s.tokenManager.ParseRefreshToken(refreshToken)
	if err != nil {
		log.Warnw("falha ao interpretar token de renovação", "error", err)
		return TokenPair{}, ErrRefreshTokenInvalid
	}

	if claims.ExpiresAt.IsZero() {
		log.Warnw("token de renovação sem expiração", "email", claims.Email)
		return TokenPair{}, ErrRefreshTokenInvalid
	}

	if time.Now().After(claims.ExpiresAt) {
		log.Warnw("token de renovação expirado", "email", claims.Email)
		return TokenPair{}, ErrRefreshTokenExpired
	}

	if s.refreshStore == nil {
		log.Errorw("armazenamento de renovação não configurado")
		return TokenPair{}, fmt.Errorf("armazenamento de renovação ausente")
	}

	ok, storeErr := s.refreshStore.Exists(ctx, claims.Email, claims.TokenID)
	if storeErr != nil {
		log.Errorw("falha ao consultar token de renovação", "error", storeErr)
		return TokenPair{}, fmt.Errorf("consultar token de renovação: %w", storeErr)
	}
	if !ok {
		log.Warnw("token de renovação revogado", "email", claims.Email)
		return TokenPair{}, ErrRefreshTokenRevoked
	}

	account, err := s.admins.FindByEmail(ctx, claims.Email)
	if err != nil {
		log.Errorw("falha ao carregar conta", "error", err, "email", claims.Email)
		return TokenPair{}, fmt.Errorf("carregar conta: %w", err)
	}

	// Rotação: apaga o antigo antes de emitir o novo.
	if err := s.refreshStore.Delete(ctx, claims.Email, claims.TokenID); err != nil {
		log.Errorw("falha ao remover token antigo", "error", err, "token_id", claims.TokenID)
		return TokenPair{}, fmt.Errorf("remover token de renovação: %w", err)
	}

	identity := AdminIdentity{Email: account.Email, Name: account.Name}
	tokens, issueErr := s.issueAndStoreTokens(ctx, identity)
	if issueErr != nil {
		return TokenPair{}, issueErr
	}

	s.mu.Lock()
	if s.session.Admin && s.session.Identity.Email == identity.Email {
		s.session.Tokens = &tokens
	}
	s.mu.Unlock()

	return tokens, nil
}

// Current devolve a sessão corrente.
func (s *RemoteService) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Subscribe registra um assinante de mudanças de sessão.
func (s *RemoteService) Subscribe(fn func(Session)) func() {
	return s.notifier.Subscribe(fn)
}

// VerifyAccessToken valida um token de acesso, usado pelo middleware das
// rotas administrativas.
func (s *RemoteService) VerifyAccessToken(raw string) (AdminIdentity, error) {
	identity, err := s.tokenManager.ParseAccessToken(raw)
	if err != nil {
		return AdminIdentity{}, ErrRefreshTokenInvalid
	}
	return identity, nil
}

// CaptchaEnabled informa se o login exige captcha.
func (s *RemoteService) CaptchaEnabled() bool {
	return s != nil && s.captcha != nil
}

// GenerateCaptcha emite um novo desafio para o IP informado.
func (s *RemoteService) GenerateCaptcha(ctx context.Context, ip string) (string, string, error) {
	if !s.CaptchaEnabled() {
		return "", "", ErrCaptchaRequired
	}

	id, b64, err := s.captcha.Generate(ctx, ip)
	if err != nil {
		if errors.Is(err, captcha.ErrRateLimited) {
			return "", "", ErrCaptchaRateLimited
		}
		return "", "", fmt.Errorf("gerar captcha: %w", err)
	}

	return id, b64, nil
}

func (s *RemoteService) scope(operation string) *zap.SugaredLogger {
	return s.logger.With("operation", operation)
}

// issueAndStoreTokens emite o par de tokens e grava o jti do refresh no
// armazenamento. Se a gravação falhar, nada é devolvido ao cliente.
func (s *RemoteService) issueAndStoreTokens(ctx context.Context, identity AdminIdentity) (TokenPair, error) {
	log := s.scope("issue_tokens").With("email", identity.Email)

	tokens, err := s.tokenManager.GenerateTokens(ctx, identity)
	if err != nil {
		log.Errorw("falha ao gerar tokens", "error", err)
		return TokenPair{}, fmt.Errorf("gerar tokens: %w", err)
	}

	if s.refreshStore == nil {
		return TokenPair{}, fmt.Errorf("armazenamento de renovação ausente")
	}
	if tokens.RefreshTokenID == "" {
		return TokenPair{}, fmt.Errorf("token de renovação sem identificador")
	}
	if tokens.RefreshTokenExpiresAt.IsZero() {
		return TokenPair{}, fmt.Errorf("token de renovação sem expiração")
	}

	if err := s.refreshStore.Save(ctx, identity.Email, tokens.RefreshTokenID, tokens.RefreshTokenExpiresAt); err != nil {
		log.Errorw("falha ao gravar token de renovação", "error", err)
		return TokenPair{}, fmt.Errorf("gravar token de renovação: %w", err)
	}

	return tokens, nil
}
