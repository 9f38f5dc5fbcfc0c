package handler

import (
	"errors"
	"net/http"

	response "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/common"
	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/metrics"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler expõe a sessão administrativa por HTTP. remote fica nil no
// modo local, quando não há tokens nem captcha.
type AuthHandler struct {
	sessions auth.Authenticator
	remote   *auth.RemoteService
	logger   *zap.SugaredLogger
}

// NewAuthHandler constrói o handler de sessão administrativa.
func NewAuthHandler(sessions auth.Authenticator, remote *auth.RemoteService) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		remote:   remote,
		logger:   appLogger.S().With("component", "auth.handler"),
	}
}

func (h *AuthHandler) scope(operation string) *zap.SugaredLogger {
	return h.logger.With("operation", operation)
}

// AdminLoginRequest é o corpo do login do painel. No modo local o campo
// email recebe o usuário literal.
type AdminLoginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// Login autentica o admin na implementação ativa.
func (h *AuthHandler) Login(c *gin.Context) {
	log := h.scope("login")

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnw("corpo da requisição inválido", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), auth.LoginParams{
		Email:       req.Email,
		Password:    req.Password,
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	})
	if err != nil {
		metrics.RecordAdminLogin(false)
		status, code := mapAuthError(err)
		if status == http.StatusInternalServerError {
			log.Errorw("falha no login do admin", "error", err)
		} else {
			log.Warnw("login do admin recusado", "error", err)
		}
		response.Fail(c, status, code, err.Error(), nil)
		return
	}

	metrics.RecordAdminLogin(true)
	response.Success(c, http.StatusOK, session, nil)
}

// LogoutRequest carrega o token de renovação a revogar (modo remoto).
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout encerra a sessão administrativa.
func (h *AuthHandler) Logout(c *gin.Context) {
	log := h.scope("logout")

	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.sessions.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		status, code := mapAuthError(err)
		log.Warnw("falha no logout", "error", err)
		response.Fail(c, status, code, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ok": true}, nil)
}

// Session devolve a sessão administrativa corrente, sem os tokens.
func (h *AuthHandler) Session(c *gin.Context) {
	session := h.sessions.Current()
	session.Tokens = nil
	response.Success(c, http.StatusOK, session, nil)
}

// RefreshRequest carrega o token de renovação (modo remoto).
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh troca o token de renovação por um novo par. Só existe no modo
// remoto.
func (h *AuthHandler) Refresh(c *gin.Context) {
	log := h.scope("refresh")

	if h.remote == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, "renovação indisponível no modo local", nil)
		return
	}

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnw("corpo da requisição inválido", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	tokens, err := h.remote.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		status, code := mapAuthError(err)
		log.Warnw("falha na renovação", "error", err)
		response.Fail(c, status, code, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, tokens, nil)
}

// Captcha emite um desafio para o login do painel, quando habilitado.
func (h *AuthHandler) Captcha(c *gin.Context) {
	log := h.scope("captcha")

	if h.remote == nil || !h.remote.CaptchaEnabled() {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, "captcha desabilitado", nil)
		return
	}

	id, image, err := h.remote.GenerateCaptcha(c.Request.Context(), c.ClientIP())
	if err != nil {
		status, code := mapAuthError(err)
		log.Warnw("falha ao gerar captcha", "error", err)
		response.Fail(c, status, code, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"captcha_id": id, "image": image}, nil)
}

// mapAuthError traduz os sentinelas do serviço de sessão em códigos HTTP.
func mapAuthError(err error) (int, response.ErrorCode) {
	switch {
	case errors.Is(err, auth.ErrInvalidLogin):
		return http.StatusUnauthorized, response.ErrInvalidCredentials
	case errors.Is(err, auth.ErrCaptchaRequired):
		return http.StatusBadRequest, response.ErrCaptchaRequired
	case errors.Is(err, auth.ErrCaptchaInvalid), errors.Is(err, auth.ErrCaptchaExpired):
		return http.StatusBadRequest, response.ErrCaptchaInvalid
	case errors.Is(err, auth.ErrCaptchaRateLimited):
		return http.StatusTooManyRequests, response.ErrTooManyRequests
	case errors.Is(err, auth.ErrRefreshTokenRequired):
		return http.StatusBadRequest, response.ErrBadRequest
	case errors.Is(err, auth.ErrRefreshTokenInvalid),
		errors.Is(err, auth.ErrRefreshTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked):
		return http.StatusUnauthorized, response.ErrUnauthorized
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}
