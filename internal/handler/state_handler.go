package handler

import (
	"net/http"

	response "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/common"
	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	catalogsvc "github.com/andrensaraiva/PortalJogosSENAI/internal/service/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StateHandler expõe a fotografia do mediador, o tema e as operações de
// manutenção (recarga e semeadura).
type StateHandler struct {
	service *catalogsvc.Service
	logger  *zap.SugaredLogger
}

// NewStateHandler constrói o handler de estado.
func NewStateHandler(service *catalogsvc.Service) *StateHandler {
	return &StateHandler{
		service: service,
		logger:  appLogger.S().With("component", "state.handler"),
	}
}

// State devolve a fotografia completa do cache. As senhas dos alunos são
// removidas: esta rota é pública; o painel usa a listagem administrativa.
func (h *StateHandler) State(c *gin.Context) {
	state := h.service.State()
	for i := range state.Students {
		state.Students[i].Password = ""
	}
	response.Success(c, http.StatusOK, state, gin.H{"backend": h.service.Backend()})
}

// Refresh dispara uma recarga completa do cache.
func (h *StateHandler) Refresh(c *gin.Context) {
	h.service.Refresh(c.Request.Context())
	state := h.service.State()
	response.Success(c, http.StatusOK, gin.H{
		"games":    len(state.Games),
		"students": len(state.Students),
		"error":    state.LastError,
	}, nil)
}

// Theme devolve o tema corrente.
func (h *StateHandler) Theme(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"theme": h.service.Theme()}, nil)
}

// ToggleTheme alterna o tema e devolve o novo valor.
func (h *StateHandler) ToggleTheme(c *gin.Context) {
	theme := h.service.ToggleTheme()
	response.Success(c, http.StatusOK, gin.H{"theme": theme}, nil)
}

// Seed grava o conjunto de demonstração no backend remoto. Rota
// administrativa; no modo local não tem efeito.
func (h *StateHandler) Seed(c *gin.Context) {
	log := h.logger.With("operation", "seed")

	if err := h.service.Seed(c.Request.Context()); err != nil {
		log.Errorw("falha ao semear", "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, err.Error(), nil)
		return
	}

	log.Infow("semeadura concluída", "backend", h.service.Backend())
	response.Success(c, http.StatusOK, gin.H{"backend": h.service.Backend()}, nil)
}
