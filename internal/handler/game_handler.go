package handler

import (
	"errors"
	"net/http"

	domain "github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
	response "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/common"
	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	catalogsvc "github.com/andrensaraiva/PortalJogosSENAI/internal/service/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GameHandler expõe o catálogo de jogos por HTTP.
type GameHandler struct {
	service *catalogsvc.Service
	logger  *zap.SugaredLogger
}

// NewGameHandler constrói o handler de jogos.
func NewGameHandler(service *catalogsvc.Service) *GameHandler {
	return &GameHandler{
		service: service,
		logger:  appLogger.S().With("component", "game.handler"),
	}
}

func (h *GameHandler) scope(operation string) *zap.SugaredLogger {
	return h.logger.With("operation", operation)
}

// List devolve todos os jogos do cache, com as estatísticas de avaliação
// calculadas.
func (h *GameHandler) List(c *gin.Context) {
	state := h.service.State()

	type gameWithStats struct {
		domain.Game
		Stats domain.ReviewStats `json:"reviewStats"`
	}

	games := make([]gameWithStats, 0, len(state.Games))
	for _, game := range state.Games {
		games = append(games, gameWithStats{Game: game, Stats: game.Stats()})
	}

	response.Success(c, http.StatusOK, games, gin.H{"loading": state.Loading, "error": state.LastError})
}

// Get devolve um jogo pelo id.
func (h *GameHandler) Get(c *gin.Context) {
	id := c.Param("id")
	game := h.service.GameByID(id)
	if game == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, "jogo não encontrado", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"game": game, "reviewStats": game.Stats()}, nil)
}

// Create cadastra um jogo novo. Rota administrativa.
func (h *GameHandler) Create(c *gin.Context) {
	log := h.scope("create")

	var game domain.Game
	if err := c.ShouldBindJSON(&game); err != nil {
		log.Warnw("corpo da requisição inválido", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}
	game.ID = ""

	id, err := h.service.AddGame(c.Request.Context(), game)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, err.Error(), nil)
		return
	}

	log.Infow("jogo criado", "game_id", id)
	response.Created(c, gin.H{"id": id})
}

// Update substitui um jogo inteiro. Rota administrativa.
func (h *GameHandler) Update(c *gin.Context) {
	log := h.scope("update").With("game_id", c.Param("id"))

	var game domain.Game
	if err := c.ShouldBindJSON(&game); err != nil {
		log.Warnw("corpo da requisição inválido", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}
	game.ID = c.Param("id")

	if err := h.service.UpdateGame(c.Request.Context(), game); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": game.ID}, nil)
}

// Delete remove um jogo. Rota administrativa.
func (h *GameHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteGame(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, err.Error(), nil)
		return
	}

	response.NoContent(c)
}

// SubmitReviewRequest é o corpo do envio de avaliação. IsRecommended é
// ponteiro para rejeitar o estado "indeciso" antes de chegar ao mediador.
type SubmitReviewRequest struct {
	Author        string `json:"author"`
	Content       string `json:"content"`
	IsRecommended *bool  `json:"isRecommended" binding:"required"`
}

// SubmitReview acrescenta uma avaliação ao jogo. Rota pública.
func (h *GameHandler) SubmitReview(c *gin.Context) {
	log := h.scope("submit_review").With("game_id", c.Param("id"))

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnw("corpo da requisição inválido", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "é preciso recomendar ou não o jogo", nil)
		return
	}

	review := domain.Review{
		Author:        req.Author,
		Content:       req.Content,
		IsRecommended: *req.IsRecommended,
	}

	if err := h.service.SubmitReview(c.Request.Context(), c.Param("id"), review); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, err.Error(), nil)
		return
	}

	response.Created(c, gin.H{"ok": true})
}

// AddDevlogRequest é o corpo da publicação de devlog.
type AddDevlogRequest struct {
	Date     string               `json:"date"`
	AuthorID string               `json:"authorId"`
	Title    string               `json:"title" binding:"required"`
	Content  string               `json:"content"`
	Tags     []string             `json:"tags"`
	Media    []domain.DevlogMedia `json:"media"`
}

// AddDevlog publica um devlog no jogo. Rota pública protegida pelo guarda de
// envio.
func (h *GameHandler) AddDevlog(c *gin.Context) {
	log := h.scope("add_devlog").With("game_id", c.Param("id"))

	var req AddDevlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnw("corpo da requisição inválido", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	devlog := domain.Devlog{
		Date:     req.Date,
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Media:    req.Media,
	}

	if err := h.service.AddDevlog(c.Request.Context(), c.Param("id"), devlog); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, err.Error(), nil)
		return
	}

	response.Created(c, gin.H{"ok": true})
}

// mapCatalogError traduz os sentinelas do mediador em códigos HTTP. Usado
// pelos handlers de aluno.
func mapCatalogError(err error) (int, response.ErrorCode) {
	switch {
	case errors.Is(err, catalogsvc.ErrStudentNotFound):
		return http.StatusNotFound, response.ErrNotFound
	case errors.Is(err, catalogsvc.ErrWrongPassword), errors.Is(err, catalogsvc.ErrPasswordTooShort):
		return http.StatusBadRequest, response.ErrBadRequest
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}
