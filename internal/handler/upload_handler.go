package handler

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	response "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/common"
	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/objstore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadHandler recebe as imagens do painel (capa, captura de tela, mídia de
// devlog) e as grava no bucket de objetos, devolvendo a URL pública.
type UploadHandler struct {
	store  *objstore.Store
	logger *zap.SugaredLogger
}

// NewUploadHandler constrói o handler de upload.
func NewUploadHandler(store *objstore.Store) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: appLogger.S().With("component", "upload.handler"),
	}
}

// UploadImage trata o envio de uma imagem:
//  1. valida presença, tamanho (<=5MB) e formato;
//  2. monta a chave games/{gameId}/{kind}_{timestamp}.{ext};
//  3. grava no bucket e devolve a URL pública.
//
// Rota administrativa: fica atrás do guarda de admin no roteador.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	log := h.scope("upload_image")

	gameID := strings.TrimSpace(c.PostForm("gameId"))
	if gameID == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "gameId é obrigatório", nil)
		return
	}

	kind := strings.TrimSpace(c.PostForm("kind"))
	if kind == "" {
		kind = objstore.KindScreenshot
	}

	file, err := c.FormFile("image")
	if err != nil {
		log.Warnw("arquivo de imagem ausente", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "arquivo de imagem é obrigatório", nil)
		return
	}

	if file.Size == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "arquivo de imagem vazio", nil)
		return
	}

	if file.Size > 5*1024*1024 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "arquivo de imagem grande demais", nil)
		return
	}

	if !isSupportedImage(file) {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "formato de imagem não suportado", nil)
		return
	}

	key, err := objstore.Key(gameID, kind, filepath.Ext(file.Filename), time.Now())
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "tipo de imagem desconhecido", gin.H{"kind": kind})
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Errorw("falha ao abrir arquivo enviado", "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "falha ao ler o arquivo", nil)
		return
	}
	defer src.Close()

	url, err := h.store.Put(c.Request.Context(), key, src, file.Header.Get("Content-Type"))
	if err != nil {
		log.Errorw("falha ao gravar imagem", "error", err, "key", key)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "falha ao gravar a imagem", nil)
		return
	}

	log.Infow("imagem gravada", "key", key, "game_id", gameID)
	response.Created(c, gin.H{"url": url, "key": key})
}

// isSupportedImage decide pelo Content-Type se o arquivo é um formato de
// imagem aceito.
func isSupportedImage(fileHeader *multipart.FileHeader) bool {
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"):
		return true
	case strings.HasPrefix(contentType, "image/png"):
		return true
	case strings.HasPrefix(contentType, "image/gif"):
		return true
	case strings.HasPrefix(contentType, "image/webp"):
		return true
	default:
		return false
	}
}

func (h *UploadHandler) scope(operation string) *zap.SugaredLogger {
	return h.logger.With("operation", operation)
}
