package handler

import (
	"net/http"

	response "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/common"
	catalogsvc "github.com/andrensaraiva/PortalJogosSENAI/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

// DevlogHandler serve o mural de devlogs do portal.
type DevlogHandler struct {
	service *catalogsvc.Service
}

// NewDevlogHandler constrói o handler do mural.
func NewDevlogHandler(service *catalogsvc.Service) *DevlogHandler {
	return &DevlogHandler{service: service}
}

// Feed devolve todos os devlogs de todos os jogos, com jogo e autor
// resolvidos, do mais recente para o mais antigo.
func (h *DevlogHandler) Feed(c *gin.Context) {
	feed := h.service.AllDevlogs()
	if feed == nil {
		feed = []catalogsvc.DevlogView{}
	}
	response.Success(c, http.StatusOK, feed, gin.H{"total": len(feed)})
}
