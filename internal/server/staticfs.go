package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type hybridStaticFS struct {
	base    http.FileSystem
	uploads http.FileSystem
}

// NewHybridStaticFS monta um sistema de arquivos que serve o bundle do
// frontend e, sob o prefixo uploads/, as imagens enviadas pelo painel.
func NewHybridStaticFS(baseDir, uploadsDir string) http.FileSystem {
	base := gin.Dir(baseDir, true)
	var uploads http.FileSystem
	if uploadsDir != "" {
		uploads = gin.Dir(uploadsDir, true)
	}
	return &hybridStaticFS{base: base, uploads: uploads}
}

func (fs *hybridStaticFS) Open(name string) (http.File, error) {
	clean := strings.TrimPrefix(name, "/")
	if fs.uploads != nil {
		if clean == "uploads" || strings.HasPrefix(clean, "uploads/") {
			sub := strings.TrimPrefix(clean, "uploads")
			sub = strings.TrimPrefix(sub, "/")
			if sub == "" {
				sub = "."
			}
			if file, err := fs.uploads.Open(sub); err == nil {
				return file, nil
			}
		}
	}
	return fs.base.Open(clean)
}
