package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/handler"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions reúne os handlers e guardas que o roteador monta. Campos nil
// simplesmente não registram as rotas correspondentes.
type RouterOptions struct {
	AuthHandler    *handler.AuthHandler
	GameHandler    *handler.GameHandler
	StudentHandler *handler.StudentHandler
	DevlogHandler  *handler.DevlogHandler
	StateHandler   *handler.StateHandler
	UploadHandler  *handler.UploadHandler
	AdminMW        middleware.Authenticator
	SubmitGuard    *middleware.SubmitGuardMiddleware
	StaticFS       http.FileSystem
	UploadsDir     string
}

// NewRouter monta o Gin Engine do portal: middlewares comuns, estáticos,
// métricas e a árvore de rotas da API.
func NewRouter(opts RouterOptions) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  false,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
		AllowOriginFunc: func(origin string) bool {
			if origin == "" {
				return false
			}
			if origin == "null" {
				return true
			}
			if strings.HasPrefix(origin, "http://localhost:") {
				return true
			}
			if strings.HasPrefix(origin, "http://127.0.0.1:") {
				return true
			}
			return false
		},
	}))
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: gin.LogFormatter(func(params gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s\" %d %s\n",
				params.ClientIP,
				params.TimeStamp.Format(time.RFC3339),
				params.Method,
				params.Path,
				params.StatusCode,
				params.Latency,
			)
		}),
	}))

	if opts.StaticFS != nil {
		r.StaticFS("/static", opts.StaticFS)
	} else {
		r.Static("/static", "./public")
	}
	if opts.UploadsDir != "" {
		// Espelho público do bucket local de imagens.
		r.Static("/uploads", opts.UploadsDir)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		if opts.AuthHandler != nil {
			authGroup := api.Group("/auth")
			authGroup.GET("/captcha", opts.AuthHandler.Captcha)
			authGroup.POST("/login", opts.AuthHandler.Login)
			authGroup.POST("/refresh", opts.AuthHandler.Refresh)
			authGroup.POST("/logout", opts.AuthHandler.Logout)
			authGroup.GET("/session", opts.AuthHandler.Session)
		}

		if opts.StateHandler != nil {
			api.GET("/state", opts.StateHandler.State)
			api.GET("/theme", opts.StateHandler.Theme)
			api.POST("/theme/toggle", opts.StateHandler.ToggleTheme)
		}

		if opts.GameHandler != nil {
			games := api.Group("/games")
			games.GET("", opts.GameHandler.List)
			games.GET("/:id", opts.GameHandler.Get)

			// Envio de avaliação e devlog é público, mas passa pelo guarda
			// de excesso por IP.
			submit := games.Group("")
			if opts.SubmitGuard != nil {
				submit.Use(opts.SubmitGuard.Handle())
			}
			submit.POST("/:id/reviews", opts.GameHandler.SubmitReview)
			submit.POST("/:id/devlogs", opts.GameHandler.AddDevlog)
		}

		if opts.StudentHandler != nil {
			students := api.Group("/students")
			students.GET("", opts.StudentHandler.List)
			students.POST("", opts.StudentHandler.Register)
			students.POST("/login", opts.StudentHandler.Login)
			students.POST("/:id/password", opts.StudentHandler.ChangePassword)
		}

		if opts.DevlogHandler != nil {
			api.GET("/devlogs", opts.DevlogHandler.Feed)
		}

		// Rotas administrativas: escrita no catálogo, cadastro de alunos com
		// senha visível, upload de imagens, recarga e semeadura.
		admin := api.Group("/admin")
		if opts.AdminMW != nil {
			admin.Use(opts.AdminMW.Handle())
		}
		if opts.GameHandler != nil {
			admin.POST("/games", opts.GameHandler.Create)
			admin.PUT("/games/:id", opts.GameHandler.Update)
			admin.DELETE("/games/:id", opts.GameHandler.Delete)
		}
		if opts.StudentHandler != nil {
			admin.GET("/students", opts.StudentHandler.AdminList)
			admin.PUT("/students/:id", opts.StudentHandler.Update)
			admin.DELETE("/students/:id", opts.StudentHandler.Delete)
		}
		if opts.UploadHandler != nil {
			admin.POST("/uploads", opts.UploadHandler.UploadImage)
		}
		if opts.StateHandler != nil {
			admin.POST("/refresh", opts.StateHandler.Refresh)
			admin.POST("/seed", opts.StateHandler.Seed)
		}
	}

	return r
}
