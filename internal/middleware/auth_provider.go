package middleware

import "github.com/gin-gonic/gin"

// Authenticator abstrai o guarda das rotas administrativas: qualquer struct
// com Handle() pode ser plugada no roteador, o que permite trocar o guarda
// JWT pelo guarda de sessão local conforme o modo de execução.
type Authenticator interface {
	Handle() gin.HandlerFunc
}
