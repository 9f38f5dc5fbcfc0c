// Package response padroniza o envelope JSON devolvido por todos os
// handlers do portal.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorCode identifica a classe de falha para o cliente.
type ErrorCode string

const (
	ErrBadRequest         ErrorCode = "BAD_REQUEST"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrTooManyRequests    ErrorCode = "TOO_MANY_REQUESTS"
	ErrInternal           ErrorCode = "INTERNAL_ERROR"
	ErrInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCaptchaInvalid     ErrorCode = "CAPTCHA_INVALID"
	ErrCaptchaRequired    ErrorCode = "CAPTCHA_REQUIRED"
)

// Error descreve a parte de erro do envelope.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
}

// Response é a estrutura comum de todas as respostas da API.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

// Success devolve um resultado de sucesso no formato padrão.
func Success(c *gin.Context, status int, data any, meta any) {
	if status == 0 {
		status = http.StatusOK
	}

	resp := Response{
		Success: true,
		Data:    data,
	}
	if meta != nil {
		resp.Meta = meta
	}

	c.JSON(status, resp)
}

// Created devolve 201 Created com o corpo de sucesso padrão.
func Created(c *gin.Context, data any) {
	Success(c, http.StatusCreated, data, nil)
}

// NoContent devolve 204 sem corpo.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail devolve um erro no formato padrão.
func Fail(c *gin.Context, status int, code ErrorCode, message string, details any) {
	if status == 0 {
		status = http.StatusInternalServerError
	}

	resp := Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
	if details != nil {
		resp.Error.Details = details
	}

	c.JSON(status, resp)
}
