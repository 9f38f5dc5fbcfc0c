package handler

import (
	"net/http"

	domain "github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
	response "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/common"
	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	catalogsvc "github.com/andrensaraiva/PortalJogosSENAI/internal/service/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StudentHandler expõe o cadastro de alunos por HTTP.
type StudentHandler struct {
	service *catalogsvc.Service
	logger  *zap.SugaredLogger
}

// NewStudentHandler constrói o handler de alunos.
func NewStudentHandler(service *catalogsvc.Service) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  appLogger.S().With("component", "student.handler"),
	}
}

func (h *StudentHandler) scope(operation string) *zap.SugaredLogger {
	return h.logger.With("operation", operation)
}

// List devolve os alunos sem o campo de senha. Rota pública, usada para
// montar as fichas das equipes.
func (h *StudentHandler) List(c *gin.Context) {
	state := h.service.State()
	students := make([]domain.Student, 0, len(state.Students))
	for _, student := range state.Students {
		student.Password = ""
		students = append(students, student)
	}
	response.Success(c, http.StatusOK, students, nil)
}

// AdminList devolve os alunos com as senhas em texto puro, exatamente como a
// tabela do painel sempre exibiu. Rota administrativa; o texto puro vem do
// cadastro herdado das turmas e não é um controle de segurança.
func (h *StudentHandler) AdminList(c *gin.Context) {
	state := h.service.State()
	response.Success(c, http.StatusOK, state.Students, nil)
}

// Register cadastra um aluno, pelo painel ou pelo autocadastro do formulário
// de submissão.
func (h *StudentHandler) Register(c *gin.Context) {
	log := h.scope("register")

	var student domain.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		log.Warnw("corpo da requisição inválido", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}
	student.ID = ""

	id, err := h.service.RegisterStudent(c.Request.Context(), student)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, err.Error(), nil)
		return
	}

	log.Infow("aluno registrado", "student_id", id)
	response.Created(c, gin.H{"id": id})
}

// Update substitui o cadastro de um aluno. Rota administrativa.
func (h *StudentHandler) Update(c *gin.Context) {
	log := h.scope("update").With("student_id", c.Param("id"))

	var student domain.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		log.Warnw("corpo da requisição inválido", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}
	student.ID = c.Param("id")

	if err := h.service.UpdateStudent(c.Request.Context(), student); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": student.ID}, nil)
}

// Delete remove um aluno. Rota administrativa.
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, err.Error(), nil)
		return
	}
	response.NoContent(c)
}

// ChangePasswordRequest é o corpo da troca de senha do aluno.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword troca a senha do aluno validando a senha atual. O corpo da
// resposta de erro carrega o motivo exato, que o formulário exibe ao aluno.
func (h *StudentHandler) ChangePassword(c *gin.Context) {
	log := h.scope("change_password").With("student_id", c.Param("id"))

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnw("corpo da requisição inválido", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	if err := h.service.ChangeStudentPassword(c.Request.Context(), c.Param("id"), req.CurrentPassword, req.NewPassword); err != nil {
		status, code := mapCatalogError(err)
		response.Fail(c, status, code, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true}, nil)
}

// LoginRequest é o corpo do acesso de aluno ao formulário de submissão.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login confere usuário e senha contra o cadastro em memória. Credenciais
// erradas devolvem 401 sem distinguir usuário de senha.
func (h *StudentHandler) Login(c *gin.Context) {
	log := h.scope("login")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnw("corpo da requisição inválido", "error", err)
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	student := h.service.LoginStudent(req.Username, req.Password)
	if student == nil {
		log.Warnw("acesso de aluno recusado", "username", req.Username)
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials, "usuário ou senha incorretos", nil)
		return
	}

	student.Password = ""
	log.Infow("acesso de aluno aceito", "student_id", student.ID)
	response.Success(c, http.StatusOK, student, nil)
}
