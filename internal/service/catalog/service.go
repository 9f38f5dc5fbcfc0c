// Package catalog implementa o mediador de estado do portal: a cópia
// autoritativa em processo de jogos, alunos e turmas, o ciclo
// carregar → servir → mutar → recarregar-ou-remendar e a escolha de backend
// (remoto ou local) feita uma única vez na inicialização.
//
// Contrato de falha: nenhuma falha do backend escapa deste pacote. Toda
// operação de escrita captura o erro, registra o detalhe no log, guarda uma
// mensagem genérica voltada ao usuário e devolve um sentinela. A camada de
// apresentação só observa o flag de carregamento, a última mensagem de erro e
// resultados booleanos ou nulos.
package catalog

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/catalogdata"
	domain "github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
	appLogger "github.com/andrensaraiva/PortalJogosSENAI/internal/infra/logger"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/metrics"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/prefs"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/service/auth"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Temas aceitos pela interface.
const (
	ThemePorto = "porto"
	ThemeRetro = "retro"
)

// Mensagens exibidas ao usuário quando uma operação falha. Os textos são os
// mesmos que o portal sempre mostrou.
var (
	ErrLoadFailed       = errors.New("Erro ao carregar dados. Usando modo offline.")
	ErrAddGame          = errors.New("Erro ao adicionar jogo.")
	ErrUpdateGame       = errors.New("Erro ao atualizar jogo.")
	ErrDeleteGame       = errors.New("Erro ao deletar jogo.")
	ErrRegisterStudent  = errors.New("Erro ao registrar aluno.")
	ErrUpdateStudent    = errors.New("Erro ao atualizar aluno.")
	ErrDeleteStudent    = errors.New("Erro ao deletar aluno.")
	ErrStudentNotFound  = errors.New("Aluno não encontrado.")
	ErrWrongPassword    = errors.New("Senha atual incorreta.")
	ErrPasswordTooShort = errors.New("A nova senha deve ter pelo menos 3 caracteres.")
	ErrChangePassword   = errors.New("Erro ao alterar senha. Tente novamente.")
	ErrSubmitReview     = errors.New("Erro ao enviar review.")
	ErrAddDevlog        = errors.New("Erro ao adicionar devlog.")
)

// State é a fotografia que o mediador entrega à camada de apresentação. As
// fatias são cópias profundas: quem recebe pode ler à vontade sem tocar no
// cache.
type State struct {
	Games     []domain.Game    `json:"games"`
	Students  []domain.Student `json:"students"`
	Cohorts   []domain.Cohort  `json:"cohorts"`
	Loading   bool             `json:"loading"`
	LastError string           `json:"error,omitempty"`
	Theme     string           `json:"theme"`
	IsAdmin   bool             `json:"isAdmin"`
}

// Service é o mediador. O backend por trás de store.Store foi decidido na
// inicialização e não muda durante a vida do processo.
type Service struct {
	store   store.Store
	backend string // "remote" ou "local", apenas para logs e métricas
	remote  bool
	prefs   *prefs.Store
	auth    auth.Authenticator
	logger  *zap.SugaredLogger

	mu        sync.RWMutex
	games     []domain.Game
	students  []domain.Student
	cohorts   []domain.Cohort
	loading   bool
	lastError string
	theme     string
	isAdmin   bool

	now         func() time.Time
	unsubscribe func()
}

// New monta o mediador. remote indica qual implementação de store.Store foi
// injetada; o tema e a sessão persistidos são restaurados aqui, antes da
// primeira carga.
func New(st store.Store, remote bool, prefStore *prefs.Store, authenticator auth.Authenticator) *Service {
	backend := "local"
	if remote {
		backend = "remote"
	}

	s := &Service{
		store:   st,
		backend: backend,
		remote:  remote,
		prefs:   prefStore,
		auth:    authenticator,
		logger:  appLogger.S().With("component", "catalog.service", "backend", backend),
		cohorts: catalogdata.Cohorts(),
		theme:   ThemePorto,
		now:     time.Now,
	}

	if prefStore != nil {
		if saved, ok := prefStore.Get(prefs.KeyTheme); ok && (saved == ThemePorto || saved == ThemeRetro) {
			s.theme = saved
		}
	}

	if authenticator != nil {
		s.isAdmin = authenticator.Current().Admin
		s.unsubscribe = authenticator.Subscribe(func(session auth.Session) {
			s.mu.Lock()
			s.isAdmin = session.Admin
			s.mu.Unlock()
		})
	}

	return s
}

// Close cancela a assinatura de sessão. O mediador em si vive até o fim do
// processo.
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// SetClock troca a fonte de tempo nos testes.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// timeNow lê a fonte de tempo sob o lock do cache.
func (s *Service) timeNow() time.Time {
	s.mu.RLock()
	now := s.now
	s.mu.RUnlock()
	return now()
}

// Backend informa qual backend foi escolhido na inicialização.
func (s *Service) Backend() string {
	return s.backend
}

// Refresh recarrega o cache inteiro a partir do backend.
//
// No backend remoto as duas leituras (jogos e alunos) correm em paralelo e o
// cache só é trocado depois que ambas terminam: nenhum observador vê jogos
// novos com alunos velhos. Lista de jogos vazia no remoto é tratada como
// partida a frio e recebe o conjunto de demonstração. Qualquer falha cai no
// conjunto de demonstração com a mensagem de modo offline registrada.
//
// Não há timeout próprio aqui: uma chamada remota pendurada mantém o flag de
// carregamento ligado. Limitação conhecida, herdada do comportamento
// original.
func (s *Service) Refresh(ctx context.Context) {
	log := s.scope("refresh")
	started := s.timeNow()

	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	var (
		games    []domain.Game
		students []domain.Student
		loadErr  string
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		games, err = s.store.ListGames(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		students, err = s.store.ListStudents(egCtx)
		return err
	})

	if err := eg.Wait(); err != nil {
		log.Errorw("falha ao carregar dados", "error", err)
		games = catalogdata.Games()
		students = catalogdata.Students()
		loadErr = ErrLoadFailed.Error()
	} else if s.remote && len(games) == 0 {
		// Partida a frio: banco configurado porém vazio.
		log.Infow("backend remoto vazio, servindo dados de demonstração")
		games = catalogdata.Games()
		students = catalogdata.Students()
	}

	s.mu.Lock()
	s.games = games
	s.students = students
	s.loading = false
	s.lastError = loadErr
	s.mu.Unlock()

	metrics.ObserveRefresh(s.backend, s.timeNow().Sub(started))
	log.Infow("cache atualizado", "games", len(games), "students", len(students))
}

// State devolve uma fotografia consistente do cache.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Games:     domain.CloneGames(s.games),
		Students:  domain.CloneStudents(s.students),
		Cohorts:   domain.CloneCohorts(s.cohorts),
		Loading:   s.loading,
		LastError: s.lastError,
		Theme:     s.theme,
		IsAdmin:   s.isAdmin,
	}
}

// Theme devolve o tema corrente.
func (s *Service) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme alterna entre os dois temas e persiste a escolha.
func (s *Service) ToggleTheme() string {
	s.mu.Lock()
	if s.theme == ThemePorto {
		s.theme = ThemeRetro
	} else {
		s.theme = ThemePorto
	}
	theme := s.theme
	s.mu.Unlock()

	if s.prefs != nil {
		if err := s.prefs.Set(prefs.KeyTheme, theme); err != nil {
			s.scope("toggle_theme").Warnw("falha ao persistir tema", "error", err)
		}
	}
	return theme
}

// IsAdmin informa se há sessão administrativa ativa.
func (s *Service) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdmin
}

// Seed grava o conjunto de demonstração no backend remoto (upsert idempotente
// por id) e recarrega. No backend local não faz nada: o local já nasce
// semeado.
func (s *Service) Seed(ctx context.Context) error {
	if !s.remote {
		return nil
	}
	log := s.scope("seed")
	if err := s.store.Seed(ctx, catalogdata.Games(), catalogdata.Students(), catalogdata.Cohorts()); err != nil {
		log.Errorw("falha ao semear banco", "error", err)
		return ErrLoadFailed
	}
	log.Infow("banco semeado com dados de demonstração")
	s.Refresh(ctx)
	return nil
}

// setLastError registra a mensagem que a interface exibirá.
func (s *Service) setLastError(message string) {
	s.mu.Lock()
	s.lastError = message
	s.mu.Unlock()
}

// nowID sintetiza identificadores no padrão original: milissegundos desde a
// época, em texto.
func (s *Service) nowID() string {
	return strconv.FormatInt(s.timeNow().UnixMilli(), 10)
}

func (s *Service) scope(operation string) *zap.SugaredLogger {
	return s.logger.With("operation", operation)
}
