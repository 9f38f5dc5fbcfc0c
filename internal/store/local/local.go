// Package local implementa o Store de contingência: listas em memória
// semeadas com o catálogo de demonstração. É o backend usado quando o banco
// remoto não está configurado ou não pôde ser alcançado na inicialização.
package local

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/catalogdata"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/store"
)

// Store guarda o estado em memória. Nada é persistido: reiniciar o processo
// volta ao conjunto de demonstração. Os ids novos são derivados do relógio
// ("game-<ms>", "s-<ms>"), com incremento em caso de colisão para que duas
// criações seguidas nunca recebam o mesmo id.
type Store struct {
	mu       sync.RWMutex
	games    []catalog.Game
	students []catalog.Student
	cohorts  []catalog.Cohort
	now      func() time.Time
}

// New cria o store local já semeado com os dados de demonstração.
func New() *Store {
	return &Store{
		games:    catalogdata.Games(),
		students: catalogdata.Students(),
		cohorts:  catalogdata.Cohorts(),
		now:      time.Now,
	}
}

// SetClock troca a fonte de tempo usada na geração de ids. Uso em testes.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// ListGames devolve uma cópia da lista atual de jogos.
func (s *Store) ListGames(_ context.Context) ([]catalog.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.CloneGames(s.games), nil
}

// GetGame busca um jogo pelo id.
func (s *Store) GetGame(_ context.Context, id string) (*catalog.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.games {
		if g.ID == id {
			clone := g.Clone()
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

// CreateGame insere o jogo no início da lista com um id novo.
func (s *Store) CreateGame(_ context.Context, game catalog.Game) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game.ID = s.uniqueID("game-", func(id string) bool { return s.gameIndex(id) >= 0 })
	s.games = append([]catalog.Game{game.Clone()}, s.games...)
	return game.ID, nil
}

// UpdateGame substitui o jogo de mesmo id mantendo a posição na lista.
func (s *Store) UpdateGame(_ context.Context, game catalog.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.gameIndex(game.ID); i >= 0 {
		s.games[i] = game.Clone()
	}
	return nil
}

// DeleteGame filtra o id para fora da lista.
func (s *Store) DeleteGame(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.gameIndex(id); i >= 0 {
		s.games = append(s.games[:i], s.games[i+1:]...)
	}
	return nil
}

// ListStudents devolve uma cópia da lista atual de alunos.
func (s *Store) ListStudents(_ context.Context) ([]catalog.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.CloneStudents(s.students), nil
}

// CreateStudent acrescenta o aluno ao fim da lista com um id novo.
func (s *Store) CreateStudent(_ context.Context, student catalog.Student) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student.ID = s.uniqueID("s-", func(id string) bool { return s.studentIndex(id) >= 0 })
	s.students = append(s.students, student)
	return student.ID, nil
}

// UpdateStudent substitui o aluno de mesmo id.
func (s *Store) UpdateStudent(_ context.Context, student catalog.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.studentIndex(student.ID); i >= 0 {
		s.students[i] = student
	}
	return nil
}

// UpdateStudentPassword troca apenas a senha do aluno indicado.
func (s *Store) UpdateStudentPassword(_ context.Context, id, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.studentIndex(id)
	if i < 0 {
		return store.ErrNotFound
	}
	s.students[i].Password = password
	return nil
}

// DeleteStudent filtra o id para fora da lista.
func (s *Store) DeleteStudent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.studentIndex(id); i >= 0 {
		s.students = append(s.students[:i], s.students[i+1:]...)
	}
	return nil
}

// AppendReview insere a avaliação no início da lista do jogo. Jogo
// inexistente: no-op, sem erro.
func (s *Store) AppendReview(_ context.Context, gameID string, review catalog.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.gameIndex(gameID); i >= 0 {
		s.games[i].ReviewsList = append([]catalog.Review{review}, s.games[i].ReviewsList...)
	}
	return nil
}

// AppendDevlog insere o devlog no início da lista do jogo. Jogo inexistente:
// no-op, sem erro.
func (s *Store) AppendDevlog(_ context.Context, gameID string, devlog catalog.Devlog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.gameIndex(gameID); i >= 0 {
		s.games[i].Devlogs = append([]catalog.Devlog{devlog.Clone()}, s.games[i].Devlogs...)
	}
	return nil
}

// Seed substitui o estado em memória pelos conjuntos recebidos.
func (s *Store) Seed(_ context.Context, games []catalog.Game, students []catalog.Student, cohorts []catalog.Cohort) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = catalog.CloneGames(games)
	s.students = catalog.CloneStudents(students)
	s.cohorts = catalog.CloneCohorts(cohorts)
	return nil
}

// gameIndex devolve a posição do jogo na lista, ou -1. Chamar com o lock.
func (s *Store) gameIndex(id string) int {
	for i, g := range s.games {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// studentIndex devolve a posição do aluno na lista, ou -1. Chamar com o lock.
func (s *Store) studentIndex(id string) int {
	for i, st := range s.students {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID gera um id baseado no relógio e incrementa até não colidir com
// nenhum id existente segundo o predicado. Chamar com o lock.
func (s *Store) uniqueID(prefix string, exists func(string) bool) string {
	ms := s.now().UnixMilli()
	for {
		id := prefix + strconv.FormatInt(ms, 10)
		if !exists(id) {
			return id
		}
		ms++
	}
}
