package catalog

import (
	"context"
	"sort"

	domain "github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/metrics"

	"go.uber.org/zap"
)

// patchGamesFromStore sincroniza só a lista de jogos do cache com o backend
// local. O store local já aplicou a mutação em memória; aqui o cache passa a
// enxergá-la sem uma recarga completa.
func (s *Service) patchGamesFromStore(ctx context.Context, log *zap.SugaredLogger) {
	games, err := s.store.ListGames(ctx)
	if err != nil {
		log.Errorw("falha ao sincronizar jogos do cache", "error", err)
		return
	}
	s.mu.Lock()
	s.games = games
	s.mu.Unlock()
}

// patchStudentsFromStore é o equivalente de patchGamesFromStore para a lista
// de alunos.
func (s *Service) patchStudentsFromStore(ctx context.Context, log *zap.SugaredLogger) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		log.Errorw("falha ao sincronizar alunos do cache", "error", err)
		return
	}
	s.mu.Lock()
	s.students = students
	s.mu.Unlock()
}

func (s *Service) recordOperation(operation string, success bool) {
	metrics.RecordCatalogOperation(operation, success)
}

func (s *Service) recordReview(recommended, success bool) {
	metrics.RecordCatalogOperation("submit_review", success)
	if success {
		metrics.RecordReviewSubmitted(recommended)
	}
}

func (s *Service) recordDevlog(success bool) {
	metrics.RecordCatalogOperation("add_devlog", success)
	metrics.RecordDevlogSubmitted(success)
}

// sortDevlogsByDateDesc ordena o mural do mais recente para o mais antigo
// pela data interpretada de cada devlog.
func sortDevlogsByDateDesc(feed []DevlogView) {
	sort.SliceStable(feed, func(i, j int) bool {
		return domain.ParseDate(feed[i].Date).After(domain.ParseDate(feed[j].Date))
	})
}
