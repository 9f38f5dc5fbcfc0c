package catalog

import (
	"context"

	domain "github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
)

// AddGame cria um jogo. No backend remoto a escrita é seguida de uma recarga
// completa, para o cache refletir os campos atribuídos pelo servidor; no
// local o registro entra direto no topo do cache. Devolve o id gerado ou erro
// com a mensagem que a interface exibe.
func (s *Service) AddGame(ctx context.Context, game domain.Game) (string, error) {
	log := s.scope("add_game").With("title", game.Title)

	id, err := s.store.CreateGame(ctx, game)
	if err != nil {
		log.Errorw("falha ao adicionar jogo", "error", err)
		s.setLastError(ErrAddGame.Error())
		s.recordOperation("add_game", false)
		return "", ErrAddGame
	}

	if s.remote {
		s.Refresh(ctx)
	} else {
		s.patchGamesFromStore(ctx, log)
	}

	log.Infow("jogo adicionado", "game_id", id)
	s.recordOperation("add_game", true)
	return id, nil
}

// UpdateGame substitui o registro inteiro do jogo, mantendo o id.
func (s *Service) UpdateGame(ctx context.Context, game domain.Game) error {
	log := s.scope("update_game").With("game_id", game.ID)

	if err := s.store.UpdateGame(ctx, game); err != nil {
		log.Errorw("falha ao atualizar jogo", "error", err)
		s.setLastError(ErrUpdateGame.Error())
		s.recordOperation("update_game", false)
		return ErrUpdateGame
	}

	if s.remote {
		s.Refresh(ctx)
	} else {
		s.patchGamesFromStore(ctx, log)
	}

	s.recordOperation("update_game", true)
	return nil
}

// DeleteGame remove o jogo pelo id.
func (s *Service) DeleteGame(ctx context.Context, gameID string) error {
	log := s.scope("delete_game").With("game_id", gameID)

	if err := s.store.DeleteGame(ctx, gameID); err != nil {
		log.Errorw("falha ao deletar jogo", "error", err)
		s.setLastError(ErrDeleteGame.Error())
		s.recordOperation("delete_game", false)
		return ErrDeleteGame
	}

	if s.remote {
		s.Refresh(ctx)
	} else {
		s.patchGamesFromStore(ctx, log)
	}

	s.recordOperation("delete_game", true)
	return nil
}

// GameByID busca um jogo no cache. Devolve nil quando o id não resolve.
func (s *Service) GameByID(id string) *domain.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.games {
		if s.games[i].ID == id {
			game := s.games[i].Clone()
			return &game
		}
	}
	return nil
}

// SubmitReview sintetiza id e data da avaliação e a coloca no topo da lista
// do jogo. Enviar para um id de jogo inexistente não é erro: a operação
// termina em silêncio, comportamento herdado do portal original.
func (s *Service) SubmitReview(ctx context.Context, gameID string, review domain.Review) error {
	log := s.scope("submit_review").With("game_id", gameID)

	if review.Author == "" {
		review.Author = "Anônimo"
	}
	review.ID = s.nowID()
	review.Date = domain.FormatDate(s.timeNow())

	if err := s.store.AppendReview(ctx, gameID, review); err != nil {
		log.Errorw("falha ao enviar review", "error", err)
		s.recordReview(review.IsRecommended, false)
		return ErrSubmitReview
	}

	if s.remote {
		s.Refresh(ctx)
	} else {
		s.patchGamesFromStore(ctx, log)
	}

	s.recordReview(review.IsRecommended, true)
	return nil
}

// AddDevlog sintetiza o id do devlog, preenche a data quando o autor não
// informou e o coloca no topo da lista do jogo. Mesma tolerância do
// SubmitReview para ids inexistentes.
func (s *Service) AddDevlog(ctx context.Context, gameID string, devlog domain.Devlog) error {
	log := s.scope("add_devlog").With("game_id", gameID)

	devlog.ID = s.nowID()
	if devlog.Date == "" {
		devlog.Date = domain.FormatDate(s.timeNow())
	}

	if err := s.store.AppendDevlog(ctx, gameID, devlog); err != nil {
		log.Errorw("falha ao adicionar devlog", "error", err)
		s.recordDevlog(false)
		return ErrAddDevlog
	}

	if s.remote {
		s.Refresh(ctx)
	} else {
		s.patchGamesFromStore(ctx, log)
	}

	s.recordDevlog(true)
	return nil
}

// DevlogView é uma entrada do mural de devlogs: o devlog acrescido do jogo
// dono e do nome do autor já resolvido.
type DevlogView struct {
	domain.Devlog
	GameTitle  string `json:"gameTitle"`
	GameID     string `json:"gameId"`
	AuthorName string `json:"authorName"`
}

// AllDevlogs achata os devlogs de todos os jogos, resolve o autor (ids que
// não resolvem viram "Membro da Equipe") e ordena do mais recente para o mais
// antigo pela data interpretada. Datas fora dos formatos conhecidos viram
// tempo zero e afundam para o fim, limitação herdada do uso de data como
// texto.
func (s *Service) AllDevlogs() []DevlogView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]string, len(s.students))
	for _, student := range s.students {
		byID[student.ID] = student.Name
	}

	var feed []DevlogView
	for _, game := range s.games {
		for _, devlog := range game.Devlogs {
			name, ok := byID[devlog.AuthorID]
			if !ok {
				name = "Membro da Equipe"
			}
			feed = append(feed, DevlogView{
				Devlog:     devlog.Clone(),
				GameTitle:  game.Title,
				GameID:     game.ID,
				AuthorName: name,
			})
		}
	}

	sortDevlogsByDateDesc(feed)
	return feed
}
