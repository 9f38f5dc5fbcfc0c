// Package store define o contrato único de acesso a dados do portal.
//
// O site original espalhava um if useFirebase {...} else {...} por todas as
// operações do mediador. Aqui o desvio vira uma interface só: o mediador fala
// com um Store e nunca sabe se por trás há o banco remoto ou a lista de
// demonstração em memória. A escolha entre os dois acontece uma única vez, na
// inicialização do processo.
package store

import (
	"context"
	"errors"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
)

// ErrNotFound indica que o documento pedido não existe na coleção.
var ErrNotFound = errors.New("registro não encontrado")

// Store é a capacidade de leitura e escrita sobre as coleções do portal
// (games, students, cohorts). Toda operação pode falhar por rede ou permissão;
// a falha sobe como erro e é o mediador quem decide o que mostrar ao usuário.
type Store interface {
	// ListGames devolve todos os jogos. No backend remoto a ordenação segue o
	// campo releaseDate em ordem decrescente — ordenação lexical sobre uma
	// string formatada, que não reflete com confiança a ordem de lançamento.
	ListGames(ctx context.Context) ([]catalog.Game, error)
	// GetGame busca um jogo pelo id; ErrNotFound quando não existe.
	GetGame(ctx context.Context, id string) (*catalog.Game, error)
	// CreateGame grava um jogo novo ignorando o id recebido e devolve o id
	// atribuído pelo backend.
	CreateGame(ctx context.Context, game catalog.Game) (string, error)
	// UpdateGame substitui o documento inteiro do jogo identificado por game.ID.
	UpdateGame(ctx context.Context, game catalog.Game) error
	// DeleteGame remove o jogo pelo id. Remover um id inexistente não é erro.
	DeleteGame(ctx context.Context, id string) error

	ListStudents(ctx context.Context) ([]catalog.Student, error)
	CreateStudent(ctx context.Context, student catalog.Student) (string, error)
	UpdateStudent(ctx context.Context, student catalog.Student) error
	// UpdateStudentPassword aplica a atualização parcial usada pela troca de
	// senha, sem reescrever o resto do documento do aluno.
	UpdateStudentPassword(ctx context.Context, id, password string) error
	DeleteStudent(ctx context.Context, id string) error

	// AppendReview insere a avaliação no início da lista do jogo. Quando o id
	// do jogo não resolve, a operação é um no-op silencioso — comportamento
	// herdado do site e coberto por teste.
	AppendReview(ctx context.Context, gameID string, review catalog.Review) error
	// AppendDevlog insere o devlog no início da lista do jogo, com a mesma
	// semântica de no-op do AppendReview.
	AppendDevlog(ctx context.Context, gameID string, devlog catalog.Devlog) error

	// Seed faz upsert idempotente (por id) dos três conjuntos de dados.
	Seed(ctx context.Context, games []catalog.Game, students []catalog.Student, cohorts []catalog.Cohort) error
}
