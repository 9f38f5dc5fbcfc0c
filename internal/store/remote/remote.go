// Package remote implementa o Store sobre o banco de documentos remoto,
// usando GORM. Cada função corresponde a uma leitura ou escrita em uma das
// coleções nomeadas (games, students, cohorts).
package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store encapsula o acesso ao banco remoto. Compartilha o *gorm.DB criado na
// inicialização do processo.
type Store struct {
	db *gorm.DB
}

// New cria o store remoto.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate cria as três coleções quando ainda não existem.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&gameRow{}, &studentRow{}, &cohortRow{})
}

// ListGames lê a coleção de jogos ordenada por releaseDate decrescente.
// A ordenação é lexical sobre a string formatada — herdada do site, onde o
// índice remoto ordenava pelo mesmo campo texto.
func (s *Store) ListGames(ctx context.Context) ([]catalog.Game, error) {
	var rows []gameRow
	if err := s.db.WithContext(ctx).Order("release_date desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listar jogos: %w", err)
	}

	games := make([]catalog.Game, 0, len(rows))
	for _, row := range rows {
		g, err := toGame(row)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}

// GetGame lê um documento da coleção de jogos.
func (s *Store) GetGame(ctx context.Context, id string) (*catalog.Game, error) {
	var row gameRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("buscar jogo %s: %w", id, err)
	}
	g, err := toGame(row)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGame grava um documento novo com id gerado pelo servidor e devolve o
// id. CreatedAt/UpdatedAt ficam por conta do GORM.
func (s *Store) CreateGame(ctx context.Context, game catalog.Game) (string, error) {
	game.ID = uuid.NewString()
	row, err := toGameRow(game)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("criar jogo: %w", err)
	}
	return row.ID, nil
}

// UpdateGame substitui o documento inteiro identificado por game.ID.
func (s *Store) UpdateGame(ctx context.Context, game catalog.Game) error {
	row, err := toGameRow(game)
	if err != nil {
		return err
	}
	// Select("*") força a escrita também dos campos zerados: a atualização é
	// uma substituição do documento inteiro, não um patch.
	result := s.db.WithContext(ctx).Model(&gameRow{}).Where("id = ?", game.ID).
		Select("*").Omit("id", "created_at").Updates(&row)
	if result.Error != nil {
		return fmt.Errorf("atualizar jogo %s: %w", game.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteGame remove o documento. Id inexistente não é erro.
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&gameRow{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("remover jogo %s: %w", id, err)
	}
	return nil
}

// ListStudents lê a coleção de alunos.
func (s *Store) ListStudents(ctx context.Context) ([]catalog.Student, error) {
	var rows []studentRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listar alunos: %w", err)
	}
	students := make([]catalog.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, toStudent(row))
	}
	return students, nil
}

// CreateStudent grava um aluno novo com id gerado pelo servidor.
func (s *Store) CreateStudent(ctx context.Context, student catalog.Student) (string, error) {
	student.ID = uuid.NewString()
	row := toStudentRow(student)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("criar aluno: %w", err)
	}
	return row.ID, nil
}

// UpdateStudent substitui o documento do aluno.
func (s *Store) UpdateStudent(ctx context.Context, student catalog.Student) error {
	row := toStudentRow(student)
	result := s.db.WithContext(ctx).Model(&studentRow{}).Where("id = ?", student.ID).
		Select("*").Omit("id", "created_at").Updates(&row)
	if result.Error != nil {
		return fmt.Errorf("atualizar aluno %s: %w", student.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// UpdateStudentPassword aplica a atualização parcial da troca de senha.
func (s *Store) UpdateStudentPassword(ctx context.Context, id, password string) error {
	result := s.db.WithContext(ctx).Model(&studentRow{}).Where("id = ?", id).
		Update("password", password)
	if result.Error != nil {
		return fmt.Errorf("atualizar senha do aluno %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteStudent remove o documento do aluno.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&studentRow{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("remover aluno %s: %w", id, err)
	}
	return nil
}

// AppendReview relê o documento do jogo, insere a avaliação no início da
// lista e regrava (read-modify-write, como o adaptador original fazia com o
// documento inteiro). Jogo inexistente: no-op silencioso.
func (s *Store) AppendReview(ctx context.Context, gameID string, review catalog.Review) error {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	game.ReviewsList = append([]catalog.Review{review}, game.ReviewsList...)
	return s.UpdateGame(ctx, *game)
}

// AppendDevlog segue a mesma mecânica do AppendReview para a lista de devlogs.
func (s *Store) AppendDevlog(ctx context.Context, gameID string, devlog catalog.Devlog) error {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	game.Devlogs = append([]catalog.Devlog{devlog}, game.Devlogs...)
	return s.UpdateGame(ctx, *game)
}

// Seed faz upsert por id dos três conjuntos, em uma transação só. Rodar duas
// vezes com os mesmos dados deixa o banco no mesmo estado.
func (s *Store) Seed(ctx context.Context, games []catalog.Game, students []catalog.Student, cohorts []catalog.Cohort) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}

		for _, st := range students {
			row := toStudentRow(st)
			if err := tx.Clauses(upsert).Create(&row).Error; err != nil {
				return fmt.Errorf("semear aluno %s: %w", st.ID, err)
			}
		}
		for _, g := range games {
			row, err := toGameRow(g)
			if err != nil {
				return err
			}
			if err := tx.Clauses(upsert).Create(&row).Error; err != nil {
				return fmt.Errorf("semear jogo %s: %w", g.ID, err)
			}
		}
		for _, c := range cohorts {
			row := toCohortRow(c)
			if err := tx.Clauses(upsert).Create(&row).Error; err != nil {
				return fmt.Errorf("semear turma %s: %w", c.ID, err)
			}
		}
		return nil
	})
}
