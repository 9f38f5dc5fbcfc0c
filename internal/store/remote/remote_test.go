package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/catalogdata"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("abrir sqlite em memória: %v", err)
	}
	s := New(db)
	if err := s.AutoMigrate(); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return s
}

func seedDemo(t *testing.T, s *Store) {
	t.Helper()
	if err := s.Seed(context.Background(), catalogdata.Games(), catalogdata.Students(), catalogdata.Cohorts()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedDemo(t, s)
	seedDemo(t, s)

	games, err := s.ListGames(ctx)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("semear duas vezes deveria manter 3 jogos, veio %d", len(games))
	}
	students, err := s.ListStudents(ctx)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(students) != 4 {
		t.Fatalf("semear duas vezes deveria manter 4 alunos, veio %d", len(students))
	}
}

func TestGameRoundTripPreservesNestedFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := catalog.Game{
		Title:            "Jogo Completo",
		ShortDescription: "curta",
		FullDescription:  "<p>longa</p>",
		Screenshots:      []string{"a.png", "b.png"},
		DownloadLinks:    catalog.DownloadLinks{Windows: "#", Linux: "#"},
		TeamIDs:          []string{"s1", "s2"},
		Devlogs: []catalog.Devlog{
			{ID: "d1", Date: "10 Jun, 2024", AuthorID: "s1", Title: "Física", Tags: []string{"Code"}},
		},
		ReleaseDate:   "15 Jun, 2024",
		Tags:          []string{"Puzzle", "Indie"},
		ReviewSummary: "Positivas",
		ReviewsList: []catalog.Review{
			{ID: "r1", Author: "Alguém", Content: "bom", IsRecommended: true, Date: "16 Jun, 2024"},
		},
		SystemRequirements: catalog.SystemRequirements{OS: "Windows 10", Memory: "4 GB"},
		CohortID:           "2024-1-A",
	}

	id, err := s.CreateGame(ctx, in)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if id == "" {
		t.Fatal("CreateGame deveria devolver o id atribuído")
	}

	got, err := s.GetGame(ctx, id)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if got.Title != in.Title || got.ReleaseDate != in.ReleaseDate || got.CohortID != in.CohortID {
		t.Fatalf("campos planos divergem: %+v", got)
	}
	if len(got.Screenshots) != 2 || got.Screenshots[1] != "b.png" {
		t.Fatalf("screenshots divergem: %+v", got.Screenshots)
	}
	if got.DownloadLinks.Windows != "#" || got.DownloadLinks.Linux != "#" {
		t.Fatalf("downloadLinks divergem: %+v", got.DownloadLinks)
	}
	if len(got.Devlogs) != 1 || got.Devlogs[0].Title != "Física" {
		t.Fatalf("devlogs divergem: %+v", got.Devlogs)
	}
	if len(got.ReviewsList) != 1 || !got.ReviewsList[0].IsRecommended {
		t.Fatalf("avaliações divergem: %+v", got.ReviewsList)
	}
	if got.SystemRequirements.OS != "Windows 10" {
		t.Fatalf("requisitos divergem: %+v", got.SystemRequirements)
	}
}

func TestCreateGameIgnoresProvidedID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateGame(ctx, catalog.Game{ID: "id-do-cliente", Title: "X"})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if id == "id-do-cliente" {
		t.Fatal("o id deveria ser atribuído pelo servidor, não aceito do cliente")
	}
}

func TestListGamesOrdersByReleaseDateDesc(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A ordenação é lexical sobre a string formatada; o teste usa datas cuja
	// ordem lexical é conhecida.
	if err := s.Seed(ctx, []catalog.Game{
		{ID: "a", Title: "A", ReleaseDate: "05 Dez, 2023"},
		{ID: "b", Title: "B", ReleaseDate: "20 Nov, 2023"},
		{ID: "c", Title: "C", ReleaseDate: "15 Jun, 2024"},
	}, nil, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	games, err := s.ListGames(ctx)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	want := []string{"b", "c", "a"} // "20..." > "15..." > "05..." na ordem lexical
	for i, id := range want {
		if games[i].ID != id {
			t.Fatalf("ordem = %v, want %v", ids(games), want)
		}
	}
}

func ids(games []catalog.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.ID
	}
	return out
}

func TestUpdateGameReplacesWholeDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedDemo(t, s)

	game, err := s.GetGame(ctx, "cyber-port-vix")
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	game.Title = "Cyber Port VIX 2"
	game.VideoURL = "" // a substituição apaga campos zerados

	if err := s.UpdateGame(ctx, *game); err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}

	got, _ := s.GetGame(ctx, "cyber-port-vix")
	if got.Title != "Cyber Port VIX 2" {
		t.Fatalf("título não foi atualizado: %q", got.Title)
	}
	if got.VideoURL != "" {
		t.Fatalf("campo zerado deveria ser apagado na substituição, veio %q", got.VideoURL)
	}
}

func TestUpdateGameUnknownIDReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateGame(context.Background(), catalog.Game{ID: "nao-existe", Title: "X"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("esperava ErrNotFound, veio %v", err)
	}
}

func TestDeleteGameUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteGame(context.Background(), "nao-existe"); err != nil {
		t.Fatalf("remover id inexistente não deveria falhar: %v", err)
	}
}

func TestAppendReviewPrependsAndPersists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedDemo(t, s)

	review := catalog.Review{ID: "r-novo", Author: "Visitante", IsRecommended: true, Date: "01 Jul, 2024"}
	if err := s.AppendReview(ctx, "cyber-port-vix", review); err != nil {
		t.Fatalf("AppendReview: %v", err)
	}

	game, _ := s.GetGame(ctx, "cyber-port-vix")
	if len(game.ReviewsList) != 3 || game.ReviewsList[0].ID != "r-novo" {
		t.Fatalf("avaliação não entrou no topo: %+v", game.ReviewsList)
	}
}

func TestAppendReviewUnknownGameIsSilentNoop(t *testing.T) {
	s := newTestStore(t)
	if err := s.AppendReview(context.Background(), "nao-existe", catalog.Review{ID: "r"}); err != nil {
		t.Fatalf("append em jogo inexistente não deveria falhar: %v", err)
	}
}

func TestStudentLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateStudent(ctx, catalog.Student{Name: "Novo", Username: "novo", Password: "123"})
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	if err := s.UpdateStudent(ctx, catalog.Student{ID: id, Name: "Renomeado", Username: "novo", Password: "123"}); err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}
	if err := s.UpdateStudentPassword(ctx, id, "456"); err != nil {
		t.Fatalf("UpdateStudentPassword: %v", err)
	}

	students, _ := s.ListStudents(ctx)
	var found *catalog.Student
	for i := range students {
		if students[i].ID == id {
			found = &students[i]
		}
	}
	if found == nil {
		t.Fatal("aluno criado não apareceu na listagem")
	}
	if found.Name != "Renomeado" || found.Password != "456" {
		t.Fatalf("atualizações não persistiram: %+v", found)
	}

	if err := s.DeleteStudent(ctx, id); err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}
	if err := s.UpdateStudentPassword(ctx, id, "x"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("esperava ErrNotFound após remoção, veio %v", err)
	}
}
