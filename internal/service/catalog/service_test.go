package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	domain "github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/infra/prefs"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/service/auth"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/store"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/store/local"
)

// failingStore devolve erro em toda operação, simulando o backend remoto
// inalcançável.
type failingStore struct{}

var errDown = errors.New("backend fora do ar")

func (failingStore) ListGames(context.Context) ([]domain.Game, error)         { return nil, errDown }
func (failingStore) GetGame(context.Context, string) (*domain.Game, error)    { return nil, errDown }
func (failingStore) CreateGame(context.Context, domain.Game) (string, error)  { return "", errDown }
func (failingStore) UpdateGame(context.Context, domain.Game) error            { return errDown }
func (failingStore) DeleteGame(context.Context, string) error                 { return errDown }
func (failingStore) ListStudents(context.Context) ([]domain.Student, error)   { return nil, errDown }
func (failingStore) CreateStudent(context.Context, domain.Student) (string, error) {
	return "", errDown
}
func (failingStore) UpdateStudent(context.Context, domain.Student) error          { return errDown }
func (failingStore) UpdateStudentPassword(context.Context, string, string) error  { return errDown }
func (failingStore) DeleteStudent(context.Context, string) error                  { return errDown }
func (failingStore) AppendReview(context.Context, string, domain.Review) error    { return errDown }
func (failingStore) AppendDevlog(context.Context, string, domain.Devlog) error    { return errDown }
func (failingStore) Seed(context.Context, []domain.Game, []domain.Student, []domain.Cohort) error {
	return errDown
}

// emptyStore simula o banco remoto configurado porém vazio (partida a frio).
type emptyStore struct{ failingStore }

func (emptyStore) ListGames(context.Context) ([]domain.Game, error)       { return nil, nil }
func (emptyStore) ListStudents(context.Context) ([]domain.Student, error) { return nil, nil }

var _ store.Store = failingStore{}

// refreshCycleKey identifica o ciclo de recarga no contexto; as duas leituras
// de um mesmo Refresh compartilham o contexto e recebem o mesmo rótulo.
type refreshCycleKey struct{}

// pairedStore devolve jogos e alunos rotulados com o ciclo do contexto, para
// conferir que o cache nunca mistura listas de ciclos diferentes.
type pairedStore struct{ failingStore }

func (pairedStore) ListGames(ctx context.Context) ([]domain.Game, error) {
	cycle, _ := ctx.Value(refreshCycleKey{}).(string)
	return []domain.Game{{ID: "g-" + cycle, Title: cycle}}, nil
}

func (pairedStore) ListStudents(ctx context.Context) ([]domain.Student, error) {
	cycle, _ := ctx.Value(refreshCycleKey{}).(string)
	return []domain.Student{{ID: "s-" + cycle, Name: cycle}}, nil
}

func newLocalService(t *testing.T) (*Service, *local.Store) {
	t.Helper()
	st := local.New()
	svc := New(st, false, nil, nil)
	t.Cleanup(svc.Close)
	svc.Refresh(context.Background())
	return svc, st
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestRefreshLoadsDemoCatalog(t *testing.T) {
	svc, _ := newLocalService(t)

	state := svc.State()
	if len(state.Games) != 3 || len(state.Students) != 4 || len(state.Cohorts) != 4 {
		t.Fatalf("estado inicial inesperado: %d jogos, %d alunos, %d turmas",
			len(state.Games), len(state.Students), len(state.Cohorts))
	}
	if state.Loading {
		t.Fatal("loading deveria estar desligado após o refresh")
	}
	if state.LastError != "" {
		t.Fatalf("não deveria haver erro, veio %q", state.LastError)
	}
}

func TestRefreshFailureFallsBackToDemoWithOfflineMessage(t *testing.T) {
	svc := New(failingStore{}, true, nil, nil)
	t.Cleanup(svc.Close)

	svc.Refresh(context.Background())

	state := svc.State()
	if len(state.Games) != 3 {
		t.Fatalf("a falha deveria servir o catálogo de demonstração, veio %d jogos", len(state.Games))
	}
	if state.LastError != "Erro ao carregar dados. Usando modo offline." {
		t.Fatalf("mensagem de erro = %q", state.LastError)
	}
	if state.Loading {
		t.Fatal("loading deveria desligar mesmo em falha")
	}
}

func TestRefreshColdStartServesDemoWithoutError(t *testing.T) {
	svc := New(emptyStore{}, true, nil, nil)
	t.Cleanup(svc.Close)

	svc.Refresh(context.Background())

	state := svc.State()
	if len(state.Games) != 3 || len(state.Students) != 4 {
		t.Fatalf("partida a frio deveria servir a demonstração: %d jogos, %d alunos",
			len(state.Games), len(state.Students))
	}
	if state.LastError != "" {
		t.Fatalf("partida a frio não é erro, veio %q", state.LastError)
	}
}

func TestStateSnapshotIsIndependent(t *testing.T) {
	svc, _ := newLocalService(t)

	first := svc.State()
	first.Games[0].Title = "mexido fora do mediador"
	first.Students[0].Name = "mexido"

	second := svc.State()
	if second.Games[0].Title == "mexido fora do mediador" || second.Students[0].Name == "mexido" {
		t.Fatal("State expõe o cache interno do mediador")
	}
}

func TestAddGameLocalPrependsToCache(t *testing.T) {
	svc, _ := newLocalService(t)

	id, err := svc.AddGame(context.Background(), domain.Game{Title: "Jogo Novo"})
	if err != nil {
		t.Fatalf("AddGame: %v", err)
	}

	state := svc.State()
	if len(state.Games) != 4 {
		t.Fatalf("esperava 4 jogos após a criação, veio %d", len(state.Games))
	}
	if state.Games[0].ID != id || state.Games[0].Title != "Jogo Novo" {
		t.Fatalf("o jogo novo deveria estar no topo do cache: %+v", state.Games[0])
	}
}

func TestAddGameTwiceYieldsDistinctIDs(t *testing.T) {
	st := local.New()
	st.SetClock(fixedClock(42))
	svc := New(st, false, nil, nil)
	t.Cleanup(svc.Close)
	svc.Refresh(context.Background())

	first, err := svc.AddGame(context.Background(), domain.Game{Title: "A"})
	if err != nil {
		t.Fatalf("AddGame A: %v", err)
	}
	second, err := svc.AddGame(context.Background(), domain.Game{Title: "B"})
	if err != nil {
		t.Fatalf("AddGame B: %v", err)
	}
	if first == second {
		t.Fatalf("criações no mesmo milissegundo receberam o mesmo id %q", first)
	}
}

func TestAddGameFailureSetsUserFacingError(t *testing.T) {
	svc := New(failingStore{}, true, nil, nil)
	t.Cleanup(svc.Close)

	_, err := svc.AddGame(context.Background(), domain.Game{Title: "X"})
	if !errors.Is(err, ErrAddGame) {
		t.Fatalf("esperava ErrAddGame, veio %v", err)
	}
	if got := svc.State().LastError; got != "Erro ao adicionar jogo." {
		t.Fatalf("lastError = %q", got)
	}
}

func TestUpdateAndDeleteGameLocal(t *testing.T) {
	svc, _ := newLocalService(t)
	ctx := context.Background()

	game := svc.GameByID("moqueca-madness")
	if game == nil {
		t.Fatal("jogo de demonstração não encontrado")
	}
	game.Title = "Moqueca Madness Deluxe"
	if err := svc.UpdateGame(ctx, *game); err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}
	if got := svc.GameByID("moqueca-madness"); got.Title != "Moqueca Madness Deluxe" {
		t.Fatalf("título não atualizou no cache: %q", got.Title)
	}

	if err := svc.DeleteGame(ctx, "moqueca-madness"); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if svc.GameByID("moqueca-madness") != nil {
		t.Fatal("jogo removido ainda aparece no cache")
	}
	if len(svc.State().Games) != 2 {
		t.Fatalf("esperava 2 jogos após a remoção, veio %d", len(svc.State().Games))
	}
}

func TestSubmitReviewSynthesizesIDAndDate(t *testing.T) {
	svc, _ := newLocalService(t)
	svc.SetClock(fixedClock(1_718_500_000_000))

	err := svc.SubmitReview(context.Background(), "cyber-port-vix", domain.Review{
		Author:        "Visitante",
		Content:       "Joguei e gostei muito.",
		IsRecommended: true,
	})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}

	game := svc.GameByID("cyber-port-vix")
	if len(game.ReviewsList) != 3 {
		t.Fatalf("esperava 3 avaliações, veio %d", len(game.ReviewsList))
	}
	top := game.ReviewsList[0]
	if top.ID != "1718500000000" {
		t.Fatalf("id sintetizado = %q, want 1718500000000", top.ID)
	}
	wantDate := domain.FormatDate(time.UnixMilli(1_718_500_000_000))
	if top.Date != wantDate {
		t.Fatalf("data sintetizada = %q, want %q", top.Date, wantDate)
	}

	stats := game.Stats()
	if stats.Total != 3 || stats.PositivePercent != 100 {
		t.Fatalf("estatísticas = %+v, want 3 avaliações e 100%% positivas", stats)
	}
}

func TestSubmitReviewDefaultsAuthorToAnonimo(t *testing.T) {
	svc, _ := newLocalService(t)

	if err := svc.SubmitReview(context.Background(), "cyber-port-vix", domain.Review{Content: "ok"}); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	game := svc.GameByID("cyber-port-vix")
	if game.ReviewsList[0].Author != "Anônimo" {
		t.Fatalf("autor = %q, want Anônimo", game.ReviewsList[0].Author)
	}
}

func TestSubmitReviewUnknownGameSucceedsSilently(t *testing.T) {
	svc, _ := newLocalService(t)

	if err := svc.SubmitReview(context.Background(), "nao-existe", domain.Review{Content: "x"}); err != nil {
		t.Fatalf("enviar para id inexistente não deveria falhar: %v", err)
	}
	if len(svc.State().Games) != 3 {
		t.Fatal("nenhum jogo deveria ter sido alterado")
	}
}

func TestAddDevlogDefaultsDateWhenMissing(t *testing.T) {
	svc, _ := newLocalService(t)
	svc.SetClock(fixedClock(1_718_500_000_000))

	err := svc.AddDevlog(context.Background(), "moqueca-madness", domain.Devlog{
		AuthorID: "s1",
		Title:    "Primeiro devlog",
	})
	if err != nil {
		t.Fatalf("AddDevlog: %v", err)
	}

	game := svc.GameByID("moqueca-madness")
	if len(game.Devlogs) != 1 {
		t.Fatalf("esperava 1 devlog, veio %d", len(game.Devlogs))
	}
	d := game.Devlogs[0]
	if d.ID != "1718500000000" {
		t.Fatalf("id sintetizado = %q", d.ID)
	}
	if d.Date != domain.FormatDate(time.UnixMilli(1_718_500_000_000)) {
		t.Fatalf("data não foi preenchida: %q", d.Date)
	}
}

func TestAllDevlogsResolvesAuthorsAndSortsDesc(t *testing.T) {
	svc, _ := newLocalService(t)

	// Devlog com autor pendurado para exercitar o fallback.
	if err := svc.AddDevlog(context.Background(), "moqueca-madness", domain.Devlog{
		AuthorID: "s-fantasma",
		Title:    "Autor removido",
		Date:     "01 Jul, 2024",
	}); err != nil {
		t.Fatalf("AddDevlog: %v", err)
	}

	feed := svc.AllDevlogs()
	if len(feed) != 4 {
		t.Fatalf("esperava 4 devlogs no mural, veio %d", len(feed))
	}

	if feed[0].Title != "Autor removido" || feed[0].AuthorName != "Membro da Equipe" {
		t.Fatalf("autor pendurado não recebeu o rótulo genérico: %+v", feed[0])
	}
	if feed[1].ID != "d1" || feed[1].AuthorName != "João Silva" || feed[1].GameTitle != "Cyber Port VIX" {
		t.Fatalf("segunda entrada inesperada: %+v", feed[1])
	}

	for i := 1; i < len(feed); i++ {
		prev := domain.ParseDate(feed[i-1].Date)
		cur := domain.ParseDate(feed[i].Date)
		if cur.After(prev) {
			t.Fatalf("mural fora de ordem em %d: %q depois de %q", i, feed[i].Date, feed[i-1].Date)
		}
	}
}

func TestRegisterStudentLocal(t *testing.T) {
	svc, _ := newLocalService(t)

	id, err := svc.RegisterStudent(context.Background(), domain.Student{
		Name: "Pedro Lima", Role: "Programador", Username: "pedro", Password: "abc",
	})
	if err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}

	state := svc.State()
	if len(state.Students) != 5 {
		t.Fatalf("esperava 5 alunos, veio %d", len(state.Students))
	}
	if got := svc.StudentByID(id); got == nil || got.Name != "Pedro Lima" {
		t.Fatalf("aluno registrado não resolve pelo id: %+v", got)
	}
}

func TestChangeStudentPassword(t *testing.T) {
	svc, _ := newLocalService(t)
	ctx := context.Background()

	cases := []struct {
		name            string
		id, current, nw string
		want            error
	}{
		{"aluno inexistente", "s-fantasma", "123", "nova", ErrStudentNotFound},
		{"senha atual errada", "s1", "errada", "nova", ErrWrongPassword},
		{"senha nova curta", "s1", "123", "ab", ErrPasswordTooShort},
		{"troca válida", "s1", "123", "nova", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ChangeStudentPassword(ctx, tc.id, tc.current, tc.nw)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if got := svc.StudentByID("s1"); got.Password != "nova" {
		t.Fatalf("senha não foi trocada no cache: %q", got.Password)
	}
}

func TestChangeStudentPasswordShortMessage(t *testing.T) {
	svc, _ := newLocalService(t)
	err := svc.ChangeStudentPassword(context.Background(), "s1", "123", "ab")
	if err == nil || err.Error() != "A nova senha deve ter pelo menos 3 caracteres." {
		t.Fatalf("mensagem = %v", err)
	}
}

func TestLoginStudent(t *testing.T) {
	svc, _ := newLocalService(t)

	if got := svc.LoginStudent("maria", "123"); got == nil || got.ID != "s2" {
		t.Fatalf("login da maria deveria resolver para s2, veio %+v", got)
	}
	if got := svc.LoginStudent("maria", "errada"); got != nil {
		t.Fatalf("senha errada deveria devolver nil, veio %+v", got)
	}
	if got := svc.LoginStudent("ninguem", "123"); got != nil {
		t.Fatalf("usuário inexistente deveria devolver nil, veio %+v", got)
	}
}

func TestDeleteStudentKeepsDevlogsDangling(t *testing.T) {
	svc, _ := newLocalService(t)
	ctx := context.Background()

	if err := svc.DeleteStudent(ctx, "s1"); err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}

	// O devlog d1 do s1 continua existindo; o mural resolve com o fallback.
	feed := svc.AllDevlogs()
	var found bool
	for _, entry := range feed {
		if entry.ID == "d1" {
			found = true
			if entry.AuthorName != "Membro da Equipe" {
				t.Fatalf("autor removido deveria virar rótulo genérico, veio %q", entry.AuthorName)
			}
		}
	}
	if !found {
		t.Fatal("devlog do aluno removido sumiu do mural")
	}
}

func TestToggleThemePersistsToPrefs(t *testing.T) {
	prefStore, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatalf("prefs.Open: %v", err)
	}

	svc := New(local.New(), false, prefStore, nil)
	t.Cleanup(svc.Close)

	if svc.Theme() != ThemePorto {
		t.Fatalf("tema inicial = %q, want porto", svc.Theme())
	}
	if got := svc.ToggleTheme(); got != ThemeRetro {
		t.Fatalf("toggle = %q, want retro", got)
	}

	// Um mediador novo sobre o mesmo arquivo restaura o tema salvo.
	again := New(local.New(), false, prefStore, nil)
	t.Cleanup(again.Close)
	if again.Theme() != ThemeRetro {
		t.Fatalf("tema não foi restaurado das preferências: %q", again.Theme())
	}
}

func TestIsAdminFollowsSession(t *testing.T) {
	sessions := auth.NewLocalService(nil)
	svc := New(local.New(), false, nil, sessions)
	t.Cleanup(svc.Close)

	if svc.IsAdmin() {
		t.Fatal("não deveria haver sessão administrativa no início")
	}

	if _, err := sessions.Login(context.Background(), auth.LoginParams{Email: "admin", Password: "senai123"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !svc.IsAdmin() {
		t.Fatal("login não propagou para o mediador")
	}
	if !svc.State().IsAdmin {
		t.Fatal("State não reflete a sessão administrativa")
	}

	if err := sessions.Logout(context.Background(), ""); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if svc.IsAdmin() {
		t.Fatal("logout não propagou para o mediador")
	}
}

func TestSeedIsNoopOnLocalBackend(t *testing.T) {
	svc, st := newLocalService(t)
	ctx := context.Background()

	// Muda o estado local para detectar um eventual reset.
	if _, err := st.CreateGame(ctx, domain.Game{Title: "Extra"}); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	games, _ := st.ListGames(ctx)
	if len(games) != 4 {
		t.Fatalf("Seed local deveria ser no-op, veio %d jogos", len(games))
	}
}

func TestConcurrentRefreshNeverMixesCycles(t *testing.T) {
	svc := New(pairedStore{}, true, nil, nil)
	t.Cleanup(svc.Close)

	stop := make(chan struct{})
	mismatch := make(chan string, 1)

	var observer sync.WaitGroup
	observer.Add(1)
	go func() {
		defer observer.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			state := svc.State()
			if len(state.Games) == 0 || len(state.Students) == 0 {
				continue
			}
			if state.Games[0].Title != state.Students[0].Name {
				select {
				case mismatch <- "jogos do ciclo " + state.Games[0].Title + " com alunos do ciclo " + state.Students[0].Name:
				default:
				}
				return
			}
		}
	}()

	var refreshes sync.WaitGroup
	for i := 0; i < 8; i++ {
		refreshes.Add(1)
		go func(cycle string) {
			defer refreshes.Done()
			ctx := context.WithValue(context.Background(), refreshCycleKey{}, cycle)
			for j := 0; j < 25; j++ {
				svc.Refresh(ctx)
			}
		}(strconv.Itoa(i))
	}
	refreshes.Wait()
	close(stop)
	observer.Wait()

	select {
	case msg := <-mismatch:
		t.Fatalf("fotografia misturou ciclos de recarga: %s", msg)
	default:
	}
}

func TestSetClockIsSafeDuringRefresh(t *testing.T) {
	svc, _ := newLocalService(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			svc.Refresh(context.Background())
		}
	}()
	for i := 0; i < 50; i++ {
		svc.SetClock(fixedClock(int64(i + 1)))
	}
	<-done

	svc.SetClock(fixedClock(1_718_500_000_000))
	if err := svc.SubmitReview(context.Background(), "cyber-port-vix", domain.Review{Content: "ok"}); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if got := svc.GameByID("cyber-port-vix").ReviewsList[0].ID; got != "1718500000000" {
		t.Fatalf("id sintetizado após a troca de relógio = %q", got)
	}
}

func TestBackendLabel(t *testing.T) {
	svc, _ := newLocalService(t)
	if svc.Backend() != "local" {
		t.Fatalf("Backend = %q, want local", svc.Backend())
	}

	remote := New(emptyStore{}, true, nil, nil)
	t.Cleanup(remote.Close)
	if remote.Backend() != "remote" {
		t.Fatalf("Backend = %q, want remote", remote.Backend())
	}
}
