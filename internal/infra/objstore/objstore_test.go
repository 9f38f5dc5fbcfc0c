package objstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newFileStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), Config{
		Driver:        "file",
		BaseDir:       t.TempDir(),
		PublicBaseURL: "/uploads",
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestKeyLayout(t *testing.T) {
	now := time.UnixMilli(1718500000000)
	key, err := Key("cyber-port-vix", KindCover, ".PNG", now)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if key != "games/cyber-port-vix/cover_1718500000000.png" {
		t.Fatalf("chave inesperada: %s", key)
	}

	for _, kind := range []string{KindHeader, KindBackground, KindDevlog} {
		if _, err := Key("eco-convento", kind, "jpg", now); err != nil {
			t.Fatalf("tipo %s deveria ser aceito: %v", kind, err)
		}
	}

	key, err = Key("eco-convento", KindDevlog, "", now)
	if err != nil {
		t.Fatalf("Key sem extensão: %v", err)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("extensão padrão deveria ser png: %s", key)
	}

	if _, err := Key("x", "thumbnail", "png", now); err != ErrUnknownKind {
		t.Fatalf("tipo desconhecido deveria falhar, err=%v", err)
	}
}

func TestKeySanitizesGameID(t *testing.T) {
	now := time.UnixMilli(1718500000000)
	key, err := Key("../../etc", KindScreenshot, "jpg", now)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if strings.Contains(key, "..") {
		t.Fatalf("chave não pode conter ..: %s", key)
	}

	key, err = Key("", KindScreenshot, "jpg", now)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if !strings.HasPrefix(key, "games/desconhecido/") {
		t.Fatalf("id vazio deveria virar desconhecido: %s", key)
	}
}

func TestPutReturnsPublicURL(t *testing.T) {
	st := newFileStore(t)
	ctx := context.Background()

	url, err := st.Put(ctx, "games/g1/cover_1.png", strings.NewReader("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "/uploads/games/g1/cover_1.png" {
		t.Fatalf("URL pública inesperada: %s", url)
	}
}

func TestPutWritesUnderBaseDir(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(context.Background(), Config{Driver: "file", BaseDir: dir, PublicBaseURL: "/uploads"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	if _, err := st.Put(context.Background(), "games/g1/cover_1.png", strings.NewReader("conteúdo"), "image/png"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "games", "g1", "cover_1.png"))
	if err != nil {
		t.Fatalf("ler arquivo gravado: %v", err)
	}
	if string(data) != "conteúdo" {
		t.Fatalf("conteúdo gravado divergente: %q", data)
	}
}

func TestPutSanitizesTraversal(t *testing.T) {
	st := newFileStore(t)
	url, err := st.Put(context.Background(), "../escape.png", strings.NewReader("x"), "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if strings.Contains(url, "..") {
		t.Fatalf("URL não pode conter ..: %s", url)
	}
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	st := newFileStore(t)
	ctx := context.Background()

	if err := st.Delete(ctx, "games/g1/nunca-existiu.png"); err != nil {
		t.Fatalf("remover chave inexistente deveria ser silencioso: %v", err)
	}

	if _, err := st.Put(ctx, "games/g1/cover_2.png", strings.NewReader("x"), "image/png"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := st.Delete(ctx, "games/g1/cover_2.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := st.Delete(ctx, "games/g1/cover_2.png"); err != nil {
		t.Fatalf("segunda remoção deveria ser silenciosa: %v", err)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("STORAGE_BASE_DIR", "")
	t.Setenv("STORAGE_PUBLIC_BASE_URL", "")

	c := FromEnv()
	if c.Driver != "file" {
		t.Fatalf("driver padrão deveria ser file: %s", c.Driver)
	}
	if c.BaseDir != filepath.Join("data", "uploads") {
		t.Fatalf("diretório padrão inesperado: %s", c.BaseDir)
	}
	if c.PublicBaseURL != "/uploads" {
		t.Fatalf("base pública padrão inesperada: %s", c.PublicBaseURL)
	}
}
