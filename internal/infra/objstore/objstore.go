// Package objstore guarda as imagens enviadas pelo painel (capas, capturas de
// tela e mídias de devlog) em um bucket aberto via gocloud.dev/blob.
package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

// Tipos de imagem aceitos no upload.
const (
	KindCover      = "cover"
	KindHeader     = "header"
	KindBackground = "background"
	KindScreenshot = "screenshot"
	KindDevlog     = "devlog"
)

var ErrUnknownKind = errors.New("tipo de imagem desconhecido")

// Config descreve o bucket de destino. Driver "file" atende o modo local;
// "s3" atende qualquer serviço compatível.
type Config struct {
	Driver         string
	Bucket         string
	Region         string
	Endpoint       string
	ForcePathStyle bool
	BaseDir        string
	// PublicBaseURL é o prefixo público das chaves gravadas (CDN ou rota
	// estática do próprio servidor).
	PublicBaseURL string
}

// FromEnv lê a configuração das variáveis STORAGE_*. Sem driver definido, o
// padrão é gravar em disco sob data/uploads e servir em /uploads.
func FromEnv() Config {
	c := Config{
		Driver:        os.Getenv("STORAGE_DRIVER"),
		Bucket:        os.Getenv("STORAGE_BUCKET"),
		Region:        os.Getenv("STORAGE_REGION"),
		Endpoint:      os.Getenv("STORAGE_ENDPOINT"),
		BaseDir:       os.Getenv("STORAGE_BASE_DIR"),
		PublicBaseURL: os.Getenv("STORAGE_PUBLIC_BASE_URL"),
	}
	if v := strings.ToLower(os.Getenv("STORAGE_FORCE_PATH_STYLE")); v == "true" || v == "1" || v == "yes" {
		c.ForcePathStyle = true
	}
	if c.Driver == "" {
		c.Driver = "file"
	}
	if c.Driver == "file" && c.BaseDir == "" {
		c.BaseDir = filepath.Join("data", "uploads")
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = "/uploads"
	}
	return c
}

// Store grava e remove objetos do bucket e resolve a URL pública de cada
// chave.
type Store struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Open abre o bucket descrito pela configuração.
func Open(ctx context.Context, c Config) (*Store, error) {
	var target string
	switch strings.ToLower(c.Driver) {
	case "file":
		if c.BaseDir == "" {
			return nil, errors.New("objstore: driver file exige STORAGE_BASE_DIR")
		}
		if err := os.MkdirAll(c.BaseDir, 0o755); err != nil {
			return nil, fmt.Errorf("objstore: criar diretório base: %w", err)
		}
		abs, err := filepath.Abs(c.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("objstore: resolver diretório base: %w", err)
		}
		target = "file://" + filepath.ToSlash(abs) + "?create_dir=true"
	case "s3":
		if c.Bucket == "" {
			return nil, errors.New("objstore: driver s3 exige STORAGE_BUCKET")
		}
		u := url.URL{Scheme: "s3", Host: c.Bucket}
		q := url.Values{}
		if c.Region != "" {
			q.Set("region", c.Region)
		}
		if c.Endpoint != "" {
			q.Set("endpoint", c.Endpoint)
		}
		if c.ForcePathStyle {
			q.Set("s3ForcePathStyle", "true")
		}
		u.RawQuery = q.Encode()
		target = u.String()
	default:
		return nil, fmt.Errorf("objstore: driver desconhecido: %s", c.Driver)
	}

	bucket, err := blob.OpenBucket(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("objstore: abrir bucket %s: %w", target, err)
	}
	return &Store{bucket: bucket, publicBaseURL: strings.TrimRight(c.PublicBaseURL, "/")}, nil
}

// Close libera o bucket.
func (s *Store) Close() error {
	if s == nil || s.bucket == nil {
		return nil
	}
	return s.bucket.Close()
}

// Key monta a chave de um upload: games/{gameId}/{kind}_{timestamp}.{ext}.
func Key(gameID, kind, ext string, now time.Time) (string, error) {
	switch kind {
	case KindCover, KindHeader, KindBackground, KindScreenshot, KindDevlog:
	default:
		return "", ErrUnknownKind
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf("games/%s/%s_%d.%s", sanitizeSegment(gameID), kind, now.UnixMilli(), ext), nil
}

// Put grava o conteúdo na chave indicada e devolve a URL pública resultante.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	key = sanitizeKey(key)
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("objstore: abrir escrita de %s: %w", key, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("objstore: gravar %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("objstore: finalizar %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// Delete remove a chave do bucket. Chave inexistente não é erro.
func (s *Store) Delete(ctx context.Context, key string) error {
	key = sanitizeKey(key)
	if err := s.bucket.Delete(ctx, key); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) && os.IsNotExist(pathErr) {
			return nil
		}
		return fmt.Errorf("objstore: remover %s: %w", key, err)
	}
	return nil
}

// PublicURL resolve a URL pública de uma chave já gravada.
func (s *Store) PublicURL(key string) string {
	return s.publicBaseURL + "/" + sanitizeKey(key)
}

// sanitizeKey impede escapes de diretório na chave.
func sanitizeKey(key string) string {
	key = path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	return strings.TrimLeft(key, "/")
}

func sanitizeSegment(segment string) string {
	segment = strings.ReplaceAll(segment, "/", "-")
	segment = strings.ReplaceAll(segment, "\\", "-")
	segment = strings.ReplaceAll(segment, "..", "-")
	if segment == "" {
		return "desconhecido"
	}
	return segment
}
