// Package captcha gera e valida captchas numéricos para o login do painel
// administrativo, com as respostas guardadas no Redis.
package captcha

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mojocn/base64Captcha"
	"github.com/redis/go-redis/v9"
)

var (
	ErrCaptchaNotFound = errors.New("captcha não encontrado ou expirado")
	ErrCaptchaMismatch = errors.New("resposta do captcha incorreta")
	ErrRateLimited     = errors.New("muitas solicitações de captcha")
)

type Generator interface {
	Generate(ctx context.Context, ip string) (id string, b64 string, err error)
}

type Verifier interface {
	Verify(ctx context.Context, id string, answer string) error
}

// Manager reúne geração do captcha, cache da resposta e limitação por IP.
type Manager struct {
	store   *redis.Client        // cache das respostas e dos contadores de limite
	driver  base64Captcha.Driver // desenha a imagem e produz a resposta
	prefix  string               // prefixo das chaves no Redis
	ttl     time.Duration        // validade do captcha
	maxHits int64                // máximo de solicitações por IP na janela
	rlTTL   time.Duration        // duração da janela de limitação
}

// Options agrupa os parâmetros da imagem e da limitação, todos configuráveis
// por variáveis de ambiente.
type Options struct {
	Prefix          string
	TTL             time.Duration
	Width           int
	Height          int
	Length          int
	MaxSkew         float64
	DotCount        int
	RateLimitPerMin int
	// RateLimitWindow define a janela de contagem por IP; vencida a janela o
	// contador zera.
	RateLimitWindow time.Duration
}

const (
	defaultPrefix  = "captcha"
	defaultTTL     = 5 * time.Minute
	defaultWidth   = 240
	defaultHeight  = 80
	defaultLength  = 5
	defaultMaxSkew = 0.7
	defaultDot     = 80
)

// LoadOptionsFromEnv monta as opções a partir de CAPTCHA_TTL_SECONDS,
// CAPTCHA_LENGTH e CAPTCHA_RATE_LIMIT_PER_MIN; valores inválidos caem nos
// padrões.
func LoadOptionsFromEnv() Options {
	opts := Options{}
	if raw := os.Getenv("CAPTCHA_TTL_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			opts.TTL = time.Duration(seconds) * time.Second
		}
	}
	if raw := os.Getenv("CAPTCHA_LENGTH"); raw != "" {
		if length, err := strconv.Atoi(raw); err == nil && length > 0 {
			opts.Length = length
		}
	}
	if raw := os.Getenv("CAPTCHA_RATE_LIMIT_PER_MIN"); raw != "" {
		if hits, err := strconv.Atoi(raw); err == nil && hits >= 0 {
			opts.RateLimitPerMin = hits
		}
	}
	return opts
}

// NewManager constrói o gerenciador de captcha com as opções informadas.
func NewManager(redisClient *redis.Client, opts Options) *Manager {
	if redisClient == nil {
		panic("captcha manager exige cliente redis")
	}

	prefix := opts.Prefix
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultPrefix
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	height := opts.Height
	if height <= 0 {
		height = defaultHeight
	}

	length := opts.Length
	if length <= 0 {
		length = defaultLength
	}

	maxSkew := opts.MaxSkew
	if maxSkew <= 0 {
		maxSkew = defaultMaxSkew
	}

	dotCount := opts.DotCount
	if dotCount <= 0 {
		dotCount = defaultDot
	}

	// Captcha numérico simples; trocar o Driver se um dia precisar de algo
	// mais elaborado.
	driver := base64Captcha.NewDriverDigit(height, width, length, maxSkew, dotCount)

	maxHits := opts.RateLimitPerMin
	if maxHits < 0 {
		maxHits = 0
	}

	rlTTL := opts.RateLimitWindow
	if rlTTL <= 0 {
		rlTTL = time.Minute
	}

	return &Manager{
		store:   redisClient,
		driver:  driver,
		prefix:  prefix,
		ttl:     ttl,
		maxHits: int64(maxHits),
		rlTTL:   rlTTL,
	}
}

// Generate devolve a imagem em base64 e o ID do captcha, cacheando a resposta
// no Redis.
func (m *Manager) Generate(ctx context.Context, ip string) (string, string, error) {
	// Limita por IP antes de gastar CPU desenhando a imagem.
	if err := m.checkRateLimit(ctx, ip); err != nil {
		return "", "", err
	}

	id, content, answer := m.driver.GenerateIdQuestionAnswer()

	item, err := m.driver.DrawCaptcha(content)
	if err != nil {
		return "", "", fmt.Errorf("desenhar captcha: %w", err)
	}

	b64 := item.EncodeB64string()

	if err := m.store.Set(ctx, m.key(id), strings.ToLower(answer), m.ttl).Err(); err != nil {
		return "", "", fmt.Errorf("guardar captcha: %w", err)
	}

	return id, b64, nil
}

// Verify compara a resposta enviada com a cacheada; o registro é removido
// tanto no acerto quanto no erro, cada captcha vale uma tentativa.
func (m *Manager) Verify(ctx context.Context, id string, answer string) error {
	if strings.TrimSpace(id) == "" {
		return ErrCaptchaNotFound
	}

	key := m.key(id)
	stored, err := m.store.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCaptchaNotFound
		}
		return fmt.Errorf("buscar captcha: %w", err)
	}

	if err := m.store.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("remover captcha: %w", err)
	}

	if !strings.EqualFold(strings.TrimSpace(answer), stored) {
		return ErrCaptchaMismatch
	}

	return nil
}

func (m *Manager) key(id string) string {
	return fmt.Sprintf("%s:%s", m.prefix, id)
}

// checkRateLimit conta as solicitações do IP via INCR + EXPIRE; acima do
// limite devolve ErrRateLimited.
func (m *Manager) checkRateLimit(ctx context.Context, ip string) error {
	if m.maxHits <= 0 || strings.TrimSpace(ip) == "" {
		return nil
	}

	key := fmt.Sprintf("%s:rl:%s", m.prefix, ip)
	count, err := m.store.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("contador do captcha: %w", err)
	}

	if count == 1 {
		if err := m.store.Expire(ctx, key, m.rlTTL).Err(); err != nil {
			return fmt.Errorf("expiração do contador do captcha: %w", err)
		}
	}

	if count > m.maxHits {
		return ErrRateLimited
	}

	return nil
}
