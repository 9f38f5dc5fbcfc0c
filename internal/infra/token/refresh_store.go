package token

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRefreshPrefix = "auth:refresh"

// RedisRefreshTokenStore guarda os tokens de renovação do admin no Redis,
// permitindo que várias instâncias compartilhem o estado de sessão.
//
// Fluxo de renovação, em resumo:
//  1. No login o admin recebe access token + refresh token; o refresh carrega
//     um jti único.
//  2. O backend grava <email, jti> no Redis com TTL igual ao exp do refresh.
//  3. Quando o access expira, o cliente chama /api/auth/refresh com o refresh
//     token; o servidor extrai o jti e consulta Exists().
//  4. Se existir, Delete() remove o registro antigo, um novo par é emitido e
//     Save() grava o novo jti.
//  5. No logout (ou revogação) Delete() remove o registro; expirado o TTL, a
//     chave some sozinha e resta refazer o login.
type RedisRefreshTokenStore struct {
	client *redis.Client
	prefix string
}

// NewRedisRefreshTokenStore constrói o armazenamento de renovação no Redis.
func NewRedisRefreshTokenStore(client *redis.Client, prefix string) *RedisRefreshTokenStore {
	if prefix == "" {
		prefix = defaultRefreshPrefix
	}
	return &RedisRefreshTokenStore{client: client, prefix: prefix}
}

func (s *RedisRefreshTokenStore) key(email, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, email, tokenID)
}

// Save grava o token de renovação com TTL alinhado ao exp do próprio token.
// Se o TTL calculado já passou, usa 1s para a chave expirar imediatamente.
func (s *RedisRefreshTokenStore) Save(ctx context.Context, email, tokenID string, expiresAt time.Time) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("cliente redis não configurado")
	}
	if tokenID == "" {
		return fmt.Errorf("identificador do token é obrigatório")
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}

	return s.client.Set(ctx, s.key(email, tokenID), "1", ttl).Err()
}

// Delete remove o token de renovação. Usado no logout e no passo
// "remove o antigo, grava o novo" da renovação.
func (s *RedisRefreshTokenStore) Delete(ctx context.Context, email, tokenID string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("cliente redis não configurado")
	}
	if tokenID == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(email, tokenID)).Err()
}

// Exists verifica se o token de renovação continua válido. Retorno 0 do Redis
// significa jti apagado ou expirado, tratado como sessão revogada.
func (s *RedisRefreshTokenStore) Exists(ctx context.Context, email, tokenID string) (bool, error) {
	if s == nil || s.client == nil {
		return false, fmt.Errorf("cliente redis não configurado")
	}
	if tokenID == "" {
		return false, nil
	}
	count, err := s.client.Exists(ctx, s.key(email, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return count == 1, nil
}

// MemoryRefreshTokenStore atende testes e ambientes sem Redis. Vale apenas
// para o processo atual: reiniciou o serviço, as sessões anteriores caem.
type MemoryRefreshTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]map[string]time.Time
}

// NewMemoryRefreshTokenStore cria o armazenamento de renovação em memória.
func NewMemoryRefreshTokenStore() *MemoryRefreshTokenStore {
	return &MemoryRefreshTokenStore{tokens: make(map[string]map[string]time.Time)}
}

// Save guarda o token. Mesma estrutura da versão Redis: e-mail na primeira
// camada, tokenID -> expiração na segunda.
func (s *MemoryRefreshTokenStore) Save(_ context.Context, email, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return fmt.Errorf("identificador do token é obrigatório")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[email]; !ok {
		s.tokens[email] = make(map[string]time.Time)
	}
	s.tokens[email][tokenID] = expiresAt
	return nil
}

// Delete remove o token. Se o admin ficou sem tokens, remove também o mapa
// interno para não acumular entradas vazias.
func (s *MemoryRefreshTokenStore) Delete(_ context.Context, email, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bucket, ok := s.tokens[email]; ok {
		delete(bucket, tokenID)
		if len(bucket) == 0 {
			delete(s.tokens, email)
		}
	}
	return nil
}

// Exists verifica se o token existe e não expirou. Entradas vencidas são
// removidas na própria consulta.
func (s *MemoryRefreshTokenStore) Exists(_ context.Context, email, tokenID string) (bool, error) {
	s.mu.RLock()
	bucket, ok := s.tokens[email]
	if !ok {
		s.mu.RUnlock()
		return false, nil
	}
	expiresAt, ok := bucket[tokenID]
	if !ok {
		s.mu.RUnlock()
		return false, nil
	}
	if time.Now().After(expiresAt) {
		s.mu.RUnlock()
		s.Delete(context.Background(), email, tokenID)
		return false, nil
	}
	s.mu.RUnlock()
	return true, nil
}
