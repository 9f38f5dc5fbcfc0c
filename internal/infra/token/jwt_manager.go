package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/service/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	claimTokenType   = "token_type"
	claimTokenID     = "jti"
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// JWTManager assina tokens de acesso e de renovação do admin com chave
// simétrica HS256.
type JWTManager struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTManager cria o gerenciador de JWT com a chave de assinatura e as
// validades dos tokens de acesso e de renovação.
func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// GenerateTokens emite o par de tokens para o admin identificado pelo e-mail.
func (m *JWTManager) GenerateTokens(ctx context.Context, identity auth.AdminIdentity) (auth.TokenPair, error) {
	accessToken, accessExp, _, err := m.buildToken(identity, m.accessTTL, tokenTypeAccess, "")
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("gerar token de acesso: %w", err)
	}

	refreshID := uuid.NewString()
	refreshToken, refreshExp, refreshID, err := m.buildToken(identity, m.refreshTTL, tokenTypeRefresh, refreshID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("gerar token de renovação: %w", err)
	}

	return auth.TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		ExpiresIn:             int64(time.Until(accessExp).Seconds()),
		RefreshTokenID:        refreshID,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}

// buildToken monta e assina um JWT com o TTL indicado.
func (m *JWTManager) buildToken(identity auth.AdminIdentity, ttl time.Duration, tokenType string, tokenID string) (string, time.Time, string, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}

	expiresAt := time.Now().Add(ttl)

	// MapClaims facilita acrescentar campos no futuro sem quebrar o formato.
	claims := jwt.MapClaims{
		"sub":          identity.Email,
		"name":         identity.Name,
		"exp":          expiresAt.Unix(),
		claimTokenType: tokenType,
	}

	if tokenType == tokenTypeRefresh {
		if tokenID == "" {
			tokenID = uuid.NewString()
		}
		claims[claimTokenID] = tokenID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", time.Time{}, "", err
	}

	return signed, expiresAt, tokenID, nil
}

// ParseAccessToken valida um token de acesso e devolve a identidade do admin.
func (m *JWTManager) ParseAccessToken(raw string) (auth.AdminIdentity, error) {
	claims, err := m.parse(raw)
	if err != nil {
		return auth.AdminIdentity{}, err
	}
	if tType, _ := claims[claimTokenType].(string); tType != tokenTypeAccess {
		return auth.AdminIdentity{}, errors.New("não é um token de acesso")
	}

	email, _ := claims["sub"].(string)
	if strings.TrimSpace(email) == "" {
		return auth.AdminIdentity{}, errors.New("token sem e-mail")
	}
	name, _ := claims["name"].(string)

	return auth.AdminIdentity{Email: email, Name: name}, nil
}

// ParseRefreshToken valida um token de renovação e extrai e-mail, jti e
// expiração.
func (m *JWTManager) ParseRefreshToken(raw string) (auth.RefreshTokenClaims, error) {
	claims, err := m.parse(raw)
	if err != nil {
		return auth.RefreshTokenClaims{}, err
	}
	if tType, _ := claims[claimTokenType].(string); tType != tokenTypeRefresh {
		return auth.RefreshTokenClaims{}, errors.New("não é um token de renovação")
	}

	email, _ := claims["sub"].(string)
	if strings.TrimSpace(email) == "" {
		return auth.RefreshTokenClaims{}, errors.New("token sem e-mail")
	}

	tokenID, _ := claims[claimTokenID].(string)
	if tokenID == "" {
		return auth.RefreshTokenClaims{}, errors.New("token sem identificador de renovação")
	}

	var expiresAt time.Time
	if expVal, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(expVal), 0)
	}

	return auth.RefreshTokenClaims{
		Email:     email,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

func (m *JWTManager) parse(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}
