// Package tokens выпускает и проверяет JWT тестового бэкенда.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"albuhara/internal/admin/domain/entities"
	"albuhara/pkg/logger"
)

const (
	methodIssuePair = "IssuePair"
	methodValidate  = "Validate"

	msgIssuingPair    = "issuing token pair"
	msgTokenIssued    = "token issued"
	msgTokenRejected  = "token rejected"
	msgTokenRevoked   = "refresh token revoked"
	errCtxSigning     = "signing token"
	errCtxParsing     = "parsing token"
	errCtxEmptySecret = "empty secret key"
)

// Kind - назначение токена, хранится в claim token_type.
type Kind string

// Виды токенов.
const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Ошибки проверки токена.
var (
	ErrInvalidToken     = errors.New("token is invalid")
	ErrExpiredToken     = errors.New("token is expired")
	ErrWrongTokenType   = errors.New("token has wrong type")
	ErrRevokedToken     = errors.New("token is revoked")
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
)

// Claims - содержимое токена.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType Kind   `json:"token_type"`
	jwt.RegisteredClaims
}

// Issuer подписывает токены HS256 и ведет список отозванных refresh-токенов.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewIssuer создает Issuer.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return newIssuer(secret, accessTTL, refreshTTL, time.Now)
}

func newIssuer(secret string, accessTTL, refreshTTL time.Duration, now func() time.Time) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
		revoked:    make(map[string]time.Time),
	}
}

// IssuePair выпускает токен доступа и refresh-токен.
func (i *Issuer) IssuePair(ctx context.Context, userID string) (entities.Credentials, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssuePair), zap.String("userID", userID))
	log.Debug(ctx, msgIssuingPair)

	access, err := i.Issue(ctx, userID, KindAccess)
	if err != nil {
		return entities.Credentials{}, err
	}
	refresh, err := i.Issue(ctx, userID, KindRefresh)
	if err != nil {
		return entities.Credentials{}, err
	}
	return entities.Credentials{AccessToken: access, RefreshToken: refresh}, nil
}

// Issue выпускает один токен. Каждый токен получает уникальный jti.
func (i *Issuer) Issue(ctx context.Context, userID string, kind Kind) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("%s: %w", errCtxEmptySecret, ErrInvalidToken)
	}

	ttl := i.accessTTL
	if kind == KindRefresh {
		ttl = i.refreshTTL
	}
	now := i.now()
	claims := Claims{
		UserID:    userID,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtxSigning, err)
	}

	logger.Log(ctx).Debug(ctx, msgTokenIssued,
		zap.String("token_type", string(kind)),
		zap.Time("expiresAt", claims.ExpiresAt.Time))
	return signed, nil
}

// Validate проверяет подпись, срок, тип и отзыв токена.
func (i *Issuer) Validate(ctx context.Context, token string, kind Kind) (*Claims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidate), zap.String("token_type", string(kind)))

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", errCtxParsing, ErrExpiredToken)
		}
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsing, ErrInvalidToken, err)
	}

	if claims.TokenType != kind {
		log.Debug(ctx, msgTokenRejected, zap.String("got", string(claims.TokenType)))
		return nil, ErrWrongTokenType
	}
	if i.isRevoked(claims.ID) {
		log.Debug(ctx, msgTokenRejected, zap.String("jti", claims.ID))
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Revoke запрещает повторное использование токена до истечения его срока.
func (i *Issuer) Revoke(ctx context.Context, claims *Claims) {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	for id, exp := range i.revoked {
		if !now.Before(exp) {
			delete(i.revoked, id)
		}
	}
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	i.revoked[claims.ID] = exp

	logger.Log(ctx).Debug(ctx, msgTokenRevoked, zap.String("jti", claims.ID))
}

func (i *Issuer) isRevoked(id string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.revoked[id]
	return ok
}
