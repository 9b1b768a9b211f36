// Package accounts проверяет учетную запись администратора тестового бэкенда.
package accounts

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// AdminUserID - идентификатор единственного администратора.
	AdminUserID = "1"

	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgErrorComparingHash   = "error comparing password with hash"
)

// Ошибки аутентификации.
var (
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrEmptyAccount       = errors.New("admin username and password must be set")
)

// Authenticator хранит логин администратора и bcrypt-хеш его пароля.
type Authenticator struct {
	username string
	hash     []byte
}

// NewAuthenticator хеширует пароль администратора.
func NewAuthenticator(username, password string, cost int) (*Authenticator, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyAccount
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errMsgFailedToGenerateHash, err)
	}
	return &Authenticator{username: username, hash: hash}, nil
}

// Authenticate возвращает id пользователя при совпадении логина и пароля.
func (a *Authenticator) Authenticate(_ context.Context, username, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) != 1 {
		return "", ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}
	return AdminUserID, nil
}
