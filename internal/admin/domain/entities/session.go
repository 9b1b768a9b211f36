package entities

import "time"

// SessionStatus описывает сохраненную сессию. Сроки берутся из claims
// токенов без проверки подписи: это подсказка для оператора, не авторизация.
type SessionStatus struct {
	Authenticated    bool
	UserID           string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// AccessExpired сообщает, истек ли токен доступа к моменту now.
func (s SessionStatus) AccessExpired(now time.Time) bool {
	return !s.AccessExpiresAt.IsZero() && !now.Before(s.AccessExpiresAt)
}

// RefreshExpired сообщает, истек ли refresh-токен к моменту now.
func (s SessionStatus) RefreshExpired(now time.Time) bool {
	return !s.RefreshExpiresAt.IsZero() && !now.Before(s.RefreshExpiresAt)
}
