// Package entities содержит доменные модели админки.
package entities

// Credentials - пара токенов текущей сессии администратора.
type Credentials struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// HasAccess сообщает, сохранен ли токен доступа.
func (c Credentials) HasAccess() bool {
	return c.AccessToken != ""
}

// HasRefresh сообщает, сохранен ли refresh-токен.
func (c Credentials) HasRefresh() bool {
	return c.RefreshToken != ""
}
