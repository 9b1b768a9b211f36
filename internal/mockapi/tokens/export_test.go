package tokens

import "time"

// NewIssuerWithClock создает Issuer с подменяемыми часами.
func NewIssuerWithClock(secret string, accessTTL, refreshTTL time.Duration, now func() time.Time) *Issuer {
	return newIssuer(secret, accessTTL, refreshTTL, now)
}
