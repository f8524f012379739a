package tokens

import (
	"fmt"
	"time"
)

const (
	KindJWT    = "jwt"
	KindPaseto = "paseto"
)

// Maker issues and verifies tokens.
type Maker interface {
	CreateToken(username string, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}

// NewMaker picks the implementation by kind. Paseto uses the first
// 32 bytes of secret as its symmetric key.
func NewMaker(kind, secret string) (Maker, error) {
	switch kind {
	case KindJWT, "":
		return NewJWTMaker(secret)
	case KindPaseto:
		if len(secret) < pasetoKeySize {
			return nil, fmt.Errorf("paseto secret must be at least %d characters", pasetoKeySize)
		}
		return NewPasetoMaker(secret[:pasetoKeySize])
	}
	return nil, fmt.Errorf("unknown token kind %q", kind)
}
