package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type hs256Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func (h *hs256Service) Sign(accountID string) (string, error) {
	if accountID == "" {
		return "", errors.New("empty account id")
	}
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:   h.issuer,
		Subject:  accountID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if h.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(h.ttl))
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(h.secret)
}

func (h *hs256Service) Verify(tokenString string) (string, error) {
	var parsed jwt.RegisteredClaims
	// 注意：不强制要求 exp。无 TTL 部署下 token 在秘钥轮换前一直有效。
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.issuer),
	)
	_, err := parser.ParseWithClaims(tokenString, &parsed, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected jwt signing method")
		}
		return h.secret, nil
	})
	if err != nil {
		return "", err
	}
	if parsed.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return parsed.Subject, nil
}
