package auth

import (
	"errors"
	"time"
)

// TokenService 签发/校验与账户身份绑定的会话 token
type TokenService interface {
	Sign(accountID string) (string, error)
	Verify(token string) (accountID string, err error)
}

// NewHS256Service 对称签名（HS256）的 token 服务，秘钥进程级唯一。
// ttl == 0 表示签发不带过期时间的 token，过期策略由部署方显式配置。
func NewHS256Service(secret, issuer string, ttl time.Duration) (TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if issuer == "" {
		return nil, errors.New("jwt issuer is empty")
	}
	if ttl < 0 {
		return nil, errors.New("jwt ttl must be >= 0")
	}
	return &hs256Service{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}
