// Package httpapi 只做传输层：参数解析、错误映射、响应格式。
// 领域逻辑在 internal/app/account，SQL 在 internal/app/account/repo。
// handler 依赖下面的小接口而不是具体 repo，方便用内存假实现做测试。
package httpapi

import (
	"context"

	"codehub.local/internal/app/account"
	"codehub.local/internal/app/account/audit"
)

type UserStore interface {
	Register(ctx context.Context, username, email, password string) (account.Account, error)
	Authenticate(ctx context.Context, email, password string) (account.Account, error)
	FindByID(ctx context.Context, id int64) (account.Account, error)
	FindByUsername(ctx context.Context, username string) (account.Account, error)
	ChangeUsername(ctx context.Context, id int64, newUsername string) (account.Account, error)
	ChangeEmail(ctx context.Context, id int64, newEmail string) (account.Account, error)
	ChangePassword(ctx context.Context, id int64, newPassword string) (account.Account, error)
	VerifyPassword(ctx context.Context, id int64, password string) error
	Delete(ctx context.Context, id int64) error
	Increment(ctx context.Context, username string, category account.Category, tag string) (account.Account, error)
}

type LinkStore interface {
	Add(ctx context.Context, userID int64, shareID, title string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]account.SharedLink, error)
	OwnerByShareID(ctx context.Context, shareID string) (int64, error)
	RemoveByOwner(ctx context.Context, userID int64, shareID string) error
	RemoveGlobal(ctx context.Context, shareID string) (int64, error)
}

// Recorder 审计镜像，每个变更成功后在调用点显式触发
type Recorder interface {
	Record(ctx context.Context, acc account.Account, action audit.Action)
}
