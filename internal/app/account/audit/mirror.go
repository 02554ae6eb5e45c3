package audit

import (
	"context"
	"log/slog"
	"time"

	"codehub.local/internal/app/account"
	"codehub.local/internal/platform/metrics"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry 账户某一时刻的去范式化快照，按 (username, email) 维护一条最新状态，
// 不是追加式日志
type Entry struct {
	Username       string
	Email          string
	LastLogin      *time.Time
	CreatedAt      time.Time
	GenerateCounts account.Counts
	RefactorCounts account.Counts
	RunCounts      account.Counts
	SharedLinks    []account.SharedLink
	Action         Action
	Timestamp      time.Time
}

// Store 镜像条目的落库端
type Store interface {
	Upsert(ctx context.Context, e Entry) error
}

// LinkSource 快照里要带上账户当前的全部分享链接
type LinkSource interface {
	ListByUser(ctx context.Context, userID int64) ([]account.SharedLink, error)
}

// Emitter 可选的审计事件外发端（如 Kafka），失败只记日志
type Emitter interface {
	Emit(e Event)
	Close()
}

// Event 外发给下游消费方的轻量审计事件
type Event struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Action   Action    `json:"action"`
	At       time.Time `json:"at"`
}

// Mirror 账户变更的影子记录器。Record 在变更调用点被显式同步调用，
// 但任何失败都只记日志和指标，绝不打断主流程。
type Mirror struct {
	store   Store
	links   LinkSource
	emitter Emitter
}

// New emitter 可以传 nil
func New(store Store, links LinkSource, emitter Emitter) *Mirror {
	return &Mirror{store: store, links: links, emitter: emitter}
}

func (m *Mirror) Record(ctx context.Context, acc account.Account, action Action) {
	links, err := m.links.ListByUser(ctx, acc.ID)
	if err != nil {
		slog.Error("audit mirror: list links failed", "username", acc.Username, "err", err)
		links = nil
	}

	e := Entry{
		Username:       acc.Username,
		Email:          acc.Email,
		LastLogin:      acc.LastLogin,
		CreatedAt:      acc.CreatedAt,
		GenerateCounts: acc.GenerateCounts.Clone(),
		RefactorCounts: acc.RefactorCounts.Clone(),
		RunCounts:      acc.RunCounts.Clone(),
		SharedLinks:    links,
		Action:         action,
		Timestamp:      account.NowIST(),
	}
	if err := m.store.Upsert(ctx, e); err != nil {
		metrics.AuditMirrorFailuresTotal.Inc()
		slog.Error("audit mirror: upsert failed", "username", acc.Username, "action", string(action), "err", err)
	}

	if m.emitter != nil {
		m.emitter.Emit(Event{
			Username: acc.Username,
			Email:    acc.Email,
			Action:   action,
			At:       e.Timestamp,
		})
	}
}
