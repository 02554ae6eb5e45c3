package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"codehub.local/internal/app/account"
	"codehub.local/internal/app/account/audit"
)

// AuditRepo 审计镜像的落库端。调用方（Mirror）自己消化错误，这里不打日志。
type AuditRepo struct {
	db *pgxpool.Pool
}

func NewAuditRepo(db *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{db: db}
}

// Upsert 同一 (username, email) 只保留最新一条快照
func (a *AuditRepo) Upsert(ctx context.Context, e audit.Entry) error {
	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	links := e.SharedLinks
	if links == nil {
		links = []account.SharedLink{} // jsonb 列里存 [] 而不是 null
	}

	_, err := a.db.Exec(dbctx, `
INSERT INTO audit_log (username, email, last_login, created_date, generate_counts, refactor_counts, run_counts, shared_links, action_type, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (username, email) DO UPDATE SET
  last_login = EXCLUDED.last_login,
  created_date = EXCLUDED.created_date,
  generate_counts = EXCLUDED.generate_counts,
  refactor_counts = EXCLUDED.refactor_counts,
  run_counts = EXCLUDED.run_counts,
  shared_links = EXCLUDED.shared_links,
  action_type = EXCLUDED.action_type,
  updated_at = EXCLUDED.updated_at
`,
		e.Username, e.Email, e.LastLogin, e.CreatedAt,
		e.GenerateCounts, e.RefactorCounts, e.RunCounts,
		links, string(e.Action), e.Timestamp,
	)
	return err
}
