package repo

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"codehub.local/internal/app/account"
)

const ownerCacheTTL = 10 * time.Minute

// LinksRepo 分享链接注册表。share_id 全局唯一由表约束兜底；
// rdb 可为 nil，此时 shareId -> owner 的索引不走缓存。
type LinksRepo struct {
	db  *pgxpool.Pool
	rdb *redis.Client
}

func NewLinksRepo(db *pgxpool.Pool, rdb *redis.Client) *LinksRepo {
	return &LinksRepo{db: db, rdb: rdb}
}

func ownerCacheKey(shareID string) string {
	return "linkowner:" + shareID
}

// Add 不存在才追加，同一账户重复的 shareId 静默忽略。
// 返回是否真的插入了新行（幂等的重复调用返回 false）。
func (l *LinksRepo) Add(ctx context.Context, userID int64, shareID, title string) (bool, error) {
	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := l.db.Exec(dbctx,
		"INSERT INTO shared_links (user_id, share_id, title) VALUES ($1,$2,$3) ON CONFLICT (share_id) DO NOTHING",
		userID, shareID, title,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		slog.Error(err.Error())
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListByUser 按插入顺序返回，内部存储 id 不外泄
func (l *LinksRepo) ListByUser(ctx context.Context, userID int64) ([]account.SharedLink, error) {
	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := l.db.Query(dbctx, "SELECT share_id, title FROM shared_links WHERE user_id=$1 ORDER BY id", userID)
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}
	defer rows.Close()

	links := make([]account.SharedLink, 0, 8)
	for rows.Next() {
		var link account.SharedLink
		if err := rows.Scan(&link.ShareID, &link.Title); err != nil {
			slog.Error(err.Error())
			return nil, err
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		slog.Error(err.Error())
		return nil, err
	}
	return links, nil
}

// OwnerByShareID 跨账户反查 owner，免登录删除路径用。先查 Redis 再落库。
func (l *LinksRepo) OwnerByShareID(ctx context.Context, shareID string) (int64, error) {
	if l.rdb != nil {
		if v, err := l.rdb.Get(ctx, ownerCacheKey(shareID)).Result(); err == nil {
			if id, perr := strconv.ParseInt(v, 10, 64); perr == nil {
				return id, nil
			}
		}
	}

	dbctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	var userID int64
	if err := l.db.QueryRow(dbctx, "SELECT user_id FROM shared_links WHERE share_id=$1 LIMIT 1", shareID).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, account.ErrLinkNotFound
		}
		slog.Error(err.Error())
		return 0, err
	}

	if l.rdb != nil {
		// 缓存写失败无所谓，下一次再查库
		cacheCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_ = l.rdb.Set(cacheCtx, ownerCacheKey(shareID), strconv.FormatInt(userID, 10), ownerCacheTTL).Err()
	}
	return userID, nil
}

// RemoveByOwner 删除某账户自己的链接
func (l *LinksRepo) RemoveByOwner(ctx context.Context, userID int64, shareID string) error {
	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := l.db.Exec(dbctx, "DELETE FROM shared_links WHERE user_id=$1 AND share_id=$2", userID, shareID)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrLinkNotFound
	}
	l.invalidateOwner(ctx, shareID)
	return nil
}

// RemoveGlobal 只凭 shareId 删除，返回原 owner 的账户 id。
// 给过期文件服务这类拿不出用户 token 的调用方用。
func (l *LinksRepo) RemoveGlobal(ctx context.Context, shareID string) (int64, error) {
	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var userID int64
	if err := l.db.QueryRow(dbctx, "DELETE FROM shared_links WHERE share_id=$1 RETURNING user_id", shareID).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, account.ErrLinkNotFound
		}
		slog.Error(err.Error())
		return 0, err
	}
	l.invalidateOwner(ctx, shareID)
	return userID, nil
}

func (l *LinksRepo) invalidateOwner(ctx context.Context, shareID string) {
	if l.rdb == nil {
		return
	}
	cacheCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_ = l.rdb.Del(cacheCtx, ownerCacheKey(shareID)).Err()
}
