package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"codehub.local/internal/app/account"
)

// UsersRepo 账户存储：唯一性、口令哈希、登录时间戳、用量计数都在这一张表上
type UsersRepo struct {
	db *pgxpool.Pool
}

func NewUsersRepo(db *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{db: db}
}

const accountCols = "id, username, email, password_hash, created_at, last_login, generate_counts, refactor_counts, run_counts"

// counterColumns 类别 -> 列名。闭集，Increment 里拼 SQL 只允许用这里的值。
var counterColumns = map[account.Category]string{
	account.CategoryGenerate: "generate_counts",
	account.CategoryRefactor: "refactor_counts",
	account.CategoryRun:      "run_counts",
}

func scanAccount(row pgx.Row) (account.Account, error) {
	var acc account.Account
	err := row.Scan(
		&acc.ID, &acc.Username, &acc.Email, &acc.PasswordHash,
		&acc.CreatedAt, &acc.LastLogin,
		&acc.GenerateCounts, &acc.RefactorCounts, &acc.RunCounts,
	)
	return acc, err
}

// Register 注册新账户。检查顺序与对外文案强耦合：先查邮箱冲突，再查用户名冲突，
// 然后才做格式校验。
func (u *UsersRepo) Register(ctx context.Context, username, email, password string) (account.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	if err := u.db.QueryRow(dbctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)", email).Scan(&exists); err != nil {
		slog.Error(err.Error())
		return account.Account{}, err
	}
	if exists {
		return account.Account{}, account.ErrEmailInUse
	}
	if err := u.db.QueryRow(dbctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)", username).Scan(&exists); err != nil {
		slog.Error(err.Error())
		return account.Account{}, err
	}
	if exists {
		return account.Account{}, account.ErrUsernameTaken
	}

	if err := account.ValidateUsername(username); err != nil {
		return account.Account{}, err
	}
	if err := account.ValidateEmail(email); err != nil {
		return account.Account{}, err
	}
	if err := account.ValidatePassword(password); err != nil {
		return account.Account{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error(err.Error())
		return account.Account{}, err
	}

	acc, err := scanAccount(u.db.QueryRow(dbctx,
		"INSERT INTO users (username, email, password_hash, created_at, last_login, generate_counts, refactor_counts, run_counts) VALUES ($1,$2,$3,$4,NULL,$5,$6,$7) RETURNING "+accountCols,
		username, email, string(passwordHash), account.NowIST(),
		account.DefaultCounts(), account.DefaultCounts(), account.DefaultCounts(),
	))
	if err != nil {
		// 并发注册时唯一约束兜底
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(strings.ToLower(pgErr.ConstraintName), "email") {
				return account.Account{}, account.ErrEmailInUse
			}
			return account.Account{}, account.ErrUsernameTaken
		}
		slog.Error(err.Error())
		return account.Account{}, err
	}
	return acc, nil
}

// Authenticate 校验先于查询；查无此邮箱和密码不匹配返回同一个错误，不泄露差别
func (u *UsersRepo) Authenticate(ctx context.Context, email, password string) (account.Account, error) {
	if err := account.ValidateEmail(email); err != nil {
		return account.Account{}, err
	}
	if err := account.ValidatePassword(password); err != nil {
		return account.Account{}, err
	}

	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	acc, err := scanAccount(u.db.QueryRow(dbctx, "SELECT "+accountCols+" FROM users WHERE email=$1 LIMIT 1", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrInvalidCredentials
		}
		slog.Error(err.Error())
		return account.Account{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return account.Account{}, account.ErrInvalidCredentials
	}

	acc, err = scanAccount(u.db.QueryRow(dbctx, "UPDATE users SET last_login=$2 WHERE id=$1 RETURNING "+accountCols, acc.ID, account.NowIST()))
	if err != nil {
		slog.Error(err.Error())
		return account.Account{}, err
	}
	return acc, nil
}

func (u *UsersRepo) FindByID(ctx context.Context, id int64) (account.Account, error) {
	dbctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	acc, err := scanAccount(u.db.QueryRow(dbctx, "SELECT "+accountCols+" FROM users WHERE id=$1 LIMIT 1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrUserNotFound
		}
		slog.Error(err.Error())
		return account.Account{}, err
	}
	return acc, nil
}

func (u *UsersRepo) FindByUsername(ctx context.Context, username string) (account.Account, error) {
	dbctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	acc, err := scanAccount(u.db.QueryRow(dbctx, "SELECT "+accountCols+" FROM users WHERE username=$1 LIMIT 1", strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrUserNotFound
		}
		slog.Error(err.Error())
		return account.Account{}, err
	}
	return acc, nil
}

func (u *UsersRepo) ChangeUsername(ctx context.Context, id int64, newUsername string) (account.Account, error) {
	newUsername = strings.TrimSpace(newUsername)
	if err := account.ValidateUsername(newUsername); err != nil {
		return account.Account{}, err
	}

	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	if err := u.db.QueryRow(dbctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)", newUsername).Scan(&exists); err != nil {
		slog.Error(err.Error())
		return account.Account{}, err
	}
	if exists {
		return account.Account{}, account.ErrUsernameTaken
	}

	acc, err := scanAccount(u.db.QueryRow(dbctx, "UPDATE users SET username=$2 WHERE id=$1 RETURNING "+accountCols, id, newUsername))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return account.Account{}, account.ErrUsernameTaken
		}
		slog.Error(err.Error())
		return account.Account{}, err
	}
	return acc, nil
}

func (u *UsersRepo) ChangeEmail(ctx context.Context, id int64, newEmail string) (account.Account, error) {
	newEmail = strings.TrimSpace(newEmail)
	if err := account.ValidateEmail(newEmail); err != nil {
		return account.Account{}, err
	}

	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	if err := u.db.QueryRow(dbctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)", newEmail).Scan(&exists); err != nil {
		slog.Error(err.Error())
		return account.Account{}, err
	}
	if exists {
		return account.Account{}, account.ErrEmailInUse
	}

	acc, err := scanAccount(u.db.QueryRow(dbctx, "UPDATE users SET email=$2 WHERE id=$1 RETURNING "+accountCols, id, newEmail))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return account.Account{}, account.ErrEmailInUse
		}
		slog.Error(err.Error())
		return account.Account{}, err
	}
	return acc, nil
}

// ChangePassword 重置口令哈希。已签发的旧 token 不会失效，直到各自过期。
func (u *UsersRepo) ChangePassword(ctx context.Context, id int64, newPassword string) (account.Account, error) {
	if err := account.ValidatePassword(newPassword); err != nil {
		return account.Account{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error(err.Error())
		return account.Account{}, err
	}

	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	acc, err := scanAccount(u.db.QueryRow(dbctx, "UPDATE users SET password_hash=$2 WHERE id=$1 RETURNING "+accountCols, id, string(passwordHash)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrUserNotFound
		}
		slog.Error(err.Error())
		return account.Account{}, err
	}
	return acc, nil
}

// VerifyPassword 只读校验，用于敏感操作前的二次确认
func (u *UsersRepo) VerifyPassword(ctx context.Context, id int64, password string) error {
	if err := account.ValidatePassword(password); err != nil {
		return err
	}

	dbctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	var hash string
	if err := u.db.QueryRow(dbctx, "SELECT password_hash FROM users WHERE id=$1 LIMIT 1", id).Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.ErrUserNotFound
		}
		slog.Error(err.Error())
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return account.ErrIncorrectPassword
	}
	return nil
}

func (u *UsersRepo) Delete(ctx context.Context, id int64) error {
	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := u.db.Exec(dbctx, "DELETE FROM users WHERE id=$1", id)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrUserNotFound
	}
	return nil
}

// Increment 单条 UPDATE 里完成 读-加一-写，依赖 Postgres 的行级原子性；
// 并发自增彼此不会丢更新。标签不在注册表里时不碰任何数据。
func (u *UsersRepo) Increment(ctx context.Context, username string, category account.Category, tag string) (account.Account, error) {
	key, ok := account.CounterKey(tag)
	if !ok {
		return account.Account{}, account.ErrUnsupportedLanguage
	}
	col, ok := counterColumns[category]
	if !ok {
		return account.Account{}, fmt.Errorf("unknown counter category %q", category)
	}

	dbctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := fmt.Sprintf(
		"UPDATE users SET %[1]s = jsonb_set(COALESCE(%[1]s,'{}'::jsonb), $2, (COALESCE(%[1]s->>$3,'0')::bigint + 1)::text::jsonb) WHERE username=$1 RETURNING %[2]s",
		col, accountCols,
	)
	acc, err := scanAccount(u.db.QueryRow(dbctx, query, strings.TrimSpace(username), []string{key}, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrUserNotFound
		}
		slog.Error(err.Error())
		return account.Account{}, err
	}
	return acc, nil
}
