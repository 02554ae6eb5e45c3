package account

import (
	"errors"
	"regexp"
)

// 领域层统一的校验/冲突错误。
//
// 设计原因：
// - 上层（HTTP）可以用 errors.Is 稳定地映射状态码和 {msg} 响应体
// - 错误文案就是对外文案，集中在这里，避免 handler 各写一份
var (
	ErrInvalidUsername  = errors.New("Username can only contain letters, numbers, underscores, hyphens, and periods (5-30 characters).")
	ErrInvalidEmail     = errors.New("Invalid email format")
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters long")

	ErrEmailInUse    = errors.New("Email already in use")
	ErrUsernameTaken = errors.New("Username already taken")

	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrIncorrectPassword  = errors.New("Incorrect password")
	ErrUserNotFound       = errors.New("User not found")

	ErrUnsupportedLanguage = errors.New("Unsupported language")
	ErrLinkNotFound        = errors.New("Shared link not found")
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{5,30}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// ValidateUsername 用户名：5~30 位，仅字母/数字/下划线/点/连字符
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword 只约束最小长度，其余交给 bcrypt
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}
