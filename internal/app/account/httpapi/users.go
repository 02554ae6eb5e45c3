package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"codehub.local/internal/app/account"
	"codehub.local/internal/app/account/audit"
	"codehub.local/internal/platform/auth"
	"codehub.local/internal/platform/metrics"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewRegisterHandler(users UserStore, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		acc, err := users.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrEmailInUse),
				errors.Is(err, account.ErrUsernameTaken),
				errors.Is(err, account.ErrInvalidUsername),
				errors.Is(err, account.ErrInvalidEmail),
				errors.Is(err, account.ErrPasswordTooShort):
				writeMsg(w, http.StatusBadRequest, err.Error())
			default:
				writeMsg(w, http.StatusInternalServerError, "Server error")
			}
			return
		}
		rec.Record(r.Context(), acc, audit.ActionCreate)
		metrics.RegistrationsTotal.Inc()
		writeMsg(w, http.StatusCreated, "User registered successfully")
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Msg      string `json:"msg,omitempty"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

func NewLoginHandler(users UserStore, rec Recorder, ts auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		acc, err := users.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrInvalidEmail),
				errors.Is(err, account.ErrPasswordTooShort),
				errors.Is(err, account.ErrInvalidCredentials):
				writeMsg(w, http.StatusBadRequest, err.Error())
			default:
				writeMsg(w, http.StatusInternalServerError, "Server error")
			}
			return
		}
		token, err := ts.Sign(strconv.FormatInt(acc.ID, 10))
		if err != nil {
			slog.Error("token sign failed", "err", err)
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		rec.Record(r.Context(), acc, audit.ActionUpdate)
		metrics.LoginsTotal.Inc()
		writeJSON(w, http.StatusOK, tokenResponse{Token: token, Username: acc.Username})
	}
}

type protectedResponse struct {
	Msg      string `json:"msg"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

func NewProtectedHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := mustAccountID(w, r)
		if !ok {
			return
		}
		acc, err := users.FindByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, account.ErrUserNotFound) {
				writeMsg(w, http.StatusNotFound, "User not found")
				return
			}
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		resp := protectedResponse{Msg: "Protected data", Username: acc.Username}
		if r.URL.Query().Get("email") == "true" {
			resp.Email = acc.Email
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func NewChangeUsernameHandler(users UserStore, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			NewUsername string `json:"newUsername"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.NewUsername == "" {
			writeMsg(w, http.StatusBadRequest, "New username is required")
			return
		}
		id, ok := mustAccountID(w, r)
		if !ok {
			return
		}
		acc, err := users.ChangeUsername(r.Context(), id, req.NewUsername)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrInvalidUsername):
				writeMsg(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, account.ErrUsernameTaken):
				writeMsg(w, http.StatusBadRequest, "Username is already taken")
			case errors.Is(err, account.ErrUserNotFound):
				writeMsg(w, http.StatusNotFound, "User not found")
			default:
				writeMsg(w, http.StatusInternalServerError, "Server error")
			}
			return
		}
		rec.Record(r.Context(), acc, audit.ActionUpdate)
		writeMsg(w, http.StatusOK, "Username updated successfully")
	}
}

func NewChangeEmailHandler(users UserStore, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			NewEmail string `json:"newEmail"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.NewEmail == "" {
			writeMsg(w, http.StatusBadRequest, "New email is required")
			return
		}
		id, ok := mustAccountID(w, r)
		if !ok {
			return
		}
		acc, err := users.ChangeEmail(r.Context(), id, req.NewEmail)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrInvalidEmail):
				writeMsg(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, account.ErrEmailInUse):
				writeMsg(w, http.StatusBadRequest, "Email is already taken")
			case errors.Is(err, account.ErrUserNotFound):
				writeMsg(w, http.StatusNotFound, "User not found")
			default:
				writeMsg(w, http.StatusInternalServerError, "Server error")
			}
			return
		}
		rec.Record(r.Context(), acc, audit.ActionUpdate)
		writeMsg(w, http.StatusOK, "Email updated successfully")
	}
}

// NewChangePasswordHandler 改密后签发新 token 返回给调用方。
// 旧 token 不会失效，这是沿用的已知弱点，见 DESIGN.md。
func NewChangePasswordHandler(users UserStore, rec Recorder, ts auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			NewPassword     string `json:"newPassword"`
			ConfirmPassword string `json:"confirmPassword"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.NewPassword == "" || req.ConfirmPassword == "" {
			writeMsg(w, http.StatusBadRequest, "New password and confirm password are required")
			return
		}
		if req.NewPassword != req.ConfirmPassword {
			writeMsg(w, http.StatusBadRequest, "New password and confirm password do not match")
			return
		}
		id, ok := mustAccountID(w, r)
		if !ok {
			return
		}
		acc, err := users.ChangePassword(r.Context(), id, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrPasswordTooShort):
				writeMsg(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, account.ErrUserNotFound):
				writeMsg(w, http.StatusNotFound, "User not found")
			default:
				writeMsg(w, http.StatusInternalServerError, "Server error")
			}
			return
		}
		token, err := ts.Sign(strconv.FormatInt(acc.ID, 10))
		if err != nil {
			slog.Error("token sign failed", "err", err)
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		rec.Record(r.Context(), acc, audit.ActionUpdate)
		writeJSON(w, http.StatusOK, tokenResponse{
			Msg:      "Password updated successfully",
			Token:    token,
			Username: acc.Username,
		})
	}
}

// NewDeleteAccountHandler 先镜像 delete 快照再删号，镜像失败不阻塞删除
func NewDeleteAccountHandler(users UserStore, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := mustAccountID(w, r)
		if !ok {
			return
		}
		acc, err := users.FindByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, account.ErrUserNotFound) {
				writeMsg(w, http.StatusNotFound, "User not found")
				return
			}
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		rec.Record(r.Context(), acc, audit.ActionDelete)
		if err := users.Delete(r.Context(), id); err != nil {
			if errors.Is(err, account.ErrUserNotFound) {
				writeMsg(w, http.StatusNotFound, "User not found")
				return
			}
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		writeMsg(w, http.StatusOK, "Account deleted successfully")
	}
}

func NewVerifyPasswordHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		id, ok := mustAccountID(w, r)
		if !ok {
			return
		}
		if err := users.VerifyPassword(r.Context(), id, req.Password); err != nil {
			switch {
			case errors.Is(err, account.ErrPasswordTooShort):
				writeMsg(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, account.ErrIncorrectPassword):
				writeMsg(w, http.StatusBadRequest, "Incorrect password")
			case errors.Is(err, account.ErrUserNotFound):
				writeMsg(w, http.StatusNotFound, "User not found")
			default:
				writeMsg(w, http.StatusInternalServerError, "Server error")
			}
			return
		}
		writeMsg(w, http.StatusOK, "Password verified")
	}
}
