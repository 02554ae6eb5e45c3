package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"codehub.local/internal/platform/auth"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMsg 统一错误/提示响应体 {"msg": ...}
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// decodeJSON 解析请求体，失败时已写 400 响应
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// mustAccountID 从上下文取已认证账户 id，失败时已写错误响应
func mustAccountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Invalid or expired token")
		return 0, false
	}
	id, err := strconv.ParseInt(identity.AccountID, 10, 64)
	if err != nil {
		writeMsg(w, http.StatusUnauthorized, "Invalid or expired token")
		return 0, false
	}
	return id, true
}

// tryAccountID 可选认证场景，未登录返回 false 但不写响应
func tryAccountID(r *http.Request) (int64, bool) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(identity.AccountID, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
