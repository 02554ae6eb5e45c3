package httpapi

import (
	"errors"
	"net/http"

	"codehub.local/internal/app/account"
	"codehub.local/internal/app/account/audit"
	"codehub.local/internal/platform/metrics"
)

type countRequest struct {
	Username string `json:"username"`
	Language string `json:"language"`
}

// NewCountHandler 三个计数端点共用，category 在注册路由时固定。
// 这些端点是编辑器后台上报用的，不带 token，只认 body 里的用户名。
func NewCountHandler(users UserStore, rec Recorder, category account.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req countRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		acc, err := users.Increment(r.Context(), req.Username, category, req.Language)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrUnsupportedLanguage):
				writeMsg(w, http.StatusBadRequest, "Unsupported language")
			case errors.Is(err, account.ErrUserNotFound):
				writeMsg(w, http.StatusNotFound, "User not found")
			default:
				writeMsg(w, http.StatusInternalServerError, "Server error")
			}
			return
		}
		if key, ok := account.CounterKey(req.Language); ok {
			metrics.UsageIncrementsTotal.WithLabelValues(string(category), key).Inc()
		}
		rec.Record(r.Context(), acc, audit.ActionUpdate)
		w.WriteHeader(http.StatusNoContent)
	}
}
