package httpmiddleware

import (
	"encoding/json"
	"net/http"
)

// abort 统一的中间件错误响应体 {"msg": ...}
func abort(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
