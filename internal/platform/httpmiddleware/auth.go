package httpmiddleware

import (
	"net/http"
	"strings"

	"codehub.local/internal/platform/auth"
)

// parseBearer 解析 Authorization header：按空白切分取第二段。
// 格式不对返回空串。
func parseBearer(header string) string {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return ""
	}
	return fields[1]
}

// AuthRequired 要求请求携带有效的 bearer token。
// 缺 token 返回 403，token 无效返回 401。
func AuthRequired(ts auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				abort(w, http.StatusForbidden, "No token provided")
				return
			}
			token := parseBearer(header)
			if token == "" {
				abort(w, http.StatusForbidden, "No token provided")
				return
			}
			accountID, err := ts.Verify(token)
			if err != nil {
				abort(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			ctx := auth.WithIdentity(r.Context(), auth.Identity{AccountID: accountID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthOptional 可选认证：有有效 token 就注入身份，没有或无效就直接放行。
// 免登录删除分享链接的路径依赖这个行为。
func AuthOptional(ts auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := parseBearer(r.Header.Get("Authorization"))
			if token != "" {
				if accountID, err := ts.Verify(token); err == nil {
					r = r.WithContext(auth.WithIdentity(r.Context(), auth.Identity{AccountID: accountID}))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ServiceKey 共享密钥门禁。key 为空时不校验（兼容没有密钥的旧调用方），
// 配置后要求 X-Service-Key 匹配。
func ServiceKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" && r.Header.Get("X-Service-Key") != key {
				abort(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
