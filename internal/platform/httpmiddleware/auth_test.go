package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codehub.local/internal/platform/auth"
)

func TestParseBearer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer tok", "tok"},
		{"Bearer  tok", "tok"}, // 多个空白也按字段切
		{"Bearer", ""},
		{"Basic dXNlcg==", ""},
		{"", ""},
		{"Bearer a b", ""},
	}
	for _, c := range cases {
		if got := parseBearer(c.header); got != c.want {
			t.Errorf("parseBearer(%q): got %q, want %q", c.header, got, c.want)
		}
	}
}

func newEchoHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.GetIdentity(r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(id.AccountID))
	})
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	ts, err := auth.NewHS256Service("secret", "codehub", time.Hour)
	if err != nil {
		t.Fatalf("NewHS256Service: %v", err)
	}
	h := AuthRequired(ts)(newEchoHandler(t))

	// 没有 token
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("missing token: got %d, want 403", rec.Code)
	}

	// token 无效
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: got %d, want 401", rec.Code)
	}

	// 正常 token，身份注入
	tok, err := ts.Sign("17")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "17" {
		t.Fatalf("valid token: got %d %q, want 200 \"17\"", rec.Code, rec.Body.String())
	}
}

func TestAuthOptional(t *testing.T) {
	t.Parallel()

	ts, _ := auth.NewHS256Service("secret", "codehub", time.Hour)
	h := AuthOptional(ts)(newEchoHandler(t))

	// 无 token：放行且无身份
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("no token: got %d, want 204", rec.Code)
	}

	// 无效 token：同样放行
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("bad token: got %d, want 204", rec.Code)
	}

	// 有效 token：注入身份
	tok, _ := ts.Sign("99")
	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Body.String() != "99" {
		t.Fatalf("valid token: got body %q, want \"99\"", rec.Body.String())
	}
}

func TestServiceKey(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// 未配置密钥：放行
	h := ServiceKey("")(next)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("no key configured: got %d, want 200", rec.Code)
	}

	// 配置密钥：缺 header 拒绝
	h = ServiceKey("svc-key")(next)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("missing key: got %d, want 403", rec.Code)
	}

	// 密钥匹配：放行
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("X-Service-Key", "svc-key")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("matching key: got %d, want 200", rec.Code)
	}
}
