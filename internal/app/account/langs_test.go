package account

import "testing"

func TestCounterKey(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"python":     "py",
		"javascript": "js",
		"typescript": "ts",
		"csharp":     "cs",
		"kotlin":     "kt",
		"go":         "go",
		"HtmlJsCss":  "HtmlJsCss",
	}
	for tag, want := range cases {
		got, ok := CounterKey(tag)
		if !ok || got != want {
			t.Errorf("CounterKey(%q): got %q/%v, want %q", tag, got, ok, want)
		}
	}

	for _, tag := range []string{"cobol", "Python", "PY", ""} {
		if key, ok := CounterKey(tag); ok {
			t.Errorf("CounterKey(%q): unexpectedly resolved to %q", tag, key)
		}
	}
}

func TestDefaultCounts(t *testing.T) {
	t.Parallel()

	counts := DefaultCounts()
	if len(counts) != 20 {
		t.Fatalf("DefaultCounts: got %d keys, want 20", len(counts))
	}
	for key, n := range counts {
		if n != 0 {
			t.Errorf("DefaultCounts: key %q starts at %d, want 0", key, n)
		}
	}
	// 两次调用必须是独立的 map
	a, b := DefaultCounts(), DefaultCounts()
	a["py"] = 5
	if b["py"] != 0 {
		t.Fatal("DefaultCounts: returned maps share storage")
	}
}
