package account

// counterKeys 外部语言标签 -> 内部计数 key 的静态注册表。
//
// 设计原因：
// - 原来散落在 switch 里的分支改成数据表，新增语言只改这里一行
// - 闭集：不在表里的标签一律拒绝，计数 map 的 key 永远可控
var counterKeys = map[string]string{
	"python":     "py",
	"javascript": "js",
	"HtmlJsCss":  "HtmlJsCss",
	"c":          "c",
	"cpp":        "cpp",
	"java":       "java",
	"csharp":     "cs",
	"rust":       "rust",
	"go":         "go",
	"shell":      "shell",
	"sql":        "sql",
	"mongodb":    "mongodb",
	"swift":      "swift",
	"ruby":       "ruby",
	"typescript": "ts",
	"dart":       "dart",
	"kotlin":     "kt",
	"perl":       "perl",
	"scala":      "scala",
	"julia":      "julia",
}

// CounterKey 把外部语言标签解析为计数 key，不认识的标签返回 false
func CounterKey(tag string) (string, bool) {
	key, ok := counterKeys[tag]
	return key, ok
}

// DefaultCounts 返回一份全 0 的计数 map，注册时三个类别各用一份
func DefaultCounts() Counts {
	out := make(Counts, len(counterKeys))
	for _, key := range counterKeys {
		out[key] = 0
	}
	return out
}
