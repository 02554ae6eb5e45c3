package account

import "time"

// Counts 单个类别下 语言key -> 次数
type Counts map[string]int64

// Clone 复制一份计数，镜像时按值拷贝，避免共享底层 map
func (c Counts) Clone() Counts {
	if c == nil {
		return nil
	}
	out := make(Counts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Account 用户账户，唯一数据源（single source of truth）
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time // 只有登录成功才会写入

	GenerateCounts Counts
	RefactorCounts Counts
	RunCounts      Counts
}

// SharedLink 用户分享的代码片段，shareId 全局唯一
type SharedLink struct {
	ShareID string `json:"shareId"`
	Title   string `json:"title"`
}

// Category 计数类别
type Category string

const (
	CategoryGenerate Category = "generate"
	CategoryRefactor Category = "refactor"
	CategoryRun      Category = "run"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryGenerate, CategoryRefactor, CategoryRun:
		return true
	}
	return false
}

// istZone 业务时间统一用 UTC+5:30 记录
var istZone = time.FixedZone("IST", 5*3600+30*60)

func NowIST() time.Time {
	return time.Now().In(istZone)
}
