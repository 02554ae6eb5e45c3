package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// once 保证指标只注册一次，重复注册同名指标会 panic
	once sync.Once

	// HTTPRequestsTotal 累计请求数。
	// route 用路由模板（如 /api/user/sharedLink/{shareId}），不要用真实 path，避免高基数 label。
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDurationSeconds 请求耗时分布，用于算 P95/P99
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// HTTPInflightRequests 正在处理中的请求数
	HTTPInflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// RegistrationsTotal 注册成功次数
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "account_registrations_total",
			Help: "Total number of successful registrations.",
		},
	)

	// LoginsTotal 登录成功次数
	LoginsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "account_logins_total",
			Help: "Total number of successful logins.",
		},
	)

	// UsageIncrementsTotal 按类别/语言 key 统计的用量计数自增次数
	UsageIncrementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usage_increments_total",
			Help: "Total number of usage counter increments.",
		},
		[]string{"category", "lang"},
	)

	// AuditMirrorFailuresTotal 审计镜像写失败次数（失败只记指标和日志，不影响主流程）
	AuditMirrorFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_mirror_failures_total",
			Help: "Total number of failed audit mirror writes.",
		},
	)
)

// Init 注册指标，只允许调用一次生效
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			HTTPInflightRequests,
			RegistrationsTotal,
			LoginsTotal,
			UsageIncrementsTotal,
			AuditMirrorFailuresTotal,
		)
	})
}
