// Package conf 定义服务配置结构与加载逻辑。
package conf

import "time"

// Config 是服务的根配置。
type Config struct {
	Service     ServiceConfig     `json:"service"`
	Server      ServerConfig      `json:"server"`
	Data        DataConfig        `json:"data"`
	Suggestions SuggestionsConfig `json:"suggestions"`
	Filmstrip   FilmstripConfig   `json:"filmstrip"`
	Extractor   ExtractorConfig   `json:"extractor"`
	Events      EventsConfig      `json:"events"`
	Worker      WorkerConfig      `json:"worker"`
}

// ServiceConfig 描述服务标识。
type ServiceConfig struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	HTTP HTTPConfig `json:"http"`
}

// HTTPConfig 描述 HTTP 监听与超时配置。
type HTTPConfig struct {
	Addr            string `json:"addr"`
	Timeout         string `json:"timeout"`
	QueryTimeout    string `json:"query_timeout"`
	MutationTimeout string `json:"mutation_timeout"`
	// PushToken 为事件推送端点的共享令牌，为空时拒绝所有推送。
	PushToken string `json:"push_token"`
}

// DataConfig 描述数据层配置。
type DataConfig struct {
	Database DatabaseConfig `json:"database"`
}

// DatabaseConfig 描述 PostgreSQL 连接配置。
type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	MaxConns int32  `json:"max_conns"`
}

// SuggestionsConfig 描述推荐用例配置。
type SuggestionsConfig struct {
	DefaultLimit    int    `json:"default_limit"`
	MaxLimit        int    `json:"max_limit"`
	MutualSampleMax int    `json:"mutual_sample_max"`
	CacheTTL        string `json:"cache_ttl"`
	FallbackEnabled bool   `json:"fallback_enabled"`
}

// FilmstripConfig 描述抽帧会话配置。
type FilmstripConfig struct {
	DefaultFrames  int    `json:"default_frames"`
	MaxFrames      int    `json:"max_frames"`
	SessionTTL     string `json:"session_ttl"`
	MaxSessions    int    `json:"max_sessions"`
	ExtractWorkers int    `json:"extract_workers"`
}

// ExtractorConfig 描述帧抽取实现配置。
type ExtractorConfig struct {
	// Mode 取值 ffmpeg 或 mock。
	Mode         string `json:"mode"`
	FFmpegBin    string `json:"ffmpeg_bin"`
	FrameTimeout string `json:"frame_timeout"`
	ScaleWidth   int    `json:"scale_width"`
}

// EventsConfig 描述事件桥发布配置。
type EventsConfig struct {
	// BridgeURL 为空时禁用 Outbox 外发。
	BridgeURL      string `json:"bridge_url"`
	PublishTimeout string `json:"publish_timeout"`
	SourceService  string `json:"source_service"`
}

// WorkerConfig 描述后台 Worker 配置。
type WorkerConfig struct {
	BatchSize    int    `json:"batch_size"`
	PollInterval string `json:"poll_interval"`
}

// 默认值,缺失或非法配置回退到这里。
const (
	DefaultHTTPAddr        = ":8080"
	DefaultTimeout         = 5 * time.Second
	DefaultQueryTimeout    = 3 * time.Second
	DefaultMutationTimeout = 5 * time.Second

	DefaultSuggestionLimit    = 20
	MaxSuggestionLimit        = 50
	DefaultMutualSampleMax    = 3
	DefaultSuggestionCacheTTL = 15 * time.Minute

	DefaultFilmstripFrames  = 8
	MaxFilmstripFrames      = 24
	DefaultFilmstripTTL     = 10 * time.Minute
	DefaultMaxSessions      = 256
	DefaultExtractWorkers   = 4
	DefaultFrameTimeout     = 10 * time.Second
	DefaultPublishTimeout   = 5 * time.Second
	DefaultWorkerBatchSize  = 100
	DefaultWorkerPollPeriod = 5 * time.Second
)

// Duration 解析时长字符串,非法或为空时返回默认值。
func Duration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// IntOr 返回正整数配置值,非正时返回默认值。
func IntOr(value, def int) int {
	if value <= 0 {
		return def
	}
	return value
}

// StringOr 返回非空配置值,为空时返回默认值。
func StringOr(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
