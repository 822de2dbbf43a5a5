package vo

import "time"

// Filmstrip 表示一次抽帧会话的视图。
type Filmstrip struct {
	SessionID string
	VideoID   string
	Frames    []FilmstripFrame
	Missing   []MissingFrame
	Partial   bool
	ExpiresAt time.Time
}

// FilmstripFrame 描述单个可用抽帧。
type FilmstripFrame struct {
	Index        int
	OffsetMicros int64
	ContentType  string
	SizeBytes    int
}

// MissingFrame 描述抽取失败被跳过的采样点。
type MissingFrame struct {
	Index        int
	OffsetMicros int64
	Reason       string
}

// FrameBlob 承载单帧图像数据。
type FrameBlob struct {
	ContentType string
	Data        []byte
}

// CoverSelection 表示封面选择结果。
type CoverSelection struct {
	VideoID      string
	OffsetMicros int64
	UpdatedAt    time.Time
}
