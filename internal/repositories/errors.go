package repositories

import "errors"

// 仓储层公共错误，供上层以 errors.Is 判定。
var (
	// ErrProfileNotFound 表示用户资料投影不存在。
	ErrProfileNotFound = errors.New("profile projection not found")
	// ErrVideoNotFound 表示视频投影不存在。
	ErrVideoNotFound = errors.New("video projection not found")
)
