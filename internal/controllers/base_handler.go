package controllers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/go-kratos/kratos/v2/transport"
)

// 网关透传的用户信息头,Base64URL 编码的 JSON 声明。
const userInfoHeader = "x-apigateway-api-userinfo"

// HandlerType 区分读写请求,两者使用不同超时。
type HandlerType int

const (
	// HandlerTypeQuery 表示读请求。
	HandlerTypeQuery HandlerType = iota
	// HandlerTypeMutation 表示写请求。
	HandlerTypeMutation
)

// HandlerTimeouts 描述各类请求的超时配置,零值使用默认。
type HandlerTimeouts struct {
	Query    time.Duration
	Mutation time.Duration
}

// Metadata 为从请求头解析出的调用方信息。
type Metadata struct {
	UserID          string
	InvalidUserInfo bool
}

// BaseHandler 提供各 Handler 共用的身份解析与超时控制。
type BaseHandler struct {
	timeouts HandlerTimeouts
}

// NewBaseHandler 构造 BaseHandler。
func NewBaseHandler(timeouts HandlerTimeouts) *BaseHandler {
	if timeouts.Query <= 0 {
		timeouts.Query = 3 * time.Second
	}
	if timeouts.Mutation <= 0 {
		timeouts.Mutation = 5 * time.Second
	}
	return &BaseHandler{timeouts: timeouts}
}

// ExtractMetadata 从传输层请求头解析网关用户信息。
// 头缺失返回零值,头存在但解析失败时置 InvalidUserInfo。
func (h *BaseHandler) ExtractMetadata(ctx context.Context) Metadata {
	tr, ok := transport.FromServerContext(ctx)
	if !ok {
		return Metadata{}
	}
	raw := tr.RequestHeader().Get(userInfoHeader)
	if raw == "" {
		return Metadata{}
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		if padded, padErr := base64.URLEncoding.DecodeString(raw); padErr == nil {
			decoded = padded
		} else {
			return Metadata{InvalidUserInfo: true}
		}
	}
	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return Metadata{InvalidUserInfo: true}
	}
	return Metadata{UserID: claims.Sub}
}

// WithTimeout 按请求类型派生带超时的上下文。
func (h *BaseHandler) WithTimeout(ctx context.Context, kind HandlerType) (context.Context, context.CancelFunc) {
	timeout := h.timeouts.Query
	if kind == HandlerTypeMutation {
		timeout = h.timeouts.Mutation
	}
	return context.WithTimeout(ctx, timeout)
}
