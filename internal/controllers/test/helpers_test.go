package controllers_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/stretchr/testify/require"
)

var stdLogger = log.NewStdLogger(io.Discard)

// headerCarrier 为测试用的请求头实现。
type headerCarrier map[string][]string

func (h headerCarrier) Get(key string) string {
	values := h[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (h headerCarrier) Set(key, value string) { h[key] = []string{value} }

func (h headerCarrier) Add(key, value string) { h[key] = append(h[key], value) }

func (h headerCarrier) Keys() []string {
	keys := make([]string, 0, len(h))
	for key := range h {
		keys = append(keys, key)
	}
	return keys
}

func (h headerCarrier) Values(key string) []string { return h[key] }

// stubTransport 模拟 HTTP 传输层上下文。
type stubTransport struct {
	request headerCarrier
	reply   headerCarrier
}

func newStubTransport() *stubTransport {
	return &stubTransport{request: headerCarrier{}, reply: headerCarrier{}}
}

func (t *stubTransport) Kind() transport.Kind            { return transport.KindHTTP }
func (t *stubTransport) Endpoint() string                { return "http://127.0.0.1:8000" }
func (t *stubTransport) Operation() string               { return "" }
func (t *stubTransport) RequestHeader() transport.Header { return t.request }
func (t *stubTransport) ReplyHeader() transport.Header   { return t.reply }

func encodeUserInfo(t *testing.T, claims map[string]any) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(payload)
}

// serverContext 构造带网关用户信息头的传输层上下文。
func serverContext(t *testing.T, userInfo string) context.Context {
	t.Helper()
	tr := newStubTransport()
	if userInfo != "" {
		tr.request.Set("x-apigateway-api-userinfo", userInfo)
	}
	return transport.NewServerContext(context.Background(), tr)
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	return serverContext(t, encodeUserInfo(t, map[string]any{"sub": userID}))
}
