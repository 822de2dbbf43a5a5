package conf

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
)

// Load 从配置文件与 SOCIAL_ 前缀环境变量加载配置。
// 返回的清理函数负责关闭配置源。
func Load(path string) (*Config, func(), error) {
	c := config.New(
		config.WithSource(
			file.NewSource(path),
			env.NewSource("SOCIAL_"),
		),
	)
	if err := c.Load(); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("load config %s: %w", path, err)
	}

	var cfg Config
	if err := c.Scan(&cfg); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("scan config: %w", err)
	}
	cleanup := func() { _ = c.Close() }
	return &cfg, cleanup, nil
}
