package main

import (
	"flag"
	"os"

	"github.com/bionicotaku/lingo-services-social/internal/conf"
	"github.com/bionicotaku/lingo-services-social/pkg/metrics"
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

var (
	// Name 为服务名,注入日志与注册信息。
	Name = "lingo-services-social"
	// Version 由构建参数注入。
	Version string

	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf configs/config.yaml")
}

func newApp(logger log.Logger, hs *khttp.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	helper := log.NewHelper(logger)

	cfg, cleanupConf, err := conf.Load(flagconf)
	if err != nil {
		helper.Fatalw("msg", "load config failed", "error", err)
	}
	defer cleanupConf()

	metrics.Init()

	app, cleanup, err := wireApp(cfg, logger)
	if err != nil {
		helper.Fatalw("msg", "initialize application failed", "error", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		helper.Fatalw("msg", "application exited with error", "error", err)
	}
}
