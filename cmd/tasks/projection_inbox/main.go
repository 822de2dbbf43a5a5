// projection_inbox 进程负责应用入站事件并外发 Outbox 事件。
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/conf"
	"github.com/bionicotaku/lingo-services-social/pkg/metrics"
	"github.com/go-kratos/kratos/v2/log"
)

var (
	// Name 为任务进程名。
	Name = "lingo-services-social-projection"
	// Version 由构建参数注入。
	Version string

	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf configs/config.yaml")
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

	worker, cleanup, err := wireWorker(cfg, logger)
	if err != nil {
		helper.Fatalw("msg", "initialize worker failed", "error", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := worker.Stop(stopCtx); err != nil {
			helper.Errorw("msg", "worker stop failed", "error", err)
		}
	}()

	if err := worker.Start(ctx); err != nil {
		helper.Fatalw("msg", "worker exited with error", "error", err)
	}
	helper.Infow("msg", "worker shutdown complete")
}
