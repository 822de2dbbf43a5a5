//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/bionicotaku/lingo-services-social/internal/clients/eventbus"
	"github.com/bionicotaku/lingo-services-social/internal/conf"
	"github.com/bionicotaku/lingo-services-social/internal/repositories"
	"github.com/bionicotaku/lingo-services-social/internal/services"
	"github.com/bionicotaku/lingo-services-social/internal/workers"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireWorker 组装投影同步 Worker 进程。
func wireWorker(*conf.Config, log.Logger) (*workers.ProjectionWorker, func(), error) {
	panic(wire.Build(
		repositories.ProviderSet,
		services.ProviderSet,
		eventbus.NewPublisher,
		workers.ProviderSet,
	))
}
