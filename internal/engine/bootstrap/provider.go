// Copyright 2026 Forgegate Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"github.com/forgegate/forgegate/internal/engine/config"
	"github.com/forgegate/forgegate/internal/engine/router"
	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/forgegate/forgegate/internal/pkg/notifier"
	"github.com/forgegate/forgegate/internal/pkg/pipeline"
	"github.com/forgegate/forgegate/internal/pkg/runner"
	"github.com/forgegate/forgegate/internal/pkg/storage"
	"github.com/forgegate/forgegate/pkg/git"
	pkghttp "github.com/forgegate/forgegate/pkg/http"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
)

// ProviderSet assembles the engine's object graph from the app config.
var ProviderSet = wire.NewSet(
	ProvideLogConf,
	ProvidePipelineConf,
	ProvideGateConf,
	ProvideMetricsConf,
	ProvideStorage,
	ProvideSource,
	ProvideRunner,
	ProvideRegistry,
	ProvideDeploymentGate,
	ProvideStore,
	ProvideNotifier,
	ProvideOrchestrator,
	NewApp,
)

func ProvideLogConf(appConf *config.AppConfig) *log.Conf {
	return &appConf.Log
}

func ProvidePipelineConf(appConf *config.AppConfig) *pipeline.Conf {
	return &appConf.Pipeline
}

func ProvideGateConf(appConf *config.AppConfig) *gate.Conf {
	return &appConf.Gate
}

func ProvideMetricsConf(appConf *config.AppConfig) metrics.MetricsConfig {
	return appConf.Metrics
}

func ProvideStorage(appConf *config.AppConfig) (storage.IStorage, error) {
	return storage.NewStorage(&appConf.Storage)
}

func ProvideSource(conf *pipeline.Conf) pipeline.SourceProvider {
	return pipeline.NewGitSource(conf.RepoBaseURL, git.Auth{
		Username: conf.RepoUsername,
		Token:    conf.RepoToken,
	})
}

func ProvideRunner() runner.Runner {
	return runner.NewLocalRunner()
}

func ProvideRegistry() *gate.Registry {
	return gate.NewRegistry()
}

// ProvideDeploymentGate provisions this deployment's completion gate.
// One gate per deployment; it is armed the moment the engine starts.
func ProvideDeploymentGate(registry *gate.Registry, conf *gate.Conf) *gate.Gate {
	return registry.Create(conf.TimeoutDuration())
}

func ProvideStore() *pipeline.Store {
	return pipeline.NewStore()
}

func ProvideNotifier(store *pipeline.Store) pipeline.Notifier {
	return notifier.NewBridge(store)
}

func ProvideOrchestrator(
	conf *pipeline.Conf,
	store *pipeline.Store,
	source pipeline.SourceProvider,
	run runner.Runner,
	st storage.IStorage,
	n pipeline.Notifier,
	gateConf *gate.Conf,
	deployGate *gate.Gate,
) *pipeline.Orchestrator {
	gateURL := GateSignalURL(gateConf, deployGate.Handle())
	return pipeline.New(conf, store, source, run, st, n, gateURL)
}

// newHttpApp builds the fiber application and mounts the route tree.
func newHttpApp(rt *router.Router, appConf *config.AppConfig) *fiber.App {
	app := pkghttp.NewFiberApp(&appConf.Http)
	rt.RegisterRoutes(app)
	return app
}
