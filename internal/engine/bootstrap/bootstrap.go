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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgegate/forgegate/internal/engine/config"
	"github.com/forgegate/forgegate/internal/engine/router"
	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/metrics"
	"github.com/forgegate/forgegate/pkg/safe"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	HttpApp       *fiber.App
	MetricsServer *metrics.Server
	Logger        *log.Logger
	Registry      *gate.Registry
	DeployGate    *gate.Gate
	AppConf       *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *router.Router,
	logger *log.Logger,
	metricsServer *metrics.Server,
	registry *gate.Registry,
	deployGate *gate.Gate,
	appConf *config.AppConfig,
) (*App, func(), error) {
	httpApp := newHttpApp(rt, appConf)

	app := &App{
		HttpApp:       httpApp,
		MetricsServer: metricsServer,
		Logger:        logger,
		Registry:      registry,
		DeployGate:    deployGate,
		AppConf:       appConf,
	}

	cleanup := func() {
		// stop metrics server
		if metricsServer != nil {
			log.Info("Shutting down metrics server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.Errorw("Failed to stop metrics server", zap.Error(err))
			}
		}

		// drop the deployment gate; a torn-down deployment has nothing
		// left to signal
		if registry != nil && deployGate != nil {
			registry.Remove(deployGate.Handle())
		}

		log.Sync()
	}

	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), *config.AppConfig, error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, nil, err
	}

	appConf := app.AppConf
	log.Infow("deployment gate provisioned",
		"handle", app.DeployGate.Handle(),
		"signalUrl", GateSignalURL(&appConf.Gate, app.DeployGate.Handle()),
		"timeout", appConf.Gate.TimeoutDuration().String(),
	)

	return app, cleanup, appConf, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	appConf := app.AppConf

	// start metrics server
	if app.MetricsServer != nil {
		app.MetricsServer.Start()
	}

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// start HTTP server (async)
	safe.Go(func() {
		addr := appConf.Http.Addr()
		log.Infow("HTTP listener started",
			"address", addr,
		)
		if err := app.HttpApp.Listen(addr); err != nil {
			log.Errorw("HTTP listener failed",
				"address", addr,
				zap.Error(err),
			)
		}
	})

	sig := <-quit
	log.Infow("Received OS signal, shutting down gracefully...", "signal", sig)

	// close HTTP server first so no new work arrives
	shutdownTimeout := time.Duration(appConf.Http.ShutdownTimeout) * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server shut down gracefully")
	}

	cleanup()

	log.Info("Server shutdown complete")
}

// GateSignalURL builds the externally reachable signal URL for a gate
// handle. This is the URL the notifier bridge PUTs against.
func GateSignalURL(conf *gate.Conf, handle string) string {
	return fmt.Sprintf("%s/api/v1/gates/%s", conf.SignalBaseURL, handle)
}
