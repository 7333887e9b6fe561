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

package router

import (
	"github.com/forgegate/forgegate/internal/engine/service"
	"github.com/forgegate/forgegate/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
)

// ProviderSet provides the router.
var ProviderSet = wire.NewSet(
	NewRouter,
)

// Router binds the engine's HTTP surface to the service layer.
type Router struct {
	services *service.Services
}

func NewRouter(services *service.Services) *Router {
	return &Router{services: services}
}

// RegisterRoutes installs middleware and the /api/v1 route tree.
func (rt *Router) RegisterRoutes(app *fiber.App) {
	app.Use(middleware.AccessLogMiddleware())
	app.Use(middleware.HttpMetricsMiddleware())

	v1 := app.Group("/api/v1")
	rt.webhookRouter(v1)
	rt.gateRouter(v1)
	rt.executionRouter(v1)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}
