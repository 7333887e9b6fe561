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

//go:build wireinject
// +build wireinject

package main

import (
	"github.com/forgegate/forgegate/internal/engine/bootstrap"
	"github.com/forgegate/forgegate/internal/engine/config"
	"github.com/forgegate/forgegate/internal/engine/router"
	"github.com/forgegate/forgegate/internal/engine/service"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/metrics"
	"github.com/google/wire"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// configuration layer
		config.ProviderSet,
		// logging (depends on config)
		log.ProviderSet,
		// metrics server (depends on config)
		metrics.ProviderSet,
		// gate, pipeline, storage and app wiring (depends on config)
		bootstrap.ProviderSet,
		// service layer (depends on pipeline, gate)
		service.ProviderSet,
		// router layer (depends on service)
		router.ProviderSet,
	))
}
