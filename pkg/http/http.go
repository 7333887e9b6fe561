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

package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Http holds the HTTP server configuration.
type Http struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	AccessLog       bool   `mapstructure:"accessLog"`
	ReadTimeout     int    `mapstructure:"readTimeout"`
	WriteTimeout    int    `mapstructure:"writeTimeout"`
	IdleTimeout     int    `mapstructure:"idleTimeout"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
	BodyLimit       int    `mapstructure:"bodyLimit"`
}

func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "127.0.0.1"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.ReadTimeout == 0 {
		h.ReadTimeout = 60
	}
	if h.WriteTimeout == 0 {
		h.WriteTimeout = 60
	}
	if h.IdleTimeout == 0 {
		h.IdleTimeout = 60
	}
	if h.ShutdownTimeout == 0 {
		h.ShutdownTimeout = 10
	}
	if h.BodyLimit == 0 {
		h.BodyLimit = 4 * 1024 * 1024 // 4MB, webhook payloads are small
	}
}

// Addr returns the listen address.
func (h *Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// NewFiberApp creates a fiber application from the configuration.
func NewFiberApp(conf *Http) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "forgegate",
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(conf.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(conf.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(conf.IdleTimeout) * time.Second,
		BodyLimit:             conf.BodyLimit,
	})
}
