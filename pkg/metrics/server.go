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

package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/safe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsConfig holds the metrics endpoint configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

func (c *MetricsConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 9090
	}
	if c.Path == "" {
		c.Path = "/metrics"
	}
}

// Server serves the Prometheus scrape endpoint on its own listener.
type Server struct {
	conf     MetricsConfig
	registry *prometheus.Registry
	srv      *http.Server
}

// NewServer creates a metrics server with a fresh registry.
func NewServer(conf MetricsConfig) *Server {
	conf.SetDefaults()
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Server{
		conf:     conf,
		registry: reg,
	}
}

// GetRegistry returns the server's registry for collector registration.
func (s *Server) GetRegistry() *prometheus.Registry {
	return s.registry
}

// Start begins serving the scrape endpoint in the background.
func (s *Server) Start() {
	if !s.conf.Enabled {
		log.Debugw("metrics server disabled")
		return
	}

	mux := http.NewServeMux()
	mux.Handle(s.conf.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	s.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.conf.Host, s.conf.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	safe.Go(func() {
		log.Infow("metrics server listening", "addr", s.srv.Addr, "path", s.conf.Path)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("metrics server stopped", "error", err)
		}
	})
}

// Stop shuts the metrics server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
