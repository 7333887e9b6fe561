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

package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/forgegate/forgegate/internal/pkg/pipeline"
	"github.com/forgegate/forgegate/internal/pkg/storage"
	"github.com/forgegate/forgegate/pkg/env"
	"github.com/forgegate/forgegate/pkg/http"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/metrics"
)

type AppConfig struct {
	Log      log.Conf              `mapstructure:"log"`
	Http     http.Http             `mapstructure:"http"`
	Metrics  metrics.MetricsConfig `mapstructure:"metrics"`
	Storage  storage.Storage       `mapstructure:"storage"`
	Pipeline pipeline.Conf         `mapstructure:"pipeline"`
	Gate     gate.Conf             `mapstructure:"gate"`
}

var (
	cfg  AppConfig
	mu   sync.RWMutex
	once sync.Once
)

func NewConf(confDir string) *AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
	})
	mu.RLock()
	defer mu.RUnlock()
	return &cfg
}

// LoadConfigFile load config file
func LoadConfigFile(confDir string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confDir)
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("The configuration changes, re-analyze the configuration file", "file", e.Name)
		if err := config.ReadInConfig(); err != nil {
			log.Errorw("failed to re-read configuration file", "error", err, "file", e.Name)
			return
		}
		mu.Lock()
		if err := config.Unmarshal(&cfg); err != nil {
			mu.Unlock()
			log.Errorw("failed to unmarshal configuration file", "error", err, "file", e.Name)
			return
		}
		applyDefaults(&cfg)

		// Only the log level takes effect at runtime; pipeline and gate
		// settings are fixed for the lifetime of the deployment.
		if err := log.SetLevel(&cfg.Log, cfg.Log.Level); err != nil {
			log.Errorw("failed to apply reloaded log level", "error", err, "file", e.Name)
		}
		mu.Unlock()
		log.Infow("configuration reloaded successfully", "file", e.Name)
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Pipeline.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.Gate.Validate(); err != nil {
		return cfg, err
	}
	log.Infow("config file loaded",
		"path", confDir,
	)

	return cfg, nil
}

func applyDefaults(c *AppConfig) {
	applySecretOverrides(c)
	c.Http.SetDefaults()
	c.Metrics.SetDefaults()
	c.Pipeline.SetDefaults()
	c.Gate.SetDefaults()
}

// applySecretOverrides lets credentials come from the environment so
// they can stay out of the config file.
func applySecretOverrides(c *AppConfig) {
	c.Pipeline.SharedSecret = env.GetEnvString("FORGEGATE_SHARED_SECRET", c.Pipeline.SharedSecret)
	c.Pipeline.RepoToken = env.GetEnvString("FORGEGATE_REPO_TOKEN", c.Pipeline.RepoToken)
	c.Storage.AccessKey = env.GetEnvString("FORGEGATE_STORAGE_ACCESS_KEY", c.Storage.AccessKey)
	c.Storage.SecretKey = env.GetEnvString("FORGEGATE_STORAGE_SECRET_KEY", c.Storage.SecretKey)
}
