// Copyright 2025 Antfly, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/antflydb/antfly-go/libaf/healthserver"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the vimaan server",
	Long: `Load the newest model version and serve the NLU API.

Examples:
  # Serve the newest version under ~/.vimaan/models
  vimaan run

  # Pin a version and record every prediction
  vimaan run --model-path ~/.vimaan/models/vimaan_nlu_model_best/v3 --history-db vimaan.db

  # Pick up newly pulled versions every ten minutes
  vimaan run --reload-schedule "@every 10m"`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.String("api-url", vimaan.DefaultApiUrl, "address the API listens on")
	f.String("cache-ttl", vimaan.DefaultCacheTTL.String(), "prediction cache TTL (0 disables)")
	f.Int("max-concurrent-requests", 0, "concurrent predictions (default GOMAXPROCS)")
	f.Int("max-queue-size", vimaan.DefaultMaxQueueSize, "requests allowed to wait for a slot")
	f.String("request-timeout", vimaan.DefaultRequestTimeout.String(), "maximum time a request waits in the queue")
	f.String("history-db", "", "SQLite file to record predictions to")
	f.String("reload-schedule", "", `cron spec for checking for newer model versions (e.g. "@every 10m")`)
	f.Int("health-port", 4200, "health/metrics server port")

	for _, name := range []string{
		"api-url", "cache-ttl", "max-concurrent-requests", "max-queue-size",
		"request-timeout", "history-db", "reload-schedule", "health-port",
	} {
		mustBindPFlag(flagKey(name), f.Lookup(name))
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()
	defer func() {
		_ = logger.Sync()
	}()
	applyRuntimeEnv()

	logger.Info("Running as vimaan")

	// Track readiness state
	ready := &atomic.Bool{}
	readyC := make(chan struct{})

	// Start health server with readiness checker
	healthserver.Start(logger, viper.GetInt("health_port"), ready.Load)

	// Wait for ready signal in background
	go func() {
		<-readyC
		ready.Store(true)
		logger.Info("Vimaan is ready")
	}()

	vimaan.RunAsServer(ctx, logger, serverConfig(), readyC)
	return nil
}
