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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/antflydb/antfly-go/libaf/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
)

// Build information, set by main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vimaan",
	Short: "Aviation voice-command NLU",
	Long: `Vimaan maps cockpit commands ("climb to flight level two hundred fifty",
"gear up") to an intent, its slot values and the simulator action to run.

Configuration is read from vimaan.yaml (current directory or ~/.vimaan),
environment variables prefixed with VIMAAN_ and a .env file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		vimaan.Version = Version
		vimaan.GitCommit = GitCommit
		vimaan.BuildTime = BuildTime
	},
}

// Execute runs the root command.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./vimaan.yaml or ~/.vimaan/vimaan.yaml)")
	pf.String("models-dir", defaultModelsDir(), "directory holding "+loader.ModelName+"/v<N>/")
	pf.String("model-path", "", "use this model version directory instead of the newest")
	pf.Int("max-length", 0, "tokenizer window (default 64)")
	pf.String("backend", "", "inference backend (default: best available)")
	pf.String("gpu", "auto", "GPU mode (auto, cuda, off)")
	pf.Int("num-threads", 0, "intra-op threads per session (0 = backend default)")
	pf.String("dispatch-table", "", "YAML intent table overriding the builtin one")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-style", "", "log style (terminal, json, noop)")
	pf.String("log-file", "", "also write JSON logs to this rotating file")
	pf.String("onnx-library-path", "", "ONNX Runtime root directory (sets ONNXRUNTIME_ROOT)")

	for _, name := range []string{
		"models-dir", "model-path", "max-length", "backend", "gpu", "num-threads", "dispatch-table",
	} {
		mustBindPFlag(flagKey(name), pf.Lookup(name))
	}
	mustBindPFlag("log.level", pf.Lookup("log-level"))
	mustBindPFlag("log.style", pf.Lookup("log-style"))
	mustBindPFlag("log.file", pf.Lookup("log-file"))
	mustBindPFlag("onnx_library_path", pf.Lookup("onnx-library-path"))
}

func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

func defaultModelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "models"
	}
	return filepath.Join(home, ".vimaan", "models")
}

func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vimaan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".vimaan"))
		}
	}

	viper.SetEnvPrefix("VIMAAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
			os.Exit(1)
		}
	}
}

// newLogger builds the process logger from the log.* keys. With log.file set,
// every entry is also written as JSON to a rotating file.
func newLogger() *zap.Logger {
	logger := logging.NewLogger(&logging.Config{
		Level: logging.Level(viper.GetString("log.level")),
		Style: logging.Style(viper.GetString("log.style")),
	})

	path := viper.GetString("log.file")
	if path == "" {
		return logger
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    64, // MB
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		logger.Level(),
	)
	return logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	}))
}

// serverConfig builds the server configuration from viper.
func serverConfig() vimaan.Config {
	return vimaan.Config{
		ApiUrl:                viper.GetString("api_url"),
		ModelsDir:             viper.GetString("models_dir"),
		ModelPath:             viper.GetString("model_path"),
		MaxLength:             viper.GetInt("max_length"),
		Backend:               viper.GetString("backend"),
		Gpu:                   viper.GetString("gpu"),
		NumThreads:            viper.GetInt("num_threads"),
		CacheTtl:              viper.GetString("cache_ttl"),
		MaxConcurrentRequests: viper.GetInt("max_concurrent_requests"),
		MaxQueueSize:          viper.GetInt("max_queue_size"),
		RequestTimeout:        viper.GetString("request_timeout"),
		HistoryDb:             viper.GetString("history_db"),
		ReloadSchedule:        viper.GetString("reload_schedule"),
		DispatchTable:         viper.GetString("dispatch_table"),
	}
}

// applyRuntimeEnv exports settings consumed through the environment by the
// inference backend.
func applyRuntimeEnv() {
	if root := viper.GetString("onnx_library_path"); root != "" && os.Getenv("ONNXRUNTIME_ROOT") == "" {
		_ = os.Setenv("ONNXRUNTIME_ROOT", root)
	}
}

// flagKey maps a flag name to its config key ("api-url" -> "api_url").
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
