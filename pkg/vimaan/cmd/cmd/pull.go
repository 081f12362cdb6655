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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/cli"
)

var pullCmd = &cobra.Command{
	Use:   "pull <repo> [repo...]",
	Short: "Pull a model version from HuggingFace",
	Long: `Download the model artifacts of a HuggingFace repository into the next
version directory (models/vimaan_nlu_model_best/v<N+1>/). A running server
picks the new version up on its reload schedule or via POST /api/models/reload.

The repository must contain model.onnx, intent_classifier.onnx,
intent_map.json, slot_map.json and tokenizer.json or vocab.txt.

Examples:
  # Pull a public repository
  vimaan pull hf:acme/vimaan-nlu-onnx

  # Pull a gated repository
  HF_TOKEN=hf_... vimaan pull acme/vimaan-nlu-private

  # Pull to a custom directory
  vimaan pull --models-dir /opt/vimaan/models hf:acme/vimaan-nlu-onnx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)

	pullCmd.Flags().String("hf-token", "",
		"HuggingFace API token for gated models (or use HF_TOKEN env var)")
	mustBindPFlag("hf_token", pullCmd.Flags().Lookup("hf-token"))
}

func runPull(cmd *cobra.Command, args []string) error {
	for _, ref := range args {
		fmt.Fprintf(cmd.OutOrStdout(), "\n=== Pulling %s ===\n", ref)

		if err := cli.PullFromHuggingFace(ref, cli.HuggingFaceOptions{
			ModelsDir: viper.GetString("models_dir"),
			HFToken:   viper.GetString("hf_token"),
			Out:       cmd.OutOrStdout(),
		}); err != nil {
			return fmt.Errorf("failed to pull %s: %w", ref, err)
		}
	}
	return nil
}
