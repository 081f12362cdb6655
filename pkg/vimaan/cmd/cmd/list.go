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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List local model versions",
	Long: `List the model versions installed under the models directory, with
their size and whether every required artifact is present.

Examples:
  vimaan list
  vimaan list --models-dir /opt/vimaan/models`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	return cli.ListLocalModels(cli.ListOptions{
		ModelsDir:  viper.GetString("models_dir"),
		BinaryName: "vimaan",
		Out:        cmd.OutOrStdout(),
	})
}
