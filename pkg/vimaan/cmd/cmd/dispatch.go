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
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/dispatch"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Inspect and version dispatch tables",
}

var dispatchShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active dispatch table",
	Long: `Print which dispatch table file is active and the intents it handles.
With dispatch_table set to dispatch.yaml, the highest dispatch_v<N>.yaml
next to it is the active file.

Examples:
  vimaan dispatch show
  vimaan dispatch show --dispatch-table /etc/vimaan/dispatch.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showDispatch(cmd.OutOrStdout(), viper.GetString("dispatch_table"))
	},
}

var dispatchExportCmd = &cobra.Command{
	Use:   "export [base]",
	Short: "Write the active dispatch table as a new version",
	Long: `Write the active dispatch table to the next dispatch_v<N>.yaml next to
base. Without base the configured dispatch_table is used. Exporting the
builtin table gives a starting point for a custom one.

Examples:
  vimaan dispatch export ./dispatch.yaml
  vimaan dispatch export --dispatch-table ./dispatch.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := viper.GetString("dispatch_table")
		base := source
		if len(args) == 1 {
			base = args[0]
		}
		return exportDispatch(cmd.OutOrStdout(), source, base)
	},
}

func init() {
	rootCmd.AddCommand(dispatchCmd)
	dispatchCmd.AddCommand(dispatchShowCmd)
	dispatchCmd.AddCommand(dispatchExportCmd)
}

func showDispatch(out io.Writer, source string) error {
	table, err := dispatch.Load(source)
	if err != nil {
		return err
	}
	path := table.Path
	if path == "" {
		path = "builtin"
	}
	fmt.Fprintf(out, "Dispatch table: %s\n", path)
	for _, intent := range table.Handled() {
		fmt.Fprintf(out, "  %s\n", intent)
	}
	return nil
}

func exportDispatch(out io.Writer, source, base string) error {
	if base == "" {
		return errors.New("no base path: pass one or set dispatch_table")
	}
	table, err := dispatch.Load(source)
	if err != nil {
		return err
	}
	path, err := dispatch.WriteNext(base, table)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d intents to %s\n", len(table.Intents), path)
	return nil
}
