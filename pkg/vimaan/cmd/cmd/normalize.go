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
	"strings"

	"github.com/spf13/cobra"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/normalize"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <text...>",
	Short: "Show how a command is normalized before tokenization",
	Long: `Print the normalized form of the text: lowercased, phonetic digits
("niner") and spoken numbers ("two hundred fifty") rewritten as digits.

Examples:
  vimaan normalize tune com 1 one two three point four five
  vimaan normalize --slot-value "twelve thousand"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slotValue, _ := cmd.Flags().GetBool("slot-value")
		text := strings.Join(args, " ")

		if slotValue {
			fmt.Fprintln(cmd.OutOrStdout(), normalize.SlotValue(text))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), normalize.Normalize(text))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().Bool("slot-value", false, "print the canonical slot value instead")
}
