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
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/labels"
)

// commandGroup is a set of sample commands of similar difficulty.
type commandGroup struct {
	Name string
	// OutOfScope commands are expected to predict the None intent.
	OutOfScope bool
	Commands   []string
}

var sampleCommands = []commandGroup{
	{Name: "Easy", Commands: []string{
		"set heading 270",
		"climb to 15000 feet",
		"maintain flight level 210",
		"gear up",
		"flaps down",
		"autopilot 1 on",
		"engine 1 off",
		"parking brake on",
	}},
	{Name: "Medium", Commands: []string{
		"fly heading 090",
		"change altitude to 8000",
		"request flight level 350",
		"turn to 180 degrees",
		"raise the landing gear",
		"lower the flaps",
		"engage autopilot 2",
		"set com 1 frequency 118.75",
		"please climb to 12000 feet",
		"could you set heading 315",
	}},
	{Name: "Hard", Commands: []string{
		"fly heading zero niner zero",
		"set altitude twenty thousand",
		"tune com 1 one two three point four five",
		"climb to flight level two hundred fifty",
		"set heading one hundred eighty degrees",
		"descend to seven thousand five hundred feet",
	}},
	{Name: "Edge cases", Commands: []string{
		"uh heading to 360",
		"can you set altitude 5000 feet",
		"please engage autopilot 1 now",
		"i think we should climb to 10000",
		"maybe turn right to 270 degrees",
		"let's set heading 045 degrees",
	}},
	{Name: "Out of scope", OutOfScope: true, Commands: []string{
		"what is the weather",
		"how are you doing",
		"what time is it",
		"tell me something interesting",
		"are we there yet",
	}},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the sample cockpit commands through the model",
	Long: `Predict a fixed list of sample commands, grouped from easy to out of
scope, and print the intent, slots and resolved action for each. Ends with a
summary of failures and out-of-scope commands that were not rejected.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().String("server", "", "test against a vimaan server at this URL instead of the local model")
	testCmd.Flags().Bool("raw", false, "skip slot postprocessing")
}

func runTest(cmd *cobra.Command, args []string) error {
	server, _ := cmd.Flags().GetString("server")
	raw, _ := cmd.Flags().GetBool("raw")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	session, err := openSession(ctx, server, logger)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	summary, err := runSamples(ctx, session, cmd.OutOrStdout(), sampleCommands, !raw)
	if err != nil {
		return err
	}
	summary.print(cmd.OutOrStdout())
	return nil
}

type testSummary struct {
	total int
	// failed holds commands the pipeline rejected.
	failed []string
	// accepted holds out-of-scope commands that got an in-scope intent.
	accepted []string
}

func runSamples(ctx context.Context, session predictSession, out io.Writer, groups []commandGroup, postprocess bool) (testSummary, error) {
	var summary testSummary
	rule := strings.Repeat("=", 60)

	for _, group := range groups {
		fmt.Fprintf(out, "\n### %s\n", group.Name)
		for _, text := range group.Commands {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			summary.total++

			fmt.Fprintf(out, "\n%s\nTesting: %s\n%s\n", rule, text, rule)
			res, err := session.Predict(ctx, text, postprocess)
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				summary.failed = append(summary.failed, text)
				continue
			}
			if err := printResult(out, res, false); err != nil {
				return summary, err
			}
			if group.OutOfScope && res.Intent != labels.NoIntent {
				summary.accepted = append(summary.accepted, text)
			}
		}
	}
	return summary, nil
}

func (s testSummary) print(out io.Writer) {
	fmt.Fprintf(out, "\n%d commands, %d failed, %d out-of-scope accepted\n", s.total, len(s.failed), len(s.accepted))
	for _, text := range s.failed {
		fmt.Fprintf(out, "  failed:   %s\n", text)
	}
	for _, text := range s.accepted {
		fmt.Fprintf(out, "  accepted: %s\n", text)
	}
}
