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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict [text...]",
	Short: "Predict intent and slots for cockpit commands",
	Long: `Run each argument through the NLU pipeline. With no arguments, read
commands interactively from stdin until "exit", "quit" or EOF.

Examples:
  # One-shot with the newest local model
  vimaan predict "climb to flight level two hundred fifty"

  # Interactive prompt against a running server
  vimaan predict --server http://localhost:11435

  # Skip slot postprocessing and print JSON
  vimaan predict --raw --json "raise the landing gear"`,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().String("server", "", "predict against a vimaan server at this URL instead of the local model")
	predictCmd.Flags().Bool("json", false, "print results as JSON")
	predictCmd.Flags().Bool("raw", false, "skip slot postprocessing")
}

func runPredict(cmd *cobra.Command, args []string) error {
	server, _ := cmd.Flags().GetString("server")
	asJSON, _ := cmd.Flags().GetBool("json")
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

	out := cmd.OutOrStdout()
	if len(args) > 0 {
		for _, text := range args {
			if err := predictAndPrint(ctx, session, out, text, !raw, asJSON); err != nil {
				return err
			}
		}
		return nil
	}
	return repl(ctx, session, cmd.InOrStdin(), out, !raw, asJSON)
}

func predictAndPrint(ctx context.Context, session predictSession, out io.Writer, text string, postprocess, asJSON bool) error {
	res, err := session.Predict(ctx, text, postprocess)
	if err != nil {
		return fmt.Errorf("predicting %q: %w", text, err)
	}
	return printResult(out, res, asJSON)
}

// repl reads one command per line. A failing command is reported and the
// prompt continues.
func repl(ctx context.Context, session predictSession, in io.Reader, out io.Writer, postprocess, asJSON bool) error {
	fmt.Fprintln(out, `Vimaan NLU. Type a command, or "exit" to quit.`)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(text) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if err := predictAndPrint(ctx, session, out, text, postprocess, asJSON); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
