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

// Package cli provides shared CLI functions for vimaan model management.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/registry"
)

// HuggingFaceOptions contains options for pulling from HuggingFace
type HuggingFaceOptions struct {
	ModelsDir string
	HFToken   string
	Out       io.Writer
}

// ListOptions contains options for listing models
type ListOptions struct {
	ModelsDir  string
	BinaryName string // Used for help messages
	Out        io.Writer
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// PullFromHuggingFace pulls a model repository into the next version
// directory.
func PullFromHuggingFace(ref string, opts HuggingFaceOptions) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repoID, err := registry.ParseRef(ref)
	if err != nil {
		return err
	}

	hfToken := opts.HFToken
	if hfToken == "" {
		hfToken = os.Getenv("HF_TOKEN")
	}
	return Pull(ctx, registry.NewHubSource(repoID, hfToken), repoID, opts)
}

// Pull downloads src into the next version directory and reports progress.
func Pull(ctx context.Context, src registry.Source, name string, opts HuggingFaceOptions) error {
	out := output(opts.Out)
	_, _ = fmt.Fprintf(out, "Pulling from HuggingFace: %s\n\n", name)
	_, _ = fmt.Fprintln(out, "Downloading files...")

	v, err := registry.Pull(ctx, src, loader.VersionsRoot(opts.ModelsDir), ProgressPrinter(out))
	if err != nil {
		return fmt.Errorf("failed to pull model: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\n✓ Model pulled successfully to %s (%s, %s)\n", v.Path, v.Name, FormatBytes(v.Size))
	return nil
}

// ListLocalModels lists locally installed model versions
func ListLocalModels(opts ListOptions) error {
	out := output(opts.Out)
	root := loader.VersionsRoot(opts.ModelsDir)
	_, _ = fmt.Fprintf(out, "Local models in %s:\n\n", root)

	versions, err := registry.ListVersions(root)
	if err != nil {
		return err
	}

	if len(versions) == 0 {
		binaryName := opts.BinaryName
		if binaryName == "" {
			binaryName = "vimaan"
		}
		_, _ = fmt.Fprintln(out, "No models found locally.")
		_, _ = fmt.Fprintf(out, "\nUse '%s pull <owner/repo>' to download a model.\n", binaryName)
		return nil
	}

	latest := versions[len(versions)-1].Number
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "VERSION\tSIZE\tMODIFIED\tSTATUS")
	for _, v := range versions {
		status := "ok"
		if !v.Complete {
			status = "missing " + strings.Join(v.Missing, ",")
		}
		name := v.Name
		if v.Number == latest {
			name += " (latest)"
		}
		modified := "-"
		if !v.ModifiedAt.IsZero() {
			modified = v.ModifiedAt.Format("2006-01-02 15:04")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, FormatBytes(v.Size), modified, status)
	}
	return w.Flush()
}

// FormatBytes formats bytes as human-readable string
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// ProgressPrinter returns a progress handler that draws a bar on w.
func ProgressPrinter(w io.Writer) registry.ProgressHandler {
	return func(downloaded, total int64, filename string) {
		if total <= 0 {
			_, _ = fmt.Fprintf(w, "\r  %s: %s", filename, FormatBytes(downloaded))
			return
		}

		percent := float64(downloaded) / float64(total) * 100
		barWidth := 30
		filled := int(float64(barWidth) * float64(downloaded) / float64(total))

		bar := strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled)
		_, _ = fmt.Fprintf(w, "\r  %s: [%s] %.1f%% (%s/%s)",
			filename, bar, percent, FormatBytes(downloaded), FormatBytes(total))

		if downloaded >= total {
			_, _ = fmt.Fprintln(w)
		}
	}
}
