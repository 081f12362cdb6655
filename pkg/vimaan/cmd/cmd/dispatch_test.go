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
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/dispatch"
)

func TestExportDispatch(t *testing.T) {
	base := filepath.Join(t.TempDir(), "dispatch.yaml")

	var out bytes.Buffer
	require.NoError(t, exportDispatch(&out, "", base))
	v1 := filepath.Join(filepath.Dir(base), "dispatch_v1.yaml")
	assert.FileExists(t, v1)
	assert.Contains(t, out.String(), v1)

	// Exporting from the configured table picks up its latest version.
	out.Reset()
	require.NoError(t, exportDispatch(&out, base, base))
	assert.FileExists(t, filepath.Join(filepath.Dir(base), "dispatch_v2.yaml"))

	out.Reset()
	require.NoError(t, showDispatch(&out, base))
	assert.Contains(t, out.String(), "dispatch_v2.yaml")
	for _, intent := range dispatch.Builtin().Handled() {
		assert.Contains(t, out.String(), intent)
	}
}

func TestExportDispatchErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		base   string
		errMsg string
	}{
		{"no base", "", "", "no base path"},
		{"missing source", filepath.Join(t.TempDir(), "nope.yaml"), filepath.Join(t.TempDir(), "out.yaml"), "nope.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := exportDispatch(&out, tt.source, tt.base)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Empty(t, out.String())
		})
	}
}

func TestShowDispatchBuiltin(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, showDispatch(&out, ""))
	assert.Contains(t, out.String(), "Dispatch table: builtin")
	assert.Contains(t, out.String(), "toggle_landing_gear")
}
