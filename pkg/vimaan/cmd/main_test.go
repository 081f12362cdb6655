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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/cmd/cmd"
)

func TestSetBuildInfo(t *testing.T) {
	version, commit, date = "v1.2.3", "abc123", "2025-06-01"
	t.Cleanup(func() { version, commit, date = "dev", "none", "unknown" })

	setBuildInfo()
	assert.Equal(t, "v1.2.3", cmd.Version)
	assert.Equal(t, "abc123", cmd.GitCommit)
	assert.Equal(t, "2025-06-01", cmd.BuildTime)
}
