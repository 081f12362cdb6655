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

// Command vimaan runs the Vimaan aviation NLU service.
//
// Vimaan turns spoken or typed cockpit commands into an intent, slot values
// and the simulator action they map to, using a joint intent+slot ONNX model.
//
// Usage:
//
//	vimaan run                         # Start the server
//	vimaan predict "gear up"           # Predict with the local model
//	vimaan predict --server URL        # Interactive prompt against a server
//	vimaan normalize "flight level two hundred fifty"
//	vimaan test                        # Run the builtin command list
//	vimaan pull hf:<owner>/<repo>      # Download a model version
//	vimaan list                        # List local model versions
package main

import (
	"runtime"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/cmd/cmd"
)

// https://goreleaser.com/cookbooks/using-main.version/
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	runtime.SetMutexProfileFraction(1) // Enable mutex profiling
	runtime.SetBlockProfileRate(1)     // Sample every blocking event
	setBuildInfo()
	cmd.Execute()
}

func setBuildInfo() {
	cmd.Version = version
	cmd.GitCommit = commit
	cmd.BuildTime = date
}
