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

// Package registry manages the versioned model directories: listing what is
// installed and pulling new versions from Hugging Face Hub.
package registry

import (
	"os"
	"path/filepath"
	"time"

	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/loader"
	"github.com/hasnainrazaa03/Project-Vimaan/pkg/vimaan/lib/modelversion"
)

// Version describes one installed model version.
type Version struct {
	Number     int       `json:"version"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
	Complete   bool      `json:"complete"`
	Missing    []string  `json:"missing,omitempty"`
}

// ListVersions returns the v<N> versions under root in ascending order.
func ListVersions(root string) ([]Version, error) {
	numbers, err := modelversion.DirVersions(root)
	if err != nil {
		return nil, err
	}

	versions := make([]Version, 0, len(numbers))
	for _, n := range numbers {
		dir := filepath.Join(root, modelversion.DirName(n))
		v := Version{
			Number:  n,
			Name:    modelversion.DirName(n),
			Path:    dir,
			Missing: loader.MissingArtifacts(dir),
		}
		v.Complete = len(v.Missing) == 0
		v.Size, v.ModifiedAt = dirStats(dir)
		versions = append(versions, v)
	}
	return versions, nil
}

// Latest returns the newest complete version, if any.
func Latest(root string) (Version, bool, error) {
	versions, err := ListVersions(root)
	if err != nil {
		return Version{}, false, err
	}
	for i := len(versions) - 1; i >= 0; i-- {
		if versions[i].Complete {
			return versions[i], true, nil
		}
	}
	return Version{}, false, nil
}

func dirStats(dir string) (int64, time.Time) {
	var size int64
	var modified time.Time
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, modified
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil || info.IsDir() {
			continue
		}
		size += info.Size()
		if info.ModTime().After(modified) {
			modified = info.ModTime()
		}
	}
	return size, modified
}
