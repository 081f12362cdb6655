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

// Package modelversion resolves versioned artifacts. Directories are named
// v<N> and files <name>_v<N><ext>, N a positive integer; "latest" is the
// largest N present.
package modelversion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrNotFound is returned when no version (and no unversioned fallback)
// exists.
var ErrNotFound = errors.New("model version not found")

// DirVersions returns the versions of the v<N> directories under root in
// ascending order. A missing root has no versions.
func DirVersions(root string) ([]int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var versions []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if n, ok := parseDirVersion(e.Name()); ok {
			versions = append(versions, n)
		}
	}
	sort.Ints(versions)
	return versions, nil
}

func parseDirVersion(name string) (int, bool) {
	if !strings.HasPrefix(name, "v") {
		return 0, false
	}
	return parseVersion(name[1:])
}

func parseVersion(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// DirName renders the directory name of version n.
func DirName(n int) string {
	return "v" + strconv.Itoa(n)
}

// LatestDir returns the path and number of the highest v<N> directory under
// root.
func LatestDir(root string) (string, int, error) {
	versions, err := DirVersions(root)
	if err != nil {
		return "", 0, err
	}
	if len(versions) == 0 {
		return "", 0, fmt.Errorf("%w: no v<N> directory under %s", ErrNotFound, root)
	}
	n := versions[len(versions)-1]
	return filepath.Join(root, DirName(n)), n, nil
}

// NextDir returns the path and number of the first version after the
// current latest under root (v1 when there is none).
func NextDir(root string) (string, int, error) {
	versions, err := DirVersions(root)
	if err != nil {
		return "", 0, err
	}
	n := 1
	if len(versions) > 0 {
		n = versions[len(versions)-1] + 1
	}
	return filepath.Join(root, DirName(n)), n, nil
}

// splitBase splits "dir/name.ext" into its parts; the directory defaults to
// ".".
func splitBase(base string) (dir, name, ext string) {
	dir, file := filepath.Split(base)
	if dir == "" {
		dir = "."
	}
	ext = filepath.Ext(file)
	return dir, strings.TrimSuffix(file, ext), ext
}

// fileVersion reports the version of a file name of the form
// <name>_v<N><ext>.
func fileVersion(fileName, name, ext string) (int, bool) {
	prefix := name + "_v"
	if !strings.HasPrefix(fileName, prefix) || !strings.HasSuffix(fileName, ext) {
		return 0, false
	}
	return parseVersion(strings.TrimSuffix(strings.TrimPrefix(fileName, prefix), ext))
}

// fileVersions returns the highest <name>_v<N><ext> version next to base,
// 0 when there is none. A missing directory has no versions.
func fileVersions(base string) (latest int, latestPath string, err error) {
	dir, name, ext := splitBase(base)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, "", nil
		}
		return 0, "", fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n, ok := fileVersion(e.Name(), name, ext); ok && n > latest {
			latest, latestPath = n, filepath.Join(dir, e.Name())
		}
	}
	return latest, latestPath, nil
}

// FindLatestPath returns the highest <name>_v<N><ext> sibling of base, or
// base itself when no versioned file exists but base does.
func FindLatestPath(base string) (string, error) {
	_, latestPath, err := fileVersions(base)
	if err != nil {
		return "", err
	}
	if latestPath != "" {
		return latestPath, nil
	}
	if _, err := os.Stat(base); err == nil {
		return base, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, base)
}

// NextPath returns the <name>_v<N><ext> sibling of base that follows the
// current latest version (N=1 when there is none). Like NextDir it never
// fills gaps, so a new file always sorts last.
func NextPath(base string) (string, error) {
	latest, _, err := fileVersions(base)
	if err != nil {
		return "", err
	}
	dir, name, ext := splitBase(base)
	return filepath.Join(dir, name+"_v"+strconv.Itoa(latest+1)+ext), nil
}
