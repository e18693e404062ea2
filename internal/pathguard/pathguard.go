// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package pathguard resolves user-supplied paths to canonical, symlink-free
// absolute paths and verifies they are contained in the allowed roots.
// Every filesystem-touching operation goes through it before any I/O.
package pathguard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"fsward/internal/fserr"
)

const maxPathLength = 4096

// Guard checks resolved paths against a fixed set of canonical roots.
// The roots are established once at startup and never change.
type Guard struct {
	roots []string
}

// New creates a Guard over the given roots. The roots must already be
// canonical absolute directory paths (config validation guarantees this).
func New(roots []string) *Guard {
	return &Guard{roots: append([]string{}, roots...)}
}

// Roots returns the allowed roots in their configured order.
func (g *Guard) Roots() []string {
	return append([]string{}, g.roots...)
}

// ValidatePathString validates raw path input before resolution.
func ValidatePathString(path string) error {
	if strings.TrimSpace(path) == "" {
		return fserr.New(fserr.CodeInvalidParams, "path cannot be empty")
	}
	if strings.IndexByte(path, 0) != -1 {
		return fserr.New(fserr.CodeInvalidParams, "path contains null byte")
	}
	if !utf8.ValidString(path) {
		return fserr.New(fserr.CodeInvalidParams, "path is not valid UTF-8")
	}
	for _, r := range path {
		if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Me, r) {
			return fserr.New(fserr.CodeInvalidParams, "path contains unsupported unicode combining mark")
		}
	}
	if len(path) > maxPathLength {
		return fserr.Newf(fserr.CodeInvalidParams, "path exceeds maximum length of %d characters", maxPathLength)
	}
	return nil
}

// ResolveExisting canonicalizes a path that must already exist, following
// all symlinks to their final target, and checks containment. Resolution
// uses the OS canonicalization facility, never string normalization, so a
// symlink inside an allowed root that targets the outside is caught here.
func (g *Guard) ResolveExisting(path string) (string, error) {
	if err := ValidatePathString(path); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fserr.Wrap(fserr.CodeInvalidParams, fmt.Sprintf("invalid path: %s", path), err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fserr.NotFound(path)
		}
		return "", fserr.IO(err, path)
	}
	if !g.contains(resolved) {
		return "", fserr.AccessDenied(path)
	}
	return resolved, nil
}

// Resolve canonicalizes a path that may not exist yet (the target of a
// write or move). Traversal and current-directory segments are rejected
// before any filesystem access. When the target itself is missing, its
// parent is canonicalized and the leaf name joined unresolved.
func (g *Guard) Resolve(path string) (string, error) {
	if err := ValidatePathString(path); err != nil {
		return "", err
	}
	if err := rejectDotSegments(path); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fserr.Wrap(fserr.CodeInvalidParams, fmt.Sprintf("invalid path: %s", path), err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fserr.IO(err, path)
		}
		parent := filepath.Dir(abs)
		parentResolved, perr := filepath.EvalSymlinks(parent)
		if perr != nil {
			if os.IsNotExist(perr) {
				return "", fserr.NotFound(parent)
			}
			return "", fserr.IO(perr, parent)
		}
		resolved = filepath.Join(parentResolved, filepath.Base(abs))
	}

	if !g.contains(resolved) {
		return "", fserr.AccessDenied(path)
	}
	return resolved, nil
}

// ResolveCreatable resolves a mkdir -p style target where several trailing
// segments may not exist yet. It walks up to the nearest existing ancestor,
// canonicalizes and checks it, then re-appends the non-existent tail.
func (g *Guard) ResolveCreatable(path string) (string, error) {
	if err := ValidatePathString(path); err != nil {
		return "", err
	}
	if err := rejectDotSegments(path); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fserr.Wrap(fserr.CodeInvalidParams, fmt.Sprintf("invalid path: %s", path), err)
	}

	existing := abs
	var tail []string
	for {
		if _, serr := os.Lstat(existing); serr == nil {
			break
		} else if !os.IsNotExist(serr) {
			return "", fserr.IO(serr, existing)
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return "", fserr.NotFound(path)
		}
		tail = append(tail, filepath.Base(existing))
		existing = parent
	}

	base, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", fserr.IO(err, existing)
	}
	if !g.contains(base) {
		return "", fserr.AccessDenied(path)
	}

	resolved := base
	for i := len(tail) - 1; i >= 0; i-- {
		resolved = filepath.Join(resolved, tail[i])
	}
	return resolved, nil
}

// ResolveFile resolves an existing path that must be a regular file.
func (g *Guard) ResolveFile(path string) (string, error) {
	resolved, err := g.ResolveExisting(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fserr.IO(err, path)
	}
	if !info.Mode().IsRegular() {
		return "", fserr.Newf(fserr.CodeNotAFile, "not a file: %s", path)
	}
	return resolved, nil
}

// ResolveDir resolves an existing path that must be a directory.
func (g *Guard) ResolveDir(path string) (string, error) {
	resolved, err := g.ResolveExisting(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fserr.IO(err, path)
	}
	if !info.IsDir() {
		return "", fserr.Newf(fserr.CodeNotADirectory, "not a directory: %s", path)
	}
	return resolved, nil
}

// contains reports whether the canonical path equals, or is a strict
// descendant of, one of the roots. Comparison is by path components via
// filepath.Rel, never by string prefix, so /allowed-evil never matches a
// root of /allowed.
func (g *Guard) contains(path string) bool {
	for _, root := range g.roots {
		if hasPathPrefix(path, root) {
			return true
		}
	}
	return false
}

// hasPathPrefix returns true when path is within base.
func hasPathPrefix(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(os.PathSeparator)) && rel != "..")
}

// rejectDotSegments fails creation-style inputs that contain a parent or
// current directory segment. Canonicalization would normalize these away
// for existing paths, but a not-yet-existing target is composed textually,
// so they must never reach that composition.
func rejectDotSegments(path string) error {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == ".." || seg == "." {
			return fserr.Newf(fserr.CodeInvalidParams, "path must not contain '.' or '..' segments: %s", path)
		}
	}
	return nil
}
