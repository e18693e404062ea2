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

// Package config holds the startup configuration: the allowed directories,
// the permission tier and the resource ceilings. The configuration is
// validated once and then treated as immutable for the process lifetime.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultMaxReadSize caps full-content reads at 10 MiB.
	DefaultMaxReadSize int64 = 10 * 1024 * 1024
	// DefaultMaxDepth bounds recursive directory traversal.
	DefaultMaxDepth = 10
)

// Tier is the permission level granted at startup. Each tier includes
// everything below it: Destructive implies Write implies ReadOnly.
type Tier int

const (
	TierReadOnly Tier = iota
	TierWrite
	TierDestructive
)

func (t Tier) String() string {
	switch t {
	case TierDestructive:
		return "destructive"
	case TierWrite:
		return "write"
	default:
		return "read-only"
	}
}

// Allows reports whether this tier grants at least the given tier.
func (t Tier) Allows(other Tier) bool {
	return t >= other
}

// Config is the process-wide configuration established from the command
// line. After Validate it holds only canonical directory paths.
type Config struct {
	AllowedDirectories []string
	AllowWrite         bool
	AllowDestructive   bool
	MaxReadSize        int64
	MaxDepth           int
}

// Default returns a configuration with default ceilings and no roots.
func Default() Config {
	return Config{
		MaxReadSize: DefaultMaxReadSize,
		MaxDepth:    DefaultMaxDepth,
	}
}

// Validate canonicalizes every allowed directory and normalizes the
// permission flags. Each directory must exist and be a directory; the
// canonical form (symlinks resolved) is what containment checks run
// against later.
func (c Config) Validate() (Config, error) {
	if c.AllowDestructive {
		c.AllowWrite = true
	}
	if len(c.AllowedDirectories) == 0 {
		return c, fmt.Errorf("at least one allowed directory is required")
	}
	if c.MaxReadSize <= 0 {
		c.MaxReadSize = DefaultMaxReadSize
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}

	canonical := make([]string, 0, len(c.AllowedDirectories))
	for _, dir := range c.AllowedDirectories {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return c, fmt.Errorf("invalid directory %q: %w", dir, err)
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return c, fmt.Errorf("failed to resolve directory %q: %w", dir, err)
		}
		info, err := os.Stat(resolved)
		if err != nil {
			return c, fmt.Errorf("failed to stat directory %q: %w", dir, err)
		}
		if !info.IsDir() {
			return c, fmt.Errorf("%q is not a directory", dir)
		}
		canonical = append(canonical, resolved)
	}
	c.AllowedDirectories = canonical
	return c, nil
}

// Tier derives the permission tier from the flags.
func (c Config) Tier() Tier {
	switch {
	case c.AllowDestructive:
		return TierDestructive
	case c.AllowWrite:
		return TierWrite
	default:
		return TierReadOnly
	}
}
