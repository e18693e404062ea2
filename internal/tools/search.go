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

package tools

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"fsward/internal/fserr"
)

type searchMatch struct {
	path string
	size int64
}

// SearchFiles walks the tree under a directory and collects files whose
// name matches a glob pattern. A pattern containing a path separator is
// matched against the slash-separated path relative to the root instead,
// with ** crossing directory levels. Matching is case-sensitive. Results
// stop at the requested cap (default 50, never more than 200).
func (s *Service) SearchFiles(path, pattern string, maxResults *int) (string, error) {
	canonical, err := s.guard.ResolveDir(path)
	if err != nil {
		return "", err
	}
	if !doublestar.ValidatePattern(pattern) {
		return "", fserr.Newf(fserr.CodeBadPattern, "invalid glob pattern: %q", pattern)
	}
	limit := maxSearchResults
	if maxResults != nil {
		if *maxResults <= 0 {
			return "", fserr.Newf(fserr.CodeInvalidParams, "max_results must be positive")
		}
		limit = *maxResults
		if limit > maxSearchCeiling {
			limit = maxSearchCeiling
		}
	}
	s.log.Debug().Str("path", canonical).Str("pattern", pattern).Msg("search_files")

	fullPath := strings.ContainsRune(pattern, '/')
	var matches []searchMatch
	truncated := false
	walkFiles(canonical, s.cfg.MaxDepth, func(p string, info fs.FileInfo) bool {
		subject := filepath.Base(p)
		if fullPath {
			rel, err := filepath.Rel(canonical, p)
			if err != nil {
				return true
			}
			subject = filepath.ToSlash(rel)
		}
		if ok, _ := doublestar.Match(pattern, subject); ok {
			matches = append(matches, searchMatch{p, info.Size()})
			if len(matches) >= limit {
				truncated = true
				return false
			}
		}
		return true
	})

	return formatSearchResults(canonical, pattern, matches, truncated), nil
}

func formatSearchResults(root, pattern string, matches []searchMatch, truncated bool) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No matches found for pattern %q in %s", pattern, root)
	}
	plural := "es"
	if len(matches) == 1 {
		plural = ""
	}
	note := ""
	if truncated {
		note = " (results truncated)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d match%s for pattern %q in %s%s:\n\n",
		len(matches), plural, pattern, root, note)
	for _, m := range matches {
		fmt.Fprintf(&sb, "%s (%s)\n", m.path, formatSize(m.size))
	}
	return sb.String()
}
