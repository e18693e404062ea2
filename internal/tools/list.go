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
	"os"
	"sort"
	"strings"

	"fsward/internal/fserr"
)

// ListAllowedDirectories returns the canonical allowed roots, one per line.
func (s *Service) ListAllowedDirectories() string {
	return strings.Join(s.guard.Roots(), "\n")
}

// ListDirectory lists the direct children of a directory, directories first
// and each group sorted by name. Files show their size and modification
// date. Listings longer than maxEntries are truncated with a note.
func (s *Service) ListDirectory(path string) (string, error) {
	canonical, err := s.guard.ResolveDir(path)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("path", canonical).Msg("list_directory")

	entries, err := os.ReadDir(canonical)
	if err != nil {
		return "", fserr.IO(err, path)
	}

	var dirs, files []string
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		switch {
		case info.IsDir():
			dirs = append(dirs, fmt.Sprintf("[DIR]  %s/", entry.Name()))
		case info.Mode().IsRegular():
			files = append(files, fmt.Sprintf("[FILE] %s (%s, %s)",
				entry.Name(), formatSize(info.Size()), formatDate(info.ModTime())))
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	lines := append(dirs, files...)
	if len(lines) == 0 {
		return "(empty directory)", nil
	}
	if len(lines) > maxEntries {
		total := len(lines)
		lines = lines[:maxEntries]
		lines = append(lines, fmt.Sprintf(
			"\n(Showing first %d of %d entries. Use search_files to find specific files.)",
			maxEntries, total))
	}
	return strings.Join(lines, "\n"), nil
}
