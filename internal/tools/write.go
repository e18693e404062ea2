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

	"fsward/internal/fserr"
)

// WriteFile creates or overwrites a file with the given content. The
// parent directory must already exist; create_directory makes parents.
func (s *Service) WriteFile(path, content string) (string, error) {
	canonical, err := s.guard.Resolve(path)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("path", canonical).Int("bytes", len(content)).Msg("write_file")

	if err := os.WriteFile(canonical, []byte(content), 0o644); err != nil {
		return "", fserr.IO(err, path)
	}
	return fmt.Sprintf("Wrote %s to %s", formatSize(int64(len(content))), canonical), nil
}

// CreateDirectory makes a directory and any missing parents, like
// mkdir -p. Succeeds silently when the directory already exists.
func (s *Service) CreateDirectory(path string) (string, error) {
	canonical, err := s.guard.ResolveCreatable(path)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("path", canonical).Msg("create_directory")

	if err := os.MkdirAll(canonical, 0o755); err != nil {
		return "", fserr.IO(err, path)
	}
	return fmt.Sprintf("Created directory %s", canonical), nil
}
