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

// DeleteFile removes a single regular file.
func (s *Service) DeleteFile(path string) (string, error) {
	canonical, err := s.guard.ResolveFile(path)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("path", canonical).Msg("delete_file")

	if err := os.Remove(canonical); err != nil {
		return "", fserr.IO(err, path)
	}
	return fmt.Sprintf("Deleted file %s", canonical), nil
}

// DeleteDirectory removes an empty directory. It never recurses: a
// directory with contents fails with not_empty.
func (s *Service) DeleteDirectory(path string) (string, error) {
	canonical, err := s.guard.ResolveDir(path)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("path", canonical).Msg("delete_directory")

	entries, err := os.ReadDir(canonical)
	if err != nil {
		return "", fserr.IO(err, path)
	}
	if len(entries) > 0 {
		return "", fserr.Newf(fserr.CodeNotEmpty,
			"directory not empty: %s has %d entries", path, len(entries))
	}
	if err := os.Remove(canonical); err != nil {
		return "", fserr.IO(err, path)
	}
	return fmt.Sprintf("Deleted directory %s", canonical), nil
}

// MoveFile renames a file or directory. The source must exist; the
// destination may not, but both must resolve inside the allowed roots.
func (s *Service) MoveFile(source, destination string) (string, error) {
	canonicalSrc, err := s.guard.ResolveExisting(source)
	if err != nil {
		return "", err
	}
	canonicalDst, err := s.guard.Resolve(destination)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("source", canonicalSrc).Str("destination", canonicalDst).Msg("move_file")

	if err := os.Rename(canonicalSrc, canonicalDst); err != nil {
		return "", fserr.IO(err, source)
	}
	return fmt.Sprintf("Moved %s to %s", canonicalSrc, canonicalDst), nil
}
