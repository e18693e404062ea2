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
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"fsward/internal/fserr"
)

// Edit is one search/replace pair. OldText must occur exactly once in the
// file content at the time the edit is applied.
type Edit struct {
	OldText string `json:"old_text"`
	NewText string `json:"new_text"`
}

// EditFile applies a sequence of edits to a file transactionally. Each
// edit searches the in-memory content as left by the previous edits, so
// later pairs may reference text introduced by earlier ones. Nothing is
// written to disk unless every edit applies: zero occurrences of OldText
// fails with no_match, several occurrences with ambiguous_match (the
// caller must supply more surrounding context). On success the file is
// rewritten and a unified diff of the full change is returned.
func (s *Service) EditFile(path string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return "", fserr.Newf(fserr.CodeInvalidParams, "edits must not be empty")
	}
	canonical, err := s.guard.ResolveFile(path)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("path", canonical).Int("edits", len(edits)).Msg("edit_file")

	info, err := os.Stat(canonical)
	if err != nil {
		return "", fserr.IO(err, path)
	}
	data, err := os.ReadFile(canonical)
	if err != nil {
		return "", fserr.IO(err, path)
	}
	if isBinary(data) {
		return "", fserr.Newf(fserr.CodeBinaryFile, "binary file: %s cannot be edited as text", path)
	}

	original := string(data)
	content := original
	for _, edit := range edits {
		if edit.OldText == "" {
			return "", fserr.Newf(fserr.CodeInvalidParams, "old_text must not be empty")
		}
		switch n := strings.Count(content, edit.OldText); {
		case n == 0:
			return "", fserr.Newf(fserr.CodeNoMatch,
				"old_text not found: %q", truncateRunes(edit.OldText, 80))
		case n > 1:
			return "", fserr.Newf(fserr.CodeAmbiguousMatch,
				"old_text matches %d locations (must be unique): %q",
				n, truncateRunes(edit.OldText, 80))
		}
		content = strings.Replace(content, edit.OldText, edit.NewText, 1)
	}

	if err := os.WriteFile(canonical, []byte(content), info.Mode().Perm()); err != nil {
		return "", fserr.IO(err, path)
	}

	diff := udiff.Unified(path, path, original, content)
	return fmt.Sprintf("Applied %d edit(s) to %s\n\n%s", len(edits), canonical, diff), nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
