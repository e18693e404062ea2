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
	"bytes"
	"fmt"
	"os"
	"strings"

	"fsward/internal/fserr"
)

// isBinary reports whether data looks like a binary file: a null byte
// anywhere in the first binarySniffLen bytes.
func isBinary(data []byte) bool {
	n := len(data)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

// splitLines splits text the way a line-oriented reader counts lines: a
// trailing newline terminates the last line instead of starting an empty
// one, and carriage returns before newlines are dropped.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ReadFile reads a text file, optionally narrowed to a line range. Offset
// is zero-based; the header reports one-based line numbers. The size
// ceiling only applies to whole-file reads: a caller who passes offset or
// limit has already asked for a bounded slice.
func (s *Service) ReadFile(path string, offset, limit *int) (string, error) {
	canonical, err := s.guard.ResolveFile(path)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("path", canonical).Msg("read_file")

	info, err := os.Stat(canonical)
	if err != nil {
		return "", fserr.IO(err, path)
	}
	size := info.Size()

	hasRange := offset != nil || limit != nil
	if !hasRange && size > s.cfg.MaxReadSize {
		return "", fserr.Newf(fserr.CodeTooLarge,
			"file too large: %s is %d bytes (limit %d); use offset/limit to read a range",
			path, size, s.cfg.MaxReadSize)
	}

	content, err := os.ReadFile(canonical)
	if err != nil {
		return "", fserr.IO(err, path)
	}
	if isBinary(content) {
		return "", fserr.Newf(fserr.CodeBinaryFile, "binary file: %s cannot be read as text", path)
	}

	lines := splitLines(string(content))
	total := len(lines)
	if total == 0 {
		return fmt.Sprintf("File: %s (0 B)\n\n(empty file)", canonical), nil
	}

	start := 0
	if offset != nil {
		if *offset < 0 {
			return "", fserr.Newf(fserr.CodeInvalidParams, "offset must not be negative")
		}
		start = *offset
	}
	if start >= total {
		return "", fserr.Newf(fserr.CodeInvalidParams,
			"Offset %d is beyond end of file (%d lines)", start, total)
	}
	end := total
	if limit != nil {
		if *limit < 0 {
			return "", fserr.Newf(fserr.CodeInvalidParams, "limit must not be negative")
		}
		if start+*limit < end {
			end = start + *limit
		}
	}

	header := fmt.Sprintf("File: %s (Lines %d-%d of %d total, %s)",
		canonical, start+1, end, total, formatSize(size))
	return header + "\n\n" + strings.Join(lines[start:end], "\n"), nil
}

// ReadMultipleFiles reads several files in order, joining their contents
// with separator headers. A file that fails to read contributes an inline
// error section; the remaining files are still processed.
func (s *Service) ReadMultipleFiles(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", fserr.Newf(fserr.CodeInvalidParams, "paths must not be empty")
	}
	sections := make([]string, 0, len(paths))
	for _, path := range paths {
		section, err := s.readOne(path)
		if err != nil {
			sections = append(sections, fmt.Sprintf("=== %s ===\nError: %s", path, err))
			continue
		}
		sections = append(sections, section)
	}
	return strings.Join(sections, "\n\n"), nil
}

func (s *Service) readOne(path string) (string, error) {
	canonical, err := s.guard.ResolveFile(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return "", fserr.IO(err, path)
	}
	if info.Size() > s.cfg.MaxReadSize {
		return "", fserr.Newf(fserr.CodeTooLarge,
			"file too large: %s is %d bytes (limit %d)", path, info.Size(), s.cfg.MaxReadSize)
	}
	content, err := os.ReadFile(canonical)
	if err != nil {
		return "", fserr.IO(err, path)
	}
	if isBinary(content) {
		return "", fserr.Newf(fserr.CodeBinaryFile, "binary file: %s cannot be read as text", path)
	}
	text := string(content)
	return fmt.Sprintf("=== %s (%d lines, %s) ===\n%s",
		canonical, len(splitLines(text)), formatSize(info.Size()), text), nil
}
