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
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"fsward/internal/fserr"
)

// GetFileInfo returns metadata about a file or directory: kind, size, MIME
// type, timestamps and permission bits. Permissions are reported as octal
// and not interpreted further.
func (s *Service) GetFileInfo(path string) (string, error) {
	canonical, err := s.guard.ResolveExisting(path)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("path", canonical).Msg("get_file_info")

	info, err := os.Lstat(canonical)
	if err != nil {
		return "", fserr.IO(err, path)
	}

	kind := "other"
	switch {
	case info.Mode().IsRegular():
		kind = "file"
	case info.IsDir():
		kind = "directory"
	case info.Mode()&fs.ModeSymlink != 0:
		kind = "symlink"
	}

	mime := "N/A"
	if info.Mode().IsRegular() {
		mime = "application/octet-stream"
		if mt, err := mimetype.DetectFile(canonical); err == nil {
			mime = mt.String()
		}
	}

	return fmt.Sprintf(
		"Path: %s\nType: %s\nSize: %s\nMIME: %s\nModified: %s\nCreated: %s\nPermissions: %s",
		canonical, kind, formatSize(info.Size()), mime,
		formatDate(info.ModTime()), createdDate(canonical, info), formatPermissions(info.Mode()),
	), nil
}

// DirectoryTree renders a directory subtree with box-drawing connectors.
// Hidden entries are skipped, symlinks shown but not descended into, and
// the whole tree is capped at maxEntries nodes.
func (s *Service) DirectoryTree(path string, maxDepth *int) (string, error) {
	canonical, err := s.guard.ResolveDir(path)
	if err != nil {
		return "", err
	}
	depth := s.cfg.MaxDepth
	if maxDepth != nil {
		if *maxDepth < 0 {
			return "", fserr.Newf(fserr.CodeInvalidParams, "max_depth must not be negative")
		}
		depth = *maxDepth
	}
	s.log.Debug().Str("path", canonical).Int("max_depth", depth).Msg("directory_tree")

	st := &treeState{remaining: maxEntries}
	nodes := buildTree(canonical, depth, st)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/\n", canonical)
	renderTree(&sb, nodes, "")
	if st.truncated {
		fmt.Fprintf(&sb, "... (truncated, exceeded %d entries. Use search_files to find specific files.)\n", maxEntries)
	}
	return sb.String(), nil
}
