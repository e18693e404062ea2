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
	"path/filepath"
	"sort"
	"strings"
)

// EntryKind classifies a tree node.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
	KindSymlink
)

// TreeNode is one entry in a directory tree. Children is only populated
// for directories that were actually descended into.
type TreeNode struct {
	Name     string
	Kind     EntryKind
	Size     int64
	Children []*TreeNode
}

// treeState carries the node budget across the recursive build. Once
// remaining hits zero the walk stops and the tree is marked truncated;
// partial trees are still rendered.
type treeState struct {
	remaining int
	truncated bool
}

// buildTree collects the visible children of dir as TreeNodes, directories
// first, each group sorted by name. Entries whose name starts with a dot
// are skipped. Symlinks become their own kind and are never followed.
// depth counts remaining levels: at zero, subdirectories appear without
// their children.
func buildTree(dir string, depth int, st *treeState) []*TreeNode {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// unreadable subtrees degrade to an empty branch
		return nil
	}

	var dirs, rest []*TreeNode
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		switch {
		case info.IsDir():
			dirs = append(dirs, &TreeNode{Name: name, Kind: KindDir})
		case info.Mode()&fs.ModeSymlink != 0:
			rest = append(rest, &TreeNode{Name: name, Kind: KindSymlink})
		case info.Mode().IsRegular():
			rest = append(rest, &TreeNode{Name: name, Kind: KindFile, Size: info.Size()})
		}
	}
	byName := func(nodes []*TreeNode) {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	}
	byName(dirs)
	byName(rest)

	nodes := make([]*TreeNode, 0, len(dirs)+len(rest))
	for _, node := range append(dirs, rest...) {
		if st.remaining == 0 {
			st.truncated = true
			return nodes
		}
		st.remaining--
		if node.Kind == KindDir && depth > 0 {
			node.Children = buildTree(filepath.Join(dir, node.Name), depth-1, st)
			if st.truncated {
				nodes = append(nodes, node)
				return nodes
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// renderTree draws nodes with box-drawing connectors, one entry per line.
func renderTree(sb *strings.Builder, nodes []*TreeNode, prefix string) {
	for i, node := range nodes {
		connector := "├── " // ├──
		childPrefix := prefix + "│   " // │
		if i == len(nodes)-1 {
			connector = "└── " // └──
			childPrefix = prefix + "    "
		}
		switch node.Kind {
		case KindDir:
			fmt.Fprintf(sb, "%s%s%s/\n", prefix, connector, node.Name)
			renderTree(sb, node.Children, childPrefix)
		case KindSymlink:
			fmt.Fprintf(sb, "%s%s%s (symlink)\n", prefix, connector, node.Name)
		default:
			fmt.Fprintf(sb, "%s%s%s (%s)\n", prefix, connector, node.Name, formatSize(node.Size))
		}
	}
}

// walkFiles is the traversal primitive shared with search: an iterative
// depth-first walk from root down to maxDepth directory levels, visiting
// regular files in sorted order within each directory. Symlinks are never
// followed, so the walk cannot cycle. Unreadable directories are skipped.
// The visit callback returns false to stop the walk early.
func walkFiles(root string, maxDepth int, visit func(path string, info fs.FileInfo) bool) {
	type frame struct {
		dir   string
		depth int
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(top.dir)
		if err != nil {
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		var subdirs []string
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil {
				continue
			}
			path := filepath.Join(top.dir, entry.Name())
			switch {
			case info.IsDir():
				if top.depth < maxDepth {
					subdirs = append(subdirs, path)
				}
			case info.Mode().IsRegular():
				if !visit(path, info) {
					return
				}
			}
		}
		// push in reverse so pop order stays sorted
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, frame{subdirs[i], top.depth + 1})
		}
	}
}
