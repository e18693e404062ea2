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
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names, grouped by the permission tier that unlocks them.
var (
	readOnlyTools = []string{
		"list_allowed_directories",
		"list_directory",
		"read_file",
		"read_multiple_files",
		"get_file_info",
		"directory_tree",
		"search_files",
	}
	writeTools = []string{
		"write_file",
		"edit_file",
		"create_directory",
	}
	destructiveTools = []string{
		"delete_file",
		"delete_directory",
		"move_file",
	}
)

// ToolNames returns the names the service will register given its
// configuration. Ungranted tools are absent, not rejected at call time.
func (s *Service) ToolNames() []string {
	names := append([]string(nil), readOnlyTools...)
	if s.cfg.AllowWrite {
		names = append(names, writeTools...)
	}
	if s.cfg.AllowDestructive {
		names = append(names, destructiveTools...)
	}
	return names
}

type listDirectoryInput struct {
	Path string `json:"path" jsonschema:"Absolute path to the directory to list"`
}

type readFileInput struct {
	Path   string `json:"path" jsonschema:"Absolute path to the file to read"`
	Offset *int   `json:"offset,omitempty" jsonschema:"Line offset (0-based) to start reading from"`
	Limit  *int   `json:"limit,omitempty" jsonschema:"Maximum number of lines to read"`
}

type readMultipleFilesInput struct {
	Paths []string `json:"paths" jsonschema:"List of absolute file paths to read"`
}

type getFileInfoInput struct {
	Path string `json:"path" jsonschema:"Absolute path to the file or directory"`
}

type directoryTreeInput struct {
	Path     string `json:"path" jsonschema:"Absolute path to the directory"`
	MaxDepth *int   `json:"max_depth,omitempty" jsonschema:"Maximum depth to traverse"`
}

type searchFilesInput struct {
	Path       string `json:"path" jsonschema:"Absolute path to the directory to search in"`
	Pattern    string `json:"pattern" jsonschema:"Glob pattern to match file names against, e.g. *.go or **/*.txt"`
	MaxResults *int   `json:"max_results,omitempty" jsonschema:"Maximum number of results to return (default 50, max 200)"`
}

type writeFileInput struct {
	Path    string `json:"path" jsonschema:"Absolute path to the file to write"`
	Content string `json:"content" jsonschema:"Content to write"`
}

type editFileInput struct {
	Path  string `json:"path" jsonschema:"Absolute path to the file to edit"`
	Edits []Edit `json:"edits" jsonschema:"Ordered list of old_text/new_text replacements"`
}

type createDirectoryInput struct {
	Path string `json:"path" jsonschema:"Absolute path of the directory to create"`
}

type deleteFileInput struct {
	Path string `json:"path" jsonschema:"Absolute path to the file to delete"`
}

type deleteDirectoryInput struct {
	Path string `json:"path" jsonschema:"Absolute path to the empty directory to delete"`
}

type moveFileInput struct {
	Source      string `json:"source" jsonschema:"Absolute path of the file or directory to move"`
	Destination string `json:"destination" jsonschema:"Absolute destination path"`
}

type emptyInput struct{}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// handle adapts a text-producing operation to the MCP handler shape.
// Operation failures become tool errors on the wire, carrying the
// fserr message.
func handle[T any](op func(input T) (string, error)) func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, input T) (*mcp.CallToolResult, any, error) {
		text, err := op(input)
		if err != nil {
			return nil, nil, err
		}
		return textResult(text), nil, nil
	}
}

// Install registers the tools the configuration grants onto the server.
// This is the only place tools are added: a tier that was not granted
// leaves its tools out of the capability listing entirely.
func (s *Service) Install(server *mcp.Server) {
	boolPtr := func(b bool) *bool { return &b }
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true}
	writeSafe := &mcp.ToolAnnotations{DestructiveHint: boolPtr(false)}
	destructive := &mcp.ToolAnnotations{DestructiveHint: boolPtr(true)}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_allowed_directories",
		Description: "Lists all directories that this server is allowed to access. Returns each allowed directory on its own line as a fully canonicalized path.",
		Annotations: readOnly,
	}, handle(func(emptyInput) (string, error) {
		return s.ListAllowedDirectories(), nil
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_directory",
		Description: "Lists the contents of a directory. Returns entries sorted with directories first, then files, each alphabetically. Each entry shows type, name, and for files, size and modification date.",
		Annotations: readOnly,
	}, handle(func(in listDirectoryInput) (string, error) {
		return s.ListDirectory(in.Path)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_file",
		Description: "Reads a file and returns its contents. Supports reading specific line ranges using offset (0-based) and limit parameters. Returns a header with file path and line information.",
		Annotations: readOnly,
	}, handle(func(in readFileInput) (string, error) {
		return s.ReadFile(in.Path, in.Offset, in.Limit)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_multiple_files",
		Description: "Reads multiple files and returns their contents with clear separators between each file. If any file fails to read, the error is included inline and remaining files are still processed.",
		Annotations: readOnly,
	}, handle(func(in readMultipleFilesInput) (string, error) {
		return s.ReadMultipleFiles(in.Paths)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_file_info",
		Description: "Returns detailed metadata about a file or directory including size, type, MIME type, timestamps, and permissions.",
		Annotations: readOnly,
	}, handle(func(in getFileInfoInput) (string, error) {
		return s.GetFileInfo(in.Path)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "directory_tree",
		Description: "Displays a visual tree of directory structure with box-drawing characters. Shows directories first (sorted), then files with sizes. Hidden files and directories (starting with '.') are skipped.",
		Annotations: readOnly,
	}, handle(func(in directoryTreeInput) (string, error) {
		return s.DirectoryTree(in.Path, in.MaxDepth)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_files",
		Description: "Searches for files matching a glob pattern within a directory tree. Returns matched file paths with sizes. Use '*.ext' to match file names at any depth, 'sub/**/*.ext' to match against relative paths.",
		Annotations: readOnly,
	}, handle(func(in searchFilesInput) (string, error) {
		return s.SearchFiles(in.Path, in.Pattern, in.MaxResults)
	}))

	if s.cfg.AllowWrite {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "write_file",
			Description: "Creates a new file or overwrites an existing file with the provided content. Parent directory must already exist.",
			Annotations: destructive,
		}, handle(func(in writeFileInput) (string, error) {
			return s.WriteFile(in.Path, in.Content)
		}))

		mcp.AddTool(server, &mcp.Tool{
			Name:        "edit_file",
			Description: "Applies a list of search/replace edits to a text file. Each old_text must match exactly one location. Nothing is written unless every edit applies; returns a unified diff of the change.",
			Annotations: writeSafe,
		}, handle(func(in editFileInput) (string, error) {
			return s.EditFile(in.Path, in.Edits)
		}))

		mcp.AddTool(server, &mcp.Tool{
			Name:        "create_directory",
			Description: "Creates a directory and any necessary parent directories (like mkdir -p). Succeeds silently if the directory already exists.",
			Annotations: writeSafe,
		}, handle(func(in createDirectoryInput) (string, error) {
			return s.CreateDirectory(in.Path)
		}))
	}

	if s.cfg.AllowDestructive {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "delete_file",
			Description: "Deletes a single file. The file must exist and be a regular file (not a directory).",
			Annotations: destructive,
		}, handle(func(in deleteFileInput) (string, error) {
			return s.DeleteFile(in.Path)
		}))

		mcp.AddTool(server, &mcp.Tool{
			Name:        "delete_directory",
			Description: "Deletes an empty directory. The directory must exist and be empty. Does NOT recursively delete contents.",
			Annotations: destructive,
		}, handle(func(in deleteDirectoryInput) (string, error) {
			return s.DeleteDirectory(in.Path)
		}))

		mcp.AddTool(server, &mcp.Tool{
			Name:        "move_file",
			Description: "Moves or renames a file or directory. Both source and destination must be within allowed directories. The source must exist.",
			Annotations: destructive,
		}, handle(func(in moveFileInput) (string, error) {
			return s.MoveFile(in.Source, in.Destination)
		}))
	}
}
