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
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func TestToolNamesReadOnlyTier(t *testing.T) {
	svc := readOnlyService(t, t.TempDir())
	names := svc.ToolNames()
	if len(names) != 7 {
		t.Fatalf("read-only tier exposes %d tools, want 7: %v", len(names), names)
	}
	for _, name := range []string{"write_file", "edit_file", "create_directory",
		"delete_file", "delete_directory", "move_file"} {
		if contains(names, name) {
			t.Errorf("%s must not be exposed without a grant", name)
		}
	}
}

func TestToolNamesWriteTier(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.AllowWrite = true
	svc := newService(t, cfg)

	names := svc.ToolNames()
	if len(names) != 10 {
		t.Fatalf("write tier exposes %d tools, want 10: %v", len(names), names)
	}
	if !contains(names, "edit_file") {
		t.Error("edit_file missing from write tier")
	}
	if contains(names, "delete_file") {
		t.Error("delete_file exposed without destructive grant")
	}
}

func TestToolNamesDestructiveTier(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.AllowDestructive = true
	svc := newService(t, cfg)

	names := svc.ToolNames()
	if len(names) != 13 {
		t.Fatalf("destructive tier exposes %d tools, want 13: %v", len(names), names)
	}
	// destructive implies write
	if !contains(names, "write_file") {
		t.Error("write_file missing from destructive tier")
	}
	if !contains(names, "move_file") {
		t.Error("move_file missing from destructive tier")
	}
}

func TestInstallRegistersWithoutPanic(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.AllowDestructive = true
	svc := newService(t, cfg)

	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	svc.Install(server)
}

func TestInstallReadOnlyRegistersWithoutPanic(t *testing.T) {
	svc := readOnlyService(t, t.TempDir())
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	svc.Install(server)
}
