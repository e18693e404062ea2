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
	"os"
	"testing"

	"github.com/rs/zerolog"

	"fsward/internal/config"
	"fsward/internal/fserr"
)

func newService(t *testing.T, cfg config.Config) *Service {
	t.Helper()
	validated, err := cfg.Validate()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return NewService(validated, zerolog.Nop())
}

func testConfig(root string) config.Config {
	cfg := config.Default()
	cfg.AllowedDirectories = []string{root}
	return cfg
}

// readOnlyService builds a service over the given roots with default
// ceilings and no write grants.
func readOnlyService(t *testing.T, roots ...string) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.AllowedDirectories = roots
	return newService(t, cfg)
}

func fullService(t *testing.T, roots ...string) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.AllowedDirectories = roots
	cfg.AllowWrite = true
	cfg.AllowDestructive = true
	return newService(t, cfg)
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func wantCode(t *testing.T, err error, code fserr.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := fserr.CodeOf(err); got != code {
		t.Fatalf("error code = %s, want %s (err: %v)", got, code, err)
	}
}

func intp(v int) *int { return &v }

// fileContent reads a file back for post-condition checks.
func fileContent(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
