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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateRequiresRoot(t *testing.T) {
	_, err := Default().Validate()
	if err == nil {
		t.Fatal("expected error with no allowed directories")
	}
}

func TestValidateCanonicalizesRoots(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	cfg := Default()
	cfg.AllowedDirectories = []string{link}
	validated, err := cfg.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want, _ := filepath.EvalSymlinks(target)
	if validated.AllowedDirectories[0] != want {
		t.Errorf("root = %q, want canonical %q", validated.AllowedDirectories[0], want)
	}
}

func TestValidateRejectsMissingDirectory(t *testing.T) {
	cfg := Default()
	cfg.AllowedDirectories = []string{filepath.Join(t.TempDir(), "nope")}
	if _, err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestValidateRejectsFileRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.AllowedDirectories = []string{file}
	if _, err := cfg.Validate(); err == nil {
		t.Fatal("expected error for file used as root")
	}
}

func TestDestructiveImpliesWrite(t *testing.T) {
	cfg := Default()
	cfg.AllowedDirectories = []string{t.TempDir()}
	cfg.AllowDestructive = true
	validated, err := cfg.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !validated.AllowWrite {
		t.Error("destructive grant must imply write")
	}
}

func TestValidateDefaultsCeilings(t *testing.T) {
	cfg := Config{AllowedDirectories: []string{t.TempDir()}}
	validated, err := cfg.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if validated.MaxReadSize != DefaultMaxReadSize {
		t.Errorf("MaxReadSize = %d, want default", validated.MaxReadSize)
	}
	if validated.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want default", validated.MaxDepth)
	}
}

func TestTierDerivation(t *testing.T) {
	cases := []struct {
		write, destructive bool
		want               Tier
	}{
		{false, false, TierReadOnly},
		{true, false, TierWrite},
		{true, true, TierDestructive},
		{false, true, TierDestructive},
	}
	for _, tc := range cases {
		cfg := Config{AllowWrite: tc.write, AllowDestructive: tc.destructive}
		if got := cfg.Tier(); got != tc.want {
			t.Errorf("Tier(write=%v destructive=%v) = %v, want %v",
				tc.write, tc.destructive, got, tc.want)
		}
	}
}

func TestTierAllows(t *testing.T) {
	if !TierDestructive.Allows(TierWrite) || !TierDestructive.Allows(TierReadOnly) {
		t.Error("destructive must include lower tiers")
	}
	if !TierWrite.Allows(TierReadOnly) {
		t.Error("write must include read-only")
	}
	if TierReadOnly.Allows(TierWrite) {
		t.Error("read-only must not include write")
	}
}

func TestTierString(t *testing.T) {
	if TierReadOnly.String() != "read-only" ||
		TierWrite.String() != "write" ||
		TierDestructive.String() != "destructive" {
		t.Error("unexpected tier names")
	}
}
