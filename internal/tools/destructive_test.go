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
	"path/filepath"
	"strings"
	"testing"

	"fsward/internal/fserr"
)

func TestDeleteFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "doomed.txt")
	mustWriteFile(t, file, "x")

	svc := fullService(t, root)
	out, err := svc.DeleteFile(file)
	if err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if !strings.Contains(out, "Deleted file") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Error("file still exists")
	}
}

func TestDeleteFileMissing(t *testing.T) {
	root := t.TempDir()
	svc := fullService(t, root)
	_, err := svc.DeleteFile(filepath.Join(root, "nope.txt"))
	wantCode(t, err, fserr.CodeNotFound)
}

func TestDeleteFileRejectsDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "d")
	mustMkdir(t, dir)
	svc := fullService(t, root)
	_, err := svc.DeleteFile(dir)
	wantCode(t, err, fserr.CodeNotAFile)
}

func TestDeleteFileOutsideDenied(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	file := filepath.Join(other, "x.txt")
	mustWriteFile(t, file, "x")
	svc := fullService(t, root)
	_, err := svc.DeleteFile(file)
	wantCode(t, err, fserr.CodeAccessDenied)
}

func TestDeleteDirectoryEmpty(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "empty")
	mustMkdir(t, dir)

	svc := fullService(t, root)
	if _, err := svc.DeleteDirectory(dir); err != nil {
		t.Fatalf("DeleteDirectory: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("directory still exists")
	}
}

func TestDeleteDirectoryRejectsNonEmpty(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "full")
	mustMkdir(t, dir)
	mustWriteFile(t, filepath.Join(dir, "keep.txt"), "x")

	svc := fullService(t, root)
	_, err := svc.DeleteDirectory(dir)
	wantCode(t, err, fserr.CodeNotEmpty)
	if _, serr := os.Stat(dir); serr != nil {
		t.Error("directory must survive a refused delete")
	}
}

func TestDeleteDirectoryRejectsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f.txt")
	mustWriteFile(t, file, "x")
	svc := fullService(t, root)
	_, err := svc.DeleteDirectory(file)
	wantCode(t, err, fserr.CodeNotADirectory)
}

func TestMoveFileRename(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "old.txt")
	dst := filepath.Join(root, "new.txt")
	mustWriteFile(t, src, "payload")

	svc := fullService(t, root)
	out, err := svc.MoveFile(src, dst)
	if err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if !strings.Contains(out, "Moved") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still exists")
	}
	if got := fileContent(t, dst); got != "payload" {
		t.Errorf("destination content = %q", got)
	}
}

func TestMoveFileDirectory(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "olddir")
	mustMkdir(t, src)
	mustWriteFile(t, filepath.Join(src, "inner.txt"), "x")
	dst := filepath.Join(root, "newdir")

	svc := fullService(t, root)
	if _, err := svc.MoveFile(src, dst); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dst, "inner.txt")); err != nil {
		t.Errorf("moved directory lost contents: %v", err)
	}
}

func TestMoveFileSourceMissing(t *testing.T) {
	root := t.TempDir()
	svc := fullService(t, root)
	_, err := svc.MoveFile(filepath.Join(root, "ghost"), filepath.Join(root, "dst"))
	wantCode(t, err, fserr.CodeNotFound)
}

func TestMoveFileDestinationOutsideDenied(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	src := filepath.Join(root, "s.txt")
	mustWriteFile(t, src, "x")

	svc := fullService(t, root)
	_, err := svc.MoveFile(src, filepath.Join(other, "d.txt"))
	wantCode(t, err, fserr.CodeAccessDenied)
	if _, serr := os.Stat(src); serr != nil {
		t.Error("source must survive a refused move")
	}
}

func TestMoveFileSourceOutsideDenied(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	src := filepath.Join(other, "s.txt")
	mustWriteFile(t, src, "x")

	svc := fullService(t, root)
	_, err := svc.MoveFile(src, filepath.Join(root, "d.txt"))
	wantCode(t, err, fserr.CodeAccessDenied)
}
