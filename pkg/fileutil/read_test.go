package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/rig/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	tempDir := t.TempDir()
	fsys := afero.NewOsFs()

	tests := []struct {
		name    string
		size    int64
		wantErr bool
	}{
		{"small file", 100, false},
		{"exact limit", MaxFileSize, false},
		{"too large", MaxFileSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tt.name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.Truncate(tt.size); err != nil {
				t.Fatal(err)
			}
			f.Close()

			_, err = ReadFileWithLimit(fsys, path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFileWithLimit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrFileTooLarge) {
				t.Errorf("expected ErrFileTooLarge, got %v", err)
			}
		})
	}
}

func TestReadFileWithLimit_Missing(t *testing.T) {
	_, err := ReadFileWithLimit(afero.NewMemMapFs(), "/nope.json")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestExistenceChecks(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/project/config", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, "/project/config/rig.json", []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path       string
		wantExists bool
		wantDir    bool
		wantFile   bool
	}{
		{"/project/config", true, true, false},
		{"/project/config/rig.json", true, false, true},
		{"/project/missing", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			exists, err := Exists(fsys, tt.path)
			if err != nil || exists != tt.wantExists {
				t.Errorf("Exists() = %v, %v; want %v", exists, err, tt.wantExists)
			}
			isDir, err := IsDir(fsys, tt.path)
			if err != nil || isDir != tt.wantDir {
				t.Errorf("IsDir() = %v, %v; want %v", isDir, err, tt.wantDir)
			}
			isFile, err := IsFile(fsys, tt.path)
			if err != nil || isFile != tt.wantFile {
				t.Errorf("IsFile() = %v, %v; want %v", isFile, err, tt.wantFile)
			}
		})
	}
}

func TestExistenceChecks_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	parent := filepath.Join(dir, "config")
	if err := os.WriteFile(parent, []byte("not a folder"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(parent, "rig.json")
	fsys := afero.NewOsFs()

	exists, err := Exists(fsys, path)
	if err != nil || exists {
		t.Errorf("Exists() = %v, %v; want false, nil", exists, err)
	}
	isDir, err := IsDir(fsys, path)
	if err != nil || isDir {
		t.Errorf("IsDir() = %v, %v; want false, nil", isDir, err)
	}
	isFile, err := IsFile(fsys, path)
	if err != nil || isFile {
		t.Errorf("IsFile() = %v, %v; want false, nil", isFile, err)
	}
}
