package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	t.Run("RelativePath", func(t *testing.T) {
		got, err := Resolve("a/../b")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if want := filepath.Join(wd, "b"); got != want {
			t.Errorf("Resolve() = %q, want %q", got, want)
		}
	})

	t.Run("AbsolutePathIsCleaned", func(t *testing.T) {
		in := filepath.Join(wd, "x", ".", "y") + string(filepath.Separator)
		got, err := Resolve(in)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if want := filepath.Join(wd, "x", "y"); got != want {
			t.Errorf("Resolve() = %q, want %q", got, want)
		}
	})

	t.Run("EmptyPath", func(t *testing.T) {
		_, err := Resolve("")
		var pathErr *PathError
		if !errors.As(err, &pathErr) {
			t.Fatalf("Resolve(\"\") error = %v, want *PathError", err)
		}
	})
}

func TestRelativeTo(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data", "root")

	tests := []struct {
		name    string
		target  string
		want    string
		wantErr bool
	}{
		{"DirectChild", filepath.Join(root, "x"), "x", false},
		{"Nested", filepath.Join(root, "sub", "y"), "sub/y", false},
		{"Root", root, ".", false},
		{"Outside", filepath.Join(root, "..", "other"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelativeTo(root, tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RelativeTo() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("RelativeTo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"Empty", "", true},
		{"NulByte", "a\x00b", true},
		{"Plain", "some/file.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestPathErrorMessage(t *testing.T) {
	err := &PathError{Path: "p", Message: "bad"}
	if got := err.Error(); got != "invalid path 'p': bad" {
		t.Errorf("Error() = %q", got)
	}
}
