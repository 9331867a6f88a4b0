package pkg

import (
	"errors"
	"os"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "ntro" {
		t.Errorf("Expected Name to be %q, got %q", "ntro", Name)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew, got %v", Author)
	}
}

func TestError_Chain(t *testing.T) {
	cause := errors.New("permission denied")
	err := ErrReadInput.Wrap(cause)

	if got, want := err.Error(), "failed to read input: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, ErrReadInput) {
		t.Error("wrapped error does not match its sentinel")
	}

	if errors.Is(err, ErrWriteOutput) {
		t.Error("wrapped error matches another sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("wrapped error does not match its cause")
	}

	if len(ErrReadInput) != 1 {
		t.Error("Wrap modified the sentinel")
	}
}

func TestError_WrapSkipsNil(t *testing.T) {
	if err := ErrNoSources.Wrap(nil); len(err) != 1 {
		t.Errorf("Wrap(nil) appended: %v", []error(err))
	}
}

func TestMakeError_Flattens(t *testing.T) {
	inner := errors.New("inner")
	outer := errors.Join(inner)

	chain := MakeError(outer)
	if len(chain) != 2 || chain[0] != inner {
		t.Errorf("chain = %v", []error(chain))
	}

	if MakeError() != nil || MakeError(nil) != nil {
		t.Error("MakeError without errors is not nil")
	}
}

func TestSourceList(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name string
		env  string
		args []string
		want []string
	}{
		{"args only", "", []string{".env"}, []string{".env"}},
		{"env only", ".env" + sep + ".env.local", nil, []string{".env", ".env.local"}},
		{"args first", ".env.local", []string{".env"}, []string{".env", ".env.local"}},
		{"args in order", "", []string{"a.env", "b.env", "c.env"}, []string{"a.env", "b.env", "c.env"}},
		{"args in order before env", "x" + sep + "y", []string{"a", "b"}, []string{"a", "b", "x", "y"}},
		{"duplicates dropped", ".env", []string{".env", ".env"}, []string{".env"}},
		{"empty items dropped", sep + sep, []string{"a"}, []string{"a"}},
		{"nothing", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceList(tt.env, tt.args...); !slices.Equal(got, tt.want) {
				t.Errorf("SourceList(%q, %q) = %q, want %q", tt.env, tt.args, got, tt.want)
			}
		})
	}
}
