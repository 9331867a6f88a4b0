package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestYAML_Run(t *testing.T) {
	tests := []struct {
		name   string
		source string
		input  string
		typ    string
		file   string
		want   []string
	}{
		{
			name:   "single document",
			source: "app-config.yaml",
			input:  "name: web\nport: 8080\n",
			file:   "app-config.d.ts",
			want:   []string{"declare type AppConfig = {", "name: 'web';", "port: 8080;"},
		},
		{
			name:   "documents",
			source: "seed.prod.yml",
			input:  "a: 1\n---\nb: true\n",
			file:   "seed.prod.d.ts",
			want:   []string{"declare namespace SeedProd {", "export type All = [Document0, Document1];"},
		},
		{
			name:   "explicit name",
			source: "x.yaml",
			input:  "- 1\n",
			typ:    "Custom",
			file:   "x.d.ts",
			want:   []string{"declare type Custom = [1];"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, tt.source)
			writeFile(t, src, tt.input)

			y := &YAML{Source: src, OutDir: filepath.Join(dir, "types"), Project: dir, Name: tt.typ}
			if err := y.Run(context.Background()); err != nil {
				t.Fatal(err)
			}

			got := readFile(t, filepath.Join(dir, "types", tt.file))
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in:\n%s", want, got)
				}
			}
		})
	}
}

func TestYAML_Run_Errors(t *testing.T) {
	dir := t.TempDir()

	if err := (&YAML{Source: filepath.Join(dir, "none.yaml"), OutDir: dir}).Run(context.Background()); err == nil {
		t.Error("expected error for missing source")
	}

	src := filepath.Join(dir, "bad.yaml")
	writeFile(t, src, "a: [1, 2\n")

	if err := (&YAML{Source: src, OutDir: dir}).Run(context.Background()); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
