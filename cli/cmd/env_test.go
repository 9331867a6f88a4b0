package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/ntro/dotenv"
	"github.com/ardnew/ntro/node"
)

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return string(data)
}

// offline returns an Env writing to dir without invoking Node.js tools.
func offline(dir string, sources ...string) *Env {
	return &Env{
		Sources:      sources,
		OutDir:       dir,
		Project:      dir,
		Types:        "env.d.ts",
		Schema:       "env.ts",
		PublicPrefix: dotenv.PublicPrefix,
	}
}

func TestEnv_Run(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, ".env")

	writeFile(t, src, `# @type number
PORT=3000
# @type 'dev' | 'prod'
APP_ENV=dev
NEXT_PUBLIC_API_URL=https://example.com
`)

	if err := offline(dir, src).Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	types := readFile(t, filepath.Join(dir, "env.d.ts"))
	for _, want := range []string{"interface ProcessEnv", "PORT?: string;", "APP_ENV?: string;"} {
		if !strings.Contains(types, want) {
			t.Errorf("env.d.ts missing %q:\n%s", want, types)
		}
	}

	schema := readFile(t, filepath.Join(dir, "env.ts"))
	for _, want := range []string{
		`import { z } from "zod";`,
		"PORT: z.coerce.number()",
		`APP_ENV: z.enum(["dev", "prod"])`,
		"NEXT_PUBLIC_API_URL: z.string()",
	} {
		if !strings.Contains(schema, want) {
			t.Errorf("env.ts missing %q:\n%s", want, schema)
		}
	}

	client := schema[strings.Index(schema, "clientEnvSchemas"):strings.Index(schema, "serverEnvSchemas")]
	if !strings.Contains(client, "NEXT_PUBLIC_API_URL") || strings.Contains(client, "PORT") {
		t.Errorf("client schemas misclassified:\n%s", client)
	}
}

func TestEnv_Run_Conflict(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, ".env")
	second := filepath.Join(dir, ".env.local")

	writeFile(t, first, "# @type number\nPORT=3000\n")
	writeFile(t, second, "# @type boolean\nPORT=true\n")

	var out bytes.Buffer

	ctx, _ := parse(t, nil, &out, "init")

	err := offline(dir, first, second).Run(ctx)
	if !errors.Is(err, dotenv.ErrConflict) {
		t.Fatalf("Run() error = %v, want ErrConflict", err)
	}

	if !strings.Contains(readFile(t, filepath.Join(dir, "env.d.ts")), "PORT?: string;") {
		t.Error("declarations not written before the conflict")
	}

	if _, err := os.Stat(filepath.Join(dir, "env.ts")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("schema written despite conflict: %v", err)
	}

	report := out.String()
	for _, want := range []string{first + ":1", second + ":1", "-# @type number", "+# @type boolean"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestEnv_Run_AllConflicts(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, ".env")
	second := filepath.Join(dir, ".env.local")

	writeFile(t, first, "# @type number\nA=1\n# @type number\nB=1\n")
	writeFile(t, second, "# @type string\nA=x\n# @type boolean\nB=true\n")

	e := offline(dir, first, second)
	e.AllConflicts = true

	err := e.Run(context.Background())

	var conflicts dotenv.Conflicts
	if !errors.As(err, &conflicts) || len(conflicts) != 2 {
		t.Fatalf("Run() error = %v, want 2 conflicts", err)
	}
}

func TestEnv_Run_PublicExpr(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, ".env")

	writeFile(t, src, "VITE_URL=x\nSECRET=y\n")

	e := offline(dir, src)
	e.PublicExpr = `key startsWith "VITE_"`

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	schema := readFile(t, filepath.Join(dir, "env.ts"))
	client := schema[:strings.Index(schema, "serverEnvSchemas")]

	if !strings.Contains(client, "VITE_URL") || strings.Contains(client, "SECRET") {
		t.Errorf("client schemas misclassified:\n%s", schema)
	}

	e.PublicExpr = "key +"

	if err := e.Run(context.Background()); !errors.Is(err, dotenv.ErrClassifier) {
		t.Errorf("Run() error = %v, want ErrClassifier", err)
	}
}

func TestEnv_Run_NoSources(t *testing.T) {
	dir := t.TempDir()

	err := offline(dir, filepath.Join(dir, "missing.env")).Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	if _, err := os.Stat(filepath.Join(dir, "env.d.ts")); err == nil {
		t.Error("declarations written without sources")
	}
}

func TestEnv_Setup_TSConfig(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, ".env")

	writeFile(t, src, "A=1\n")
	writeFile(t, filepath.Join(dir, node.TSConfig), "{\n  // app\n  \"compilerOptions\": {}\n}\n")

	e := offline(filepath.Join(dir, "src"), src)
	e.Project = dir
	e.TSConfig = true

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	tsconfig := readFile(t, filepath.Join(dir, node.TSConfig))
	if !strings.Contains(tsconfig, `"$env"`) || !strings.Contains(tsconfig, `"./src/env.ts"`) ||
		!strings.Contains(tsconfig, "// app") {
		t.Errorf("tsconfig.json = %s", tsconfig)
	}
}

func TestEnv_SchemaImport(t *testing.T) {
	tests := []struct {
		project, outDir, schema string
		want                    string
	}{
		{".", ".", "env.ts", "./env.ts"},
		{".", "src", "env.ts", "./src/env.ts"},
		{"app", "app/lib", "env.ts", "./lib/env.ts"},
		{"app", "shared", "env.ts", "../shared/env.ts"},
	}

	for _, tt := range tests {
		e := &Env{Project: tt.project, OutDir: tt.outDir, Schema: tt.schema}

		got, err := e.schemaImport()
		if err != nil || got != tt.want {
			t.Errorf("schemaImport(%q, %q) = %q, %v, want %q", tt.project, tt.outDir, got, err, tt.want)
		}
	}
}

func TestClassifier(t *testing.T) {
	tests := []struct {
		prefix, expr string
		key          string
		public       bool
	}{
		{"", "", "NEXT_PUBLIC_A", true},
		{"PUBLIC_", "", "PUBLIC_A", true},
		{"PUBLIC_", "", "NEXT_PUBLIC_A", false},
		{"PUBLIC_", `key == "A"`, "A", true},
		{"PUBLIC_", `key == "A"`, "PUBLIC_A", false},
	}

	for _, tt := range tests {
		c, err := classifier(tt.prefix, tt.expr)
		if err != nil {
			t.Fatal(err)
		}

		if got := c.IsPublic(tt.key); got != tt.public {
			t.Errorf("classifier(%q, %q).IsPublic(%q) = %v", tt.prefix, tt.expr, tt.key, got)
		}
	}
}
