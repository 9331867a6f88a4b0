package dotenv

import (
	_ "embed"
	"io"
	"regexp"
	"encoding/json"
	"strings"
	"text/template"
)

// SchemaDependencies lists the packages imported by the schema module.
var SchemaDependencies = []string{"zod"}

//go:embed module.ts
var moduleSource string

// runtimeMarker separates the import header of module.ts from its body.
const runtimeMarker = "/* --- runtime --- */"

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var funcs = template.FuncMap{
	"prop":      jsProperty,
	"env":       jsEnvAccess,
	"validator": validator,
}

var declarationsTemplate = template.Must(
	template.New("declarations").Funcs(funcs).Parse(
		`declare namespace NodeJS {
  interface ProcessEnv {
{{- range .}}
    {{prop .Key}}?: string;
{{- end}}
  }
}
`))

var schemaTemplate = template.Must(
	template.New("schema").Funcs(funcs).Parse(
		`{{.Header}}

const clientEnvSchemas = {
{{- range .Public}}
  {{prop .Key}}: {{validator .}},
{{- end}}
};

const serverEnvSchemas = {
  ...clientEnvSchemas,
{{- range .Private}}
  {{prop .Key}}: {{validator .}},
{{- end}}
};

const processEnv = {
{{- range .All}}
  {{prop .Key}}: {{env .Key}},
{{- end}}
};

{{.Runtime}}
`))

// RenderDeclarations writes an ambient declaration of NodeJS.ProcessEnv that
// lists every key of reg once, in ascending order, as an optional string.
// Type hints are not used.
func RenderDeclarations(w io.Writer, reg *Registry) error {
	var entries []Entry
	for e := range reg.All() {
		entries = append(entries, e)
	}

	return declarationsTemplate.Execute(w, entries)
}

// RenderSchemaModule writes a zod schema module for reg. Keys c classifies
// as public go into clientEnvSchemas; serverEnvSchemas extends it with the
// remaining keys. Both tables and processEnv are in ascending key order.
func RenderSchemaModule(w io.Writer, reg *Registry, c Classifier) error {
	if c == nil {
		c = DefaultClassifier
	}

	header, runtime := splitModule(moduleSource)

	var all []Entry
	for e := range reg.All() {
		all = append(all, e)
	}

	return schemaTemplate.Execute(w, struct {
		Header, Runtime string
		Public, Private []Entry
		All             []Entry
	}{
		Header:  header,
		Runtime: runtime,
		Public:  reg.Public(c),
		Private: reg.Private(c),
		All:     all,
	})
}

// splitModule returns the import header and runtime body of module.ts.
func splitModule(src string) (header, runtime string) {
	header, runtime, _ = strings.Cut(src, runtimeMarker)

	return strings.TrimSpace(header), strings.TrimSpace(runtime)
}

// validator returns the zod expression for the hint of e.
func validator(e Entry) string {
	if e.Hint == nil {
		return "z.string()"
	}

	switch e.Hint.Kind() {
	case HintNumber:
		return "z.coerce.number()"

	case HintBoolean:
		return "z.coerce.boolean()"

	case HintUnion:
		lits := e.Hint.Literals()
		for i, lit := range lits {
			lits[i] = jsString(lit)
		}

		return "z.enum([" + strings.Join(lits, ", ") + "])"

	default:
		return "z.coerce.string()"
	}
}

// jsProperty returns key as an object property name, quoted unless it is a
// valid identifier.
func jsProperty(key string) string {
	if identifier.MatchString(key) {
		return key
	}

	return jsString(key)
}

// jsEnvAccess returns the expression reading key from process.env.
func jsEnvAccess(key string) string {
	if identifier.MatchString(key) {
		return "process.env." + key
	}

	return "process.env[" + jsString(key) + "]"
}

// jsString returns s as a double-quoted string literal valid in both JSON
// and JavaScript.
func jsString(s string) string {
	var b strings.Builder

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)

	return strings.TrimSuffix(b.String(), "\n")
}
