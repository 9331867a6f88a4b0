package yamltype

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ntro/pkg"
)

// indent is the indentation unit of rendered declarations.
const indent = "  "

// Decode reads every document of a YAML stream, keeping mapping keys in
// source order. An empty stream yields a single null document.
func Decode(ctx context.Context, r io.Reader) ([]any, error) {
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())

	var docs []any

	for {
		var doc any

		err := dec.DecodeContext(ctx, &doc)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, pkg.ErrYAMLDecode.Wrap(err)
		}

		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		docs = []any{nil}
	}

	return docs, nil
}

// Generate decodes the YAML stream r and writes its declaration named name
// to w. See [Render].
func Generate(ctx context.Context, w io.Writer, name string, r io.Reader) error {
	docs, err := Decode(ctx, r)
	if err != nil {
		return err
	}

	return Render(w, name, docs)
}

// Render writes the ambient TypeScript declaration of docs to w.
//
// A single document becomes "declare type Name = T;". Several documents
// become a namespace Name holding DocumentN for each document and All, the
// tuple of every document type in order.
//
// Types are literal: scalars render as their literal types, sequences as
// tuples, and mappings as object types with keys in source order.
func Render(w io.Writer, name string, docs []any) error {
	var sb strings.Builder

	if len(docs) == 1 {
		fmt.Fprintf(&sb, "declare type %s = %s;\n", name, Literal(docs[0], 0))
	} else {
		fmt.Fprintf(&sb, "declare namespace %s {\n", name)

		all := make([]string, len(docs))
		for i, doc := range docs {
			all[i] = "Document" + strconv.Itoa(i)
			fmt.Fprintf(&sb, "%sexport type %s = %s;\n", indent, all[i], Literal(doc, 1))
		}

		fmt.Fprintf(&sb, "%sexport type All = [%s];\n}\n", indent, strings.Join(all, ", "))
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// Literal returns the TypeScript literal type of a decoded YAML value.
// depth is the indentation level of the line the type starts on.
func Literal(v any, depth int) string {
	switch v := v.(type) {
	case nil:
		return "null"

	case bool:
		return strconv.FormatBool(v)

	case string:
		return quote(v)

	case float64:
		return float(v)

	case float32:
		return float(float64(v))

	case time.Time:
		return quote(v.Format(time.RFC3339Nano))

	case yaml.MapSlice:
		return object(v, depth)

	case []any:
		elems := make([]string, len(v))
		for i, e := range v {
			elems[i] = Literal(e, depth)
		}

		return "[" + strings.Join(elems, ", ") + "]"
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)

	case reflect.Map:
		items := make(yaml.MapSlice, 0, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			items = append(items, yaml.MapItem{
				Key:   iter.Key().Interface(),
				Value: iter.Value().Interface(),
			})
		}

		return object(items, depth)

	case reflect.Slice, reflect.Array:
		elems := make([]any, rv.Len())
		for i := range elems {
			elems[i] = rv.Index(i).Interface()
		}

		return Literal(elems, depth)

	default:
		return quote(fmt.Sprint(v))
	}
}

func object(items yaml.MapSlice, depth int) string {
	if len(items) == 0 {
		return "{}"
	}

	var sb strings.Builder

	sb.WriteString("{\n")

	for _, item := range items {
		sb.WriteString(strings.Repeat(indent, depth+1))
		sb.WriteString(property(item.Key))
		sb.WriteString(": ")
		sb.WriteString(Literal(item.Value, depth+1))
		sb.WriteString(";\n")
	}

	sb.WriteString(strings.Repeat(indent, depth))
	sb.WriteString("}")

	return sb.String()
}

// property renders a mapping key as an object type property name.
func property(key any) string {
	var s string

	switch k := key.(type) {
	case string:
		s = k
	case nil:
		s = "null"
	default:
		s = fmt.Sprint(k)
	}

	if isIdentifier(s) {
		return s
	}

	return quote(s)
}

func float(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "number"
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quote returns s as a single-quoted string literal type.
func quote(s string) string {
	return "'" + escaper.Replace(s) + "'"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

// TypeName derives a type name from the file name of path: the name without
// its final extension is split at '-' and '.', each part is capitalized, and
// the parts are joined. Characters not allowed in identifiers are dropped.
//
//	TypeName("config/test-config-tee.prod.yaml") == "TestConfigTeeProd"
func TypeName(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	var sb strings.Builder

	for part := range strings.FieldsFuncSeq(stem, func(r rune) bool {
		return r == '-' || r == '.'
	}) {
		first := true

		for _, r := range part {
			switch {
			case r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r):
			default:
				continue
			}

			if first {
				r = unicode.ToUpper(r)
				first = false
			}

			sb.WriteRune(r)
		}
	}

	name := sb.String()

	switch {
	case name == "":
		return "Document"
	case unicode.IsDigit([]rune(name)[0]):
		return "_" + name
	default:
		return name
	}
}
