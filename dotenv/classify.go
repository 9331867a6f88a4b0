package dotenv

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Classifier decides which keys are exposed to client code.
type Classifier interface {
	IsPublic(key string) bool
}

// PrefixClassifier classifies keys starting with the prefix as public.
type PrefixClassifier string

// DefaultClassifier is the [PrefixClassifier] for [PublicPrefix].
const DefaultClassifier = PrefixClassifier(PublicPrefix)

// IsPublic implements [Classifier].
func (p PrefixClassifier) IsPublic(key string) bool {
	return strings.HasPrefix(key, string(p))
}

// exprClassifier evaluates a compiled boolean expression per key.
type exprClassifier struct {
	source  string
	program *vm.Program
}

// ExprClassifier compiles source into a [Classifier]. The expression sees the
// variable name as key and must evaluate to a bool, for example:
//
//	key startsWith "NEXT_PUBLIC_" || key in ["APP_URL", "APP_NAME"]
//
// A key whose evaluation fails at run time is classified as private.
func ExprClassifier(source string) (Classifier, error) {
	program, err := expr.Compile(source,
		expr.Env(classifierEnv("")),
		expr.AsBool(),
	)
	if err != nil {
		return nil, ErrClassifier.Wrap(err).With(slog.String("expr", source))
	}

	return &exprClassifier{source: source, program: program}, nil
}

// IsPublic implements [Classifier].
func (c *exprClassifier) IsPublic(key string) bool {
	out, err := vm.Run(c.program, classifierEnv(key))
	if err != nil {
		return false
	}

	public, ok := out.(bool)

	return ok && public
}

// String returns the expression source.
func (c *exprClassifier) String() string { return c.source }

func classifierEnv(key string) map[string]any {
	return map[string]any{"key": key}
}
