package dotenv

import (
	"fmt"
	"log/slog"
	"strings"
)

// ParseErrorKind identifies why an annotation failed to parse.
type ParseErrorKind int

const (
	ErrorExpectedToken ParseErrorKind = iota // expected token
	ErrorUnexpectedEnd                       // unexpected end
	ErrorIllegalToken                        // illegal token
)

// ParseError describes an annotation grammar error.
// It matches [ErrAnnotation] with errors.Is.
type ParseError struct {
	Kind     ParseErrorKind
	Expected TokenKind // set for ErrorExpectedToken
	Found    Token     // zero for ErrorUnexpectedEnd
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrorExpectedToken:
		return fmt.Sprintf("expected %s but found %s %q",
			e.Expected, e.Found.Kind, e.Found.Text)

	case ErrorUnexpectedEnd:
		return "unexpected end of input"

	default:
		return fmt.Sprintf("unexpected token %s %q", e.Found.Kind, e.Found.Text)
	}
}

// Is makes every ParseError match [ErrAnnotation].
func (e *ParseError) Is(target error) bool { return target == ErrAnnotation }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("error", e.Kind.String())}

	if e.Kind == ErrorExpectedToken {
		attrs = append(attrs, slog.String("expected", e.Expected.String()))
	}

	if e.Kind != ErrorUnexpectedEnd {
		attrs = append(attrs,
			slog.String("found", e.Found.Kind.String()),
			slog.String("text", e.Found.Text),
		)
	}

	return slog.GroupValue(attrs...)
}

// ParseHint parses an annotation comment such as "# @type 'dev' | 'prod'".
//
// Grammar:
//
//	hint    → '#'? '@type' (primitive | union)
//	union   → literal ('|'+ literal)* '|'*
//
// Runs of consecutive pipes count as one separator and trailing pipes are
// tolerated. Anything after a complete hint is ignored.
func ParseHint(comment string) (Hint, error) {
	p := newParser(comment)

	return p.parse()
}

// HintOf is the permissive form of [ParseHint]: any parse error yields
// (Hint{}, false), so a malformed annotation behaves as no annotation.
func HintOf(comment string) (Hint, bool) {
	h, err := ParseHint(comment)
	if err != nil {
		return Hint{}, false
	}

	return h, true
}

// parser holds the parser state.
type parser struct {
	lexer  *Lexer
	token  Token
	peeked *Token
}

func newParser(source string) *parser {
	p := &parser{lexer: NewLexer(source)}
	p.token = p.lexer.Next()

	return p
}

// advance moves to the next token, consuming a peeked token first.
func (p *parser) advance() Token {
	if p.peeked != nil {
		p.token, p.peeked = *p.peeked, nil
	} else {
		p.token = p.lexer.Next()
	}

	return p.token
}

// peek returns the token after the current one without consuming it.
func (p *parser) peek() Token {
	if p.peeked == nil {
		tok := p.lexer.Next()
		p.peeked = &tok
	}

	return *p.peeked
}

func (p *parser) expect(kind TokenKind) error {
	if p.token.Kind != kind {
		return &ParseError{
			Kind:     ErrorExpectedToken,
			Expected: kind,
			Found:    p.token,
		}
	}

	return nil
}

func (p *parser) parse() (Hint, error) {
	if p.token.Kind == TokenPound {
		p.advance()
	}

	err := p.expect(TokenKeyword)
	if err != nil {
		return Hint{}, err
	}

	switch tok := p.advance(); tok.Kind {
	case TokenStringType:
		return StringHint(), nil

	case TokenNumberType:
		return NumberHint(), nil

	case TokenBooleanType:
		return BooleanHint(), nil

	case TokenStringLiteral:
		return p.parseUnion()

	case TokenEOF:
		return Hint{}, &ParseError{Kind: ErrorUnexpectedEnd}

	default:
		return Hint{}, &ParseError{Kind: ErrorIllegalToken, Found: tok}
	}
}

// parseUnion collects literals starting at the current string literal token.
func (p *parser) parseUnion() (Hint, error) {
	literals := []string{unquote(p.token.Text)}

	for p.peek().Kind == TokenPipe {
		for p.peek().Kind == TokenPipe {
			p.advance()
		}

		switch tok := p.advance(); tok.Kind {
		case TokenStringLiteral:
			literals = append(literals, unquote(tok.Text))

		case TokenEOF:
			return UnionHint(literals...)

		default:
			return Hint{}, &ParseError{Kind: ErrorIllegalToken, Found: tok}
		}
	}

	return UnionHint(literals...)
}

// unquote strips the single quotes surrounding a string literal token.
func unquote(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "'"), "'")
}
