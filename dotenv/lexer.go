package dotenv

//go:generate go tool stringer --linecomment --type TokenKind,HintKind,ParseErrorKind --output kind_string.go

import "iter"

// TokenKind classifies a token of the annotation syntax.
type TokenKind int

const (
	TokenEOF           TokenKind = iota // end of input
	TokenIllegal                        // illegal
	TokenKeyword                        // @type
	TokenPound                          // #
	TokenStringType                     // string
	TokenNumberType                     // number
	TokenBooleanType                    // boolean
	TokenStringLiteral                  // string literal
	TokenPipe                           // |
)

// keyword is the only keyword recognized by the lexer.
const keyword = "@type"

// Token is a single lexeme of an annotation comment.
// Text is a slice of the source; for string literals it includes the quotes.
type Token struct {
	Kind TokenKind
	Text string
}

// Lexer tokenizes one annotation comment line.
//
// Lexer never fails: unrecognized input is returned as [TokenIllegal] tokens
// and it is up to the parser to reject them.
type Lexer struct {
	source string
	pos    int
}

// NewLexer returns a lexer positioned at the start of source.
func NewLexer(source string) *Lexer {
	return &Lexer{source: source}
}

// Next returns the next token, skipping leading ASCII whitespace.
// Once the input is exhausted, Next returns a [TokenEOF] token on every call.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	if l.eof() {
		return Token{Kind: TokenEOF}
	}

	switch ch := l.source[l.pos]; {
	case ch == '@':
		return l.lexKeyword()

	case ch == '\'':
		return l.lexStringLiteral()

	case ch == '|':
		return l.single(TokenPipe)

	case ch == '#':
		return l.single(TokenPound)

	case isASCIIAlpha(ch):
		return l.lexType()

	default:
		return l.single(TokenIllegal)
	}
}

// All returns an iterator over the remaining tokens, excluding the final
// [TokenEOF].
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := l.Next()
			if tok.Kind == TokenEOF || !yield(tok) {
				return
			}
		}
	}
}

func (l *Lexer) single(kind TokenKind) Token {
	start := l.pos
	l.pos++

	return Token{Kind: kind, Text: l.source[start:l.pos]}
}

// lexKeyword consumes '@' and the lowercase run that follows it.
func (l *Lexer) lexKeyword() Token {
	start := l.pos
	l.pos++ // skip '@'

	for !l.eof() && isASCIILower(l.source[l.pos]) {
		l.pos++
	}

	text := l.source[start:l.pos]
	if text == keyword {
		return Token{Kind: TokenKeyword, Text: text}
	}

	return Token{Kind: TokenIllegal, Text: text}
}

// lexStringLiteral consumes a single-quoted literal including both quotes.
// An unterminated literal is illegal and leaves the cursor at end of input.
func (l *Lexer) lexStringLiteral() Token {
	start := l.pos
	l.pos++ // skip opening quote

	for !l.eof() && l.source[l.pos] != '\'' {
		l.pos++
	}

	if l.eof() {
		return Token{Kind: TokenIllegal, Text: l.source[start:l.pos]}
	}

	l.pos++ // skip closing quote

	return Token{Kind: TokenStringLiteral, Text: l.source[start:l.pos]}
}

// lexType consumes an alphabetic run and matches it against the primitive
// type names.
func (l *Lexer) lexType() Token {
	start := l.pos

	for !l.eof() && isASCIIAlpha(l.source[l.pos]) {
		l.pos++
	}

	text := l.source[start:l.pos]

	switch text {
	case "string":
		return Token{Kind: TokenStringType, Text: text}
	case "number":
		return Token{Kind: TokenNumberType, Text: text}
	case "boolean":
		return Token{Kind: TokenBooleanType, Text: text}
	default:
		return Token{Kind: TokenIllegal, Text: text}
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() && isASCIISpace(l.source[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.source)
}

// Character classification

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

func isASCIILower(c byte) bool { return c >= 'a' && c <= 'z' }

func isASCIIAlpha(c byte) bool {
	return isASCIILower(c) || (c >= 'A' && c <= 'Z')
}
