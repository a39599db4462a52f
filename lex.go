package calculator

import (
	"errors"
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical unit of an expression.
type Token struct {
	// Kind is the token's kind.
	Kind TokenKind
	// Text is the source text of the token. It is empty for EOF.
	Text string
	// Num is the value of a number token.
	Num float64
	// Col is the 1-based rune column where the token starts.
	Col int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// describe names the token for error messages.
func (t Token) describe() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}
	return strconv.Quote(t.Text)
}

// TokenKind is the kind of a Token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenEOF indicates the end of the input.
	TokenEOF
	// TokenNum is a floating-point literal.
	TokenNum
	// TokenOp is one of the operators + - * / ^.
	TokenOp
	// TokenLeftParen is (.
	TokenLeftParen
	// TokenRightParen is ).
	TokenRightParen
	// TokenIdent is a function or constant name.
	TokenIdent
	// TokenComma separates function arguments.
	TokenComma
)

var tokenKindNames = [...]string{
	TokenNone:       "None",
	TokenEOF:        "EOF",
	TokenNum:        "Num",
	TokenOp:         "Op",
	TokenLeftParen:  "LeftParen",
	TokenRightParen: "RightParen",
	TokenIdent:      "Ident",
	TokenComma:      "Comma",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

type lexer struct {
	src string
	// off is the byte offset of the next rune.
	off int
	// col is the column of the next rune.
	col int
	p   Token
}

func lex(src string) *lexer {
	return &lexer{
		src: src,
		col: 1,
	}
}

// Tokens lexes src lazily. Each iteration over the result lexes src from the
// beginning. The sequence ends at the end of the input, which is not yielded,
// or after yielding the first error.
func Tokens(src string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		scan := lex(src)
		for {
			tok, err := scan.next()
			if err != nil {
				yield(tok, err)
				return
			}
			if tok.Kind == TokenEOF {
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok Token) {
	if l.p.Kind != TokenNone {
		panic("calculator: double push")
	}
	l.p = tok
}

// advance moves past n bytes of the source.
func (l *lexer) advance(n int) {
	l.col += utf8.RuneCountInString(l.src[l.off : l.off+n])
	l.off += n
}

// next scans the next token from the input. Once the input is exhausted, every
// call returns an EOF token. After an error, the lexer has skipped the invalid
// rune, so scanning may continue.
func (l *lexer) next() (Token, error) {
	if l.p.Kind != TokenNone {
		tok := l.p
		l.p = Token{}
		return tok, nil
	}
	for l.off < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.off:])
		if !unicode.IsSpace(r) {
			break
		}
		l.advance(sz)
	}
	tok := Token{Col: l.col}
	if l.off >= len(l.src) {
		tok.Kind = TokenEOF
		return tok, nil
	}
	r, sz := utf8.DecodeRuneInString(l.src[l.off:])
	switch {
	case '0' <= r && r <= '9', r == '.':
		return l.scanNum(tok)
	case r == '_', unicode.IsLetter(r):
		return l.scanIdent(tok), nil
	case r == '(':
		tok.Kind = TokenLeftParen
	case r == ')':
		tok.Kind = TokenRightParen
	case r == ',':
		tok.Kind = TokenComma
	case strings.ContainsRune(Operators, r):
		tok.Kind = TokenOp
	default:
		text := l.src[l.off : l.off+sz]
		l.advance(sz)
		return Token{Col: tok.Col}, &LexError{Text: text, Col: tok.Col}
	}
	tok.Text = l.src[l.off : l.off+sz]
	l.advance(sz)
	return tok, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// scanNum scans the longest floating-point literal at the current offset. An
// exponent marker without exponent digits is left for the next token.
func (l *lexer) scanNum(tok Token) (Token, error) {
	s := l.src
	i := l.off
	dig := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		dig++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			dig++
		}
	}
	if dig == 0 {
		// A lone decimal point.
		text := s[l.off:i]
		l.advance(i - l.off)
		return Token{Col: tok.Col}, &LexError{Text: text, Kind: "number", Col: tok.Col}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	tok.Kind = TokenNum
	tok.Text = s[l.off:i]
	l.advance(i - l.off)
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// The scanner only accepts text that ParseFloat understands.
		panic("calculator: invalid number " + strconv.Quote(tok.Text) + ": " + err.Error())
	}
	// Out of range literals are ±Inf or 0, as ParseFloat reports them.
	tok.Num = v
	return tok, nil
}

func (l *lexer) scanIdent(tok Token) Token {
	i := l.off
	for i < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[i:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i += sz
	}
	tok.Kind = TokenIdent
	tok.Text = l.src[l.off:i]
	l.advance(i - l.off)
	return tok
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the invalid rune, or the invalid number text.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the column of the invalid rune.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
