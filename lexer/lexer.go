package lexer

import (
	"sort"
	"unicode"

	"github.com/smasher164/xid"
)

const eof = -1

// Lexer tokenizes fullsimple source text. It supports one-token lookback
// via PutBack, which the parser uses to decide between alternate forms
// (spec.md §4.A).
type Lexer struct {
	src   []rune
	i     int // index of the next unread rune in src
	ch    rune
	lines []int // rune offsets into src where each line begins

	buffered bool
	prev     Token
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	runes := []rune(src)
	l := &Lexer{src: runes, i: 0, lines: []int{0}}
	if len(runes) > 0 {
		l.ch = runes[0]
	} else {
		l.ch = eof
	}
	return l
}

func isLetter(ch rune) bool {
	return ch == '_' || xid.Start(ch)
}

func isIdentContinue(ch rune) bool {
	return ch == '_' || xid.Continue(ch)
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func (l *Lexer) next() {
	if l.ch == eof {
		return
	}
	l.i++
	if l.i < len(l.src) {
		l.ch = l.src[l.i]
	} else {
		l.ch = eof
	}
	if l.ch == '\n' {
		l.lines = append(l.lines, l.i+1)
	}
}

func (l *Lexer) peek() rune {
	if l.i+1 < len(l.src) {
		return l.src[l.i+1]
	}
	return eof
}

func (l *Lexer) lineIndex(offset int) int {
	line, found := sort.Find(len(l.lines), func(i int) int {
		v := l.lines[i]
		switch {
		case offset == v:
			return 0
		case offset < v:
			return -1
		default:
			return 1
		}
	})
	if found {
		return line
	}
	return line - 1
}

func (l *Lexer) posOf(offset int) Pos {
	line := l.lineIndex(offset)
	return Pos{Offset: offset, Line: line + 1, Column: offset - l.lines[line] + 1}
}

func (l *Lexer) spanOf(startOff, endOff int) Span {
	start := l.posOf(startOff)
	end := start
	if endOff != startOff {
		end = l.posOf(endOff)
	}
	return Span{Start: start, End: end}
}

func (l *Lexer) lexIdentOrKeyword() Token {
	start := l.i
	l.next()
	for isIdentContinue(l.ch) {
		l.next()
	}
	data := string(l.src[start:l.i])
	span := l.spanOf(start, l.i-1)
	if ttyp, ok := Keywords[data]; ok {
		return Token{Type: ttyp, Span: span}
	}
	return Token{Type: Ident, Span: span, Data: data}
}

func (l *Lexer) lexNumber() Token {
	start := l.i
	for isDigit(l.ch) {
		l.next()
	}
	return Token{Type: Number, Span: l.spanOf(start, l.i-1), Data: string(l.src[start:l.i])}
}

// NextToken reads and returns the next token, skipping whitespace.
// Unknown single characters yield an Illegal token (spec.md §4.A).
func (l *Lexer) NextToken() Token {
	if l.buffered {
		l.buffered = false
		return l.prev
	}
	for unicode.IsSpace(l.ch) {
		l.next()
	}
	start := l.i
	switch {
	case l.ch == eof:
		return Token{Type: EOF, Span: l.spanOf(start, start)}
	case isLetter(l.ch):
		return l.lexIdentOrKeyword()
	case isDigit(l.ch):
		return l.lexNumber()
	case l.ch == '-' && l.peek() == '>':
		l.next()
		l.next()
		return Token{Type: Arrow, Span: l.spanOf(start, l.i-1)}
	case l.ch == ':' && l.peek() == '=':
		l.next()
		l.next()
		return Token{Type: Assign, Span: l.spanOf(start, l.i-1)}
	}
	if ttyp, ok := SingleCharTokens[l.ch]; ok {
		l.next()
		return Token{Type: ttyp, Span: l.spanOf(start, start)}
	}
	ch := l.ch
	l.next()
	return Token{Type: Illegal, Span: l.spanOf(start, start), Data: string(ch)}
}

// PutBack pushes tok back so the next call to NextToken returns it again.
// Only one token of lookback is supported (spec.md §4.A).
func (l *Lexer) PutBack(tok Token) {
	l.buffered = true
	l.prev = tok
}
