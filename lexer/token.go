package lexer

import "fmt"

// TokenType classifies a Token.
type TokenType int

const (
	EOF TokenType = iota
	Illegal

	Ident
	Number

	// Punctuation
	Period
	Comma
	Colon
	Equal
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Semicolon
	Arrow  // ->
	Assign // :=
	Bang   // !

	// Keywords
	Lambda // "l"
	True
	False
	Succ
	Pred
	IsZero
	If
	Then
	Else
	KwBool
	KwNat
	Let
	In
	KwRef
	KwRefType
	KwUnit
	KwUnitType
	Fix
	KwTop
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case Illegal:
		return "Illegal"
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case Period:
		return "."
	case Comma:
		return ","
	case Colon:
		return ":"
	case Equal:
		return "="
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case Semicolon:
		return ";"
	case Arrow:
		return "->"
	case Assign:
		return ":="
	case Bang:
		return "!"
	case Lambda:
		return "l"
	case True:
		return "true"
	case False:
		return "false"
	case Succ:
		return "succ"
	case Pred:
		return "pred"
	case IsZero:
		return "iszero"
	case If:
		return "if"
	case Then:
		return "then"
	case Else:
		return "else"
	case KwBool:
		return "Bool"
	case KwNat:
		return "Nat"
	case Let:
		return "let"
	case In:
		return "in"
	case KwRef:
		return "ref"
	case KwRefType:
		return "Ref"
	case KwUnit:
		return "unit"
	case KwUnitType:
		return "Unit"
	case Fix:
		return "fix"
	case KwTop:
		return "Top"
	default:
		return "?"
	}
}

// Keywords maps reserved identifiers to their TokenType (spec.md §4.A).
// "0" is lexed as a Number, not through this table; it is listed in
// spec.md's keyword set but tokenizes with the other digit runs.
var Keywords = map[string]TokenType{
	"l":      Lambda,
	"true":   True,
	"false":  False,
	"succ":   Succ,
	"pred":   Pred,
	"iszero": IsZero,
	"if":     If,
	"then":   Then,
	"else":   Else,
	"Bool":   KwBool,
	"Nat":    KwNat,
	"let":    Let,
	"in":     In,
	"ref":    KwRef,
	"Ref":    KwRefType,
	"unit":   KwUnit,
	"Unit":   KwUnitType,
	"fix":    Fix,
	"Top":    KwTop,
}

// SingleCharTokens are punctuators split out unconditionally when they do
// not begin one of DoubleCharTokens (spec.md §4.A).
var SingleCharTokens = map[rune]TokenType{
	'.': Period,
	',': Comma,
	':': Colon,
	'=': Equal,
	'(': LeftParen,
	')': RightParen,
	'{': LeftBrace,
	'}': RightBrace,
	';': Semicolon,
	'!': Bang,
}

// DoubleCharTokens are multi-character operators: "-" followed by ">"
// forms "->", ":" followed by "=" forms ":=" (spec.md §4.A).
var DoubleCharTokens = map[[2]rune]TokenType{
	{'-', '>'}: Arrow,
	{':', '='}: Assign,
}

// Pos is a source position: rune offset plus 1-based line/column.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) Min(other Pos) Pos {
	if p.Line == 0 {
		return other
	}
	if other.Line == 0 {
		return p
	}
	if p.Offset < other.Offset {
		return p
	}
	return other
}

func (p Pos) Max(other Pos) Pos {
	if p.Line == 0 {
		return other
	}
	if other.Line == 0 {
		return p
	}
	if p.Offset > other.Offset {
		return p
	}
	return other
}

// Span is a source range used to anchor diagnostics.
type Span struct {
	Start Pos
	End   Pos
}

// Add returns the smallest Span covering both spans.
func (s Span) Add(other Span) Span {
	return Span{s.Start.Min(other.Start), s.End.Max(other.End)}
}

func (s Span) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Token is one lexical token, with its exact source Span and, for Ident
// and Number, the raw text in Data.
type Token struct {
	Type TokenType
	Span Span
	Data string
}

func (t Token) String() string {
	if t.Data == "" {
		return fmt.Sprintf("%s:%s", t.Span, t.Type)
	}
	return fmt.Sprintf("%s:%s %q", t.Span, t.Type, t.Data)
}

// Eq compares two tokens by type and data, ignoring position — used by
// the lexer round-trip property in spec.md §8.
func (a Token) Eq(b Token) bool {
	return a.Type == b.Type && a.Data == b.Data
}
