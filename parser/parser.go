// Package parser implements the recursive-descent parser for fullsimple
// (spec.md §4.D): it turns a token stream into an ast.Term (or a
// types.Type, for the nested type grammar), resolving every bound
// identifier to a de Bruijn index as it goes.
package parser

import (
	"fmt"
	"strconv"

	"github.com/mistlang/fullsimple/ast"
	"github.com/mistlang/fullsimple/diag"
	"github.com/mistlang/fullsimple/lexer"
	"github.com/mistlang/fullsimple/types"
)

// Parser walks a token stream one token of lookahead at a time, in the
// shape of the teacher's own parser: a current token, a next() to
// advance it, and panic/recover in place of threading errors through
// every call.
type Parser struct {
	lex   *lexer.Lexer
	tok   lexer.Token
	scope []string // bound names, innermost last
}

// New creates a Parser over src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.tok = p.lex.NextToken()
	return p
}

// Parse parses a complete program: one term followed by end of input
// (spec.md §4.D). It never returns a partial term alongside an error.
func Parse(src string) (term ast.Term, err error) {
	p := New(src)
	err = p.safely(func() { term = p.parseProgram() })
	if err != nil {
		return nil, err
	}
	return term, nil
}

// ParseType parses a standalone type expression, the grammar rooted at
// "type" in spec.md §4.D. Used by the parser tests.
func ParseType(src string) (t types.Type, err error) {
	p := New(src)
	err = p.safely(func() {
		t = p.parseType()
		p.expect(lexer.EOF, "end of input")
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Parser) safely(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*diag.SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	f()
	return nil
}

func (p *Parser) advance() lexer.Token {
	cur := p.tok
	p.tok = p.lex.NextToken()
	return cur
}

func (p *Parser) errorf(span lexer.Span, format string, args ...interface{}) {
	panic(&diag.SyntaxError{Message: fmt.Sprintf(format, args...), Span: span, Token: p.tok.Type})
}

func (p *Parser) expect(tt lexer.TokenType, what string) lexer.Token {
	if p.tok.Type != tt {
		p.errorf(p.tok.Span, "expected %s, got %s", what, describeToken(p.tok))
	}
	return p.advance()
}

func describeToken(tok lexer.Token) string {
	if tok.Data != "" {
		return fmt.Sprintf("%s %q", tok.Type, tok.Data)
	}
	return tok.Type.String()
}

func (p *Parser) pushScope(name string) { p.scope = append(p.scope, name) }
func (p *Parser) popScope()             { p.scope = p.scope[:len(p.scope)-1] }

// resolveVar turns an identifier into a Variable. Bound names resolve to
// their de Bruijn index counting outward from the innermost binder
// (spec.md §3). A name that is not bound must be exactly one character
// long (spec.md §3, §4.D); such a free identifier gets a negative index
// keyed off its letter, so two occurrences of the same free identifier in
// one term compare Equal while never colliding with a real bound index —
// check.TypeOf treats any negative index as unbound.
func (p *Parser) resolveVar(name string, span lexer.Span) ast.Variable {
	for i := len(p.scope) - 1; i >= 0; i-- {
		if p.scope[i] == name {
			return ast.NewVariable(span, name, len(p.scope)-1-i)
		}
	}
	if len(name) != 1 {
		p.errorf(span, "free identifier %q must be exactly one character", name)
	}
	return ast.NewVariable(span, name, -(int(name[0]) + 1))
}

// --- program / term grammar ---

func (p *Parser) parseProgram() ast.Term {
	t := p.parseTerm()
	p.expect(lexer.EOF, "end of input")
	return t
}

// parseTerm handles the lowest-precedence form, right-associative
// sequencing: "t1; t2; t3" = "t1; (t2; t3)" (spec.md §3).
func (p *Parser) parseTerm() ast.Term {
	left := p.parseAssignOrApp()
	if p.tok.Type == lexer.Semicolon {
		p.advance()
		right := p.parseTerm()
		return ast.NewSequence(left.Span().Add(right.Span()), left, right)
	}
	return left
}

// parseAssignOrApp handles the single, non-associative ":=" level that
// sits between sequencing and application (spec.md §3: "Lhs := Rhs").
func (p *Parser) parseAssignOrApp() ast.Term {
	left := p.parseAppSeq()
	if p.tok.Type == lexer.Assign {
		p.advance()
		right := p.parseAppSeq()
		return ast.NewAssign(left.Span().Add(right.Span()), left, right)
	}
	return left
}

// unaryStart lists every token that can begin a unary/atom term, used to
// decide when a left-associative application chain continues.
var unaryStart = map[lexer.TokenType]bool{
	lexer.Bang: true, lexer.KwRef: true, lexer.Fix: true,
	lexer.Succ: true, lexer.Pred: true, lexer.IsZero: true,
	lexer.Number: true, lexer.True: true, lexer.False: true,
	lexer.KwUnit: true, lexer.If: true, lexer.Let: true,
	lexer.Lambda: true, lexer.LeftBrace: true, lexer.Ident: true,
	lexer.LeftParen: true,
}

// parseAppSeq is left-associative function application: "f a b" is
// "(f a) b" (spec.md §3).
func (p *Parser) parseAppSeq() ast.Term {
	fun := p.parseUnary()
	for unaryStart[p.tok.Type] {
		arg := p.parseUnary()
		fun = ast.NewApplication(fun.Span().Add(arg.Span()), fun, arg)
	}
	return fun
}

// parseUnary handles the prefix operators, each of which takes a single
// unary operand and so nests without parentheses ("iszero pred 0").
func (p *Parser) parseUnary() ast.Term {
	switch p.tok.Type {
	case lexer.Bang:
		tok := p.advance()
		arg := p.parsePrefixOperand(tok)
		return ast.NewDeref(tok.Span.Add(arg.Span()), arg)
	case lexer.KwRef:
		tok := p.advance()
		arg := p.parsePrefixOperand(tok)
		return ast.NewRef(tok.Span.Add(arg.Span()), arg)
	case lexer.Fix:
		tok := p.advance()
		arg := p.parsePrefixOperand(tok)
		return ast.NewFix(tok.Span.Add(arg.Span()), arg)
	case lexer.Succ:
		tok := p.advance()
		arg := p.parsePrefixOperand(tok)
		return ast.NewSucc(tok.Span.Add(arg.Span()), arg)
	case lexer.Pred:
		tok := p.advance()
		arg := p.parsePrefixOperand(tok)
		return ast.NewPred(tok.Span.Add(arg.Span()), arg)
	case lexer.IsZero:
		tok := p.advance()
		arg := p.parsePrefixOperand(tok)
		return ast.NewIsZero(tok.Span.Add(arg.Span()), arg)
	default:
		return p.parsePostfix()
	}
}

// parsePrefixOperand parses the single operand a prefix keyword takes,
// reporting a "dangling prefix operator" error if nothing usable follows.
func (p *Parser) parsePrefixOperand(op lexer.Token) ast.Term {
	if !unaryStart[p.tok.Type] {
		p.errorf(op.Span, "dangling prefix operator %s: expected an operand", op.Type)
	}
	return p.parseUnary()
}

// parsePostfix handles record projection, "r.l.m", left-associative.
func (p *Parser) parsePostfix() ast.Term {
	t := p.parseAtom()
	for p.tok.Type == lexer.Period {
		p.advance()
		label := p.expect(lexer.Ident, "field label")
		t = ast.NewProjection(t.Span().Add(label.Span), t, label.Data)
	}
	return t
}

func (p *Parser) parseAtom() ast.Term {
	switch p.tok.Type {
	case lexer.Number:
		tok := p.advance()
		n, err := strconv.Atoi(tok.Data)
		if err != nil {
			p.errorf(tok.Span, "invalid numeral %q", tok.Data)
		}
		return numeral(n, tok.Span)
	case lexer.True:
		tok := p.advance()
		return ast.NewTrue(tok.Span)
	case lexer.False:
		tok := p.advance()
		return ast.NewFalse(tok.Span)
	case lexer.KwUnit:
		tok := p.advance()
		return ast.NewUnit(tok.Span)
	case lexer.If:
		return p.parseIf()
	case lexer.Let:
		return p.parseLet()
	case lexer.Lambda:
		return p.parseLambda()
	case lexer.LeftBrace:
		return p.parseRecordLiteral()
	case lexer.Ident:
		tok := p.advance()
		return p.resolveVar(tok.Data, tok.Span)
	case lexer.LeftParen:
		open := p.advance()
		inner := p.parseTerm()
		close := p.expect(lexer.RightParen, ")")
		return ast.NewParenthesized(open.Span.Add(close.Span), inner)
	default:
		p.errorf(p.tok.Span, "unexpected %s", describeToken(p.tok))
		panic("unreachable")
	}
}

// numeral builds the succ-chain literal for a decimal numeral (spec.md §3:
// "numeric literals are shorthand for repeated succ").
func numeral(n int, span lexer.Span) ast.Term {
	t := ast.Term(ast.NewZero(span))
	for i := 0; i < n; i++ {
		t = ast.NewSucc(span, t)
	}
	return t
}

func (p *Parser) parseIf() ast.Term {
	start := p.expect(lexer.If, "if")
	cond := p.parseTerm()
	p.expect(lexer.Then, "then")
	then := p.parseTerm()
	p.expect(lexer.Else, "else")
	els := p.parseTerm()
	return ast.NewIf(start.Span.Add(els.Span()), cond, then, els)
}

func (p *Parser) parseLet() ast.Term {
	start := p.expect(lexer.Let, "let")
	name := p.expect(lexer.Ident, "bound name")
	p.expect(lexer.Equal, "=")
	bound := p.parseTerm()
	p.expect(lexer.In, "in")
	p.pushScope(name.Data)
	body := p.parseTerm()
	p.popScope()
	return ast.NewLet(start.Span.Add(body.Span()), name.Data, bound, body)
}

func (p *Parser) parseLambda() ast.Term {
	start := p.expect(lexer.Lambda, "l")
	name := p.expect(lexer.Ident, "parameter name")
	p.expect(lexer.Colon, ":")
	dom := p.parseType()
	p.expect(lexer.Period, ".")
	p.pushScope(name.Data)
	body := p.parseTerm()
	p.popScope()
	return ast.NewLambda(start.Span.Add(body.Span()), name.Data, dom, body)
}

func (p *Parser) parseRecordLiteral() ast.Term {
	start := p.expect(lexer.LeftBrace, "{")
	if p.tok.Type == lexer.RightBrace {
		p.errorf(start.Span, "empty record literal")
	}
	var fields []ast.RecordField
	for {
		name := p.expect(lexer.Ident, "field label")
		p.expect(lexer.Equal, "=")
		val := p.parseTerm()
		fields = append(fields, ast.RecordField{Label: name.Data, Value: val})
		if p.tok.Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(lexer.RightBrace, "}")
	return ast.NewRecord(start.Span.Add(end.Span), fields)
}

// --- type grammar ---

// parseType handles "->", right-associative: "A -> B -> C" is
// "A -> (B -> C)" (spec.md §3, §4.D).
func (p *Parser) parseType() types.Type {
	left := p.parseTAtom()
	if p.tok.Type == lexer.Arrow {
		p.advance()
		right := p.parseType()
		return types.Function{Dom: left, Cod: right}
	}
	return left
}

func (p *Parser) parseTAtom() types.Type {
	switch p.tok.Type {
	case lexer.KwBool:
		p.advance()
		return types.Bool{}
	case lexer.KwNat:
		p.advance()
		return types.Nat{}
	case lexer.KwUnitType:
		p.advance()
		return types.Unit{}
	case lexer.KwTop:
		p.advance()
		return types.Top{}
	case lexer.KwRefType:
		p.advance()
		return types.Ref{Inner: p.parseTAtom()}
	case lexer.LeftParen:
		p.advance()
		t := p.parseType()
		p.expect(lexer.RightParen, ")")
		return t
	case lexer.LeftBrace:
		return p.parseRecordType()
	default:
		p.errorf(p.tok.Span, "expected a type, got %s", describeToken(p.tok))
		panic("unreachable")
	}
}

func (p *Parser) parseRecordType() types.Type {
	start := p.tok.Span
	p.expect(lexer.LeftBrace, "{")
	if p.tok.Type == lexer.RightBrace {
		p.errorf(start, "empty record type")
	}
	var fields []types.Field
	for {
		name := p.expect(lexer.Ident, "field label")
		p.expect(lexer.Colon, ":")
		ty := p.parseType()
		fields = append(fields, types.Field{Label: name.Data, Type: ty})
		if p.tok.Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RightBrace, "}")
	return types.Record{Fields: fields}
}
