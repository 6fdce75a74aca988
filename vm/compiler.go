package vm

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/josharian/intern"
	"github.com/loxbytes/corelox/debug"
	e "github.com/loxbytes/corelox/errors"
	"github.com/loxbytes/corelox/utils"
	"github.com/sirupsen/logrus"
)

// Parser drives a single-pass Pratt parser: it pulls tokens from its
// embedded Scanner one at a time and emits bytecode directly into chunk as
// it recognizes each piece of grammar. There is no intermediate AST.
type Parser struct {
	*Scanner
	prev, curr Token
	chunk      *Chunk

	errors *multierror.Error
	// panicMode suppresses cascading diagnostics once the parser has lost
	// sync with the token stream. For this grammar (a single expression,
	// no statements) end of input is the only synchronization point, so
	// panicMode simply stays set for the remainder of the parse once an
	// error fires.
	panicMode bool
}

func NewParser() *Parser { return &Parser{} }

// Compile compiles source into a Chunk. On any parse error the returned
// error is non-nil and the caller must treat the Chunk as garbage: bytes
// emitted up to the error point are not a usable partial program.
func (p *Parser) Compile(source string) (*Chunk, error) {
	p.chunk = NewChunk()
	p.Scanner = NewScanner(source)

	p.advance()
	p.expr()
	p.consume(TEOF, "Expect end of expression.")
	p.endCompiler()

	if debug.PrintCode() {
		logrus.Debugln(p.chunk.Disassemble("code"))
	}

	// panicMode's single synchronization point (end of input, since this
	// grammar has no statements to resync on) means at most one error is
	// ever collected here. Surface it bare rather than through
	// multierror's Error(), whose default ListFormatFunc wraps even a
	// single error in a "N errors occurred:" header and trailing blank
	// line — not the one-line `[line L] Error...: msg` wire format
	// errors.CompilationError.Error() was written to produce.
	if p.errors.ErrorOrNil() != nil {
		return p.chunk, p.errors.Errors[0]
	}
	return p.chunk, nil
}

/* Parse-rule actions: one per grammar production in the precedence table. */

func (p *Parser) number() {
	val, err := strconv.ParseFloat(p.prev.Lexeme, 64)
	if err != nil {
		// The scanner only ever hands us digit/./digit runs, so the lone
		// way ParseFloat can fail here is range overflow (a literal with
		// enough digits to not fit in a float64); that's a diagnosable
		// compile error, not a silent +Inf/-Inf, and not an ICE either
		// since the grammar itself allows arbitrarily long digit runs.
		p.Error(fmt.Sprintf("Invalid number literal: %s.", err))
		return
	}
	p.emitConst(VNum(val))
}

func (p *Parser) grouping() {
	p.expr()
	p.consume(TRParen, "Expect ')' after expression.")
}

func (p *Parser) literal() {
	switch p.prev.Type {
	case TFalse:
		p.emitBytes(byte(OpFalse))
	case TNil:
		p.emitBytes(byte(OpNil))
	case TTrue:
		p.emitBytes(byte(OpTrue))
	default:
		panic(e.ErrUnreachable)
	}
}

func (p *Parser) unary() {
	op := p.prev.Type

	p.parsePrec(PrecUnary) // Compile the operand.

	switch op {
	case TBang:
		p.emitBytes(byte(OpNot))
	case TMinus:
		p.emitBytes(byte(OpNegate))
	default:
		panic(e.ErrUnreachable)
	}
}

func (p *Parser) binary() {
	op := p.prev.Type
	rule := parseRules[op]

	p.parsePrec(rule.Prec + 1) // Compile the RHS, left-associatively.

	switch op {
	case TBangEqual:
		p.emitBytes(byte(OpEqual), byte(OpNot))
	case TEqualEqual:
		p.emitBytes(byte(OpEqual))
	case TGreater:
		p.emitBytes(byte(OpGreater))
	case TGreaterEqual:
		// a >= b desugars to !(a < b): deliberately NaN-permissive, since
		// a NaN operand makes OpLess false and so the result true.
		p.emitBytes(byte(OpLess), byte(OpNot))
	case TLess:
		p.emitBytes(byte(OpLess))
	case TLessEqual:
		// a <= b desugars to !(a > b), same deliberate deviation.
		p.emitBytes(byte(OpGreater), byte(OpNot))
	case TPlus:
		p.emitBytes(byte(OpAdd))
	case TMinus:
		p.emitBytes(byte(OpSubtract))
	case TStar:
		p.emitBytes(byte(OpMultiply))
	case TSlash:
		p.emitBytes(byte(OpDivide))
	default:
		panic(e.ErrUnreachable)
	}
}

func (p *Parser) expr() { p.parsePrec(PrecAssign) }

/* Pratt dispatch */

// ParseFn is a prefix or infix action: a function of the parser state
// alone, since this grammar has no assignment targets to thread through
// (contrast with a fuller Lox compiler's canAssign parameter).
type ParseFn = func(p *Parser)

type ParseRule struct {
	Prefix, Infix ParseFn
	Prec
}

var parseRules []ParseRule

func init() {
	parseRules = []ParseRule{
		TLParen:       {(*Parser).grouping, nil, PrecNone},
		TMinus:        {(*Parser).unary, (*Parser).binary, PrecTerm},
		TPlus:         {nil, (*Parser).binary, PrecTerm},
		TSlash:        {nil, (*Parser).binary, PrecFactor},
		TStar:         {nil, (*Parser).binary, PrecFactor},
		TBang:         {(*Parser).unary, nil, PrecNone},
		TBangEqual:    {nil, (*Parser).binary, PrecEqual},
		TEqualEqual:   {nil, (*Parser).binary, PrecEqual},
		TGreater:      {nil, (*Parser).binary, PrecComp},
		TGreaterEqual: {nil, (*Parser).binary, PrecComp},
		TLess:         {nil, (*Parser).binary, PrecComp},
		TLessEqual:    {nil, (*Parser).binary, PrecComp},
		TNum:          {(*Parser).number, nil, PrecNone},
		TFalse:        {(*Parser).literal, nil, PrecNone},
		TNil:          {(*Parser).literal, nil, PrecNone},
		TTrue:         {(*Parser).literal, nil, PrecNone},
		TEOF:          {},
	}
}

// parsePrec parses one expression whose leading operator binds at least as
// tightly as min, dispatching on the PREVIOUS token's prefix action (or
// reporting "Expect expression." if none), then repeatedly consuming infix
// operators of precedence >= min.
func (p *Parser) parsePrec(min Prec) {
	p.advance()

	prefix := parseRules[p.prev.Type].Prefix
	if prefix == nil {
		p.Error("Expect expression.")
		return
	}
	prefix(p)

	for min <= parseRules[p.curr.Type].Prec {
		p.advance()
		infix := parseRules[p.prev.Type].Infix
		if infix == nil {
			panic(e.ErrUnreachable)
		}
		infix(p)
	}
}

/* Parsing helpers */

func (p *Parser) check(ty TokenType) bool { return p.curr.Type == ty }

func (p *Parser) advance() {
	p.prev = p.curr
	for {
		p.curr = p.ScanToken()
		if !p.check(TErr) {
			break
		}
		// The scanner's Error token carries the message as its lexeme;
		// report it immediately, pointing at the token itself (context
		// comes out empty, per the Error-token case in ErrorAt).
		p.ErrorAtCurr(p.curr.Lexeme)
	}
}

func (p *Parser) match(ty TokenType) (matched bool) {
	if !p.check(ty) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(ty TokenType, errMsg string) *Token {
	if !p.check(ty) {
		p.ErrorAtCurr(errMsg)
		return nil
	}
	p.advance()
	return utils.Box(p.prev)
}

/* Compiling helpers */

func (p *Parser) emitConst(val Value) { p.emitBytes(byte(OpConstant), p.mkConst(val)) }

// mkConst interns val into the chunk's constant pool. Overflowing the
// 256-entry pool is an internal compiler error: an expression with more
// than 256 number literals (each literal takes its own slot, even a
// repeated one) gets no graceful diagnostic, only a process abort.
func (p *Parser) mkConst(val Value) byte {
	if p.chunk.NumConsts() >= MaxConsts {
		logrus.Panicln("too many constants in one chunk")
	}
	return byte(p.chunk.AddConst(val))
}

func (p *Parser) emitBytes(bs ...byte) {
	for _, b := range bs {
		p.chunk.Write(b, p.prev.Line)
	}
}

func (p *Parser) endCompiler() {
	p.emitBytes(byte(OpReturn))
}

/* Precedence */

//go:generate stringer -type=Prec
type Prec int

const (
	PrecNone   Prec = iota
	PrecAssign      // =
	PrecOr          // or
	PrecAnd         // and
	PrecEqual       // == !=
	PrecComp        // < > <= >=
	PrecTerm        // + -
	PrecFactor      // * /
	PrecUnary       // ! -
	PrecCall        // . ()
	PrecPrimary
)

/* Error handling */

// ErrorAt reports a diagnostic anchored at tk, formatted per the wire
// contract in errors.CompilationError. Once panicMode is set, further
// reports are suppressed until the parse ends (the only synchronization
// point this grammar has, since it has no statements to resync on).
func (p *Parser) ErrorAt(tk Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true

	var context string
	switch tk.Type {
	case TEOF:
		context = " at end"
	case TErr:
		context = ""
	default:
		context = fmt.Sprintf(" at '%s'", tk.Lexeme)
	}

	err := &e.CompilationError{Line: tk.Line, Context: context, Message: intern.String(message)}

	if debug.DEBUG {
		logrus.Debugln(p.chunk.Disassemble("partial"))
		logrus.Debugln(err)
	}

	p.errors = multierror.Append(p.errors, err)
}

func (p *Parser) Error(message string)       { p.ErrorAt(p.prev, message) }
func (p *Parser) ErrorAtCurr(message string) { p.ErrorAt(p.curr, message) }
func (p *Parser) HadError() bool             { return p.errors != nil }
