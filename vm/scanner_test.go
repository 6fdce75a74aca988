package vm_test

import (
	"testing"

	"github.com/loxbytes/corelox/vm"
	"github.com/stretchr/testify/assert"
)

func scanAll(src string) (toks []vm.Token) {
	s := vm.NewScanner(src)
	for {
		tok := s.ScanToken()
		toks = append(toks, tok)
		if tok.Type == vm.TEOF {
			return
		}
	}
}

func tokTypes(toks []vm.Token) (tys []vm.TokenType) {
	for _, tok := range toks {
		tys = append(tys, tok.Type)
	}
	return
}

func TestScanPunctuation(t *testing.T) {
	toks := scanAll("(-1 + 2) * 3 - -4")
	assert.Equal(t, []vm.TokenType{
		vm.TLParen, vm.TMinus, vm.TNum, vm.TPlus, vm.TNum, vm.TRParen,
		vm.TStar, vm.TNum, vm.TMinus, vm.TMinus, vm.TNum, vm.TEOF,
	}, tokTypes(toks))
}

func TestScanTwoCharOperators(t *testing.T) {
	toks := scanAll("!= == <= >= ! = < >")
	assert.Equal(t, []vm.TokenType{
		vm.TBangEqual, vm.TEqualEqual, vm.TLessEqual, vm.TGreaterEqual,
		vm.TBang, vm.TEqual, vm.TLess, vm.TGreater, vm.TEOF,
	}, tokTypes(toks))
}

func TestScanKeywords(t *testing.T) {
	toks := scanAll("true false nil and or")
	assert.Equal(t, []vm.TokenType{
		vm.TTrue, vm.TFalse, vm.TNil, vm.TAnd, vm.TOr, vm.TEOF,
	}, tokTypes(toks))
}

func TestScanIdentIsNotKeyword(t *testing.T) {
	// "truest" shares a prefix with the keyword "true" but isn't one: the
	// keyword trie must fall through to TIdent on a lexeme-length mismatch.
	toks := scanAll("truest")
	assert.Equal(t, []vm.TokenType{vm.TIdent, vm.TEOF}, tokTypes(toks))
}

func TestScanNumberFormats(t *testing.T) {
	toks := scanAll("3 3.14 0.5")
	for _, tok := range toks[:3] {
		assert.Equal(t, vm.TNum, tok.Type)
	}
	assert.Equal(t, "3.14", toks[1].Lexeme)
}

func TestScanLineTracking(t *testing.T) {
	toks := scanAll("1\n+\n2")
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}

func TestScanSkipsComments(t *testing.T) {
	toks := scanAll("1 // a trailing comment\n+ 2")
	assert.Equal(t, []vm.TokenType{vm.TNum, vm.TPlus, vm.TNum, vm.TEOF}, tokTypes(toks))
}

func TestScanUnterminatedStringIsError(t *testing.T) {
	toks := scanAll(`"unterminated`)
	assert.Equal(t, vm.TErr, toks[0].Type)
}

func TestScanUnexpectedCharIsError(t *testing.T) {
	toks := scanAll("@")
	assert.Equal(t, vm.TErr, toks[0].Type)
}

func TestTokenEq(t *testing.T) {
	a := vm.Token{Type: vm.TNum, Lexeme: "3"}
	b := vm.Token{Type: vm.TNum, Lexeme: "3"}
	c := vm.Token{Type: vm.TNum, Lexeme: "4"}
	assert.True(t, a.Eq(b))
	assert.False(t, a.Eq(c))
}
