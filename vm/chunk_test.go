package vm_test

import (
	"strings"
	"testing"

	"github.com/loxbytes/corelox/vm"
	"github.com/stretchr/testify/assert"
)

func TestChunkConstPoolIsAppendOnly(t *testing.T) {
	c := vm.NewChunk()
	assert.Equal(t, 0, c.AddConst(vm.VNum(1.2)))
	assert.Equal(t, 1, c.AddConst(vm.VNum(3.4)))
	assert.Equal(t, 2, c.NumConsts())
}

// TestHandBuiltChunk assembles `1.2 3.4 + 5.6 / -` directly out of Chunk's
// primitives, bypassing Scanner/Compiler entirely. It's the same smoke
// test the driver used to print at startup, moved here so it runs on
// every build instead of on every invocation.
func TestHandBuiltChunk(t *testing.T) {
	c := vm.NewChunk()

	n1 := c.AddConst(vm.VNum(1.2))
	c.Write(byte(vm.OpConstant), 123)
	c.Write(byte(n1), 123)

	n2 := c.AddConst(vm.VNum(3.4))
	c.Write(byte(vm.OpConstant), 123)
	c.Write(byte(n2), 123)

	c.Write(byte(vm.OpAdd), 123)

	n3 := c.AddConst(vm.VNum(5.6))
	c.Write(byte(vm.OpConstant), 123)
	c.Write(byte(n3), 123)

	c.Write(byte(vm.OpDivide), 123)
	c.Write(byte(vm.OpNegate), 123)
	c.Write(byte(vm.OpReturn), 123)

	dump := c.Disassemble("test")
	assert.True(t, strings.HasPrefix(dump, "== test ==\n"))
	assert.Contains(t, dump, "OpConstant")
	assert.Contains(t, dump, "OpDivide")
	assert.Contains(t, dump, "OpReturn")

	val, err := vm.NewVM().Interpret("-((1.2 + 3.4) / 5.6)")
	assert.Nil(t, err)
	assert.Equal(t, vm.VNum(-(1.2+3.4)/5.6), val)
}

func TestChunkLineRunCollapsesInDisassembly(t *testing.T) {
	c := vm.NewChunk()
	n := c.AddConst(vm.VNum(1))
	c.Write(byte(vm.OpConstant), 1)
	c.Write(byte(n), 1)
	c.Write(byte(vm.OpReturn), 1)

	dump := c.Disassemble("lines")
	lines := strings.Split(strings.TrimRight(dump, "\n"), "\n")
	// Header, then OpConstant with its line number, then OpReturn with the
	// "stayed on the same line" marker instead of repeating it.
	assert.Contains(t, lines[1], "   1 ")
	assert.Contains(t, lines[2], "   | ")
}
