package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location
// and generated instruction word.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      int      // Memory address of the word.
	Words     []string // Source words after substitution.
	Code      Code     // Encoded instruction word.
	LinkLabel string   // Label resolved at the end of parsing.
	Fill      bool     // Set for .fill words, linked as full 16-bit values.
}

// Program is an assembled sequence of instruction words, loaded into
// memory starting at address 0.
type Program struct {
	Opcodes []Opcode
}

// Debug returns the opcode at the given memory address, or nil.
func (prog *Program) Debug(addr uint16) (op *Opcode) {
	for n := range prog.Opcodes {
		if uint16(prog.Opcodes[n].Addr) == addr {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Words iterates over the (address, word) pairs of the program.
func (prog *Program) Words() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(uint16(op.Addr), op.Code) {
				return
			}
		}
	}
}

// Image returns the program as a contiguous memory image.
func (prog *Program) Image() (image []uint16) {
	for _, code := range prog.Words() {
		image = append(image, uint16(code))
	}

	return
}

// WriteMachineCode writes the program in the machine-code file format,
// one `ram[N] = 16'b...;` line per word, with the source text as a
// trailing comment.
func (prog *Program) WriteMachineCode(w io.Writer) (err error) {
	for _, op := range prog.Opcodes {
		_, err = fmt.Fprintf(w, "ram[%d] = 16'b%016b;\t\t// %s\n",
			op.Addr, uint16(op.Code), strings.Join(op.Words, " "))
		if err != nil {
			return
		}
	}

	return
}
