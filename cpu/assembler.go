package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":   "0",
	"MEM_SIZE": fmt.Sprintf("%#v", MEM_SIZE),
	"NUM_REGS": fmt.Sprintf("%#v", NUM_REGS),
}

// Assembler is a single pass assembler for the E20 instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to memory addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// aluMap maps three-register ALU opcode names.
var aluMap = map[string]CodeAluFunc{
	"add": ALU_FN_ADD,
	"sub": ALU_FN_SUB,
	"and": ALU_FN_AND,
	"or":  ALU_FN_OR,
	"slt": ALU_FN_SLT,
}

var labelRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
var memRe = regexp.MustCompile(`^(.*)\((\$[0-9]+)\)$`)

// valueOf returns the numeric value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = st_int64
	return
}

// getRegister parses a $N register reference.
func (asm *Assembler) getRegister(word string) (reg int, err error) {
	if !strings.HasPrefix(word, "$") {
		err = ErrRegisterInvalid
		return
	}
	reg, err = strconv.Atoi(word[1:])
	if err != nil || reg < 0 || reg >= NUM_REGS {
		reg = 0
		err = ErrRegisterInvalid
		return
	}

	return
}

// valueOrLabel parses a word as either a numeric value or a label
// reference to be linked later.
func (asm *Assembler) valueOrLabel(word string) (value int64, label string, err error) {
	value, err = asm.valueOf(word)
	if err == nil {
		return
	}

	if labelRe.MatchString(word) {
		label = word
		err = nil
		return
	}

	err = ErrParseValue(word)

	return
}

// imm7 range-checks a signed 7-bit immediate field value.
func (asm *Assembler) imm7(value int64) (imm int16, err error) {
	if value < -64 || value > 63 {
		err = ErrImmediateRange
		return
	}
	imm = int16(value)

	return
}

// parseLine expands a single line into opcode words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddr gets the memory address of the next generated word.
func (asm *Assembler) currentAddr() int {
	return len(asm.Opcode)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, "#")
		line = strings.TrimSpace(strings.ReplaceAll(text_comment[0], ",", " "))

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if len(asm.Opcode) > MEM_SIZE {
		err = ErrProgramTooLarge
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}

		switch {
		case op.Fill:
			op.Code = Code(uint16(addr))
		case op.Code.Family() == OP_JUMP:
			if addr >= 1<<13 {
				err = ErrTargetRange
				return
			}
			op.Code = (op.Code &^ 0x1fff) | Code(uint16(addr)&0x1fff)
		case op.Code.Family() == OP_BRANCH:
			var rel int16
			rel, err = asm.imm7(int64(addr - (op.Addr + 1)))
			if err != nil {
				return
			}
			op.Code = (op.Code &^ 0x7f) | Code(uint16(rel)&0x7f)
		default:
			// Absolute address in a 7-bit immediate field.
			var imm int16
			imm, err = asm.imm7(int64(addr))
			if err != nil {
				return
			}
			op.Code = (op.Code &^ 0x7f) | Code(uint16(imm)&0x7f)
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	var code Code
	var label string
	var fill bool

	switch words[0] {
	case "add", "sub", "and", "or", "slt":
		if len(words) < 4 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 4 {
			err = ErrOpcodeExtraArgs
			return
		}
		fn := aluMap[words[0]]
		var dst, srcA, srcB int
		if dst, err = asm.getRegister(words[1]); err != nil {
			return
		}
		if srcA, err = asm.getRegister(words[2]); err != nil {
			return
		}
		if srcB, err = asm.getRegister(words[3]); err != nil {
			return
		}
		code = MakeCodeAlu(fn, dst, srcA, srcB)
	case "jr":
		if len(words) < 2 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var srcA int
		if srcA, err = asm.getRegister(words[1]); err != nil {
			return
		}
		code = MakeCodeAlu(ALU_FN_JR, 0, srcA, 0)
	case "slti", "addi", "movi":
		op := IMM_OP_ADDI
		if words[0] == "slti" {
			op = IMM_OP_SLTI
		}
		// movi $d VALUE is addi $d $0 VALUE
		if words[0] == "movi" {
			if len(words) < 3 {
				err = ErrOpcodeMissing
				return
			}
			words = append([]string{"addi", words[1], "$0"}, words[2:]...)
		}
		if len(words) < 4 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 4 {
			err = ErrOpcodeExtraArgs
			return
		}
		var dst, src int
		if dst, err = asm.getRegister(words[1]); err != nil {
			return
		}
		if src, err = asm.getRegister(words[2]); err != nil {
			return
		}
		var value int64
		var imm int16
		if value, label, err = asm.valueOrLabel(words[3]); err != nil {
			return
		}
		if len(label) == 0 {
			if imm, err = asm.imm7(value); err != nil {
				return
			}
		}
		code = MakeCodeImm(op, dst, src, imm)
	case "lw", "sw":
		op := MEM_OP_LW
		if words[0] == "sw" {
			op = MEM_OP_SW
		}
		if len(words) < 3 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}
		var reg, base int
		if reg, err = asm.getRegister(words[1]); err != nil {
			return
		}
		m := memRe.FindStringSubmatch(words[2])
		if m == nil {
			err = ErrParseValue(words[2])
			return
		}
		if base, err = asm.getRegister(m[2]); err != nil {
			return
		}
		var value int64
		var imm int16
		if len(m[1]) != 0 {
			if value, label, err = asm.valueOrLabel(m[1]); err != nil {
				return
			}
			if len(label) == 0 {
				if imm, err = asm.imm7(value); err != nil {
					return
				}
			}
		}
		code = MakeCodeMem(op, reg, base, imm)
	case "jeq":
		if len(words) < 4 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 4 {
			err = ErrOpcodeExtraArgs
			return
		}
		var regA, regB int
		if regA, err = asm.getRegister(words[1]); err != nil {
			return
		}
		if regB, err = asm.getRegister(words[2]); err != nil {
			return
		}
		var value int64
		var imm int16
		if value, label, err = asm.valueOrLabel(words[3]); err != nil {
			return
		}
		if len(label) == 0 {
			if imm, err = asm.imm7(value); err != nil {
				return
			}
		}
		code = MakeCodeBranch(regA, regB, imm)
	case "j", "jal":
		op := JUMP_OP_J
		if words[0] == "jal" {
			op = JUMP_OP_JAL
		}
		if len(words) < 2 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var value int64
		if value, label, err = asm.valueOrLabel(words[1]); err != nil {
			return
		}
		if len(label) == 0 {
			if value < 0 || value >= 1<<13 {
				err = ErrTargetRange
				return
			}
		}
		code = MakeCodeJump(op, uint16(value))
	case "halt":
		if len(words) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		code = MakeCodeHalt(uint16(asm.currentAddr()))
	case "nop":
		if len(words) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		code = MakeCodeAlu(ALU_FN_ADD, 0, 0, 0)
	case ".fill":
		if len(words) < 2 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var value int64
		if value, label, err = asm.valueOrLabel(words[1]); err != nil {
			return
		}
		if len(label) == 0 {
			if value < -(1<<15) || value >= 1<<16 {
				err = ErrImmediateRange
				return
			}
		}
		code = Code(uint16(value))
		fill = true
	default:
		err = ErrOpcodeInvalid
		return
	}

	opcode := Opcode{LineNo: lineno, Addr: asm.currentAddr(), Words: words, Code: code, LinkLabel: label, Fill: fill}
	asm.Opcode = append(asm.Opcode, opcode)

	return
}
