package cpu

import (
	"errors"

	"github.com/dbasin5/e20/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrAluFuncUnknown = errors.New(f("alu function unknown"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeMissing   = errors.New(f("opcode missing"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrImmediateRange  = errors.New(f("immediate out of range"))
	ErrTargetRange     = errors.New(f("jump target out of range"))
	ErrProgramTooLarge = errors.New(f("program exceeds memory"))
)

// ErrFetch indicates a fetch from a program counter outside memory.
type ErrFetch uint16

func (ef ErrFetch) Error() string {
	return f("pc %d outside memory", uint16(ef))
}

func (ef ErrFetch) Is(err error) (ok bool) {
	_, ok = err.(ErrFetch)
	return
}

// ErrAddress indicates a load/store effective address outside memory.
type ErrAddress uint16

func (ea ErrAddress) Error() string {
	return f("address %d outside memory", uint16(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrFault reports a fatal execution error with the program counter and
// the raw instruction word that caused it.
type ErrFault struct {
	Pc   uint16
	Code Code
	Err  error
}

func (err *ErrFault) Error() string {
	return f("pc %d: word 0x%04x: %v", err.Pc, uint16(err.Code), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrLabelMissing reports a label reference that was never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrSyntax reports an assembler error with its source location.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseNumber reports a word that could not be parsed as a number.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseValue reports a word that is neither a number nor a label.
type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or label", string(err))
}

// ErrParseExpression reports a $(...) expression that failed to evaluate.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
