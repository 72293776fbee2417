package simulator

import (
	"errors"

	"github.com/dbasin5/e20/translate"
)

var f = translate.From

var (
	ErrLineFormat   = errors.New(f("cannot parse line"))
	ErrAddrSequence = errors.New(f("memory address out of sequence"))
	ErrImageSize    = errors.New(f("memory image too large"))
)

// ErrLoad indicates the location of a machine-code load error.
type ErrLoad struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLoad) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
