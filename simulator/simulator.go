// Package simulator wires the E20 processor to the machine-code loader
// and the final-state report writer.
package simulator

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/dbasin5/e20/cpu"
)

const (
	MEM_QUANTITY = 128 // Memory words shown in the final-state report.
)

// Simulator state. CPU + loader + report writer.
type Simulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	MemQuantity int // Memory words shown in the final-state report.
}

// NewSimulator creates a new simulator with a reset CPU.
func NewSimulator() (sim *Simulator) {
	sim = &Simulator{
		Cpu:         cpu.NewCpu(),
		MemQuantity: MEM_QUANTITY,
	}

	return
}

// One memory word per line, decimal address, exactly 16 binary digits,
// anything after the semicolon ignored.
var machineCodeRe = regexp.MustCompile(`^ram\[(\d+)\] = 16'b([01]{16});.*$`)

// LoadMachineCode parses a machine-code stream into the CPU's memory.
// Addresses must be contiguous starting at 0; the rest of memory is
// zeroed.
func (sim *Simulator) LoadMachineCode(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrLoad{LineNo: lineno, Line: line, Err: err}
		}
	}()

	sim.Cpu.Reset()

	expected := 0
	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		match := machineCodeRe.FindStringSubmatch(line)
		if match == nil {
			err = ErrLineFormat
			return
		}

		var addr int
		addr, err = strconv.Atoi(match[1])
		if err != nil {
			err = ErrLineFormat
			return
		}
		var word uint64
		word, err = strconv.ParseUint(match[2], 2, 16)
		if err != nil {
			err = ErrLineFormat
			return
		}

		if addr != expected {
			err = ErrAddrSequence
			return
		}
		if addr >= len(sim.Cpu.Memory) {
			err = ErrImageSize
			return
		}
		expected += 1

		sim.Cpu.Memory[addr] = uint16(word)
	}

	err = scanner.Err()

	return
}

// LoadProgram loads an assembled program into the CPU's memory.
func (sim *Simulator) LoadProgram(prog *cpu.Program) (err error) {
	sim.Cpu.Reset()

	err = sim.Cpu.LoadImage(prog.Image())

	return
}

// Run executes cycles until the CPU halts or a fatal error occurs.
func (sim *Simulator) Run() (err error) {
	sim.Cpu.Verbose = sim.Verbose

	for {
		var halted bool
		halted, err = sim.Cpu.Tick()
		if err != nil || halted {
			return
		}
	}
}

// WriteState writes the final machine state: the program counter, all
// register values, and the first MemQuantity memory words as four-digit
// hexadecimal, eight per line.
func (sim *Simulator) WriteState(w io.Writer) (err error) {
	_, err = fmt.Fprintf(w, "Final state:\n")
	if err != nil {
		return
	}
	_, err = fmt.Fprintf(w, "\tpc=%5d\n", sim.Cpu.Pc)
	if err != nil {
		return
	}
	for reg, regval := range sim.Cpu.Register {
		_, err = fmt.Fprintf(w, "\t$%d=%5d\n", reg, regval)
		if err != nil {
			return
		}
	}

	quantity := sim.MemQuantity
	if quantity > len(sim.Cpu.Memory) {
		quantity = len(sim.Cpu.Memory)
	}
	for count := 0; count < quantity; count++ {
		_, err = fmt.Fprintf(w, "%04x ", sim.Cpu.Memory[count])
		if err != nil {
			return
		}
		if count%8 == 7 {
			_, err = fmt.Fprintf(w, "\n")
			if err != nil {
				return
			}
		}
	}
	if quantity%8 != 0 {
		_, err = fmt.Fprintf(w, "\n")
	}

	return
}
