package cpu

import (
	"fmt"
	"log"
)

const (
	NUM_REGS = 8       // Number of registers in the register bank.
	MEM_SIZE = 1 << 15 // Memory size, in words.
	REG_LINK = 7       // Register written with the return address by jal.
)

// Cpu is the simulation context for the E20 processor.
//
// All register and memory values are 16-bit words; arithmetic wraps
// modulo 2^16. Register $0 is fully general purpose, not hardwired to
// zero.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       uint16           // Current program counter.
	Register [NUM_REGS]uint16 // Register bank.
	Memory   []uint16         // Word-addressed memory.

	Halted bool // Set once a self-targeting jump executes.
	Ticks  int  // Executed instruction counter.
}

// NewCpu creates a new CPU with zeroed registers and memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: make([]uint16, MEM_SIZE),
	}

	return
}

// Reset clears the registers, memory, program counter, halt flag, and
// statistics counters.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Memory)
	cpu.Pc = 0
	cpu.Halted = false
	cpu.Ticks = 0
}

// LoadImage copies a memory image into memory starting at address 0.
// The rest of memory is zeroed.
func (cpu *Cpu) LoadImage(image []uint16) (err error) {
	if len(image) > len(cpu.Memory) {
		err = ErrProgramTooLarge
		return
	}

	clear(cpu.Memory)
	copy(cpu.Memory, image)

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("   pc: %5d\n", cpu.Pc)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("   $%d: %5d\n", n, val)
	}
	if cpu.Halted {
		text += "state: halted\n"
	} else {
		text += "state: running\n"
	}

	return
}

// Fetch reads the instruction word at the current program counter.
func (cpu *Cpu) Fetch() (code Code, err error) {
	if int(cpu.Pc) >= len(cpu.Memory) {
		err = ErrFetch(cpu.Pc)
		return
	}

	code = Code(cpu.Memory[cpu.Pc])

	return
}

// Tick executes a single fetch-decode-execute cycle. Once the CPU has
// halted, further ticks are no-ops that report halted.
func (cpu *Cpu) Tick() (halted bool, err error) {
	if cpu.Halted {
		halted = true
		return
	}

	code, err := cpu.Fetch()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("pc %5d: %04x: %v", cpu.Pc, uint16(code), code)
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	halted = cpu.Halted

	return
}

// Execute executes a single decoded instruction, updating registers,
// memory, and the program counter per the instruction's contract.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = &ErrFault{Pc: cpu.Pc, Code: code, Err: err}
		}
	}()

	next := cpu.Pc + 1

	switch code.Family() {
	case OP_ALU:
		fn, dst, srcA, srcB := code.AluDecode()
		a := cpu.Register[srcA]
		b := cpu.Register[srcB]
		switch fn {
		case ALU_FN_ADD:
			cpu.Register[dst] = a + b
		case ALU_FN_SUB:
			cpu.Register[dst] = a - b
		case ALU_FN_AND:
			cpu.Register[dst] = a & b
		case ALU_FN_OR:
			cpu.Register[dst] = a | b
		case ALU_FN_SLT:
			if a < b {
				cpu.Register[dst] = 1
			} else {
				cpu.Register[dst] = 0
			}
		case ALU_FN_JR:
			next = a
		default:
			err = ErrAluFuncUnknown
			return
		}
	case OP_IMM:
		op, dst, src, imm := code.ImmDecode()
		switch op {
		case IMM_OP_SLTI:
			// Unsigned compare against the immediate reduced mod 2^16,
			// even for negative immediates.
			if cpu.Register[src] < uint16(imm) {
				cpu.Register[dst] = 1
			} else {
				cpu.Register[dst] = 0
			}
		case IMM_OP_ADDI:
			cpu.Register[dst] = cpu.Register[src] + uint16(imm)
		}
	case OP_MEM:
		op, reg, base, imm := code.MemDecode()
		addr := cpu.Register[base] + uint16(imm)
		if int(addr) >= len(cpu.Memory) {
			err = ErrAddress(addr)
			return
		}
		switch op {
		case MEM_OP_LW:
			cpu.Register[reg] = cpu.Memory[addr]
		case MEM_OP_SW:
			cpu.Memory[addr] = cpu.Register[reg]
		}
	case OP_BRANCH:
		regA, regB, imm := code.BranchDecode()
		if cpu.Register[regA] == cpu.Register[regB] {
			next += uint16(imm)
		}
	case OP_JUMP:
		op, target := code.JumpDecode()
		if op == JUMP_OP_JAL {
			cpu.Register[REG_LINK] = cpu.Pc + 1
		}
		if target == cpu.Pc {
			// A jump to its own address is the halt convention.
			cpu.Halted = true
			next = cpu.Pc
		} else {
			next = target
		}
	}

	cpu.Pc = next
	cpu.Ticks += 1

	return
}
