package simulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbasin5/e20/cpu"
)

func TestSimulator(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()

	assert.False(sim.Verbose)
	assert.NotNil(sim.Cpu)
	assert.Equal(MEM_QUANTITY, sim.MemQuantity)
}

func TestLoadMachineCode(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()

	input := strings.Join([]string{
		"ram[0] = 16'b1110000010000101;\t\t// addi $1 $0 5",
		"ram[1] = 16'b1110000100000011;",
		"ram[2] = 16'b0000010100110000; trailing text is ignored",
		"ram[3] = 16'b0100000000000011;",
	}, "\n")

	err := sim.LoadMachineCode(strings.NewReader(input))
	assert.NoError(err)

	assert.Equal(uint16(0xe085), sim.Cpu.Memory[0])
	assert.Equal(uint16(0xe103), sim.Cpu.Memory[1])
	assert.Equal(uint16(0x0530), sim.Cpu.Memory[2])
	assert.Equal(uint16(0x4003), sim.Cpu.Memory[3])

	// Zeros elsewhere.
	for addr := 4; addr < len(sim.Cpu.Memory); addr++ {
		if sim.Cpu.Memory[addr] != 0 {
			t.Fatalf("memory[%d] = %04x, want 0", addr, sim.Cpu.Memory[addr])
		}
	}
}

func TestLoadMachineCodeErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		input []string
		err   error
	}){
		{"bad_line", []string{"this is not machine code"}, ErrLineFormat},
		{"bad_binary", []string{"ram[0] = 16'b0000;"}, ErrLineFormat},
		{"bad_prefix", []string{"rom[0] = 16'b0000000000000000;"}, ErrLineFormat},
		{"out_of_sequence", []string{
			"ram[0] = 16'b0000000000000000;",
			"ram[2] = 16'b0000000000000000;",
		}, ErrAddrSequence},
		{"not_from_zero", []string{"ram[1] = 16'b0000000000000000;"}, ErrAddrSequence},
		{"duplicate", []string{
			"ram[0] = 16'b0000000000000000;",
			"ram[0] = 16'b0000000000000000;",
		}, ErrAddrSequence},
		{"blank_line", []string{"ram[0] = 16'b0000000000000000;", ""}, ErrLineFormat},
	}

	for _, entry := range table {
		sim := NewSimulator()
		err := sim.LoadMachineCode(strings.NewReader(strings.Join(entry.input, "\n")))
		assert.Error(err, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var load *ErrLoad
		assert.ErrorAs(err, &load, entry.name)
	}
}

func TestLoadMachineCodeOversizedBinary(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()
	err := sim.LoadMachineCode(strings.NewReader("ram[0] = 16'b10000000000000000;"))
	assert.ErrorIs(err, ErrLineFormat)
}

func doRun(t *testing.T, program []string) (sim *Simulator) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	sim = NewSimulator()
	err = sim.LoadProgram(prog)
	assert.NoError(err)

	err = sim.Run()
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestRunSum(t *testing.T) {
	assert := assert.New(t)

	sim := doRun(t, []string{
		"movi $1, 5",
		"movi $2, 3",
		"add $3, $1, $2",
		"halt",
	})

	assert.Equal(uint16(5), sim.Cpu.Register[1])
	assert.Equal(uint16(3), sim.Cpu.Register[2])
	assert.Equal(uint16(8), sim.Cpu.Register[3])
	assert.Equal(uint16(3), sim.Cpu.Pc)
}

func TestRunStoreLoad(t *testing.T) {
	assert := assert.New(t)

	sim := doRun(t, []string{
		"movi $1, 42",
		"sw $1, 10($0)",
		"lw $2, 10($0)",
		"halt",
	})

	assert.Equal(uint16(42), sim.Cpu.Memory[10])
	assert.Equal(uint16(42), sim.Cpu.Register[2])
}

func TestRunLoop(t *testing.T) {
	assert := assert.New(t)

	sim := doRun(t, []string{
		"movi $1, 0",
		"movi $2, 3",
		"loop: addi $1, $1, 1",
		"jeq $1, $2, end",
		"j loop",
		"end: halt",
	})

	assert.Equal(uint16(3), sim.Cpu.Register[1])
	assert.Equal(uint16(5), sim.Cpu.Pc)
}

func TestRunJumpAndLink(t *testing.T) {
	assert := assert.New(t)

	sim := doRun(t, []string{
		"jal func",
		"halt",
		"func: movi $1, 7",
		"jr $7",
	})

	assert.Equal(uint16(7), sim.Cpu.Register[1])
	assert.Equal(uint16(1), sim.Cpu.Register[7])
	assert.Equal(uint16(1), sim.Cpu.Pc)
}

func TestRunFault(t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"movi $1, 63",
		"add $1, $1, $1", // $1 = 126
		"lw $2, -63($1)", // address 63, fine
		".fill 0x000f",   // unknown alu function
	}, "\n")))
	assert.NoError(err)

	sim := NewSimulator()
	err = sim.LoadProgram(prog)
	assert.NoError(err)

	err = sim.Run()
	assert.Error(err)
	assert.ErrorIs(err, cpu.ErrAluFuncUnknown)
}

func TestWriteState(t *testing.T) {
	assert := assert.New(t)

	sim := doRun(t, []string{
		"movi $1, 5",
		"movi $2, 3",
		"add $3, $1, $2",
		"halt",
	})
	sim.MemQuantity = 8

	out := &strings.Builder{}
	err := sim.WriteState(out)
	assert.NoError(err)

	expected := strings.Join([]string{
		"Final state:",
		"\tpc=    3",
		"\t$0=    0",
		"\t$1=    5",
		"\t$2=    3",
		"\t$3=    8",
		"\t$4=    0",
		"\t$5=    0",
		"\t$6=    0",
		"\t$7=    0",
		"e085 e103 0530 4003 0000 0000 0000 0000 ",
		"",
	}, "\n")
	assert.Equal(expected, out.String())
}

func TestWriteStatePartialLine(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulator()
	sim.MemQuantity = 4

	out := &strings.Builder{}
	err := sim.WriteState(out)
	assert.NoError(err)

	assert.True(strings.HasSuffix(out.String(), "0000 0000 0000 0000 \n"))
}

func TestMachineCodeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"movi $1, 5",
		"sw $1, 20($0)",
		"jeq $1, $0, 0",
		"halt",
		".fill 0xbeef",
	}, "\n")))
	assert.NoError(err)

	out := &strings.Builder{}
	err = prog.WriteMachineCode(out)
	assert.NoError(err)

	sim := NewSimulator()
	err = sim.LoadMachineCode(strings.NewReader(out.String()))
	assert.NoError(err)

	for addr, code := range prog.Words() {
		assert.Equal(uint16(code), sim.Cpu.Memory[addr])
	}
}
