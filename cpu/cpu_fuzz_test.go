package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	f.Add(uint16(0x0530), uint16(5), uint16(3))
	f.Add(uint16(0xe085), uint16(0xffff), uint16(1))
	f.Add(uint16(0x28ff), uint16(0xfffe), uint16(0))
	f.Add(uint16(0x917e), uint16(100), uint16(100))
	f.Add(uint16(0xa18a), uint16(0xbeef), uint16(0))
	f.Add(uint16(0xc57d), uint16(7), uint16(7))
	f.Add(uint16(0x4003), uint16(0), uint16(0))
	f.Add(uint16(0x6005), uint16(0), uint16(0))
	f.Add(uint16(0x000f), uint16(0), uint16(0))

	f.Fuzz(func(t *testing.T, word uint16, a uint16, b uint16) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.Pc = 4
		for n := range cpu.Register {
			cpu.Register[n] = a + uint16(n)*b
		}
		cpu.Memory[100] = 0xcafe

		code := Code(word)
		pre := *cpu
		preRegister := cpu.Register

		err := cpu.Execute(code)

		here := fmt.Sprintf("0x%04x (%v) a:%v b:%v\ncpu:%v", word, code, a, b, cpu.String())

		if err != nil {
			// Only unknown ALU functions and out-of-range effective
			// addresses may fault, and a fault leaves the state as-is.
			assert.True(errors.Is(err, ErrAluFuncUnknown) || errors.Is(err, ErrAddress(0)), here)
			var fault *ErrFault
			assert.True(errors.As(err, &fault), here)
			assert.Equal(pre.Pc, cpu.Pc, here)
			assert.Equal(preRegister, cpu.Register, here)
			assert.Equal(pre.Ticks, cpu.Ticks, here)
			return
		}

		assert.Equal(pre.Ticks+1, cpu.Ticks, here)

		switch code.Family() {
		case OP_ALU:
			fn, dst, srcA, _ := code.AluDecode()
			if fn == ALU_FN_JR {
				assert.Equal(preRegister[srcA], cpu.Pc, here)
				assert.Equal(preRegister, cpu.Register, here)
			} else {
				assert.Equal(pre.Pc+1, cpu.Pc, here)
				if fn == ALU_FN_SLT {
					assert.Contains([]uint16{0, 1}, cpu.Register[dst], here)
				}
			}
		case OP_IMM:
			op, dst, src, imm := code.ImmDecode()
			assert.Equal(pre.Pc+1, cpu.Pc, here)
			if op == IMM_OP_ADDI {
				assert.Equal(preRegister[src]+uint16(imm), cpu.Register[dst], here)
			} else {
				assert.Contains([]uint16{0, 1}, cpu.Register[dst], here)
			}
		case OP_MEM:
			op, reg, base, imm := code.MemDecode()
			addr := preRegister[base] + uint16(imm)
			assert.Less(int(addr), len(cpu.Memory), here)
			assert.Equal(pre.Pc+1, cpu.Pc, here)
			if op == MEM_OP_SW {
				assert.Equal(preRegister[reg], cpu.Memory[addr], here)
				assert.Equal(preRegister, cpu.Register, here)
			}
		case OP_BRANCH:
			regA, regB, imm := code.BranchDecode()
			next := pre.Pc + 1
			if preRegister[regA] == preRegister[regB] {
				next += uint16(imm)
			}
			assert.Equal(next, cpu.Pc, here)
			assert.Equal(preRegister, cpu.Register, here)
		case OP_JUMP:
			op, target := code.JumpDecode()
			if op == JUMP_OP_JAL {
				assert.Equal(pre.Pc+1, cpu.Register[REG_LINK], here)
			}
			assert.Equal(target, cpu.Pc, here)
			assert.Equal(target == pre.Pc, cpu.Halted, here)
		}
	})
}
