package cpu

import (
	"fmt"
)

// CodeFamily is the instruction family, selected by the leading bits of
// the instruction word.
type CodeFamily int

//go:generate go tool stringer -linecomment -type=CodeFamily
const (
	OP_ALU    = CodeFamily(0) // alu
	OP_IMM    = CodeFamily(1) // imm
	OP_MEM    = CodeFamily(2) // mem
	OP_BRANCH = CodeFamily(3) // branch
	OP_JUMP   = CodeFamily(4) // jump
)

// CodeAluFunc is a three-register ALU function code, held in the low
// four bits of the instruction word.
type CodeAluFunc int

//go:generate go tool stringer -linecomment -type=CodeAluFunc
const (
	ALU_FN_ADD = CodeAluFunc(0b0000) // add
	ALU_FN_SUB = CodeAluFunc(0b0001) // sub
	ALU_FN_AND = CodeAluFunc(0b0010) // and
	ALU_FN_OR  = CodeAluFunc(0b0011) // or
	ALU_FN_SLT = CodeAluFunc(0b0100) // slt
	ALU_FN_JR  = CodeAluFunc(0b1000) // jr
)

// CodeImmOp is a two-register immediate operation, selected by the
// leading three bits. Both patterns decode to the OP_IMM family.
type CodeImmOp int

//go:generate go tool stringer -linecomment -type=CodeImmOp
const (
	IMM_OP_SLTI = CodeImmOp(0b001) // slti
	IMM_OP_ADDI = CodeImmOp(0b111) // addi
)

// CodeMemOp is a memory operation, selected by the leading three bits.
type CodeMemOp int

//go:generate go tool stringer -linecomment -type=CodeMemOp
const (
	MEM_OP_LW = CodeMemOp(0b100) // lw
	MEM_OP_SW = CodeMemOp(0b101) // sw
)

// CodeJumpOp is an absolute jump operation, selected by the leading
// three bits.
type CodeJumpOp int

//go:generate go tool stringer -linecomment -type=CodeJumpOp
const (
	JUMP_OP_J   = CodeJumpOp(0b010) // j
	JUMP_OP_JAL = CodeJumpOp(0b011) // jal
)

// Code represents a single 16-bit instruction word.
type Code uint16

// Family returns the instruction family from the leading bits of the
// instruction word. Every 3-bit prefix maps to a family, so the
// classification is total.
func (code Code) Family() CodeFamily {
	switch uint16(code) >> 13 {
	case 0b000:
		return OP_ALU
	case 0b001, 0b111:
		return OP_IMM
	case 0b100, 0b101:
		return OP_MEM
	case 0b110:
		return OP_BRANCH
	default: // 0b010, 0b011
		return OP_JUMP
	}
}

// signExtend7 interprets the low 7 bits of field as a two's complement
// value in the range -64..63.
func signExtend7(field uint16) int16 {
	value := int16(field & 0x7f)
	if field&0x40 != 0 {
		value -= 128
	}
	return value
}

// AluDecode decodes and returns the ALU function code and the
// destination and source register indices.
func (code Code) AluDecode() (fn CodeAluFunc, dst, srcA, srcB int) {
	word := uint16(code)
	fn = CodeAluFunc(word & 0xf)
	dst = int((word >> 4) & 0x7)
	srcB = int((word >> 7) & 0x7)
	srcA = int((word >> 10) & 0x7)
	return
}

// ImmDecode decodes and returns the immediate operation, the register
// indices, and the sign-extended 7-bit immediate.
func (code Code) ImmDecode() (op CodeImmOp, dst, src int, imm int16) {
	word := uint16(code)
	op = CodeImmOp(word >> 13)
	src = int((word >> 10) & 0x7)
	dst = int((word >> 7) & 0x7)
	imm = signExtend7(word & 0x7f)
	return
}

// MemDecode decodes and returns the memory operation, the data register
// (destination for lw, source for sw), the base-address register, and
// the sign-extended 7-bit offset.
func (code Code) MemDecode() (op CodeMemOp, reg, base int, imm int16) {
	word := uint16(code)
	op = CodeMemOp(word >> 13)
	base = int((word >> 10) & 0x7)
	reg = int((word >> 7) & 0x7)
	imm = signExtend7(word & 0x7f)
	return
}

// BranchDecode decodes and returns the two compared register indices
// and the sign-extended 7-bit relative offset.
func (code Code) BranchDecode() (regA, regB int, imm int16) {
	word := uint16(code)
	regA = int((word >> 10) & 0x7)
	regB = int((word >> 7) & 0x7)
	imm = signExtend7(word & 0x7f)
	return
}

// JumpDecode decodes and returns the jump operation and the 13-bit
// absolute target address.
func (code Code) JumpDecode() (op CodeJumpOp, target uint16) {
	word := uint16(code)
	op = CodeJumpOp(word >> 13)
	target = word & 0x1fff
	return
}

// MakeCodeAlu creates a three-register ALU instruction.
func MakeCodeAlu(fn CodeAluFunc, dst, srcA, srcB int) Code {
	return Code((uint16(srcA&0x7) << 10) | (uint16(srcB&0x7) << 7) | (uint16(dst&0x7) << 4) | (uint16(fn) & 0xf))
}

// MakeCodeImm creates a two-register immediate instruction.
func MakeCodeImm(op CodeImmOp, dst, src int, imm int16) Code {
	return Code((uint16(op) << 13) | (uint16(src&0x7) << 10) | (uint16(dst&0x7) << 7) | (uint16(imm) & 0x7f))
}

// MakeCodeMem creates a load or store instruction.
func MakeCodeMem(op CodeMemOp, reg, base int, imm int16) Code {
	return Code((uint16(op) << 13) | (uint16(base&0x7) << 10) | (uint16(reg&0x7) << 7) | (uint16(imm) & 0x7f))
}

// MakeCodeBranch creates an equality branch instruction.
func MakeCodeBranch(regA, regB int, imm int16) Code {
	return Code((0b110 << 13) | (uint16(regA&0x7) << 10) | (uint16(regB&0x7) << 7) | (uint16(imm) & 0x7f))
}

// MakeCodeJump creates an absolute jump instruction.
func MakeCodeJump(op CodeJumpOp, target uint16) Code {
	return Code((uint16(op) << 13) | (target & 0x1fff))
}

// MakeCodeHalt creates a jump instruction that targets its own address,
// the halt convention.
func MakeCodeHalt(addr uint16) Code {
	return MakeCodeJump(JUMP_OP_J, addr)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	switch code.Family() {
	case OP_ALU:
		fn, dst, srcA, srcB := code.AluDecode()
		switch fn {
		case ALU_FN_JR:
			out = fmt.Sprintf("%v $%d", fn, srcA)
		case ALU_FN_ADD, ALU_FN_SUB, ALU_FN_AND, ALU_FN_OR, ALU_FN_SLT:
			out = fmt.Sprintf("%v $%d, $%d, $%d", fn, dst, srcA, srcB)
		default:
			out = fmt.Sprintf(".fill 0x%04x", uint16(code))
		}
	case OP_IMM:
		op, dst, src, imm := code.ImmDecode()
		out = fmt.Sprintf("%v $%d, $%d, %d", op, dst, src, imm)
	case OP_MEM:
		op, reg, base, imm := code.MemDecode()
		out = fmt.Sprintf("%v $%d, %d($%d)", op, reg, imm, base)
	case OP_BRANCH:
		regA, regB, imm := code.BranchDecode()
		out = fmt.Sprintf("jeq $%d, $%d, %d", regA, regB, imm)
	case OP_JUMP:
		op, target := code.JumpDecode()
		out = fmt.Sprintf("%v %d", op, target)
	}

	return
}
