package isa

import (
	"errors"
	"fmt"

	"github.com/riscv-verif/bbox/rvgo/riscv"
)

var (
	ErrUnknownOp       = errors.New("unknown instruction")
	ErrInvalidRegister = errors.New("register index out of range")
	ErrShamtRange      = errors.New("shift amount out of range")
	ErrInvalidXLEN     = errors.New("xlen must be 32 or 64")
)

// Operands are the register indices and immediate of an instruction to encode.
// Imm is the shift amount of the immediate forms and is ignored otherwise.
type Operands struct {
	Rd, Rs1, Rs2 uint32
	Imm          uint32
}

// Encode assembles the canonical instruction word of op for the given machine width.
// RV64-only instructions may be encoded for RV32, they decode as reserved there.
func Encode(op Op, args Operands, xlen uint64) (uint32, error) {
	if !riscv.ValidXLEN(xlen) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidXLEN, xlen)
	}
	enc, ok := EncodingOf(op)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
	if args.Rd > 31 || args.Rs1 > 31 || args.Rs2 > 31 {
		return 0, fmt.Errorf("%w: rd=%d rs1=%d rs2=%d", ErrInvalidRegister, args.Rd, args.Rs1, args.Rs2)
	}
	f := Fields{
		Funct7: enc.Funct7,
		Rs1:    args.Rs1,
		Funct3: enc.Funct3,
		Rd:     args.Rd,
		Opcode: enc.Opcode,
	}
	switch enc.Form {
	case FormR:
		f.Rs2 = args.Rs2
	case FormUnary:
		f.Rs2 = enc.Rs2
	case FormShamt:
		limit := uint32(xlen)
		if op == OpSlliUW {
			// slli.uw always takes a 6 bit shift amount
			limit = riscv.XLEN64
		}
		if args.Imm >= limit {
			return 0, fmt.Errorf("%w: %s shamt %d on rv%d", ErrShamtRange, op, args.Imm, xlen)
		}
		f.Funct7 |= args.Imm >> 5
		f.Rs2 = args.Imm & 0x1F
	case FormShamtW:
		if args.Imm >= 32 {
			return 0, fmt.Errorf("%w: %s shamt %d", ErrShamtRange, op, args.Imm)
		}
		f.Rs2 = args.Imm
	}
	switch op {
	case OpRev8:
		if xlen == riscv.XLEN64 {
			f.Funct7 |= 1
		}
	case OpZextH:
		if xlen == riscv.XLEN64 {
			f.Opcode = riscv.OpcodeOp32
		} else {
			f.Opcode = riscv.OpcodeOp
		}
	}
	return f.Instr(), nil
}
