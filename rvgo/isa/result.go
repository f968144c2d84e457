package isa

import (
	"errors"
	"fmt"

	"github.com/riscv-verif/bbox/rvgo/riscv"
)

var (
	ErrInstrRange   = errors.New("instruction word exceeds 32 bits")
	ErrOperandRange = errors.New("operand exceeds xlen bits")
)

// Result is the outcome of evaluating one instruction.
// Value is already masked to XLEN bits.
type Result struct {
	Op       Op
	Valid    bool
	Reserved bool
	Value    uint64
}

// CheckInputs rejects inputs outside the documented ranges.
func CheckInputs(instr, rs1, rs2, xlen uint64) error {
	if !riscv.ValidXLEN(xlen) {
		return fmt.Errorf("%w: %d", ErrInvalidXLEN, xlen)
	}
	if instr > riscv.Mask32 {
		return fmt.Errorf("%w: %#x", ErrInstrRange, instr)
	}
	mask := riscv.MaskFor(xlen)
	if rs1&^mask != 0 {
		return fmt.Errorf("%w: rs1 %#x on rv%d", ErrOperandRange, rs1, xlen)
	}
	if rs2&^mask != 0 {
		return fmt.Errorf("%w: rs2 %#x on rv%d", ErrOperandRange, rs2, xlen)
	}
	return nil
}
