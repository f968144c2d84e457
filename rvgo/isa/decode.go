package isa

import (
	"github.com/riscv-verif/bbox/rvgo/riscv"
)

// Decoded is a matched instruction word.
type Decoded struct {
	Enc    Encoding
	Fields Fields
	// Shamt is the immediate shift amount, only meaningful for the shamt forms.
	Shamt uint64
	// Reserved is set when the encoding matched but is not defined for the
	// machine width. Reserved instructions are valid and evaluate to 0.
	Reserved bool
}

func (d Decoded) Op() Op {
	return d.Enc.Op
}

// Decode matches an instruction word against the table.
// The xlen must be 32 or 64; it only affects Shamt and Reserved.
func Decode(instr uint32, xlen uint64) (Decoded, bool) {
	f := ParseFields(instr)
	enc, ok := Match(f)
	if !ok {
		return Decoded{}, false
	}
	d := Decoded{Enc: enc, Fields: f, Reserved: reserved(enc, f, xlen)}
	switch enc.Form {
	case FormShamt:
		if enc.Op == OpSlliUW {
			// 6 bit shift amount on every width
			d.Shamt = f.Shamt(riscv.XLEN64)
		} else {
			d.Shamt = f.Shamt(xlen)
		}
	case FormShamtW:
		d.Shamt = uint64(f.Rs2)
	}
	return d, true
}

func reserved(enc Encoding, f Fields, xlen uint64) bool {
	if !enc.Widths.Has(xlen) {
		return true
	}
	switch enc.Op {
	case OpRev8:
		// funct7 low bit selects the byte count: 0 for 4 bytes, 1 for 8 bytes
		return (f.ShamtHi() == 1) != (xlen == riscv.XLEN64)
	case OpZextH:
		switch xlen {
		case riscv.XLEN32:
			return f.Opcode != riscv.OpcodeOp
		default:
			return f.Opcode != riscv.OpcodeOp32
		}
	}
	// shamt[5] = 1 is reserved on RV32
	return enc.Form == FormShamt && xlen == riscv.XLEN32 && f.ShamtHi() == 1
}
