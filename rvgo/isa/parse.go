package isa

import (
	"fmt"

	"github.com/riscv-verif/bbox/rvgo/riscv"
)

// Fields holds the six fixed bit fields of a 32 bit instruction word,
// from most to least significant:
//
//	31..25 funct7 | 24..20 rs2 | 19..15 rs1 | 14..12 funct3 | 11..7 rd | 6..0 opcode
//
// The rs2 field doubles as shift amount (shamt[4:0]) for immediate shifts and as
// sub-opcode for the single operand instructions. For the 6 bit shift amounts of
// RV64 the low bit of funct7 is shamt[5].
type Fields struct {
	Funct7 uint32
	Rs2    uint32
	Rs1    uint32
	Funct3 uint32
	Rd     uint32
	Opcode uint32
}

func ParseOpcode(instr uint32) uint32 {
	return instr & 0x7F
}

func ParseRd(instr uint32) uint32 {
	return (instr >> 7) & 0x1F
}

func ParseFunct3(instr uint32) uint32 {
	return (instr >> 12) & 0x7
}

func ParseRs1(instr uint32) uint32 {
	return (instr >> 15) & 0x1F
}

func ParseRs2(instr uint32) uint32 {
	return (instr >> 20) & 0x1F
}

func ParseFunct7(instr uint32) uint32 {
	return instr >> 25
}

// ParseFields splits an instruction word into its fields. It never fails.
func ParseFields(instr uint32) Fields {
	return Fields{
		Funct7: ParseFunct7(instr),
		Rs2:    ParseRs2(instr),
		Rs1:    ParseRs1(instr),
		Funct3: ParseFunct3(instr),
		Rd:     ParseRd(instr),
		Opcode: ParseOpcode(instr),
	}
}

// Instr reassembles the instruction word.
func (f Fields) Instr() uint32 {
	return (f.Funct7&0x7F)<<25 | (f.Rs2&0x1F)<<20 | (f.Rs1&0x1F)<<15 |
		(f.Funct3&0x7)<<12 | (f.Rd&0x1F)<<7 | f.Opcode&0x7F
}

// ShamtHi is shamt[5], the low bit of funct7.
func (f Fields) ShamtHi() uint32 {
	return f.Funct7 & 1
}

// Shamt is the immediate shift amount: 5 bits on RV32, 6 bits on RV64.
func (f Fields) Shamt(xlen uint64) uint64 {
	if xlen == riscv.XLEN64 {
		return uint64(f.ShamtHi()<<5 | f.Rs2)
	}
	return uint64(f.Rs2)
}

func (f Fields) String() string {
	return fmt.Sprintf("%07b_%05b_%05b_%03b_%05b_%07b", f.Funct7, f.Rs2, f.Rs1, f.Funct3, f.Rd, f.Opcode)
}
