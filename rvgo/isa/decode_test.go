package isa

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riscv-verif/bbox/rvgo/riscv"
)

func TestEncodeAndn(t *testing.T) {
	word, err := Encode(OpAndn, Operands{Rd: 3, Rs1: 1, Rs2: 2}, 64)
	require.NoError(t, err)
	require.Equal(t, uint32(0x4020F1B3), word)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, xlen := range []uint64{riscv.XLEN32, riscv.XLEN64} {
		for _, op := range Ops() {
			enc, _ := EncodingOf(op)
			imms := []uint32{0}
			switch enc.Form {
			case FormShamt:
				imms = []uint32{0, 1, 17, 31}
				if xlen == riscv.XLEN64 || op == OpSlliUW {
					imms = append(imms, 32, 45, 63)
				}
			case FormShamtW:
				imms = []uint32{0, 1, 17, 31}
			}
			for _, imm := range imms {
				t.Run(fmt.Sprintf("rv%d/%s/%d", xlen, op, imm), func(t *testing.T) {
					word, err := Encode(op, Operands{Rd: 31, Rs1: 9, Rs2: 17, Imm: imm}, xlen)
					require.NoError(t, err)
					d, ok := Decode(word, xlen)
					require.True(t, ok)
					require.Equal(t, op, d.Op())
					require.Equal(t, uint32(31), d.Fields.Rd)
					require.Equal(t, uint32(9), d.Fields.Rs1)
					// canonical encodings are reserved only where the width does not apply
					require.Equal(t, !enc.Widths.Has(xlen), d.Reserved)
					if !d.Reserved && (enc.Form == FormShamt || enc.Form == FormShamtW) {
						require.Equal(t, uint64(imm), d.Shamt)
					}
				})
			}
		}
	}
}

func TestDecodeReserved(t *testing.T) {
	// bclri shamt 33 is fine on RV64, shamt[5] is reserved on RV32
	word, err := Encode(OpBclri, Operands{Rs1: 1, Imm: 33}, 64)
	require.NoError(t, err)
	d, ok := Decode(word, 64)
	require.True(t, ok)
	require.False(t, d.Reserved)
	require.Equal(t, uint64(33), d.Shamt)
	d, ok = Decode(word, 32)
	require.True(t, ok)
	require.True(t, d.Reserved)
	require.Equal(t, OpBclri, d.Op())

	// rev8 funct7 low bit must agree with the width
	rv32, err := Encode(OpRev8, Operands{Rs1: 1}, 32)
	require.NoError(t, err)
	rv64, err := Encode(OpRev8, Operands{Rs1: 1}, 64)
	require.NoError(t, err)
	require.NotEqual(t, rv32, rv64)
	for _, tc := range []struct {
		word     uint32
		xlen     uint64
		reserved bool
	}{
		{rv32, 32, false},
		{rv32, 64, true},
		{rv64, 32, true},
		{rv64, 64, false},
	} {
		d, ok := Decode(tc.word, tc.xlen)
		require.True(t, ok)
		require.Equal(t, OpRev8, d.Op())
		require.Equal(t, tc.reserved, d.Reserved, "word %08x xlen %d", tc.word, tc.xlen)
	}

	// zext.h under any opcode matches, the opcode picks the width
	zext32, err := Encode(OpZextH, Operands{Rs1: 1}, 32)
	require.NoError(t, err)
	require.Equal(t, uint32(riscv.OpcodeOp), ParseOpcode(zext32))
	zext64, err := Encode(OpZextH, Operands{Rs1: 1}, 64)
	require.NoError(t, err)
	require.Equal(t, uint32(riscv.OpcodeOp32), ParseOpcode(zext64))
	d, ok = Decode(zext32, 64)
	require.True(t, ok)
	require.True(t, d.Reserved)
	other := zext32&^0x7F | 0x0B
	d, ok = Decode(other, 32)
	require.True(t, ok)
	require.Equal(t, OpZextH, d.Op())
	require.True(t, d.Reserved)
}

func TestDecodeSlliUWShamt(t *testing.T) {
	word, err := Encode(OpSlliUW, Operands{Rd: 1, Rs1: 2, Imm: 45}, 32)
	require.NoError(t, err)
	for _, xlen := range []uint64{riscv.XLEN32, riscv.XLEN64} {
		d, ok := Decode(word, xlen)
		require.True(t, ok)
		require.Equal(t, OpSlliUW, d.Op())
		require.Equal(t, uint64(45), d.Shamt, "xlen %d", xlen)
		require.Equal(t, xlen == riscv.XLEN32, d.Reserved)
	}
}

func TestDecodeUnmatched(t *testing.T) {
	for _, word := range []uint32{
		0x00000000,
		0x00000033, // add
		0x40000033, // sub
		0x00001013, // slli
		0xFFFFFFFF,
	} {
		_, ok := Decode(word, 64)
		require.False(t, ok, "word %08x", word)
	}
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(OpAndn, Operands{Rs1: 32}, 64)
	require.ErrorIs(t, err, ErrInvalidRegister)
	_, err = Encode(OpBseti, Operands{Imm: 32}, 32)
	require.ErrorIs(t, err, ErrShamtRange)
	_, err = Encode(OpBseti, Operands{Imm: 64}, 64)
	require.ErrorIs(t, err, ErrShamtRange)
	_, err = Encode(OpRoriw, Operands{Imm: 32}, 64)
	require.ErrorIs(t, err, ErrShamtRange)
	_, err = Encode(OpInvalid, Operands{}, 64)
	require.ErrorIs(t, err, ErrUnknownOp)
	_, err = Encode(OpAndn, Operands{}, 16)
	require.ErrorIs(t, err, ErrInvalidXLEN)
}

func TestCheckInputs(t *testing.T) {
	require.NoError(t, CheckInputs(0xFFFFFFFF, ^uint64(0), ^uint64(0), 64))
	require.NoError(t, CheckInputs(0, 0xFFFFFFFF, 0xFFFFFFFF, 32))
	require.ErrorIs(t, CheckInputs(1<<32, 0, 0, 64), ErrInstrRange)
	require.ErrorIs(t, CheckInputs(0, 1<<32, 0, 32), ErrOperandRange)
	require.ErrorIs(t, CheckInputs(0, 0, 1<<32, 32), ErrOperandRange)
	require.ErrorIs(t, CheckInputs(0, 0, 0, 16), ErrInvalidXLEN)
	require.ErrorIs(t, CheckInputs(0, 0, 0, 0), ErrInvalidXLEN)
}
