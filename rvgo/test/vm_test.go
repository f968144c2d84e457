package test

import (
	"fmt"
	"math/bits"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riscv-verif/bbox/rvgo/fast"
	"github.com/riscv-verif/bbox/rvgo/isa"
	"github.com/riscv-verif/bbox/rvgo/riscv"
	"github.com/riscv-verif/bbox/rvgo/slow"
)

var widths = []uint64{riscv.XLEN32, riscv.XLEN64}

func mustEncode(t *testing.T, op isa.Op, imm uint32, xlen uint64) uint64 {
	word, err := isa.Encode(op, isa.Operands{Rd: 5, Rs1: 6, Rs2: 7, Imm: imm}, xlen)
	require.NoError(t, err)
	return uint64(word)
}

func run(t *testing.T, eval evalFn, op isa.Op, imm uint32, rs1, rs2, xlen uint64) uint64 {
	res, err := eval(mustEncode(t, op, imm, xlen), rs1, rs2, xlen)
	require.NoError(t, err)
	require.True(t, res.Valid)
	return res.Value
}

func forEachModel(t *testing.T, fn func(t *testing.T, eval evalFn, xlen uint64, rng *rand.Rand)) {
	for _, m := range models {
		for _, xlen := range widths {
			t.Run(fmt.Sprintf("%s/rv%d", m.name, xlen), func(t *testing.T) {
				fn(t, m.eval, xlen, rand.New(rand.NewSource(int64(xlen))))
			})
		}
	}
}

func TestUnmatchedIsInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, xlen := range widths {
		checked := 0
		for checked < 2000 {
			instr := rng.Uint32()
			if _, ok := isa.Match(isa.ParseFields(instr)); ok {
				continue
			}
			checked++
			valid, result, err := slow.Evaluate(uint64(instr), rng.Uint64()&riscv.MaskFor(xlen), 0, xlen)
			require.NoError(t, err)
			require.False(t, valid)
			require.Equal(t, strings.Repeat("0", int(xlen)), result)
		}
	}
}

func TestResultLength(t *testing.T) {
	for _, xlen := range widths {
		for _, op := range isa.Ops() {
			valid, result, err := slow.Evaluate(mustEncode(t, op, 1, xlen), riscv.MaskFor(xlen), riscv.MaskFor(xlen), xlen)
			require.NoError(t, err)
			require.True(t, valid)
			require.Len(t, result, int(xlen), "op %s", op)
		}
	}
}

func TestRotateInverse(t *testing.T) {
	forEachModel(t, func(t *testing.T, eval evalFn, xlen uint64, rng *rand.Rand) {
		for i := 0; i < 100; i++ {
			x := rng.Uint64() & riscv.MaskFor(xlen)
			for s := uint64(0); s < xlen; s++ {
				rotated := run(t, eval, isa.OpRol, 0, x, s, xlen)
				require.Equal(t, x, run(t, eval, isa.OpRor, 0, rotated, s, xlen))
				if i == 0 {
					// the immediate form agrees with the register form
					require.Equal(t, run(t, eval, isa.OpRor, 0, x, s, xlen), run(t, eval, isa.OpRori, uint32(s), x, 0, xlen))
				}
			}
		}
	})
}

func TestCountBits(t *testing.T) {
	forEachModel(t, func(t *testing.T, eval evalFn, xlen uint64, rng *rand.Rand) {
		require.Equal(t, xlen, run(t, eval, isa.OpClz, 0, 0, 0, xlen))
		require.Equal(t, xlen, run(t, eval, isa.OpCtz, 0, 0, 0, xlen))
		require.Zero(t, run(t, eval, isa.OpCpop, 0, 0, 0, xlen))
		for i := 0; i < 500; i++ {
			x := rng.Uint64() & riscv.MaskFor(xlen)
			x >>= rng.Intn(int(xlen)) // vary the leading zero count
			rendered := fast.BinDigits(x, xlen)
			require.Equal(t, uint64(strings.Count(rendered, "1")), run(t, eval, isa.OpCpop, 0, x, 0, xlen))
			require.Equal(t, uint64(len(rendered)-len(strings.TrimLeft(rendered, "0"))), run(t, eval, isa.OpClz, 0, x, 0, xlen))
			require.Equal(t, uint64(len(rendered)-len(strings.TrimRight(rendered, "0"))), run(t, eval, isa.OpCtz, 0, x, 0, xlen))
		}
	})
}

func TestXnorSelf(t *testing.T) {
	forEachModel(t, func(t *testing.T, eval evalFn, xlen uint64, rng *rand.Rand) {
		for i := 0; i < 200; i++ {
			x := rng.Uint64() & riscv.MaskFor(xlen)
			require.Equal(t, riscv.MaskFor(xlen), run(t, eval, isa.OpXnor, 0, x, x, xlen))
		}
	})
}

func TestRev8SelfInverse(t *testing.T) {
	forEachModel(t, func(t *testing.T, eval evalFn, xlen uint64, rng *rand.Rand) {
		for i := 0; i < 200; i++ {
			x := rng.Uint64() & riscv.MaskFor(xlen)
			once := run(t, eval, isa.OpRev8, 0, x, 0, xlen)
			if xlen == riscv.XLEN64 {
				require.Equal(t, bits.ReverseBytes64(x), once)
			} else {
				require.Equal(t, uint64(bits.ReverseBytes32(uint32(x))), once)
			}
			require.Equal(t, x, run(t, eval, isa.OpRev8, 0, once, 0, xlen))
		}
	})
}

func TestOrcBBytes(t *testing.T) {
	forEachModel(t, func(t *testing.T, eval evalFn, xlen uint64, rng *rand.Rand) {
		for i := 0; i < 200; i++ {
			x := rng.Uint64() & riscv.MaskFor(xlen)
			// clear some bytes so both outcomes occur
			x &^= uint64(0xFF) << (8 * uint64(rng.Intn(int(xlen/8))))
			got := run(t, eval, isa.OpOrcB, 0, x, 0, xlen)
			for b := uint64(0); b < xlen/8; b++ {
				src := (x >> (8 * b)) & 0xFF
				dst := (got >> (8 * b)) & 0xFF
				if src == 0 {
					require.Equal(t, uint64(0), dst)
				} else {
					require.Equal(t, uint64(0xFF), dst)
				}
			}
		}
	})
}

func TestMinMaxReturnOperand(t *testing.T) {
	forEachModel(t, func(t *testing.T, eval evalFn, xlen uint64, rng *rand.Rand) {
		for i := 0; i < 200; i++ {
			a, b := rng.Uint64()&riscv.MaskFor(xlen), rng.Uint64()&riscv.MaskFor(xlen)
			sa, sb := signed(a, xlen), signed(b, xlen)
			wantMax, wantMin := b, b
			if sa > sb {
				wantMax = a
			}
			if sa < sb {
				wantMin = a
			}
			require.Equal(t, wantMax, run(t, eval, isa.OpMax, 0, a, b, xlen))
			require.Equal(t, wantMin, run(t, eval, isa.OpMin, 0, a, b, xlen))
			require.Equal(t, max(a, b), run(t, eval, isa.OpMaxu, 0, a, b, xlen))
			require.Equal(t, min(a, b), run(t, eval, isa.OpMinu, 0, a, b, xlen))
		}
	})
}

func signed(v, xlen uint64) int64 {
	shift := 64 - xlen
	return int64(v<<shift) >> shift
}

// Hand-checked scenarios, in the string form the harness compares.
func TestScenarios(t *testing.T) {
	t.Run("andn rv64", func(t *testing.T) {
		// funct7 0100000, funct3 111, opcode 0110011
		instr := uint64(0b0100000_00010_00001_111_00011_0110011)
		valid, result, err := slow.Evaluate(instr, 0xFFFFFFFF_FFFFFFFF, 0xF, 64)
		require.NoError(t, err)
		require.True(t, valid)
		require.Equal(t, strings.Repeat("1", 60)+"0000", result)
	})
	t.Run("clz zero rv32", func(t *testing.T) {
		valid, result, err := slow.Evaluate(mustEncode(t, isa.OpClz, 0, 32), 0, 0, 32)
		require.NoError(t, err)
		require.True(t, valid)
		require.Equal(t, "00000000000000000000000000100000", result)
	})
	t.Run("add.uw rv32", func(t *testing.T) {
		valid, result, err := slow.Evaluate(mustEncode(t, isa.OpAddUW, 0, 32), 0x1234, 0x5678, 32)
		require.NoError(t, err)
		require.True(t, valid)
		require.Equal(t, strings.Repeat("0", 32), result)
	})
}
