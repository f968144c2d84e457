package fast

import (
	"math/bits"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riscv-verif/bbox/rvgo/isa"
	"github.com/riscv-verif/bbox/rvgo/riscv"
)

func TestBinDigits(t *testing.T) {
	require.Equal(t, "0101", BinDigits(0x15, 4))
	require.Equal(t, strings.Repeat("1", 64), BinDigits(^U64(0), 64))
	require.Equal(t, strings.Repeat("0", 31)+"1", BinDigits(1, 32))
}

func TestSignExtend(t *testing.T) {
	require.Equal(t, U64(0xFFFFFFFF_FFFFFF80), SignExtend(0x80, 8))
	require.Equal(t, U64(0x7F), SignExtend(0x7F, 8))
	require.Equal(t, U64(0xFFFFFFFF_80000000), mask32Signed64(0x1_80000000))
	require.Equal(t, U64(0x12345678), mask32Signed64(0xFF_12345678))
}

// carry-less products agree with a 128 bit schoolbook fold
func TestClmulHalves(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a, b := rng.Uint64(), rng.Uint64()
		var lo, hi uint64
		for j := uint(0); j < 64; j++ {
			if (b>>j)&1 == 1 {
				lo ^= a << j
				if j > 0 {
					hi ^= a >> (64 - j)
				}
			}
		}
		require.Equal(t, lo, clmul(a, b, 64))
		require.Equal(t, hi, clmulh(a, b, 64))
		// clmulr is bits 126..63 of the full product
		require.Equal(t, hi<<1|lo>>63, clmulr(a, b, 64))
	}
	require.Equal(t, U64(0b1111), clmul(0b101, 0b11, 32)&riscv.Mask32)
}

func TestRotateLeft(t *testing.T) {
	require.Equal(t, U64(0x00000001), rotateLeft(0x80000000, 1, 32))
	require.Equal(t, U64(0x80000000), rotateLeft(0x00000001, -1, 32))
	require.Equal(t, U64(1), rotateLeft(1<<63, 1, 64))
}

func TestEvaluate(t *testing.T) {
	word, err := isa.Encode(isa.OpCpop, isa.Operands{Rd: 1, Rs1: 2}, 64)
	require.NoError(t, err)
	x := uint64(0xF0F0_1234_0000_0001)
	valid, result, err := Evaluate(uint64(word), x, 0, 64)
	require.NoError(t, err)
	require.True(t, valid)
	require.Equal(t, BinDigits(U64(bits.OnesCount64(x)), 64), result)

	_, _, err = Evaluate(uint64(word), 1<<40, 0, 32)
	require.ErrorIs(t, err, isa.ErrOperandRange)
}
