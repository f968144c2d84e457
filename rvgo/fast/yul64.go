package fast

import (
	"strings"

	"github.com/riscv-verif/bbox/rvgo/riscv"
)

// Native 64 bit equivalents of the width helpers of the slow model.

type U64 = uint64

func u32Mask() U64 {
	return riscv.Mask32
}

// SignExtend reinterprets bit bits-1 of v as the sign bit, and returns the
// signed value in 64 bit two's complement. bits must be in 1..64.
func SignExtend(v U64, bits uint64) U64 {
	shift := 64 - bits
	return U64(int64(v<<shift) >> shift)
}

func mask32Signed64(v U64) U64 {
	return SignExtend(v&u32Mask(), 32)
}

// BinDigits masks v to width bits and renders it as a zero padded binary string, MSB first.
func BinDigits(v U64, width uint64) string {
	v &= riscv.MaskFor(width)
	var sb strings.Builder
	sb.Grow(int(width))
	for i := width; i > 0; i-- {
		if (v>>(i-1))&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
