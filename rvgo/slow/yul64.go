package slow

import (
	"strings"

	"github.com/riscv-verif/bbox/rvgo/riscv"
)

// Width dependent helpers. Widths are at most 255 bits.

// 1 << bits
func pow2(bits uint64) U256 {
	return shl(u64ToU256(bits), toU256(1))
}

// (1 << bits) - 1
func maskOf(bits uint64) U256 {
	return sub(pow2(bits), toU256(1))
}

func u32Mask() U256 {
	return u64ToU256(riscv.Mask32)
}

func u64Mask() U256 {
	return u64ToU256(riscv.Mask64)
}

// SignExtend reinterprets bit bits-1 of v as the sign bit,
// and returns the 256 bit two's complement encoding of the signed value.
func SignExtend(v U256, bits uint64) U256 {
	signBit := pow2(bits - 1)
	// (v & (signBit - 1)) - (v & signBit)
	return sub(and(v, sub(signBit, toU256(1))), and(v, signBit))
}

// BinDigits masks v to width bits and renders it as a zero padded binary string, MSB first.
func BinDigits(v U256, width uint64) string {
	m := and(v, maskOf(width))
	var sb strings.Builder
	sb.Grow(int(width))
	for i := width; i > 0; i-- {
		if bit(m, i-1) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
