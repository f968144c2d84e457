package slow

import "github.com/holiman/uint256"

// 256 bit word functions, used as the unbounded integer of the reference model.
// Negative numbers are represented in two's complement, which masking to XLEN preserves.

type U256 = uint256.Int

func toU256(v uint8) U256 {
	return *uint256.NewInt(uint64(v))
}

func u64ToU256(v uint64) U256 {
	return *uint256.NewInt(v)
}

func add(x, y U256) (out U256) {
	out.Add(&x, &y)
	return
}

func sub(x, y U256) (out U256) {
	out.Sub(&x, &y)
	return
}

func not(x U256) (out U256) {
	out.Not(&x)
	return
}

func lt(x, y U256) bool {
	return x.Lt(&y)
}

func gt(x, y U256) bool {
	return x.Gt(&y)
}

func slt(x, y U256) bool {
	return x.Slt(&y)
}

func sgt(x, y U256) bool {
	return x.Sgt(&y)
}

func iszero(x U256) bool {
	return x.IsZero()
}

func and(x, y U256) (out U256) {
	out.And(&x, &y)
	return
}

func or(x, y U256) (out U256) {
	out.Or(&x, &y)
	return
}

func xor(x, y U256) (out U256) {
	out.Xor(&x, &y)
	return
}

// returns y << x
func shl(x, y U256) (out U256) {
	if !x.IsUint64() || x.Uint64() >= 256 {
		return
	}
	out.Lsh(&y, uint(x.Uint64()))
	return
}

// returns y >> x
func shr(x, y U256) (out U256) {
	if !x.IsUint64() || x.Uint64() >= 256 {
		return
	}
	out.Rsh(&y, uint(x.Uint64()))
	return
}

// bit i of x, as 0 or 1
func bit(x U256, i uint64) uint64 {
	b := and(shr(u64ToU256(i), x), toU256(1))
	return b.Uint64()
}
