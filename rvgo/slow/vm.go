package slow

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/riscv-verif/bbox/rvgo/isa"
)

// Evaluator is the reference model. Results are computed as unbounded integers
// (256 bit words are wide enough for every instruction) and masked to XLEN on output.
// It holds no state besides the logger and is safe for concurrent use.
type Evaluator struct {
	log log.Logger
}

func NewEvaluator(logger log.Logger) *Evaluator {
	if logger == nil {
		logger = log.NewLogger(log.DiscardHandler())
	}
	return &Evaluator{log: logger}
}

var defaultEvaluator = NewEvaluator(nil)

// Evaluate decodes instr and computes its result for the given operands and machine width.
// The result is the XLEN bit two's complement rendering, MSB first.
// Unmatched instructions are not valid and produce all zero bits.
func Evaluate(instr, rs1, rs2, xlen uint64) (valid bool, result string, err error) {
	return defaultEvaluator.Evaluate(instr, rs1, rs2, xlen)
}

// EvaluateValue is Evaluate without the string rendering.
func EvaluateValue(instr, rs1, rs2, xlen uint64) (isa.Result, error) {
	return defaultEvaluator.EvaluateValue(instr, rs1, rs2, xlen)
}

func (ev *Evaluator) Evaluate(instr, rs1, rs2, xlen uint64) (bool, string, error) {
	res, err := ev.EvaluateValue(instr, rs1, rs2, xlen)
	if err != nil {
		return false, "", err
	}
	return res.Valid, BinDigits(u64ToU256(res.Value), xlen), nil
}

func (ev *Evaluator) EvaluateValue(instr, rs1, rs2, xlen uint64) (isa.Result, error) {
	if err := isa.CheckInputs(instr, rs1, rs2, xlen); err != nil {
		return isa.Result{}, err
	}
	d, ok := isa.Decode(uint32(instr), xlen)
	if !ok {
		ev.log.Debug("No matching encoding", "fields", isa.ParseFields(uint32(instr)), "xlen", xlen)
		return isa.Result{}, nil
	}
	out := isa.Result{Op: d.Op(), Valid: true, Reserved: d.Reserved}
	if d.Reserved {
		ev.log.Warn("Instruction not defined for xlen", "op", d.Op(), "fields", d.Fields, "xlen", xlen)
		return out, nil
	}
	ev.log.Debug("Testing instruction", "op", d.Op(), "fields", d.Fields, "xlen", xlen)
	v := execute(d, u64ToU256(rs1), u64ToU256(rs2), xlen)
	v = and(v, maskOf(xlen))
	out.Value = v.Uint64()
	return out, nil
}

func execute(d isa.Decoded, rs1, rs2 U256, xlen uint64) (res U256) {
	width := u64ToU256(xlen)
	idxMask := u64ToU256(xlen - 1) // bit index within XLEN
	one := toU256(1)
	shamt := u64ToU256(d.Shamt)

	switch d.Op() {
	case isa.OpAddUW:
		res = add(rs2, and(rs1, u32Mask()))
	case isa.OpAndn:
		res = and(rs1, not(rs2))
	case isa.OpBclr:
		res = and(rs1, not(shl(and(rs2, idxMask), one)))
	case isa.OpBclri:
		res = and(rs1, not(shl(and(shamt, idxMask), one)))
	case isa.OpBext:
		res = and(shr(and(rs2, idxMask), rs1), one)
	case isa.OpBexti:
		res = and(shr(and(shamt, idxMask), rs1), one)
	case isa.OpBinv:
		res = xor(rs1, shl(and(rs2, idxMask), one))
	case isa.OpBinvi:
		res = xor(rs1, shl(and(shamt, idxMask), one))
	case isa.OpBset:
		res = or(rs1, shl(and(rs2, idxMask), one))
	case isa.OpBseti:
		res = or(rs1, shl(and(shamt, idxMask), one))
	case isa.OpClmul:
		for i := uint64(0); i <= xlen; i++ {
			if bit(rs2, i) == 1 {
				res = xor(res, shl(u64ToU256(i), rs1))
			}
		}
	case isa.OpClmulh:
		for i := uint64(1); i <= xlen; i++ {
			if bit(rs2, i) == 1 {
				res = xor(res, shr(u64ToU256(xlen-i), rs1))
			}
		}
	case isa.OpClmulr:
		for i := uint64(0); i < xlen; i++ {
			if bit(rs2, i) == 1 {
				res = xor(res, shr(u64ToU256(xlen-i-1), rs1))
			}
		}
	case isa.OpClz:
		res = countLeadingZeros(rs1, xlen)
	case isa.OpClzw:
		res = countLeadingZeros(and(rs1, u32Mask()), 32)
	case isa.OpCpop:
		res = countOnes(rs1, xlen)
	case isa.OpCpopw:
		res = countOnes(rs1, 32)
	case isa.OpCtz:
		res = countTrailingZeros(rs1, xlen)
	case isa.OpCtzw:
		res = countTrailingZeros(rs1, 32)
	case isa.OpMax:
		if sgt(SignExtend(rs1, xlen), SignExtend(rs2, xlen)) {
			res = rs1
		} else {
			res = rs2
		}
	case isa.OpMaxu:
		if gt(rs1, rs2) {
			res = rs1
		} else {
			res = rs2
		}
	case isa.OpMin:
		if slt(SignExtend(rs1, xlen), SignExtend(rs2, xlen)) {
			res = rs1
		} else {
			res = rs2
		}
	case isa.OpMinu:
		if lt(rs1, rs2) {
			res = rs1
		} else {
			res = rs2
		}
	case isa.OpOrcB:
		b := rs1
		for i := uint64(0); i < xlen/8; i++ {
			if !iszero(and(b, toU256(0xFF))) {
				res = add(res, shl(u64ToU256(8*i), toU256(0xFF)))
			}
			b = shr(toU256(8), b)
		}
	case isa.OpOrn:
		res = or(rs1, not(rs2))
	case isa.OpRev8:
		b := rs1
		n := xlen / 8
		for i := uint64(0); i < n; i++ {
			res = add(res, shl(u64ToU256(8*(n-i-1)), and(b, toU256(0xFF))))
			b = shr(toU256(8), b)
		}
	case isa.OpRol:
		sh := and(rs2, idxMask)
		res = or(shl(sh, rs1), shr(sub(width, sh), rs1))
	case isa.OpRolw:
		sh := and(rs2, toU256(31))
		w := and(rs1, u32Mask())
		res = SignExtend(and(or(shl(sh, w), shr(sub(toU256(32), sh), w)), u32Mask()), 32)
	case isa.OpRor:
		sh := and(rs2, idxMask)
		res = or(shr(sh, rs1), shl(sub(width, sh), rs1))
	case isa.OpRori:
		res = or(shr(shamt, rs1), shl(sub(width, shamt), rs1))
	case isa.OpRoriw:
		w := and(rs1, u32Mask())
		res = SignExtend(and(or(shr(shamt, w), shl(sub(toU256(32), shamt), w)), u32Mask()), 32)
	case isa.OpRorw:
		sh := and(rs2, toU256(31))
		w := and(rs1, u32Mask())
		res = SignExtend(and(or(shr(sh, w), shl(sub(toU256(32), sh), w)), u32Mask()), 32)
	case isa.OpSextB:
		res = signExtendTo(rs1, 8, xlen)
	case isa.OpSextH:
		res = signExtendTo(rs1, 16, xlen)
	case isa.OpSh1add:
		res = and(add(rs2, shl(toU256(1), rs1)), u64Mask())
	case isa.OpSh1addUW:
		res = and(add(rs2, shl(toU256(1), and(rs1, u32Mask()))), u64Mask())
	case isa.OpSh2add:
		res = and(add(rs2, shl(toU256(2), rs1)), u64Mask())
	case isa.OpSh2addUW:
		res = and(add(rs2, shl(toU256(2), and(rs1, u32Mask()))), u64Mask())
	case isa.OpSh3add:
		res = and(add(rs2, shl(toU256(3), rs1)), u64Mask())
	case isa.OpSh3addUW:
		res = and(add(rs2, shl(toU256(3), and(rs1, u32Mask()))), u64Mask())
	case isa.OpSlliUW:
		res = shl(shamt, and(rs1, u32Mask()))
	case isa.OpXnor:
		res = sub(maskOf(xlen), xor(rs1, rs2))
	case isa.OpZextH:
		res = and(rs1, u64ToU256(0xFFFF))
	}
	return
}

// leading zeros of the low width bits of v, width if v is zero
func countLeadingZeros(v U256, width uint64) U256 {
	if iszero(v) {
		return u64ToU256(width)
	}
	top := pow2(width - 1)
	n := uint64(0)
	for iszero(and(v, top)) {
		v = shl(toU256(1), v)
		n++
	}
	return u64ToU256(n)
}

// trailing zeros of the low width bits of v, width if they are all zero
func countTrailingZeros(v U256, width uint64) U256 {
	n := uint64(0)
	for i := uint64(0); i < width; i++ {
		if bit(v, 0) == 1 {
			break
		}
		n++
		v = shr(toU256(1), v)
	}
	return u64ToU256(n)
}

func countOnes(v U256, width uint64) U256 {
	n := uint64(0)
	for i := uint64(0); i < width; i++ {
		if bit(v, 0) == 1 {
			n++
		}
		v = shr(toU256(1), v)
	}
	return u64ToU256(n)
}

// sign extends the low bits of v to xlen bits, as an unsigned xlen bit value
func signExtendTo(v U256, bits, xlen uint64) U256 {
	low := and(v, maskOf(bits))
	if lt(low, pow2(bits-1)) {
		return low
	}
	// (2^xlen - 2^bits) + low
	return add(sub(pow2(xlen), pow2(bits)), low)
}
