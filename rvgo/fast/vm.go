package fast

import (
	"math/bits"

	"github.com/ethereum/go-ethereum/log"

	"github.com/riscv-verif/bbox/rvgo/isa"
	"github.com/riscv-verif/bbox/rvgo/riscv"
)

// Evaluator computes the same results as the slow reference model,
// with native 64 bit arithmetic. Bits above XLEN are discarded on output,
// so wrapping at 64 bits does not change any result.
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

func Evaluate(instr, rs1, rs2, xlen uint64) (valid bool, result string, err error) {
	return defaultEvaluator.Evaluate(instr, rs1, rs2, xlen)
}

func EvaluateValue(instr, rs1, rs2, xlen uint64) (isa.Result, error) {
	return defaultEvaluator.EvaluateValue(instr, rs1, rs2, xlen)
}

func (ev *Evaluator) Evaluate(instr, rs1, rs2, xlen uint64) (bool, string, error) {
	res, err := ev.EvaluateValue(instr, rs1, rs2, xlen)
	if err != nil {
		return false, "", err
	}
	return res.Valid, BinDigits(res.Value, xlen), nil
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
	out.Value = execute(d, rs1, rs2, xlen) & riscv.MaskFor(xlen)
	return out, nil
}

func execute(d isa.Decoded, rs1, rs2 U64, xlen uint64) U64 {
	idxMask := xlen - 1
	switch d.Op() {
	case isa.OpAddUW:
		return rs2 + rs1&u32Mask()
	case isa.OpAndn:
		return rs1 &^ rs2
	case isa.OpBclr:
		return rs1 &^ (1 << (rs2 & idxMask))
	case isa.OpBclri:
		return rs1 &^ (1 << (d.Shamt & idxMask))
	case isa.OpBext:
		return (rs1 >> (rs2 & idxMask)) & 1
	case isa.OpBexti:
		return (rs1 >> (d.Shamt & idxMask)) & 1
	case isa.OpBinv:
		return rs1 ^ (1 << (rs2 & idxMask))
	case isa.OpBinvi:
		return rs1 ^ (1 << (d.Shamt & idxMask))
	case isa.OpBset:
		return rs1 | (1 << (rs2 & idxMask))
	case isa.OpBseti:
		return rs1 | (1 << (d.Shamt & idxMask))
	case isa.OpClmul:
		return clmul(rs1, rs2, xlen)
	case isa.OpClmulh:
		return clmulh(rs1, rs2, xlen)
	case isa.OpClmulr:
		return clmulr(rs1, rs2, xlen)
	case isa.OpClz:
		return uint64(bits.LeadingZeros64(rs1)) - (64 - xlen)
	case isa.OpClzw:
		return uint64(bits.LeadingZeros32(uint32(rs1)))
	case isa.OpCpop:
		return uint64(bits.OnesCount64(rs1))
	case isa.OpCpopw:
		return uint64(bits.OnesCount32(uint32(rs1)))
	case isa.OpCtz:
		if rs1 == 0 {
			return xlen
		}
		return uint64(bits.TrailingZeros64(rs1))
	case isa.OpCtzw:
		return uint64(bits.TrailingZeros32(uint32(rs1)))
	case isa.OpMax:
		if int64(SignExtend(rs1, xlen)) > int64(SignExtend(rs2, xlen)) {
			return rs1
		}
		return rs2
	case isa.OpMaxu:
		if rs1 > rs2 {
			return rs1
		}
		return rs2
	case isa.OpMin:
		if int64(SignExtend(rs1, xlen)) < int64(SignExtend(rs2, xlen)) {
			return rs1
		}
		return rs2
	case isa.OpMinu:
		if rs1 < rs2 {
			return rs1
		}
		return rs2
	case isa.OpOrcB:
		var out U64
		for i := uint64(0); i < xlen; i += 8 {
			if (rs1>>i)&0xFF != 0 {
				out |= 0xFF << i
			}
		}
		return out
	case isa.OpOrn:
		return rs1 | ^rs2
	case isa.OpRev8:
		if xlen == riscv.XLEN32 {
			return uint64(bits.ReverseBytes32(uint32(rs1)))
		}
		return bits.ReverseBytes64(rs1)
	case isa.OpRol:
		return rotateLeft(rs1, int(rs2&idxMask), xlen)
	case isa.OpRolw:
		return mask32Signed64(uint64(bits.RotateLeft32(uint32(rs1), int(rs2&31))))
	case isa.OpRor:
		return rotateLeft(rs1, -int(rs2&idxMask), xlen)
	case isa.OpRori:
		return rotateLeft(rs1, -int(d.Shamt), xlen)
	case isa.OpRoriw:
		return mask32Signed64(uint64(bits.RotateLeft32(uint32(rs1), -int(d.Shamt))))
	case isa.OpRorw:
		return mask32Signed64(uint64(bits.RotateLeft32(uint32(rs1), -int(rs2&31))))
	case isa.OpSextB:
		return uint64(int8(rs1))
	case isa.OpSextH:
		return uint64(int16(rs1))
	case isa.OpSh1add:
		return rs2 + rs1<<1
	case isa.OpSh1addUW:
		return rs2 + (rs1&u32Mask())<<1
	case isa.OpSh2add:
		return rs2 + rs1<<2
	case isa.OpSh2addUW:
		return rs2 + (rs1&u32Mask())<<2
	case isa.OpSh3add:
		return rs2 + rs1<<3
	case isa.OpSh3addUW:
		return rs2 + (rs1&u32Mask())<<3
	case isa.OpSlliUW:
		return (rs1 & u32Mask()) << d.Shamt
	case isa.OpXnor:
		return ^(rs1 ^ rs2)
	case isa.OpZextH:
		return rs1 & 0xFFFF
	}
	return 0
}

func rotateLeft(v U64, k int, xlen uint64) U64 {
	if xlen == riscv.XLEN32 {
		return uint64(bits.RotateLeft32(uint32(v), k))
	}
	return bits.RotateLeft64(v, k)
}

// Carry-less multiplication has no math/bits primitive, these are the XOR folds.

func clmul(a, b U64, xlen uint64) U64 {
	var out U64
	for i := uint64(0); i < xlen; i++ {
		if (b>>i)&1 == 1 {
			out ^= a << i
		}
	}
	return out
}

func clmulh(a, b U64, xlen uint64) U64 {
	var out U64
	for i := uint64(1); i < xlen; i++ {
		if (b>>i)&1 == 1 {
			out ^= a >> (xlen - i)
		}
	}
	return out
}

func clmulr(a, b U64, xlen uint64) U64 {
	var out U64
	for i := uint64(0); i < xlen; i++ {
		if (b>>i)&1 == 1 {
			out ^= a >> (xlen - i - 1)
		}
	}
	return out
}
