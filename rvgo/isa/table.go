package isa

import (
	"fmt"
	"strings"

	"github.com/riscv-verif/bbox/rvgo/riscv"
)

// Op identifies a bit-manipulation instruction.
type Op uint8

const (
	OpInvalid Op = iota
	OpAddUW
	OpAndn
	OpBclr
	OpBclri
	OpBext
	OpBexti
	OpBinv
	OpBinvi
	OpBset
	OpBseti
	OpClmul
	OpClmulh
	OpClmulr
	OpClz
	OpClzw
	OpCpop
	OpCpopw
	OpCtz
	OpCtzw
	OpMax
	OpMaxu
	OpMin
	OpMinu
	OpOrcB
	OpOrn
	OpRev8
	OpRol
	OpRolw
	OpRor
	OpRori
	OpRoriw
	OpRorw
	OpSextB
	OpSextH
	OpSh1add
	OpSh1addUW
	OpSh2add
	OpSh2addUW
	OpSh3add
	OpSh3addUW
	OpSlliUW
	OpXnor
	OpZextH

	numOps
)

var opNames = [numOps]string{
	OpInvalid:  "invalid",
	OpAddUW:    "add.uw",
	OpAndn:     "andn",
	OpBclr:     "bclr",
	OpBclri:    "bclri",
	OpBext:     "bext",
	OpBexti:    "bexti",
	OpBinv:     "binv",
	OpBinvi:    "binvi",
	OpBset:     "bset",
	OpBseti:    "bseti",
	OpClmul:    "clmul",
	OpClmulh:   "clmulh",
	OpClmulr:   "clmulr",
	OpClz:      "clz",
	OpClzw:     "clzw",
	OpCpop:     "cpop",
	OpCpopw:    "cpopw",
	OpCtz:      "ctz",
	OpCtzw:     "ctzw",
	OpMax:      "max",
	OpMaxu:     "maxu",
	OpMin:      "min",
	OpMinu:     "minu",
	OpOrcB:     "orc.b",
	OpOrn:      "orn",
	OpRev8:     "rev8",
	OpRol:      "rol",
	OpRolw:     "rolw",
	OpRor:      "ror",
	OpRori:     "rori",
	OpRoriw:    "roriw",
	OpRorw:     "rorw",
	OpSextB:    "sext.b",
	OpSextH:    "sext.h",
	OpSh1add:   "sh1add",
	OpSh1addUW: "sh1add.uw",
	OpSh2add:   "sh2add",
	OpSh2addUW: "sh2add.uw",
	OpSh3add:   "sh3add",
	OpSh3addUW: "sh3add.uw",
	OpSlliUW:   "slli.uw",
	OpXnor:     "xnor",
	OpZextH:    "zext.h",
}

func (op Op) String() string {
	if op >= numOps {
		return fmt.Sprintf("op(%d)", uint8(op))
	}
	return opNames[op]
}

// Ops lists every defined instruction, in table order.
func Ops() []Op {
	out := make([]Op, 0, numOps-1)
	for op := OpInvalid + 1; op < numOps; op++ {
		out = append(out, op)
	}
	return out
}

// LookupOp resolves a mnemonic. Dots are optional: "add.uw" and "adduw" are the same.
func LookupOp(name string) (Op, error) {
	want := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), ".", "")
	for op := OpInvalid + 1; op < numOps; op++ {
		if strings.ReplaceAll(opNames[op], ".", "") == want {
			return op, nil
		}
	}
	return OpInvalid, fmt.Errorf("%w: %q", ErrUnknownOp, name)
}

// Widths is the set of machine widths an encoding is defined for.
type Widths uint8

const (
	RV32 Widths = 1 << iota
	RV64

	RVAny = RV32 | RV64
)

func (w Widths) Has(xlen uint64) bool {
	switch xlen {
	case riscv.XLEN32:
		return w&RV32 != 0
	case riscv.XLEN64:
		return w&RV64 != 0
	}
	return false
}

func (w Widths) String() string {
	switch w {
	case RVAny:
		return "rv32,rv64"
	case RV32:
		return "rv32"
	case RV64:
		return "rv64"
	}
	return "none"
}

// Form describes which operands an instruction consumes.
type Form uint8

const (
	FormR      Form = iota // rs1, rs2
	FormUnary              // rs1 only, rs2 field is a sub-opcode
	FormShamt              // rs1 and a 5/6 bit immediate, funct7 low bit is shamt[5]
	FormShamtW             // rs1 and a 5 bit immediate
)

func (f Form) String() string {
	switch f {
	case FormR:
		return "r"
	case FormUnary:
		return "unary"
	case FormShamt:
		return "shamt"
	case FormShamtW:
		return "shamtw"
	}
	return fmt.Sprintf("form(%d)", uint8(f))
}

// Encoding is a conjunction of field constraints identifying one instruction.
// A field matches when field&mask == value.
type Encoding struct {
	Op         Op
	Funct7     uint32
	Funct7Mask uint32
	Rs2        uint32
	Rs2Mask    uint32
	Funct3     uint32
	Opcode     uint32
	OpcodeMask uint32
	Widths     Widths
	Form       Form
}

func (e Encoding) Matches(f Fields) bool {
	return f.Funct7&e.Funct7Mask == e.Funct7 &&
		f.Rs2&e.Rs2Mask == e.Rs2 &&
		f.Funct3 == e.Funct3 &&
		f.Opcode&e.OpcodeMask == e.Opcode
}

// Pattern renders the encoding constraints with 'x' for unconstrained bits.
func (e Encoding) Pattern() string {
	return strings.Join([]string{
		pattern(e.Funct7, e.Funct7Mask, 7),
		pattern(e.Rs2, e.Rs2Mask, 5),
		pattern(0, 0, 5),
		pattern(e.Funct3, 0x7, 3),
		pattern(0, 0, 5),
		pattern(e.Opcode, e.OpcodeMask, 7),
	}, "_")
}

func pattern(v, mask uint32, width int) string {
	var sb strings.Builder
	for i := width - 1; i >= 0; i-- {
		switch {
		case (mask>>i)&1 == 0:
			sb.WriteByte('x')
		case (v>>i)&1 == 1:
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func rType(op Op, funct7, funct3, opcode uint32, w Widths) Encoding {
	return Encoding{Op: op, Funct7: funct7, Funct7Mask: 0x7F, Funct3: funct3,
		Opcode: opcode, OpcodeMask: 0x7F, Widths: w, Form: FormR}
}

func unary(op Op, funct7, sub, funct3, opcode uint32, w Widths) Encoding {
	return Encoding{Op: op, Funct7: funct7, Funct7Mask: 0x7F, Rs2: sub, Rs2Mask: 0x1F,
		Funct3: funct3, Opcode: opcode, OpcodeMask: 0x7F, Widths: w, Form: FormUnary}
}

// funct7 without its low bit, which carries shamt[5]
func shamt(op Op, funct6, funct3, opcode uint32, w Widths) Encoding {
	return Encoding{Op: op, Funct7: funct6 << 1, Funct7Mask: 0x7E, Funct3: funct3,
		Opcode: opcode, OpcodeMask: 0x7F, Widths: w, Form: FormShamt}
}

func shamtW(op Op, funct7, funct3, opcode uint32, w Widths) Encoding {
	return Encoding{Op: op, Funct7: funct7, Funct7Mask: 0x7F, Funct3: funct3,
		Opcode: opcode, OpcodeMask: 0x7F, Widths: w, Form: FormShamtW}
}

const (
	opcImm   = riscv.OpcodeOpImm
	opcImm32 = riscv.OpcodeOpImm32
	opcOp    = riscv.OpcodeOp
	opcOp32  = riscv.OpcodeOp32
)

// Table lists all encodings in match priority order. The first match wins,
// although no two entries overlap (see Overlaps).
var Table = []Encoding{
	rType(OpAddUW, 0b0000100, 0b000, opcOp32, RV64),
	rType(OpAndn, 0b0100000, 0b111, opcOp, RVAny),
	rType(OpBclr, 0b0100100, 0b001, opcOp, RVAny),
	shamt(OpBclri, 0b010010, 0b001, opcImm, RVAny),
	rType(OpBext, 0b0100100, 0b101, opcOp, RVAny),
	shamt(OpBexti, 0b010010, 0b101, opcImm, RVAny),
	rType(OpBinv, 0b0110100, 0b001, opcOp, RVAny),
	shamt(OpBinvi, 0b011010, 0b001, opcImm, RVAny),
	rType(OpBset, 0b0010100, 0b001, opcOp, RVAny),
	shamt(OpBseti, 0b001010, 0b001, opcImm, RVAny),
	rType(OpClmul, 0b0000101, 0b001, opcOp, RVAny),
	rType(OpClmulh, 0b0000101, 0b011, opcOp, RVAny),
	rType(OpClmulr, 0b0000101, 0b010, opcOp, RVAny),
	unary(OpClz, 0b0110000, riscv.UnaryClz, 0b001, opcImm, RVAny),
	unary(OpClzw, 0b0110000, riscv.UnaryClz, 0b001, opcImm32, RV64),
	unary(OpCpop, 0b0110000, riscv.UnaryCpop, 0b001, opcImm, RVAny),
	unary(OpCpopw, 0b0110000, riscv.UnaryCpop, 0b001, opcImm32, RV64),
	unary(OpCtz, 0b0110000, riscv.UnaryCtz, 0b001, opcImm, RVAny),
	unary(OpCtzw, 0b0110000, riscv.UnaryCtz, 0b001, opcImm32, RV64),
	rType(OpMax, 0b0000101, 0b110, opcOp, RVAny),
	rType(OpMaxu, 0b0000101, 0b111, opcOp, RVAny),
	rType(OpMin, 0b0000101, 0b100, opcOp, RVAny),
	rType(OpMinu, 0b0000101, 0b101, opcOp, RVAny),
	unary(OpOrcB, 0b0010100, riscv.UnaryOrcB, 0b101, opcImm, RVAny),
	rType(OpOrn, 0b0100000, 0b110, opcOp, RVAny),
	// funct7 is 0110100 on RV32 and 0110101 on RV64
	{Op: OpRev8, Funct7: 0b0110100, Funct7Mask: 0x7E, Rs2: riscv.UnaryRev8, Rs2Mask: 0x1F,
		Funct3: 0b101, Opcode: opcImm, OpcodeMask: 0x7F, Widths: RVAny, Form: FormUnary},
	rType(OpRol, 0b0110000, 0b001, opcOp, RVAny),
	rType(OpRolw, 0b0110000, 0b001, opcOp32, RV64),
	rType(OpRor, 0b0110000, 0b101, opcOp, RVAny),
	shamt(OpRori, 0b011000, 0b101, opcImm, RVAny),
	shamtW(OpRoriw, 0b0110000, 0b101, opcImm32, RV64),
	rType(OpRorw, 0b0110000, 0b101, opcOp32, RV64),
	unary(OpSextB, 0b0110000, riscv.UnarySextB, 0b001, opcImm, RVAny),
	unary(OpSextH, 0b0110000, riscv.UnarySextH, 0b001, opcImm, RVAny),
	rType(OpSh1add, 0b0010000, 0b010, opcOp, RVAny),
	rType(OpSh1addUW, 0b0010000, 0b010, opcOp32, RV64),
	rType(OpSh2add, 0b0010000, 0b100, opcOp, RVAny),
	rType(OpSh2addUW, 0b0010000, 0b100, opcOp32, RV64),
	rType(OpSh3add, 0b0010000, 0b110, opcOp, RVAny),
	rType(OpSh3addUW, 0b0010000, 0b110, opcOp32, RV64),
	shamt(OpSlliUW, 0b000010, 0b001, opcImm32, RV64),
	rType(OpXnor, 0b0100000, 0b100, opcOp, RVAny),
	// any base opcode matches, the opcode selects the RV32 or RV64 variant
	{Op: OpZextH, Funct7: 0b0000100, Funct7Mask: 0x7F, Funct3: 0b100,
		Widths: RVAny, Form: FormUnary},
}

var byOp = func() (out [numOps]*Encoding) {
	for i := range Table {
		out[Table[i].Op] = &Table[i]
	}
	return
}()

// EncodingOf returns the table entry of op.
func EncodingOf(op Op) (Encoding, bool) {
	if op >= numOps || byOp[op] == nil {
		return Encoding{}, false
	}
	return *byOp[op], true
}

// Match returns the first table entry matching the fields.
func Match(f Fields) (Encoding, bool) {
	for _, e := range Table {
		if e.Matches(f) {
			return e, true
		}
	}
	return Encoding{}, false
}

// Overlaps returns every pair of table entries that some instruction word satisfies both of.
func Overlaps() [][2]Op {
	var out [][2]Op
	for i := range Table {
		for j := i + 1; j < len(Table); j++ {
			if Table[i].overlaps(Table[j]) {
				out = append(out, [2]Op{Table[i].Op, Table[j].Op})
			}
		}
	}
	return out
}

func (e Encoding) overlaps(o Encoding) bool {
	return (e.Funct7^o.Funct7)&(e.Funct7Mask&o.Funct7Mask) == 0 &&
		(e.Rs2^o.Rs2)&(e.Rs2Mask&o.Rs2Mask) == 0 &&
		e.Funct3 == o.Funct3 &&
		(e.Opcode^o.Opcode)&(e.OpcodeMask&o.OpcodeMask) == 0
}
