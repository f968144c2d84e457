package riscv

const (
	XLEN32 = 32
	XLEN64 = 64

	// base opcodes, bits 6..0
	OpcodeOpImm   = 0x13 // 001_0011
	OpcodeOpImm32 = 0x1B // 001_1011
	OpcodeOp      = 0x33 // 011_0011
	OpcodeOp32    = 0x3B // 011_1011

	// rs2 field values selecting the single-operand instructions
	UnaryClz   = 0x00
	UnaryCtz   = 0x01
	UnaryCpop  = 0x02
	UnarySextB = 0x04
	UnarySextH = 0x05
	UnaryOrcB  = 0x07
	UnaryRev8  = 0x18

	Mask32 = uint64(0xFFFF_FFFF)
	Mask64 = uint64(0xFFFF_FFFF_FFFF_FFFF)
)

// MaskFor returns the all-ones XLEN-bit value.
func MaskFor(xlen uint64) uint64 {
	if xlen >= XLEN64 {
		return Mask64
	}
	return (uint64(1) << xlen) - 1
}

// ValidXLEN reports whether xlen is a supported machine width.
func ValidXLEN(xlen uint64) bool {
	return xlen == XLEN32 || xlen == XLEN64
}
