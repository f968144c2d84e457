package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/urfave/cli/v2"

	"github.com/riscv-verif/bbox/rvgo/riscv"
)

const envPrefix = "BBOX_"

func prefixEnvVars(name string) []string {
	return []string{envPrefix + name}
}

var (
	LogLevelFlag = &cli.StringFlag{
		Name:    "log.level",
		Usage:   "Log level: trace, debug, info, warn, error, crit",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Value:   "info",
	}
	XLENFlag = &cli.Uint64Flag{
		Name:    "xlen",
		Usage:   "Machine width, 32 or 64",
		EnvVars: prefixEnvVars("XLEN"),
		Value:   riscv.XLEN64,
	}
	FastFlag = &cli.BoolFlag{
		Name:    "fast",
		Usage:   "Use the native 64 bit model instead of the reference model",
		EnvVars: prefixEnvVars("FAST"),
	}

	EvalInsnFlag = &cli.StringFlag{
		Name:  "insn",
		Usage: "Instruction word, decimal or 0x-prefixed hex. Mutually exclusive with --op",
	}
	EvalOpFlag = &cli.StringFlag{
		Name:  "op",
		Usage: "Instruction mnemonic to assemble, e.g. andn, sh1add.uw, orc.b",
	}
	EvalRdFlag = &cli.UintFlag{
		Name:  "rd",
		Usage: "Destination register index used with --op",
	}
	EvalRs1IdxFlag = &cli.UintFlag{
		Name:  "rs1-idx",
		Usage: "Source register 1 index used with --op",
		Value: 1,
	}
	EvalRs2IdxFlag = &cli.UintFlag{
		Name:  "rs2-idx",
		Usage: "Source register 2 index used with --op",
		Value: 2,
	}
	EvalImmFlag = &cli.UintFlag{
		Name:  "imm",
		Usage: "Shift amount of the immediate forms used with --op",
	}
	EvalRs1Flag = &cli.StringFlag{
		Name:  "rs1",
		Usage: "Value of operand rs1, decimal or 0x-prefixed hex",
		Value: "0",
	}
	EvalRs2Flag = &cli.StringFlag{
		Name:  "rs2",
		Usage: "Value of operand rs2, decimal or 0x-prefixed hex",
		Value: "0",
	}

	ReplayInputFlag = &cli.PathFlag{
		Name:      "input",
		Usage:     "JSON array of test vectors. Read as gzip if it ends in .gz",
		TakesFile: true,
		Required:  true,
	}
	ReplayOutputFlag = &cli.PathFlag{
		Name:      "output",
		Usage:     "Path to write the evaluated vectors to, JSON. Gzip compressed if it ends in .gz, '-' for stdout, empty to skip",
		TakesFile: true,
	}
	ReplayInfoEveryFlag = &cli.Uint64Flag{
		Name:  "info-every",
		Usage: "Log progress every N vectors, 0 to disable",
		Value: 100_000,
	}
	ReplayPProfCPU = &cli.BoolFlag{
		Name:  "pprof.cpu",
		Usage: "Enable pprof cpu profiling",
	}

	TableXLENFlag = &cli.Uint64Flag{
		Name:  "xlen",
		Usage: "Only list instructions defined for this machine width, 0 for all",
	}
)

// parseUint64 accepts decimal and 0x-prefixed hex.
func parseUint64(name, s string) (uint64, error) {
	v, ok := math.ParseUint64(s)
	if !ok {
		return 0, fmt.Errorf("invalid --%s value %q", name, s)
	}
	return v, nil
}
