package cmd

import (
	"errors"
	"fmt"
	"math"

	"github.com/urfave/cli/v2"

	"github.com/riscv-verif/bbox/rvgo/isa"
)

func instrFromFlags(ctx *cli.Context, xlen uint64) (uint64, error) {
	insn, opName := ctx.String(EvalInsnFlag.Name), ctx.String(EvalOpFlag.Name)
	switch {
	case insn != "" && opName != "":
		return 0, errors.New("--insn and --op are mutually exclusive")
	case insn != "":
		return parseUint64(EvalInsnFlag.Name, insn)
	case opName != "":
		op, err := isa.LookupOp(opName)
		if err != nil {
			return 0, err
		}
		var args isa.Operands
		for _, f := range []struct {
			dst      *uint32
			name     string
			rangeErr error
		}{
			{&args.Rd, EvalRdFlag.Name, isa.ErrInvalidRegister},
			{&args.Rs1, EvalRs1IdxFlag.Name, isa.ErrInvalidRegister},
			{&args.Rs2, EvalRs2IdxFlag.Name, isa.ErrInvalidRegister},
			{&args.Imm, EvalImmFlag.Name, isa.ErrShamtRange},
		} {
			v := ctx.Uint(f.name)
			// checked before narrowing, Encode only sees 32 bits
			if uint64(v) > math.MaxUint32 {
				return 0, fmt.Errorf("%w: --%s %d", f.rangeErr, f.name, v)
			}
			*f.dst = uint32(v)
		}
		word, err := isa.Encode(op, args, xlen)
		if err != nil {
			return 0, fmt.Errorf("failed to assemble %s: %w", op, err)
		}
		return uint64(word), nil
	}
	return 0, errors.New("one of --insn or --op is required")
}

func Eval(ctx *cli.Context) error {
	l, err := LoggerFromContext(ctx)
	if err != nil {
		return err
	}

	xlen := ctx.Uint64(XLENFlag.Name)
	instr, err := instrFromFlags(ctx, xlen)
	if err != nil {
		return err
	}
	rs1, err := parseUint64(EvalRs1Flag.Name, ctx.String(EvalRs1Flag.Name))
	if err != nil {
		return err
	}
	rs2, err := parseUint64(EvalRs2Flag.Name, ctx.String(EvalRs2Flag.Name))
	if err != nil {
		return err
	}

	model := NewModel(ctx.Bool(FastFlag.Name), l)
	res, err := model.EvaluateValue(instr, rs1, rs2, xlen)
	if err != nil {
		return fmt.Errorf("failed to evaluate instruction %#x: %w", instr, err)
	}
	l.Info("evaluated",
		"insn", HexU32(instr),
		"op", res.Op,
		"valid", res.Valid,
		"reserved", res.Reserved,
		"rs1", HexU64(rs1),
		"rs2", HexU64(rs2),
		"result", HexU64(res.Value),
	)
	_, err = fmt.Fprintln(ctx.App.Writer, Render(res, xlen))
	return err
}

var EvalCommand = &cli.Command{
	Name:        "eval",
	Usage:       "Evaluate a single bit-manipulation instruction",
	Description: "Evaluate a single bit-manipulation instruction. Prints the valid bit followed by the XLEN result bits.",
	Action:      Eval,
	Flags: []cli.Flag{
		EvalInsnFlag,
		EvalOpFlag,
		EvalRdFlag,
		EvalRs1IdxFlag,
		EvalRs2IdxFlag,
		EvalImmFlag,
		EvalRs1Flag,
		EvalRs2Flag,
		XLENFlag,
		FastFlag,
		LogLevelFlag,
	},
}
