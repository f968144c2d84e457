package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"
)

// ReplayVectors evaluates every vector and compares against the DUT output where present.
// It returns the outcomes and the number of mismatching or failing vectors.
func ReplayVectors(ctx context.Context, l log.Logger, model Model, vectors []Vector, infoEvery uint64) ([]Outcome, int, error) {
	outcomes := make([]Outcome, 0, len(vectors))
	failures := 0
	start := time.Now()
	for i, v := range vectors {
		if i%100 == 0 { // don't check the context too often
			if err := ctx.Err(); err != nil {
				return outcomes, failures, err
			}
		}
		if infoEvery != 0 && uint64(i)%infoEvery == 0 && i > 0 {
			delta := time.Since(start)
			l.Info("processing",
				"vector", i,
				"total", len(vectors),
				"failures", failures,
				"vps", float64(i)/(float64(delta)/float64(time.Second)),
			)
		}

		out := Outcome{Vector: v}
		res, err := model.EvaluateValue(uint64(v.Instr), uint64(v.Rs1), uint64(v.Rs2), v.XLEN)
		if err != nil {
			l.Error("invalid vector", "index", i, "insn", HexU32(v.Instr), "err", err)
			out.Error = err.Error()
			failures++
			outcomes = append(outcomes, out)
			continue
		}
		out.Op = res.Op.String()
		out.Output = Render(res, v.XLEN)
		if v.DUT != "" {
			match := v.DUT == out.Output
			out.Match = &match
			if !match {
				failures++
				l.Warn("mismatch",
					"index", i,
					"insn", HexU32(v.Instr),
					"op", res.Op,
					"rs1", HexU64(v.Rs1),
					"rs2", HexU64(v.Rs2),
					"xlen", v.XLEN,
					"expected", out.Output,
					"dut", v.DUT,
				)
			}
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, failures, nil
}

func Replay(ctx *cli.Context) error {
	if ctx.Bool(ReplayPProfCPU.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}
	l, err := LoggerFromContext(ctx)
	if err != nil {
		return err
	}

	vectors, err := LoadVectors(ctx.Path(ReplayInputFlag.Name))
	if err != nil {
		return err
	}
	model := NewModel(ctx.Bool(FastFlag.Name), l)

	outcomes, failures, err := ReplayVectors(ctx.Context, l, model, vectors, ctx.Uint64(ReplayInfoEveryFlag.Name))
	if err != nil {
		return err
	}
	if err := WriteOutcomes(ctx.Path(ReplayOutputFlag.Name), outcomes); err != nil {
		return err
	}
	l.Info("replay done", "vectors", len(vectors), "failures", failures)
	if failures > 0 {
		return fmt.Errorf("%d of %d vectors failed", failures, len(vectors))
	}
	return nil
}

var ReplayCommand = &cli.Command{
	Name:        "replay",
	Usage:       "Evaluate a file of test vectors and compare against design outputs",
	Description: "Evaluate a JSON file of test vectors with the reference model. Vectors carrying a 'dut' output are compared bit for bit, and any mismatch fails the command.",
	Action:      Replay,
	Flags: []cli.Flag{
		ReplayInputFlag,
		ReplayOutputFlag,
		ReplayInfoEveryFlag,
		ReplayPProfCPU,
		FastFlag,
		LogLevelFlag,
	},
}
