package cmd

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/riscv-verif/bbox/rvgo/fast"
	"github.com/riscv-verif/bbox/rvgo/isa"
	"github.com/riscv-verif/bbox/rvgo/slow"
)

// Model is implemented by both the reference and the fast evaluator.
type Model interface {
	Evaluate(instr, rs1, rs2, xlen uint64) (bool, string, error)
	EvaluateValue(instr, rs1, rs2, xlen uint64) (isa.Result, error)
}

var (
	_ Model = (*slow.Evaluator)(nil)
	_ Model = (*fast.Evaluator)(nil)
)

func NewModel(useFast bool, l log.Logger) Model {
	if useFast {
		return fast.NewEvaluator(l)
	}
	return slow.NewEvaluator(l)
}

// Output is the single string form of a result: the valid bit followed by the XLEN result bits.
func Output(valid bool, result string) string {
	if valid {
		return "1" + result
	}
	return "0" + result
}

// Render formats an evaluated result like Output.
func Render(res isa.Result, xlen uint64) string {
	return Output(res.Valid, fast.BinDigits(res.Value, xlen))
}
