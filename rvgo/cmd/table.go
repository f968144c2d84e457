package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/riscv-verif/bbox/rvgo/isa"
	"github.com/riscv-verif/bbox/rvgo/riscv"
)

func Table(ctx *cli.Context) error {
	xlen := ctx.Uint64(TableXLENFlag.Name)
	if xlen != 0 && !riscv.ValidXLEN(xlen) {
		return fmt.Errorf("%w: %d", isa.ErrInvalidXLEN, xlen)
	}
	w := tabwriter.NewWriter(ctx.App.Writer, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "op\tfunct7_rs2_rs1_f3_rd_opcode\tform\twidths")
	for _, e := range isa.Table {
		if xlen != 0 && !e.Widths.Has(xlen) {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Op, e.Pattern(), e.Form, e.Widths)
	}
	return w.Flush()
}

var TableCommand = &cli.Command{
	Name:        "table",
	Usage:       "List the instruction encodings",
	Description: "List the instruction encodings in match priority order, with 'x' for bits the match ignores.",
	Action:      Table,
	Flags: []cli.Flag{
		TableXLENFlag,
	},
}
