package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/riscv-verif/bbox/rvgo/cmd"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bbox"
	app.Usage = "RISC-V bit-manipulation reference model"
	app.Description = "Decodes 32 bit instruction words against the Zba, Zbb, Zbc and Zbs encodings " +
		"and computes the result a conforming RV32 or RV64 core must produce. " +
		"Use replay to check recorded design outputs against it in bulk."
	app.Commands = []*cli.Command{
		cmd.EvalCommand,
		cmd.ReplayCommand,
		cmd.TableCommand,
	}
	return app
}

func main() {
	app := newApp()
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for {
			<-c
			cancel()
			fmt.Println("\r\nExiting...")
		}
	}()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			_, _ = fmt.Fprintf(os.Stderr, "command interrupted")
			os.Exit(130)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v", err)
			os.Exit(1)
		}
	}
}
