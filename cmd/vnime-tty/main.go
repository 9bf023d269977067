package main

import (
	"context"
	"fmt"
	"os"

	"vnime/internal/app"
	"vnime/internal/cli"
)

func main() {
	opts, err := cli.Parse(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vnime-tty: %v\n", err)
		os.Exit(1)
	}
	if opts.ShowHelp {
		fmt.Println(cli.Usage())
		return
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "vnime-tty: %v\n", err)
		os.Exit(1)
	}
}

func run(opts cli.Options) error {
	rt := app.NewRuntime(opts)
	defer rt.Close()

	if err := rt.Prepare(); err != nil {
		return err
	}
	if opts.Stdin {
		return rt.RunStdin(os.Stdin, os.Stdout)
	}
	fmt.Fprintln(os.Stderr, "vnime-tty: typing in", rt.Engine().Config().Method, "(Ctrl+C to quit)")
	return rt.RunKeyboard(context.Background())
}
