// Command layer-render renders YAML design documents to PNG images.
//
// Usage:
//
//	layer-render render -c layer.toml -o out/ card.yaml badge.yaml
//	layer-render bounds card.yaml
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/layer/cmd/layer-render/commands"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli := commands.New(stdout, stderr)
	cli.SetArgs(args)
	if err := cli.Execute(ctx); err != nil {
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}
	return 0
}
