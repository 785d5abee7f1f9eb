package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/seitarof/gen-from/internal/cli"
	"github.com/seitarof/gen-from/internal/generator"
	"github.com/seitarof/gen-from/internal/parser"
	"github.com/seitarof/gen-from/internal/resolver"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		charmlog.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	logger, err := cli.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		charmlog.Fatal(err)
	}

	p := parser.New()
	r := resolver.New()
	f := generator.NewGoimportsFormatter()
	w := generator.NewFileWriter()
	g := generator.New(f, w)

	runner := cli.NewRunner(p, r, g, logger)
	if err := runner.Run(cfg); err != nil {
		logger.Fatal(err)
	}
}
