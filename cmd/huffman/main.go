// Command huffman compresses every input file with a Huffman code derived from its own
// content, then decompresses it again with the same in-process tree.
//
//	huffman [--alphabet bytes|runes] [--out dir] [--workers n] [--report run.cbor] FILE...
//
// For each FILE it writes FILE.huf (the packed bits, zero padded to a byte) and FILE.out
// (the decompressed copy). The tree is not stored in FILE.huf.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/consensys/entropy/internal/jobs"
	"github.com/consensys/entropy/logger"
	"github.com/consensys/entropy/std/compress"
)

func main() {
	logger.SetOutput(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	if err := newApp().Run(os.Args); err != nil {
		logger.Logger().Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "huffman",
		Usage:     "compress and decompress files with a static Huffman code",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "alphabet", Value: "bytes", Usage: "symbol alphabet: bytes or runes"},
			&cli.StringFlag{Name: "out", Usage: "directory for output files (default: next to each input)"},
			&cli.IntFlag{Name: "workers", Usage: "number of files processed at once (default: number of CPUs)"},
			&cli.StringFlag{Name: "report", Usage: "write a CBOR run report to this file"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log tree details"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("no input files")
	}
	alphabet, err := compress.ParseAlphabet(c.String("alphabet"))
	if err != nil {
		return err
	}
	level := zerolog.InfoLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}

	if dir := c.String("out"); dir != "" {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	runner := jobs.NewRunner(
		jobs.WithAlphabet(alphabet),
		jobs.WithOutputDir(c.String("out")),
		jobs.WithWorkers(c.Int("workers")),
		jobs.WithLogger(logger.Logger().Level(level)),
	)
	todo := make([]jobs.Job, c.NArg())
	for i, in := range c.Args().Slice() {
		todo[i] = runner.NewJob(in)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	results, err := runner.Run(ctx, todo)
	if err != nil {
		return err
	}

	printSummary(results)

	if path := c.String("report"); path != "" {
		return writeReport(path, results)
	}
	return nil
}

func printSummary(results []jobs.Result) {
	p := message.NewPrinter(language.English) // For commas between thousands
	var raw, packed int64
	for _, res := range results {
		p.Printf("%s: %d symbols (%d distinct), %d bytes -> %d bits, ratio %.3f\n",
			res.Input, res.Stats.NbSymbols, res.Stats.NbDistinct, res.Stats.RawBytes, res.Stats.NbBits, res.Stats.Ratio())
		raw += int64(res.Stats.RawBytes)
		packed += int64((res.Stats.NbBits + 7) / 8)
	}
	p.Printf("total: %d bytes -> %d bytes\n", raw, packed)
}

func writeReport(path string, results []jobs.Result) error {
	d, err := cbor.Marshal(results)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return os.WriteFile(path, d, 0o644)
}
