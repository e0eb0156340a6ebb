// Package jobs runs independent file round trips in parallel: every input is compressed
// to a file, then decompressed from that file with the same in-process tree.
package jobs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/consensys/entropy/logger"
	"github.com/consensys/entropy/std/compress"
	"github.com/consensys/entropy/std/compress/huffman"
)

const (
	CompressedExt   = ".huf"
	DecompressedExt = ".out"
)

// Job names the three files of one round trip.
type Job struct {
	Input        string `cbor:"input"`
	Compressed   string `cbor:"compressed"`
	Decompressed string `cbor:"decompressed"`
}

type Result struct {
	Job      `cbor:"job"`
	Stats    huffman.Stats `cbor:"stats"`
	Verified bool          `cbor:"verified"`
	Duration time.Duration `cbor:"durationNs"`
}

type Runner struct {
	workers   int
	alphabet  compress.Alphabet
	outputDir string
	log       zerolog.Logger
}

type Option func(*Runner)

// WithWorkers bounds the number of jobs running at once.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithAlphabet(a compress.Alphabet) Option {
	return func(r *Runner) {
		r.alphabet = a
	}
}

// WithOutputDir puts output files in dir instead of next to their input.
func WithOutputDir(dir string) Option {
	return func(r *Runner) {
		r.outputDir = dir
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		workers:  runtime.NumCPU(),
		alphabet: compress.Bytes,
		log:      *logger.Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewJob derives output paths for input.
func (r *Runner) NewJob(input string) Job {
	base := input
	if r.outputDir != "" {
		base = filepath.Join(r.outputDir, filepath.Base(input))
	}
	return Job{
		Input:        input,
		Compressed:   base + CompressedExt,
		Decompressed: base + DecompressedExt,
	}
}

// Run executes the jobs. The first failure cancels the jobs still running and is returned;
// results are in job order and only meaningful when err is nil.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range jobs {
		i := i
		g.Go(func() error {
			res, err := r.run(ctx, jobs[i])
			if err != nil {
				return fmt.Errorf("%s: %w", jobs[i].Input, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) run(ctx context.Context, job Job) (res Result, err error) {
	start := time.Now()
	log := r.log.With().Str("input", job.Input).Logger()

	d, err := os.ReadFile(job.Input)
	if err != nil {
		return res, fmt.Errorf("%w: %w", huffman.ErrSourceUnavailable, err)
	}
	in := compress.NewStream(d, r.alphabet)

	codec, err := huffman.NewCodec(in)
	if err != nil {
		return
	}
	log.Debug().Int("distinct", len(codec.Freq)).Int("depth", codec.Tree.Depth()).Msg("tree built")

	stats, err := r.compress(ctx, codec, in, job.Compressed)
	if err != nil {
		return
	}
	log.Info().
		Uint64("symbols", stats.NbSymbols).
		Uint64("bits", stats.NbBits).
		Float64("ratio", stats.Ratio()).
		Msg("compressed")

	out, err := r.decompress(ctx, codec, job.Compressed, stats.NbBits, job.Decompressed)
	if err != nil {
		return
	}

	res = Result{
		Job:      job,
		Stats:    stats,
		Verified: bytes.Equal(d, out),
		Duration: time.Since(start),
	}
	if !res.Verified {
		log.Warn().Msg("decompressed output differs from input")
	} else {
		log.Info().Dur("took", res.Duration).Msg("decompressed")
	}
	return res, nil
}

func (r *Runner) compress(ctx context.Context, codec *huffman.Codec, in compress.Stream, path string) (stats huffman.Stats, err error) {
	f, err := os.Create(path)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", huffman.ErrSinkUnavailable, err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", huffman.ErrSinkUnavailable, cErr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return codec.Compress(ctx, in, f)
}

func (r *Runner) decompress(ctx context.Context, codec *huffman.Codec, path string, nbBits uint64, outPath string) (out []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", huffman.ErrSourceUnavailable, err)
	}
	defer f.Close()

	var bb bytes.Buffer
	if _, err = codec.Decompress(ctx, f, nbBits, &bb); err != nil {
		return nil, err
	}
	if err = os.WriteFile(outPath, bb.Bytes(), 0o644); err != nil {
		_ = os.Remove(outPath)
		return nil, fmt.Errorf("%w: %w", huffman.ErrSinkUnavailable, err)
	}
	return bb.Bytes(), nil
}
