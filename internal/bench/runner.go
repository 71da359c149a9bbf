package bench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/biguint/internal/biguint"
	apperrors "github.com/agbru/biguint/internal/errors"
	"github.com/agbru/biguint/internal/logging"
	"github.com/agbru/biguint/internal/metrics"
	"github.com/agbru/biguint/internal/sysmon"
)

// DefaultOps lists the operations benchmarked when Config.Ops is empty.
var DefaultOps = []string{"add", "sub", "and", "xor", "shl", "shr", "mul", "sqrt"}

// MaxSqrtSize caps the operand size of sqrt cases. Each sqrt performs one
// multiplication per result bit, so larger operands would dominate the run.
const MaxSqrtSize = 128

// shiftBits is the shift count of shl and shr cases.
const shiftBits = 13

// Config describes a benchmark run.
type Config struct {
	// Sizes are the operand sizes in bytes.
	Sizes []int
	// Rounds is the number of times each case repeats its operation.
	Rounds int
	// Ops are the operations to measure, DefaultOps when empty.
	Ops []string
	// EngineOptions configure the scope of every case.
	EngineOptions []biguint.Option
	// GCMode selects the garbage collector control during the run.
	GCMode GCMode
	// Concurrency bounds the cases running at once, GOMAXPROCS when zero.
	Concurrency int
	// Logger receives run and GC events. Nil disables logging.
	Logger logging.Logger
	// OnProgress, when set, is called after each finished case. It may be
	// called from several goroutines.
	OnProgress func(done, total int)
}

// Case is one operation measured at one operand size.
type Case struct {
	Op   string
	Size int
}

// Result is the measurement of a Case.
type Result struct {
	Case
	Rounds int
	Total  time.Duration
	// PeakBytes is the largest number of bytes the case's scope held,
	// operands and temporaries included.
	PeakBytes int
}

// PerOp returns the mean duration of one operation.
func (r Result) PerOp() time.Duration {
	if r.Rounds == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Rounds)
}

// Report aggregates the results of a run.
type Report struct {
	Results []Result
	Elapsed time.Duration
	Memory  metrics.MemoryDelta
	GC      GCStats
	// Host is the system load measured over the run.
	Host sysmon.HostStats
}

// Cases expands the configuration into the list of cases, ops major.
func (c Config) Cases() []Case {
	ops := c.Ops
	if len(ops) == 0 {
		ops = DefaultOps
	}
	cases := make([]Case, 0, len(ops)*len(c.Sizes))
	for _, op := range ops {
		for _, size := range c.Sizes {
			if op == "sqrt" {
				size = min(size, MaxSqrtSize)
			}
			cases = append(cases, Case{Op: op, Size: size})
		}
	}
	return cases
}

// Run executes every case concurrently and collects the measurements.
// Results are in Cases order. The first failing case cancels the others.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - cfg: The run description.
//
// Returns:
//   - Report: The measurements, with memory and GC deltas of the whole run.
//   - error: A ValidationError for an invalid configuration, or the first
//     case failure.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if cfg.Rounds < 1 {
		return Report{}, apperrors.ValidationError{Field: "rounds", Message: "must be at least 1"}
	}
	if len(cfg.Sizes) == 0 {
		return Report{}, apperrors.ValidationError{Field: "sizes", Message: "at least one size is required"}
	}
	for _, op := range cfg.Ops {
		if _, ok := operations[op]; !ok {
			return Report{}, apperrors.ValidationError{Field: "ops", Message: fmt.Sprintf("unknown operation %q", op)}
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	cases := cfg.Cases()
	maxSize := 0
	for _, s := range cfg.Sizes {
		if s < 1 {
			return Report{}, apperrors.ValidationError{Field: "sizes", Message: fmt.Sprintf("size %d is not positive", s)}
		}
		maxSize = max(maxSize, s)
	}
	jobs := cfg.Concurrency
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	gc := NewGCController(cfg.GCMode, maxSize)
	gc.SetLogger(logger)
	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	sysmon.Sample(ctx)
	start := time.Now()
	gc.Begin()

	results := make([]Result, len(cases))
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(cases)))
	for i, c := range cases {
		g.Go(func() error {
			res, err := runCase(gctx, c, cfg.Rounds, cfg.EngineOptions)
			if err != nil {
				return apperrors.WrapError(err, "bench %s/%d", c.Op, c.Size)
			}
			results[i] = res
			n := done.Add(1)
			if cfg.OnProgress != nil {
				cfg.OnProgress(int(n), len(cases))
			}
			return nil
		})
	}
	err := g.Wait()

	gc.End()
	report := Report{
		Results: results,
		Elapsed: time.Since(start),
		Memory:  collector.Snapshot().Since(before),
		GC:      gc.Stats(),
		Host:    sysmon.Sample(context.WithoutCancel(ctx)),
	}
	if err != nil {
		logger.Error("benchmark failed", err)
		return report, err
	}
	logger.Info("benchmark finished",
		logging.Int("cases", len(cases)),
		logging.Int("rounds", cfg.Rounds),
		logging.Float64("elapsed_ms", float64(report.Elapsed.Microseconds())/1000))
	return report, nil
}

// operation runs one round of a case: z = op(x, y).
type operation func(z, x, y *biguint.Uint) error

var operations = map[string]operation{
	"add":  (*biguint.Uint).Add,
	"sub":  (*biguint.Uint).Sub,
	"and":  (*biguint.Uint).And,
	"or":   (*biguint.Uint).Or,
	"xor":  (*biguint.Uint).Xor,
	"mul":  (*biguint.Uint).Mul,
	"shl":  func(z, x, _ *biguint.Uint) error { return z.Shl(x, shiftBits) },
	"shr":  func(z, x, _ *biguint.Uint) error { return z.Shr(x, shiftBits) },
	"sqrt": func(z, x, _ *biguint.Uint) error { return z.Sqrt(x) },
}

// operands returns two deterministic pseudo-random operands of size bytes
// with x > y, so that sub never underflows.
func operands(c Case) (x, y []byte) {
	rng := rand.New(rand.NewPCG(uint64(c.Size), uint64(len(c.Op))))
	x = make([]byte, c.Size)
	y = make([]byte, c.Size)
	for i := range x {
		x[i] = byte(rng.Uint32())
		y[i] = byte(rng.Uint32())
	}
	x[c.Size-1] |= 0x80
	y[c.Size-1] &^= 0x80
	return x, y
}

func runCase(ctx context.Context, c Case, rounds int, opts []biguint.Option) (Result, error) {
	op := operations[c.Op]
	xb, yb := operands(c)
	x, err := biguint.New(slices.Concat(opts, []biguint.Option{biguint.WithBytes(xb)})...)
	if err != nil {
		return Result{}, err
	}
	defer x.Destroy()
	y, err := x.Scope().New(biguint.WithBytes(yb))
	if err != nil {
		return Result{}, err
	}
	z, err := x.Scope().New(biguint.WithCapacity(1))
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	for r := 0; r < rounds; r++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := op(z, x, y); err != nil {
			return Result{}, err
		}
	}
	return Result{
		Case:      c,
		Rounds:    rounds,
		Total:     time.Since(start),
		PeakBytes: x.Scope().Peak(),
	}, nil
}
