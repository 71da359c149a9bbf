package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/biguint/internal/biguint"
	apperrors "github.com/agbru/biguint/internal/errors"
	"github.com/agbru/biguint/internal/logging"
)

// TracerName identifies the spans emitted by the evaluator.
const TracerName = "github.com/agbru/biguint/internal/cli"

// ErrEmptyCommand is returned by Exec for a blank line.
var ErrEmptyCommand = errors.New("empty command")

// Result is the outcome of one evaluated command. Bytes holds a copy of the
// produced or inspected value, so a Result stays valid after the variable is
// freed.
type Result struct {
	// Command is the command keyword ("add", "show", ...).
	Command string
	// Name is the variable written or inspected, empty for commands without one.
	Name string
	// Bytes is the little-endian value, nil when the command yields no value.
	Bytes []byte
	// Text is the scalar answer of predicates and bookkeeping commands.
	Text string
	// Duration is the time spent evaluating the command.
	Duration time.Duration
}

// HasValue reports whether the result carries a value.
func (r Result) HasValue() bool { return r.Bytes != nil }

// EvaluatorConfig holds the settings shared by every value an Evaluator creates.
type EvaluatorConfig struct {
	// EngineOptions are applied to every new variable and literal.
	EngineOptions []biguint.Option
	// Trim normalizes every value written by a command.
	Trim bool
	// Logger receives one debug entry per command. Nil disables logging.
	Logger logging.Logger
}

// Evaluator runs calculator commands against an environment of named values.
// Every variable owns its own scope, so freeing one never affects another.
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	config EvaluatorConfig
	vars   map[string]*biguint.Uint
	tracer trace.Tracer
	logger logging.Logger
}

// NewEvaluator creates an Evaluator with an empty environment.
func NewEvaluator(config EvaluatorConfig) *Evaluator {
	logger := config.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Evaluator{
		config: config,
		vars:   make(map[string]*biguint.Uint),
		tracer: otel.Tracer(TracerName),
		logger: logger,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Command table
// ─────────────────────────────────────────────────────────────────────────────

type command struct {
	args  int
	usage string
	help  string
	run   func(e *Evaluator, args []string) (Result, error)
}

var commands = map[string]command{
	"let":  {2, "let <name> <value>", "Assign a literal or a variable's value", (*Evaluator).let},
	"add":  {3, "add <dst> <a> <b>", "dst = a + b", binary((*biguint.Uint).Add)},
	"sub":  {3, "sub <dst> <a> <b>", "dst = a - b (fails on underflow)", binary((*biguint.Uint).Sub)},
	"and":  {3, "and <dst> <a> <b>", "dst = a AND b", binary((*biguint.Uint).And)},
	"or":   {3, "or <dst> <a> <b>", "dst = a OR b", binary((*biguint.Uint).Or)},
	"xor":  {3, "xor <dst> <a> <b>", "dst = a XOR b", binary((*biguint.Uint).Xor)},
	"mul":  {3, "mul <dst> <a> <b>", "dst = a * b (untrimmed)", binary((*biguint.Uint).Mul)},
	"shr":  {3, "shr <dst> <a> <bits>", "dst = a >> bits", (*Evaluator).shr},
	"shl":  {3, "shl <dst> <a> <bits>", "dst = a << bits", (*Evaluator).shl},
	"sqrt": {2, "sqrt <dst> <a>", "dst = floor(sqrt(a))", (*Evaluator).sqrt},
	"copy": {2, "copy <dst> <src>", "dst = independent copy of src", (*Evaluator).copyVar},
	"trim": {1, "trim <name>", "Drop high zero bytes", (*Evaluator).trim},
	"zero": {1, "zero <a>", "Test whether a is zero", (*Evaluator).zero},
	"eq":   {2, "eq <a> <b>", "Test a == b", (*Evaluator).eq},
	"cmp":  {2, "cmp <a> <b>", "Compare a and b (-1, 0, 1)", (*Evaluator).cmp},
	"bits": {1, "bits <a>", "Bit length of a", (*Evaluator).bits},
	"show": {1, "show <a>", "Display a value", (*Evaluator).show},
	"free": {1, "free <name>", "Release a variable", (*Evaluator).free},
	"vars": {0, "vars", "List variables", (*Evaluator).listVars},
	"save": {1, "save <file>", "Save all variables to a session file", (*Evaluator).save},
	"load": {1, "load <file>", "Load variables from a session file", (*Evaluator).load},
}

// CommandNames returns the evaluator's command keywords, sorted.
func CommandNames() []string {
	return slices.Sorted(maps.Keys(commands))
}

// CommandUsage returns the usage line and description of a command.
func CommandUsage(name string) (usage, help string, ok bool) {
	c, ok := commands[name]
	return c.usage, c.help, ok
}

// Exec parses and evaluates a single command line.
//
// Parameters:
//   - ctx: Evaluation is skipped when ctx is already done.
//   - line: A command such as "mul c 0x05 0x06".
//
// Returns:
//   - Result: The command outcome.
//   - error: ErrEmptyCommand, a ValidationError for malformed input, or the
//     engine error of the failed operation.
func (e *Evaluator) Exec(ctx context.Context, line string) (Result, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Result{}, ErrEmptyCommand
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	_, span := e.tracer.Start(ctx, "biguint."+name,
		trace.WithAttributes(attribute.String("biguint.command", line)))
	defer span.End()

	start := time.Now()
	res, err := e.dispatch(name, args)
	res.Command = name
	res.Duration = time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Debug("command failed", logging.String("command", name), logging.Err(err))
		return res, err
	}
	if res.HasValue() {
		span.SetAttributes(attribute.Int("biguint.result.bytes", len(res.Bytes)))
	}
	e.logger.Debug("command evaluated",
		logging.String("command", name),
		logging.String("name", res.Name),
		logging.Float64("duration_ms", float64(res.Duration.Microseconds())/1000))
	return res, nil
}

func (e *Evaluator) dispatch(name string, args []string) (Result, error) {
	c, ok := commands[name]
	if !ok {
		return Result{}, apperrors.ValidationError{Field: "command", Message: fmt.Sprintf("unknown command %q", name)}
	}
	if len(args) != c.args {
		return Result{}, apperrors.ValidationError{Field: name, Message: "usage: " + c.usage}
	}
	return c.run(e, args)
}

// Names returns the defined variable names, sorted.
func (e *Evaluator) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// Lookup returns the value bound to name.
func (e *Evaluator) Lookup(name string) (*biguint.Uint, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Close releases every variable.
func (e *Evaluator) Close() error {
	var errs []error
	for name, v := range e.vars {
		if err := v.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		delete(e.vars, name)
	}
	return errors.Join(errs...)
}

// ─────────────────────────────────────────────────────────────────────────────
// Operand resolution
// ─────────────────────────────────────────────────────────────────────────────

func validName(s string) bool {
	if s == "" || IsHexLiteral(s) {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// operand resolves a variable name or a literal. Literals live in a scope of
// their own that release tears down.
func (e *Evaluator) operand(tok string) (v *biguint.Uint, release func(), err error) {
	if IsHexLiteral(tok) {
		b, err := ParseHex(tok)
		if err != nil {
			return nil, nil, err
		}
		v, err := biguint.New(e.options(biguint.WithBytes(b))...)
		if err != nil {
			return nil, nil, err
		}
		return v, func() { _ = v.Destroy() }, nil
	}
	v, ok := e.vars[tok]
	if !ok {
		return nil, nil, apperrors.ValidationError{Field: tok, Message: "undefined variable"}
	}
	return v, func() {}, nil
}

func (e *Evaluator) operands(toks ...string) ([]*biguint.Uint, func(), error) {
	vs := make([]*biguint.Uint, 0, len(toks))
	var releases []func()
	release := func() {
		for _, r := range releases {
			r()
		}
	}
	for _, tok := range toks {
		v, r, err := e.operand(tok)
		if err != nil {
			release()
			return nil, nil, err
		}
		vs = append(vs, v)
		releases = append(releases, r)
	}
	return vs, release, nil
}

func (e *Evaluator) options(extra ...biguint.Option) []biguint.Option {
	return append(slices.Clone(e.config.EngineOptions), extra...)
}

// assign runs f with the destination bound to name, creating the variable
// when it does not exist yet. A new variable is only kept when f succeeds.
func (e *Evaluator) assign(name string, f func(z *biguint.Uint) error) (Result, error) {
	if !validName(name) {
		return Result{}, apperrors.ValidationError{Field: name, Message: "invalid variable name"}
	}
	z, exists := e.vars[name]
	if !exists {
		var err error
		if z, err = biguint.New(e.options()...); err != nil {
			return Result{}, err
		}
	}
	if err := f(z); err != nil {
		if !exists {
			_ = z.Destroy()
		}
		return Result{}, err
	}
	e.vars[name] = z
	if e.config.Trim {
		z.Trim()
	}
	return Result{Name: name, Bytes: z.Bytes()}, nil
}

func (e *Evaluator) variable(name string) (*biguint.Uint, error) {
	v, ok := e.vars[name]
	if !ok {
		return nil, apperrors.ValidationError{Field: name, Message: "undefined variable"}
	}
	return v, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────────────────────────────────────

func binary(op func(z, x, y *biguint.Uint) error) func(*Evaluator, []string) (Result, error) {
	return func(e *Evaluator, args []string) (Result, error) {
		ops, release, err := e.operands(args[1], args[2])
		if err != nil {
			return Result{}, err
		}
		defer release()
		return e.assign(args[0], func(z *biguint.Uint) error { return op(z, ops[0], ops[1]) })
	}
}

func (e *Evaluator) let(args []string) (Result, error) {
	ops, release, err := e.operands(args[1])
	if err != nil {
		return Result{}, err
	}
	defer release()
	return e.assign(args[0], func(z *biguint.Uint) error { return z.Set(ops[0]) })
}

func (e *Evaluator) sqrt(args []string) (Result, error) {
	ops, release, err := e.operands(args[1])
	if err != nil {
		return Result{}, err
	}
	defer release()
	return e.assign(args[0], func(z *biguint.Uint) error { return z.Sqrt(ops[0]) })
}

// parseCount reads a decimal bit count. ok is false when tok is not decimal,
// in which case it names a value.
func parseCount(tok string) (n uint64, ok bool, err error) {
	if IsHexLiteral(tok) || strings.IndexFunc(tok, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, false, nil
	}
	n, err = strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, true, apperrors.WrapError(apperrors.ErrShiftOverflow, "bit count %s", tok)
	}
	return n, true, nil
}

func (e *Evaluator) shr(args []string) (Result, error) {
	n, decimal, err := parseCount(args[2])
	if err != nil {
		return Result{}, err
	}
	names := []string{args[1]}
	if !decimal {
		names = append(names, args[2])
	}
	ops, release, err := e.operands(names...)
	if err != nil {
		return Result{}, err
	}
	defer release()
	return e.assign(args[0], func(z *biguint.Uint) error {
		if decimal {
			return z.Shr(ops[0], n)
		}
		return z.ShrBy(ops[0], ops[1])
	})
}

func (e *Evaluator) shl(args []string) (Result, error) {
	n, decimal, err := parseCount(args[2])
	if err != nil {
		return Result{}, err
	}
	names := []string{args[1]}
	if !decimal {
		names = append(names, args[2])
	}
	ops, release, err := e.operands(names...)
	if err != nil {
		return Result{}, err
	}
	defer release()
	if !decimal {
		if n, err = ops[1].Uint64(); err != nil {
			if errors.Is(err, apperrors.ErrOverflow) {
				return Result{}, apperrors.OperationError{Op: "shl", Cause: apperrors.ErrShiftOverflow}
			}
			return Result{}, err
		}
	}
	return e.assign(args[0], func(z *biguint.Uint) error { return z.Shl(ops[0], n) })
}

func (e *Evaluator) copyVar(args []string) (Result, error) {
	if !validName(args[0]) {
		return Result{}, apperrors.ValidationError{Field: args[0], Message: "invalid variable name"}
	}
	src, err := e.variable(args[1])
	if err != nil {
		return Result{}, err
	}
	c, err := src.Copy()
	if err != nil {
		return Result{}, err
	}
	if old, ok := e.vars[args[0]]; ok {
		_ = old.Destroy()
	}
	e.vars[args[0]] = c
	return Result{Name: args[0], Bytes: c.Bytes()}, nil
}

func (e *Evaluator) trim(args []string) (Result, error) {
	v, err := e.variable(args[0])
	if err != nil {
		return Result{}, err
	}
	v.Trim()
	return Result{Name: args[0], Bytes: v.Bytes()}, nil
}

// inspect resolves the operands of a read-only command and applies f.
func (e *Evaluator) inspect(args []string, f func(ops []*biguint.Uint) string) (Result, error) {
	ops, release, err := e.operands(args...)
	if err != nil {
		return Result{}, err
	}
	defer release()
	return Result{Text: f(ops)}, nil
}

func (e *Evaluator) zero(args []string) (Result, error) {
	return e.inspect(args, func(ops []*biguint.Uint) string {
		return strconv.FormatBool(ops[0].IsZero())
	})
}

func (e *Evaluator) eq(args []string) (Result, error) {
	return e.inspect(args, func(ops []*biguint.Uint) string {
		return strconv.FormatBool(ops[0].Equals(ops[1]))
	})
}

func (e *Evaluator) cmp(args []string) (Result, error) {
	return e.inspect(args, func(ops []*biguint.Uint) string {
		return strconv.Itoa(ops[0].Cmp(ops[1]))
	})
}

func (e *Evaluator) bits(args []string) (Result, error) {
	return e.inspect(args, func(ops []*biguint.Uint) string {
		return strconv.Itoa(ops[0].BitLen())
	})
}

func (e *Evaluator) show(args []string) (Result, error) {
	ops, release, err := e.operands(args[0])
	if err != nil {
		return Result{}, err
	}
	defer release()
	return Result{Name: args[0], Bytes: ops[0].Bytes()}, nil
}

func (e *Evaluator) free(args []string) (Result, error) {
	v, err := e.variable(args[0])
	if err != nil {
		return Result{}, err
	}
	delete(e.vars, args[0])
	if err := v.Destroy(); err != nil {
		return Result{}, err
	}
	return Result{Name: args[0], Text: "freed"}, nil
}

func (e *Evaluator) listVars([]string) (Result, error) {
	names := e.Names()
	if len(names) == 0 {
		return Result{Text: "(no variables)"}, nil
	}
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%s = %s", name, e.vars[name])
	}
	return Result{Text: strings.Join(lines, "\n")}, nil
}
