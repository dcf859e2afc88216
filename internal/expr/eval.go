package expr

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/largeint/internal/errors"
	"github.com/agbru/largeint/internal/largeint"
)

const (
	tracerName = "github.com/agbru/largeint/internal/expr"

	// lastResult names the variable holding the previous result.
	lastResult = "_"

	// maxShiftBits bounds the length of a shift count.
	maxShiftBits = 62

	// workPerBit scales the bit limit into the default work limit.
	workPerBit = 1 << 12
)

var (
	// ErrShiftTooLarge is the cause of the CalculationError returned for left
	// shifts whose count does not fit in an int.
	ErrShiftTooLarge = errors.New("expr: shift count too large")

	// ErrWorkLimit is the cause of the CalculationError returned for a
	// multiplication or division whose operands are too long for the work
	// limit.
	ErrWorkLimit = errors.New("expr: operands exceed the work limit")
)

// Observer is notified once per operator or function applied during an
// evaluation. It is called synchronously and must be cheap.
type Observer func(op string)

// Env holds variables and evaluation settings. It is safe for concurrent
// use; evaluations are serialized.
type Env struct {
	mu       sync.Mutex
	vars     map[string]*largeint.Int
	last     *largeint.Int
	maxBits  int
	work     int64
	observer Observer
	tracer   trace.Tracer
}

// Option configures an Env.
type Option func(*Env)

// WithMaxBits rejects any intermediate value longer than n bits. Zero
// disables the limit.
func WithMaxBits(n int) Option {
	return func(e *Env) { e.maxBits = n }
}

// WithWorkLimit bounds the cost of a single *, / or %, measured as the
// product of the operand lengths in bits. Zero derives the limit from
// WithMaxBits; a negative value disables it.
func WithWorkLimit(n int64) Option {
	return func(e *Env) { e.work = n }
}

// WithObserver installs a per-operation callback.
func WithObserver(fn Observer) Option {
	return func(e *Env) { e.observer = fn }
}

// WithTracerProvider selects the OpenTelemetry provider used for evaluation
// spans. The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Env) { e.tracer = tp.Tracer(tracerName) }
}

// NewEnv creates an empty environment.
func NewEnv(opts ...Option) *Env {
	e := &Env{vars: make(map[string]*largeint.Int)}
	for _, opt := range opts {
		opt(e)
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}
	if e.work == 0 && e.maxBits > 0 {
		e.work = int64(e.maxBits) * workPerBit
	}
	return e
}

// Result is the outcome of one evaluation.
type Result struct {
	// Value is the computed value. It is owned by the caller.
	Value *largeint.Int
	// Assigned is the variable name for assignments, empty otherwise.
	Assigned string
	// Ops is the number of operators and functions applied.
	Ops int
	// Duration is the wall time spent evaluating, parsing included.
	Duration time.Duration
}

// Eval parses and evaluates input. Assignments store the value under their
// name; every successful evaluation also updates "_". Multiplication and
// division stop when ctx is done, and an evaluation that outlives ctx
// returns the context error.
func (e *Env) Eval(ctx context.Context, input string) (Result, error) {
	ctx, span := e.tracer.Start(ctx, "expr.Eval",
		trace.WithAttributes(attribute.Int("expr.length", len(input))))
	defer span.End()

	start := time.Now()
	res, err := e.eval(ctx, input)
	res.Duration = time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	span.SetAttributes(
		attribute.Int("result.bits", res.Value.BitLen()),
		attribute.Int("expr.ops", res.Ops),
	)
	return res, nil
}

func (e *Env) eval(ctx context.Context, input string) (Result, error) {
	stmt, err := parse(input)
	if err != nil {
		return Result{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ev := &evaluator{ctx: ctx, env: e}
	target := stmt
	a, assign := stmt.(assignStmt)
	if assign {
		target = a.x
	}
	v, err := ev.eval(target)
	if err == nil {
		// Work that finished past the deadline is discarded, not stored.
		err = ctx.Err()
	}
	if err != nil {
		return Result{}, err
	}

	res := Result{Value: v}
	if assign {
		e.vars[a.name] = v.Clone()
		res.Assigned = a.name
	}
	e.last = v.Clone()
	res.Ops = ev.ops
	return res, nil
}

// Set binds name to a copy of v.
func (e *Env) Set(name string, v *largeint.Int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars[name] = v.Clone()
}

// Get returns a copy of the value bound to name.
func (e *Env) Get(name string) (*largeint.Int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if name == lastResult {
		if e.last == nil {
			return nil, false
		}
		return e.last.Clone(), true
	}
	v, ok := e.vars[name]
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// Delete removes a variable and reports whether it existed.
func (e *Env) Delete(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.vars[name]
	delete(e.vars, name)
	return ok
}

// Names returns the defined variable names in sorted order.
func (e *Env) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset removes every variable and the last result.
func (e *Env) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars = make(map[string]*largeint.Int)
	e.last = nil
}

type evaluator struct {
	ctx context.Context
	env *Env
	ops int
}

func (ev *evaluator) observe(op string) {
	ev.ops++
	if ev.env.observer != nil {
		ev.env.observer(op)
	}
}

// checkWork enforces the work limit for an operation costing cost bit steps.
func (ev *evaluator) checkWork(cost int64) error {
	if limit := ev.env.work; limit > 0 && cost > limit {
		return apperrors.CalculationError{Cause: fmt.Errorf("%w: %d bit steps, limit %d", ErrWorkLimit, cost, limit)}
	}
	return nil
}

// checkSize enforces the bit limit on a freshly computed value.
func (ev *evaluator) checkSize(v *largeint.Int) error {
	if limit := ev.env.maxBits; limit > 0 && v.BitLen() > limit {
		return apperrors.SizeError{Bits: v.BitLen(), Limit: limit}
	}
	return nil
}

func (ev *evaluator) eval(n node) (*largeint.Int, error) {
	if err := ev.ctx.Err(); err != nil {
		return nil, err
	}
	switch n := n.(type) {
	case numberLit:
		v := n.value.Clone()
		return v, ev.checkSize(v)

	case varRef:
		if n.name == lastResult {
			if ev.env.last == nil {
				return nil, apperrors.ValidationError{Field: n.name, Message: "no previous result"}
			}
			return ev.env.last.Clone(), nil
		}
		v, ok := ev.env.vars[n.name]
		if !ok {
			return nil, apperrors.ValidationError{Field: n.name, Message: "undefined variable"}
		}
		return v.Clone(), nil

	case unaryExpr:
		x, err := ev.eval(n.x)
		if err != nil {
			return nil, err
		}
		if n.op == "-" {
			ev.observe("neg")
			x.Complement()
		}
		return x, nil

	case binaryExpr:
		return ev.evalBinary(n)

	case callExpr:
		args := make([]*largeint.Int, len(n.args))
		for i, a := range n.args {
			v, err := ev.eval(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		ev.observe(n.name)
		v := builtins[n.name].fn(args)
		return v, ev.checkSize(v)
	}
	return nil, fmt.Errorf("expr: unknown node %T", n)
}

// opNames maps operator symbols to the names reported to observers.
var opNames = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "quo", "%": "rem",
	"<<": "shl", ">>": "shr", "&": "and", "|": "or", "^": "xor",
	"==": "eq", "!=": "ne", "<": "lt", "<=": "le", ">": "gt", ">=": "ge",
}

func (ev *evaluator) evalBinary(n binaryExpr) (*largeint.Int, error) {
	x, err := ev.eval(n.x)
	if err != nil {
		return nil, err
	}
	y, err := ev.eval(n.y)
	if err != nil {
		return nil, err
	}
	ev.observe(opNames[n.op])

	switch n.op {
	case "+":
		x.Add(y)
	case "-":
		x.Sub(y)
	case "*":
		if limit := ev.env.maxBits; limit > 0 && !x.IsZero() && !y.IsZero() && x.BitLen()+y.BitLen()-1 > limit {
			return nil, apperrors.SizeError{Bits: x.BitLen() + y.BitLen() - 1, Limit: limit}
		}
		if err := ev.checkWork(int64(x.BitLen()) * int64(y.BitLen())); err != nil {
			return nil, err
		}
		if _, err := x.MulContext(ev.ctx, y); err != nil {
			return nil, err
		}
	case "/", "%":
		if steps := x.BitLen() - y.BitLen() + 1; steps > 0 {
			if err := ev.checkWork(int64(x.BitLen()) * int64(steps)); err != nil {
				return nil, err
			}
		}
		if n.op == "/" {
			_, err = x.QuoContext(ev.ctx, y)
		} else {
			_, err = x.RemContext(ev.ctx, y)
		}
		if err != nil {
			if errors.Is(err, largeint.ErrDivideByZero) {
				ev.observe("divide_by_zero")
				return nil, apperrors.CalculationError{Cause: err}
			}
			return nil, err
		}
	case "<<", ">>":
		left := (n.op == "<<") != y.Negative()
		if y.BitLen() > maxShiftBits {
			if left && !x.IsZero() {
				return nil, apperrors.CalculationError{Cause: ErrShiftTooLarge}
			}
			return x.Truncate(0), nil
		}
		k := y.Int()
		if n.op == ">>" {
			k = -k
		}
		if limit := ev.env.maxBits; limit > 0 && k > 0 && !x.IsZero() && x.BitLen()+k > limit {
			return nil, apperrors.SizeError{Bits: x.BitLen() + k, Limit: limit}
		}
		x.Lsh(k)
	case "&":
		x.And(y)
	case "|":
		x.Or(y)
	case "^":
		x.Xor(y)
	case "==":
		return boolValue(x.Equal(y)), nil
	case "!=":
		return boolValue(x.NotEqual(y)), nil
	case "<":
		return boolValue(x.Less(y)), nil
	case "<=":
		return boolValue(x.LessEqual(y)), nil
	case ">":
		return boolValue(x.Greater(y)), nil
	case ">=":
		return boolValue(x.GreaterEqual(y)), nil
	default:
		return nil, fmt.Errorf("expr: unknown operator %q", n.op)
	}
	return x, ev.checkSize(x)
}
