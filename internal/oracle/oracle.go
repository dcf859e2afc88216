package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/largeint/internal/largeint"
	"github.com/agbru/largeint/internal/logging"
	"github.com/agbru/largeint/internal/metrics"
)

// Operators exercised by Run.
const (
	OpAdd  = "add"
	OpSub  = "sub"
	OpMul  = "mul"
	OpQuo  = "quo"
	OpRem  = "rem"
	OpShl  = "shl"
	OpShr  = "shr"
	OpAnd  = "and"
	OpOr   = "or"
	OpXor  = "xor"
	OpCmp  = "cmp"
	OpText = "text"
)

// AllOps lists every operator in report order.
var AllOps = []string{OpAdd, OpSub, OpMul, OpQuo, OpRem, OpShl, OpShr, OpAnd, OpOr, OpXor, OpCmp, OpText}

const (
	// DefaultMaxBits bounds the random operand length.
	DefaultMaxBits = 256
	// maxFailures is the number of mismatches kept verbatim in a Report.
	maxFailures = 20
	// zeroDivisorOdds makes roughly one division case in this many use a
	// zero divisor.
	zeroDivisorOdds = 16
)

// Config controls a verification run.
type Config struct {
	// Iterations is the number of cases per operator.
	Iterations int
	// Workers is the number of concurrent goroutines. Values below 1 mean 1.
	Workers int
	// Seed makes the operand sequence reproducible for a given worker count.
	Seed int64
	// MaxBits bounds operand length. Zero selects DefaultMaxBits.
	MaxBits int
	// Ops restricts the run to a subset of AllOps. Empty means all.
	Ops []string
	// Reference is the implementation checked against. Nil means math/big.
	Reference Reference
	// OnMismatch, if set, is called for each mismatch. It may be called
	// concurrently.
	OnMismatch func(op string)
	// Logger receives one warning per mismatch. Nil discards them.
	Logger logging.Logger
}

// Update reports the fraction of its cases a worker has completed.
type Update struct {
	WorkerIndex int
	Value       float64
}

// OpStats counts cases and mismatches for one operator.
type OpStats struct {
	Op         string
	Cases      int
	Mismatches int
}

// Mismatch records one disagreement. Operands and results are in decimal.
type Mismatch struct {
	Op   string
	A, B string
	Got  string
	Want string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s(%s, %s) = %s, want %s", m.Op, m.A, m.B, m.Got, m.Want)
}

// Report summarizes a run. After cancellation it covers the cases that
// completed.
type Report struct {
	Seed       int64
	Reference  string
	Workers    int
	MaxBits    int
	Ops        []OpStats
	Cases      int
	Mismatches int
	Failures   []Mismatch
	Duration   time.Duration
	Memory     metrics.MemoryDelta
}

// OK reports whether every case agreed with the reference.
func (r Report) OK() bool { return r.Mismatches == 0 }

// Run checks largeint against the reference on random operands. Progress
// updates are sent on progress if it is non-nil; Run never closes it.
// Cancelling ctx stops the workers and returns the partial report together
// with the context error.
func Run(ctx context.Context, cfg Config, progress chan<- Update) (Report, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxBits <= 0 {
		cfg.MaxBits = DefaultMaxBits
	}
	if cfg.Reference == nil {
		cfg.Reference = BigReference{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop{}
	}
	ops := cfg.Ops
	if len(ops) == 0 {
		ops = AllOps
	}
	for _, op := range ops {
		if !isKnownOp(op) {
			return Report{}, fmt.Errorf("oracle: unknown operator %q", op)
		}
	}

	// Case g (0 <= g < total) exercises ops[g / Iterations] and is run by
	// worker g % Workers.
	total := cfg.Iterations * len(ops)
	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	start := time.Now()

	var (
		mu       sync.Mutex
		stats    = make(map[string]*OpStats, len(ops))
		failures []Mismatch
		cases    int
		bad      int
	)
	for _, op := range ops {
		stats[op] = &OpStats{Op: op}
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		g.Go(func() error {
			wk := worker{
				cfg: cfg,
				rng: rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(w))),
			}
			local := make(map[string]*OpStats, len(ops))
			var localFailures []Mismatch
			defer func() {
				mu.Lock()
				defer mu.Unlock()
				for op, s := range local {
					stats[op].Cases += s.Cases
					stats[op].Mismatches += s.Mismatches
					cases += s.Cases
					bad += s.Mismatches
				}
				for _, f := range localFailures {
					if len(failures) < maxFailures {
						failures = append(failures, f)
					}
				}
			}()

			mine := 0
			for gi := w; gi < total; gi += cfg.Workers {
				mine++
			}
			step := max(1, mine/100)
			done := 0
			for gi := w; gi < total; gi += cfg.Workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				op := ops[gi/cfg.Iterations]
				s := local[op]
				if s == nil {
					s = &OpStats{Op: op}
					local[op] = s
				}
				s.Cases++
				if m, ok := wk.check(op); !ok {
					s.Mismatches++
					localFailures = append(localFailures, m)
					cfg.Logger.Warn("largeint disagrees with reference",
						logging.String("op", m.Op),
						logging.String("a", m.A),
						logging.String("b", m.B),
						logging.String("got", m.Got),
						logging.String("want", m.Want))
					if cfg.OnMismatch != nil {
						cfg.OnMismatch(op)
					}
				}
				done++
				if progress != nil && (done%step == 0 || done == mine) {
					select {
					case progress <- Update{WorkerIndex: w, Value: float64(done) / float64(mine)}:
					case <-gctx.Done():
						return gctx.Err()
					}
				}
			}
			return nil
		})
	}
	err := g.Wait()

	report := Report{
		Seed:       cfg.Seed,
		Reference:  cfg.Reference.Name(),
		Workers:    cfg.Workers,
		MaxBits:    cfg.MaxBits,
		Cases:      cases,
		Mismatches: bad,
		Failures:   failures,
		Duration:   time.Since(start),
		Memory:     mem.Snapshot().Delta(before),
	}
	for _, op := range ops {
		report.Ops = append(report.Ops, *stats[op])
	}
	return report, err
}

func isKnownOp(op string) bool {
	for _, known := range AllOps {
		if op == known {
			return true
		}
	}
	return false
}

type worker struct {
	cfg Config
	rng *rand.Rand
}

// operand returns a random value of up to MaxBits bits with a random sign.
// Small and zero values are over-represented.
func (w *worker) operand() *big.Int {
	var n int
	switch w.rng.IntN(8) {
	case 0:
		n = w.rng.IntN(3) // 0, 1 or 2 bits
	case 1:
		n = 60 + w.rng.IntN(8) // around the native word size
	default:
		n = 1 + w.rng.IntN(w.cfg.MaxBits)
	}
	n = min(n, w.cfg.MaxBits)
	x := new(big.Int)
	for i := 0; i < n; i++ {
		if w.rng.IntN(2) == 1 {
			x.SetBit(x, i, 1)
		}
	}
	if w.rng.IntN(2) == 1 {
		x.Neg(x)
	}
	return x
}

func toLarge(x *big.Int) *largeint.Int {
	z, err := largeint.Parse(x.Text(2))
	if err != nil {
		panic(fmt.Sprintf("oracle: cannot convert %s: %v", x, err))
	}
	return z
}

func toBig(x *largeint.Int) (*big.Int, bool) {
	return new(big.Int).SetString(x.String(), 2)
}

// withSignOf applies a non-negative reference result to the sign of a,
// matching the sign-magnitude bitwise semantics of largeint.
func withSignOf(a, mag *big.Int) *big.Int {
	if a.Sign() < 0 {
		return mag.Neg(mag)
	}
	return mag
}

// check runs one random case of op and reports whether largeint agreed.
func (w *worker) check(op string) (Mismatch, bool) {
	a, b := w.operand(), w.operand()
	ref := w.cfg.Reference
	x, y := toLarge(a), toLarge(b)

	m := Mismatch{Op: op, A: a.String(), B: b.String()}
	var got *largeint.Int
	var want *big.Int

	switch op {
	case OpAdd:
		got, want = largeint.Sum(x, y), ref.Binary(op, a, b)
	case OpSub:
		got, want = largeint.Difference(x, y), ref.Binary(op, a, b)
	case OpMul:
		got, want = largeint.Product(x, y), ref.Binary(op, a, b)

	case OpQuo, OpRem:
		if w.rng.IntN(zeroDivisorOdds) == 0 {
			b.SetInt64(0)
			y = largeint.Zero()
			m.B = "0"
		}
		var err error
		if op == OpQuo {
			got, err = largeint.Quotient(x, y)
		} else {
			got, err = largeint.Remainder(x, y)
		}
		if b.Sign() == 0 {
			if !errors.Is(err, largeint.ErrDivideByZero) {
				m.Got, m.Want = fmt.Sprintf("error %v", err), "ErrDivideByZero"
				return m, false
			}
			return m, true
		}
		if err != nil {
			m.Got, m.Want = "error "+err.Error(), ref.Binary(op, a, b).String()
			return m, false
		}
		want = ref.Binary(op, a, b)

	case OpShl, OpShr:
		k := uint(w.rng.IntN(2*w.cfg.MaxBits + 1))
		m.B = fmt.Sprint(k)
		if op == OpShl {
			got = largeint.ShiftLeft(x, int(k))
		} else {
			got = largeint.ShiftRight(x, int(k))
		}
		want = withSignOf(a, ref.Shift(op, new(big.Int).Abs(a), k))

	case OpAnd, OpOr, OpXor:
		switch op {
		case OpAnd:
			got = largeint.BitAnd(x, y)
		case OpOr:
			got = largeint.BitOr(x, y)
		default:
			got = largeint.BitXor(x, y)
		}
		want = withSignOf(a, ref.Binary(op, new(big.Int).Abs(a), new(big.Int).Abs(b)))

	case OpCmp:
		c := a.Cmp(b)
		ok := x.Cmp(y) == c &&
			x.Less(y) == (c < 0) && x.LessEqual(y) == (c <= 0) &&
			x.Greater(y) == (c > 0) && x.GreaterEqual(y) == (c >= 0) &&
			x.Equal(y) == (c == 0) && x.NotEqual(y) == (c != 0)
		if !ok {
			m.Got, m.Want = fmt.Sprint(x.Cmp(y)), fmt.Sprint(c)
		}
		return m, ok

	case OpText:
		dec := x.Decimal()
		back, err := largeint.ParseDecimal(dec)
		if dec != a.String() || err != nil || !back.Equal(x) {
			m.Got, m.Want = dec, a.String()
			return m, false
		}
		return m, true
	}

	gotBig, ok := toBig(got)
	if !ok || gotBig.Cmp(want) != 0 || (got.IsZero() && got.Negative()) {
		m.Got, m.Want = got.Decimal(), want.String()
		return m, false
	}
	return m, true
}
