package largeint

import "context"

// pollInterval is the number of inner-loop rounds between context checks in
// the quadratic operations.
const pollInterval = 32

// poller checks a context every pollInterval calls. A nil poller never
// reports cancellation.
type poller struct {
	ctx context.Context
	n   int
}

func newPoller(ctx context.Context) *poller { return &poller{ctx: ctx} }

func (p *poller) poll() error {
	if p == nil {
		return nil
	}
	p.n++
	if p.n%pollInterval != 0 {
		return nil
	}
	return p.ctx.Err()
}

// MulContext is Mul that stops when ctx is done. On cancellation z is left
// unchanged and the context error is returned.
func (z *Int) MulContext(ctx context.Context, y *Int) (*Int, error) {
	if err := ctx.Err(); err != nil {
		return z, err
	}
	return z, z.mul(y, newPoller(ctx))
}

// QuoContext is Quo that stops when ctx is done. On cancellation or a zero
// divisor z is left unchanged.
func (z *Int) QuoContext(ctx context.Context, y *Int) (*Int, error) {
	if y.IsZero() {
		return z, ErrDivideByZero
	}
	if err := ctx.Err(); err != nil {
		return z, err
	}
	neg := z.neg != y.neg
	q, err := z.Clone().divmod(y, newPoller(ctx))
	if err != nil {
		return z, err
	}
	z.Set(q)
	z.neg = neg
	z.clearNegativeZero()
	return z, nil
}

// RemContext is Rem that stops when ctx is done. On cancellation or a zero
// divisor z is left unchanged.
func (z *Int) RemContext(ctx context.Context, y *Int) (*Int, error) {
	if y.IsZero() {
		return z, ErrDivideByZero
	}
	if err := ctx.Err(); err != nil {
		return z, err
	}
	r := z.Clone()
	if _, err := r.divmod(y, newPoller(ctx)); err != nil {
		return z, err
	}
	z.Set(r)
	z.clearNegativeZero()
	return z, nil
}

// DecimalContext is Decimal that stops when ctx is done.
func (x *Int) DecimalContext(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return x.decimal(newPoller(ctx))
}
