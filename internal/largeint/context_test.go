package largeint

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func TestContextOpsMatchPlainOps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	values := []int64{-1 << 40, -1000, -17, -5, -1, 0, 1, 3, 17, 255, 1 << 33}
	for _, a := range values {
		for _, b := range values {
			x, y := New(a), New(b)

			got, err := x.Clone().MulContext(ctx, y)
			if err != nil || !got.Equal(Product(x, y)) {
				t.Errorf("MulContext(%d, %d) = %s, %v", a, b, got, err)
			}
			checkInvariants(t, got)

			if b == 0 {
				if _, err := x.Clone().QuoContext(ctx, y); !errors.Is(err, ErrDivideByZero) {
					t.Errorf("QuoContext(%d, 0): err = %v", a, err)
				}
				if _, err := x.Clone().RemContext(ctx, y); !errors.Is(err, ErrDivideByZero) {
					t.Errorf("RemContext(%d, 0): err = %v", a, err)
				}
				continue
			}
			q, err := x.Clone().QuoContext(ctx, y)
			want, _ := Quotient(x, y)
			if err != nil || !q.Equal(want) {
				t.Errorf("QuoContext(%d, %d) = %s, %v", a, b, q, err)
			}
			r, err := x.Clone().RemContext(ctx, y)
			want, _ = Remainder(x, y)
			if err != nil || !r.Equal(want) {
				t.Errorf("RemContext(%d, %d) = %s, %v", a, b, r, err)
			}
			checkInvariants(t, q)
			checkInvariants(t, r)
		}

		dec, err := New(a).DecimalContext(ctx)
		if err != nil || dec != New(a).Decimal() {
			t.Errorf("DecimalContext(%d) = %q, %v", a, dec, err)
		}
	}

	self := New(-13)
	if _, err := self.RemContext(ctx, self); err != nil || !self.IsZero() || self.Negative() {
		t.Errorf("z %%= z = %s, %v", self, err)
	}
}

func TestContextOpsStopOnCancel(t *testing.T) {
	t.Parallel()

	big := ShiftLeft(New(1), 60000).Dec()
	eleven := New(11)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	x := big.Clone()
	_, err := x.QuoContext(ctx, eleven)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("QuoContext err = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("QuoContext took %v after a 50ms deadline", elapsed)
	}
	if !x.Equal(big) {
		t.Error("cancelled QuoContext modified the receiver")
	}

	done, stop := context.WithCancel(context.Background())
	stop()
	if _, err := x.MulContext(done, big); !errors.Is(err, context.Canceled) {
		t.Errorf("MulContext err = %v, want canceled", err)
	}
	if _, err := x.RemContext(done, eleven); !errors.Is(err, context.Canceled) {
		t.Errorf("RemContext err = %v, want canceled", err)
	}
	if _, err := x.DecimalContext(done); !errors.Is(err, context.Canceled) {
		t.Errorf("DecimalContext err = %v, want canceled", err)
	}
	if !x.Equal(big) {
		t.Error("cancelled operations modified the receiver")
	}
}

func TestShiftCountOverflow(t *testing.T) {
	t.Parallel()

	if got := Zero().Rsh(math.MinInt); !got.IsZero() {
		t.Errorf("0 >> MinInt = %s", got)
	}
	if got := New(5).Lsh(math.MinInt); !got.IsZero() {
		t.Errorf("5 << MinInt = %s, want 0", got)
	}

	for name, shift := range map[string]func(*Int){
		"Rsh(MinInt)": func(x *Int) { x.Rsh(math.MinInt) },
		"Lsh(MaxInt)": func(x *Int) { x.Lsh(math.MaxInt) },
	} {
		func() {
			defer func() {
				if r := recover(); r != errShiftOverflow {
					t.Errorf("%s of 5: recovered %v, want %v", name, r, errShiftOverflow)
				}
			}()
			shift(New(5))
		}()
	}
}
