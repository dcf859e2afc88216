// Package oracle cross-checks largeint against an independent big-integer
// implementation on random operands.
//
// Each operator is exercised Config.Iterations times by a pool of workers.
// Every worker draws operands from its own PCG stream seeded with
// (Config.Seed, worker index), so a run is reproducible for a given seed and
// worker count. Bitwise operators and shifts are checked with the
// sign-magnitude semantics of largeint: the reference computes on absolute
// values and the sign of the left operand is applied afterwards.
//
// The default reference is math/big. Building with the gmp tag adds a
// reference backed by GMP through github.com/ncw/gmp.
package oracle
