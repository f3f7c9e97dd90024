// Package engine provides a seeded, replayable random engine built on the
// Mersenne Twister, with position tracking for save/restore: an engine's
// observable state is fully determined by its seed and the number of
// generator words consumed.
package engine

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/nathoo/twistrand/types"
)

// Engine is a deterministic random engine. For a fixed seed and a fixed
// sequence of calls, every result and the final consumption count are
// reproducible. An engine has one logical owner; concurrent use without
// external synchronization is undefined.
type Engine struct {
	seed  int32
	gen   *mt19937
	count uint32
}

// New creates an engine seeded with the given value.
func New(seed int32) *Engine {
	return &Engine{
		seed: seed,
		gen:  newMT(uint32(seed)),
	}
}

// NewRandom creates an engine seeded from hardware entropy.
// The resulting engine is still fully deterministic for its seed.
func NewRandom() *Engine {
	return New(NewSeed())
}

// RootSeed returns the immutable seed the engine was constructed with.
func (e *Engine) RootSeed() int32 {
	return e.seed
}

// State returns the number of generator words consumed since the last reset.
func (e *Engine) State() uint32 {
	return e.count
}

// word draws one raw 32-bit word and counts it.
func (e *Engine) word() uint32 {
	e.count++
	return e.gen.next()
}

// float01 returns a uniform value in [0, 1). Used for probability
// comparisons, where 1.0 must be excluded so that p=1 always hits.
func (e *Engine) float01() float64 {
	return float64(e.word()) / (1 << 32)
}

// RandInt returns a uniform integer in [min, max] inclusive.
// The result is implementation-defined if min > max. Consumes 1 unit.
func (e *Engine) RandInt(min, max int32) int32 {
	w := e.word()
	if min >= max {
		return min
	}
	// Fixed one-word multiply-shift mapping keeps unit accounting exact.
	span := uint64(int64(max) - int64(min) + 1)
	return int32(int64(min) + int64((uint64(w)*span)>>32))
}

// RandFloat returns a uniform float in [min, max] inclusive. Consumes 1 unit.
func (e *Engine) RandFloat(min, max float64) float64 {
	u := float64(e.word()) / (1<<32 - 1)
	return min + u*(max-min)
}

// RandBool returns true with the given probability, clamped to [0, 1].
// Consumes 1 unit.
func (e *Engine) RandBool(probability float64) bool {
	p := clamp01(probability)
	return e.float01() < p
}

// Reset restores the engine to the state produced by its original seed
// and zeroes the consumption count.
func (e *Engine) Reset() {
	e.gen.reseed(uint32(e.seed))
	e.count = 0
}

// Advance consumes n words without producing usable output.
func (e *Engine) Advance(n uint32) {
	e.gen.discard(n)
	e.count += n
}

// Discard is an alias for Advance.
func (e *Engine) Discard(n uint32) {
	e.Advance(n)
}

// JumpToState moves the engine to the given consumption count. Jumping
// forward advances; jumping backward resets and replays from the seed.
func (e *Engine) JumpToState(target uint32) {
	switch {
	case target == e.count:
		// Already there.
	case target > e.count:
		e.Advance(target - e.count)
	default:
		e.Reset()
		e.Advance(target)
	}
}

// NewSeed draws a seed from hardware entropy, falling back to the wall
// clock if the entropy source fails.
func NewSeed() int32 {
	var buf [4]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return int32(time.Now().UnixNano())
	}
	return int32(binary.BigEndian.Uint32(buf[:]))
}

// OneShotInt draws a single integer from a freshly seeded engine.
// Not reproducible across calls; consumes no shared state.
func OneShotInt(min, max int32) int32 {
	return New(NewSeed()).RandInt(min, max)
}

// OneShotFloat draws a single float from a freshly seeded engine.
func OneShotFloat(min, max float64) float64 {
	return New(NewSeed()).RandFloat(min, max)
}

// NewGUID assembles a 128-bit identifier from four independent words of a
// freshly seeded engine.
func NewGUID() types.GUID {
	e := New(NewSeed())
	return types.GUID{A: e.word(), B: e.word(), C: e.word(), D: e.word()}
}

// QuickInt returns an integer in [min, max] from the runtime's shared
// generator. Lower-guarantee path: no seeding, no determinism contract.
func QuickInt(min, max int32) int32 {
	if min >= max {
		return min
	}
	return min + int32(rand.Int64N(int64(max)-int64(min)+1))
}

// QuickFloat returns a float in [min, max] from the runtime's shared generator.
func QuickFloat(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

// QuickBool returns true with the given probability using the runtime's
// shared generator.
func QuickBool(probability float64) bool {
	return rand.Float64() < clamp01(probability)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
