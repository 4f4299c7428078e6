package keccak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPermuteZeroState checks keccak-f[1600] of the all-zero state
// against the reference intermediate values published with the Keccak
// submission (first row of the permuted state).
func TestPermuteZeroState(t *testing.T) {
	var a [25]uint64
	keccakF1600(&a)

	want := [5]uint64{
		0xF1258F7940E1DDE7,
		0x84D5CCF933C0478A,
		0xD598261EA65AA9EE,
		0xBD1547306F80494D,
		0x8B284E056253D057,
	}
	for i, w := range want {
		require.Equalf(t, w, a[i], "lane %d after permuting zero state", i)
	}
}

// TestRhoPiTables rebuilds the fused rho/pi walk symbolically and
// checks it against the defining formulas: lane (x,y) moves to
// (y, 2x+3y mod 5), rotated by the triangular-number offsets generated
// from the (1,0) starting position.
func TestRhoPiTables(t *testing.T) {
	// Rotation offsets per lane, from the definition.
	var rho [25]int
	x, y := 1, 0
	for step := 0; step < 24; step++ {
		rho[x+5*y] = (step + 1) * (step + 2) / 2 % 64
		x, y = y, (2*x+3*y)%5
	}

	// Run the fused loop on symbolic lanes carrying (source, rotation).
	type lane struct{ src, rot int }
	var a [25]lane
	for i := range a {
		a[i] = lane{src: i}
	}
	cur := a[1]
	for i := 0; i < 24; i++ {
		j := piln[i]
		cur, a[j] = a[j], lane{cur.src, (cur.rot + rotc[i]) % 64}
	}

	for sy := 0; sy < 5; sy++ {
		for sx := 0; sx < 5; sx++ {
			src := sx + 5*sy
			dst := sy + 5*((2*sx+3*sy)%5)
			assert.Equalf(t, lane{src, rho[src]}, a[dst],
				"lane (%d,%d) -> index %d", sx, sy, dst)
		}
	}
}

// TestRoundConstants regenerates the iota constants from the LFSR in
// the Keccak specification and compares them with the rc table.
func TestRoundConstants(t *testing.T) {
	rcBit := func(tm int) uint64 {
		var r uint16 = 1
		for i := 0; i < tm%255; i++ {
			r <<= 1
			if r&0x100 != 0 {
				r ^= 0x171 // x^8 + x^6 + x^5 + x^4 + 1
			}
		}
		return uint64(r & 1)
	}

	for round := 0; round < rounds; round++ {
		var want uint64
		for j := 0; j <= 6; j++ {
			want |= rcBit(7*round+j) << ((1 << j) - 1)
		}
		assert.Equalf(t, want, rc[round], "round constant %d", round)
	}
}

// The permutation must actually depend on the round constants: without
// iota every round maps the zero state to itself.
func TestPermuteBreaksZeroFixedPoint(t *testing.T) {
	var a [25]uint64
	keccakF1600(&a)
	require.NotEqual(t, [25]uint64{}, a)

	b := a
	keccakF1600(&b)
	require.NotEqual(t, a, b, "second application changed nothing")
}

func BenchmarkKeccakF1600(b *testing.B) {
	var a [25]uint64
	b.SetBytes(stateSize)
	for i := 0; i < b.N; i++ {
		keccakF1600(&a)
	}
}
