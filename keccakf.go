package keccak

import "math/bits"

// rounds is the number of rounds of Keccak-f[1600].
const rounds = 24

// rc holds the 24 round constants, XORed into lane (0,0) by the iota step.
var rc = [rounds]uint64{
	0x0000000000000001, 0x0000000000008082,
	0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088,
	0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B,
	0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080,
	0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080,
	0x0000000080000001, 0x8000000080008008,
}

// rotc holds the rho rotation offsets and piln the pi lane ordering,
// both following the cycle that starts at lane (1,0). Lane (0,0) is a
// fixed point of pi with rotation 0 and is not listed.
var rotc = [24]int{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

var piln = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

// keccakF1600 applies the Keccak-f[1600] permutation to the 25-lane
// state in place. Lanes are indexed a[x+5*y] for column x, row y.
func keccakF1600(a *[25]uint64) {
	var bc [5]uint64
	for round := 0; round < rounds; round++ {
		// theta
		for i := 0; i < 5; i++ {
			bc[i] = a[i] ^ a[i+5] ^ a[i+10] ^ a[i+15] ^ a[i+20]
		}
		for i := 0; i < 5; i++ {
			t := bc[(i+4)%5] ^ bits.RotateLeft64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				a[j+i] ^= t
			}
		}

		// rho and pi, fused: walk the pi cycle once, rotating each
		// lane as it moves.
		t := a[1]
		for i := 0; i < 24; i++ {
			j := piln[i]
			t, a[j] = a[j], bits.RotateLeft64(t, rotc[i])
		}

		// chi
		for j := 0; j < 25; j += 5 {
			for i := 0; i < 5; i++ {
				bc[i] = a[j+i]
			}
			for i := 0; i < 5; i++ {
				a[j+i] = bc[i] ^ (^bc[(i+1)%5] & bc[(i+2)%5])
			}
		}

		// iota
		a[0] ^= rc[round]
	}
}
