package simulation

import "math/rand/v2"

// pcgStream decorrelates the second PCG seed word from the first.
const pcgStream = 0xda3e39cb94b95bdb

// DeriveSeed returns the seed for worker i of a run started from base.
// Distinct workers receive well-mixed, distinct seeds.
func DeriveSeed(base uint64, worker int) uint64 {
	return mix64(base + uint64(worker+1)*0x9e3779b97f4a7c15)
}

// RandomSeed returns a non-zero seed from the runtime's random source.
func RandomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
