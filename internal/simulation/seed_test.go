package simulation

import "testing"

func TestDeriveSeed_DistinctPerWorker(t *testing.T) {
	t.Parallel()
	for _, base := range []uint64{0, 1, 42, 1 << 63} {
		seen := make(map[uint64]int)
		for w := 0; w < 1024; w++ {
			s := DeriveSeed(base, w)
			if prev, ok := seen[s]; ok {
				t.Fatalf("base %d: workers %d and %d share seed %d", base, prev, w, s)
			}
			seen[s] = w
		}
	}
}

func TestDeriveSeed_Deterministic(t *testing.T) {
	t.Parallel()
	if DeriveSeed(7, 3) != DeriveSeed(7, 3) {
		t.Error("DeriveSeed must be a pure function of its inputs")
	}
}

func TestRandomSeed_NonZero(t *testing.T) {
	t.Parallel()
	for i := 0; i < 100; i++ {
		if RandomSeed() == 0 {
			t.Fatal("RandomSeed returned 0")
		}
	}
}
