package lcg

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(2847)
	b := New(2847)
	for i := 0; i < 1000; i++ {
		if av, bv := a.Int31n(100), b.Int31n(100); av != bv {
			t.Fatalf("draw %d diverged: %d != %d", i, av, bv)
		}
	}
}

func TestSeedResetsSequence(t *testing.T) {
	s := New(42)
	first := make([]int32, 100)
	for i := range first {
		first[i] = s.Int31n(1000)
	}
	s.Seed(42)
	for i := range first {
		if v := s.Int31n(1000); v != first[i] {
			t.Fatalf("draw %d after reseed: got %d, want %d", i, v, first[i])
		}
	}
}

func TestInt31nBounds(t *testing.T) {
	tests := []struct {
		name  string
		bound int32
	}{
		{"small", 3},
		{"powerOfTwo", 64},
		{"nonPowerOfTwo", 100},
		{"large", 1 << 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(7)
			for i := 0; i < 10000; i++ {
				v := s.Int31n(tt.bound)
				if v < 0 || v >= tt.bound {
					t.Fatalf("draw %d out of [0, %d): %d", i, tt.bound, v)
				}
			}
		})
	}
}

func TestInt31nPanicsOnNonPositiveBound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for bound 0")
		}
	}()
	New(1).Int31n(0)
}

func TestFloat32Range(t *testing.T) {
	s := New(99)
	for i := 0; i < 10000; i++ {
		f := s.Float32()
		if f < 0 || f >= 1 {
			t.Fatalf("draw %d out of [0, 1): %v", i, f)
		}
	}
}

func TestUint64nBounds(t *testing.T) {
	s := New(123)
	const bound = int64(6000)
	seenLow, seenHigh := false, false
	for i := 0; i < 100000; i++ {
		v := s.Uint64n(bound)
		if v < 0 || v >= bound {
			t.Fatalf("draw %d out of [0, %d): %d", i, bound, v)
		}
		if v < 10 {
			seenLow = true
		}
		if v >= bound-10 {
			seenHigh = true
		}
	}
	if !seenLow || !seenHigh {
		t.Errorf("draws did not cover the range: low=%v high=%v", seenLow, seenHigh)
	}
}
