package identifier

import "testing"

func mustSpace(t *testing.T, bits int) Space {
	t.Helper()
	sp, err := NewSpace(bits)
	if err != nil {
		t.Fatalf("NewSpace(%d): %v", bits, err)
	}
	return sp
}

func TestInOpenClosed(t *testing.T) {
	sp := mustSpace(t, 5) // ring of size 32

	tests := []struct {
		name    string
		a, b, x uint64
		want    bool
	}{
		{"linear inside", 3, 14, 10, true},
		{"linear at lower bound excluded", 3, 14, 3, false},
		{"linear at upper bound included", 3, 14, 14, true},
		{"linear outside", 3, 14, 20, false},
		{"wrap inside high", 27, 3, 30, true},
		{"wrap inside low", 27, 3, 1, true},
		{"wrap at upper bound included", 27, 3, 3, true},
		{"wrap at lower bound excluded", 27, 3, 27, false},
		{"wrap outside", 27, 3, 10, false},
		{"whole ring when a==b", 5, 5, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, x := sp.FromUint64(tt.a), sp.FromUint64(tt.b), sp.FromUint64(tt.x)
			if got := x.InOpenClosed(a, b); got != tt.want {
				t.Errorf("InOpenClosed(%d,%d,%d) = %v, want %v", tt.a, tt.b, tt.x, got, tt.want)
			}
		})
	}
}

func TestInClosedOpen(t *testing.T) {
	sp := mustSpace(t, 5)
	a, b := sp.FromUint64(3), sp.FromUint64(14)
	if !sp.FromUint64(3).InClosedOpen(a, b) {
		t.Error("lower bound should be included")
	}
	if sp.FromUint64(14).InClosedOpen(a, b) {
		t.Error("upper bound should be excluded")
	}
}

func TestInClosed(t *testing.T) {
	sp := mustSpace(t, 5)
	a, b := sp.FromUint64(3), sp.FromUint64(14)
	if !sp.FromUint64(3).InClosed(a, b) || !sp.FromUint64(14).InClosed(a, b) {
		t.Error("both bounds should be included")
	}
	if sp.FromUint64(20).InClosed(a, b) {
		t.Error("outside value should not be included")
	}
}

func TestFingerStart(t *testing.T) {
	sp := mustSpace(t, 5)
	self := sp.FromUint64(1)
	for i, want := range []uint64{2, 3, 5, 9, 17} {
		got := sp.FingerStart(self, i)
		if got.Cmp(sp.FromUint64(want)) != 0 {
			t.Errorf("FingerStart(1, %d) = %s, want %d", i, got, want)
		}
	}
}

func TestHashStringDeterministic(t *testing.T) {
	sp := mustSpace(t, 160)
	a := sp.HashString("hello")
	b := sp.HashString("hello")
	if !a.Equal(b) {
		t.Error("hashing the same string twice should produce the same ID")
	}
	if sp.HashString("hello").Equal(sp.HashString("world")) {
		t.Error("different strings should (almost certainly) hash differently")
	}
}

func TestHashStringIsLittleEndianReduction(t *testing.T) {
	// sha256("apple") begins 3a 7b ...; read as a little-endian integer,
	// its low-order bytes are the leading digest bytes.
	sp := mustSpace(t, 16)
	if got := sp.HashString("apple"); got.String() != "7b3a" {
		t.Errorf("HashString(apple) at 16 bits = %s, want 7b3a", got)
	}
	sp = mustSpace(t, 8)
	if got := sp.HashString("apple"); got.String() != "3a" {
		t.Errorf("HashString(apple) at 8 bits = %s, want 3a", got)
	}
}

func TestFromHexStringRoundTrip(t *testing.T) {
	sp := mustSpace(t, 13)
	id, err := sp.FromHexString("0x1fff")
	if err != nil {
		t.Fatalf("FromHexString: %v", err)
	}
	if id.String() != "1fff" {
		t.Errorf("got %s, want 1fff", id)
	}
	if _, err := sp.FromHexString("0xffff"); err == nil {
		t.Error("expected error for value exceeding 13-bit space")
	}
}

// Every interval predicate must agree with the literal "walk clockwise
// from a and see whether you reach x at or before b" definition; the
// ring is small enough to check every (a, b, x) triple.
func TestIntervalPredicatesMatchClockwiseWalk(t *testing.T) {
	sp := mustSpace(t, 4)
	const m = uint64(16)
	walk := func(a, b, x uint64) bool {
		steps := (b - a + m) % m
		for s := uint64(0); s <= steps; s++ {
			if (a+s)%m == x {
				return true
			}
		}
		return false
	}
	for a := uint64(0); a < m; a++ {
		for b := uint64(0); b < m; b++ {
			for x := uint64(0); x < m; x++ {
				ia, ib, ix := sp.FromUint64(a), sp.FromUint64(b), sp.FromUint64(x)
				if a == b {
					// Degenerate interval: the half-open variants cover
					// the whole ring, InClosed only the single point.
					if !ix.InOpenClosed(ia, ib) || !ix.InClosedOpen(ia, ib) {
						t.Fatalf("(%d,%d] and [%d,%d) should cover the ring, rejected %d", a, b, a, b, x)
					}
					if got := ix.InClosed(ia, ib); got != (x == a) {
						t.Fatalf("InClosed(%d,%d,%d) = %v", a, b, x, got)
					}
					continue
				}
				want := walk(a, b, x)
				if got := ix.InClosed(ia, ib); got != want {
					t.Fatalf("InClosed(%d,%d,%d) = %v, want %v", a, b, x, got, want)
				}
				if got := ix.InOpenClosed(ia, ib); got != (want && x != a) {
					t.Fatalf("InOpenClosed(%d,%d,%d) = %v", a, b, x, got)
				}
				if got := ix.InClosedOpen(ia, ib); got != (want && x != b) {
					t.Fatalf("InClosedOpen(%d,%d,%d) = %v", a, b, x, got)
				}
			}
		}
	}
}
