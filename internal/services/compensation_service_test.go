package services

import "testing"

func TestComputeEarnings(t *testing.T) {
	b := ComputeEarnings(100, 5, 500, 50000)

	if b.EntriesEarnings != 50000 {
		t.Errorf("EntriesEarnings = %d, want 50000", b.EntriesEarnings)
	}
	if b.BonusEarnings != 250000 {
		t.Errorf("BonusEarnings = %d, want 250000", b.BonusEarnings)
	}
	if b.TotalEarnings != 300000 {
		t.Errorf("TotalEarnings = %d, want 300000", b.TotalEarnings)
	}
}

func TestComputeEarnings_zeroCounts(t *testing.T) {
	b := ComputeEarnings(0, 0, 500, 50000)
	if b.TotalEarnings != 0 || b.EntriesEarnings != 0 || b.BonusEarnings != 0 {
		t.Errorf("breakdown = %+v, want all zero", b)
	}
}

func TestComputeEarnings_zeroRates(t *testing.T) {
	b := ComputeEarnings(1000, 30, 0, 0)
	if b.TotalEarnings != 0 {
		t.Errorf("TotalEarnings = %d, want 0", b.TotalEarnings)
	}
}

func TestLevelFor_bandBoundaries(t *testing.T) {
	cases := []struct {
		entries int
		want    string
	}{
		{0, "Beginner"},
		{99, "Beginner"},
		{100, "Bronze"},
		{499, "Bronze"},
		{500, "Silver"},
		{999, "Silver"},
		{1000, "Gold"},
		{4999, "Gold"},
		{5000, "Diamond"},
		{250000, "Diamond"},
	}
	for _, tc := range cases {
		if got := LevelFor(tc.entries); got != tc.want {
			t.Errorf("LevelFor(%d) = %q, want %q", tc.entries, got, tc.want)
		}
	}
}
