package folio

import (
	"testing"
	"time"
)

func TestComputeSectorAllocation(t *testing.T) {
	table := NewTable()
	table.append(NewHolding("AAPL", "Apple", "Tech", Q(7.0), USD(100.0), time.Now()))
	table.append(NewHolding("BA", "Boeing", "Industrials", Q(3.0), USD(100.0), time.Now()))

	got := ComputeSectorAllocation(table)
	if len(got) != 2 {
		t.Fatalf("got %d sectors, want 2", len(got))
	}
	if got[0].Sector != "Tech" || !got[0].Value.Equal(USD(700.0)) || !got[0].Part.Equal(70) {
		t.Errorf("got[0] = %s/%s/%s, want Tech/$700.00/70.00%%", got[0].Sector, got[0].Value, got[0].Part)
	}
	if got[1].Sector != "Industrials" || !got[1].Value.Equal(USD(300.0)) || !got[1].Part.Equal(30) {
		t.Errorf("got[1] = %s/%s/%s, want Industrials/$300.00/30.00%%", got[1].Sector, got[1].Value, got[1].Part)
	}
}

func TestComputeSectorAllocation_PercentagesSumTo100(t *testing.T) {
	table := NewTable()
	table.append(NewHolding("AAPL", "Apple", "Tech", Q(1.0), USD(33.33), time.Now()))
	table.append(NewHolding("BA", "Boeing", "Industrials", Q(1.0), USD(33.33), time.Now()))
	table.append(NewHolding("OXY", "Occidental", "Energy", Q(1.0), USD(33.34), time.Now()))

	var sum float64
	for _, a := range ComputeSectorAllocation(table) {
		sum += float64(a.Part)
	}
	if sum < 99.99 || sum > 100.01 {
		t.Errorf("percentages sum to %.4f, want 100.00 +-0.01", sum)
	}
}

func TestComputeSectorAllocation_ZeroTotal(t *testing.T) {
	table := NewTable()
	table.append(NewHolding("AAPL", "Apple", "Tech", Q(7.0), USD(0.0), time.Time{}))
	table.append(NewHolding("BA", "Boeing", "Industrials", Q(3.0), USD(0.0), time.Time{}))

	for _, a := range ComputeSectorAllocation(table) {
		if !a.Part.Equal(0) {
			t.Errorf("sector %q Part = %s, want 0.00%% when total is zero", a.Sector, a.Part)
		}
	}
}

func TestComputeSectorAllocation_Empty(t *testing.T) {
	if got := ComputeSectorAllocation(NewTable()); len(got) != 0 {
		t.Errorf("empty table allocation = %v, want empty", got)
	}
}

func TestComputeSectorAllocation_DeterministicTieBreak(t *testing.T) {
	table := NewTable()
	table.append(NewHolding("B", "b", "Zeta", Q(1.0), USD(50.0), time.Now()))
	table.append(NewHolding("A", "a", "Alpha", Q(1.0), USD(50.0), time.Now()))

	got := ComputeSectorAllocation(table)
	if got[0].Sector != "Alpha" || got[1].Sector != "Zeta" {
		t.Errorf("tie not broken by sector name ascending: %q then %q", got[0].Sector, got[1].Sector)
	}
}

func TestComputeSectorAllocation_GroupsDuplicateSectors(t *testing.T) {
	table := NewTable()
	table.append(NewHolding("AAPL", "Apple", "Tech", Q(1.0), USD(60.0), time.Now()))
	table.append(NewHolding("NVDA", "NVIDIA", "Tech", Q(1.0), USD(20.0), time.Now()))
	table.append(NewHolding("BA", "Boeing", "Industrials", Q(1.0), USD(20.0), time.Now()))

	got := ComputeSectorAllocation(table)
	if len(got) != 2 {
		t.Fatalf("got %d sectors, want 2", len(got))
	}
	if got[0].Sector != "Tech" || !got[0].Value.Equal(USD(80.0)) || !got[0].Part.Equal(80) {
		t.Errorf("got[0] = %s/%s/%s, want Tech/$80.00/80.00%%", got[0].Sector, got[0].Value, got[0].Part)
	}
}
