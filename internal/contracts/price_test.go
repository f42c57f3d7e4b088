package contracts

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceSeries_Closes(t *testing.T) {
	s := PriceSeries{
		Symbol: "AAPL",
		Bars: []PriceBar{
			{Time: day(2), Open: 100, High: 102, Low: 99, Close: 101, Volume: 1000},
			{Time: day(3), Open: 101, High: 104, Low: 100, Close: 103, Volume: 1200},
			{Time: day(4), Open: 103, High: 103, Low: 98, Close: 99, Volume: 900},
		},
	}

	closes := s.Closes()
	if len(closes) != s.Len() {
		t.Fatalf("Closes() length = %d, want %d", len(closes), s.Len())
	}

	want := []float64{101, 103, 99}
	for i, v := range want {
		if closes[i] != v {
			t.Errorf("Closes()[%d] = %v, want %v", i, closes[i], v)
		}
	}
}

func TestPriceSeries_Last(t *testing.T) {
	empty := PriceSeries{Symbol: "AAPL"}
	if _, ok := empty.Last(); ok {
		t.Error("Last() on empty series should report ok=false")
	}
	if !empty.Empty() {
		t.Error("Empty() should be true for series without bars")
	}

	s := PriceSeries{
		Symbol: "AAPL",
		Bars: []PriceBar{
			{Time: day(2), Close: 101},
			{Time: day(3), Close: 103},
		},
	}

	last, ok := s.Last()
	if !ok {
		t.Fatal("Last() should report ok=true")
	}
	if last.Close != 103 {
		t.Errorf("Last().Close = %v, want 103", last.Close)
	}
}

func TestPriceSeries_PriceRange(t *testing.T) {
	s := PriceSeries{
		Symbol: "AAPL",
		Bars: []PriceBar{
			{Time: day(2), High: 102, Low: 99},
			{Time: day(3), High: 110, Low: 101},
			{Time: day(4), High: 104, Low: 95},
		},
	}

	lo, hi, ok := s.PriceRange()
	if !ok {
		t.Fatal("PriceRange() should report ok=true")
	}
	if lo != 95 || hi != 110 {
		t.Errorf("PriceRange() = (%v, %v), want (95, 110)", lo, hi)
	}

	empty := PriceSeries{}
	if _, _, ok := empty.PriceRange(); ok {
		t.Error("PriceRange() on empty series should report ok=false")
	}
}

func TestPriceBar_Up(t *testing.T) {
	up := PriceBar{Open: 100, Close: 101}
	if !up.Up() {
		t.Error("bar closing above open should be up")
	}

	flat := PriceBar{Open: 100, Close: 100}
	if !flat.Up() {
		t.Error("flat bar should count as up")
	}

	down := PriceBar{Open: 100, Close: 99}
	if down.Up() {
		t.Error("bar closing below open should not be up")
	}
}
