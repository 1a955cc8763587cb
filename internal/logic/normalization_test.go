package logic

import (
	"math"
	"testing"

	"github.com/riftlab/archetype-api/internal/models"
)

func TestNormalizeTablePercentiles(t *testing.T) {
	table := map[string]*models.DerivedAttributes{
		"Low":  {SustainedDPS: 100, CCScore: 0.5},
		"Mid":  {SustainedDPS: 200, CCScore: 0.7},
		"High": {SustainedDPS: 300, CCScore: 0.9},
	}
	if err := NormalizeTable(table); err != nil {
		t.Fatalf("NormalizeTable: %v", err)
	}

	approx(t, "Low", table["Low"].SustainedDPS, 0)
	approx(t, "Mid", table["Mid"].SustainedDPS, 0.5)
	approx(t, "High", table["High"].SustainedDPS, 1)

	// cc_score keeps its raw scale.
	approx(t, "Low cc", table["Low"].CCScore, 0.5)
	approx(t, "High cc", table["High"].CCScore, 0.9)

	for id, a := range table {
		for _, f := range models.NormalizedFields {
			v := f.Get(a)
			if v < 0 || v > 1 {
				t.Errorf("%s.%s = %v out of [0,1]", id, f.Name, v)
			}
		}
	}
}

func TestNormalizeTableTiesDeterministic(t *testing.T) {
	build := func() map[string]*models.DerivedAttributes {
		return map[string]*models.DerivedAttributes{
			"Alpha": {SustainedDPS: 100},
			"Beta":  {SustainedDPS: 100},
			"Gamma": {SustainedDPS: 300},
		}
	}
	first := build()
	if err := NormalizeTable(first); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again := build()
		if err := NormalizeTable(again); err != nil {
			t.Fatal(err)
		}
		for id := range first {
			if first[id].SustainedDPS != again[id].SustainedDPS {
				t.Fatalf("run %d: %s rank changed (%v vs %v)",
					i, id, first[id].SustainedDPS, again[id].SustainedDPS)
			}
		}
	}
	// Equal raw values rank by id.
	if first["Alpha"].SustainedDPS >= first["Beta"].SustainedDPS {
		t.Errorf("tied values must rank by id: Alpha=%v Beta=%v",
			first["Alpha"].SustainedDPS, first["Beta"].SustainedDPS)
	}
}

func TestNormalizeTableSingleEntry(t *testing.T) {
	table := map[string]*models.DerivedAttributes{
		"Only": {SustainedDPS: 500},
	}
	if err := NormalizeTable(table); err != nil {
		t.Fatalf("NormalizeTable: %v", err)
	}
	approx(t, "Only", table["Only"].SustainedDPS, 0)
}

func TestNormalizeTableErrors(t *testing.T) {
	if err := NormalizeTable(map[string]*models.DerivedAttributes{}); err == nil {
		t.Error("empty table must fail")
	}
	bad := map[string]*models.DerivedAttributes{
		"Ok":  {SustainedDPS: 1},
		"Bad": {SustainedDPS: math.NaN()},
	}
	err := NormalizeTable(bad)
	if err == nil {
		t.Fatal("NaN must fail")
	}
	inf := map[string]*models.DerivedAttributes{
		"Ok":  {BurstIndex: 1},
		"Bad": {BurstIndex: math.Inf(1)},
	}
	if err := NormalizeTable(inf); err == nil {
		t.Fatal("Inf must fail")
	}
}
