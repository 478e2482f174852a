package models

import (
	"reflect"
	"testing"
)

func TestMigrateLegacyRecord(t *testing.T) {
	legacy := Chemical{
		ID:              "c1",
		Name:            "Caustic Soda",
		Unit:            "kg",
		FactoryStock:    120,
		UsePerDay:       8,
		LegacyImport:    300,
		LegacyImportETA: "2026-09-15",
	}

	got := Migrate(legacy)

	if got.Unit != "bags" {
		t.Errorf("unit = %q, want bags", got.Unit)
	}
	wantImports := []ImportShipment{{Quantity: 300, EstimatedArrival: "2026-09-15"}}
	if !reflect.DeepEqual(got.Imports, wantImports) {
		t.Errorf("imports = %+v, want %+v", got.Imports, wantImports)
	}
	if got.LegacyImport != 0 || got.LegacyImportETA != "" {
		t.Errorf("legacy fields not cleared: import=%v eta=%q", got.LegacyImport, got.LegacyImportETA)
	}
	if got.FactoryStock != 120 || got.UsePerDay != 8 {
		t.Errorf("quantities changed: stock=%v use=%v", got.FactoryStock, got.UsePerDay)
	}
}

func TestMigrateLegacyWithoutImportQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   Chemical
	}{
		{"no legacy fields", Chemical{Name: "Alum"}},
		{"zero quantity with eta", Chemical{Name: "Alum", LegacyImportETA: "2026-09-15"}},
		{"negative quantity", Chemical{Name: "Alum", LegacyImport: -40}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Migrate(tc.in)
			if got.Imports == nil {
				t.Fatal("imports is nil, want empty collection")
			}
			if len(got.Imports) != 0 {
				t.Errorf("imports = %+v, want empty", got.Imports)
			}
			if got.LegacyImportETA != "" {
				t.Errorf("legacy eta kept: %q", got.LegacyImportETA)
			}
		})
	}
}

func TestMigrateCurrentRecordOnlyNormalizesUnit(t *testing.T) {
	current := Chemical{
		Name:    "Lime",
		Unit:    "kg",
		Imports: []ImportShipment{{Quantity: 50, EstimatedArrival: "2026-10-01", Label: "PO-17"}},
	}

	got := Migrate(current)

	if got.Unit != "bags" {
		t.Errorf("unit = %q, want bags", got.Unit)
	}
	if !reflect.DeepEqual(got.Imports, current.Imports) {
		t.Errorf("imports changed: %+v", got.Imports)
	}
}

func TestMigrateCurrentRecordWithEmptyImports(t *testing.T) {
	current := Chemical{Name: "Lime", Unit: "tons", Imports: []ImportShipment{}}

	got := Migrate(current)

	if got.Unit != "tons" {
		t.Errorf("unit = %q, want tons", got.Unit)
	}
	if got.Imports == nil || len(got.Imports) != 0 {
		t.Errorf("imports = %+v, want empty collection", got.Imports)
	}
}

func TestMigrateUnitNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"kg becomes bags", "kg", "bags"},
		{"padded kg becomes bags", "  kg ", "bags"},
		{"missing unit defaults", "", "bags"},
		{"blank unit defaults", "   ", "bags"},
		{"other units trimmed", " tons ", "tons"},
		{"case sensitive", "Kg", "Kg"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Migrate(Chemical{Name: "x", Unit: tc.in})
			if got.Unit != tc.want {
				t.Errorf("unit = %q, want %q", got.Unit, tc.want)
			}
		})
	}
}

func TestMigrateClampsNegativeQuantities(t *testing.T) {
	got := Migrate(Chemical{Name: "x", FactoryStock: -5, LocalPurchase: -1, UsePerDay: -3})

	if got.FactoryStock != 0 || got.LocalPurchase != 0 || got.UsePerDay != 0 {
		t.Errorf("negative quantities kept: stock=%v local=%v use=%v",
			got.FactoryStock, got.LocalPurchase, got.UsePerDay)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	records := []Chemical{
		{Name: "legacy", Unit: "kg", LegacyImport: 40, LegacyImportETA: "2026-09-01"},
		{Name: "legacy empty", Unit: "kg"},
		{Name: "current", Unit: "bags", Imports: []ImportShipment{{Quantity: 10}}},
		{Name: "current empty", Imports: []ImportShipment{}},
	}

	for _, c := range records {
		t.Run(c.Name, func(t *testing.T) {
			once := Migrate(c)
			twice := Migrate(once)
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("not idempotent:\nonce  %+v\ntwice %+v", once, twice)
			}
		})
	}
}

func TestMigrateAll(t *testing.T) {
	in := []Chemical{
		{Name: "a", Unit: "kg", LegacyImport: 10},
		{Name: "b", Imports: []ImportShipment{}},
	}

	got := MigrateAll(in)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Imports == nil || len(got[0].Imports) != 1 {
		t.Errorf("first record not migrated: %+v", got[0])
	}
	// Input records stay untouched.
	if in[0].Imports != nil {
		t.Errorf("input mutated: %+v", in[0])
	}

	if empty := MigrateAll(nil); len(empty) != 0 || empty == nil {
		t.Errorf("MigrateAll(nil) = %+v, want empty slice", empty)
	}
}
