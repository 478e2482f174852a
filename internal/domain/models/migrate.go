package models

import "strings"

// DefaultUnit is assumed when a record carries no unit at all.
const DefaultUnit = "bags"

// Migrate upgrades a chemical record from the legacy single-import
// shape to the current multi-import shape. A record that already has
// an Imports collection (even empty) is considered current and only
// gets its unit normalized. The operation is idempotent.
func Migrate(c Chemical) Chemical {
	c.Unit = normalizeUnit(c.Unit)
	c.FactoryStock = clampQuantity(c.FactoryStock)
	c.LocalPurchase = clampQuantity(c.LocalPurchase)
	c.UsePerDay = clampQuantity(c.UsePerDay)

	if c.Imports != nil {
		return c
	}

	imports := make([]ImportShipment, 0, 1)
	if c.LegacyImport > 0 {
		imports = append(imports, ImportShipment{
			Quantity:         c.LegacyImport,
			EstimatedArrival: c.LegacyImportETA,
		})
	}

	c.Imports = imports
	c.LegacyImport = 0
	c.LegacyImportETA = ""
	return c
}

// MigrateAll applies Migrate to every record, returning a fresh slice.
func MigrateAll(chemicals []Chemical) []Chemical {
	migrated := make([]Chemical, 0, len(chemicals))
	for _, c := range chemicals {
		migrated = append(migrated, Migrate(c))
	}
	return migrated
}

// normalizeUnit maps the retired "kg" unit onto bags and falls back to
// the default when the unit is missing entirely.
func normalizeUnit(unit string) string {
	trimmed := strings.TrimSpace(unit)
	if trimmed == "" {
		return DefaultUnit
	}
	if trimmed == "kg" {
		return DefaultUnit
	}
	return trimmed
}

func clampQuantity(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
