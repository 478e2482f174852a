package models

// ImportShipment is one scheduled inbound delivery for a chemical.
// Quantities are expressed in the owning chemical's unit.
type ImportShipment struct {
	Quantity         float64 `json:"quantity"`
	EstimatedArrival string  `json:"estimatedArrival,omitempty"`
	Label            string  `json:"label,omitempty"`
}

// Chemical is the persisted record for one tracked chemical.
//
// A nil Imports slice marks the legacy single-import shape; Migrate
// upgrades it to the current multi-import shape. Records that went
// through Migrate always carry a non-nil Imports slice, so the empty
// collection round-trips as [] rather than null.
type Chemical struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category,omitempty"`
	Unit          string           `json:"unit,omitempty"`
	FactoryStock  float64          `json:"factoryStock"`
	LocalPurchase float64          `json:"localPurchase"`
	UsePerDay     float64          `json:"usePerDay"`
	Imports       []ImportShipment `json:"imports"`
	Notes         string           `json:"notes,omitempty"`
	LastUpdated   string           `json:"lastUpdated,omitempty"`

	// Legacy single-import fields, cleared by Migrate.
	LegacyImport    float64 `json:"import,omitempty"`
	LegacyImportETA string  `json:"importEta,omitempty"`
}

// ChemicalPatch carries a partial update. Nil fields are left untouched.
type ChemicalPatch struct {
	Name          *string           `json:"name,omitempty"`
	Category      *string           `json:"category,omitempty"`
	Unit          *string           `json:"unit,omitempty"`
	FactoryStock  *float64          `json:"factoryStock,omitempty"`
	LocalPurchase *float64          `json:"localPurchase,omitempty"`
	UsePerDay     *float64          `json:"usePerDay,omitempty"`
	Imports       *[]ImportShipment `json:"imports,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
}

// PlantConfig holds site-level settings stored alongside the inventory.
type PlantConfig struct {
	Shifts map[string]int `json:"shifts"`
}

// Snapshot is a frozen, dated copy of the full inventory used for
// historical comparison.
type Snapshot struct {
	Date      string      `json:"date"`
	Chemicals []Chemical  `json:"chemicals"`
	Config    PlantConfig `json:"config"`
}

// Document is the full persisted state: one JSON document holding the
// plant configuration, the chemical collection, and its snapshots.
type Document struct {
	Config    PlantConfig `json:"config"`
	Chemicals []Chemical  `json:"chemicals"`
	Snapshots []Snapshot  `json:"snapshots"`
}
