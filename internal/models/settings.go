package models

// GymSettings represents the single gym configuration row. The price catalog
// is a jsonb column mapping plan code to monthly price.
type GymSettings struct {
	ID          int    `db:"id"` // Always 1
	Name        string `db:"name"`
	LogoURL     string `db:"logo_url"`
	Plan        string `db:"plan"`
	CatalogJSON []byte `db:"membership_prices"`
	AuditFields
}
