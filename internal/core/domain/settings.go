package domain

// SubscriptionPlan is the tier the gym itself subscribes to; it gates which
// feature areas the frontend exposes.
type SubscriptionPlan string

const (
	SubscriptionBasic    SubscriptionPlan = "BASIC"
	SubscriptionStandard SubscriptionPlan = "STANDARD"
	SubscriptionFull     SubscriptionPlan = "FULL"
)

// GymSettings is the single gym-wide configuration record: identity plus the
// membership price catalog. It is loaded explicitly and passed to the
// workflows that need it rather than read from a global.
type GymSettings struct {
	Name    string           `json:"name"`
	LogoURL string           `json:"logoURL"`
	Plan    SubscriptionPlan `json:"plan"`
	Catalog PlanCatalog      `json:"catalog"`
	AuditFields
}
