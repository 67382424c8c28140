package models

// Tier names the level of the fallback chain that produced a resolution.
type Tier string

const (
	// TierNone means no tier produced candidates, or the measure point does not exist.
	TierNone      Tier = "none"
	TierParameter Tier = "parameter"
	TierScene     Tier = "scene"
	TierCatalog   Tier = "catalog"
)

// Resolution is the ordered candidate list for a measure point plus the tier that fired.
type Resolution struct {
	MeasurePointID int       `json:"measurePointId"`
	Tier           Tier      `json:"tier"`
	Products       []Product `json:"products"`
}
