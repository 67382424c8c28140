package seeder

// Fixture is the YAML catalog format loaded by the seed command.
type Fixture struct {
	Parameters []Named        `yaml:"parameters"`
	Categories []Named        `yaml:"categories"`
	Products   []ProductEntry `yaml:"products"`
	Scenes     []SceneEntry   `yaml:"scenes"`
}

type Named struct {
	ID     int    `yaml:"id"`
	NameEN string `yaml:"name_en"`
	NameDE string `yaml:"name_de"`
}

type Localized struct {
	EN string `yaml:"en"`
	DE string `yaml:"de"`
}

type ProductEntry struct {
	Name           string          `yaml:"name"`
	Description    Localized       `yaml:"description"`
	ImageURL       string          `yaml:"image_url"`
	Object3DURL    string          `yaml:"object3d_url"`
	Parameters     []int           `yaml:"parameters"`
	Categories     []int           `yaml:"categories"`
	Specifications []Specification `yaml:"specifications"`
	Features       []Localized     `yaml:"features"`
	Advantages     []Localized     `yaml:"advantages"`
	Installation   *Localized      `yaml:"installation"`
	Datasheet      *Datasheet      `yaml:"datasheet"`
}

type Specification struct {
	Title Localized `yaml:"title"`
	Value Localized `yaml:"value"`
}

type Datasheet struct {
	FileURL string    `yaml:"file_url"`
	Name    Localized `yaml:"name"`
}

type SceneEntry struct {
	ID            int                 `yaml:"id"`
	Name          Localized           `yaml:"name"`
	CameraStart   []float64           `yaml:"camera_start"`
	Products      []string            `yaml:"products"`
	MeasurePoints []MeasurePointEntry `yaml:"measure_points"`
	Placements    []PlacementEntry    `yaml:"placements"`
}

type MeasurePointEntry struct {
	ID         int       `yaml:"id"`
	Name       Localized `yaml:"name"`
	Position   []float64 `yaml:"position"`
	Parameters []int     `yaml:"parameters"`
	Exclusions []string  `yaml:"exclusions"`
}

type PlacementEntry struct {
	URL      string    `yaml:"url"`
	Position []float64 `yaml:"position"`
	Rotation []float64 `yaml:"rotation"`
	Scale    *float64  `yaml:"scale"`
}

// component returns v[i], or nil when the vector is shorter.
func component(v []float64, i int) any {
	if i < len(v) {
		return v[i]
	}
	return nil
}
