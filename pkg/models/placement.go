package models

// DefaultPlacementURL is the object shown when a scene has no usable placement data.
const DefaultPlacementURL = "neuelinie.glb"

// StaticPlacement is a persisted placement row. Every numeric column may be null.
type StaticPlacement struct {
	SceneID   int
	URL       string
	XPosition *float64
	YPosition *float64
	ZPosition *float64
	XRotation *float64
	YRotation *float64
	ZRotation *float64
	Scale     *float64
}

type Vector3 [3]float64

// PlacementView is the render-ready shape of a placement.
type PlacementView struct {
	ID       string  `json:"id"`
	URL      string  `json:"url"`
	Position Vector3 `json:"position"`
	Rotation Vector3 `json:"rotation"`
	Scale    Vector3 `json:"scale"`
}

// DefaultPlacement is the synthetic placement substituted for missing placement data.
func DefaultPlacement(url string) StaticPlacement {
	if url == "" {
		url = DefaultPlacementURL
	}
	zero, one := 0.0, 1.0
	return StaticPlacement{
		URL:       url,
		XPosition: &zero,
		YPosition: &zero,
		ZPosition: &zero,
		XRotation: &zero,
		YRotation: &zero,
		ZRotation: &zero,
		Scale:     &one,
	}
}

// View normalizes the placement: missing coordinates become 0 and the scalar
// scale is broadcast to three equal components. A missing or zero scale is 1.
func (p StaticPlacement) View() PlacementView {
	scale := orDefault(p.Scale, 1)
	if scale == 0 {
		scale = 1
	}
	return PlacementView{
		ID:       p.URL,
		URL:      p.URL,
		Position: Vector3{orDefault(p.XPosition, 0), orDefault(p.YPosition, 0), orDefault(p.ZPosition, 0)},
		Rotation: Vector3{orDefault(p.XRotation, 0), orDefault(p.YRotation, 0), orDefault(p.ZRotation, 0)},
		Scale:    Vector3{scale, scale, scale},
	}
}

func orDefault(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
