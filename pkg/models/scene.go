package models

// Scene is a showroom scene. JSON names follow the catalog columns the viewer consumes.
type Scene struct {
	ID           int      `json:"Id"`
	NameEN       string   `json:"Name_EN"`
	NameDE       string   `json:"Name_DE"`
	CameraStartX *float64 `json:"CameraStartX"`
	CameraStartY *float64 `json:"CameraStartY"`
	CameraStartZ *float64 `json:"CameraStartZ"`
}

// MeasurePoint is a labeled location within exactly one scene.
type MeasurePoint struct {
	ID        int      `json:"Id"`
	SceneID   int      `json:"Scene_Id"`
	NameEN    string   `json:"Name_EN"`
	NameDE    string   `json:"Name_DE"`
	SpacePosX *float64 `json:"SpacePosX"`
	SpacePosY *float64 `json:"SpacePosY"`
	SpacePosZ *float64 `json:"SpacePosZ"`
}

type MeasureParameter struct {
	ID     int    `json:"Id"`
	NameEN string `json:"Name_EN"`
	NameDE string `json:"Name_DE"`
}

// SceneDescriptor is the assembled, render-ready view of a scene.
type SceneDescriptor struct {
	Scene         Scene           `json:"scene"`
	MeasurePoints []MeasurePoint  `json:"measurePoints"`
	StaticObjects []PlacementView `json:"staticObjects"`
}
