package dto

// StreamDataPickGeneration is the payload fanned out per sport on the pick
// generation stream.
type StreamDataPickGeneration struct {
	Sport    string `json:"sport"`
	League   string `json:"league"`
	MaxPicks int    `json:"max_picks"`
}

// StreamDataPropResult is the payload fanned out per pending prop on the prop
// results stream.
type StreamDataPropResult struct {
	PropPickID uint `json:"prop_pick_id"`
}
