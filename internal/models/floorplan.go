package models

// Floorplan describes the image the trails are drawn on
type Floorplan struct {
	Source string `json:"source"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// IsLoaded reports whether an image has been decoded
func (f *Floorplan) IsLoaded() bool {
	return f != nil && f.Width > 0 && f.Height > 0
}
