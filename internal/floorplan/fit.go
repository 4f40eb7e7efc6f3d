package floorplan

import (
	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/spatial"
)

// Fit is the placement of a floor plan inside a client viewport
type Fit struct {
	Scale  float64 `json:"scale"`
	Width  float64 `json:"width"`  // Scaled image width
	Height float64 `json:"height"` // Scaled image height
}

// FitTo scales the floor plan to fit a viewport without distortion
func FitTo(fp *models.Floorplan, viewWidth, viewHeight float64) Fit {
	if !fp.IsLoaded() {
		return Fit{}
	}
	scale := spatial.FitScale(float64(fp.Width), float64(fp.Height), viewWidth, viewHeight)
	return Fit{
		Scale:  scale,
		Width:  float64(fp.Width) * scale,
		Height: float64(fp.Height) * scale,
	}
}
