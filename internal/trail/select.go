package trail

import (
	"fmt"

	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/spatial"
)

// Select returns the points of the trail matching the filter. Region and
// moving/stopped modes only consider positioned points; slice and none keep
// speech points too. An optional start/end window applies to every mode.
func Select(dataTrail []models.DataPoint, f models.TrailFilter) ([]models.DataPoint, error) {
	mode := f.Select
	if mode == "" {
		mode = models.SelectNone
	}

	var keep func(models.DataPoint) bool
	switch mode {
	case models.SelectNone, models.SelectSlice:
		keep = func(models.DataPoint) bool { return true }
	case models.SelectMoving:
		keep = func(p models.DataPoint) bool { return p.HasPosition() && !p.IsStopped }
	case models.SelectStopped:
		keep = func(p models.DataPoint) bool { return p.HasPosition() && p.IsStopped }
	case models.SelectRegion:
		if f.MinX == nil || f.MinY == nil || f.MaxX == nil || f.MaxY == nil {
			return nil, fmt.Errorf("region selection needs minX, minY, maxX and maxY")
		}
		region := spatial.Region(*f.MinX, *f.MinY, *f.MaxX, *f.MaxY)
		keep = func(p models.DataPoint) bool {
			pos, ok := p.Position()
			return ok && spatial.Contains(region, pos)
		}
	default:
		return nil, fmt.Errorf("unknown selection mode: %s", mode)
	}

	if mode == models.SelectSlice && f.Start == nil && f.End == nil {
		return nil, fmt.Errorf("slice selection needs start or end")
	}

	selected := []models.DataPoint{}
	for _, p := range dataTrail {
		if f.Start != nil && p.Time < *f.Start {
			continue
		}
		if f.End != nil && p.Time > *f.End {
			continue
		}
		if keep(p) {
			selected = append(selected, p)
		}
	}
	return selected, nil
}
