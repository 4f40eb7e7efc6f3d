package trail

import (
	"github.com/golang/geo/r2"

	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/spatial"
	"github.com/jengzang/igs-backend-go/internal/stats"
)

// Summarize aggregates the trail of a user whose stops have been computed
func Summarize(u *models.User) models.TrailSummary {
	s := models.TrailSummary{Name: u.Name, PointCount: len(u.DataTrail)}
	if len(u.DataTrail) == 0 {
		return s
	}

	s.StartTime = u.DataTrail[0].Time
	s.EndTime = u.DataTrail[len(u.DataTrail)-1].Time
	s.Duration = s.EndTime - s.StartTime

	var positions []r2.Point
	for _, p := range u.DataTrail {
		if p.Speech != "" {
			s.SpeechCount++
		}
		if pos, ok := p.Position(); ok {
			positions = append(positions, pos)
		}
	}

	s.PathLength = spatial.PathLength(positions)
	if bounds := spatial.Bounds(positions); !bounds.IsEmpty() {
		s.MinX, s.MinY = bounds.Lo().X, bounds.Lo().Y
		s.MaxX, s.MaxY = bounds.Hi().X, bounds.Hi().Y
	}

	stops := Stops(u.DataTrail)
	durations := make([]float64, len(stops))
	for i, stop := range stops {
		durations[i] = stop.Duration()
	}
	d := stats.Describe(durations)
	s.StopCount = d.Count
	s.StoppedTime = d.Sum
	s.MedianStopLength = d.Median
	s.LongestStop = d.Max

	return s
}
