package trail

import "github.com/jengzang/igs-backend-go/internal/models"

// DefaultMinStopLength is the minimum dwell, in trail time units, for a run
// of identical positions to count as a stop
const DefaultMinStopLength = 1.0

// ComputeStops scans the trail for runs of consecutive positioned points
// sharing identical coordinates. Every point of a run gets the time elapsed
// since the run started as its stop length; the points are marked stopped
// when the run lasts at least minStopLength. Speech-only points neither
// start nor break a run and are reset to not stopped.
//
// Returns the longest run duration found.
func ComputeStops(dataTrail []models.DataPoint, minStopLength float64) float64 {
	positioned := make([]int, 0, len(dataTrail))
	for i := range dataTrail {
		if dataTrail[i].HasPosition() {
			positioned = append(positioned, i)
			continue
		}
		dataTrail[i].StopLength = 0
		dataTrail[i].IsStopped = false
	}

	var maxStop float64
	for start := 0; start < len(positioned); {
		first := dataTrail[positioned[start]]
		end := start + 1
		for end < len(positioned) && dataTrail[positioned[end]].SamePosition(first) {
			end++
		}

		duration := dataTrail[positioned[end-1]].Time - first.Time
		stopped := end-start > 1 && duration >= minStopLength
		for k := start; k < end; k++ {
			p := &dataTrail[positioned[k]]
			p.StopLength = p.Time - first.Time
			p.IsStopped = stopped
		}

		if duration > maxStop {
			maxStop = duration
		}
		start = end
	}

	return maxStop
}

// Stop is one detected stop run
type Stop struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Duration returns the dwell time of the stop
func (s Stop) Duration() float64 {
	return s.EndTime - s.StartTime
}

// Stops lists the stop runs of a trail whose stop values have been computed
func Stops(dataTrail []models.DataPoint) []Stop {
	var stops []Stop
	var cur *Stop
	for _, p := range dataTrail {
		if !p.HasPosition() {
			continue
		}
		if p.IsStopped && cur != nil && p.StopLength > 0 && *p.X == cur.X && *p.Y == cur.Y {
			cur.EndTime = p.Time
			continue
		}
		if cur != nil {
			stops = append(stops, *cur)
			cur = nil
		}
		if p.IsStopped {
			cur = &Stop{StartTime: p.Time, EndTime: p.Time, X: *p.X, Y: *p.Y}
		}
	}
	if cur != nil {
		stops = append(stops, *cur)
	}
	return stops
}
