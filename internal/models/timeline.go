package models

import "fmt"

// Timeline is the time window shared by every view of a session
type Timeline struct {
	StartTime   float64 `json:"startTime"`
	EndTime     float64 `json:"endTime"`
	CurrTime    float64 `json:"currTime"`
	LeftMarker  float64 `json:"leftMarker"`
	RightMarker float64 `json:"rightMarker"`
}

// Duration returns the length of the timeline, never negative
func (t Timeline) Duration() float64 {
	if t.EndTime < t.StartTime {
		return 0
	}
	return t.EndTime - t.StartTime
}

// Reset spans the timeline over [0, end] and moves both markers to the edges
func (t *Timeline) Reset(end float64) {
	if end < 0 {
		end = 0
	}
	t.StartTime = 0
	t.EndTime = end
	t.CurrTime = 0
	t.LeftMarker = 0
	t.RightMarker = end
}

// Clamp bounds v to the timeline
func (t Timeline) Clamp(v float64) float64 {
	if v < t.StartTime {
		return t.StartTime
	}
	if v > t.EndTime {
		return t.EndTime
	}
	return v
}

// TimelineUpdate holds the editable viewport fields
type TimelineUpdate struct {
	CurrTime    *float64 `json:"currTime"`
	LeftMarker  *float64 `json:"leftMarker"`
	RightMarker *float64 `json:"rightMarker"`
}

// Apply clamps and applies the update. Markers may not cross.
func (t *Timeline) Apply(u TimelineUpdate) error {
	left, right := t.LeftMarker, t.RightMarker
	if u.LeftMarker != nil {
		left = t.Clamp(*u.LeftMarker)
	}
	if u.RightMarker != nil {
		right = t.Clamp(*u.RightMarker)
	}
	if left > right {
		return fmt.Errorf("left marker %.3f is after right marker %.3f", left, right)
	}
	t.LeftMarker, t.RightMarker = left, right
	if u.CurrTime != nil {
		t.CurrTime = t.Clamp(*u.CurrTime)
	}
	return nil
}

// TimelineInfo adds derived values to the timeline
type TimelineInfo struct {
	Timeline
	Duration      float64 `json:"duration"`
	MaxStopLength float64 `json:"maxStopLength"`
}
