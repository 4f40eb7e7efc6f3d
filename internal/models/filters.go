package models

// TrailFilter selects points of a data trail
type TrailFilter struct {
	Select string   `form:"select"` // none, region, slice, moving, stopped
	Start  *float64 `form:"start"`
	End    *float64 `form:"end"`
	MinX   *float64 `form:"minX"`
	MinY   *float64 `form:"minY"`
	MaxX   *float64 `form:"maxX"`
	MaxY   *float64 `form:"maxY"`
}

// Selection modes
const (
	SelectNone    = "none"
	SelectRegion  = "region"
	SelectSlice   = "slice"
	SelectMoving  = "moving"
	SelectStopped = "stopped"
)

// TrailSummary aggregates a data trail
type TrailSummary struct {
	Name             string  `json:"name"`
	PointCount       int     `json:"pointCount"`
	SpeechCount      int     `json:"speechCount"`
	StartTime        float64 `json:"startTime"`
	EndTime          float64 `json:"endTime"`
	Duration         float64 `json:"duration"`
	PathLength       float64 `json:"pathLength"` // In floor-plan pixels
	MinX             float64 `json:"minX"`
	MinY             float64 `json:"minY"`
	MaxX             float64 `json:"maxX"`
	MaxY             float64 `json:"maxY"`
	StopCount        int     `json:"stopCount"`
	StoppedTime      float64 `json:"stoppedTime"`
	MedianStopLength float64 `json:"medianStopLength"`
	LongestStop      float64 `json:"longestStop"`
}
