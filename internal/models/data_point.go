package models

import "github.com/golang/geo/r2"

// DataPoint is one sample of a data trail. A point carries a position, a
// speech payload or both; X and Y are nil for speech-only points.
type DataPoint struct {
	Time       float64  `json:"time"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Speech     string   `json:"speech,omitempty"`
	StopLength float64  `json:"stopLength"` // Seconds since the start of the current stop run
	IsStopped  bool     `json:"isStopped"`
	Codes      []string `json:"codes"`
}

// NewMovementPoint creates a positioned point
func NewMovementPoint(t, x, y float64) DataPoint {
	return DataPoint{Time: t, X: &x, Y: &y, Codes: []string{}}
}

// NewSpeechPoint creates a speech-only point
func NewSpeechPoint(t float64, speech string) DataPoint {
	return DataPoint{Time: t, Speech: speech, Codes: []string{}}
}

// HasPosition reports whether the point carries both coordinates
func (p DataPoint) HasPosition() bool {
	return p.X != nil && p.Y != nil
}

// Position returns the floor-plan position of the point
func (p DataPoint) Position() (r2.Point, bool) {
	if !p.HasPosition() {
		return r2.Point{}, false
	}
	return r2.Point{X: *p.X, Y: *p.Y}, true
}

// SamePosition reports whether both points are positioned at identical coordinates
func (p DataPoint) SamePosition(o DataPoint) bool {
	if !p.HasPosition() || !o.HasPosition() {
		return false
	}
	return *p.X == *o.X && *p.Y == *o.Y
}

// HasCode reports whether the point carries the given label
func (p DataPoint) HasCode(code string) bool {
	for _, c := range p.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// AddCode appends a label unless the point already carries it
func (p *DataPoint) AddCode(code string) {
	if p.HasCode(code) {
		return
	}
	p.Codes = append(p.Codes, code)
}
