package models

// User is a named entity (person or tracked object) with one time-ordered data trail
type User struct {
	Name      string      `json:"name"` // Lower-cased, trimmed
	Color     string      `json:"color"`
	IsShowing bool        `json:"isShowing"`
	DataTrail []DataPoint `json:"dataTrail"`
	Segments  []string    `json:"segments"` // Code labels present anywhere on the trail
}

// UserInfo is the list view of a user without its trail
type UserInfo struct {
	Name        string   `json:"name"`
	Color       string   `json:"color"`
	IsShowing   bool     `json:"isShowing"`
	PointCount  int      `json:"pointCount"`
	SpeechCount int      `json:"speechCount"`
	StartTime   float64  `json:"startTime"`
	EndTime     float64  `json:"endTime"`
	Segments    []string `json:"segments"`
}

// Info builds the list view of the user
func (u *User) Info() UserInfo {
	info := UserInfo{
		Name:       u.Name,
		Color:      u.Color,
		IsShowing:  u.IsShowing,
		PointCount: len(u.DataTrail),
		Segments:   u.Segments,
	}
	if info.Segments == nil {
		info.Segments = []string{}
	}
	for _, p := range u.DataTrail {
		if p.Speech != "" {
			info.SpeechCount++
		}
	}
	if n := len(u.DataTrail); n > 0 {
		info.StartTime = u.DataTrail[0].Time
		info.EndTime = u.DataTrail[n-1].Time
	}
	return info
}

// UserUpdate holds user fields editable through the API
type UserUpdate struct {
	Color     *string `json:"color"`
	IsShowing *bool   `json:"isShowing"`
}
