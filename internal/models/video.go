package models

// Video platforms
const (
	VideoPlatformYoutube = "youtube"
	VideoPlatformFile    = "file"
)

// VideoState is the observable state of a session's video player
type VideoState struct {
	Platform    string  `json:"platform"`
	Source      string  `json:"source"` // YouTube video id or file name
	Duration    float64 `json:"duration"`
	CurrentTime float64 `json:"currentTime"`
	Playing     bool    `json:"playing"`
	Muted       bool    `json:"muted"`
	Showing     bool    `json:"showing"`
}

// VideoCommand is a player action requested through the API
type VideoCommand struct {
	Action   string   `json:"action" binding:"required"` // load, play, pause, seek, mute, unmute, show, hide
	Source   string   `json:"source"`                    // YouTube video id, for load
	Time     *float64 `json:"time"`
	Duration *float64 `json:"duration"`
}
