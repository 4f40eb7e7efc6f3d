package session

import (
	"fmt"
	"strings"

	"github.com/jengzang/igs-backend-go/internal/csvdata"
	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/trail"
)

// Users lists every user in creation order
func (s *Store) Users() []models.UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UserInfo, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Info())
	}
	return out
}

func (s *Store) findUser(name string) (*models.User, error) {
	name = csvdata.NormalizeName(name)
	for _, u := range s.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUserNotFound, name)
}

// User returns a copy of the user, trail included
func (s *Store) User(name string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.findUser(name)
	if err != nil {
		return nil, err
	}
	cp := *u
	cp.DataTrail = append([]models.DataPoint(nil), u.DataTrail...)
	cp.Segments = append([]string{}, u.Segments...)
	return &cp, nil
}

// UpdateUser applies visibility and color edits
func (s *Store) UpdateUser(name string, upd models.UserUpdate) (models.UserInfo, error) {
	s.mu.Lock()
	u, err := s.findUser(name)
	if err != nil {
		s.mu.Unlock()
		return models.UserInfo{}, err
	}
	if upd.Color != nil {
		color := strings.TrimSpace(*upd.Color)
		if !isHexColor(color) {
			s.mu.Unlock()
			return models.UserInfo{}, fmt.Errorf("invalid color %q", *upd.Color)
		}
		u.Color = strings.ToLower(color)
	}
	if upd.IsShowing != nil {
		u.IsShowing = *upd.IsShowing
	}
	info := u.Info()
	s.mu.Unlock()

	s.notify(EventUsers)
	return info, nil
}

func isHexColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Trail returns the points of a user's trail matching the filter
func (s *Store) Trail(name string, f models.TrailFilter) ([]models.DataPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.findUser(name)
	if err != nil {
		return nil, err
	}
	return trail.Select(u.DataTrail, f)
}

// Summary aggregates a user's trail
func (s *Store) Summary(name string) (models.TrailSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.findUser(name)
	if err != nil {
		return models.TrailSummary{}, err
	}
	return trail.Summarize(u), nil
}

// Codes lists the code tables in load order
func (s *Store) Codes() []models.CodeInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codeInfos()
}

func (s *Store) codeInfos() []models.CodeInfo {
	out := make([]models.CodeInfo, 0, len(s.codes))
	for _, t := range s.codes {
		out = append(out, models.CodeInfo{
			Code:      t.CodeName,
			Color:     t.Color,
			Enabled:   t.Enabled,
			Intervals: len(t.ParsedRows),
		})
	}
	return out
}

// UpdateCode toggles a code table on or off for color resolution
func (s *Store) UpdateCode(name string, upd models.CodeUpdate) (models.CodeInfo, error) {
	s.mu.Lock()
	table := s.codeTable(csvdata.NormalizeName(name))
	if table == nil {
		s.mu.Unlock()
		return models.CodeInfo{}, fmt.Errorf("%w: %s", ErrCodeNotFound, name)
	}
	if upd.Enabled != nil {
		table.Enabled = *upd.Enabled
	}
	info := models.CodeInfo{
		Code:      table.CodeName,
		Color:     table.Color,
		Enabled:   table.Enabled,
		Intervals: len(table.ParsedRows),
	}
	s.mu.Unlock()

	s.notify(EventCodes)
	return info, nil
}

// DataHasCodes reports whether any code table is loaded
func (s *Store) DataHasCodes() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes) > 0
}

// CodeColorAt resolves the code color at time t
func (s *Store) CodeColorAt(t float64) models.CodeColor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return trail.ResolveColor(s.annotator, s.codes, t)
}

// Timeline returns the timeline with its derived values
func (s *Store) Timeline() models.TimelineInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timelineInfo()
}

func (s *Store) timelineInfo() models.TimelineInfo {
	return models.TimelineInfo{
		Timeline:      s.timeline,
		Duration:      s.timeline.Duration(),
		MaxStopLength: s.maxStopLength,
	}
}

// UpdateTimeline moves the current time or the selection markers
func (s *Store) UpdateTimeline(upd models.TimelineUpdate) (models.TimelineInfo, error) {
	s.mu.Lock()
	if err := s.timeline.Apply(upd); err != nil {
		s.mu.Unlock()
		return models.TimelineInfo{}, err
	}
	info := s.timelineInfo()
	s.mu.Unlock()

	s.notify(EventTimeline)
	return info, nil
}

// Files lists the names of the files merged into the store, in load order
func (s *Store) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.files...)
}

// State snapshots the whole store for a session
func (s *Store) State(sess models.Session) models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := models.SessionState{
		Session:      sess,
		Users:        make([]models.UserInfo, 0, len(s.users)),
		Codes:        s.codeInfos(),
		Timeline:     s.timelineInfo(),
		DataHasCodes: len(s.codes) > 0,
		Files:        append([]string{}, s.files...),
	}
	for _, u := range s.users {
		state.Users = append(state.Users, u.Info())
	}
	if s.floorplan != nil {
		fp := *s.floorplan
		state.Floorplan = &fp
	}
	if s.player != nil {
		v := s.player.State()
		state.Video = &v
	}
	return state
}

// AnnotatorName returns the name of the annotation strategy in use
func (s *Store) AnnotatorName() string {
	return s.annotator.Name()
}
