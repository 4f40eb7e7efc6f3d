package session

import (
	"fmt"
	"io"
	"sync"

	"github.com/jengzang/igs-backend-go/internal/csvdata"
	"github.com/jengzang/igs-backend-go/internal/logger"
	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/trail"
	"github.com/jengzang/igs-backend-go/internal/video"
)

// Event names the part of the session a change touched
type Event string

const (
	EventUsers     Event = "users"
	EventCodes     Event = "codes"
	EventTimeline  Event = "timeline"
	EventFloorplan Event = "floorplan"
	EventVideo     Event = "video"
	EventCleared   Event = "cleared"
)

// Listener is notified after a change has been applied. Listeners run on the
// goroutine that made the change, after the store lock is released.
type Listener func(Event)

// Options configures a store
type Options struct {
	Annotator trail.Annotator
	// MinStopLength is the dwell a run needs to count as stopped. Nil selects
	// trail.DefaultMinStopLength; zero marks every repeated position stopped.
	MinStopLength *float64
	Logger        *logger.Logger
}

// Store is the in-memory state of one analysis session: users and their data
// trails, code tables, the timeline, the floor plan and the video source.
// All methods are safe for concurrent use.
type Store struct {
	mu sync.Mutex

	annotator     trail.Annotator
	minStopLength float64
	log           *logger.Logger

	users         []*models.User
	codes         []*models.CodeTable
	timeline      models.Timeline
	maxTime       float64
	maxStopLength float64
	floorplan     *models.Floorplan
	player        *video.Headless
	files         []string

	listeners []Listener
}

// New creates an empty store
func New(opts Options) *Store {
	if opts.Annotator == nil {
		opts.Annotator = trail.NaiveAnnotator{}
	}
	minStopLength := trail.DefaultMinStopLength
	if opts.MinStopLength != nil && *opts.MinStopLength >= 0 {
		minStopLength = *opts.MinStopLength
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Store{
		annotator:     opts.Annotator,
		minStopLength: minStopLength,
		log:           opts.Logger,
	}
}

// Subscribe registers a change listener
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(events ...Event) {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		for _, e := range events {
			l(e)
		}
	}
}

// IngestCSV parses, classifies and merges one CSV file. A file that cannot be
// classified leaves the store untouched.
func (s *Store) IngestCSV(name string, r io.Reader) (models.IngestReport, error) {
	ds, err := csvdata.Read(r, name)
	if err != nil {
		return models.IngestReport{File: name, Kind: models.FileKindCSV}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return s.IngestDataset(name, ds), nil
}

// IngestDataset merges an already classified file
func (s *Store) IngestDataset(name string, ds csvdata.Dataset) models.IngestReport {
	report := models.IngestReport{
		File:      name,
		Kind:      models.FileKindCSV,
		DataType:  ds.Type().String(),
		RowsTotal: ds.Total(),
	}

	s.mu.Lock()
	var events []Event
	switch d := ds.(type) {
	case *csvdata.MovementData:
		report.Entity = d.Entity
		report.RowsUsed = s.ingestMovement(d.Entity, d.Rows)
		events = append(events, EventUsers, EventTimeline)
	case *csvdata.ConversationData:
		report.RowsUsed = s.ingestConversation(d.Rows)
		events = append(events, EventUsers)
	case *csvdata.SingleCodeData:
		report.Entity = d.Code
		report.RowsUsed = s.ingestCodes(d.Rows)
		events = append(events, EventCodes, EventUsers)
	case *csvdata.MultiCodeData:
		report.RowsUsed = s.ingestCodes(d.Rows)
		events = append(events, EventCodes, EventUsers)
	}
	s.refresh()
	s.files = append(s.files, name)
	report.RowsSkipped = report.RowsTotal - report.RowsUsed
	report.MaxTime = s.maxTime
	s.mu.Unlock()

	s.log.Debug("ingested csv",
		"file", name,
		"type", report.DataType,
		"rows", report.RowsUsed,
		"skipped", report.RowsSkipped,
	)
	s.notify(events...)
	return report
}

// user returns the user with the given normalized name, creating it with the
// next palette color when missing. mu must be held.
func (s *Store) user(name string) *models.User {
	for _, u := range s.users {
		if u.Name == name {
			return u
		}
	}
	u := &models.User{
		Name:      name,
		Color:     trail.NextUserColor(s.users),
		IsShowing: true,
		DataTrail: []models.DataPoint{},
		Segments:  []string{},
	}
	s.users = append(s.users, u)
	return u
}

func (s *Store) ingestMovement(entity string, rows []csvdata.MovementRow) int {
	u := s.user(csvdata.NormalizeName(entity))
	var kept int
	u.DataTrail, kept = trail.AppendMovement(u.DataTrail, rows)
	if kept == 0 {
		return 0
	}

	// Speech points do not size the timeline
	for i := len(u.DataTrail) - 1; i >= 0; i-- {
		if u.DataTrail[i].HasPosition() {
			if t := u.DataTrail[i].Time; t > s.maxTime {
				s.maxTime = t
			}
			break
		}
	}
	s.timeline.Reset(s.maxTime)
	return kept
}

func (s *Store) ingestConversation(rows []csvdata.ConversationRow) int {
	for _, row := range rows {
		u := s.user(row.Speaker)
		u.DataTrail = trail.InsertByTime(u.DataTrail, models.NewSpeechPoint(row.Time, row.Talk))
	}
	return len(rows)
}

// ingestCodes groups rows by code name in order of first appearance. Rows
// for a code that already has a table extend that table.
func (s *Store) ingestCodes(rows []csvdata.CodeRow) int {
	for _, row := range rows {
		table := s.codeTable(row.Code)
		if table == nil {
			table = models.NewCodeTable(row.Code, trail.CodeColor(len(s.codes)), nil)
			s.codes = append(s.codes, table)
		}
		table.ParsedRows = append(table.ParsedRows, models.CodeInterval{
			StartTime: row.Start,
			EndTime:   row.End,
		})
	}
	return len(rows)
}

func (s *Store) codeTable(name string) *models.CodeTable {
	for _, t := range s.codes {
		if t.CodeName == name {
			return t
		}
	}
	return nil
}

// refresh recomputes every derived value: stops, the longest stop, code
// labels and segments. mu must be held.
func (s *Store) refresh() {
	s.maxStopLength = 0
	for _, u := range s.users {
		if longest := trail.ComputeStops(u.DataTrail, s.minStopLength); longest > s.maxStopLength {
			s.maxStopLength = longest
		}
		trail.ClearCodes(u.DataTrail)
		if len(s.codes) > 0 {
			s.annotator.Annotate(u.DataTrail, s.codes)
		}
		u.Segments = trail.Segments(u.DataTrail, s.codes)
	}
}

// SetFloorplan replaces the floor plan
func (s *Store) SetFloorplan(fp *models.Floorplan) {
	s.mu.Lock()
	s.floorplan = fp
	s.files = append(s.files, fp.Source)
	s.mu.Unlock()
	s.notify(EventFloorplan)
}

// Floorplan returns the current floor plan or nil
func (s *Store) Floorplan() *models.Floorplan {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.floorplan == nil {
		return nil
	}
	fp := *s.floorplan
	return &fp
}

// SetVideo replaces the video source, destroying the previous player
func (s *Store) SetVideo(platform, source string) models.VideoState {
	s.mu.Lock()
	if s.player != nil {
		s.player.Destroy()
	}
	s.player = video.NewHeadless(platform, source, s.maxTime)
	s.files = append(s.files, source)
	state := s.player.State()
	s.mu.Unlock()
	s.notify(EventVideo)
	return state
}

// ControlVideo applies a player command and returns the new state
func (s *Store) ControlVideo(cmd models.VideoCommand) (models.VideoState, error) {
	s.mu.Lock()
	player := s.player
	s.mu.Unlock()
	if player == nil {
		return models.VideoState{}, video.ErrNoVideo
	}
	if err := video.Apply(player, cmd); err != nil {
		return models.VideoState{}, err
	}
	s.notify(EventVideo)
	return player.State(), nil
}

// Video returns the player state, or nil when no video is loaded
func (s *Store) Video() *models.VideoState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return nil
	}
	state := s.player.State()
	return &state
}

// Clear drops all users, codes, the floor plan and the video
func (s *Store) Clear() {
	s.mu.Lock()
	if s.player != nil {
		s.player.Destroy()
	}
	s.users = nil
	s.codes = nil
	s.timeline = models.Timeline{}
	s.maxTime = 0
	s.maxStopLength = 0
	s.floorplan = nil
	s.player = nil
	s.files = nil
	s.mu.Unlock()
	s.notify(EventCleared)
}
