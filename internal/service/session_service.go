package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jengzang/igs-backend-go/internal/floorplan"
	"github.com/jengzang/igs-backend-go/internal/logger"
	"github.com/jengzang/igs-backend-go/internal/models"
	"github.com/jengzang/igs-backend-go/internal/repository"
	"github.com/jengzang/igs-backend-go/internal/session"
	"github.com/jengzang/igs-backend-go/internal/trail"
	"github.com/jengzang/igs-backend-go/internal/video"
)

// exampleFetchConcurrency bounds parallel downloads of one example
const exampleFetchConcurrency = 4

// SessionOptions configures the stores created by the service
type SessionOptions struct {
	Annotator     string
	MinStopLength float64
}

type sessionEntry struct {
	// mu serializes multi-step mutations such as uploads and example loads
	mu      sync.Mutex
	session models.Session
	store   *session.Store
}

// SessionService owns the in-memory stores of all sessions and keeps the
// raw files they were built from in the database
type SessionService struct {
	sessions *repository.SessionRepository
	files    *repository.FileRepository
	loader   *floorplan.Loader
	examples *ExampleSource
	opts     SessionOptions
	log      *logger.Logger

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

// NewSessionService creates a new session service. The annotator name is
// validated here so a bad setting fails at startup.
func NewSessionService(
	sessions *repository.SessionRepository,
	files *repository.FileRepository,
	loader *floorplan.Loader,
	examples *ExampleSource,
	opts SessionOptions,
	log *logger.Logger,
) (*SessionService, error) {
	if _, err := trail.NewAnnotator(opts.Annotator); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SessionService{
		sessions: sessions,
		files:    files,
		loader:   loader,
		examples: examples,
		opts:     opts,
		log:      log,
		entries:  make(map[string]*sessionEntry),
	}, nil
}

// FileKind routes a file name to the kind of input it is
func FileKind(name string) (string, error) {
	switch {
	case strings.EqualFold(filepath.Ext(name), ".csv"):
		return models.FileKindCSV, nil
	case floorplan.IsImageFile(name):
		return models.FileKindFloorplan, nil
	case video.IsVideoFile(name):
		return models.FileKindVideo, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
}

func (s *SessionService) newEntry(sess models.Session) *sessionEntry {
	annotator, _ := trail.NewAnnotator(s.opts.Annotator)
	log := s.log.With("session", sess.ID)
	minStop := s.opts.MinStopLength
	store := session.New(session.Options{
		Annotator:     annotator,
		MinStopLength: &minStop,
		Logger:        log,
	})
	store.Subscribe(func(e session.Event) {
		log.Debug("session changed", "event", string(e))
		if err := s.sessions.Touch(sess.ID); err != nil {
			log.Warn("failed to touch session", "error", err)
		}
	})
	return &sessionEntry{session: sess, store: store}
}

// Create starts a new empty session
func (s *SessionService) Create(name string) (*models.Session, error) {
	sess := &models.Session{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
	if err := s.sessions.Create(sess); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[sess.ID] = s.newEntry(*sess)
	s.mu.Unlock()

	s.log.Info("session created", "session", sess.ID, "name", sess.Name)
	return sess, nil
}

// List returns all persisted sessions
func (s *SessionService) List() ([]models.Session, error) {
	return s.sessions.List()
}

// entry returns the in-memory entry of a session, rebuilding it from the
// stored files when the process has restarted since the session was used
func (s *SessionService) entry(id string) (*sessionEntry, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if ok {
		return e, nil
	}

	sess, err := s.sessions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	e = s.newEntry(*sess)
	if err := s.replay(e); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[id]; ok {
		return existing, nil
	}
	s.entries[id] = e
	return e, nil
}

func (s *SessionService) replay(e *sessionEntry) error {
	files, err := s.files.ListBySession(e.session.ID)
	if err != nil {
		return fmt.Errorf("failed to load session files: %w", err)
	}
	for i := range files {
		if _, err := s.apply(e, &files[i]); err != nil {
			s.log.Warn("skipping stored file", "session", e.session.ID, "file", files[i].Name, "error", err)
		}
	}
	if len(files) > 0 {
		s.log.Info("session restored", "session", e.session.ID, "files", len(files))
	}
	return nil
}

// apply merges one file into the entry's store without persisting it
func (s *SessionService) apply(e *sessionEntry, f *models.SessionFile) (models.IngestReport, error) {
	report := models.IngestReport{File: f.Name, Kind: f.Kind}
	switch f.Kind {
	case models.FileKindCSV:
		return e.store.IngestCSV(f.Name, bytes.NewReader(f.Content))
	case models.FileKindFloorplan:
		fp, err := s.loader.Decode(bytes.NewReader(f.Content), f.Name)
		if err != nil {
			return report, err
		}
		e.store.SetFloorplan(fp)
	case models.FileKindVideo:
		e.store.SetVideo(models.VideoPlatformFile, f.Name)
	case models.FileKindYoutube:
		e.store.SetVideo(models.VideoPlatformYoutube, f.Name)
	default:
		return report, fmt.Errorf("%w: %s", ErrUnsupportedFile, f.Kind)
	}
	return report, nil
}

// applyAndStore merges a file and records it for replay
func (s *SessionService) applyAndStore(e *sessionEntry, f *models.SessionFile) (models.IngestReport, error) {
	report, err := s.apply(e, f)
	if err != nil {
		return report, err
	}
	f.SessionID = e.session.ID
	if err := s.files.Append(f); err != nil {
		return report, err
	}
	return report, nil
}

// Store returns the live store of a session
func (s *SessionService) Store(id string) (*session.Store, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	return e.store, nil
}

// State snapshots a session
func (s *SessionService) State(id string) (models.SessionState, error) {
	e, err := s.entry(id)
	if err != nil {
		return models.SessionState{}, err
	}
	sess, err := s.sessions.GetByID(id)
	if err != nil {
		return models.SessionState{}, err
	}
	if sess == nil {
		return models.SessionState{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e.store.State(*sess), nil
}

// Delete drops a session and its stored files
func (s *SessionService) Delete(id string) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Clear()
	if err := s.sessions.Delete(id); err != nil {
		return err
	}
	s.log.Info("session deleted", "session", id)
	return nil
}

// Upload merges one uploaded file into a session. Only the name of a video
// file is kept; the client plays the media itself.
func (s *SessionService) Upload(id, name string, r io.Reader) (models.IngestReport, error) {
	kind, err := FileKind(name)
	if err != nil {
		return models.IngestReport{File: name}, err
	}
	e, err := s.entry(id)
	if err != nil {
		return models.IngestReport{File: name, Kind: kind}, err
	}

	f := &models.SessionFile{Name: path.Base(filepath.ToSlash(name)), Kind: kind}
	if kind != models.FileKindVideo {
		if f.Content, err = io.ReadAll(r); err != nil {
			return models.IngestReport{File: name, Kind: kind}, fmt.Errorf("failed to read upload: %w", err)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	report, err := s.applyAndStore(e, f)
	if err != nil {
		return report, err
	}
	s.log.Info("file ingested", "session", id, "file", f.Name, "kind", kind, "type", report.DataType, "rows", report.RowsUsed)
	return report, nil
}

// Clear empties a session and forgets its stored files
func (s *SessionService) Clear(id string) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return s.clear(e)
}

func (s *SessionService) clear(e *sessionEntry) error {
	e.store.Clear()
	return s.files.DeleteBySession(e.session.ID)
}

// Video applies a player command. The load action attaches a YouTube video.
func (s *SessionService) Video(id string, cmd models.VideoCommand) (models.VideoState, error) {
	e, err := s.entry(id)
	if err != nil {
		return models.VideoState{}, err
	}
	if !strings.EqualFold(cmd.Action, "load") {
		return e.store.ControlVideo(cmd)
	}

	source := strings.TrimSpace(cmd.Source)
	if source == "" {
		return models.VideoState{}, fmt.Errorf("load needs a video source")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := s.applyAndStore(e, &models.SessionFile{Name: source, Kind: models.FileKindYoutube}); err != nil {
		return models.VideoState{}, err
	}
	return *e.store.Video(), nil
}

// Examples lists the example catalog
func (s *SessionService) Examples(ctx context.Context) ([]Example, error) {
	catalog, err := s.examples.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Examples, nil
}

// LoadExample replaces the session content with a bundled example. Files
// are fetched concurrently and merged in catalog order: floor plan first,
// then the data files, then the video. A fetch failure leaves the session
// untouched. Once merging starts a file that fails to merge is reported and
// skipped; the load errors only when nothing could be merged.
func (s *SessionService) LoadExample(ctx context.Context, id, name string) (models.LoadResult, error) {
	result := models.LoadResult{Reports: []models.IngestReport{}, Errors: []models.FileError{}}
	e, err := s.entry(id)
	if err != nil {
		return result, err
	}
	catalog, err := s.examples.Catalog(ctx)
	if err != nil {
		return result, err
	}
	ex, err := catalog.Find(name)
	if err != nil {
		return result, err
	}

	var names []string
	if ex.Floorplan != "" {
		names = append(names, ex.Floorplan)
	}
	names = append(names, ex.Files...)

	contents := make([][]byte, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exampleFetchConcurrency)
	for i, n := range names {
		i, n := i, n
		g.Go(func() error {
			data, err := s.examples.Read(gctx, path.Join(ex.Name, n))
			if err != nil {
				return err
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("failed to fetch example %s: %w", name, err)
	}

	files := make([]*models.SessionFile, 0, len(names)+1)
	for i, n := range names {
		kind, err := FileKind(n)
		if err != nil {
			result.Errors = append(result.Errors, models.FileError{File: n, Message: err.Error()})
			continue
		}
		files = append(files, &models.SessionFile{Name: path.Base(n), Kind: kind, Content: contents[i]})
	}
	if ex.Youtube != "" {
		files = append(files, &models.SessionFile{Name: ex.Youtube, Kind: models.FileKindYoutube})
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := s.clear(e); err != nil {
		return result, err
	}

	var firstErr error
	for _, f := range files {
		report, err := s.applyAndStore(e, f)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.log.Warn("example file skipped", "session", id, "example", name, "file", f.Name, "error", err)
			result.Errors = append(result.Errors, models.FileError{File: f.Name, Message: err.Error()})
			continue
		}
		result.Reports = append(result.Reports, report)
	}
	if len(result.Reports) == 0 {
		if firstErr == nil {
			firstErr = fmt.Errorf("example %s has no usable files", name)
		}
		return result, firstErr
	}

	s.log.Info("example loaded", "session", id, "example", name, "files", len(result.Reports), "failed", len(result.Errors))
	return result, nil
}
