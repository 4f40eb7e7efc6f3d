package trail

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jengzang/igs-backend-go/internal/models"
)

// Annotator tags the points of a sorted data trail with the labels of the
// code intervals covering them. Every implementation produces the same code
// sets as NaiveAnnotator.
type Annotator interface {
	// Name returns the registry name of the strategy
	Name() string
	// Annotate adds the code name of each table to every point its intervals cover
	Annotate(dataTrail []models.DataPoint, tables []*models.CodeTable)
	// Covers reports whether any interval of the table covers t
	Covers(table *models.CodeTable, t float64) bool
}

// NaiveAnnotator is the reference strategy. For each interval it binary
// searches the first point at or after the start and the last point at or
// before the end, and labels the inclusive range between them.
type NaiveAnnotator struct{}

func (NaiveAnnotator) Name() string { return "naive" }

func (NaiveAnnotator) Annotate(dataTrail []models.DataPoint, tables []*models.CodeTable) {
	n := len(dataTrail)
	for _, table := range tables {
		for _, row := range table.ParsedRows {
			first := sort.Search(n, func(i int) bool { return dataTrail[i].Time >= row.StartTime })
			last := sort.Search(n, func(i int) bool { return dataTrail[i].Time > row.EndTime }) - 1
			if first >= n || last < 0 {
				continue
			}
			for i := first; i <= last; i++ {
				dataTrail[i].AddCode(table.CodeName)
			}
		}
	}
}

func (NaiveAnnotator) Covers(table *models.CodeTable, t float64) bool {
	return table.ContainsNaive(t)
}

// CursorAnnotator walks the trail once in time order and asks every table
// through its scan cursor. It pays off when intervals are listed in time
// order, which is how code files are usually written.
type CursorAnnotator struct{}

func (CursorAnnotator) Name() string { return "cursor" }

func (CursorAnnotator) Annotate(dataTrail []models.DataPoint, tables []*models.CodeTable) {
	for _, table := range tables {
		table.Reset()
	}
	for i := range dataTrail {
		for _, table := range tables {
			if table.ContainsAt(dataTrail[i].Time) {
				dataTrail[i].AddCode(table.CodeName)
			}
		}
	}
	for _, table := range tables {
		table.Reset()
	}
}

func (CursorAnnotator) Covers(table *models.CodeTable, t float64) bool {
	return table.ContainsAt(t)
}

// AnnotatorFactory creates an annotator instance
type AnnotatorFactory func() Annotator

var annotatorRegistry = map[string]AnnotatorFactory{
	"naive":  func() Annotator { return NaiveAnnotator{} },
	"cursor": func() Annotator { return CursorAnnotator{} },
}

// RegisterAnnotator registers an annotation strategy under a name
func RegisterAnnotator(name string, factory AnnotatorFactory) {
	annotatorRegistry[strings.ToLower(name)] = factory
}

// NewAnnotator returns the strategy registered under name. An empty name
// selects the naive strategy.
func NewAnnotator(name string) (Annotator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "naive"
	}
	factory, ok := annotatorRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown annotator: %s", name)
	}
	return factory(), nil
}

// ClearCodes removes every label from the trail
func ClearCodes(dataTrail []models.DataPoint) {
	for i := range dataTrail {
		dataTrail[i].Codes = []string{}
	}
}

// Segments lists the code names present on the trail, in table order
func Segments(dataTrail []models.DataPoint, tables []*models.CodeTable) []string {
	present := make(map[string]bool)
	for _, p := range dataTrail {
		for _, c := range p.Codes {
			present[c] = true
		}
	}
	segments := []string{}
	for _, table := range tables {
		if present[table.CodeName] {
			segments = append(segments, table.CodeName)
		}
	}
	return segments
}
