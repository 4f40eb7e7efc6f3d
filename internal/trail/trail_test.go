package trail

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/jengzang/igs-backend-go/internal/csvdata"
	"github.com/jengzang/igs-backend-go/internal/models"
)

func movementTrail(samples ...[3]float64) []models.DataPoint {
	out := make([]models.DataPoint, 0, len(samples))
	for _, s := range samples {
		out = append(out, models.NewMovementPoint(s[0], s[1], s[2]))
	}
	return out
}

func times(dataTrail []models.DataPoint) []float64 {
	out := make([]float64, len(dataTrail))
	for i, p := range dataTrail {
		out[i] = p.Time
	}
	return out
}

func TestAppendMovementDropsDuplicatesAndRegressions(t *testing.T) {
	rows := []csvdata.MovementRow{
		{Time: 0, X: 1, Y: 1},
		{Time: 1, X: 1, Y: 1},
		{Time: 1, X: 2, Y: 2},
		{Time: 0.5, X: 2, Y: 2},
		{Time: 2, X: 3, Y: 3},
	}
	got, kept := AppendMovement(nil, rows)
	if kept != 3 {
		t.Fatalf("kept %d want 3", kept)
	}
	if want := []float64{0, 1, 2}; !reflect.DeepEqual(times(got), want) {
		t.Fatalf("times %v want %v", times(got), want)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Time <= got[i-1].Time {
			t.Fatalf("trail not strictly increasing at %d", i)
		}
	}
}

func TestAppendMovementMergesSecondFile(t *testing.T) {
	first, _ := AppendMovement(nil, []csvdata.MovementRow{{Time: 0}, {Time: 10}})
	first = InsertByTime(first, models.NewSpeechPoint(5, "hello"))
	merged, kept := AppendMovement(first, []csvdata.MovementRow{{Time: 3}, {Time: 12}})
	if kept != 2 {
		t.Fatalf("kept %d", kept)
	}
	if want := []float64{0, 3, 5, 10, 12}; !reflect.DeepEqual(times(merged), want) {
		t.Fatalf("times %v want %v", times(merged), want)
	}
}

func TestInsertByTimeKeepsOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		var rows []csvdata.MovementRow
		for i := 0; i < 20; i++ {
			rows = append(rows, csvdata.MovementRow{Time: float64(i * 2)})
		}
		dataTrail, _ := AppendMovement(nil, rows)
		for n := 0; n < 15; n++ {
			tm := float64(rng.Intn(45)) - 2
			dataTrail = InsertByTime(dataTrail, models.NewSpeechPoint(tm, "talk"))
		}
		if !IsSorted(dataTrail) {
			t.Fatalf("iteration %d: trail not sorted: %v", iter, times(dataTrail))
		}
		if len(dataTrail) != 35 {
			t.Fatalf("iteration %d: length %d", iter, len(dataTrail))
		}
	}
}

func TestInsertByTimeTies(t *testing.T) {
	dataTrail := movementTrail([3]float64{0, 0, 0}, [3]float64{2, 0, 0})
	dataTrail = InsertByTime(dataTrail, models.NewSpeechPoint(1, "middle"))
	dataTrail = InsertByTime(dataTrail, models.NewSpeechPoint(2, "same time"))
	if dataTrail[1].Speech != "middle" {
		t.Fatalf("midpoint should land after the smaller neighbour: %+v", dataTrail)
	}
	if dataTrail[3].Speech != "same time" {
		t.Fatalf("equal time should land after the existing point: %+v", dataTrail)
	}
	empty := InsertByTime(nil, models.NewSpeechPoint(4, "only"))
	if len(empty) != 1 || empty[0].Speech != "only" {
		t.Fatalf("insert into empty trail: %+v", empty)
	}
}

func TestComputeStops(t *testing.T) {
	dataTrail := movementTrail(
		[3]float64{0, 1, 1},
		[3]float64{1, 1, 1},
		[3]float64{2, 1, 1},
		[3]float64{3, 2, 2},
	)
	maxStop := ComputeStops(dataTrail, DefaultMinStopLength)
	if maxStop != 2 {
		t.Fatalf("max stop %v want 2", maxStop)
	}
	wantLengths := []float64{0, 1, 2, 0}
	wantStopped := []bool{true, true, true, false}
	for i, p := range dataTrail {
		if p.StopLength != wantLengths[i] || p.IsStopped != wantStopped[i] {
			t.Fatalf("point %d: stopLength=%v isStopped=%v", i, p.StopLength, p.IsStopped)
		}
	}
}

func TestComputeStopsThresholdAndTrailEnd(t *testing.T) {
	dataTrail := movementTrail(
		[3]float64{0, 5, 5},
		[3]float64{0.5, 5, 5},
		[3]float64{1, 6, 6},
		[3]float64{4, 7, 7},
		[3]float64{6, 7, 7},
	)
	dataTrail = InsertByTime(dataTrail, models.NewSpeechPoint(5, "still here"))
	ComputeStops(dataTrail, 1)

	if dataTrail[0].IsStopped || dataTrail[1].IsStopped {
		t.Fatalf("run shorter than the threshold must not be a stop")
	}
	if dataTrail[1].StopLength != 0.5 {
		t.Fatalf("stop length is stamped below the threshold too: %v", dataTrail[1].StopLength)
	}
	if dataTrail[2].IsStopped || dataTrail[2].StopLength != 0 {
		t.Fatalf("single point run: %+v", dataTrail[2])
	}
	last := dataTrail[len(dataTrail)-1]
	if !last.IsStopped || last.StopLength != 2 {
		t.Fatalf("run at trail end: %+v", last)
	}
	speech := dataTrail[4]
	if speech.HasPosition() || speech.IsStopped {
		t.Fatalf("speech point should not be stopped: %+v", speech)
	}

	stops := Stops(dataTrail)
	if len(stops) != 1 || stops[0].StartTime != 4 || stops[0].Duration() != 2 {
		t.Fatalf("stops %+v", stops)
	}
}

func TestNaiveAnnotator(t *testing.T) {
	dataTrail := movementTrail([3]float64{0}, [3]float64{5}, [3]float64{10}, [3]float64{15})
	table := models.NewCodeTable("a", "#fff", []models.CodeInterval{{StartTime: 4, EndTime: 11}})
	NaiveAnnotator{}.Annotate(dataTrail, []*models.CodeTable{table})

	want := []bool{false, true, true, false}
	for i, p := range dataTrail {
		if p.HasCode("a") != want[i] {
			t.Fatalf("point t=%v has code %v", p.Time, p.HasCode("a"))
		}
	}
}

func TestAnnotatorsIgnoreEmptyRanges(t *testing.T) {
	dataTrail := movementTrail([3]float64{0}, [3]float64{5})
	tables := []*models.CodeTable{models.NewCodeTable("late", "", []models.CodeInterval{
		{StartTime: 6, EndTime: 9},
		{StartTime: 2, EndTime: 1},
		{StartTime: -4, EndTime: -1},
	})}
	for _, a := range []Annotator{NaiveAnnotator{}, CursorAnnotator{}} {
		ClearCodes(dataTrail)
		a.Annotate(dataTrail, tables)
		for _, p := range dataTrail {
			if len(p.Codes) != 0 {
				t.Fatalf("%s: unexpected codes %v", a.Name(), p.Codes)
			}
		}
	}
}

func TestAnnotatorsDeduplicateLabels(t *testing.T) {
	dataTrail := movementTrail([3]float64{1}, [3]float64{2})
	tables := []*models.CodeTable{models.NewCodeTable("a", "", []models.CodeInterval{
		{StartTime: 0, EndTime: 3},
		{StartTime: 1, EndTime: 2},
	})}
	NaiveAnnotator{}.Annotate(dataTrail, tables)
	if !reflect.DeepEqual(dataTrail[0].Codes, []string{"a"}) {
		t.Fatalf("codes %v", dataTrail[0].Codes)
	}
}

func randomTables(rng *rand.Rand) []*models.CodeTable {
	names := []string{"a", "b", "c", "d"}
	tables := make([]*models.CodeTable, 1+rng.Intn(len(names)))
	for i := range tables {
		rows := make([]models.CodeInterval, rng.Intn(8))
		for j := range rows {
			start := rng.Float64()*120 - 10
			rows[j] = models.CodeInterval{StartTime: start, EndTime: start + rng.Float64()*30 - 5}
		}
		if rng.Intn(2) == 0 {
			// Time-ordered tables exercise the cursor fast path
			for j := 1; j < len(rows); j++ {
				rows[j].StartTime = rows[j-1].EndTime + rng.Float64()*5
				rows[j].EndTime = rows[j].StartTime + rng.Float64()*10
			}
		}
		tables[i] = models.NewCodeTable(names[i], CodeColor(i), rows)
	}
	return tables
}

func randomTrail(rng *rand.Rand) []models.DataPoint {
	var dataTrail []models.DataPoint
	tm := rng.Float64() * 5
	for n := rng.Intn(60); n > 0; n-- {
		if rng.Intn(4) == 0 {
			dataTrail = append(dataTrail, models.NewSpeechPoint(tm, "talk"))
		} else {
			dataTrail = append(dataTrail, models.NewMovementPoint(tm, rng.Float64(), rng.Float64()))
		}
		if rng.Intn(5) != 0 {
			tm += rng.Float64() * 4
		}
	}
	return dataTrail
}

func cloneTrail(dataTrail []models.DataPoint) []models.DataPoint {
	out := make([]models.DataPoint, len(dataTrail))
	for i, p := range dataTrail {
		out[i] = p
		out[i].Codes = []string{}
	}
	return out
}

func TestCursorAnnotatorMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 500; iter++ {
		tables := randomTables(rng)
		base := randomTrail(rng)

		naive := cloneTrail(base)
		NaiveAnnotator{}.Annotate(naive, tables)
		cursor := cloneTrail(base)
		CursorAnnotator{}.Annotate(cursor, tables)

		for i := range naive {
			if !reflect.DeepEqual(naive[i].Codes, cursor[i].Codes) {
				t.Fatalf("iteration %d point %d (t=%v): naive=%v cursor=%v",
					iter, i, naive[i].Time, naive[i].Codes, cursor[i].Codes)
			}
		}

		// Coverage queries in arbitrary order must agree as well
		for _, table := range tables {
			table.Reset()
		}
		for q := 0; q < 40; q++ {
			tm := rng.Float64()*140 - 20
			for _, table := range tables {
				before := table.Cursor()
				if table.ContainsNaive(tm) != table.ContainsAt(tm) {
					t.Fatalf("iteration %d: coverage mismatch at t=%v for %s", iter, tm, table.CodeName)
				}
				if table.Cursor() < before {
					t.Fatalf("cursor moved backwards")
				}
			}
		}
	}
}

func TestResolveColor(t *testing.T) {
	a := models.NewCodeTable("a", "#111111", []models.CodeInterval{{StartTime: 0, EndTime: 10}})
	b := models.NewCodeTable("b", "#222222", []models.CodeInterval{{StartTime: 5, EndTime: 15}})
	tables := []*models.CodeTable{a, b}

	for _, ann := range []Annotator{NaiveAnnotator{}, CursorAnnotator{}} {
		if got := ResolveColor(ann, tables, 2).Color; got != "#111111" {
			t.Errorf("%s: single code color %s", ann.Name(), got)
		}
		if got := ResolveColor(ann, tables, 12).Color; got != "#222222" {
			t.Errorf("%s: second table alone %s", ann.Name(), got)
		}
		if got := ResolveColor(ann, tables, 7); got.Color != ConflictColor || !got.Active[0] || !got.Active[1] {
			t.Errorf("%s: overlap %+v", ann.Name(), got)
		}
		if got := ResolveColor(ann, tables, 20).Color; got != NeutralColor {
			t.Errorf("%s: uncovered %s", ann.Name(), got)
		}
	}

	b.Enabled = false
	if got := ResolveColor(NaiveAnnotator{}, tables, 7).Color; got != "#111111" {
		t.Fatalf("disabled table should be ignored: %s", got)
	}
}

func TestNextUserColor(t *testing.T) {
	var users []*models.User
	for i := 0; i < len(Palette); i++ {
		c := NextUserColor(users)
		if c != Palette[i] {
			t.Fatalf("user %d got %s want %s", i, c, Palette[i])
		}
		users = append(users, &models.User{Color: c})
	}
	if c := NextUserColor(users); c != FallbackColor {
		t.Fatalf("exhausted palette should fall back, got %s", c)
	}
	users[3].Color = "#123456"
	if c := NextUserColor(users); c != Palette[3] {
		t.Fatalf("freed color should be reused, got %s", c)
	}
}

func TestNewAnnotator(t *testing.T) {
	for name, want := range map[string]string{"": "naive", "NAIVE": "naive", " cursor ": "cursor"} {
		a, err := NewAnnotator(name)
		if err != nil || a.Name() != want {
			t.Fatalf("NewAnnotator(%q) = %v, %v", name, a, err)
		}
	}
	if _, err := NewAnnotator("magic"); err == nil {
		t.Fatalf("unknown annotator should fail")
	}
}

func TestSelect(t *testing.T) {
	dataTrail := movementTrail(
		[3]float64{0, 0, 0},
		[3]float64{1, 0, 0},
		[3]float64{2, 0, 0},
		[3]float64{3, 10, 10},
	)
	dataTrail = InsertByTime(dataTrail, models.NewSpeechPoint(1.5, "hi"))
	ComputeStops(dataTrail, 1)

	f := func(v float64) *float64 { return &v }
	cases := []struct {
		filter models.TrailFilter
		want   []float64
	}{
		{models.TrailFilter{}, []float64{0, 1, 1.5, 2, 3}},
		{models.TrailFilter{Select: models.SelectStopped}, []float64{0, 1, 2}},
		{models.TrailFilter{Select: models.SelectMoving}, []float64{3}},
		{models.TrailFilter{Select: models.SelectSlice, Start: f(1), End: f(2)}, []float64{1, 1.5, 2}},
		{models.TrailFilter{Select: models.SelectRegion, MinX: f(5), MinY: f(5), MaxX: f(20), MaxY: f(20)}, []float64{3}},
	}
	for _, tc := range cases {
		got, err := Select(dataTrail, tc.filter)
		if err != nil {
			t.Fatalf("%+v: %v", tc.filter, err)
		}
		if !reflect.DeepEqual(times(got), tc.want) {
			t.Errorf("select %q: got %v want %v", tc.filter.Select, times(got), tc.want)
		}
	}

	if _, err := Select(dataTrail, models.TrailFilter{Select: models.SelectRegion}); err == nil {
		t.Fatalf("region without bounds should fail")
	}
	if _, err := Select(dataTrail, models.TrailFilter{Select: "lasso"}); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestSummarize(t *testing.T) {
	u := &models.User{Name: "ana", DataTrail: movementTrail(
		[3]float64{0, 0, 0},
		[3]float64{2, 0, 0},
		[3]float64{3, 3, 4},
		[3]float64{4, 3, 4},
		[3]float64{8, 3, 4},
	)}
	u.DataTrail = InsertByTime(u.DataTrail, models.NewSpeechPoint(5, "hi"))
	ComputeStops(u.DataTrail, 1)

	s := Summarize(u)
	if s.PointCount != 6 || s.SpeechCount != 1 || s.Duration != 8 {
		t.Fatalf("counts: %+v", s)
	}
	if s.PathLength != 5 {
		t.Fatalf("path length %v", s.PathLength)
	}
	if s.MaxX != 3 || s.MaxY != 4 || s.MinX != 0 || s.MinY != 0 {
		t.Fatalf("bounds %+v", s)
	}
	if s.StopCount != 2 || s.StoppedTime != 7 || s.LongestStop != 5 || s.MedianStopLength != 3.5 {
		t.Fatalf("stops %+v", s)
	}

	if empty := Summarize(&models.User{Name: "x"}); empty.PointCount != 0 {
		t.Fatalf("empty summary %+v", empty)
	}
}
