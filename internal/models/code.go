package models

// CodeInterval is one coded time range read from a code file
type CodeInterval struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

// Contains reports whether t lies inside the closed interval
func (c CodeInterval) Contains(t float64) bool {
	return t >= c.StartTime && t <= c.EndTime
}

// CodeTable holds every interval of one code. The scan cursor serves
// repeated coverage queries arriving in non-decreasing time order; it only
// moves forward until Reset is called.
type CodeTable struct {
	CodeName   string         `json:"codeName"`
	ParsedRows []CodeInterval `json:"parsedRows"`
	Color      string         `json:"color"`
	Enabled    bool           `json:"enabled"`

	scanCursor int
}

// NewCodeTable creates an enabled code table
func NewCodeTable(codeName, color string, rows []CodeInterval) *CodeTable {
	return &CodeTable{CodeName: codeName, ParsedRows: rows, Color: color, Enabled: true}
}

// Cursor returns the current scan position
func (t *CodeTable) Cursor() int {
	return t.scanCursor
}

// Reset rewinds the scan cursor
func (t *CodeTable) Reset() {
	t.scanCursor = 0
}

// ContainsNaive reports whether any interval covers time by scanning every row
func (t *CodeTable) ContainsNaive(time float64) bool {
	for _, row := range t.ParsedRows {
		if row.Contains(time) {
			return true
		}
	}
	return false
}

// ContainsAt reports whether any interval covers time. It tries the interval
// at the cursor, then the next one (advancing onto it), and only then falls
// back to a full scan. The answer never depends on the cursor.
func (t *CodeTable) ContainsAt(time float64) bool {
	n := len(t.ParsedRows)
	if n == 0 {
		return false
	}
	if t.scanCursor < n && t.ParsedRows[t.scanCursor].Contains(time) {
		return true
	}
	if next := t.scanCursor + 1; next < n && t.ParsedRows[next].Contains(time) {
		t.scanCursor = next
		return true
	}
	for i, row := range t.ParsedRows {
		if row.Contains(time) {
			if i > t.scanCursor {
				t.scanCursor = i
			}
			return true
		}
	}
	return false
}

// CodeInfo is the list view of a code table
type CodeInfo struct {
	Code      string `json:"code"`
	Color     string `json:"color"`
	Enabled   bool   `json:"enabled"`
	Intervals int    `json:"intervals"`
}

// CodeUpdate holds code fields editable through the API
type CodeUpdate struct {
	Enabled *bool `json:"enabled"`
}

// CodeColor is the color resolution result at one point in time
type CodeColor struct {
	Time   float64 `json:"time"`
	Color  string  `json:"color"`
	Active []bool  `json:"active"` // One entry per code table, in table order
}
