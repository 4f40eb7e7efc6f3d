package csvdata

import (
	"path/filepath"
	"strings"
)

// DataType identifies the layout of a CSV file
type DataType int

const (
	Unrecognized DataType = iota
	Movement
	Conversation
	SingleCode
	MultiCode
)

var dataTypeNames = map[DataType]string{
	Unrecognized: "unrecognized",
	Movement:     "movement",
	Conversation: "conversation",
	SingleCode:   "single_code",
	MultiCode:    "multi_code",
}

func (d DataType) String() string {
	if n, ok := dataTypeNames[d]; ok {
		return n
	}
	return "unrecognized"
}

// Required headers per layout
var (
	HeadersMovement     = []string{"time", "x", "y"}
	HeadersConversation = []string{"time", "speaker", "talk"}
	HeadersSingleCode   = []string{"start", "end"}
	HeadersMultiCode    = []string{"code", "start", "end"}
)

type layout struct {
	dataType DataType
	headers  []string
	rowOK    func(Row) bool
}

// Multi-code headers are a strict superset of single-code headers, so the
// multi-code layout has to be tried first.
var layouts = []layout{
	{Movement, HeadersMovement, MovementRowOK},
	{MultiCode, HeadersMultiCode, MultiCodeRowOK},
	{SingleCode, HeadersSingleCode, SingleCodeRowOK},
	{Conversation, HeadersConversation, ConversationRowOK},
}

// MovementRowOK reports whether time, x and y are all numeric
func MovementRowOK(r Row) bool {
	return r.Get("time").IsNumber() && r.Get("x").IsNumber() && r.Get("y").IsNumber()
}

// ConversationRowOK reports whether time is numeric, speaker is non-empty text and talk is present
func ConversationRowOK(r Row) bool {
	return r.Get("time").IsNumber() && r.Get("speaker").IsNonEmptyString() && !r.Get("talk").IsNull()
}

// SingleCodeRowOK reports whether start and end are numeric
func SingleCodeRowOK(r Row) bool {
	return r.Get("start").IsNumber() && r.Get("end").IsNumber()
}

// MultiCodeRowOK reports whether the code label is present and start and end are numeric
func MultiCodeRowOK(r Row) bool {
	code := r.Get("code")
	return !code.IsNull() && strings.TrimSpace(code.Text()) != "" && SingleCodeRowOK(r)
}

// Classify returns the first layout whose headers are all present and which
// has at least one row of the right value types.
func Classify(t *Table) DataType {
	if t == nil {
		return Unrecognized
	}
	for _, l := range layouts {
		if !t.HasHeaders(l.headers) {
			continue
		}
		for _, row := range t.Rows {
			if l.rowOK(row) {
				return l.dataType
			}
		}
	}
	return Unrecognized
}

// CleanFileName strips directory and extension and lower-cases the rest.
// Movement files name their entity and single-code files their code this way.
func CleanFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return NormalizeName(base)
}

// NormalizeName is the case-insensitive key used for entity and code names
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
