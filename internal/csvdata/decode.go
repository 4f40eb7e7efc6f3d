package csvdata

import (
	"fmt"
	"io"
)

// Dataset is a classified file whose rows have been validated once. The
// concrete type is one of *MovementData, *ConversationData, *SingleCodeData
// or *MultiCodeData.
type Dataset interface {
	Type() DataType
	// Total is the number of non-blank data rows in the file
	Total() int
	// Skipped is the number of rows dropped as malformed
	Skipped() int
}

type counts struct {
	total   int
	skipped int
}

func (c counts) Total() int   { return c.total }
func (c counts) Skipped() int { return c.skipped }

// MovementRow is one positioned sample
type MovementRow struct {
	Time float64
	X    float64
	Y    float64
}

// ConversationRow is one turn of talk
type ConversationRow struct {
	Time    float64
	Speaker string // Normalized
	Talk    string
}

// CodeRow is one coded interval
type CodeRow struct {
	Code  string // Normalized
	Start float64
	End   float64
}

// MovementData holds the samples of one entity, named after its file
type MovementData struct {
	counts
	Entity string
	Rows   []MovementRow
}

func (*MovementData) Type() DataType { return Movement }

// LastTime returns the time of the last valid row
func (d *MovementData) LastTime() float64 {
	if len(d.Rows) == 0 {
		return 0
	}
	return d.Rows[len(d.Rows)-1].Time
}

// ConversationData holds talk turns of any number of speakers
type ConversationData struct {
	counts
	Rows []ConversationRow
}

func (*ConversationData) Type() DataType { return Conversation }

// SingleCodeData holds intervals of one code, named after its file
type SingleCodeData struct {
	counts
	Code string
	Rows []CodeRow
}

func (*SingleCodeData) Type() DataType { return SingleCode }

// MultiCodeData holds intervals of several codes
type MultiCodeData struct {
	counts
	Rows []CodeRow
}

func (*MultiCodeData) Type() DataType { return MultiCode }

// Read parses, classifies and decodes a CSV document
func Read(r io.Reader, fileName string) (Dataset, error) {
	table, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return Decode(table, fileName)
}

// Decode classifies the table and converts its valid rows into typed records.
// Malformed rows are dropped and counted.
func Decode(t *Table, fileName string) (Dataset, error) {
	dataType := Classify(t)
	c := counts{total: len(t.Rows)}

	switch dataType {
	case Movement:
		d := &MovementData{Entity: CleanFileName(fileName)}
		for _, row := range t.Rows {
			if !MovementRowOK(row) {
				c.skipped++
				continue
			}
			d.Rows = append(d.Rows, MovementRow{
				Time: row.Get("time").Num,
				X:    row.Get("x").Num,
				Y:    row.Get("y").Num,
			})
		}
		d.counts = c
		return d, nil

	case Conversation:
		d := &ConversationData{}
		for _, row := range t.Rows {
			if !ConversationRowOK(row) {
				c.skipped++
				continue
			}
			d.Rows = append(d.Rows, ConversationRow{
				Time:    row.Get("time").Num,
				Speaker: NormalizeName(row.Get("speaker").Text()),
				Talk:    row.Get("talk").Text(),
			})
		}
		d.counts = c
		return d, nil

	case SingleCode:
		d := &SingleCodeData{Code: CleanFileName(fileName)}
		for _, row := range t.Rows {
			if !SingleCodeRowOK(row) {
				c.skipped++
				continue
			}
			d.Rows = append(d.Rows, CodeRow{
				Code:  d.Code,
				Start: row.Get("start").Num,
				End:   row.Get("end").Num,
			})
		}
		d.counts = c
		return d, nil

	case MultiCode:
		d := &MultiCodeData{}
		for _, row := range t.Rows {
			if !MultiCodeRowOK(row) {
				c.skipped++
				continue
			}
			d.Rows = append(d.Rows, CodeRow{
				Code:  NormalizeName(row.Get("code").Text()),
				Start: row.Get("start").Num,
				End:   row.Get("end").Num,
			})
		}
		d.counts = c
		return d, nil
	}

	return nil, fmt.Errorf("%w: %s does not match movement, conversation or code headers", ErrUnrecognizedFormat, fileName)
}
