package trail

import (
	"sort"

	"github.com/jengzang/igs-backend-go/internal/csvdata"
	"github.com/jengzang/igs-backend-go/internal/models"
)

// AppendMovement merges movement rows into a data trail. A row is kept when
// it is the first one or its time is strictly greater than the last kept
// row's time, which drops duplicates and regressions in the input. Returns
// the merged trail, still sorted by time, and the number of rows kept.
func AppendMovement(dataTrail []models.DataPoint, rows []csvdata.MovementRow) ([]models.DataPoint, int) {
	kept := 0
	var lastTime float64
	needsSort := false

	for _, row := range rows {
		if kept > 0 && row.Time <= lastTime {
			continue
		}
		if kept == 0 && len(dataTrail) > 0 && row.Time < dataTrail[len(dataTrail)-1].Time {
			needsSort = true
		}
		dataTrail = append(dataTrail, models.NewMovementPoint(row.Time, row.X, row.Y))
		lastTime = row.Time
		kept++
	}

	// A second file for the same entity can interleave with what is already there
	if needsSort {
		sort.SliceStable(dataTrail, func(i, j int) bool {
			return dataTrail[i].Time < dataTrail[j].Time
		})
	}

	return dataTrail, kept
}

// IsSorted reports whether the trail is in non-decreasing time order
func IsSorted(dataTrail []models.DataPoint) bool {
	return sort.SliceIsSorted(dataTrail, func(i, j int) bool {
		return dataTrail[i].Time < dataTrail[j].Time
	})
}
