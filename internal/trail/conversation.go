package trail

import (
	"sort"

	"github.com/jengzang/igs-backend-go/internal/models"
)

// InsertByTime inserts p next to the point closest to it in time, keeping the
// trail sorted. When p falls between two points it lands after the one with
// the smaller time, and after any points sharing its exact time.
func InsertByTime(dataTrail []models.DataPoint, p models.DataPoint) []models.DataPoint {
	idx := sort.Search(len(dataTrail), func(i int) bool {
		return dataTrail[i].Time > p.Time
	})

	dataTrail = append(dataTrail, models.DataPoint{})
	copy(dataTrail[idx+1:], dataTrail[idx:])
	dataTrail[idx] = p
	return dataTrail
}
