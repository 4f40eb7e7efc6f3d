package trail

import "github.com/jengzang/igs-backend-go/internal/models"

// Palette is the 12-class paired color list handed out to users and codes
var Palette = []string{
	"#6a3d9a", "#ff7f00", "#33a02c", "#1f78b4", "#e31a1c", "#ffff99",
	"#b15928", "#cab2d6", "#fdbf6f", "#b2df8a", "#a6cee3", "#fb9a99",
}

const (
	// FallbackColor is given to users once the palette is used up
	FallbackColor = "#000000"
	// ConflictColor marks times covered by more than one code
	ConflictColor = "#000000"
	// NeutralColor marks times covered by no code
	NeutralColor = "#a9a9a9"
)

// NextUserColor returns the first palette color no existing user has
func NextUserColor(users []*models.User) string {
	for _, color := range Palette {
		taken := false
		for _, u := range users {
			if u.Color == color {
				taken = true
				break
			}
		}
		if !taken {
			return color
		}
	}
	return FallbackColor
}

// CodeColor returns the palette color of the code table at index, cycling
func CodeColor(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}

// ResolveColor resolves the code color at time t across the enabled tables:
// the first covering table supplies its color, a second one forces the
// conflict color, and no covering table gives the neutral color.
func ResolveColor(a Annotator, tables []*models.CodeTable, t float64) models.CodeColor {
	result := models.CodeColor{Time: t, Color: NeutralColor, Active: make([]bool, len(tables))}
	covering := 0
	for i, table := range tables {
		if !table.Enabled || !a.Covers(table, t) {
			continue
		}
		result.Active[i] = true
		covering++
		if covering == 1 {
			result.Color = table.Color
		} else {
			result.Color = ConflictColor
		}
	}
	return result
}
