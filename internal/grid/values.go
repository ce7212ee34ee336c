package grid

import (
	"fmt"
	"strconv"
)

// FromValues converts a Sheets values API matrix into a Grid.
func FromValues(values [][]any) Grid {
	g := make(Grid, len(values))

	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = valueString(v)
		}

		g[i] = cells
	}

	return g
}

func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
