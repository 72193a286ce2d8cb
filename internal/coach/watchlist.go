package coach

import "strings"

// watchlistWindow is how many recent sessions feed the weakness
// watchlist.
const watchlistWindow = 7

// WatchlistFrom flattens the focus-area labels of the most recent
// sessions into a comma-joined string for the analysis prompt.
// Duplicates are kept: a weakness flagged in several sessions should
// weigh heavier, not collapse to one mention. Empty history yields "".
func WatchlistFrom(history []SessionRecord) string {
	recent := history
	if len(recent) > watchlistWindow {
		recent = recent[len(recent)-watchlistWindow:]
	}

	var areas []string
	for _, s := range recent {
		for _, fa := range s.Analysis.Enhancements.TopAreas {
			areas = append(areas, fa.Area)
		}
	}
	return strings.Join(areas, ", ")
}
