package devlog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// seriesCollator orders series names the way a Korean reader expects;
// Latin names still sort alphabetically under it.
var seriesCollator = collate.New(language.Korean)

// AggregateTags counts tag occurrences across posts and returns them sorted
// by count descending. Ties keep first-seen order: the stable sort preserves
// the order in which tags first appeared in the input.
//
// Callers pass the already-filtered published collection; this function does
// not re-check the Published flag.
func AggregateTags(posts []Post) []TagInfo {
	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		for _, tag := range p.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	infos := make([]TagInfo, 0, len(order))
	for _, name := range order {
		infos = append(infos, TagInfo{Name: name, Count: counts[name]})
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Count > infos[j].Count
	})
	return infos
}

// AggregateSeries counts posts per series, skipping posts without one, and
// returns the result sorted by series name ascending. The same pre-filtering
// contract as AggregateTags applies.
func AggregateSeries(posts []Post) []SeriesInfo {
	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		if p.SeriesName == "" {
			continue
		}
		if _, seen := counts[p.SeriesName]; !seen {
			order = append(order, p.SeriesName)
		}
		counts[p.SeriesName]++
	}

	infos := make([]SeriesInfo, 0, len(order))
	for _, name := range order {
		infos = append(infos, SeriesInfo{Name: name, Count: counts[name]})
	}
	sort.Slice(infos, func(i, j int) bool {
		return seriesCollator.CompareString(infos[i].Name, infos[j].Name) < 0
	})
	return infos
}
