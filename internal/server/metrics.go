package server

import (
	"strconv"
	"strings"
)

// MetricGroup is one titled block of labeled percentages. Labels and Values
// always have equal length.
type MetricGroup struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

const metricHeadingMarker = "###"

func defaultMetricGroups() []MetricGroup {
	return []MetricGroup{{
		Title:  "預設指標",
		Labels: []string{"指標A", "指標B"},
		Values: []int{50, 75},
	}}
}

func parseMetricGroups(raw string) []MetricGroup {
	groups := make([]MetricGroup, 0, 3)
	current := MetricGroup{}

	flush := func() {
		// Bars seen before the first heading stay in this untitled
		// group and never ship.
		if current.Title != "" {
			groups = append(groups, current)
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if strings.HasPrefix(line, metricHeadingMarker) {
			flush()
			// Slices start empty, not nil, so a bar-less group still
			// marshals as JSON arrays.
			current = MetricGroup{
				Title:  strings.TrimSpace(strings.ReplaceAll(line, metricHeadingMarker, "")),
				Labels: []string{},
				Values: []int{},
			}
			continue
		}

		label, rawValue, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		cleaned := strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(rawValue), "%", ""))
		value, err := strconv.Atoi(cleaned)
		if err != nil {
			continue
		}
		current.Labels = append(current.Labels, strings.TrimSpace(label))
		current.Values = append(current.Values, value)
	}
	flush()

	if len(groups) == 0 {
		return defaultMetricGroups()
	}
	return groups
}
