package ranking

import "sort"

// YearTotal is the summed citation count for one calendar year
type YearTotal struct {
	Year      int
	Citations float64
}

// YearTotals sums each year's citation series and returns the totals in ascending year order
func YearTotals(series map[int][]float64) []YearTotal {
	totals := make([]YearTotal, 0, len(series))
	for year, counts := range series {
		sum := 0.0
		for _, c := range counts {
			sum += c
		}
		totals = append(totals, YearTotal{Year: year, Citations: sum})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Year < totals[j].Year
	})
	return totals
}
