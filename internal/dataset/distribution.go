package dataset

// distribution.go computes the two summaries shown for the current
// filtered subset. Both are recomputed from scratch on every criteria
// change; neither owns any state.

// ratingBucketDef is one fixed rating bucket. Bounds are inclusive on both
// ends, and the bucket list is evaluated in declaration order.
type ratingBucketDef struct {
	label    string
	min, max float64
}

var ratingBuckets = []ratingBucketDef{
	{"4.5 - 5.0", 4.5, 5.0},
	{"4.0 - 4.4", 4.0, 4.4},
	{"3.5 - 3.9", 3.5, 3.9},
	{"3.0 - 3.4", 3.0, 3.4},
	{"Below 3.0", 0, 2.9},
}

// GenreDistribution counts records per genre over the given subset.
// Records without a genre are skipped, genres absent from the subset are
// omitted entirely (not zero-filled), and ordering is first-encounter
// order within the subset.
func GenreDistribution(records []Record) []GenreCount {
	index := make(map[string]int)
	var counts []GenreCount
	for _, rec := range records {
		if rec.Genre == "" {
			continue
		}
		if i, ok := index[rec.Genre]; ok {
			counts[i].Count++
			continue
		}
		index[rec.Genre] = len(counts)
		counts = append(counts, GenreCount{Genre: rec.Genre, Count: 1})
	}
	return counts
}

// RatingDistribution counts records per fixed rating bucket over the given
// subset. Unrated records fall in no bucket, and buckets with zero matches
// are omitted from the output.
func RatingDistribution(records []Record) []RatingBucket {
	totals := make([]int, len(ratingBuckets))
	for _, rec := range records {
		if !rec.Rated() {
			continue
		}
		for i, b := range ratingBuckets {
			if *rec.Rating >= b.min && *rec.Rating <= b.max {
				totals[i]++
				break
			}
		}
	}

	var out []RatingBucket
	for i, b := range ratingBuckets {
		if totals[i] == 0 {
			continue
		}
		out = append(out, RatingBucket{
			Label: b.label,
			Min:   b.min,
			Max:   b.max,
			Count: totals[i],
		})
	}
	return out
}
