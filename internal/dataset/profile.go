package dataset

import (
	"hash/fnv"
	"sort"
)

// maxTopGenres is the cap on a profile's top genre list.
const maxTopGenres = 3

// BuildProfiles derives one profile per distinct user in the store.
// It is a pure function of the store: records are grouped by user_id
// preserving original order, so re-running it always yields the same map.
func BuildProfiles(store *Store) map[string]Profile {
	type userAgg struct {
		count       int
		ratingSum   float64
		ratingCount int
		genreOrder  []string
		genreFreq   map[string]int
	}

	aggs := make(map[string]*userAgg)
	var order []string

	for _, rec := range store.Records() {
		agg := aggs[rec.UserID]
		if agg == nil {
			agg = &userAgg{genreFreq: make(map[string]int)}
			aggs[rec.UserID] = agg
			order = append(order, rec.UserID)
		}
		agg.count++
		if rec.Rated() {
			agg.ratingSum += *rec.Rating
			agg.ratingCount++
		}
		if rec.Genre != "" {
			if _, seen := agg.genreFreq[rec.Genre]; !seen {
				agg.genreOrder = append(agg.genreOrder, rec.Genre)
			}
			agg.genreFreq[rec.Genre]++
		}
	}

	profiles := make(map[string]Profile, len(order))
	for _, userID := range order {
		agg := aggs[userID]

		avg := 0.0
		if agg.ratingCount > 0 {
			avg = agg.ratingSum / float64(agg.ratingCount)
		}

		profiles[userID] = Profile{
			UserID:              userID,
			RecommendationCount: agg.count,
			AverageRating:       avg,
			TopGenres:           topGenres(agg.genreOrder, agg.genreFreq),
			Location:            placeholderLocation(userID),
			Age:                 placeholderAge(userID),
			JoinYear:            placeholderJoinYear(userID),
		}
	}
	return profiles
}

// topGenres selects up to maxTopGenres genres by descending frequency.
// genreOrder is the user's genres in first-encounter order; a stable sort
// on frequency alone preserves that order for ties (no alphabetical key).
func topGenres(genreOrder []string, freq map[string]int) []string {
	ranked := make([]string, len(genreOrder))
	copy(ranked, genreOrder)
	sort.SliceStable(ranked, func(i, j int) bool {
		return freq[ranked[i]] > freq[ranked[j]]
	})
	if len(ranked) > maxTopGenres {
		ranked = ranked[:maxTopGenres]
	}
	return ranked
}

// Placeholder profile attributes for display. These carry no real signal
// (the dataset has no demographics), but they must be stable across runs,
// so each is a pure function of the user ID instead of a random draw.

var placeholderLocations = []string{
	"New York, NY", "Los Angeles, CA", "Chicago, IL", "Houston, TX",
	"Seattle, WA", "Denver, CO", "Austin, TX", "Boston, MA",
}

func userHash(userID string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return h.Sum32()
}

func placeholderLocation(userID string) string {
	return placeholderLocations[userHash(userID)%uint32(len(placeholderLocations))]
}

func placeholderAge(userID string) int {
	return 18 + int(userHash(userID)%50)
}

func placeholderJoinYear(userID string) int {
	return 2015 + int(userHash(userID)%10)
}
