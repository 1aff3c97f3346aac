package dataset

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildProfiles_CountsAndAverage(t *testing.T) {
	input := "user_id,movie_title,genre,predicted_rating\n" +
		"u1,Inception,Sci-Fi,4.8\n" +
		"u1,The Matrix,Sci-Fi,4.6\n" +
		"u2,Notebook,Romance,4.2\n"

	profiles := BuildProfiles(mustIngest(t, input))

	u1 := profiles["u1"]
	if u1.RecommendationCount != 2 {
		t.Errorf("u1 count = %d, want 2", u1.RecommendationCount)
	}
	if !almostEqual(u1.AverageRating, 4.7) {
		t.Errorf("u1 average = %v, want 4.7", u1.AverageRating)
	}
	if !reflect.DeepEqual(u1.TopGenres, []string{"Sci-Fi"}) {
		t.Errorf("u1 top genres = %v, want [Sci-Fi]", u1.TopGenres)
	}

	u2 := profiles["u2"]
	if u2.RecommendationCount != 1 || u2.AverageRating != 4.2 {
		t.Errorf("u2 profile = %+v", u2)
	}
}

func TestBuildProfiles_NoRatedRecordsMeansZeroAverage(t *testing.T) {
	input := "user_id,movie_title,predicted_rating\n" +
		"u1,Inception,\n" +
		"u1,Arrival,bad-value\n"

	profiles := BuildProfiles(mustIngest(t, input))

	if avg := profiles["u1"].AverageRating; avg != 0 {
		t.Errorf("average with no rated records = %v, want exactly 0", avg)
	}
}

func TestBuildProfiles_TopGenresFrequencyAndTieBreak(t *testing.T) {
	// Drama appears 3x; Action and Comedy tie at 2 and must keep
	// first-encounter order (Action first); Horror (1x) is cut by the cap.
	rows := []string{
		"u1,A,Drama", "u1,B,Action", "u1,C,Comedy", "u1,D,Drama",
		"u1,E,Action", "u1,F,Comedy", "u1,G,Drama", "u1,H,Horror",
	}
	input := "user_id,movie_title,genre\n" + strings.Join(rows, "\n") + "\n"

	profiles := BuildProfiles(mustIngest(t, input))

	want := []string{"Drama", "Action", "Comedy"}
	if got := profiles["u1"].TopGenres; !reflect.DeepEqual(got, want) {
		t.Errorf("top genres = %v, want %v", got, want)
	}
}

func TestBuildProfiles_TopGenresAtMostThree(t *testing.T) {
	input := "user_id,movie_title,genre\n" +
		"u1,A,G1\nu1,B,G2\nu1,C,G3\nu1,D,G4\nu1,E,G5\n"

	profiles := BuildProfiles(mustIngest(t, input))

	if got := len(profiles["u1"].TopGenres); got > maxTopGenres {
		t.Errorf("top genres length = %d, want <= %d", got, maxTopGenres)
	}
}

func TestBuildProfiles_Deterministic(t *testing.T) {
	input := "user_id,movie_title,genre,predicted_rating\n" +
		"u1,Inception,Sci-Fi,4.8\n" +
		"u2,Notebook,Romance,4.2\n"
	store := mustIngest(t, input)

	first := BuildProfiles(store)
	second := BuildProfiles(store)

	if !reflect.DeepEqual(first, second) {
		t.Error("BuildProfiles is not deterministic for identical input")
	}

	// Placeholder attributes are pure functions of the user ID.
	if first["u1"].Location == "" || first["u1"].Age == 0 || first["u1"].JoinYear == 0 {
		t.Errorf("placeholder attributes missing: %+v", first["u1"])
	}
	if first["u1"].Location != placeholderLocation("u1") {
		t.Error("placeholder location does not derive from user ID")
	}
}

func TestBuildProfiles_OneProfilePerDistinctUser(t *testing.T) {
	input := "user_id,movie_title\nu1,A\nu2,B\nu1,C\nu3,D\n"

	profiles := BuildProfiles(mustIngest(t, input))

	if len(profiles) != 3 {
		t.Errorf("profile count = %d, want 3", len(profiles))
	}
	for _, id := range []string{"u1", "u2", "u3"} {
		if _, ok := profiles[id]; !ok {
			t.Errorf("missing profile for %s", id)
		}
	}
}
