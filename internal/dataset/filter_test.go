package dataset

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestCriteria_GenreAndSearch(t *testing.T) {
	input := "user_id,movie_title,genre\n" +
		"u1,Inception,Sci-Fi\n" +
		"u1,The Matrix,Sci-Fi\n" +
		"u2,Notebook,Romance\n"
	store := mustIngest(t, input)

	got := Criteria{Genre: "Sci-Fi", Search: "mat", Limit: 10}.Apply(store)

	if len(got) != 1 || got[0].Title != "The Matrix" {
		t.Errorf("filtered = %v, want only The Matrix", titles(got))
	}
}

func TestCriteria_UserPredicate(t *testing.T) {
	store := mustIngest(t, "user_id,movie_title\nu1,A\nu2,B\nu1,C\n")

	got := Criteria{User: "u1", Limit: 10}.Apply(store)

	if !reflect.DeepEqual(titles(got), []string{"A", "C"}) {
		t.Errorf("filtered = %v, want [A C]", titles(got))
	}
}

func TestCriteria_AllSentinelDisablesGenrePredicate(t *testing.T) {
	store := mustIngest(t, "user_id,movie_title,genre\nu1,A,Sci-Fi\nu2,B,Drama\n")

	for _, genre := range []string{"", "all", "All", "ALL"} {
		got := Criteria{Genre: genre, Limit: 10}.Apply(store)
		if len(got) != 2 {
			t.Errorf("genre %q matched %d records, want 2", genre, len(got))
		}
	}
}

func TestCriteria_SearchIsCaseInsensitive(t *testing.T) {
	store := mustIngest(t, "user_id,movie_title\nu1,The MATRIX\nu1,Inception\n")

	got := Criteria{Search: "matrix", Limit: 10}.Apply(store)

	if len(got) != 1 || got[0].Title != "The MATRIX" {
		t.Errorf("filtered = %v, want [The MATRIX]", titles(got))
	}
}

func TestCriteria_LimitAppliedAfterPredicates(t *testing.T) {
	// 7 matching rows plus interleaved non-matching rows: a cap applied
	// before filtering would under-count the matches.
	var rows []string
	for i := 0; i < 7; i++ {
		rows = append(rows, fmt.Sprintf("u1,Match %d,Sci-Fi", i))
		rows = append(rows, fmt.Sprintf("u2,Other %d,Drama", i))
	}
	input := "user_id,movie_title,genre\n" + strings.Join(rows, "\n") + "\n"
	store := mustIngest(t, input)

	got := Criteria{Genre: "Sci-Fi", Limit: 5}.Apply(store)

	want := []string{"Match 0", "Match 1", "Match 2", "Match 3", "Match 4"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("capped result = %v, want first 5 matches in input order", titles(got))
	}
}

func TestCriteria_NonPositiveLimitYieldsEmpty(t *testing.T) {
	store := mustIngest(t, "user_id,movie_title\nu1,A\n")

	for _, limit := range []int{0, -1} {
		got := Criteria{Limit: limit}.Apply(store)
		if got == nil {
			t.Fatalf("limit %d returned nil, want empty non-nil slice", limit)
		}
		if len(got) != 0 {
			t.Errorf("limit %d matched %d records, want 0", limit, len(got))
		}
	}
}

func TestCriteria_EmptyResultIsNonNil(t *testing.T) {
	store := mustIngest(t, "user_id,movie_title\nu1,Inception\n")

	got := Criteria{Search: "no such title", Limit: 10}.Apply(store)

	if got == nil {
		t.Fatal("empty match set must be distinguishable from no filtering")
	}
	if len(got) != 0 {
		t.Errorf("matched %d records, want 0", len(got))
	}
}

func TestCriteria_Idempotent(t *testing.T) {
	input := "user_id,movie_title,genre,predicted_rating\n" +
		"u1,Inception,Sci-Fi,4.8\n" +
		"u2,Notebook,Romance,4.2\n" +
		"u1,The Matrix,Sci-Fi,4.6\n"
	store := mustIngest(t, input)
	criteria := Criteria{Genre: "Sci-Fi", Limit: 10}

	first := criteria.Apply(store)
	second := criteria.Apply(store)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical criteria on the same store must yield identical subsets")
	}
}

func titles(records []Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Title
	}
	return out
}
