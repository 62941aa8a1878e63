package series

import (
	"math"
	"testing"

	"animeseries/internal/catalog"
	"animeseries/internal/store"
)

func aggregateMembers() []*store.Anime {
	return []*store.Anime{
		{ExternalID: 1, Year: 2017, Episodes: 12, Score: 8.5, Popularity: 100, Status: catalog.StatusFinished},
		{ExternalID: 2, Year: 2013, Episodes: 25, Score: 8.0, Popularity: 50, Status: catalog.StatusFinished},
		{ExternalID: 3, Year: 0, Episodes: 0, Score: 0, Popularity: 0, Status: catalog.StatusUpcoming},
		{ExternalID: 4, Year: 2019, Episodes: 10, Score: 9.0, Popularity: 30, Status: catalog.StatusFinished},
	}
}

func TestRecomputeIsOrderIndependent(t *testing.T) {
	members := aggregateMembers()
	orders := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {2, 0, 3, 1}}
	for _, order := range orders {
		shuffled := make([]*store.Anime, 0, len(order))
		for _, idx := range order {
			shuffled = append(shuffled, members[idx])
		}
		var got store.Series
		Recompute(&got, shuffled)
		if got.StartYear != 2013 || got.EndYear != 2019 {
			t.Fatalf("order %v: years %d-%d", order, got.StartYear, got.EndYear)
		}
		if got.TotalEpisodes != 47 {
			t.Fatalf("order %v: total episodes %d", order, got.TotalEpisodes)
		}
		if math.Abs(got.AverageScore-8.5) > 1e-9 {
			t.Fatalf("order %v: average score %f", order, got.AverageScore)
		}
		if math.Abs(got.Popularity-60) > 1e-9 {
			t.Fatalf("order %v: popularity %f", order, got.Popularity)
		}
		if got.Status != store.SeriesStatusCompleted {
			t.Fatalf("order %v: status %q", order, got.Status)
		}
	}
}

func TestRecomputeStatus(t *testing.T) {
	tests := []struct {
		statuses []string
		want     string
	}{
		{[]string{catalog.StatusFinished, catalog.StatusAiring}, store.SeriesStatusOngoing},
		{[]string{catalog.StatusUpcoming, catalog.StatusFinished}, store.SeriesStatusCompleted},
		{[]string{catalog.StatusUpcoming}, store.SeriesStatusUpcoming},
		{nil, store.SeriesStatusUpcoming},
	}
	for _, tt := range tests {
		members := make([]*store.Anime, 0, len(tt.statuses))
		for i, status := range tt.statuses {
			members = append(members, &store.Anime{ExternalID: int64(i + 1), Status: status})
		}
		var got store.Series
		Recompute(&got, members)
		if got.Status != tt.want {
			t.Fatalf("statuses %v: got %q want %q", tt.statuses, got.Status, tt.want)
		}
	}
}

func TestOrderMembers(t *testing.T) {
	ordered := OrderMembers(aggregateMembers())
	want := []int64{2, 1, 4, 3}
	for i, member := range ordered {
		if member.ExternalID != want[i] {
			t.Fatalf("position %d: got %d want %d", i, member.ExternalID, want[i])
		}
	}
}
