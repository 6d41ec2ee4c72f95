package storage

import (
	"sort"
	"time"
)

// Summary aggregates a game history.
type Summary struct {
	GamesPlayed     int
	Wins            int
	MaxScore        int
	MinScore        int
	AverageScore    float64
	MedianScore     float64
	AverageDuration time.Duration
	MaxDuration     time.Duration
}

// Summarize computes aggregate statistics over records.
func Summarize(records []Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	sum := Summary{
		GamesPlayed: len(records),
		MaxScore:    records[0].Score,
		MinScore:    records[0].Score,
	}

	var totalScore int
	var totalDuration time.Duration
	scores := make([]int, 0, len(records))
	for _, r := range records {
		if r.Won {
			sum.Wins++
		}
		if r.Score > sum.MaxScore {
			sum.MaxScore = r.Score
		}
		if r.Score < sum.MinScore {
			sum.MinScore = r.Score
		}
		if d := r.Duration(); d > sum.MaxDuration {
			sum.MaxDuration = d
		}
		totalScore += r.Score
		totalDuration += r.Duration()
		scores = append(scores, r.Score)
	}

	sum.AverageScore = float64(totalScore) / float64(len(records))
	sum.AverageDuration = totalDuration / time.Duration(len(records))

	sort.Ints(scores)
	if len(scores)%2 == 0 {
		sum.MedianScore = float64(scores[len(scores)/2-1]+scores[len(scores)/2]) / 2
	} else {
		sum.MedianScore = float64(scores[len(scores)/2])
	}
	return sum
}
