package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"grid-snake/storage"
)

func printHistory(ctx context.Context, store storage.Store, w io.Writer) error {
	records, err := store.Records(ctx)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "no games played yet")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GAME\tSTARTED\tDURATION\tSCORE\tRESULT")
	for _, rec := range records {
		result := "lost"
		if rec.Won {
			result = "won"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			shortID(rec.ID),
			rec.StartTime.Format(time.DateTime),
			rec.Duration().Round(time.Second),
			rec.Score,
			result)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sum := storage.Summarize(records)
	fmt.Fprintf(w, "\n%d games, %d won\n", sum.GamesPlayed, sum.Wins)
	fmt.Fprintf(w, "score: best %d, worst %d, average %.1f, median %.1f\n",
		sum.MaxScore, sum.MinScore, sum.AverageScore, sum.MedianScore)
	fmt.Fprintf(w, "duration: average %s, longest %s\n",
		sum.AverageDuration.Round(time.Second), sum.MaxDuration.Round(time.Second))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
