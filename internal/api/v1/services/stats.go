package services

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/samber/lo"

	"scribe/internal/api/v1/dto"
	"scribe/internal/app/model"
	"scribe/internal/app/repository"
)

const recentFilesLimit = 5

type StatsServiceImpl struct {
	store repository.RecordStore
}

func NewStatsService(store repository.RecordStore) *StatsServiceImpl {
	return &StatsServiceImpl{store: store}
}

// Stats aggregates the whole history. Records without a duration count
// toward the total but not toward the duration figures.
func (s *StatsServiceImpl) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(records), nil
}

// Summarize computes the stats of records given in append order.
func Summarize(records []model.TranscriptionRecord) *dto.StatsResponse {
	stats := &dto.StatsResponse{
		TotalTranscriptions: len(records),
		RecentFiles:         []string{},
	}
	if len(records) == 0 {
		return stats
	}

	durations := lo.FilterMap(records, func(r model.TranscriptionRecord, _ int) (float64, bool) {
		if r.DurationSeconds == nil {
			return 0, false
		}
		return *r.DurationSeconds, true
	})
	if len(durations) > 0 {
		total := lo.Sum(durations)
		stats.TotalDurationSeconds = round2(total)
		stats.AverageDurationSeconds = round2(total / float64(len(durations)))
	}

	stats.MostUsedModel = mostUsedModel(records)

	// Newest first; equal timestamps keep the later append first.
	newest := lo.Reverse(slices.Clone(records))
	slices.SortStableFunc(newest, func(a, b model.TranscriptionRecord) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	stats.RecentFiles = lo.Map(newest[:min(recentFilesLimit, len(newest))], func(r model.TranscriptionRecord, _ int) string {
		return r.Filename
	})

	return stats
}

// mostUsedModel breaks ties by the lexicographically smallest name.
func mostUsedModel(records []model.TranscriptionRecord) *string {
	counts := lo.CountValuesBy(records, func(r model.TranscriptionRecord) string {
		return r.Model
	})
	models := lo.Keys(counts)
	slices.SortFunc(models, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return &models[0]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
