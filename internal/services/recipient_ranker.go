package services

import (
	"cmp"
	"context"
	"food-rescue-service/internal/domain"
	"iter"
	"slices"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultMatchLimit         = 5
	defaultScoringConcurrency = 8
)

// RecipientRanker orders candidate recipients for a donation by match score.
type RecipientRanker struct {
	scorer      *MatchScorer
	concurrency int
}

func NewRecipientRanker(scorer *MatchScorer, concurrency int) *RecipientRanker {
	if concurrency < 1 {
		concurrency = defaultScoringConcurrency
	}
	return &RecipientRanker{scorer: scorer, concurrency: concurrency}
}

type scoredRecipient struct {
	recipient domain.Recipient
	match     domain.MatchResult
}

// Rank returns at most limit recipients with a positive score, best first.
// Equal scores keep candidate order. The sequence is recomputed on every
// iteration so it always reflects the current snapshots. A limit below 1
// uses DefaultMatchLimit.
func (rk *RecipientRanker) Rank(ctx context.Context, d domain.Donation, candidates []domain.Recipient, limit int) iter.Seq2[domain.Recipient, domain.MatchResult] {
	if limit < 1 {
		limit = DefaultMatchLimit
	}

	return func(yield func(domain.Recipient, domain.MatchResult) bool) {
		ranked := rk.score(ctx, d, candidates)
		for i, sr := range ranked {
			if i == limit {
				return
			}
			if !yield(sr.recipient, sr.match) {
				return
			}
		}
	}
}

// Matches collects Rank into a slice of match results.
func (rk *RecipientRanker) Matches(ctx context.Context, d domain.Donation, candidates []domain.Recipient, limit int) []domain.MatchResult {
	out := []domain.MatchResult{}
	for _, m := range rk.Rank(ctx, d, candidates, limit) {
		out = append(out, m)
	}
	return out
}

func (rk *RecipientRanker) score(ctx context.Context, d domain.Donation, candidates []domain.Recipient) []scoredRecipient {
	results := make([]domain.MatchResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rk.concurrency)
	for i := range candidates {
		g.Go(func() error {
			results[i] = rk.scorer.Score(gctx, d, candidates[i])
			return nil
		})
	}
	_ = g.Wait()

	ranked := make([]scoredRecipient, 0, len(candidates))
	for i, m := range results {
		if m.Score > 0 {
			ranked = append(ranked, scoredRecipient{recipient: candidates[i], match: m})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scoredRecipient) int {
		return cmp.Compare(b.match.Score, a.match.Score)
	})
	return ranked
}
