package domain

// MatchResult is computed per request and never persisted.
type MatchResult struct {
	RecipientID   int64
	RecipientName string
	Score         float64
	DistanceMiles float64
}
