package gemini

import (
	"context"
	"food-rescue-service/internal/domain"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "")
	require.Error(t, err)
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text(" 7"), genai.Blob{MIMEType: "image/png"}, genai.Text(".5 \n")}},
			}}},
			want: "7.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, responseText(tt.resp))
		})
	}
}

func TestPrompts(t *testing.T) {
	p := classifyPrompt("day-old sourdough")
	assert.Contains(t, p, "Food: day-old sourdough")
	for _, c := range domain.FoodCategories {
		assert.Contains(t, p, string(c))
	}

	posted := time.Date(2026, 3, 1, 7, 0, 0, 0, time.FixedZone("EST", -5*3600))
	p = perishabilityPrompt("salads", domain.CategoryPrepared, posted)
	assert.Contains(t, p, "Category: prepared")
	assert.Contains(t, p, "Posted: 2026-03-01T12:00:00Z")

	p = assignmentPrompt(8.4, false, 45)
	assert.Contains(t, p, "Perishability score: 8.4/10")
	assert.Contains(t, p, "Volunteer available: false")
	assert.Contains(t, p, "Time since posted: 45 minutes")
}
