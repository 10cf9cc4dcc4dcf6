package content

import (
	"strings"

	"github.com/ignite/jarvis-crm/internal/domain"
)

// The engagement estimate is a fixed, documented heuristic — a base score
// adjusted by the request's personalization choices. It is deliberately not
// a statistical model and should never be presented as one.
const engagementBase = 0.5

// wordsPerMinute is the reading-speed assumption behind ReadingTime.
const wordsPerMinute = 200

// Keyword lists for the sentiment label. Matching is case-insensitive
// substring containment over the whole text.
var (
	positiveWords = []string{
		"great", "excellent", "success", "win", "growth", "improve",
		"value", "benefit", "opportunity", "happy", "best", "proven",
	}
	negativeWords = []string{
		"problem", "issue", "risk", "concern", "difficult", "fail",
		"loss", "worry", "delay", "decline",
	}
)

// EstimateEngagement scores expected engagement in [0,1] from the request's
// personalization level, length, and call-to-action choice.
func EstimateEngagement(req domain.GenerationRequest) float64 {
	score := engagementBase
	switch req.PersonalizationLevel {
	case domain.LevelAdvanced:
		score += 0.1
	case domain.LevelMaximum:
		score += 0.2
	}
	switch req.Length {
	case domain.LengthMedium:
		score += 0.05
	case domain.LengthLong:
		score += 0.1
	}
	if req.IncludeCallToAction {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// WordCount is the space-split word count of the text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime estimates reading time in whole minutes, rounded up.
func ReadingTime(words int) int {
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// EstimateComplexity buckets text on word count and average word length.
func EstimateComplexity(text string) domain.Complexity {
	words := strings.Fields(text)
	var letters int
	for _, w := range words {
		letters += len(w)
	}
	avg := 0.0
	if len(words) > 0 {
		avg = float64(letters) / float64(len(words))
	}

	switch {
	case len(words) < 100 && avg < 5:
		return domain.ComplexityLow
	case len(words) < 200 && avg < 6:
		return domain.ComplexityMedium
	default:
		return domain.ComplexityHigh
	}
}

// EstimateSentiment counts fixed positive vs negative keywords; the majority
// wins and ties (including zero matches) are neutral.
func EstimateSentiment(text string) domain.Sentiment {
	lower := strings.ToLower(text)
	var positive, negative int
	for _, w := range positiveWords {
		positive += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		negative += strings.Count(lower, w)
	}

	switch {
	case positive > negative:
		return domain.SentimentPositive
	case negative > positive:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// Suggestions applies the fixed improvement checks. The output order is
// stable so repeated generations stay byte-identical.
func Suggestions(text string) []string {
	out := []string{}
	if len(text) < 100 {
		out = append(out, "Consider adding more personalized context to strengthen the message")
	}
	if !strings.Contains(text, "?") {
		out = append(out, "Adding a question can increase reply rates")
	}
	if !strings.Contains(text, "http") {
		out = append(out, "Include a link to a relevant resource or case study")
	}
	return out
}

// BuildMetadata derives the metadata block for assembled content.
func BuildMetadata(text string) domain.ContentMetadata {
	words := WordCount(text)
	return domain.ContentMetadata{
		WordCount:          words,
		ReadingTimeMinutes: ReadingTime(words),
		Complexity:         EstimateComplexity(text),
		Sentiment:          EstimateSentiment(text),
	}
}
