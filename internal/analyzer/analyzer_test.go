package analyzer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(seed int64) *Analyzer {
	return New(rand.New(rand.NewSource(seed)), zerolog.Nop())
}

func TestAnalyzeNeutralFallbackTag(t *testing.T) {
	a := newTestAnalyzer(1)

	// No marker words, length between 30 and 50.
	result := a.Analyze("the project was finished on time by all")
	require.Equal(t, []string{"Neutral"}, result.Tags)
}

func TestAnalyzeTagRules(t *testing.T) {
	a := newTestAnalyzer(1)

	cases := []struct {
		name    string
		comment string
		tags    []string
	}{
		{
			name:    "short comment is vague",
			comment: "nice work",
			tags:    []string{"Vague"},
		},
		{
			name:    "medium comment is constructive",
			comment: "the report structure was organized and the sections flowed logically",
			tags:    []string{"Constructive"},
		},
		{
			name:    "long comment is detailed and constructive",
			comment: strings.Repeat("the analysis covered every milestone in depth. ", 3),
			tags:    []string{"Detailed", "Constructive"},
		},
		{
			name:    "keyword tags stack",
			comment: "great work, you should improve the summary section though, thank you",
			tags:    []string{"Constructive", "Positive", "Actionable", "Polite"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := a.Analyze(tc.comment)
			require.Equal(t, tc.tags, result.Tags)
			require.NotEmpty(t, result.Tags)
		})
	}
}

func TestAnalyzeSentimentZeroWithoutMarkerWords(t *testing.T) {
	a := newTestAnalyzer(42)

	// No jitter applies when neither positive nor negative words occur.
	for i := 0; i < 50; i++ {
		result := a.Analyze("the deliverable arrived before the agreed deadline")
		require.Zero(t, result.SentimentScore)
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	a := newTestAnalyzer(7)

	adversarial := []string{
		"",
		"good great excellent outstanding helpful clear strong effective",
		"poor bad weak unclear confusing inadequate lacking",
		strings.Repeat("you should improve this, for example consider the second instance. ", 10),
		"ok",
	}

	for _, comment := range adversarial {
		for i := 0; i < 200; i++ {
			result := a.Analyze(comment)
			require.GreaterOrEqual(t, result.SentimentScore, -1.0)
			require.LessOrEqual(t, result.SentimentScore, 1.0)
			require.GreaterOrEqual(t, result.UsefulnessScore, 0)
			require.LessOrEqual(t, result.UsefulnessScore, 100)
		}
	}
}

func TestAnalyzeSentimentDirection(t *testing.T) {
	a := newTestAnalyzer(9)

	// All-positive comments score above all-negative ones even with jitter,
	// since the raw scores are +1 and -1 and jitter is bounded by 0.1.
	positive := a.Analyze("good great excellent work here")
	negative := a.Analyze("poor bad weak and confusing result")
	require.Greater(t, positive.SentimentScore, 0.0)
	require.Less(t, negative.SentimentScore, 0.0)
}

func TestAnalyzeFlagReasonOnlyWhenFlagged(t *testing.T) {
	a := newTestAnalyzer(3)

	flagged := 0
	for i := 0; i < 500; i++ {
		result := a.Analyze("steady contribution across the sprint cycle")
		if result.IsFlagged {
			flagged++
			require.Contains(t, flagReasons, result.FlagReason)
		} else {
			require.Empty(t, result.FlagReason)
		}
	}

	// p = 0.10, so 500 draws land well inside this window.
	require.Greater(t, flagged, 10)
	require.Less(t, flagged, 150)
}

func TestSummarize(t *testing.T) {
	a := newTestAnalyzer(5)

	require.Equal(t, "No feedback available yet.", a.Summarize(nil))
	require.Contains(t, summaryTemplates, a.Summarize([]string{"solid work"}))
}
