package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
)

func TestSentimentWeight(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{name: "strongly negative", p: 0.1, want: 1.0},
		{name: "just below strong boundary", p: 0.29, want: 1.0},
		{name: "moderately negative", p: 0.3, want: 0.8},
		{name: "just below neutral band", p: 0.49, want: 0.8},
		{name: "neutral low edge", p: 0.5, want: 0.4},
		{name: "neutral high edge", p: 0.7, want: 0.4},
		{name: "strongly positive", p: 0.9, want: 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sentimentWeight(tt.p))
		})
	}
}

func TestCriticalityScorer_KeywordScoreCapped(t *testing.T) {
	s := NewCriticalityScorer(&mockSentimentService{}, CriticalityConfig{
		Lexicon: map[string]float64{
			"예산":   1.0,
			"전면개편": 0.9,
			"논란":   0.8,
		},
		KeywordWeight:    0.4,
		SentimentWeight:  0.3,
		SimilarityWeight: 0.3,
	})

	// Three lexicon hits sum to 2.7, capped at 1.0.
	assert.Equal(t, 1.0, s.keywordScore("교육부 예산 전면개편 논란"))
	assert.Equal(t, 0.8, s.keywordScore("작은 논란"))
	assert.Equal(t, 0.0, s.keywordScore("조용한 소식"))
}

func TestCriticalityScorer_Blend(t *testing.T) {
	sentiment := &mockSentimentService{scores: map[string]float64{
		"교육부 예산 전면개편 논란": 0.2,
	}}
	s := NewCriticalityScorer(sentiment, CriticalityConfig{
		Lexicon:          map[string]float64{"예산": 1.0, "전면개편": 0.9, "논란": 0.8},
		KeywordWeight:    0.4,
		SentimentWeight:  0.3,
		SimilarityWeight: 0.3,
	})

	records, err := s.Run(context.Background(), []domain.Classification{
		{
			Article:    domain.Article{ID: "1", Title: "교육부 예산 전면개편 논란"},
			Similarity: 1.0,
		},
	})

	require.NoError(t, err)
	require.Len(t, records, 1)
	// 0.4*1.0 (keywords) + 0.3*1.0 (P=0.2) + 0.3*1.0 (similarity).
	assert.InDelta(t, 1.0, records[0].Score, 1e-9)
	assert.Equal(t, "1", records[0].ArticleID)
}

func TestCriticalityScorer_NeutralTitle(t *testing.T) {
	sentiment := &mockSentimentService{scores: map[string]float64{
		"평범한 교육 소식": 0.6,
	}}
	s := NewCriticalityScorer(sentiment, DefaultCriticalityConfig())

	records, err := s.Run(context.Background(), []domain.Classification{
		{
			Article:    domain.Article{ID: "1", Title: "평범한 교육 소식"},
			Similarity: 0.5,
		},
	})

	require.NoError(t, err)
	require.Len(t, records, 1)
	// No lexicon hits, neutral band weight 0.4, similarity 0.5.
	assert.InDelta(t, 0.4*0.0+0.3*0.4+0.3*0.5, records[0].Score, 1e-9)
}

func TestCriticalityScorer_Bounds(t *testing.T) {
	sentiment := &mockSentimentService{}
	s := NewCriticalityScorer(sentiment, DefaultCriticalityConfig())

	results := []domain.Classification{
		{Article: domain.Article{ID: "1", Title: "위기 논란 전면 삭감 폐지"}, Similarity: 1.0},
		{Article: domain.Article{ID: "2", Title: "가나다"}, Similarity: 0.0},
		{Article: domain.Article{ID: "3", Title: ""}, Similarity: 0.5},
	}

	records, err := s.Run(context.Background(), results)

	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, rec := range records {
		assert.GreaterOrEqual(t, rec.Score, 0.0)
		assert.LessOrEqual(t, rec.Score, 1.0)
	}
}

func TestCriticalityScorer_SentimentErrorRecoversNeutral(t *testing.T) {
	sentiment := &mockSentimentService{scoreErr: assert.AnError}
	s := NewCriticalityScorer(sentiment, DefaultCriticalityConfig())

	records, err := s.Run(context.Background(), []domain.Classification{
		{Article: domain.Article{ID: "1", Title: "사건 없는 제목"}, Similarity: 0.6},
	})

	require.NoError(t, err, "a single row's sentiment failure must not abort the batch")
	require.Len(t, records, 1)
	// The neutral fallback P=0.5 maps to weight 0.4.
	assert.InDelta(t, 0.3*0.4+0.3*0.6, records[0].Score, 1e-9)
}

func TestCriticalityScorer_EmptyTitleSkipsSentiment(t *testing.T) {
	// The error would surface if the scorer called Score for an empty
	// title; it must use the neutral probability directly.
	sentiment := &mockSentimentService{scoreErr: assert.AnError}
	s := NewCriticalityScorer(sentiment, DefaultCriticalityConfig())

	records, err := s.Run(context.Background(), []domain.Classification{
		{Article: domain.Article{ID: "1", Title: "   "}, Similarity: 1.0},
	})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 0.3*0.4+0.3*1.0, records[0].Score, 1e-9)
}

func TestCriticalityScorer_NonFiniteSimilarityRecordsZero(t *testing.T) {
	sentiment := &mockSentimentService{}
	s := NewCriticalityScorer(sentiment, DefaultCriticalityConfig())

	nan := 0.0
	nan /= nan

	records, err := s.Run(context.Background(), []domain.Classification{
		{Article: domain.Article{ID: "bad", Title: "제목"}, Similarity: nan},
		{Article: domain.Article{ID: "good", Title: "제목 둘"}, Similarity: 0.5},
	})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0.0, records[0].Score)
	assert.Greater(t, records[1].Score, 0.0, "a bad row must not poison its neighbours")
}

func TestCriticalityScorer_NilSentiment(t *testing.T) {
	s := NewCriticalityScorer(nil, DefaultCriticalityConfig())

	_, err := s.Run(context.Background(), []domain.Classification{
		{Article: domain.Article{ID: "1", Title: "제목"}},
	})

	require.ErrorIs(t, err, domain.ErrSentimentUnavailable)
}

func TestCriticalityScorer_EmptyInput(t *testing.T) {
	s := NewCriticalityScorer(&mockSentimentService{}, DefaultCriticalityConfig())

	records, err := s.Run(context.Background(), nil)

	require.NoError(t, err)
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDefaultPolicyLexicon_Weights(t *testing.T) {
	lexicon := DefaultPolicyLexicon()

	require.NotEmpty(t, lexicon)
	assert.Equal(t, 1.0, lexicon["위기"])
	assert.Equal(t, 1.0, lexicon["예산"])
	for term, weight := range lexicon {
		assert.Greater(t, weight, 0.0, "term %q", term)
		assert.LessOrEqual(t, weight, 1.0, "term %q", term)
	}
}
