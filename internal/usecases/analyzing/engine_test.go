package analyzing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/openai/mocks"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testCampaign() *domain.Campaign {
	audience := "mulheres 25-34"
	return &domain.Campaign{
		ID:             "cmp-1",
		Name:           "Spring Sale",
		Platform:       domain.PlatformGoogle,
		Budget:         100,
		TargetAudience: &audience,
		PerformanceMetrics: map[string]any{
			"clicks": 120,
		},
	}
}

func newTestEngine(t *testing.T) (*Engine, *mocks.MockCompleter) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	engine := NewEngine(completer)
	engine.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return engine, completer
}

func TestEngine_Analyze(t *testing.T) {
	t.Run("resposta válida é convertida", func(t *testing.T) {
		engine, completer := newTestEngine(t)

		completer.EXPECT().
			Complete(gomock.Any(), systemPrompt, gomock.Any()).
			Return("```json\n"+`{"version":"v1","insights":{"ctr":"alto"},"recommendations":["aumentar orçamento"],"performance_score":82.5,"improvement_areas":["criativos"]}`+"\n```", nil)

		analysis := engine.Analyze(context.Background(), testCampaign())

		require.NotNil(t, analysis)
		assert.False(t, analysis.Degraded)
		assert.Equal(t, "cmp-1", analysis.CampaignID)
		assert.NotEmpty(t, analysis.ID)
		assert.Equal(t, 82.5, analysis.PerformanceScore)
		assert.Equal(t, []string{"aumentar orçamento"}, analysis.Recommendations)
		assert.Equal(t, []string{"criativos"}, analysis.ImprovementAreas)
		assert.Equal(t, "alto", analysis.Insights["ctr"])
		assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), analysis.AnalysisDate)
	})

	t.Run("backend indisponível gera análise degradada", func(t *testing.T) {
		engine, completer := newTestEngine(t)
		completer.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("connection refused"))

		analysis := engine.Analyze(context.Background(), testCampaign())

		assert.True(t, analysis.Degraded)
		assert.Equal(t, 0.0, analysis.PerformanceScore)
		assert.Equal(t, []string{"System error"}, analysis.ImprovementAreas)
		assert.Equal(t, []string{"Unable to generate recommendations"}, analysis.Recommendations)
		assert.Equal(t, "connection refused", analysis.Insights["error"])
		assert.Equal(t, "cmp-1", analysis.CampaignID)
	})

	t.Run("resposta fora do contrato gera análise degradada", func(t *testing.T) {
		engine, completer := newTestEngine(t)
		completer.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return("A campanha está ótima!", nil)

		analysis := engine.Analyze(context.Background(), testCampaign())

		assert.True(t, analysis.Degraded)
		assert.NotEmpty(t, analysis.Insights["error"])
	})

	t.Run("panic do backend gera análise degradada", func(t *testing.T) {
		engine, completer := newTestEngine(t)
		completer.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, string, string) (string, error) { panic("boom") })

		analysis := engine.Analyze(context.Background(), testCampaign())

		assert.True(t, analysis.Degraded)
		assert.Equal(t, "cmp-1", analysis.CampaignID)
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(testCampaign())

	require.NoError(t, err)
	assert.Contains(t, prompt, "Name: Spring Sale")
	assert.Contains(t, prompt, "Platform: google")
	assert.Contains(t, prompt, "Budget: 100.00")
	assert.Contains(t, prompt, "Target Audience: mulheres 25-34")
	assert.Contains(t, prompt, `"clicks":120`)
	assert.Contains(t, prompt, `"version":"v1"`)
}

func TestParseV1(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   error
		wantScore float64
	}{
		{
			name:      "objeto cercado por prosa",
			input:     `Segue: {"insights":{"a":1},"recommendations":["x"],"performance_score":50,"improvement_areas":["y"]} fim`,
			wantScore: 50,
		},
		{
			name:      "score acima do limite é limitado",
			input:     `{"insights":{"a":1},"recommendations":["x"],"performance_score":180,"improvement_areas":["y"]}`,
			wantScore: 100,
		},
		{
			name:      "score negativo vira zero",
			input:     `{"insights":{"a":1},"recommendations":["x"],"performance_score":-3,"improvement_areas":["y"]}`,
			wantScore: 0,
		},
		{
			name:    "sem objeto",
			input:   "nada aqui",
			wantErr: ErrNoJSONObject,
		},
		{
			name:    "recomendações vazias",
			input:   `{"insights":{"a":1},"recommendations":["  "],"performance_score":50,"improvement_areas":["y"]}`,
			wantErr: ErrIncompletePayload,
		},
		{
			name:    "sem score",
			input:   `{"insights":{"a":1},"recommendations":["x"],"improvement_areas":["y"]}`,
			wantErr: ErrIncompletePayload,
		},
		{
			name:    "versão desconhecida",
			input:   `{"version":"v9","insights":{"a":1},"recommendations":["x"],"performance_score":1,"improvement_areas":["y"]}`,
			wantErr: ErrUnknownVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := ParseV1(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, analysis)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, analysis.PerformanceScore)
			assert.Equal(t, domain.AnalysisParserV1, analysis.ParserVersion)
		})
	}
}
