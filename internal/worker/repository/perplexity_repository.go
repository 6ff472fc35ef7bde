package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/pkg/logger"

	"golang.org/x/time/rate"
)

// Perplexity speaks the OpenAI chat completion wire format but its models have
// live web access, which makes it the preferred provider for resolving final
// stat lines.
type perplexityAIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewPerplexityRepository creates an AIRepository backed by the Perplexity API.
func NewPerplexityRepository(cfg *config.Config, logger *logger.Logger) AIRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Perplexity.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &perplexityAIRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         logger,
		requestLimiter: requestLimiter,
	}
}

func (r *perplexityAIRepository) GeneratePicks(ctx context.Context, sport string, games []dto.GameOdds, summaries []entity.NewsSummary, maxPicks int) (*dto.PickGenerationResult, error) {
	prompt := BuildPickGenerationPrompt(sport, games, summaries, maxPicks)

	resp, err := r.SendRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := dto.PickGenerationResult{}
	if err := parseChatResponseJSON(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *perplexityAIRepository) GeneratePropPicks(ctx context.Context, sport string, games []dto.GameOdds, summaries []entity.NewsSummary, maxPicks int) (*dto.PropGenerationResult, error) {
	prompt := BuildPropGenerationPrompt(sport, games, summaries, maxPicks)

	resp, err := r.SendRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := dto.PropGenerationResult{}
	if err := parseChatResponseJSON(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *perplexityAIRepository) AnalyzeNews(ctx context.Context, title, publishedDate, content string, teams []entity.Team) (*dto.NewsAnalysisResult, error) {
	prompt := BuildAnalyzeNewsPrompt(title, publishedDate, content, teams)

	resp, err := r.SendRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := dto.NewsAnalysisResult{}
	if err := parseChatResponseJSON(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *perplexityAIRepository) GenerateNewsSummary(ctx context.Context, team string, newsItems []entity.TeamNews) (*dto.NewsSummaryResult, error) {
	prompt := BuildSummarizeNewsPrompt(team, newsItems)

	resp, err := r.SendRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := dto.NewsSummaryResult{}
	if err := parseChatResponseJSON(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *perplexityAIRepository) ResolvePlayerStat(ctx context.Context, query dto.StatQuery) (*dto.StatAnswerResult, error) {
	prompt := BuildStatResolutionPrompt(query)

	resp, err := r.SendRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := dto.StatAnswerResult{}
	if err := parseChatResponseJSON(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *perplexityAIRepository) SendRequest(ctx context.Context, prompt string) (*dto.OpenAPIRes, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.logger.Error("failed to wait for request limit", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.OpenAPIReq{
		Model: r.cfg.Perplexity.Model,
		Messages: []dto.Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.cfg.Perplexity.BaseURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.cfg.Perplexity.APIKey))

	r.logger.Debug("Sending request to Perplexity API", logger.StringField("url", r.cfg.Perplexity.BaseURL), logger.StringField("model", r.cfg.Perplexity.Model))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Perplexity API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Received non-OK response from Perplexity API", logger.IntField("status_code", resp.StatusCode), logger.StringField("model", r.cfg.Perplexity.Model))
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from Perplexity API: %d - %s", resp.StatusCode, string(body))
	}

	var perplexityResp dto.OpenAPIRes
	if err := json.NewDecoder(resp.Body).Decode(&perplexityResp); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &perplexityResp, nil
}
