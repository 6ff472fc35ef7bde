package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/dto"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiAIRepository is an AIRepository implementation backed by the Google
// Gemini API. Token counting goes through the genai client so the limiter can
// block before the request is spent.
type geminiAIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (AIRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)

	return &geminiAIRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiAIRepository) GeneratePicks(ctx context.Context, sport string, games []dto.GameOdds, summaries []entity.NewsSummary, maxPicks int) (*dto.PickGenerationResult, error) {
	prompt := BuildPickGenerationPrompt(sport, games, summaries, maxPicks)

	geminiResp, err := r.executeGeminiAIRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := dto.PickGenerationResult{}
	if err := parseGeminiResponseJSON(geminiResp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *geminiAIRepository) GeneratePropPicks(ctx context.Context, sport string, games []dto.GameOdds, summaries []entity.NewsSummary, maxPicks int) (*dto.PropGenerationResult, error) {
	prompt := BuildPropGenerationPrompt(sport, games, summaries, maxPicks)

	geminiResp, err := r.executeGeminiAIRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := dto.PropGenerationResult{}
	if err := parseGeminiResponseJSON(geminiResp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *geminiAIRepository) AnalyzeNews(ctx context.Context, title, publishedDate, content string, teams []entity.Team) (*dto.NewsAnalysisResult, error) {
	prompt := BuildAnalyzeNewsPrompt(title, publishedDate, content, teams)

	geminiResp, err := r.executeGeminiAIRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := dto.NewsAnalysisResult{}
	if err := parseGeminiResponseJSON(geminiResp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *geminiAIRepository) GenerateNewsSummary(ctx context.Context, team string, newsItems []entity.TeamNews) (*dto.NewsSummaryResult, error) {
	prompt := BuildSummarizeNewsPrompt(team, newsItems)

	geminiResp, err := r.executeGeminiAIRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := dto.NewsSummaryResult{}
	if err := parseGeminiResponseJSON(geminiResp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *geminiAIRepository) ResolvePlayerStat(ctx context.Context, query dto.StatQuery) (*dto.StatAnswerResult, error) {
	prompt := BuildStatResolutionPrompt(query)

	geminiResp, err := r.executeGeminiAIRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := dto.StatAnswerResult{}
	if err := parseGeminiResponseJSON(geminiResp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *geminiAIRepository) executeGeminiAIRequest(ctx context.Context, prompt string) (*dto.GeminiAPIResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, geminiTokenResp.TotalTokens); err != nil {
		return nil, fmt.Errorf("failed to wait for token limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	if int(geminiTokenResp.TotalTokens) > r.cfg.Gemini.MaxTokenPerMinute/2 {
		r.logger.Warn("Token usage has exceeded 50% of the limit", logger.IntField("remaining", r.tokenLimiter.GetRemaining()))
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("Failed to marshal payload", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", r.cfg.Gemini.BaseURL, r.cfg.Gemini.Model, r.cfg.Gemini.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		r.logger.Error("Failed to create new http request", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Received non-OK response from Gemini API", logger.IntField("status_code", resp.StatusCode))
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from Gemini API: %d - %s", resp.StatusCode, string(body))
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		r.logger.Error("Failed to decode response body", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &geminiResp, nil
}

func parseGeminiResponseJSON(resp *dto.GeminiAPIResponse, result interface{}) error {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("invalid response from Gemini API: no content found")
	}

	rawJSON := resp.Candidates[0].Content.Parts[0].Text
	rawJSON = strings.Trim(rawJSON, "`json\n`")

	if err := json.Unmarshal([]byte(rawJSON), result); err != nil {
		return fmt.Errorf("failed to unmarshal result from Gemini response: %w", err)
	}

	return nil
}
