package strategy

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/repository"
	"gary-picks-engine/pkg/decoder"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

// Statuses for per-feed scrape results.
const (
	SUCCESS = "SUCCESS"
	FAILED  = "FAILED"
	SKIPPED = "SKIPPED"
)

// TeamNewsScraperStrategy pulls Google News RSS feeds for every tracked team,
// resolves the redirect links, extracts article text, and stores the model's
// per-team analysis.
type TeamNewsScraperStrategy struct {
	cfg          *config.Config
	logger       *logger.Logger
	decoder      *decoder.GoogleDecoder
	teamRepo     repository.TeamRepository
	teamNewsRepo repository.TeamNewsRepository
	aiRepo       repository.AIRepository
	client       *http.Client
}

// TeamNewsScraperPayload is the job payload for the scraper.
type TeamNewsScraperPayload struct {
	Sports             []string `json:"sports"`
	DelayInterval      int      `json:"delay_interval"`
	MaxNews            int      `json:"max_news"`
	MaxNewsAgeInDays   int      `json:"max_news_age_in_days"`
	BlackListedDomains []string `json:"blacklisted_domains"`
	MaxConcurrent      int      `json:"max_concurrent"`
}

type scrapeResult struct {
	Status      string   `json:"status"`
	FailedLinks []string `json:"failed_links"`
	Errors      []string `json:"errors"`
	QueryRSS    string   `json:"query_rss"`
}

// NewTeamNewsScraperStrategy creates a new instance of TeamNewsScraperStrategy.
func NewTeamNewsScraperStrategy(
	cfg *config.Config,
	log *logger.Logger,
	googleDecoder *decoder.GoogleDecoder,
	teamRepo repository.TeamRepository,
	teamNewsRepo repository.TeamNewsRepository,
	aiRepo repository.AIRepository,
) *TeamNewsScraperStrategy {
	return &TeamNewsScraperStrategy{
		cfg:          cfg,
		logger:       log,
		decoder:      googleDecoder,
		teamRepo:     teamRepo,
		teamNewsRepo: teamNewsRepo,
		aiRepo:       aiRepo,
		client:       &http.Client{},
	}
}

// GetType returns the job type this strategy handles.
func (s *TeamNewsScraperStrategy) GetType() entity.JobType {
	return entity.JobTypeTeamNewsScraper
}

// Execute runs the team news scraping job.
func (s *TeamNewsScraperStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload TeamNewsScraperPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
	}
	payload = applyNewsDefaults(payload, s.cfg.News)

	if payload.MaxConcurrent <= 0 {
		payload.MaxConcurrent = 2
	}

	teams, err := s.loadTeams(ctx, payload.Sports)
	if err != nil {
		s.logger.Error("Failed to load tracked teams", logger.ErrorField(err))
		return "", fmt.Errorf("failed to load tracked teams: %w", err)
	}

	queryParam := "hl=en-US&gl=US&ceid=US:en"
	var queriesRSS []string
	for _, team := range teams {
		query := url.QueryEscape(team.Name + " " + team.Sport)
		queriesRSS = append(queriesRSS, fmt.Sprintf("/search?q=%s&%s", query, queryParam))
	}

	var results []scrapeResult
	var wg sync.WaitGroup
	var mu sync.Mutex
	semaphore := make(chan struct{}, payload.MaxConcurrent)

	for _, queryRSS := range queriesRSS {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result := s.scrapeFeed(ctx, queryRSS, teams, payload)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}

	wg.Wait()

	resultJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	return string(resultJSON), nil
}

// applyNewsDefaults fills payload fields the job omitted from the service
// configuration.
func applyNewsDefaults(payload TeamNewsScraperPayload, defaults config.News) TeamNewsScraperPayload {
	if payload.MaxNews <= 0 && defaults.MaxArticlesPerTeam > 0 {
		payload.MaxNews = defaults.MaxArticlesPerTeam
	}
	if payload.MaxNewsAgeInDays <= 0 && defaults.MaxArticleAge > 0 {
		payload.MaxNewsAgeInDays = int(defaults.MaxArticleAge.Hours() / 24)
	}
	if payload.DelayInterval <= 0 && defaults.RequestDelay > 0 {
		payload.DelayInterval = int(defaults.RequestDelay.Seconds())
	}
	return payload
}

func (s *TeamNewsScraperStrategy) loadTeams(ctx context.Context, sports []string) ([]entity.Team, error) {
	if len(sports) == 0 {
		return s.teamRepo.FindAll(ctx)
	}

	var teams []entity.Team
	for _, sport := range sports {
		sportTeams, err := s.teamRepo.FindBySport(ctx, sport)
		if err != nil {
			return nil, err
		}
		teams = append(teams, sportTeams...)
	}
	return teams, nil
}

func (s *TeamNewsScraperStrategy) scrapeFeed(ctx context.Context, queryRSS string, teams []entity.Team, payload TeamNewsScraperPayload) scrapeResult {
	result := scrapeResult{
		FailedLinks: []string{},
		Errors:      []string{},
		QueryRSS:    queryRSS,
	}

	feedURL := fmt.Sprintf("https://news.google.com/rss%s", queryRSS)
	s.logger.Info("Processing RSS feed", logger.StringField("url", feedURL))

	fp := gofeed.NewParser()
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		s.logger.Error("Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("query_rss", queryRSS))
		result.Status = FAILED
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	sort.Slice(feed.Items, func(i, j int) bool {
		if feed.Items[i].PublishedParsed == nil || feed.Items[j].PublishedParsed == nil {
			return false
		}
		return feed.Items[i].PublishedParsed.After(*feed.Items[j].PublishedParsed)
	})

	filteredItems, err := s.filterExistingNewsItems(ctx, feed.Items, payload.MaxNewsAgeInDays)
	if err != nil {
		s.logger.Error("Failed to filter existing news items", logger.ErrorField(err), logger.StringField("query_rss", queryRSS))
		result.Status = FAILED
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	s.logger.Info("Filtered news items",
		logger.IntField("original_count", len(feed.Items)),
		logger.IntField("filtered_count", len(filteredItems)),
		logger.StringField("query_rss", queryRSS),
	)

	countSuccess := 0
	for _, item := range filteredItems {
		if !utils.ShouldContinue(ctx, s.logger) {
			return result
		}
		if countSuccess >= payload.MaxNews {
			break
		}

		status, news, err := s.processNewsItem(ctx, item, teams, payload)
		if err != nil {
			result.FailedLinks = append(result.FailedLinks, news.Link)
			result.Errors = append(result.Errors, err.Error())
			s.logger.Error("Failed to process news item", logger.ErrorField(err), logger.StringField("title", item.Title))
			continue
		}
		if status == FAILED {
			result.FailedLinks = append(result.FailedLinks, news.Link)
			continue
		}
		if status == SUCCESS {
			countSuccess++
		}
		time.Sleep(time.Duration(payload.DelayInterval) * time.Second)
	}

	if len(result.FailedLinks) == 0 {
		result.Status = SUCCESS
	} else if countSuccess == 0 {
		result.Status = SKIPPED
	} else {
		result.Status = FAILED
	}

	return result
}

// filterExistingNewsItems drops feed items already stored or older than the
// configured age.
func (s *TeamNewsScraperStrategy) filterExistingNewsItems(ctx context.Context, items []*gofeed.Item, maxNewsAgeInDays int) ([]*gofeed.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	hashMap := make(map[string]*gofeed.Item)
	var hashStrings []string
	for _, item := range items {
		hash := newsHash(item)
		hashMap[hash] = item
		hashStrings = append(hashStrings, hash)
	}

	existingHashes, err := s.teamNewsRepo.FindExistingHashes(ctx, hashStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing news: %w", err)
	}

	now := utils.TimeNowET()

	var filteredItems []*gofeed.Item
	for hash, item := range hashMap {
		if existingHashes[hash] {
			continue
		}
		if item.PublishedParsed == nil {
			continue
		}
		if item.PublishedParsed.Before(now.Add(-time.Duration(maxNewsAgeInDays*24) * time.Hour)) {
			continue
		}
		filteredItems = append(filteredItems, item)
	}

	return filteredItems, nil
}

func (s *TeamNewsScraperStrategy) processNewsItem(ctx context.Context, item *gofeed.Item, teams []entity.Team, payload TeamNewsScraperPayload) (string, entity.TeamNews, error) {
	decodedURL, err := s.decoder.Decode(ctx, item.Link)
	if err != nil {
		return FAILED, entity.TeamNews{}, fmt.Errorf("failed to decode google rss link: %w", err)
	}

	if item.PublishedParsed == nil {
		return FAILED, entity.TeamNews{}, fmt.Errorf("failed to parse published date")
	}
	publishedDateStr := item.PublishedParsed.Format(time.RFC3339)

	news := entity.TeamNews{
		Title:          utils.CleanToValidUTF8(item.Title),
		Link:           decodedURL,
		PublishedAt:    item.PublishedParsed,
		HashIdentifier: newsHash(item),
		GoogleRSSLink:  item.Link,
	}

	parsedURL, err := url.Parse(decodedURL)
	if err != nil {
		return FAILED, entity.TeamNews{}, fmt.Errorf("failed to parse decoded URL: %w", err)
	}
	news.Source = parsedURL.Hostname()

	if utils.ContainsString(payload.BlackListedDomains, parsedURL.Hostname()) {
		s.logger.Warn("Skip news from blacklisted domain", logger.StringField("domain", parsedURL.Hostname()))
		return SKIPPED, news, nil
	}

	rawContent, err := s.generateContent(ctx, decodedURL)
	if err != nil {
		return FAILED, entity.TeamNews{}, fmt.Errorf("failed to generate raw content: %w", err)
	}
	news.RawContent = rawContent

	analysisResult, err := s.aiRepo.AnalyzeNews(ctx, news.Title, publishedDateStr, news.RawContent, teams)
	if err != nil {
		return FAILED, entity.TeamNews{}, fmt.Errorf("failed to analyze news content: %w", err)
	}
	if analysisResult == nil {
		return FAILED, entity.TeamNews{}, fmt.Errorf("failed to analyze news content")
	}

	if len(analysisResult.TeamMentions) == 0 {
		s.logger.Info("Article mentions no tracked team", logger.StringField("title", news.Title))
		return SKIPPED, news, nil
	}

	news.ImpactScore = analysisResult.ImpactScore
	news.Summary = analysisResult.Summary
	news.KeyIssue = analysisResult.KeyIssue
	for _, mention := range analysisResult.TeamMentions {
		news.NewsMentions = append(news.NewsMentions, entity.NewsMention{
			Team:            mention.Team,
			Sport:           mention.Sport,
			Sentiment:       mention.Sentiment,
			Impact:          mention.Impact,
			Reason:          mention.Reason,
			ConfidenceScore: mention.ConfidenceScore,
		})
	}

	if err := s.teamNewsRepo.CreateIgnoreConflict(ctx, &news); err != nil {
		return FAILED, news, fmt.Errorf("failed to create team news: %w", err)
	}

	return SUCCESS, news, nil
}

func (s *TeamNewsScraperStrategy) generateContent(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for news item: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch news content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch news content, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}

	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}

	content := strings.TrimSpace(docHTML.Text())
	content = strings.ReplaceAll(content, "\n", " ")
	content = strings.ReplaceAll(content, "\t", " ")
	content = strings.ReplaceAll(content, "\r", " ")
	return utils.SafeText(content), nil
}

func newsHash(item *gofeed.Item) string {
	sum := md5.Sum([]byte(item.Link + "|" + item.Published))
	return hex.EncodeToString(sum[:])
}
