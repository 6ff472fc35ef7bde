package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gary-picks-engine/internal/entity"
	"gary-picks-engine/internal/worker/dto"
)

// The pick persona. Every pick-facing prompt speaks as "Gary", a confident
// sports handicapper, so rationales across providers read with one voice.
const garyPersona = `You are Gary, a veteran sports handicapper with decades of experience reading betting markets. You are confident, direct, and you always explain your edge. You never hedge with vague language.`

func formatGamesBlock(games []dto.GameOdds) string {
	var b strings.Builder
	for i, g := range games {
		b.WriteString(fmt.Sprintf(
			"%d. event_id: %s\n   %s @ %s\n   Game time: %s\n   Moneyline: %s %+d / %s %+d\n   Spread: %s %.1f (%+d)\n\n",
			i+1, g.EventID, g.AwayTeam, g.HomeTeam, g.GameTime.Format(time.RFC3339),
			g.AwayTeam, g.AwayML, g.HomeTeam, g.HomeML,
			g.HomeTeam, g.HomeSpread, g.SpreadPrice,
		))
	}
	return b.String()
}

func formatSummariesBlock(summaries []entity.NewsSummary) string {
	if len(summaries) == 0 {
		return "No recent team news available. Ignore news in this analysis.\n"
	}
	var b strings.Builder
	for _, s := range summaries {
		keyIssuesJSON, _ := json.Marshal(s.KeyIssues)
		b.WriteString(fmt.Sprintf(
			"- Team: %s\n  Sentiment: %s\n  Impact: %s\n  Confidence: %.2f\n  Key issues: %s\n  Summary: %s\n",
			s.Team, s.SummarySentiment, s.SummaryImpact, s.SummaryConfidenceScore, string(keyIssuesJSON), s.ShortSummary,
		))
	}
	return b.String()
}

// BuildPickGenerationPrompt asks for game picks on today's slate.
func BuildPickGenerationPrompt(sport string, games []dto.GameOdds, summaries []entity.NewsSummary, maxPicks int) string {
	promptTemplate := `%s

Here are today's %s games with current odds:

%s
Recent team news:

%s
Pick the %d best bets from this slate. Only use the listed event_id values. For each pick choose either the moneyline or the spread, whichever holds the edge. Confidence is your estimated win probability between 0.0 and 1.0; do not submit picks below 0.55.

Answer in JSON only, with this structure:
{
  "picks": [
    {
      "event_id": "<string, from the list above>",
      "pick_team": "<string, exact team name>",
      "bet_type": "moneyline | spread",
      "spread": <float, only for spread bets, the line for pick_team>,
      "confidence_score": <float 0.0-1.0>,
      "rationale": "<string, 2-4 sentences in Gary's voice>"
    }
  ]
}`

	return fmt.Sprintf(promptTemplate, garyPersona, strings.ToUpper(sport), formatGamesBlock(games), formatSummariesBlock(summaries), maxPicks)
}

// BuildPropGenerationPrompt asks for player prop picks on today's slate.
func BuildPropGenerationPrompt(sport string, games []dto.GameOdds, summaries []entity.NewsSummary, maxPicks int) string {
	promptTemplate := `%s

Here are today's %s games:

%s
Recent team news:

%s
Give the %d best player prop bets for this slate. Use realistic stat lines for the market (points, rebounds, assists, passing_yards, and similar). Only players expected to play. Confidence is your estimated win probability between 0.0 and 1.0; do not submit props below 0.55.

Answer in JSON only, with this structure:
{
  "props": [
    {
      "event_id": "<string, from the list above>",
      "player_name": "<string, full name>",
      "team": "<string>",
      "opponent": "<string>",
      "stat_type": "<string, snake_case stat name>",
      "line": <float>,
      "side": "over | under",
      "odds_american": <int, e.g. -110>,
      "confidence_score": <float 0.0-1.0>,
      "rationale": "<string, 2-4 sentences in Gary's voice>"
    }
  ]
}`

	return fmt.Sprintf(promptTemplate, garyPersona, strings.ToUpper(sport), formatGamesBlock(games), formatSummariesBlock(summaries), maxPicks)
}

// BuildAnalyzeNewsPrompt asks for a structured read of one scraped article.
func BuildAnalyzeNewsPrompt(title, publishedDate, content string, teams []entity.Team) string {
	var teamList strings.Builder
	for _, t := range teams {
		teamList.WriteString(fmt.Sprintf("- %s (%s)\n", t.Name, t.Sport))
	}

	return fmt.Sprintf(`You are a sports news analyst. Analyze the article below and report which of the tracked teams it affects and how.

Tracked teams:
%s
Criteria:
- Sentiment: "positive", "neutral", or "negative" for the team's chances in upcoming games
- Impact: "major", "moderate", or "minor"
- Confidence Score: between 0.0 (very unsure) and 1.0 (very sure)
- Impact Score: between 0.0 (no betting relevance) and 1.0 (line-moving news)
- If the article is irrelevant to every tracked team, return an empty team_mentions array.
- "reason" is required and must not be empty.

Answer in JSON only, with this structure:
{
  "summary": "<string>",
  "key_issue": ["<string>", "<string>"],
  "impact_score": <float 0.0-1.0>,
  "team_mentions": [
    {
      "team": "<string, exact tracked team name>",
      "sport": "<string>",
      "sentiment": "positive | neutral | negative",
      "impact": "major | moderate | minor",
      "confidence_score": <float 0.0-1.0>,
      "reason": "<string>"
    }
  ]
}

Article:
Title: %s
Published: %s
Content: %s
`, teamList.String(), title, publishedDate, content)
}

// BuildSummarizeNewsPrompt asks for a digest of recent articles about a team.
func BuildSummarizeNewsPrompt(team string, newsItems []entity.TeamNews) string {
	var newsBuilder strings.Builder
	for i, news := range newsItems {
		keyIssuesJSON, _ := json.Marshal(news.KeyIssue)
		publishedAtStr := "N/A"
		if news.PublishedAt != nil {
			publishedAtStr = news.PublishedAt.Format("2006-01-02 15:04:05")
		}
		newsBuilder.WriteString(fmt.Sprintf(
			"%d. Title: \"%s\"\n   Published At: %s\n   Summary: %s\n   Sentiment: %s\n   Impact: %s\n   Confidence Score: %.2f\n   Key Issues: %s\n\n",
			i+1, news.Title, publishedAtStr, news.Summary, news.Sentiment, news.Impact, news.ConfidenceScore, string(keyIssuesJSON),
		))
	}

	promptTemplate := `Here are recent news articles about %s:

%s
Based on everything above, produce one digest a handicapper can use before betting this team's next game. Answer in JSON only:

{
  "team": "%s",
  "summary_sentiment": "positive | neutral | negative",
  "summary_impact": "major | moderate | minor",
  "summary_confidence_score": <float 0.0-1.0>,
  "key_issues": ["<string>"],
  "short_summary": "<string, one paragraph max>"
}`

	return fmt.Sprintf(promptTemplate, team, newsBuilder.String(), team)
}

// BuildStatResolutionPrompt asks a model with web access for a final stat line.
func BuildStatResolutionPrompt(query dto.StatQuery) string {
	return fmt.Sprintf(`Find the final box score stat for this player's game.

Sport: %s
Player: %s
Team: %s
Opponent: %s
Game date: %s
Stat: %s

Only answer from the final box score. If the game has not finished, or you cannot find the stat, set found to false. Never guess.

Answer in JSON only:
{
  "found": <bool>,
  "value": <float>,
  "game_ended": <bool>,
  "confidence": <float 0.0-1.0>
}`, query.Sport, query.PlayerName, query.Team, query.Opponent, query.GameTime.Format("2006-01-02"), query.StatType)
}
