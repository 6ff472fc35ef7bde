package dto

// OpenAPIReq is the request payload for OpenAI-compatible chat completion APIs.
type OpenAPIReq struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAPIRes is the response from OpenAI-compatible chat completion APIs.
type OpenAPIRes struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is a single completion choice.
type Choice struct {
	Message Message `json:"message"`
}

// Usage reports token consumption for a completion.
type Usage struct {
	PromptTokens     int32 `json:"prompt_tokens"`
	CompletionTokens int32 `json:"completion_tokens"`
	TotalTokens      int32 `json:"total_tokens"`
}

// GeneratedPick is one game pick in the model's JSON answer.
type GeneratedPick struct {
	EventID         string   `json:"event_id"`
	PickTeam        string   `json:"pick_team"`
	BetType         string   `json:"bet_type"`
	Spread          *float64 `json:"spread,omitempty"`
	ConfidenceScore float64  `json:"confidence_score"`
	Rationale       string   `json:"rationale"`
}

// PickGenerationResult is the expected JSON structure for generated picks.
type PickGenerationResult struct {
	Picks []GeneratedPick `json:"picks"`
}

// GeneratedPropPick is one player prop in the model's JSON answer.
type GeneratedPropPick struct {
	EventID         string  `json:"event_id"`
	PlayerName      string  `json:"player_name"`
	Team            string  `json:"team"`
	Opponent        string  `json:"opponent"`
	StatType        string  `json:"stat_type"`
	Line            float64 `json:"line"`
	Side            string  `json:"side"`
	OddsAmerican    int     `json:"odds_american"`
	ConfidenceScore float64 `json:"confidence_score"`
	Rationale       string  `json:"rationale"`
}

// PropGenerationResult is the expected JSON structure for generated props.
type PropGenerationResult struct {
	Props []GeneratedPropPick `json:"props"`
}

// NewsAnalysisResult is the expected JSON structure when analyzing one article.
type NewsAnalysisResult struct {
	Summary         string        `json:"summary"`
	HashIdentifier  string        `json:"hash_identifier"`
	ImpactScore     float64       `json:"impact_score"`
	KeyIssue        []string      `json:"key_issue"`
	TeamMentions    []TeamMention `json:"team_mentions"`
	Reason          string        `json:"reason"`
	ConfidenceScore float64       `json:"confidence_score"`
}

// TeamMention is one tracked-team reference in an analyzed article.
type TeamMention struct {
	Team            string  `json:"team"`
	Sport           string  `json:"sport"`
	Sentiment       string  `json:"sentiment"`
	Impact          string  `json:"impact"`
	Reason          string  `json:"reason"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// NewsSummaryResult is the expected JSON structure for a team news digest.
type NewsSummaryResult struct {
	Team                   string   `json:"team"`
	SummarySentiment       string   `json:"summary_sentiment"`
	SummaryImpact          string   `json:"summary_impact"`
	SummaryConfidenceScore float64  `json:"summary_confidence_score"`
	KeyIssues              []string `json:"key_issues"`
	ShortSummary           string   `json:"short_summary"`
}

// StatAnswerResult is the expected JSON structure when a model is asked for a
// player's final stat line.
type StatAnswerResult struct {
	Found      bool    `json:"found"`
	Value      float64 `json:"value"`
	GameEnded  bool    `json:"game_ended"`
	Confidence float64 `json:"confidence"`
}
