package telegram

import (
	"fmt"
	"strings"
	"time"
)

// FormatPickAlertMessage builds the Markdown message for a freshly generated pick.
func FormatPickAlertMessage(t time.Time, sport, matchup, pickTeam, betType string, odds int, confidence float64) string {
	var b strings.Builder
	b.WriteString("*New Pick*\n")
	b.WriteString(fmt.Sprintf("Sport: %s\n", strings.ToUpper(sport)))
	b.WriteString(fmt.Sprintf("Game: %s\n", matchup))
	b.WriteString(fmt.Sprintf("Pick: %s (%s, %+d)\n", pickTeam, betType, odds))
	b.WriteString(fmt.Sprintf("Confidence: %.0f%%\n", confidence*100))
	b.WriteString(fmt.Sprintf("Time: %s", t.Format("2006-01-02 15:04 MST")))
	return b.String()
}

// FormatSettlementMessage builds the Markdown message for a settled pick.
func FormatSettlementMessage(sport, matchup, pickTeam, result string) string {
	icon := "✅"
	switch result {
	case "lost":
		icon = "❌"
	case "push":
		icon = "↔️"
	case "postponed":
		icon = "⏸"
	}
	return fmt.Sprintf("%s *Pick Settled*\nSport: %s\nGame: %s\nPick: %s\nResult: %s", icon, strings.ToUpper(sport), matchup, pickTeam, result)
}

// FormatErrorAlertMessage builds the Markdown message for operational alerts.
func FormatErrorAlertMessage(t time.Time, message string) string {
	return fmt.Sprintf("🚨 *Error Alert*\nTime: %s\nMessage: %s", t.Format("2006-01-02 15:04:05 MST"), message)
}
