package utils

import (
	"context"
	"log"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"gary-picks-engine/pkg/logger"
)

// TimeNowET returns the current time in US/Eastern, the reference timezone
// for daily slate boundaries and game times.
func TimeNowET() time.Time {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}

// GoSafe runs fn in a goroutine and recovers from panics so a single bad
// task cannot take down the worker.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// CleanToValidUTF8 strips invalid UTF-8 sequences and NUL bytes so text can be
// stored in a Postgres text column.
func CleanToValidUTF8(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.ReplaceAll(s, "\x00", "")
}

// SafeText normalizes whitespace in scraped content.
func SafeText(s string) string {
	return CleanToValidUTF8(strings.Join(strings.Fields(s), " "))
}

// ContainsString reports whether target is present in list.
func ContainsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

// ShouldContinue reports whether the context is still alive, logging when it
// is not so loops can bail out early.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Info("Context cancelled, stopping work", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}
