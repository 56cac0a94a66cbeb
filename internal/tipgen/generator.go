// Package tipgen turns a selected tip into tweet copy via an LLM completion,
// then validates and trims the output to the 280-character limit.
package tipgen

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/XavierBriggs/Hermes/pkg/models"
)

const maxTweetLength = 280

const systemPrompt = `You are an expert football betting analyst sharing valuable insights. Your tweets must:

1. Always include specific teams and exact odds
2. Highlight the best available odds and clear value opportunities
3. Explain why the odds represent value
4. Sound natural while being precise and informative

Avoid:
- Vague statements about "patterns" or "trends"
- Generic phrases like "worth watching" or "keep an eye on"
- Tweets without specific odds or probabilities
- Marketing-style language or excessive hype`

// Generator produces tweet copy from a tip
type Generator struct {
	completer contracts.Completer
}

// NewGenerator creates a tweet generator backed by the given completer
func NewGenerator(completer contracts.Completer) *Generator {
	return &Generator{completer: completer}
}

// Generate produces a validated tweet for the tip. Overlong completions are
// trimmed at sentence boundaries before validation.
func (g *Generator) Generate(ctx context.Context, tip *models.Tip, movements []models.Movement) (string, error) {
	userPrompt := buildUserPrompt(tip, movements)

	tweet, err := g.completer.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("generate tweet: %w", err)
	}

	if len(tweet) > maxTweetLength {
		tweet = TrimTweet(tweet)
	}

	if !Validate(tweet) {
		return "", fmt.Errorf("generated tweet failed validation (%d chars)", len(tweet))
	}

	return tweet, nil
}

// buildUserPrompt formats the tip details for the completion request
func buildUserPrompt(tip *models.Tip, movements []models.Movement) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Create a valuable betting insight tweet for this match:\n\n")
	fmt.Fprintf(&sb, "Match: %s vs %s\n", tip.HomeTeam, tip.AwayTeam)
	fmt.Fprintf(&sb, "League: %s\n", tip.LeagueName)
	fmt.Fprintf(&sb, "Start Time: %s\n\n", tip.CommenceTime.Format("2006-01-02 15:04 MST"))

	fmt.Fprintf(&sb, "Selection: %s\n", tip.Outcome)
	fmt.Fprintf(&sb, "Best Available Odds: %.2f at %s\n", tip.BestPrice, tip.BestBook)
	fmt.Fprintf(&sb, "Implied Probability: %.1f%%\n", tip.ImpliedProb*100)
	fmt.Fprintf(&sb, "Our Fair Probability: %.1f%%\n", tip.FairProb*100)
	fmt.Fprintf(&sb, "Edge: %.1f%% across %d bookmakers\n", tip.EdgePercent, tip.BookCount)

	if drift := movementForTip(tip, movements); drift != "" {
		fmt.Fprintf(&sb, "Line Movement: %s\n", drift)
	}

	sb.WriteString(`
Requirements:
1. Mention both teams and the specific league
2. State the best available odds clearly
3. Explain the value based on probability comparison
4. Add 1-2 relevant hashtags
5. Keep under 280 characters
6. Sound like a knowledgeable bettor sharing insights`)

	return sb.String()
}

// movementForTip summarizes price drift for the tipped outcome, if observed
func movementForTip(tip *models.Tip, movements []models.Movement) string {
	for _, mv := range movements {
		if mv.EventID != tip.EventID || mv.OutcomeName != tip.Outcome {
			continue
		}

		direction := "shortened"
		if mv.Drift() > 0 {
			direction = "drifted"
		}
		return fmt.Sprintf("%s has %s from %.2f to %.2f since the last check (%s)",
			tip.Outcome, direction, mv.OldPrice, mv.NewPrice, mv.BookKey)
	}
	return ""
}

// Validate reports whether the tweet is non-empty and within the length limit
func Validate(tweet string) bool {
	return tweet != "" && len(tweet) <= maxTweetLength
}

// TrimTweet trims an overlong tweet at sentence boundaries, keeping it
// readable
func TrimTweet(tweet string) string {
	if len(tweet) <= maxTweetLength {
		return tweet
	}

	sentences := strings.Split(tweet, ".")
	trimmed := ""
	for _, sentence := range sentences {
		candidate := trimmed + sentence + "."
		if len(candidate) > maxTweetLength-3 {
			break
		}
		trimmed = candidate
	}

	if trimmed == "" {
		// No sentence boundary fits; hard cut, backing up so a multi-byte
		// rune is never split
		cut := maxTweetLength - 3
		for cut > 0 && !utf8.RuneStart(tweet[cut]) {
			cut--
		}
		return tweet[:cut] + "..."
	}

	return strings.TrimSpace(trimmed) + ".."
}
