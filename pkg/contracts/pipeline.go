package contracts

import (
	"context"

	"github.com/XavierBriggs/Hermes/pkg/models"
)

// Completer produces a text completion from system and user prompts
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// TipPoster publishes a tip to a social network
type TipPoster interface {
	PostTweet(ctx context.Context, text string) (*models.PostResult, error)
}
