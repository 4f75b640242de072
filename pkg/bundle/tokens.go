package bundle

import (
	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// tokenEncoding is the BPE encoding used for counting. cl100k_base matches
// the GPT-4/3.5 family and is a reasonable proxy for other modern models.
const tokenEncoding = "cl100k_base"

// TokenCounter counts tokens the way the downstream model would.
type TokenCounter interface {
	Count(text string) int
}

// NewCounter returns a tiktoken-backed counter. When the encoding cannot be
// loaded (offline first run, missing cache) it falls back to a
// character-ratio estimate rather than failing the pipeline.
func NewCounter(logger *zap.Logger) TokenCounter {
	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		logger.Warn("Token encoding unavailable, falling back to character estimate",
			zap.String("encoding", tokenEncoding),
			zap.Error(err))
		return heuristicCounter{}
	}
	return &tiktokenCounter{enc: enc}
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// heuristicCounter estimates roughly four characters per token, rounding
// up. Deterministic and offline, so tests inject it directly.
type heuristicCounter struct{}

func (heuristicCounter) Count(text string) int {
	return (len(text) + 3) / 4
}
