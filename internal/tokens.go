package internal

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// fallbackEncoding is used for models tiktoken has no mapping for
const fallbackEncoding = "cl100k_base"

var bpeLoaderOnce sync.Once

// Tokenizer counts model tokens with the encoding of a chat model
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// NewTokenizer selects the encoding for model. The BPE tables are embedded,
// so no network access is needed.
func NewTokenizer(model string) (*Tokenizer, error) {
	bpeLoaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	if enc, err := tiktoken.EncodingForModel(model); err == nil {
		return &Tokenizer{enc: enc}, nil
	}

	enc, err := tiktoken.GetEncoding(fallbackEncoding)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", fallbackEncoding, err)
	}
	return &Tokenizer{enc: enc}, nil
}

// Count returns the number of tokens text encodes to. Special-token markers
// are counted as plain text.
func (t *Tokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.enc.EncodeOrdinary(text))
}
