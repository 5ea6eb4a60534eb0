package provider

import (
	"context"
	"crypto/md5" //nolint:gosec // Not used for security; stable string-to-number mapping only
	"encoding/binary"
	"fmt"
	"time"

	"github.com/nao1215/keywordstat/internal/model"
)

// Offline provider constants. The frequency range and variant cap match the
// documented behavior that tests rely on; changing them is a breaking change
// for anyone comparing spreadsheets across versions.
const (
	// maxVariantsPerPhrase caps how many rows one input phrase expands into.
	maxVariantsPerPhrase = 50

	// frequencyLow is the inclusive lower bound of generated frequencies.
	frequencyLow = 100

	// frequencySpan is the size of the generated frequency range, so all
	// frequencies fall in [frequencyLow, frequencyLow+frequencySpan).
	frequencySpan = 9900
)

// modifiers are appended to an input phrase to produce related variants,
// imitating the "searched also" expansion a real keyword service returns.
var modifiers = []string{
	"купить",
	"цена",
	"отзывы",
	"недорого",
	"бесплатно",
	"своими руками",
	"инструкция",
	"обзор",
	"рейтинг",
	"2024",
}

// Offline is a deterministic keyword provider that works without any
// credentials or network access.
//
// For each input phrase it emits the phrase itself plus a bounded set of
// variant phrases. Frequencies, when requested, are a pure function of the
// variant string: the same string yields the same frequency within a
// process and across processes.
type Offline struct {
	// now returns the current time. Overridable in tests.
	now func() time.Time
}

// NewOffline creates the offline provider.
func NewOffline() *Offline {
	return &Offline{now: time.Now}
}

// Name returns the provider name.
func (o *Offline) Name() string {
	return "offline"
}

// Fetch generates rows for the given phrases. It never fails and performs
// no I/O; the error return exists only to satisfy the Provider interface.
// An empty phrase list yields an empty row list.
func (o *Offline) Fetch(_ context.Context, phrases []string, withFrequency bool) ([]model.KeywordRow, error) {
	rows := make([]model.KeywordRow, 0, len(phrases)*maxVariantsPerPhrase)
	createdAt := o.now()

	for _, phrase := range phrases {
		for _, variant := range expandPhrase(phrase) {
			if withFrequency {
				rows = append(rows, model.NewKeywordRowWithFrequency(
					variant, stableFrequency(variant), model.SourceOffline, createdAt))
				continue
			}
			rows = append(rows, model.NewKeywordRow(variant, model.SourceOffline, createdAt))
		}
	}
	return rows, nil
}

// expandPhrase returns the phrase and its generated variants, capped at
// maxVariantsPerPhrase. The phrase itself always comes first, followed by
// modifier combinations, then numbered filler variants.
func expandPhrase(phrase string) []string {
	variants := make([]string, 0, maxVariantsPerPhrase)
	variants = append(variants, phrase)

	for _, m := range modifiers {
		if len(variants) >= maxVariantsPerPhrase {
			return variants
		}
		variants = append(variants, phrase+" "+m)
	}

	for i := 1; len(variants) < maxVariantsPerPhrase; i++ {
		variants = append(variants, fmt.Sprintf("%s вариант %d", phrase, i))
	}
	return variants
}

// stableFrequency maps a variant string into [frequencyLow,
// frequencyLow+frequencySpan) by hashing it. md5 is used as a stable,
// well-distributed string hash, not as a cryptographic primitive.
func stableFrequency(variant string) int {
	sum := md5.Sum([]byte(variant)) //nolint:gosec // Stable hash, not security-sensitive
	value := binary.BigEndian.Uint64(sum[:8])
	return frequencyLow + int(value%frequencySpan)
}
