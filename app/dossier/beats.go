package dossier

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// BeatBucket maps a topical label to the keywords that select it.
type BeatBucket struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Beats classifies article text into topical buckets. Bucket order matters:
// the first bucket with a keyword hit wins.
type Beats struct {
	buckets []BeatBucket
}

func DefaultBeats() *Beats {
	return &Beats{buckets: []BeatBucket{
		{Name: "Legal", Keywords: []string{"law", "legal", "litigation", "court", "lawsuit", "regulation", "compliance", "governance"}},
		{Name: "Finance", Keywords: []string{"finance", "banking", "tax", "accounting", "audit", "private equity", "venture capital", "investment", "earnings", "ipo"}},
		{Name: "Deals & M&A", Keywords: []string{"m&a", "merger", "acquisition", "deal", "restructuring", "bankruptcy", "buyout"}},
		{Name: "Technology", Keywords: []string{"tech", "software", "startup", "ai ", "artificial intelligence", "cyber", "data", "cloud", "chip"}},
		{Name: "Politics", Keywords: []string{"politic", "election", "congress", "senate", "white house", "policy", "legislation", "governor"}},
		{Name: "Business", Keywords: []string{"business", "economy", "market", "company", "industry", "labor", "trade", "retail"}},
		{Name: "Health", Keywords: []string{"health", "medical", "hospital", "pharma", "drug", "vaccine", "fda"}},
		{Name: "Climate & Energy", Keywords: []string{"climate", "energy", "oil", "gas", "solar", "emission", "environment"}},
		{Name: "Sports", Keywords: []string{"sport", "game", "team", "league", "playoff", "championship", "coach"}},
		{Name: "Culture", Keywords: []string{"film", "music", "art", "book", "celebrity", "entertainment", "fashion"}},
	}}
}

// LoadBeats reads bucket definitions from a YAML file, replacing the built-in
// set entirely.
func LoadBeats(path string) (*Beats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read beats file: %w", err)
	}

	var buckets []BeatBucket
	if err := yaml.Unmarshal(data, &buckets); err != nil {
		return nil, fmt.Errorf("failed to parse beats file: %w", err)
	}
	if len(buckets) == 0 {
		return nil, fmt.Errorf("beats file %s defines no buckets", path)
	}

	for _, b := range buckets {
		if b.Name == "" || len(b.Keywords) == 0 {
			return nil, fmt.Errorf("beats file %s has a bucket without name or keywords", path)
		}
	}

	return &Beats{buckets: buckets}, nil
}

// Classify returns the first bucket whose keywords appear in the text, or ""
// when nothing matches.
func (b *Beats) Classify(text string) string {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return ""
	}
	for _, bucket := range b.buckets {
		for _, kw := range bucket.Keywords {
			if strings.Contains(lower, kw) {
				return bucket.Name
			}
		}
	}
	return ""
}

func (b *Beats) BucketCount() int {
	return len(b.buckets)
}
