package source

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// knownOutlets maps provider domains to editorial display names. Domains not
// listed here fall back to a generic cleanup of the domain string.
var knownOutlets = map[string]string{
	"nytimes.com":         "The New York Times",
	"washingtonpost.com":  "The Washington Post",
	"wsj.com":             "The Wall Street Journal",
	"ft.com":              "Financial Times",
	"bloomberg.com":       "Bloomberg",
	"reuters.com":         "Reuters",
	"apnews.com":          "Associated Press",
	"cnn.com":             "CNN",
	"cnbc.com":            "CNBC",
	"bbc.com":             "BBC",
	"bbc.co.uk":           "BBC",
	"theguardian.com":     "The Guardian",
	"politico.com":        "Politico",
	"axios.com":           "Axios",
	"theatlantic.com":     "The Atlantic",
	"newyorker.com":       "The New Yorker",
	"forbes.com":          "Forbes",
	"fortune.com":         "Fortune",
	"businessinsider.com": "Business Insider",
	"techcrunch.com":      "TechCrunch",
	"theverge.com":        "The Verge",
	"wired.com":           "Wired",
	"arstechnica.com":     "Ars Technica",
	"theinformation.com":  "The Information",
	"latimes.com":         "Los Angeles Times",
	"usatoday.com":        "USA Today",
	"nbcnews.com":         "NBC News",
	"abcnews.go.com":      "ABC News",
	"cbsnews.com":         "CBS News",
	"foxnews.com":         "Fox News",
	"npr.org":             "NPR",
	"time.com":            "Time",
	"economist.com":       "The Economist",
	"barrons.com":         "Barron's",
	"marketwatch.com":     "MarketWatch",
	"law360.com":          "Law360",
	"reuters.legal":       "Reuters Legal",
	"semafor.com":         "Semafor",
	"puck.news":           "Puck",
	"thehill.com":         "The Hill",
}

var titleCaser = cases.Title(language.English)

// CleanOutletName turns a provider domain like "some-news-site.com" into a
// readable outlet name. Known domains get their editorial name; everything
// else is derived from the domain itself.
func CleanOutletName(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return "Unknown"
	}
	d = strings.TrimPrefix(d, "www.")

	if name, ok := knownOutlets[d]; ok {
		return name
	}

	// Subdomains of known outlets keep the parent's name.
	for known, name := range knownOutlets {
		if strings.HasSuffix(d, "."+known) {
			return name
		}
	}

	base := d
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	if base == "" {
		return "Unknown"
	}

	return titleCaser.String(base)
}
