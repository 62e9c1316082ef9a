package source

// TopicMatch is one journalist returned by a topic search, passed through to
// the caller without further enrichment.
type TopicMatch struct {
	Name          string   `json:"name"`
	Title         string   `json:"title,omitempty"`
	Outlets       []string `json:"outlets,omitempty"`
	TwitterHandle string   `json:"twitter_handle,omitempty"`
	LinkedInURL   string   `json:"linkedin_url,omitempty"`
	ArticleCount  int      `json:"article_count"`
}

// Wire types for the journalist search provider.

type journalistSearchResponse struct {
	Results []journalistRecord `json:"results"`
}

type journalistRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Title         string `json:"title"`
	TwitterHandle string `json:"twitterHandle"`
	LinkedinURL   string `json:"linkedinUrl"`
	WebsiteURL    string `json:"websiteUrl"`
	MonthlyPosts  int    `json:"monthlyPosts"`
	TopSources    []struct {
		Name string `json:"name"`
	} `json:"topSources"`
}

type articlesResponse struct {
	Articles []articleRecord `json:"articles"`
}

type articleRecord struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	PubDate string `json:"pubDate"`
	Source  struct {
		Domain string `json:"domain"`
	} `json:"source"`
	Topics []struct {
		Name string `json:"name"`
	} `json:"topics"`
}
