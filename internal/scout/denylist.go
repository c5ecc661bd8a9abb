package scout

import "strings"

// Denylist rejects URLs pointing at known low-value destinations (social
// networks, news outlets, search portals, marketplaces, generic account
// pages). It is consulted before any network access so known-irrelevant
// destinations never consume visit or download budget.
type Denylist struct {
	entries []string
}

// NewDenylist builds a Denylist from substring patterns. Entries are
// lowercased; blanks and duplicates are dropped.
func NewDenylist(patterns []string) *Denylist {
	seen := make(map[string]struct{}, len(patterns))
	entries := make([]string, 0, len(patterns))
	for _, raw := range patterns {
		value := strings.TrimSpace(strings.ToLower(raw))
		if value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		entries = append(entries, value)
	}
	return &Denylist{entries: entries}
}

// ShouldSkip reports whether the lowercased URL contains any denylisted
// substring.
func (d *Denylist) ShouldSkip(rawURL string) bool {
	if d == nil || rawURL == "" {
		return false
	}
	lower := strings.ToLower(rawURL)
	for _, entry := range d.entries {
		if strings.Contains(lower, entry) {
			return true
		}
	}
	return false
}

// DefaultDenylist returns the standard set of hosts and keywords that are
// never authoritative MSDS sources.
func DefaultDenylist() *Denylist {
	return NewDenylist(defaultDenyPatterns)
}

var defaultDenyPatterns = []string{
	// chemical marketplaces and aggregators
	"guidechem",
	"chemicalbook",
	"commonchemistry",
	"alpha-chemistry",
	"lookchem",
	"pharmaffiliates",
	"benjaminmoore.com",
	// social networks
	"linkedin",
	"twitter",
	"x.com",
	"facebook",
	"youtube",
	"instagram",
	"tumblr",
	"reddit",
	"snapchat",
	"tiktok",
	"pinterest",
	// news outlets
	"nytimes",
	"huffingtonpost",
	"forbes",
	"bloomberg",
	"bbc",
	"cnn",
	"foxnews",
	"nbcnews",
	"abcnews",
	"theguardian",
	"dailymail",
	"usatoday",
	// reference, Q&A, reviews
	"wikipedia",
	"imdb",
	"quora",
	"stackexchange",
	"stackoverflow",
	"tripadvisor",
	"yelp",
	"zomato",
	"opentable",
	"scribd",
	// health portals and agencies
	"healthline",
	"webmd",
	"mayoclinic",
	"nih.gov",
	"cdc.gov",
	"fda.gov",
	"epa.gov",
	// search engines
	"google",
	"bing",
	"yahoo",
	"ask",
	"aol",
	"baidu",
	"msn",
	"duckduckgo",
	"yandex",
	// e-commerce
	"amazon",
	"ebay",
	"craigslist",
	// course platforms
	"coursera",
	"udemy",
	"edx",
	"khanacademy",
	// generic account and legal pages
	"home",
	"login",
	"register",
	"signup",
	"signin",
	"faq",
	"terms",
	"conditions",
	"terms-of-service",
	"support",
	"help",
	"contact",
	"about",
	"my-account",
	"favourites",
	"bulkOrder",
	"cart",
	"privacy",
	"food",
}
