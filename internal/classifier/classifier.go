package classifier

import (
	"net/url"
	"strings"
)

// Site tags for sources that need user cookies before yt-dlp will
// resolve them. New sites go into the rules table below.
const (
	SiteTwitter = "twitter"
	SiteReddit  = "reddit"
)

// Result of classifying one incoming message as a download request.
type Result struct {
	Valid bool
	URL   string // normalized URL, aliases rewritten to canonical hosts
	Site  string // required site tag, empty when no cookies are needed
}

type rule struct {
	domain    string // matched against the host, suffix-wise
	site      string
	canonical string // non-empty: rewrite the host before extraction
}

// Ordered, first match wins. x.com sits before twitter.com so the
// alias rewrite is not bypassed by suffix matching.
var rules = []rule{
	{domain: "x.com", site: SiteTwitter, canonical: "twitter.com"},
	{domain: "twitter.com", site: SiteTwitter},
	{domain: "reddit.com", site: SiteReddit},
	{domain: "redd.it", site: SiteReddit},
}

// Classify validates the raw message text as a URL and resolves
// which site tag, if any, the download will need cookies for.
func Classify(raw string) Result {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Result{}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Result{}
	}
	if u.Host == "" {
		return Result{}
	}

	host := strings.ToLower(u.Hostname())

	for _, r := range rules {
		if !hostMatches(host, r.domain) {
			continue
		}
		if r.canonical != "" {
			// the extraction library only knows canonical hostnames
			u.Host = r.canonical
		}
		return Result{Valid: true, URL: u.String(), Site: r.site}
	}

	return Result{Valid: true, URL: u.String()}
}

func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// IsYouTube reports whether the URL points at YouTube, which gets
// the native extraction path instead of yt-dlp.
func IsYouTube(normalized string) bool {
	u, err := url.Parse(normalized)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return hostMatches(host, "youtube.com") || hostMatches(host, "youtu.be")
}
