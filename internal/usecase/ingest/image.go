package ingest

import (
	"regexp"
	"strings"
)

var imgSrcPattern = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)

// extractRSSImage runs the synchronous, RSS-side image extraction cascade
// (enclosure → media → typeless enclosure → inline <img>). It never makes
// a network call; anything it misses is left for the async enricher.
func extractRSSImage(item FeedItem) string {
	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image") && enc.URL != "" {
			return upgradeProtocolRelative(enc.URL)
		}
	}

	for _, u := range item.MediaURLs {
		if u != "" {
			return upgradeProtocolRelative(u)
		}
	}

	for _, enc := range item.Enclosures {
		if enc.URL != "" {
			return upgradeProtocolRelative(enc.URL)
		}
	}

	for _, html := range []string{item.Content, item.ContentSnippet, item.Summary} {
		if u := firstImgSrc(html); u != "" {
			return u
		}
	}

	return ""
}

// firstImgSrc returns the first <img src> in html that is not a 1x1
// tracking pixel and is (after protocol-relative upgrade) http(s).
func firstImgSrc(html string) string {
	matches := imgSrcPattern.FindAllStringSubmatch(html, -1)
	for _, m := range matches {
		src := strings.TrimSpace(m[1])
		if isTrackingPixel(src) {
			continue
		}
		src = upgradeProtocolRelative(src)
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			return src
		}
	}
	return ""
}

func isTrackingPixel(src string) bool {
	lower := strings.ToLower(src)
	return strings.Contains(lower, "1x1") || strings.Contains(lower, "pixel.gif") ||
		strings.Contains(lower, "=1&h=1") || strings.Contains(lower, "width=1&height=1")
}

// upgradeProtocolRelative turns "//cdn.example.com/x.jpg" into
// "https://cdn.example.com/x.jpg".
func upgradeProtocolRelative(url string) string {
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}
