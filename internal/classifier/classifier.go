// Package classifier assigns a category to a URL by keyword matching.
package classifier

import (
	"slices"
	"strings"

	"github.com/nikbrunner/shelf/internal/model"
)

// rule pairs a category with the URL fragments that imply it.
type rule struct {
	category model.Category
	keywords []string
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{model.CategoryCoding, []string{"github", "stackoverflow", "codepen", "gitlab", "bitbucket", "replit", "codesandbox", "dev.to", "hackernews", "programming", "developer", "code", "api", "documentation", "docs"}},
	{model.CategorySocial, []string{"facebook", "twitter", "instagram", "linkedin", "discord", "slack", "telegram", "whatsapp", "reddit", "social", "community", "chat"}},
	{model.CategoryTools, []string{"notion", "trello", "asana", "figma", "canva", "photoshop", "productivity", "tools", "app", "software", "utility"}},
	{model.CategoryEntertainment, []string{"youtube", "netflix", "spotify", "twitch", "gaming", "music", "video", "entertainment", "movie", "stream"}},
	{model.CategoryNews, []string{"news", "bbc", "cnn", "reuters", "techcrunch", "verge", "medium", "blog", "article", "newspaper"}},
	{model.CategoryLearning, []string{"coursera", "udemy", "khan", "education", "course", "tutorial", "learning", "university", "school", "training"}},
	{model.CategoryShopping, []string{"amazon", "ebay", "shop", "store", "buy", "cart", "ecommerce", "retail", "marketplace"}},
}

// Classify returns the first category whose keywords occur in the
// lowercased URL, or model.CategoryOther.
func Classify(rawURL string) model.Category {
	u := strings.ToLower(rawURL)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(u, kw) {
				return r.category
			}
		}
	}
	return model.CategoryOther
}

// Keywords returns a copy of the keyword list for a category.
// It is empty for CategoryOther and unknown categories.
func Keywords(c model.Category) []string {
	for _, r := range rules {
		if r.category == c {
			return slices.Clone(r.keywords)
		}
	}
	return nil
}
