package classifier_test

import (
	"testing"

	"github.com/nikbrunner/shelf/internal/classifier"
	"github.com/nikbrunner/shelf/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		want model.Category
	}{
		{"https://github.com/foo", model.CategoryCoding},
		{"https://amazon.com/x", model.CategoryShopping},
		{"https://example.org", model.CategoryOther},
		{"HTTPS://WWW.YOUTUBE.COM/watch?v=1", model.CategoryEntertainment},
		{"https://www.reddit.com/r/golang", model.CategorySocial},
		{"https://www.figma.com/file/abc", model.CategoryTools},
		{"https://www.bbc.co.uk/news", model.CategoryNews},
		{"https://www.coursera.org/learn/ml", model.CategoryLearning},
		// matches both "code" and "blog": coding is checked first
		{"https://codeblog.example.com", model.CategoryCoding},
		// "api" is a coding keyword and wins over the shopping keyword "shop"
		{"https://api.shop.example", model.CategoryCoding},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := classifier.Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	const u = "https://news.ycombinator.com"
	first := classifier.Classify(u)
	for range 10 {
		if got := classifier.Classify(u); got != first {
			t.Fatalf("Classify is not deterministic: %q then %q", first, got)
		}
	}
}

func TestKeywords(t *testing.T) {
	kws := classifier.Keywords(model.CategoryCoding)
	if len(kws) == 0 || kws[0] != "github" {
		t.Fatalf("unexpected coding keywords %v", kws)
	}

	// Returned slice is a copy.
	kws[0] = "changed"
	if classifier.Keywords(model.CategoryCoding)[0] != "github" {
		t.Error("Keywords should return a copy")
	}

	if classifier.Keywords(model.CategoryOther) != nil {
		t.Error("other has no keywords")
	}
}
