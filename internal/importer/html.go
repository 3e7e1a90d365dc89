package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/shelf/internal/classifier"
	"github.com/nikbrunner/shelf/internal/model"
)

// ParseHTMLBookmarks parses a Netscape bookmark file.
//
// Folder names are only used for categorization: a bookmark takes the
// category of its innermost folder named after a category label, and is
// classified from its URL otherwise. Returned bookmarks have no ID; the
// store assigns one when they are merged.
func ParseHTMLBookmarks(r io.Reader, now time.Time) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark

	var folderStack []string  // names of the open folders, innermost last
	var pendingFolder *string // H3 seen, waiting for its DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				pendingFolder = &name
				return

			case "a":
				href := strings.TrimSpace(getAttr(n, "href"))
				if href == "" {
					return
				}

				name := getTextContent(n)
				if name == "" {
					name = href
				}

				dateAdded := now
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						dateAdded = time.Unix(ts, 0).UTC()
					}
				}

				bookmarks = append(bookmarks, model.Bookmark{
					Name:      name,
					URL:       href,
					Category:  categoryFor(folderStack, href),
					Tags:      model.ParseTags(getAttr(n, "tags")),
					Favicon:   model.FaviconURL(href),
					DateAdded: dateAdded,
				})
				return

			case "dl":
				pushed := false
				if pendingFolder != nil {
					folderStack = append(folderStack, *pendingFolder)
					pendingFolder = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// categoryFor picks the innermost folder that names a category, falling
// back to the keyword classifier.
func categoryFor(folders []string, href string) model.Category {
	for i := len(folders) - 1; i >= 0; i-- {
		c, err := model.ParseCategory(folders[i])
		if err == nil && !c.IsAll() {
			return c
		}
	}
	return classifier.Classify(href)
}

// getTextContent returns the trimmed text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
