package reduce

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// closestAncestor walks up from sel through at most maxLevels ancestors and
// returns the first one satisfying pred, or nil. The bound keeps heuristic
// walks from escaping the tile into page-level wrappers.
func closestAncestor(sel *goquery.Selection, maxLevels int, pred func(*goquery.Selection) bool) *goquery.Selection {
	current := sel
	for level := 0; level < maxLevels; level++ {
		parent := current.Parent()
		if parent.Length() == 0 {
			return nil
		}
		if pred(parent) {
			return parent
		}
		current = parent
	}
	return nil
}

// textOf returns the trimmed text content of a selection.
func textOf(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

// attrOf returns a trimmed attribute value, or "" when absent.
func attrOf(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return strings.TrimSpace(v)
}

// findByAttrMatch returns descendants whose attribute value matches re, in
// document order. cascadia has no regex attribute selectors, so carriers
// with versioned attribute conventions go through this.
func findByAttrMatch(sel *goquery.Selection, attr string, re *regexp.Regexp) *goquery.Selection {
	return sel.Find("[" + attr + "]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return re.MatchString(attrOf(s, attr))
	})
}

// firstByAttrMatch returns the first descendant whose attribute matches re,
// or nil.
func firstByAttrMatch(sel *goquery.Selection, attr string, re *regexp.Regexp) *goquery.Selection {
	found := findByAttrMatch(sel, attr, re)
	if found.Length() == 0 {
		return nil
	}
	return found.First()
}

// removeAttrsWithPrefix strips every attribute starting with one of the
// prefixes from all elements under sel.
func removeAttrsWithPrefix(sel *goquery.Selection, prefixes ...string) int {
	removed := 0
	sel.Find("*").Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		kept := s.Nodes[0].Attr[:0]
		for _, attr := range s.Nodes[0].Attr {
			drop := false
			for _, prefix := range prefixes {
				if strings.HasPrefix(attr.Key, prefix) {
					drop = true
					break
				}
			}
			if drop {
				removed++
			} else {
				kept = append(kept, attr)
			}
		}
		s.Nodes[0].Attr = kept
	})
	return removed
}

// replaceWithText collapses a node to a plain text node carrying the given
// content, discarding its markup.
func replaceWithText(sel *goquery.Selection, text string) {
	for _, node := range sel.Nodes {
		if node.Parent == nil {
			continue
		}
		textNode := &html.Node{Type: html.TextNode, Data: text}
		node.Parent.InsertBefore(textNode, node)
		node.Parent.RemoveChild(node)
	}
}

// textWithout returns the text of sel with the given descendant
// selectors excluded. Used to read a tile's price text while ignoring
// struck-through regular prices.
func textWithout(sel *goquery.Selection, excludeSelector string) string {
	clone := sel.Clone()
	clone.Find(excludeSelector).Remove()
	return textOf(clone)
}
