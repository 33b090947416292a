package orders

import (
	"fmt"
	"io"
	"iter"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var orderNumberRE = regexp.MustCompile(`\b(\d+)\b`)

// ParseOrders extracts records from the manage page. A row counts when it
// has a "move" cell holding a number and a "details" cell naming a company.
func ParseOrders(r io.Reader) ([]Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing manage page: %w", err)
	}

	var records []Record
	for row := range elements(doc, atom.Tr) {
		move := findCell(row, "move")
		details := findCell(row, "details")
		if move == nil || details == nil {
			continue
		}
		num := orderNumberRE.FindString(text(move, " "))
		company := companyOf(details)
		if num != "" && company != "" {
			records = append(records, Record{OrderNumber: num, Company: company})
		}
	}
	return records, nil
}

// companyOf prefers the first paragraph of the details cell.
func companyOf(cell *html.Node) string {
	for p := range elements(cell, atom.P) {
		return text(p, "")
	}
	return text(cell, "")
}

func findCell(row *html.Node, class string) *html.Node {
	for td := range elements(row, atom.Td) {
		if hasClass(td, class) {
			return td
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" && slices.Contains(strings.Fields(a.Val), class) {
			return true
		}
	}
	return false
}

// elements yields every descendant of n with the given tag, in document
// order.
func elements(n *html.Node, tag atom.Atom) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var walk func(*html.Node) bool
		walk = func(node *html.Node) bool {
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.DataAtom == tag {
					if !yield(c) {
						return false
					}
				}
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(n)
	}
}

// text joins the trimmed text fragments under n with sep.
func text(n *html.Node, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if t := strings.TrimSpace(node.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, sep)
}
