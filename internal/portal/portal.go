package portal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pfrederiksen/class-schedule/internal/logger"
	"github.com/pfrederiksen/class-schedule/internal/schedule"
)

const headerClass = "text-info"

var (
	// Parsing contexts that keep a lone element when its raw HTML is parsed as a fragment.
	rowContext  = &html.Node{Type: html.ElementNode, Data: "tr", DataAtom: atom.Tr}
	bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
)

// element is the raw HTML of one class header or cell, captured from the token stream.
type element struct {
	tag   string
	depth int
	raw   strings.Builder
}

// ParseBlocks extracts one block per class header from a saved portal page.
// An empty marker means schedule.DefaultMarker.
//
// The page is walked as a token stream so that a flat dump of h4.text-info headers and
// bare td cells keeps its cells. Cells inside real tables come out in the same order.
func ParseBlocks(r io.Reader, marker string) ([]schedule.Block, error) {
	z := html.NewTokenizer(r)
	cells := make([]schedule.Cell, 0)

	var current *element
	finish := func() error {
		if current == nil {
			return nil
		}
		cell, err := toCell(current, marker)
		current = nil
		if err != nil {
			return err
		}
		cells = append(cells, cell)
		return nil
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, fmt.Errorf("parsing HTML: %w", z.Err())
		}

		raw := string(z.Raw())
		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)

			// An open cell is closed implicitly by the next cell or row.
			if current != nil && current.tag == "td" && (tag == "td" || tag == "th" || tag == "tr") {
				if err := finish(); err != nil {
					return nil, err
				}
			}

			if current != nil {
				if tag == current.tag {
					current.depth++
				}
				current.raw.WriteString(raw)
				continue
			}

			if tag == "td" || (tag == "h4" && hasAttr && hasClass(z, headerClass)) {
				current = &element{tag: tag, depth: 1}
				current.raw.WriteString(raw)
			}

		case html.EndTagToken:
			if current == nil {
				continue
			}
			name, _ := z.TagName()
			tag := string(name)

			if current.tag == "td" && (tag == "tr" || tag == "table" || tag == "tbody") {
				if err := finish(); err != nil {
					return nil, err
				}
				continue
			}

			current.raw.WriteString(raw)
			if tag == current.tag {
				current.depth--
				if current.depth == 0 {
					if err := finish(); err != nil {
						return nil, err
					}
				}
			}

		default:
			if current != nil {
				current.raw.WriteString(raw)
			}
		}
	}
	if err := finish(); err != nil {
		return nil, err
	}

	blocks := schedule.SplitBlocks(cells)
	for _, b := range blocks {
		if len(b.Cells) == 0 {
			logger.Warn("Class header has no cells", logger.Fields{"class": b.ClassName})
		}
	}
	logger.Debug("Flattened portal page", logger.Fields{
		"cells":  len(cells),
		"blocks": len(blocks),
	})
	return blocks, nil
}

// hasClass reports whether the current start tag carries class among its classes.
func hasClass(z *html.Tokenizer, class string) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if c == class {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}

func toCell(e *element, marker string) (schedule.Cell, error) {
	context := bodyContext
	if e.tag == "td" {
		context = rowContext
	}
	text, err := elementText(e.raw.String(), context)
	if err != nil {
		return schedule.Cell{}, err
	}
	if e.tag == "h4" {
		return schedule.HeaderCell(text), nil
	}
	return schedule.Classify(text, marker), nil
}

// elementText parses raw as a fragment in context and returns its text content.
func elementText(raw string, context *html.Node) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(raw), context)
	if err != nil {
		return "", fmt.Errorf("parsing HTML fragment: %w", err)
	}
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(goquery.NewDocumentFromNode(n).Text())
	}
	return b.String(), nil
}

// ParseFile opens a saved portal page and parses it.
func ParseFile(path, marker string) ([]schedule.Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	blocks, err := ParseBlocks(f, marker)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return blocks, nil
}
