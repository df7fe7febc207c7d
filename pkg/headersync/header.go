package headersync

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Header locates the id token of a document header line such as
// "# Sprint 3: Dashboard data".
type Header struct {
	// Line is the 1-based line number of the header.
	Line int

	// Start and End are byte offsets of the id token in the content.
	Start int
	End   int

	ID    int
	Token string
}

var (
	parserOnce sync.Once
	parser     goldmark.Markdown

	patterns sync.Map // label -> *regexp.Regexp
)

func markdown() goldmark.Markdown {
	parserOnce.Do(func() {
		parser = goldmark.New()
	})
	return parser
}

func headerPattern(label string) *regexp.Regexp {
	if re, ok := patterns.Load(label); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`^ {0,3}#[ \t]+` + regexp.QuoteMeta(label) + `[ \t]+([0-9]+)[ \t]*:`)
	patterns.Store(label, re)
	return re
}

// FindHeader returns the first level-1 heading of content that matches
// "# <label> <id>:". Headings inside code blocks, block quotes or lists are
// never candidates.
func FindHeader(content []byte, label string) (Header, bool) {
	re := headerPattern(label)
	doc := markdown().Parser().Parse(text.NewReader(content))

	var (
		found Header
		ok    bool
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, isHeading := n.(*ast.Heading)
		if !isHeading {
			return ast.WalkContinue, nil
		}
		if heading.Level != 1 || heading.Lines().Len() == 0 || n.Parent() != doc {
			return ast.WalkSkipChildren, nil
		}

		seg := heading.Lines().At(0)
		lineStart := bytes.LastIndexByte(content[:seg.Start], '\n') + 1
		lineEnd := len(content)
		if i := bytes.IndexByte(content[seg.Start:], '\n'); i >= 0 {
			lineEnd = seg.Start + i
		}

		m := re.FindSubmatchIndex(content[lineStart:lineEnd])
		if m == nil {
			return ast.WalkSkipChildren, nil
		}

		token := string(content[lineStart+m[2] : lineStart+m[3]])
		id, err := strconv.Atoi(token)
		if err != nil {
			// Too many digits for an int.
			return ast.WalkSkipChildren, nil
		}

		found = Header{
			Line:  bytes.Count(content[:lineStart], []byte("\n")) + 1,
			Start: lineStart + m[2],
			End:   lineStart + m[3],
			ID:    id,
			Token: token,
		}
		ok = true
		return ast.WalkStop, nil
	})

	return found, ok
}

// FormatID renders id the way the existing token is rendered: zero padded
// to the token's width when the token carries leading zeros.
func (h Header) FormatID(id int) string {
	if len(h.Token) > 1 && h.Token[0] == '0' {
		return fmt.Sprintf("%0*d", len(h.Token), id)
	}
	return strconv.Itoa(id)
}

// Replace returns content with only the header's id token replaced.
func (h Header) Replace(content []byte, id int) []byte {
	token := h.FormatID(id)
	out := make([]byte, 0, len(content)-len(h.Token)+len(token))
	out = append(out, content[:h.Start]...)
	out = append(out, token...)
	out = append(out, content[h.End:]...)
	return out
}

// Mask returns content with the header id token replaced by a fixed
// placeholder, so that checksums of a document are stable across a
// renumbering. Content without a header is returned as is.
func Mask(content []byte, label string) []byte {
	h, ok := FindHeader(content, label)
	if !ok {
		return content
	}
	out := make([]byte, 0, len(content))
	out = append(out, content[:h.Start]...)
	out = append(out, 'N')
	out = append(out, content[h.End:]...)
	return out
}
