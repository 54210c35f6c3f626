package engine

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/wb-go/wbf/zlog"
)

const lineTolerance = 5

var (
	boldFont   = regexp.MustCompile(`(?i)bold|black|heavy`)
	italicFont = regexp.MustCompile(`(?i)italic|oblique`)
)

// Text rebuilds a document from the PDF text layer: each text row becomes a
// paragraph, font names drive bold/italic runs, large rows become headings
// and every source page starts on a new page. Layout, images and tables are
// not reconstructed.
type Text struct {
	logger *zlog.Zerolog
}

func NewText(logger *zlog.Zerolog) *Text {
	logger.Info().Str("engine", "text").Msg("Conversion engine ready")
	return &Text{logger: logger}
}

func (t *Text) Name() string { return "text" }

func (t *Text) Convert(sourcePath, targetPath string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidSource, r)
		}
	}()

	f, reader, err := pdf.Open(sourcePath)
	if f != nil {
		defer f.Close()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	doc := &docxDocument{}
	pages := reader.NumPage()

	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		for _, line := range groupLines(page.Content().Text) {
			if p, ok := buildParagraph(line); ok {
				doc.addParagraph(p)
			}
		}

		if i < pages {
			doc.addPageBreak()
		}
	}

	t.logger.Debug().
		Int("pages", pages).
		Int("paragraphs", len(doc.Paragraphs)).
		Msg("Text layer extracted")

	return doc.save(targetPath)
}

// groupLines buckets glyphs by baseline, lineTolerance points apart, and
// returns the lines top to bottom.
func groupLines(glyphs []pdf.Text) [][]pdf.Text {
	buckets := make(map[int][]pdf.Text)
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		key := int(math.Round(g.Y / lineTolerance))
		buckets[key] = append(buckets[key], g)
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	lines := make([][]pdf.Text, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, buckets[k])
	}
	return lines
}

func buildParagraph(glyphs []pdf.Text) (docxParagraph, bool) {
	items := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S != "" {
			items = append(items, g)
		}
	}
	if len(items) == 0 {
		return docxParagraph{}, false
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].X < items[b].X
	})

	var (
		runs    []docxRun
		sizeSum float64
		prevEnd float64
		hasPrev bool
	)
	allBold := true

	for _, item := range items {
		text := item.S
		if hasPrev && item.X-prevEnd > item.FontSize*0.2 && !strings.HasPrefix(text, " ") {
			text = " " + text
		}
		prevEnd = item.X + item.W
		hasPrev = true

		bold := boldFont.MatchString(item.Font)
		italic := italicFont.MatchString(item.Font)
		size := int(math.Round(item.FontSize * 2))
		sizeSum += item.FontSize
		allBold = allBold && bold

		if n := len(runs); n > 0 && runs[n-1].Bold == bold && runs[n-1].Italic == italic && runs[n-1].HalfPoints == size {
			runs[n-1].Text += text
			continue
		}
		runs = append(runs, docxRun{Text: text, Bold: bold, Italic: italic, HalfPoints: size})
	}

	var content strings.Builder
	for _, r := range runs {
		content.WriteString(r.Text)
	}
	if strings.TrimSpace(content.String()) == "" {
		return docxParagraph{}, false
	}

	return docxParagraph{
		Runs:    runs,
		Heading: headingLevel(sizeSum/float64(len(items)), allBold),
	}, true
}

func headingLevel(avgSize float64, allBold bool) int {
	switch {
	case avgSize >= 18:
		return 1
	case avgSize >= 14 && allBold:
		return 2
	case avgSize >= 12 && allBold:
		return 3
	default:
		return 0
	}
}
