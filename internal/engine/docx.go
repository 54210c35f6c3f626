package engine

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

const (
	templateName = "pdf2word"

	// US Letter with one inch margins, in twentieths of a point.
	pageWidthTwips  = 12240
	pageHeightTwips = 15840
	marginTwips     = 1440
	headerTwips     = 720
)

//go:embed template/styles.xml
var templateFiles embed.FS

// templateFS serves the library's default package parts with our styles.xml,
// which carries the Heading1-3 styles the default theme lacks.
type templateFS struct{}

func (templateFS) Open(name string) (fs.File, error) {
	part := strings.TrimPrefix(name, "xml/"+templateName+"/")
	if part == "word/styles.xml" {
		return templateFiles.Open("template/styles.xml")
	}
	return docx.TemplateXMLFS.Open("xml/default/" + part)
}

type docxRun struct {
	Text       string
	Bold       bool
	Italic     bool
	HalfPoints int
}

type docxParagraph struct {
	Runs      []docxRun
	Heading   int
	PageBreak bool
}

type docxDocument struct {
	Paragraphs []docxParagraph
}

func (d *docxDocument) addParagraph(p docxParagraph) {
	d.Paragraphs = append(d.Paragraphs, p)
}

func (d *docxDocument) addPageBreak() {
	d.Paragraphs = append(d.Paragraphs, docxParagraph{PageBreak: true})
}

func (d *docxDocument) build() *docx.Docx {
	doc := docx.New().UseTemplate(templateName, docx.DefaultTemplateFilesList, templateFS{})

	if len(d.Paragraphs) == 0 {
		doc.AddParagraph()
	}

	for _, p := range d.Paragraphs {
		para := doc.AddParagraph()
		if p.PageBreak {
			para.AddPageBreaks()
			continue
		}
		if p.Heading > 0 {
			para.Style("Heading" + strconv.Itoa(p.Heading))
		}

		for _, r := range p.Runs {
			run := para.AddText(r.Text)
			for _, child := range run.Children {
				if t, ok := child.(*docx.Text); ok {
					t.XMLSpace = "preserve"
				}
			}
			if r.Bold {
				run.Bold()
			}
			if r.Italic {
				run.Italic()
			}
			if r.HalfPoints > 0 {
				run.Size(strconv.Itoa(r.HalfPoints))
			}
		}
	}

	doc.Document.Body.Items = append(doc.Document.Body.Items, &docx.SectPr{
		PgSz: &docx.PgSz{W: pageWidthTwips, H: pageHeightTwips},
		PgMar: &docx.PgMar{
			Top:    marginTwips,
			Left:   marginTwips,
			Bottom: marginTwips,
			Right:  marginTwips,
			Header: headerTwips,
			Footer: headerTwips,
		},
	})

	return doc
}

func (d *docxDocument) save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	if _, err := d.build().WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close document: %w", err)
	}
	return nil
}
