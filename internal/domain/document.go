package domain

import (
	"path/filepath"
	"strings"
)

type Upload struct {
	Filename string
	Data     []byte
}

type Artifact struct {
	Filename  string
	MediaType string
	Data      []byte
}

type ConversionState string

const (
	StateReceived  ConversionState = "received"
	StateValidated ConversionState = "validated"
	StateStaged    ConversionState = "staged"
	StateConverted ConversionState = "converted"
	StateDelivered ConversionState = "delivered"
	StateFailed    ConversionState = "failed"
)

const (
	SourceExtension = ".pdf"
	TargetExtension = ".docx"

	SourceMediaType = "application/pdf"
	TargetMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

const (
	MaxUploadSize   = 50 << 20
	FileIDLength    = 8
	WorkspacePrefix = "pdf2word-"
)

// HasSourceExtension reports whether name ends in the source extension, ignoring case.
func HasSourceExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), SourceExtension)
}

// OutputFilename strips the last extension of name and appends the target
// extension. Leading dots of the final path element do not start an
// extension, so ".pdf" becomes ".pdf.docx".
func OutputFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	stem := base[strings.LastIndex(base, string(filepath.Separator))+1:]
	if strings.Trim(stem, ".") == "" {
		base = name
	}
	return base + TargetExtension
}
