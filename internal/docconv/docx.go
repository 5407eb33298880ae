package docconv

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// WordprocessingML namespaces: transitional and strict OOXML.
const (
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	strictWordNS = "http://purl.oclc.org/ooxml/wordprocessingml/main"
	compatNS     = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

// ErrNoBody is returned for a document part without a recognized body.
var ErrNoBody = errors.New("no WordprocessingML body found")

func isWordNS(space string) bool {
	return space == wordNS || space == strictWordNS
}

// Docx extracts text from .docx files.
type Docx struct{}

// Extract reads the main document part of the archive.
func (Docx) Extract(_ context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s as a docx archive: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s in %s: %w", documentPart, path, err)
		}
		defer rc.Close()

		text, err := DocumentText(rc)
		if err != nil {
			return "", fmt.Errorf("failed to parse %s in %s: %w", documentPart, path, err)
		}
		return text, nil
	}
	return "", fmt.Errorf("%s has no %s part", path, documentPart)
}

// DocumentText streams a WordprocessingML document and returns its text.
// Paragraphs and line breaks become newlines and tabs are kept. Only the
// preferred branch of mc:AlternateContent is read.
func DocumentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	hasBody := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == compatNS && t.Name.Local == "Fallback" {
				if err := dec.Skip(); err != nil {
					return "", err
				}
				continue
			}
			if !isWordNS(t.Name.Space) {
				continue
			}
			switch t.Name.Local {
			case "body":
				hasBody = true
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			case "noBreakHyphen":
				b.WriteByte('-')
			}
		case xml.EndElement:
			if !isWordNS(t.Name.Space) {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	if !hasBody {
		return "", ErrNoBody
	}
	return b.String(), nil
}
