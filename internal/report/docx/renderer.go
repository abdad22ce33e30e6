// Package docx renders the annual report template. A template is a regular
// .docx package whose document body carries {name} placeholders: scalar slots
// are substituted in place, list slots are expanded into generated paragraphs
// with embedded images. The placeholder names are a contract maintained
// out-of-band with the template file.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/quorumflow-api/internal/report/images"
)

const (
	documentPath     = "word/document.xml"
	relsPath         = "word/_rels/document.xml.rels"
	contentTypesPath = "[Content_Types].xml"

	imageRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	// emuPerPixel converts CSS pixels at 96 DPI to English Metric Units.
	emuPerPixel = 9525
)

// Entry is one rendered item of a list slot.
type Entry struct {
	Heading string // bolded first paragraph; empty means none
	Lines   []string
	Images  []images.Sized
}

// Data binds placeholder names to their content.
type Data struct {
	Fields map[string]string
	Lists  map[string][]Entry
}

// Render substitutes every placeholder of the template and returns the
// resulting document. Any malformed template or missing placeholder is fatal;
// there is no partial output.
func Render(template []byte, data Data) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}

	parts := make(map[string][]byte, len(zr.File))
	order := make([]string, 0, len(zr.File))
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("open template part %s: %w", zf.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read template part %s: %w", zf.Name, err)
		}
		parts[zf.Name] = content
		order = append(order, zf.Name)
	}

	docBytes, ok := parts[documentPath]
	if !ok {
		return nil, fmt.Errorf("template has no %s", documentPath)
	}
	doc := string(docBytes)

	for _, name := range sortedKeys(data.Fields) {
		placeholder := "{" + name + "}"
		if !strings.Contains(doc, placeholder) {
			return nil, fmt.Errorf("template missing placeholder %s", placeholder)
		}
		doc = strings.ReplaceAll(doc, placeholder, textRuns(data.Fields[name]))
	}

	// Media parts and relationships are numbered across all lists so IDs stay
	// unique within the package.
	var media []mediaPart
	imageNum := 0
	for _, name := range sortedKeys(data.Lists) {
		var block strings.Builder
		for _, entry := range data.Lists[name] {
			if entry.Heading != "" {
				block.WriteString(`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">`)
				block.WriteString(textRuns(entry.Heading))
				block.WriteString(`</w:t></w:r></w:p>`)
			}
			for _, line := range entry.Lines {
				block.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
				block.WriteString(textRuns(line))
				block.WriteString(`</w:t></w:r></w:p>`)
			}
			for _, img := range entry.Images {
				imageNum++
				m := mediaPart{
					name:  fmt.Sprintf("word/media/report_image%d.%s", imageNum, img.Format),
					relID: fmt.Sprintf("rIdReport%d", imageNum),
					img:   img,
				}
				media = append(media, m)
				block.WriteString(drawingXML(m, imageNum))
			}
		}
		var err error
		doc, err = replaceListParagraph(doc, "{"+name+"}", block.String())
		if err != nil {
			return nil, err
		}
	}

	parts[documentPath] = []byte(doc)

	if len(media) > 0 {
		rels, err := withImageRels(parts[relsPath], media)
		if err != nil {
			return nil, err
		}
		parts[relsPath] = rels
		parts[contentTypesPath] = withImageContentTypes(parts[contentTypesPath], media)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("write part %s: %w", name, err)
		}
		if _, err := w.Write(parts[name]); err != nil {
			return nil, fmt.Errorf("write part %s: %w", name, err)
		}
	}
	for _, m := range media {
		w, err := zw.Create(m.name)
		if err != nil {
			return nil, fmt.Errorf("write media %s: %w", m.name, err)
		}
		if _, err := w.Write(m.img.Data); err != nil {
			return nil, fmt.Errorf("write media %s: %w", m.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize document: %w", err)
	}
	return out.Bytes(), nil
}

type mediaPart struct {
	name  string // zip path, e.g. word/media/report_image1.png
	relID string
	img   images.Sized
}

// replaceListParagraph swaps the whole paragraph containing the list
// placeholder for the generated block. Paragraphs cannot nest in WordprocessingML,
// so the placeholder's own paragraph has to go.
func replaceListParagraph(doc, placeholder, block string) (string, error) {
	at := strings.Index(doc, placeholder)
	if at < 0 {
		return "", fmt.Errorf("template missing placeholder %s", placeholder)
	}
	start := strings.LastIndex(doc[:at], "<w:p>")
	if s := strings.LastIndex(doc[:at], "<w:p "); s > start {
		start = s
	}
	if start < 0 {
		return "", fmt.Errorf("placeholder %s is not inside a paragraph", placeholder)
	}
	end := strings.Index(doc[at:], "</w:p>")
	if end < 0 {
		return "", fmt.Errorf("unterminated paragraph around %s", placeholder)
	}
	end = at + end + len("</w:p>")
	return doc[:start] + block + doc[end:], nil
}

// textRuns escapes text for WordprocessingML, converting newlines to breaks.
func textRuns(s string) string {
	escaped := xmlEscape(s)
	return strings.ReplaceAll(escaped, "\n", `</w:t><w:br/><w:t xml:space="preserve">`)
}

func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

// drawingXML produces a self-contained inline drawing. Namespaces are declared
// on the elements themselves so the template's root declarations don't matter.
func drawingXML(m mediaPart, id int) string {
	cx := m.img.Width * emuPerPixel
	cy := m.img.Height * emuPerPixel
	return fmt.Sprintf(`<w:p><w:r><w:drawing>`+
		`<wp:inline distT="0" distB="0" distL="0" distR="0" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing">`+
		`<wp:extent cx="%d" cy="%d"/>`+
		`<wp:docPr id="%d" name="report_image%d"/>`+
		`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`+
		`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:nvPicPr><pic:cNvPr id="%d" name="report_image%d"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"/>`+
		`<a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`,
		cx, cy, id, id, id, id, m.relID, cx, cy)
}

// withImageRels appends one image relationship per media part.
func withImageRels(rels []byte, media []mediaPart) ([]byte, error) {
	content := string(rels)
	if content == "" {
		content = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`
	}
	closing := strings.LastIndex(content, "</Relationships>")
	if closing < 0 {
		return nil, fmt.Errorf("malformed %s", relsPath)
	}
	var b strings.Builder
	b.WriteString(content[:closing])
	for _, m := range media {
		target := strings.TrimPrefix(m.name, "word/")
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, m.relID, imageRelType, target)
	}
	b.WriteString(content[closing:])
	return []byte(b.String()), nil
}

// withImageContentTypes registers a Default entry for every embedded image
// extension not already declared by the template.
func withImageContentTypes(ct []byte, media []mediaPart) []byte {
	content := string(ct)
	closing := strings.LastIndex(content, "</Types>")
	if closing < 0 {
		return ct
	}
	seen := map[string]bool{}
	var b strings.Builder
	b.WriteString(content[:closing])
	for _, m := range media {
		ext := m.img.Format
		if seen[ext] || strings.Contains(content, fmt.Sprintf(`Extension="%s"`, ext)) {
			continue
		}
		seen[ext] = true
		fmt.Fprintf(&b, `<Default Extension="%s" ContentType="image/%s"/>`, ext, ext)
	}
	b.WriteString(content[closing:])
	return []byte(b.String())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
