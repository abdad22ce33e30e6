package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/quorumflow-api/internal/report/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTemplate(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`+
		`<Default Extension="xml" ContentType="application/xml"/>`+
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`+
		`</Types>`)
	write("word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`)
	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		body+`</w:body></w:document>`)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func readPart(t *testing.T, doc []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	require.NoError(t, err)
	for _, zf := range zr.File {
		if zf.Name == name {
			rc, err := zf.Open()
			require.NoError(t, err)
			defer rc.Close()
			content, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(content)
		}
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func sizedPNG(t *testing.T, w, h int) images.Sized {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	s, err := images.Size(buf.Bytes())
	require.NoError(t, err)
	return s
}

func TestRender_ScalarSubstitution(t *testing.T) {
	tpl := buildTemplate(t, `<w:p><w:r><w:t>{fecha_reporte}</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>{respuesta_p1}</w:t></w:r></w:p>`)

	out, err := Render(tpl, Data{Fields: map[string]string{
		"fecha_reporte": "2025",
		"respuesta_p1":  "Fuimos <bendecidos> & creció",
	}})
	require.NoError(t, err)

	doc := readPart(t, out, "word/document.xml")
	assert.Contains(t, doc, ">2025<")
	assert.Contains(t, doc, "Fuimos &lt;bendecidos&gt; &amp; creció")
	assert.NotContains(t, doc, "{fecha_reporte}")
	assert.NotContains(t, doc, "{respuesta_p1}")
}

func TestRender_EmptyListsRenderEmpty(t *testing.T) {
	tpl := buildTemplate(t, `<w:p><w:r><w:t>{lista_actividades}</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>{lista_bautismos}</w:t></w:r></w:p>`)

	out, err := Render(tpl, Data{Lists: map[string][]Entry{
		"lista_actividades": {},
		"lista_bautismos":   {},
	}})
	require.NoError(t, err)

	doc := readPart(t, out, "word/document.xml")
	assert.NotContains(t, doc, "lista_actividades")
	assert.NotContains(t, doc, "lista_bautismos")
}

func TestRender_ListEntriesWithImage(t *testing.T) {
	tpl := buildTemplate(t, `<w:p><w:r><w:t>{lista_actividades}</w:t></w:r></w:p>`)

	img := sizedPNG(t, 900, 600)
	out, err := Render(tpl, Data{Lists: map[string][]Entry{
		"lista_actividades": {
			{Heading: "Noche de talentos", Lines: []string{"14/06/2025 19:30", "Gran actividad"}, Images: []images.Sized{img}},
		},
	}})
	require.NoError(t, err)

	doc := readPart(t, out, "word/document.xml")
	assert.Contains(t, doc, "Noche de talentos")
	assert.Contains(t, doc, "Gran actividad")
	assert.Contains(t, doc, `r:embed="rIdReport1"`)
	// 450px wide at 9525 EMU per pixel.
	assert.Contains(t, doc, fmt.Sprintf(`cx="%d"`, 450*9525))
	assert.Contains(t, doc, fmt.Sprintf(`cy="%d"`, 300*9525))

	media := readPart(t, out, "word/media/report_image1.png")
	assert.Equal(t, string(img.Data), media)

	rels := readPart(t, out, "word/_rels/document.xml.rels")
	assert.Contains(t, rels, `Id="rIdReport1"`)
	assert.Contains(t, rels, `Target="media/report_image1.png"`)

	ct := readPart(t, out, "[Content_Types].xml")
	assert.Contains(t, ct, `Extension="png"`)
}

func TestRender_MissingPlaceholderFails(t *testing.T) {
	tpl := buildTemplate(t, `<w:p><w:r><w:t>static text</w:t></w:r></w:p>`)

	_, err := Render(tpl, Data{Fields: map[string]string{"fecha_reporte": "2025"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{fecha_reporte}")
}

func TestRender_MalformedTemplateFails(t *testing.T) {
	_, err := Render([]byte("not a zip archive"), Data{})
	assert.Error(t, err)
}

func TestRender_NewlinesBecomeBreaks(t *testing.T) {
	tpl := buildTemplate(t, `<w:p><w:r><w:t>{respuesta_p1}</w:t></w:r></w:p>`)

	out, err := Render(tpl, Data{Fields: map[string]string{"respuesta_p1": "línea uno\nlínea dos"}})
	require.NoError(t, err)

	doc := readPart(t, out, "word/document.xml")
	assert.True(t, strings.Contains(doc, "<w:br/>"))
	assert.Contains(t, doc, "línea uno")
	assert.Contains(t, doc, "línea dos")
}
