package report

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/report/images"
)

type mockActivityLister struct{ mock.Mock }

func (m *mockActivityLister) ListByDateDesc(ctx context.Context) ([]domain.Activity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

type mockConvertLister struct{ mock.Mock }

func (m *mockConvertLister) List(ctx context.Context) ([]domain.Convert, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Convert), args.Error(1)
}

type mockFutureMemberLister struct{ mock.Mock }

func (m *mockFutureMemberLister) List(ctx context.Context) ([]domain.FutureMember, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FutureMember), args.Error(1)
}

type mockAnswersStore struct{ mock.Mock }

func (m *mockAnswersStore) Get(ctx context.Context, year int) (*domain.ReportAnswers, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(*domain.ReportAnswers), args.Error(1)
}

func (m *mockAnswersStore) Put(ctx context.Context, a *domain.ReportAnswers) error {
	return m.Called(ctx, a).Error(0)
}

type mockTemplateStore struct{ mock.Mock }

func (m *mockTemplateStore) DownloadBytes(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]byte), args.Error(1)
}

type stubResolver struct{}

func (stubResolver) ResolveItems(_ context.Context, itemURLs [][]string) [][]images.Sized {
	out := make([][]images.Sized, len(itemURLs))
	for i := range out {
		out[i] = []images.Sized{}
	}
	return out
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(activities *mockActivityLister, converts *mockConvertLister, futureMembers *mockFutureMemberLister, answers *mockAnswersStore, templates *mockTemplateStore, now time.Time) *service {
	return &service{
		activities:    activities,
		converts:      converts,
		futureMembers: futureMembers,
		answers:       answers,
		templates:     templates,
		resolver:      stubResolver{},
		templateKey:   "templates/annual_report.docx",
		now:           func() time.Time { return now },
	}
}

func TestAggregate_YearBoundaries(t *testing.T) {
	activities := &mockActivityLister{}
	converts := &mockConvertLister{}
	futureMembers := &mockFutureMemberLister{}
	answers := &mockAnswersStore{}

	activities.On("ListByDateDesc", mock.Anything).Return([]domain.Activity{
		{ActivityID: "a1", Title: "last second", Date: time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)},
		{ActivityID: "a2", Title: "first second", Date: date(2024, time.January, 1)},
		{ActivityID: "a3", Title: "next year", Date: date(2025, time.January, 1)},
		{ActivityID: "a4", Title: "prior year", Date: time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC)},
	}, nil)
	converts.On("List", mock.Anything).Return([]domain.Convert{}, nil)
	futureMembers.On("List", mock.Anything).Return([]domain.FutureMember{}, nil)
	answers.On("Get", mock.Anything, 2024).Return(&domain.ReportAnswers{Year: 2024}, nil)

	svc := newTestService(activities, converts, futureMembers, answers, &mockTemplateStore{}, date(2025, time.June, 1))
	data, err := svc.Aggregate(context.Background(), 2024)

	require.NoError(t, err)
	require.Len(t, data.Activities, 2)
	assert.Equal(t, "a1", data.Activities[0].ActivityID)
	assert.Equal(t, "a2", data.Activities[1].ActivityID)
}

func TestAggregate_EmptyYear(t *testing.T) {
	activities := &mockActivityLister{}
	converts := &mockConvertLister{}
	futureMembers := &mockFutureMemberLister{}
	answers := &mockAnswersStore{}

	activities.On("ListByDateDesc", mock.Anything).Return([]domain.Activity{}, nil)
	converts.On("List", mock.Anything).Return([]domain.Convert{}, nil)
	futureMembers.On("List", mock.Anything).Return([]domain.FutureMember{}, nil)
	answers.On("Get", mock.Anything, 2026).Return(&domain.ReportAnswers{Year: 2026}, nil)

	svc := newTestService(activities, converts, futureMembers, answers, &mockTemplateStore{}, date(2026, time.June, 1))
	data, err := svc.Aggregate(context.Background(), 2026)

	require.NoError(t, err)
	assert.Empty(t, data.Activities)
	assert.Empty(t, data.Baptisms)
	assert.Equal(t, "", data.Answers.P1)
}

func TestAggregate_MergesBaptismSources(t *testing.T) {
	activities := &mockActivityLister{}
	converts := &mockConvertLister{}
	futureMembers := &mockFutureMemberLister{}
	answers := &mockAnswersStore{}

	activities.On("ListByDateDesc", mock.Anything).Return([]domain.Activity{}, nil)
	converts.On("List", mock.Anything).Return([]domain.Convert{
		{ConvertID: "c1", FullName: "Ana Pérez", BaptismDate: date(2024, time.March, 10)},
		{ConvertID: "c2", FullName: "Off Year", BaptismDate: date(2023, time.March, 10)},
	}, nil)
	futureMembers.On("List", mock.Anything).Return([]domain.FutureMember{
		{FutureMemberID: "f1", FullName: "Luis Gómez", BaptismDate: date(2024, time.August, 2)},
		{FutureMemberID: "f2", FullName: "Not Yet", BaptismDate: date(2024, time.December, 20)},
	}, nil)
	answers.On("Get", mock.Anything, 2024).Return(&domain.ReportAnswers{Year: 2024}, nil)

	// f2's scheduled date is still in the future relative to "now", so only
	// f1 counts as an automatic baptism.
	svc := newTestService(activities, converts, futureMembers, answers, &mockTemplateStore{}, date(2024, time.October, 1))
	data, err := svc.Aggregate(context.Background(), 2024)

	require.NoError(t, err)
	require.Len(t, data.Baptisms, 2)
	assert.Equal(t, "Luis Gómez", data.Baptisms[0].Name)
	assert.Equal(t, domain.BaptismSourceAutomatic, data.Baptisms[0].Source)
	assert.Equal(t, "Ana Pérez", data.Baptisms[1].Name)
	assert.Equal(t, domain.BaptismSourceManual, data.Baptisms[1].Source)
}

func TestComposeDescription_SectionOrder(t *testing.T) {
	got := ComposeDescription(domain.Activity{
		Description:    "Noche de hogar",
		Learning:       "Servir",
		Location:       "Capilla",
		AdditionalText: "Trajimos pan",
		Context:        "Fin de año",
	})

	want := "Noche de hogar\n\n" +
		"Información adicional: Trajimos pan\n\n" +
		"Lugar: Capilla\n\n" +
		"Contexto: Fin de año\n\n" +
		"Aprendizaje: Servir"
	assert.Equal(t, want, got)
}

func TestComposeDescription_SkipsEmptySections(t *testing.T) {
	got := ComposeDescription(domain.Activity{Description: "Base", Context: "Algo"})
	assert.Equal(t, "Base\n\nContexto: Algo", got)

	got = ComposeDescription(domain.Activity{Location: "Cancha"})
	assert.Equal(t, "Lugar: Cancha", got)
}

func TestGenerate_EmptyYearProducesDocument(t *testing.T) {
	activities := &mockActivityLister{}
	converts := &mockConvertLister{}
	futureMembers := &mockFutureMemberLister{}
	answers := &mockAnswersStore{}
	templates := &mockTemplateStore{}

	activities.On("ListByDateDesc", mock.Anything).Return([]domain.Activity{}, nil)
	converts.On("List", mock.Anything).Return([]domain.Convert{}, nil)
	futureMembers.On("List", mock.Anything).Return([]domain.FutureMember{}, nil)
	answers.On("Get", mock.Anything, 2026).Return(&domain.ReportAnswers{Year: 2026}, nil)
	templates.On("DownloadBytes", mock.Anything, "templates/annual_report.docx").Return(reportTemplate(t), nil)

	svc := newTestService(activities, converts, futureMembers, answers, templates, date(2026, time.June, 1))
	encoded, err := svc.Generate(context.Background(), 0) // zero defaults to the current year

	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	doc := readDocumentXML(t, raw)
	assert.Contains(t, doc, ">2026<")
	assert.NotContains(t, doc, "{fecha_reporte}")
	assert.NotContains(t, doc, "{lista_actividades}")
	assert.NotContains(t, doc, "{lista_bautismos}")
	templates.AssertExpectations(t)
}

func reportTemplate(t *testing.T) []byte {
	t.Helper()
	document := `<?xml version="1.0"?><w:document><w:body>` +
		`<w:p><w:r><w:t>{fecha_reporte}</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>{respuesta_p1}</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>{respuesta_p2}</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>{respuesta_p3}</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>{respuesta_p4}</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>{respuesta_p5}</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>{respuesta_p6}</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>{lista_actividades}</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>{lista_bautismos}</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	contentTypes := `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="xml" ContentType="application/xml"/></Types>`
	rels := `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"[Content_Types].xml":          contentTypes,
		"word/document.xml":            document,
		"word/_rels/document.xml.rels": rels,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func readDocumentXML(t *testing.T, raw []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		var sb strings.Builder
		_, err = io.Copy(&sb, rc)
		require.NoError(t, err)
		return sb.String()
	}
	t.Fatal("word/document.xml not found")
	return ""
}
