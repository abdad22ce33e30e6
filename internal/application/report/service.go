package report

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"time"

	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/report/docx"
	"github.com/quorumflow-api/internal/report/images"
)

// Template placeholder names. These must match the slots of the DOCX template
// stored in object storage.
const (
	fieldReportDate = "fecha_reporte"
	listActivities  = "lista_actividades"
	listBaptisms    = "lista_bautismos"
)

// Spanish section labels appended to an activity description in the report.
const (
	labelAdditional = "Información adicional: "
	labelLocation   = "Lugar: "
	labelContext    = "Contexto: "
	labelLearning   = "Aprendizaje: "
)

type activityLister interface {
	ListByDateDesc(ctx context.Context) ([]domain.Activity, error)
}

type convertLister interface {
	List(ctx context.Context) ([]domain.Convert, error)
}

type futureMemberLister interface {
	List(ctx context.Context) ([]domain.FutureMember, error)
}

type answersStore interface {
	Get(ctx context.Context, year int) (*domain.ReportAnswers, error)
	Put(ctx context.Context, a *domain.ReportAnswers) error
}

type templateStore interface {
	DownloadBytes(ctx context.Context, key string) ([]byte, error)
}

type imageResolver interface {
	ResolveItems(ctx context.Context, itemURLs [][]string) [][]images.Sized
}

// YearData is the aggregated input of one annual report.
type YearData struct {
	Activities []domain.Activity
	Baptisms   []domain.Baptism
	Answers    domain.ReportAnswers
}

type Service interface {
	GetAnswers(ctx context.Context, year int) (*domain.ReportAnswers, error)
	PutAnswers(ctx context.Context, year int, req domain.PutReportAnswersRequest) (*domain.ReportAnswers, error)
	Aggregate(ctx context.Context, year int) (*YearData, error)
	// Generate renders the annual report for a year (zero means the current
	// year) and returns it as a base64-encoded DOCX.
	Generate(ctx context.Context, year int) (string, error)
}

type service struct {
	activities    activityLister
	converts      convertLister
	futureMembers futureMemberLister
	answers       answersStore
	templates     templateStore
	resolver      imageResolver
	templateKey   string
	now           func() time.Time
}

type ServiceDeps struct {
	Activities    activityLister
	Converts      convertLister
	FutureMembers futureMemberLister
	Answers       answersStore
	Templates     templateStore
	Resolver      imageResolver
	TemplateKey   string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		activities:    deps.Activities,
		converts:      deps.Converts,
		futureMembers: deps.FutureMembers,
		answers:       deps.Answers,
		templates:     deps.Templates,
		resolver:      deps.Resolver,
		templateKey:   deps.TemplateKey,
		now:           time.Now,
	}
}

func (s *service) GetAnswers(ctx context.Context, year int) (*domain.ReportAnswers, error) {
	return s.answers.Get(ctx, year)
}

func (s *service) PutAnswers(ctx context.Context, year int, req domain.PutReportAnswersRequest) (*domain.ReportAnswers, error) {
	a := &domain.ReportAnswers{
		Year: year,
		P1:   req.P1, P2: req.P2, P3: req.P3,
		P4: req.P4, P5: req.P5, P6: req.P6,
	}
	if err := s.answers.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Aggregate collects everything one report year needs. The activity listing
// comes back date-ordered from the index and is range-filtered here; a year
// with no records yields empty slices, not an error.
func (s *service) Aggregate(ctx context.Context, year int) (*YearData, error) {
	activities, err := s.activities.ListByDateDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	inRange := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if inYear(a.Date, year) {
			inRange = append(inRange, a)
		}
	}

	converts, err := s.converts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list converts: %w", err)
	}
	futureMembers, err := s.futureMembers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list future members: %w", err)
	}

	baptisms := make([]domain.Baptism, 0, len(converts)+len(futureMembers))
	for _, fm := range futureMembers {
		if fm.BaptismDate.Before(s.now()) && inYear(fm.BaptismDate, year) {
			baptisms = append(baptisms, domain.BaptismFromFutureMember(fm))
		}
	}
	for _, c := range converts {
		if inYear(c.BaptismDate, year) {
			baptisms = append(baptisms, domain.BaptismFromConvert(c))
		}
	}
	sort.SliceStable(baptisms, func(i, j int) bool { return baptisms[i].Date.After(baptisms[j].Date) })

	answers, err := s.answers.Get(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("get report answers: %w", err)
	}

	return &YearData{Activities: inRange, Baptisms: baptisms, Answers: *answers}, nil
}

func (s *service) Generate(ctx context.Context, year int) (string, error) {
	if year == 0 {
		year = s.now().Year()
	}

	data, err := s.Aggregate(ctx, year)
	if err != nil {
		return "", err
	}

	template, err := s.templates.DownloadBytes(ctx, s.templateKey)
	if err != nil {
		return "", fmt.Errorf("download report template: %w", err)
	}

	// One bounded fan-out covers the images of every item; activity items
	// come first, baptism items after.
	itemURLs := make([][]string, 0, len(data.Activities)+len(data.Baptisms))
	for _, a := range data.Activities {
		itemURLs = append(itemURLs, a.ImageURLs)
	}
	for _, b := range data.Baptisms {
		itemURLs = append(itemURLs, b.PhotoURLs)
	}
	resolved := s.resolver.ResolveItems(ctx, itemURLs)

	activityEntries := make([]docx.Entry, len(data.Activities))
	for i, a := range data.Activities {
		activityEntries[i] = docx.Entry{
			Heading: a.Title,
			Lines:   []string{formatActivityDate(a), ComposeDescription(a)},
			Images:  resolved[i],
		}
	}
	baptismEntries := make([]docx.Entry, len(data.Baptisms))
	for i, b := range data.Baptisms {
		baptismEntries[i] = docx.Entry{
			Lines:  []string{fmt.Sprintf("%s (%s)", b.Name, b.Date.Format("02/01/2006"))},
			Images: resolved[len(data.Activities)+i],
		}
	}

	rendered, err := docx.Render(template, docx.Data{
		Fields: map[string]string{
			fieldReportDate: fmt.Sprintf("%d", year),
			"respuesta_p1":  data.Answers.P1,
			"respuesta_p2":  data.Answers.P2,
			"respuesta_p3":  data.Answers.P3,
			"respuesta_p4":  data.Answers.P4,
			"respuesta_p5":  data.Answers.P5,
			"respuesta_p6":  data.Answers.P6,
		},
		Lists: map[string][]docx.Entry{
			listActivities: activityEntries,
			listBaptisms:   baptismEntries,
		},
	})
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	return base64.StdEncoding.EncodeToString(rendered), nil
}

// ComposeDescription builds the report text of one activity: the base
// description plus the optional labeled sections in fixed order (additional
// text, location, context, learning). Empty sections are omitted.
func ComposeDescription(a domain.Activity) string {
	text := a.Description
	for _, section := range []struct{ label, value string }{
		{labelAdditional, a.AdditionalText},
		{labelLocation, a.Location},
		{labelContext, a.Context},
		{labelLearning, a.Learning},
	} {
		if section.value == "" {
			continue
		}
		if text != "" {
			text += "\n\n"
		}
		text += section.label + section.value
	}
	return text
}

func formatActivityDate(a domain.Activity) string {
	formatted := a.Date.Format("02/01/2006")
	if a.Time != "" {
		formatted += " " + a.Time
	}
	return formatted
}

// inYear reports whether t falls within [Jan 1 00:00:00.000, Dec 31
// 23:59:59.999...] of the given year.
func inYear(t time.Time, year int) bool {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return !t.Before(start) && t.Before(end)
}
