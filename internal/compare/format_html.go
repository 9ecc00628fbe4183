package compare

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatRupees,
	"pct":  formatRate,
}).Parse(htmlTemplateSource))

type htmlSection struct {
	domain.DeductionBreakdown
	Suggestion *domain.OptimizationSuggestion
}

// Format renders the report as HTML
func (h *HTMLFormatter) Format(report *Report) (string, error) {
	if report == nil || report.Result == nil {
		return "", fmt.Errorf("report has no result")
	}

	sections := make([]htmlSection, 0, len(report.Result.OldRegime.DeductionBreakdown))
	for _, code := range domain.KnownSections {
		entry, ok := report.Result.OldRegime.DeductionBreakdown[code]
		if !ok {
			continue
		}
		section := htmlSection{DeductionBreakdown: entry}
		if s, ok := report.Result.OptimizationSuggestions[code]; ok {
			section.Suggestion = &s
		}
		sections = append(sections, section)
	}

	data := struct {
		*Report
		Sections    []htmlSection
		Assumptions []string
	}{report, sections, DefaultAssumptions}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
