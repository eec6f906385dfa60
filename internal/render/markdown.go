package render

import (
	"fmt"
	"strings"

	"github.com/joelkehle/aireadiness/internal/readiness"
)

type headings struct {
	Title        string
	Challenges   string
	Career       string
	Productivity string
	Team         string
	Leadership   string
	Growth       string
	QuickWins    string
	Actions      string
	Goals        string
	Roadmap      string
	Reference    string
}

var headingsByLang = map[string]headings{
	readiness.LanguageEnglish: {
		Title:        "AI Readiness Report",
		Challenges:   "Department Challenges",
		Career:       "Career Impact",
		Productivity: "Productivity",
		Team:         "Team",
		Leadership:   "Leadership",
		Growth:       "Growth",
		QuickWins:    "Quick Wins",
		Actions:      "Actions",
		Goals:        "Goals",
		Roadmap:      "Implementation Roadmap",
		Reference:    "Reference",
	},
	readiness.LanguageSpanish: {
		Title:        "Informe de Preparación en IA",
		Challenges:   "Desafíos del Departamento",
		Career:       "Impacto Profesional",
		Productivity: "Productividad",
		Team:         "Equipo",
		Leadership:   "Liderazgo",
		Growth:       "Crecimiento",
		QuickWins:    "Victorias Rápidas",
		Actions:      "Acciones",
		Goals:        "Metas",
		Roadmap:      "Hoja de Ruta de Implementación",
		Reference:    "Referencia",
	},
}

// Markdown renders the canonical report as a Markdown document.
func Markdown(id string, r readiness.Report, lang string) string {
	h := headingsByLang[readiness.ResolveLanguage(lang)]
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", h.Title)
	if id != "" {
		fmt.Fprintf(&b, "_%s: %s_\n\n", h.Reference, sanitize(id))
	}
	fmt.Fprintf(&b, "%s\n\n", sanitize(r.ExecutiveSummary))

	fmt.Fprintf(&b, "## %s\n\n", h.Challenges)
	for _, c := range r.DepartmentChallenges {
		fmt.Fprintf(&b, "- %s\n", sanitize(c))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", h.Career)
	fmt.Fprintf(&b, "- **%s:** %s\n", h.Productivity, sanitize(r.CareerImpact.Productivity))
	fmt.Fprintf(&b, "- **%s:** %s\n", h.Team, sanitize(r.CareerImpact.Team))
	fmt.Fprintf(&b, "- **%s:** %s\n", h.Leadership, sanitize(r.CareerImpact.Leadership))
	fmt.Fprintf(&b, "- **%s:** %s\n\n", h.Growth, sanitize(r.CareerImpact.Growth))

	fmt.Fprintf(&b, "## %s\n\n", h.QuickWins)
	if len(r.QuickWins.Actions) > 0 {
		fmt.Fprintf(&b, "### %s\n\n", h.Actions)
		for i, a := range r.QuickWins.Actions {
			fmt.Fprintf(&b, "%d. **%s**", i+1, sanitize(a.Action))
			if a.Impact != "" {
				fmt.Fprintf(&b, " - %s", sanitize(a.Impact))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if len(r.QuickWins.Goals) > 0 {
		fmt.Fprintf(&b, "### %s\n\n", h.Goals)
		for _, g := range r.QuickWins.Goals {
			fmt.Fprintf(&b, "- **%s**", sanitize(g.Goal))
			if g.Outcome != "" {
				fmt.Fprintf(&b, " - %s", sanitize(g.Outcome))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", h.Roadmap)
	for _, p := range r.ImplementationRoadmap {
		fmt.Fprintf(&b, "### %s (%s)\n\n", sanitize(p.Phase), sanitize(p.Duration))
		fmt.Fprintf(&b, "%s\n\n", sanitize(p.Description))
		if p.Benefit != "" {
			fmt.Fprintf(&b, "_%s_\n\n", sanitize(p.Benefit))
		}
	}
	return b.String()
}

// sanitize keeps generated text from opening raw HTML blocks.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}
