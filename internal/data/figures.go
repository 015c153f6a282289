package data

// FigureInfo holds the organization and title a prominent figure is known by.
type FigureInfo struct {
	Organization string
	Title        string
}

// prominentFigures maps well-known business figures to their organization and
// title. Headlines routinely mention these people by name alone, so the
// extractor matches them directly without a title/organization pattern.
var prominentFigures = map[string]FigureInfo{
	"elon musk":         {Organization: "Tesla", Title: "CEO"},
	"tim cook":          {Organization: "Apple", Title: "CEO"},
	"mark zuckerberg":   {Organization: "Meta", Title: "CEO"},
	"sundar pichai":     {Organization: "Google", Title: "CEO"},
	"satya nadella":     {Organization: "Microsoft", Title: "CEO"},
	"jeff bezos":        {Organization: "Amazon", Title: "Executive Chairman"},
	"andy jassy":        {Organization: "Amazon", Title: "CEO"},
	"jensen huang":      {Organization: "NVIDIA", Title: "CEO"},
	"sam altman":        {Organization: "OpenAI", Title: "CEO"},
	"jamie dimon":       {Organization: "JPMorgan Chase", Title: "CEO"},
	"mary barra":        {Organization: "GM", Title: "CEO"},
	"doug mcmillon":     {Organization: "Walmart", Title: "CEO"},
	"larry fink":        {Organization: "BlackRock", Title: "CEO"},
	"brian moynihan":    {Organization: "Bank of America", Title: "CEO"},
	"david solomon":     {Organization: "Goldman Sachs", Title: "CEO"},
	"dara khosrowshahi": {Organization: "Uber", Title: "CEO"},
}

// ProminentFigure looks up a name in the prominent-figures table.
// Matching is case-insensitive and accent-insensitive.
func ProminentFigure(name string) (FigureInfo, bool) {
	info, ok := prominentFigures[Normalize(name)]
	return info, ok
}

// ProminentFigures returns the full table keyed by display name. The returned
// map preserves the canonical capitalization of each name.
func ProminentFigures() map[string]FigureInfo {
	out := make(map[string]FigureInfo, len(prominentFigureNames))
	for _, name := range prominentFigureNames {
		out[name] = prominentFigures[Normalize(name)]
	}
	return out
}

// prominentFigureNames lists the canonical display names in a stable order.
var prominentFigureNames = []string{
	"Elon Musk",
	"Tim Cook",
	"Mark Zuckerberg",
	"Sundar Pichai",
	"Satya Nadella",
	"Jeff Bezos",
	"Andy Jassy",
	"Jensen Huang",
	"Sam Altman",
	"Jamie Dimon",
	"Mary Barra",
	"Doug McMillon",
	"Larry Fink",
	"Brian Moynihan",
	"David Solomon",
	"Dara Khosrowshahi",
}

// ProminentFigureNames returns the canonical display names in a stable order.
func ProminentFigureNames() []string {
	out := make([]string, len(prominentFigureNames))
	copy(out, prominentFigureNames)
	return out
}
