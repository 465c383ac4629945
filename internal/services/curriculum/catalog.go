package curriculum

import (
	"slices"

	"ProbabilityPit/internal/domain/models"
)

// FallbackMarkdown is shown when a lesson file cannot be loaded.
const FallbackMarkdown = "# Error\n\nFailed to load content. Please ensure the curriculum files are in the content folder."

var catalog = []models.Module{
	{
		ID:          1,
		Title:       "The Casino vs. The Exchange",
		Description: "Break the gambler's mindset. Learn how the market translates events into prices and why the 'Vig' is your primary obstacle.",
		Concepts:    []string{"Implied Probability Formula", "De-vigging Strategy", "Expected Value (EV)"},
		Links: []models.Link{
			{Label: "Kalshi (US Regulated)", URL: "https://kalshi.com"},
			{Label: "Polymarket (Crypto-native)", URL: "https://polymarket.com"},
		},
		Duration: "15 min",
		File:     "module-01-casino-vs-exchange.md",
	},
	{
		ID:          2,
		Title:       "The 'Inch-Wide, Mile-Deep' Strategy",
		Description: "Stop trading national elections. Find your edge in illiquid niches like weather, state-level politics, or tech dev cycles.",
		Concepts:    []string{"Local Information Asymmetry", "Niche Selection", "The 7-Day Specialty Challenge"},
		Links: []models.Link{
			{Label: "Meteorology Models", URL: "https://tropicaltidbits.com"},
			{Label: "NWS Technical Forecasts", URL: "https://weather.gov"},
		},
		Duration: "20 min",
		File:     "module-02-inch-wide-mile-deep.md",
	},
	{
		ID:          3,
		Title:       "The Quant Toolkit",
		Description: "Professional-grade data sources. Stop reading headlines; start reading primary data and technical discussion.",
		Concepts:    []string{"Technical Forecast Discussions", "GitHub Commit Tracking", "270toWin Scenarios"},
		Links: []models.Link{
			{Label: "RealClearPolitics Hub", URL: "https://realclearpolitics.com"},
			{Label: "PACER Legal Filing Tracking", URL: "https://pacer.uscourts.gov"},
		},
		Duration: "18 min",
		File:     "module-03-the-toolkit.md",
	},
	{
		ID:          4,
		Title:       "Execution & Risk Management",
		Description: "The math of survival. Position sizing using Quarter-Kelly and spotting cross-platform arbitrage.",
		Concepts:    []string{"The Kelly Criterion", "Arbitrage Execution", "Emotional Drawdown Guards"},
		Links: []models.Link{
			{Label: "Risk Manager Tool", URL: "/"},
		},
		Duration: "25 min",
		File:     "module-04-execution-and-risk.md",
	},
}

// Modules returns a deep copy of the catalog in id order.
func Modules() []models.Module {
	out := make([]models.Module, len(catalog))
	for i, m := range catalog {
		out[i] = clone(m)
	}
	return out
}

// Lookup finds a module by id.
func Lookup(id int) (models.Module, bool) {
	if id < 1 || id > len(catalog) {
		return models.Module{}, false
	}
	return clone(catalog[id-1]), true
}

func clone(m models.Module) models.Module {
	m.Concepts = slices.Clone(m.Concepts)
	m.Links = slices.Clone(m.Links)
	return m
}

// Count is the number of modules in the course.
func Count() int { return len(catalog) }

// Neighbours returns the previous and next module ids, 0 when there is none.
func Neighbours(id int) (prev, next int) {
	if id > 1 {
		prev = id - 1
	}
	if id < len(catalog) {
		next = id + 1
	}
	return prev, next
}
