package templates

import "fmt"

// UsageHint tells the calling agent what to do with a recommendation
const UsageHint = "Fill out this template from the analyzed changes; drop sections that do not apply."

// Recommendation is the template picked for a described change
type Recommendation struct {
	Template        Entry  `json:"recommended_template"`
	Reasoning       string `json:"reasoning"`
	TemplateContent string `json:"template_content"`
	UsageHint       string `json:"usage_hint"`
}

// Recommend picks the template for changeType. Unknown types resolve to the
// feature template; it never fails.
func (c *Catalog) Recommend(changesSummary, changeType string) Recommendation {
	entry, err := c.Get(ParseKind(changeType))
	if err != nil {
		// Load guarantees every kind, so this only happens on a zero Catalog
		entry = Entry{Kind: DefaultKind(), Filename: DefaultKind().Filename(), Type: DefaultKind().DisplayName()}
	}

	return Recommendation{
		Template:        entry,
		Reasoning:       fmt.Sprintf("Based on your analysis: '%s', this appears to be a %s change.", changesSummary, changeType),
		TemplateContent: entry.Content,
		UsageHint:       UsageHint,
	}
}
