package competitive

// competitorEntry maps a known competitor to its text aliases. The
// dictionary is ordered; the first alias match in dictionary order wins
// and at most one competitor is counted per timeline event.
type competitorEntry struct {
	name    string
	aliases []string
}

var competitorDictionary = []competitorEntry{
	{"ServiceNow", []string{"servicenow", "service now", "service-now"}},
	{"Salesforce", []string{"salesforce", "sfdc"}},
	{"Zendesk", []string{"zendesk"}},
	{"Freshworks", []string{"freshworks", "freshdesk", "freshservice"}},
	{"Atlassian", []string{"atlassian", "jira service management", "jira sm"}},
	{"Pega", []string{"pegasystems", "pega"}},
	{"BMC", []string{"bmc helix", "bmc remedy", "remedy"}},
}

// genericCompetitiveSignals trigger an "Unknown Competitor" mention when
// no dictionary entry matches but the event clearly discusses alternatives.
var genericCompetitiveSignals = []string{
	"competitor",
	"competitors",
	"alternative",
	"alternatives",
	" vs ",
	"vs.",
	"versus",
	"evaluating",
	"other vendors",
	"shortlist",
	"comparison",
}

// unknownCompetitor is the synthetic name used for generic signals
const unknownCompetitor = "Unknown Competitor"

// Sentiment phrase tables. "Positive" is positive toward the competitor,
// which is a risk to us; "negative" is an opportunity for us.
var competitorPositivePhrases = []string{
	"prefer",
	"already using",
	"currently using",
	"happy with",
	"love",
	"works well",
	"standardized on",
	"renewing",
}

var competitorNegativePhrases = []string{
	"expensive",
	"too costly",
	"frustrated",
	"switch from",
	"switching away",
	"moving off",
	"unhappy",
	"painful",
	"poor support",
	"clunky",
}

// usageIndicatorPhrases flag that the account may already run the competitor
var usageIndicatorPhrases = []string{
	"using",
	"currently on",
	"have",
	"running",
}

// differentiatorGroup maps negative-context keywords to the differentiator
// we should lead with.
type differentiatorGroup struct {
	keywords       []string
	differentiator string
}

var differentiatorGroups = []differentiatorGroup{
	{[]string{"expensive", "too costly", "cost", "pricing", "budget"}, "Total cost of ownership and transparent pricing"},
	{[]string{"complex", "complicated", "clunky", "hard to use", "painful"}, "Ease of use and fast time to value"},
	{[]string{"support", "unresponsive", "ticket backlog"}, "Dedicated support and hands-on customer success"},
	{[]string{"integration", "integrate", "api"}, "Open APIs and integration breadth"},
}
