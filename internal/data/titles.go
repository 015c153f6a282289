package data

// executiveTitles is the title vocabulary accepted by the extraction rules,
// in the alternation order used when building the rule regexes. Longer
// multi-word titles come before their prefixes so the regex engine prefers
// the full form.
var executiveTitles = []string{
	"Chief Executive Officer",
	"Chief Operating Officer",
	"Chief Financial Officer",
	"Chief Executive",
	"Executive Chairman",
	"Managing Director",
	"Co-Founder",
	"Founder",
	"Chairman",
	"President",
	"CEO",
	"CFO",
	"COO",
}

// ExecutiveTitles returns the accepted title vocabulary in alternation order.
func ExecutiveTitles() []string {
	out := make([]string, len(executiveTitles))
	copy(out, executiveTitles)
	return out
}

// BusinessContextWords are the vocabulary that marks text as business-related.
// Shared by the relevance filter and the unknown-name extraction rule's
// context window check.
func BusinessContextWords() []string {
	out := make([]string, len(businessContextWords))
	copy(out, businessContextWords)
	return out
}

var businessContextWords = []string{
	"ceo", "chief executive", "chairman", "chief", "business leader",
	"executive", "company", "founder", "entrepreneur", "businessman",
	"businesswoman", "tech", "corporation", "industry", "corporate",
	"investor", "billionaire", "magnate",
}
