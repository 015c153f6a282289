package data

// nonNameWords blocks token sequences that match the shape of a personal name
// but denote titles, institutions, places, or legislative vocabulary.
// Built up from observed extraction noise in live feeds.
var nonNameWords = map[string]struct{}{
	"president": {}, "ceo": {}, "chairman": {}, "chief": {}, "executive": {},
	"officer": {}, "company": {}, "corporation": {}, "inc": {}, "llc": {},
	"ltd": {}, "business": {}, "administration": {}, "department": {},
	"agency": {}, "house": {}, "senate": {}, "heritage": {}, "foundation": {},
	"project": {}, "act": {}, "services": {}, "education": {},
	"disabilities": {}, "human": {}, "armed": {}, "vocational": {},
	"aptitude": {}, "battery": {}, "head": {}, "start": {},
	"reproductive": {}, "freedom": {}, "health": {}, "resources": {},
	"secretary": {}, "robert": {}, "alive": {}, "abortion": {},
	"survivors": {}, "medicaid": {}, "homeland": {}, "security": {},
	"border": {}, "protection": {}, "customs": {}, "enforcement": {},
	"national": {}, "weather": {}, "service": {}, "fair": {}, "labor": {},
	"standards": {}, "supreme": {}, "court": {}, "civil": {}, "war": {},
	"white": {}, "donald": {}, "trump": {},
	"made": {}, "sub": {}, "nanometer": {}, "chip": {}, "western": {},
	"hemisphere": {}, "insanity": {}, "rules": {}, "united": {},
	"states": {}, "north": {}, "south": {}, "east": {}, "west": {},
	"new": {}, "york": {},
}

// IsNonNameWord reports whether a single token is on the non-name blocklist.
// Matching is case-insensitive.
func IsNonNameWord(token string) bool {
	_, ok := nonNameWords[Normalize(token)]
	return ok
}
