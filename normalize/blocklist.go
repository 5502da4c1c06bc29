package normalize

import "regexp"

// Rule is one entry of the non-company blocklist. Rules are matched in
// order against the lower-cased candidate; the first hit rejects it.
// Keeping rules as named data instead of inline branching makes each one
// independently testable and extensible.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// blocklist rejects text that is demonstrably not a company name: UI
// chrome, bare tier labels, social platforms, legal boilerplate and
// sport/club jargon. This is the first-line filter applied to every
// candidate regardless of which extraction strategy produced it.
var blocklist = []Rule{
	{"ui-navigation", regexp.MustCompile(`^(home|about( us)?|news|events|gallery|shop|menu|search|teams?|fixtures?|results?|draws?|ladder|contact( us)?)$`)},
	{"ui-action", regexp.MustCompile(`^(read more|learn more|find out more|(view|see|meet) (more|all|our)( \w+){0,2}|click here|more info(rmation)?|get in touch|enquire now|book now|buy now|donate( now)?|join( now| us)?|apply( now)?)$`)},
	{"ui-account", regexp.MustCompile(`^(log ?in|log ?out|sign ?(in|up|out)|register( now)?|subscribe|my account|cart|checkout)$`)},
	{"ui-chrome", regexp.MustCompile(`^(skip to( main)? content|back to top|share( this)?|follow us( on)?|open menu|close|next|previous|prev|toggle navigation|download|print)$`)},
	{"bare-tier", regexp.MustCompile(`^(major|principal|premier|platinum|gold|silver|bronze|diamond|community|club|official|naming rights?)( (sponsors?|partners?|supporters?))?$`)},
	{"sponsor-label", regexp.MustCompile(`^(our )?(proud(ly)? )?(sponsors?|partners?|supporters?)( of| include)?$`)},
	{"social-platform", regexp.MustCompile(`^(facebook|instagram|twitter|x|youtube|linkedin|tiktok|snapchat|whatsapp|messenger)$`)},
	{"legal", regexp.MustCompile(`(copyright|all rights reserved|privacy policy|terms (of use|and conditions|& conditions)|cookie (policy|settings)|abn\s*:?\s*\d|©)`)},
	{"club-jargon", regexp.MustCompile(`^(fixtures? (and|&) results?|ladders?|seniors?|juniors?|reserves|membership|registrations?|merchandise|canteen( roster)?|clubrooms?|committee|coaches|volunteers?|trophies|presentation (day|night)|training|trials?|milestones?|life members?|honou?r board)$`)},
	{"age-group", regexp.MustCompile(`^u\d{1,2}s?( (boys|girls|mixed))?$`)},
	{"season-round", regexp.MustCompile(`^(season|round|grade|division|div)\s*\d*$`)},
	{"placeholder", regexp.MustCompile(`^(image|img|photo|picture|placeholder|untitled|default|screenshot|banner|header|footer|slide|carousel)( \d+)?$`)},
}

// MatchBlocklist returns the name of the first blocklist rule matching
// text (lower-cased, trimmed), and whether any rule matched.
func MatchBlocklist(text string) (string, bool) {
	t := normalizeForMatch(text)
	if t == "" {
		return "", false
	}
	for _, r := range blocklist {
		if r.Pattern.MatchString(t) {
			return r.Name, true
		}
	}
	return "", false
}
