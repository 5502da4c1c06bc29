package extract

import (
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitchside/sponsorscout/domainutil"
	"github.com/pitchside/sponsorscout/normalize"
)

var (
	fileExtRe   = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|svg|webp|avif)$`)
	fileDimRe   = regexp.MustCompile(`(?i)-\d{2,4}x\d{2,4}$`)
	separatorRe = regexp.MustCompile(`[-_+.]+`)
)

// nameFromImage resolves a company name for an <img>, in priority order:
// alt text, title attribute, the enclosing anchor's external domain, and
// finally the image filename. Filename-derived names are the lowest-trust
// source and must clear a stricter bar (2+ words or a business suffix).
// Returns "" when no source yields an acceptable name.
func nameFromImage(p *Page, img *goquery.Selection) string {
	for _, attr := range []string{"alt", "title"} {
		if name := normalize.Clean(img.AttrOr(attr, "")); normalize.IsValidName(name) {
			return name
		}
	}

	if href := externalHref(p, img); href != "" {
		if name := normalize.Clean(domainutil.CompanyFromURL(href)); normalize.IsValidName(name) {
			return name
		}
	}

	if name := nameFromFilename(img.AttrOr("src", "")); name != "" {
		return name
	}
	return ""
}

// nameFromFilename derives a candidate from the image file name: extension
// and trailing -WxH stripped, separators converted to spaces. Accepted only
// when it yields two or more words or carries a recognized business suffix.
func nameFromFilename(src string) string {
	base := path.Base(strings.TrimSpace(src))
	if base == "" || base == "." || base == "/" {
		return ""
	}
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = fileExtRe.ReplaceAllString(base, "")
	base = fileDimRe.ReplaceAllString(base, "")
	base = separatorRe.ReplaceAllString(base, " ")

	name := normalize.Clean(base)
	if !normalize.IsValidName(name) {
		return ""
	}
	if len(strings.Fields(name)) < 2 && !normalize.HasBusinessSuffix(name) {
		return ""
	}
	return name
}
