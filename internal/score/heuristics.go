package score

import (
	"regexp"
	"strings"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// Source credibility modifiers, in priority order of the branches below.
const (
	SourceMisinfo       = -25 // known misinformation patterns
	SourceInstitutional = 20  // reputable institutional source
	SourceJournalism    = 12  // recognised journalism outlet
	SourceUnknown       = -10 // URL supplied but matched nothing
	SourceNoURL         = -5  // no URL supplied at all
)

// sourceScanBytes is how much leading content the heuristic scans alongside
// the URL for domain mentions.
const sourceScanBytes = 2000

var institutionalDomains = []string{
	"who.int", "cdc.gov", "nih.gov", "un.org", "europa.eu",
	"worldbank.org", "imf.org", "nasa.gov", "nature.com", "science.org",
	"thelancet.com", "nejm.org", "gov.uk", "whitehouse.gov",
}

var journalismDomains = []string{
	"reuters.com", "apnews.com", "bbc.com", "bbc.co.uk", "nytimes.com",
	"washingtonpost.com", "theguardian.com", "aljazeera.com",
	"france24.com", "npr.org", "pbs.org", "economist.com",
}

var misinfoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)naturalnews`),
	regexp.MustCompile(`(?i)infowars`),
	regexp.MustCompile(`(?i)beforeitsnews`),
	regexp.MustCompile(`(?i)thegatewaypundit`),
	regexp.MustCompile(`(?i)dailystormer`),
}

// AssessSourceCredibility returns the source credibility modifier. Exactly
// one branch fires; misinformation patterns take priority, then institutional
// domains, then journalism domains. Matching is a case-insensitive substring
// scan over the URL concatenated with the leading content.
func AssessSourceCredibility(url, content string) int {
	scan := content
	if len(scan) > sourceScanBytes {
		scan = scan[:sourceScanBytes]
	}
	text := strings.ToLower(url + " " + scan)

	for _, pat := range misinfoPatterns {
		if pat.MatchString(text) {
			return SourceMisinfo
		}
	}

	for _, domain := range institutionalDomains {
		if strings.Contains(text, domain) {
			return SourceInstitutional
		}
	}

	for _, domain := range journalismDomains {
		if strings.Contains(text, domain) {
			return SourceJournalism
		}
	}

	if url != "" {
		return SourceUnknown
	}
	return SourceNoURL
}

// AssessEvidenceQuality returns a global evidence modifier from the
// verifier's judgments: -12 for no claims or all-unverified, otherwise a
// band keyed on mean confidence.
func AssessEvidenceQuality(claims []model.ClaimAnalysis) int {
	if len(claims) == 0 {
		return -12
	}

	unverified := 0
	sum := 0.0
	for _, c := range claims {
		sum += c.Confidence
		if c.Verdict == model.VerdictUnverified {
			unverified++
		}
	}
	if unverified == len(claims) {
		return -12
	}

	avg := sum / float64(len(claims))
	switch {
	case avg >= 0.8:
		return 15
	case avg >= 0.6:
		return 5
	case avg >= 0.4:
		return 0
	default:
		return -8
	}
}
