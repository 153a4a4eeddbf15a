package version

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// VersionDetection is the outcome of scanning a raw title for a version
// token. When HasPreferredVersion is set, Version holds an explicit numeric
// value even though a date-form version was also present in the title:
// explicit versions always outrank date-encoded ones.
type VersionDetection struct {
	Found               bool      `json:"found"`
	Version             string    `json:"version,omitempty"`
	IsDateVersion       bool      `json:"is_date_version,omitempty"`
	IsStaleDateVersion  bool      `json:"is_stale_date_version,omitempty"`
	DateValue           time.Time `json:"date_value,omitempty"`
	HasPreferredVersion bool      `json:"has_preferred_version,omitempty"`
}

// BuildDetection is the outcome of scanning a raw title for a build number.
type BuildDetection struct {
	Found             bool   `json:"found"`
	Build             string `json:"build,omitempty"`
	IsDateBasedBuild  bool   `json:"is_date_based_build,omitempty"`
	HasPreferredBuild bool   `json:"has_preferred_build,omitempty"`
}

// TitleAnalysis composes both detections plus an advisory hint for the UI.
type TitleAnalysis struct {
	Version    VersionDetection `json:"version"`
	Build      BuildDetection   `json:"build"`
	Suggestion string           `json:"suggestion"`
}

// staleAfter is how old a date-encoded version may be before it is flagged
// stale. Indie sites frequently re-post old date-versioned releases.
const staleAfter = 7 * 24 * time.Hour

// The regular-version cascade. Order is the precedence: most specific first,
// first match wins. Do not rely on the regex engine to prefer the longer
// match across patterns.
var versionPatterns = []*regexp.Regexp{
	// v1.2.3b, v1.0-beta2, v2.4.1-hotfix. The trailing letter or suffix tag
	// is what makes this the most specific pattern, so it is required here.
	regexp.MustCompile(`(?i)\bv(\d+(?:\.\d+)*(?:[a-z]|[-_.]?(?:alpha|beta|rc|final|release|hotfix|patch)\d*))\b`),
	// v1.2.3.4 with the first segment capped at two digits, so an eight
	// digit date run can never land here
	regexp.MustCompile(`(?i)\bv(\d{1,2}(?:\.\d+)+)\b`),
	// bare v7, v103. The trailing guard keeps this from biting the front of
	// a dash or dot separated date like v25-01-02.
	regexp.MustCompile(`(?i)\bv(\d{1,3})(?:[^0-9.\-]|$)`),
	// version 1.2 / ver 3 / update 1.5 / patch 2 / hotfix 3 / rev 4 / r 12
	regexp.MustCompile(`(?i)\b(?:version|ver|update|patch|hotfix|rev|r)[ .:]?(\d{1,3}(?:\.\d+)*)\b`),
	// bracketed or delimited [v1.2.3], -v1.2.3-, _v1.2.3_
	regexp.MustCompile(`(?i)[\[(\-_]v(\d+(?:\.\d+)*)[\])\-_]`),
	// bare dotted number riding next to a release qualifier
	regexp.MustCompile(`(?i)\b(?:repack|proper|goty|complete)\b[^0-9]{0,12}(\d{1,2}(?:\.\d+)+)\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d+)+)\b[^0-9]{0,12}\b(?:repack|proper|goty|complete)\b`),
	// last resort: bare dotted number; segment caps keep dates out
	regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d{1,3})+)\b`),
}

// Date-version shapes, each validated by actually building a date.
var dateVersionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bv(20\d{2})[-.](\d{1,2})[-.](\d{1,2})\b`), // v2025-09-29
	regexp.MustCompile(`(?i)\bv(20\d{2})(\d{2})(\d{2})\b`),            // v20250929
	regexp.MustCompile(`(?i)\bv(\d{2})[-.](\d{1,2})[-.](\d{1,2})\b`),  // v25-09-29
	regexp.MustCompile(`(?i)\bv(\d{2})(\d{2})(\d{2})\b`),              // v250929
}

var explicitBuildPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:steam build|build no|build|depot|rev|release)[ .:#]*(\d{4,})\b`),
	regexp.MustCompile(`(?i)\bb(\d{4,})\b`),
	regexp.MustCompile(`#(\d{4,})\b`),
	regexp.MustCompile(`\((\d{6,})\)`),
	regexp.MustCompile(`(?i)\[(?:b|build)[ .]?(\d{4,})\]`),
	regexp.MustCompile(`(?i)[-_]b(\d{4,})[-_]`),
}

var ambiguousBuildPattern = regexp.MustCompile(`\b(\d{6,})\b`)

// Detector runs the detection passes. The clock is injectable so staleness
// checks are reproducible in tests.
type Detector struct {
	now func() time.Time
}

func NewDetector() *Detector {
	return &Detector{now: time.Now}
}

// NewDetectorAt pins the detector's idea of "now".
func NewDetectorAt(now func() time.Time) *Detector {
	if now == nil {
		now = time.Now
	}
	return &Detector{now: now}
}

// DetectVersion scans a raw, unnormalized title for a version token. Two
// independent passes run (regular cascade, then date shapes) and the results
// are reconciled: an explicit numeric version wins over a date-encoded one,
// but the date information is retained for display and staleness.
func (d *Detector) DetectVersion(title string) VersionDetection {
	regular, regularOK := matchFirst(versionPatterns, title)
	dateVal, dateRaw, dateOK := d.matchDateVersion(title)

	switch {
	case regularOK && dateOK:
		return VersionDetection{
			Found:               true,
			Version:             regular,
			HasPreferredVersion: true,
			DateValue:           dateVal,
			IsStaleDateVersion:  d.isStale(dateVal),
		}
	case regularOK:
		return VersionDetection{Found: true, Version: regular}
	case dateOK:
		return VersionDetection{
			Found:              true,
			Version:            dateRaw,
			IsDateVersion:      true,
			DateValue:          dateVal,
			IsStaleDateVersion: d.isStale(dateVal),
		}
	default:
		return VersionDetection{}
	}
}

// DetectBuild scans a raw title for a build number. Explicitly marked builds
// win over bare digit runs; bare runs that decode as calendar dates are
// suppressed whenever the title separately carries a date-version pattern,
// so one date is never double-counted as both version and build.
func (d *Detector) DetectBuild(title string) BuildDetection {
	explicit, explicitOK := d.matchExplicitBuild(title)
	ambiguous, ambiguousOK := d.matchAmbiguousBuild(title)

	switch {
	case explicitOK && ambiguousOK:
		return BuildDetection{Found: true, Build: explicit, HasPreferredBuild: true}
	case explicitOK:
		return BuildDetection{Found: true, Build: explicit}
	case ambiguousOK:
		return BuildDetection{
			Found:            true,
			Build:            ambiguous,
			IsDateBasedBuild: looksLikeDate(ambiguous),
		}
	default:
		return BuildDetection{}
	}
}

// Analyze runs both detections and composes the advisory suggestion shown
// when a user adds a tracked game.
func (d *Detector) Analyze(title string) TitleAnalysis {
	v := d.DetectVersion(title)
	b := d.DetectBuild(title)

	var suggestion string
	switch {
	case v.Found && b.Found:
		suggestion = fmt.Sprintf("Detected version %s and build %s.", v.Version, b.Build)
	case v.Found:
		suggestion = fmt.Sprintf("Detected version %s. Add a build number if the release lists one.", v.Version)
	case b.Found:
		suggestion = fmt.Sprintf("Detected build %s. Add a version number if the release lists one.", b.Build)
	default:
		suggestion = "No version or build detected. Enter them manually if the release page shows them."
	}

	return TitleAnalysis{Version: v, Build: b, Suggestion: suggestion}
}

func matchFirst(patterns []*regexp.Regexp, title string) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(title); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}

func (d *Detector) matchDateVersion(title string) (time.Time, string, bool) {
	for _, re := range dateVersionPatterns {
		m := re.FindStringSubmatch(title)
		if len(m) < 4 {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		val, ok := buildDate(year, month, day)
		if !ok {
			continue
		}
		return val, m[1] + pad2(m[2]) + pad2(m[3]), true
	}
	return time.Time{}, "", false
}

func (d *Detector) isStale(date time.Time) bool {
	return d.now().Sub(date) > staleAfter
}

func (d *Detector) matchExplicitBuild(title string) (string, bool) {
	for _, re := range explicitBuildPatterns {
		m := re.FindStringSubmatch(title)
		if len(m) < 2 {
			continue
		}
		digits := m[1]
		// A bare 4-digit number in plausible-year range is a year, not a
		// build, even when it matched syntactically.
		if len(digits) == 4 {
			if n, err := strconv.Atoi(digits); err == nil && n >= 1990 && n <= 2030 {
				continue
			}
		}
		return digits, true
	}
	return "", false
}

func (d *Detector) matchAmbiguousBuild(title string) (string, bool) {
	m := ambiguousBuildPattern.FindStringSubmatch(title)
	if len(m) < 2 {
		return "", false
	}
	digits := m[1]

	// If the title carries a recognizable date-version anywhere, apply the
	// stricter rejection so a calendar date is not reported as a build.
	if hasDatePattern(title) {
		if len(digits) == 8 && validYYYYMMDD(digits) {
			return "", false
		}
		if len(digits) == 6 && validMonthDay(digits[2:4], digits[4:6]) {
			return "", false
		}
	}
	return digits, true
}

func hasDatePattern(title string) bool {
	for _, re := range dateVersionPatterns {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

func validYYYYMMDD(digits string) bool {
	year, _ := strconv.Atoi(digits[:4])
	month, _ := strconv.Atoi(digits[4:6])
	day, _ := strconv.Atoi(digits[6:8])
	return year >= 2000 && year <= 2030 && month >= 1 && month <= 12 && day >= 1 && day <= 31
}

func validMonthDay(mm, dd string) bool {
	month, _ := strconv.Atoi(mm)
	day, _ := strconv.Atoi(dd)
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

func looksLikeDate(digits string) bool {
	switch len(digits) {
	case 8:
		return validYYYYMMDD(digits)
	case 6:
		return validMonthDay(digits[2:4], digits[4:6])
	default:
		return false
	}
}

// buildDate constructs the date and verifies it round-trips, which rejects
// impossible days like February 30 that time.Date would silently normalize.
func buildDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	val := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if val.Year() != year || int(val.Month()) != month || val.Day() != day {
		return time.Time{}, false
	}
	return val, true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

var defaultDetector = NewDetector()

// DetectVersion runs the default detector against a title.
func DetectVersion(title string) VersionDetection { return defaultDetector.DetectVersion(title) }

// DetectBuild runs the default detector against a title.
func DetectBuild(title string) BuildDetection { return defaultDetector.DetectBuild(title) }

// Analyze runs the default detector against a title.
func Analyze(title string) TitleAnalysis { return defaultDetector.Analyze(title) }
