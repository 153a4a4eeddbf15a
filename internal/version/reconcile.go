package version

import "strings"

// Release is a previously extracted version/build pair for one game, either
// the tracked state or a freshly scraped candidate.
type Release struct {
	Version string `json:"version,omitempty"`
	Build   string `json:"build,omitempty"`
}

// Outcome of judging a candidate against the tracked state.
type Outcome string

const (
	OutcomeAccept    Outcome = "accept"
	OutcomeReject    Outcome = "reject"
	OutcomeDuplicate Outcome = "duplicate"
)

// Decision is the reconciliation verdict plus a human-readable reason that
// ends up in the check log.
type Decision struct {
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason"`
}

// Reconcile decides whether a newly discovered release should replace the
// tracked one. Version comparison is authoritative when both sides carry a
// version and they differ; builds are only consulted on a version tie or
// when a version is missing. When neither axis yields a signed answer the
// candidate is rejected: the tracked record is never overwritten without
// positive evidence of a newer release.
func Reconcile(existing, candidate Release) Decision {
	haveVersions := hasValue(existing.Version) && hasValue(candidate.Version)

	if haveVersions {
		switch CompareVersions(candidate.Version, existing.Version) {
		case 1:
			return Decision{Outcome: OutcomeAccept, Reason: "higher version"}
		case -1:
			return Decision{Outcome: OutcomeReject, Reason: "lower version"}
		}
		// equal versions fall through to builds
	}

	if hasValue(existing.Build) && hasValue(candidate.Build) {
		cmp, err := CompareBuilds(candidate.Build, existing.Build)
		if err != nil {
			return Decision{Outcome: OutcomeReject, Reason: "build not comparable"}
		}
		switch cmp {
		case 1:
			return Decision{Outcome: OutcomeAccept, Reason: "higher build"}
		case -1:
			return Decision{Outcome: OutcomeReject, Reason: "lower build"}
		default:
			return Decision{Outcome: OutcomeDuplicate, Reason: "same version and build"}
		}
	}

	if haveVersions {
		return Decision{Outcome: OutcomeDuplicate, Reason: "same version"}
	}
	return Decision{Outcome: OutcomeReject, Reason: "nothing comparable between releases"}
}

func hasValue(s string) bool {
	return strings.TrimSpace(s) != ""
}
