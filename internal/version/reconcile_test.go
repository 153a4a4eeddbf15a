package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		existing  Release
		candidate Release
		outcome   Outcome
		reason    string
	}{
		{
			name:      "higher version accepted",
			existing:  Release{Version: "1.2"},
			candidate: Release{Version: "1.3"},
			outcome:   OutcomeAccept,
			reason:    "higher version",
		},
		{
			name:      "lower version rejected",
			existing:  Release{Version: "1.3"},
			candidate: Release{Version: "1.2"},
			outcome:   OutcomeReject,
			reason:    "lower version",
		},
		{
			name:      "version outranks build",
			existing:  Release{Version: "1.2", Build: "900"},
			candidate: Release{Version: "1.3", Build: "100"},
			outcome:   OutcomeAccept,
			reason:    "higher version",
		},
		{
			name:      "same version lower build rejected",
			existing:  Release{Version: "1.2", Build: "500"},
			candidate: Release{Version: "1.2", Build: "400"},
			outcome:   OutcomeReject,
			reason:    "lower build",
		},
		{
			name:      "same version higher build accepted",
			existing:  Release{Version: "1.2", Build: "500"},
			candidate: Release{Version: "1.2", Build: "600"},
			outcome:   OutcomeAccept,
			reason:    "higher build",
		},
		{
			name:      "builds only",
			existing:  Release{Build: "500"},
			candidate: Release{Build: "600"},
			outcome:   OutcomeAccept,
			reason:    "higher build",
		},
		{
			name:      "identical pair is duplicate",
			existing:  Release{Version: "1.2", Build: "500"},
			candidate: Release{Version: "1.2", Build: "500"},
			outcome:   OutcomeDuplicate,
			reason:    "same version and build",
		},
		{
			name:      "same version no builds",
			existing:  Release{Version: "1.2"},
			candidate: Release{Version: "1.2"},
			outcome:   OutcomeDuplicate,
			reason:    "same version",
		},
		{
			name:      "malformed candidate build rejected",
			existing:  Release{Build: "500"},
			candidate: Release{Build: "???"},
			outcome:   OutcomeReject,
			reason:    "build not comparable",
		},
		{
			name:      "nothing comparable fails closed",
			existing:  Release{},
			candidate: Release{},
			outcome:   OutcomeReject,
			reason:    "nothing comparable between releases",
		},
		{
			name:      "one-sided version no builds fails closed",
			existing:  Release{Version: "1.2"},
			candidate: Release{Build: "500"},
			outcome:   OutcomeReject,
			reason:    "nothing comparable between releases",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reconcile(tc.existing, tc.candidate)
			assert.Equal(t, tc.outcome, got.Outcome)
			assert.Equal(t, tc.reason, got.Reason)
		})
	}
}

func TestValidateVersionInput(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateVersionInput("1.0.2").Valid)
	assert.True(t, ValidateVersionInput("v1.2.3").Valid)
	assert.True(t, ValidateVersionInput("1.0-beta").Valid)

	assert.False(t, ValidateVersionInput("").Valid)
	assert.False(t, ValidateVersionInput("not a version").Valid)
	assert.Equal(t, "Version seems too long", ValidateVersionInput("1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0").Error)
}

func TestValidateBuildInput(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateBuildInput("12345").Valid)
	assert.True(t, ValidateBuildInput("b55510").Valid)

	assert.Equal(t, "Build number seems too short", ValidateBuildInput("123").Error)
	assert.Equal(t, "Build number must be digits", ValidateBuildInput("12a45").Error)
	assert.Equal(t, "Build number is empty", ValidateBuildInput("  ").Error)
}
