package await

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledReason(t *testing.T) {
	tests := []struct {
		name     string
		primary  string
		legacy   string
		reason   string
		disabled bool
	}{
		{name: "neither set"},
		{name: "primary set", primary: "by operator", reason: "by operator", disabled: true},
		{name: "legacy set", legacy: "old deploy", reason: "old deploy", disabled: true},
		{name: "primary wins over legacy", primary: "new", legacy: "old", reason: "new", disabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DisabledEnv, tt.primary)
			t.Setenv(LegacyDisabledEnv, tt.legacy)

			reason, disabled := DisabledReason()
			assert.Equal(t, tt.disabled, disabled)
			assert.Equal(t, tt.reason, reason)
		})
	}
}
