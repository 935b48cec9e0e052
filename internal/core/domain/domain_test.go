package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityProfile_Valid(t *testing.T) {
	tests := []struct {
		name    string
		profile SecurityProfile
		want    bool
	}{
		{"disabled without secret", SecurityProfile{}, true},
		{"enabled with secret", SecurityProfile{TwoFactorEnabled: true, Secret: "JBSWY3DPEHPK3PXP"}, true},
		{"enabled without secret", SecurityProfile{TwoFactorEnabled: true}, false},
		{"disabled with secret", SecurityProfile{Secret: "JBSWY3DPEHPK3PXP"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.Valid())
		})
	}
}
