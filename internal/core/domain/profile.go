package domain

// SecurityProfile holds a user's second-factor settings.
//
// Invariant: Secret is non-empty iff TwoFactorEnabled is true. The two
// fields always change together — enable stores the confirmed secret,
// disable clears both. A cleared secret is gone for good; re-enabling
// mints a brand-new one.
type SecurityProfile struct {
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
	Secret           string `json:"secret,omitempty"` // Base32, no padding
}

// Valid reports whether the profile satisfies the secret/flag invariant.
func (p SecurityProfile) Valid() bool {
	return p.TwoFactorEnabled == (p.Secret != "")
}

// EnrollmentChallenge is the ephemeral credential handed out between
// "begin enrollment" and "confirm enrollment". It is never persisted;
// confirming promotes Secret into the SecurityProfile.
type EnrollmentChallenge struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
}
