package config

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
)

// StaticGate resolves feature keys from configuration. Unknown keys are
// enabled.
type StaticGate struct {
	features FeaturesConfig
}

var _ featuregate.FeatureGate = StaticGate{}

// Enabled implements featuregate.FeatureGate.
func (g StaticGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	switch key {
	case featuregate.FeatureUsersSignup:
		return g.features.Signup, nil
	default:
		return true, nil
	}
}
