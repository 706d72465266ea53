package notify

import (
	"fmt"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/telemetry"
)

// Identity is the dedup unit for one surfaced condition: the condition
// category joined with the rounded current reading. Because the reading is
// part of the key, a shifted value re-fires even when the qualitative band is
// unchanged, and an identity that leaves the set for one cycle fires again on
// return. Both behaviors are deliberate and awaiting product review; do not
// "fix" them here.
type Identity string

// MetricIdentity derives the identity of a per-metric condition.
func MetricIdentity(a telemetry.ConditionAssessment) Identity {
	return Identity(fmt.Sprintf("%s:%s:%s", a.MetricName, a.StatusLabel, a.Value.String()))
}

// CompoundIdentity derives the identity of a compound condition. Compound
// rules carry no single reading, so the title alone keys them.
func CompoundIdentity(c telemetry.CompoundCondition) Identity {
	return Identity(fmt.Sprintf("compound:%s", c.Title))
}
