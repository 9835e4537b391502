// Package ai drives simulated units: each unit gets a controller that picks
// a hostile target and keeps casting its spell list at it.
package ai

import (
	"time"

	"github.com/udisondev/spellcore/internal/world"
)

type Intention uint8

const (
	IntentionIdle Intention = iota
	IntentionAttack
	IntentionDead
)

func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionAttack:
		return "ATTACK"
	case IntentionDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Controller is the brain of one unit. Tick runs on the map goroutine.
type Controller interface {
	Unit() *world.Unit
	Intention() Intention
	Tick(now time.Duration)
}
