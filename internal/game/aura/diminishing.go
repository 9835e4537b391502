package aura

import (
	"time"

	"github.com/udisondev/spellcore/internal/config"
	"github.com/udisondev/spellcore/internal/data"
)

type drState struct {
	level      int
	active     int           // auras of the group currently on the unit
	lastChange time.Duration // when the last aura of the group was applied or removed
}

// DiminishingTracker keeps per-group diminishing levels for one unit. A
// level returns to zero once no aura of the group has been active for the
// configured window.
type DiminishingTracker struct {
	groups map[data.DiminishingGroup]*drState
}

func NewDiminishingTracker() *DiminishingTracker {
	return &DiminishingTracker{groups: make(map[data.DiminishingGroup]*drState)}
}

// Level returns the current level of group at now.
func (t *DiminishingTracker) Level(group data.DiminishingGroup, now time.Duration, window time.Duration) int {
	st := t.groups[group]
	if st == nil {
		return 0
	}
	if st.active == 0 && now-st.lastChange >= window {
		st.level = 0
	}
	return st.level
}

// Tracks reports whether info diminishes on a target of the given kind.
func (t *DiminishingTracker) Tracks(info data.DiminishingInfo, targetIsPlayer bool) bool {
	switch {
	case info.Group == data.DRGroupNone, info.Type == data.DRTypeNone:
		return false
	case info.Type == data.DRTypePlayer:
		return targetIsPlayer
	}
	return true
}

// Diminish computes the effective duration of an aura tagged with info and
// advances the group's level. It reports immune when the level is past the
// end of the curve; the level is then left unchanged.
func (t *DiminishingTracker) Diminish(info data.DiminishingInfo, targetIsPlayer bool, base, now time.Duration, cfg config.DiminishingConfig) (time.Duration, bool) {
	if info.Group == data.DRGroupNone {
		return base, false
	}
	if targetIsPlayer && info.DurationLimit > 0 && base > info.DurationLimit {
		base = info.DurationLimit
	}
	if !t.Tracks(info, targetIsPlayer) {
		return base, false
	}

	curve := cfg.Curves[info.CurveName()]
	if curve == nil {
		curve = cfg.Curves[data.DefaultDRCurve]
	}

	level := t.Level(info.Group, now, cfg.Window)
	if level >= len(curve) {
		return 0, true
	}
	st := t.groups[info.Group]
	if st == nil {
		st = &drState{}
		t.groups[info.Group] = st
	}
	st.level = level + 1
	st.lastChange = now

	if base <= 0 {
		return base, false
	}
	return time.Duration(float64(base) * curve[level]), false
}

func (t *DiminishingTracker) auraApplied(group data.DiminishingGroup) {
	st := t.groups[group]
	if st == nil {
		st = &drState{}
		t.groups[group] = st
	}
	st.active++
}

func (t *DiminishingTracker) auraRemoved(group data.DiminishingGroup, now time.Duration) {
	st := t.groups[group]
	if st == nil {
		return
	}
	if st.active > 0 {
		st.active--
	}
	st.lastChange = now
}
