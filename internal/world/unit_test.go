package world

import (
	"math"
	"testing"

	"github.com/udisondev/spellcore/internal/data"
)

func TestUnit_HealthAndDeath(t *testing.T) {
	m := NewMap(MapOptions{})
	u := m.SpawnUnit(UnitTemplate{Name: "dummy", MaxHealth: 100, MaxMana: 50}, Pos(0, 0, 0))

	if got := u.ModifyHealth(-30); got != -30 {
		t.Errorf("ModifyHealth(-30) = %d", got)
	}
	if got := u.ModifyHealth(50); got != 30 {
		t.Errorf("overheal ModifyHealth(50) = %d, want 30", got)
	}
	if got := u.ModifyHealth(-500); got != -100 || u.IsAlive() {
		t.Errorf("lethal ModifyHealth = %d alive=%v", got, u.IsAlive())
	}
	if got := u.ModifyHealth(10); got != 0 {
		t.Errorf("healing a dead unit changed health by %d", got)
	}

	u.Resurrect(50)
	if !u.IsAlive() || u.Health() != 50 {
		t.Errorf("after resurrect alive=%v health=%d", u.IsAlive(), u.Health())
	}

	if got := u.ModifyPower(data.PowerMana, -80); got != -50 {
		t.Errorf("ModifyPower drained %d, want -50", got)
	}
}

func TestUnit_StateRefcount(t *testing.T) {
	u := &Unit{}
	u.AddState(StateStunned, true)
	u.AddState(StateStunned, true)
	u.AddState(StateStunned, false)
	if !u.HasState(StateStunned) {
		t.Error("one stun reference left, unit should be stunned")
	}
	u.AddState(StateStunned, false)
	u.AddState(StateStunned, false)
	if u.HasState(StateStunned) {
		t.Error("unit still stunned after all references removed")
	}
}

func TestUnit_StatModifiers(t *testing.T) {
	u := &Unit{}
	u.AddModifiers(1, StatModifier{Stat: StatDamageDone, Type: StatModPct, Value: 10})
	u.AddModifiers(2, StatModifier{Stat: StatDamageDone, Type: StatModPct, Value: 20},
		StatModifier{Stat: StatDamageDone, Type: StatModAdd, Value: 5})

	if got := u.ApplyStat(StatDamageDone, 100); math.Abs(got-136.5) > 1e-9 {
		t.Errorf("ApplyStat = %v, want 136.5", got)
	}

	u.RemoveModifiers(2)
	if got := u.ApplyStat(StatDamageDone, 100); math.Abs(got-110) > 1e-9 {
		t.Errorf("after removal ApplyStat = %v, want 110", got)
	}
}

func TestUnit_SchoolImmunity(t *testing.T) {
	u := &Unit{}
	u.ApplySchoolImmunity(data.SchoolMaskFire|data.SchoolMaskFrost, true)

	if !u.IsImmuneToSchool(data.SchoolMaskFire) {
		t.Error("should be immune to fire")
	}
	if u.IsImmuneToSchool(data.SchoolMaskFire | data.SchoolMaskShadow) {
		t.Error("mixed school with a vulnerable part should not be immune")
	}
}

func TestPosition_Arcs(t *testing.T) {
	caster := Position{X: 0, Y: 0, O: 0}

	if !caster.HasInArc(math.Pi/2, Pos(10, 2, 0)) {
		t.Error("point slightly left of facing should be in a 90° arc")
	}
	if caster.HasInArc(math.Pi/2, Pos(-10, 0, 0)) {
		t.Error("point behind should not be in a 90° arc")
	}
	if !caster.IsInLine(Pos(20, 1, 0), 2) {
		t.Error("point near the line should be inside")
	}
	if caster.IsInLine(Pos(20, 5, 0), 2) {
		t.Error("point far from the line should be outside")
	}

	p := caster.Relative(10, math.Pi)
	if math.Abs(float64(p.X+10)) > 1e-4 || math.Abs(float64(p.Y)) > 1e-4 {
		t.Errorf("Relative(10, π) = (%v, %v), want (-10, 0)", p.X, p.Y)
	}
}
