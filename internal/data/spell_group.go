package data

import (
	"fmt"
	"log/slog"
	"slices"
)

type SpellGroupID uint32

// SpellGroupStackRule decides how auras of one group coexist on a unit.
type SpellGroupStackRule uint8

const (
	StackRuleDefault SpellGroupStackRule = iota
	StackRuleExclusive
	StackRuleExclusiveFromSameCaster
	StackRuleExclusiveSameEffect
	StackRuleExclusiveHighest

	maxStackRule
)

var stackRuleNames = [maxStackRule]string{
	"default",
	"exclusive",
	"exclusive_from_same_caster",
	"exclusive_same_effect",
	"exclusive_highest",
}

func (r SpellGroupStackRule) String() string {
	if r < maxStackRule {
		return stackRuleNames[r]
	}
	return fmt.Sprintf("stack_rule(%d)", int(r))
}

// ParseStackRule resolves the name used in data files.
func ParseStackRule(name string) (SpellGroupStackRule, bool) {
	for i, n := range stackRuleNames {
		if n == name {
			return SpellGroupStackRule(i), true
		}
	}
	return 0, false
}

// SpellGroups holds flattened group membership and stack rules. It is built
// once by the catalog builder and read-only afterwards.
type SpellGroups struct {
	// raw members; a negative value references another group
	members map[SpellGroupID][]int32
	rules   map[SpellGroupID]SpellGroupStackRule

	flat        map[SpellGroupID]map[SpellID]struct{}
	spellGroups map[SpellID][]SpellGroupID
	sameEffect  map[SpellGroupID][]AuraType
}

func newSpellGroups() *SpellGroups {
	return &SpellGroups{
		members:     make(map[SpellGroupID][]int32),
		rules:       make(map[SpellGroupID]SpellGroupStackRule),
		flat:        make(map[SpellGroupID]map[SpellID]struct{}),
		spellGroups: make(map[SpellID][]SpellGroupID),
		sameEffect:  make(map[SpellGroupID][]AuraType),
	}
}

// publish expands every group, indexes spells by group and infers the aura
// type of same-effect groups.
func (g *SpellGroups) publish(spell func(SpellID) *SpellInfo) {
	ids := make([]SpellGroupID, 0, len(g.members))
	for id := range g.members {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		set := make(map[SpellID]struct{})
		g.expand(id, make(map[SpellGroupID]struct{}), set)
		g.flat[id] = set
		for sid := range set {
			g.spellGroups[sid] = append(g.spellGroups[sid], id)
		}
	}
	for sid := range g.spellGroups {
		slices.Sort(g.spellGroups[sid])
	}

	for id, rule := range g.rules {
		if rule != StackRuleExclusiveSameEffect {
			continue
		}
		if types := g.inferSameEffectAura(id, spell); len(types) > 0 {
			g.sameEffect[id] = types
		} else {
			slog.Warn("same-effect spell group has no aura effects", "group", id)
		}
	}
}

// expand collects the spells of group id depth first. A group already on the
// visited set is skipped, so cycles truncate.
func (g *SpellGroups) expand(id SpellGroupID, visited map[SpellGroupID]struct{}, out map[SpellID]struct{}) {
	if _, seen := visited[id]; seen {
		slog.Debug("spell group revisited, truncating", "group", id)
		return
	}
	visited[id] = struct{}{}
	for _, m := range g.members[id] {
		if m < 0 {
			g.expand(SpellGroupID(-m), visited, out)
			continue
		}
		out[SpellID(m)] = struct{}{}
	}
}

// inferSameEffectAura picks the aura type most member spells apply. Haste
// variants count as one bucket; ties go to the lower aura type.
func (g *SpellGroups) inferSameEffectAura(id SpellGroupID, spell func(SpellID) *SpellInfo) []AuraType {
	freq := make(map[AuraType]int)
	for sid := range g.flat[id] {
		info := spell(sid)
		if info == nil {
			continue
		}
		for i := range info.Effects {
			e := &info.Effects[i]
			if !e.IsAura() || e.ApplyAuraName == AuraNone {
				continue
			}
			a := e.ApplyAuraName
			if a.IsHaste() {
				a = AuraModMeleeHaste
			}
			freq[a]++
		}
	}

	best, bestCount := AuraNone, 0
	for a, n := range freq {
		if n > bestCount || (n == bestCount && a < best) {
			best, bestCount = a, n
		}
	}
	if bestCount == 0 {
		return nil
	}
	if best != AuraModMeleeHaste {
		return []AuraType{best}
	}
	var haste []AuraType
	for a := AuraType(0); a < TotalAuraTypes; a++ {
		if a.IsHaste() {
			haste = append(haste, a)
		}
	}
	return haste
}

// Members returns the flattened spell set of a group in ascending order.
func (g *SpellGroups) Members(id SpellGroupID) []SpellID {
	out := make([]SpellID, 0, len(g.flat[id]))
	for sid := range g.flat[id] {
		out = append(out, sid)
	}
	slices.Sort(out)
	return out
}

// GroupsOf returns the groups containing the spell, ascending.
func (g *SpellGroups) GroupsOf(spell SpellID) []SpellGroupID {
	return g.spellGroups[spell]
}

func (g *SpellGroups) IsSpellInGroup(spell SpellID, group SpellGroupID) bool {
	_, ok := g.flat[group][spell]
	return ok
}

func (g *SpellGroups) Rule(group SpellGroupID) SpellGroupStackRule {
	return g.rules[group]
}

// SameEffectAuraTypes returns the inferred aura types of a same-effect group.
func (g *SpellGroups) SameEffectAuraTypes(group SpellGroupID) []AuraType {
	return g.sameEffect[group]
}

// CheckStackRules returns the rule that governs a and b on one target and
// the group it came from. Groups where a nested subgroup holds both spells are
// skipped, the subgroup speaks for them.
func (g *SpellGroups) CheckStackRules(a, b SpellID) (SpellGroupStackRule, SpellGroupID) {
	if a == b {
		return StackRuleDefault, 0
	}
	for _, group := range g.spellGroups[a] {
		if !g.IsSpellInGroup(b, group) {
			continue
		}
		if g.nestedHoldsBoth(group, a, b) {
			continue
		}
		if rule := g.rules[group]; rule != StackRuleDefault {
			return rule, group
		}
	}
	return StackRuleDefault, 0
}

func (g *SpellGroups) nestedHoldsBoth(group SpellGroupID, a, b SpellID) bool {
	for _, m := range g.members[group] {
		if m >= 0 {
			continue
		}
		sub := SpellGroupID(-m)
		if g.IsSpellInGroup(a, sub) && g.IsSpellInGroup(b, sub) {
			return true
		}
	}
	return false
}
