package world

// Faction is a unit's allegiance id.
type Faction uint16

// FactionNeutral is neither friend nor foe to anybody.
const FactionNeutral Faction = 0

// Reaction is how one faction regards another.
type Reaction uint8

const (
	ReactionHostile Reaction = iota
	ReactionNeutral
	ReactionFriendly
)

type factionPair struct{ a, b Faction }

// FactionTable resolves reactions. Equal factions are friendly, anything
// involving FactionNeutral is neutral, different factions are hostile
// unless overridden.
type FactionTable struct {
	overrides map[factionPair]Reaction
}

func NewFactionTable() *FactionTable {
	return &FactionTable{overrides: make(map[factionPair]Reaction)}
}

// Set records a symmetric reaction between two factions.
func (t *FactionTable) Set(a, b Faction, r Reaction) {
	t.overrides[factionPair{a, b}] = r
	t.overrides[factionPair{b, a}] = r
}

func (t *FactionTable) Reaction(a, b Faction) Reaction {
	if r, ok := t.overrides[factionPair{a, b}]; ok {
		return r
	}
	switch {
	case a == b:
		return ReactionFriendly
	case a == FactionNeutral || b == FactionNeutral:
		return ReactionNeutral
	default:
		return ReactionHostile
	}
}
