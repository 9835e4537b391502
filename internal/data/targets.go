package data

import "math"

// ObjectType is the kind of object an implicit selector produces.
type ObjectType uint8

const (
	ObjectNone ObjectType = iota
	ObjectSrc
	ObjectDest
	ObjectUnit
	ObjectUnitAndDest
	ObjectGameObject
	ObjectGameObjectItem
	ObjectItem
	ObjectCorpse
	ObjectCorpseEnemy
	ObjectCorpseAlly
)

// ReferenceType is the origin a selector measures from.
type ReferenceType uint8

const (
	RefNone ReferenceType = iota
	RefCaster
	RefTarget
	RefLast
	RefSrc
	RefDest
)

// SelectionCategory decides which geometry a selector searches with.
type SelectionCategory uint8

const (
	SelectNyi SelectionCategory = iota
	SelectDefault
	SelectChannel
	SelectNearby
	SelectCone
	SelectArea
	SelectTraj
	SelectLine
)

// CheckType is the relation filter applied to candidates.
type CheckType uint8

const (
	CheckDefault CheckType = iota
	CheckEntry
	CheckEnemy
	CheckAlly
	CheckParty
	CheckRaid
	CheckRaidClass
	CheckPassenger
)

// Direction offsets a destination from its reference.
type Direction uint8

const (
	DirNone Direction = iota
	DirFront
	DirBack
	DirRight
	DirLeft
	DirFrontRight
	DirBackRight
	DirBackLeft
	DirFrontLeft
	DirRandom
	DirEntry
)

// TargetStaticData is one row of the selector table.
type TargetStaticData struct {
	Object    ObjectType
	Reference ReferenceType
	Selection SelectionCategory
	Check     CheckType
	Direction Direction
}

// Static returns the selector table row.
func (t Targets) Static() TargetStaticData {
	if int(t) >= len(targetStatic) {
		return TargetStaticData{}
	}
	return targetStatic[t]
}

func (t Targets) ObjectType() ObjectType               { return t.Static().Object }
func (t Targets) ReferenceType() ReferenceType         { return t.Static().Reference }
func (t Targets) SelectionCategory() SelectionCategory { return t.Static().Selection }
func (t Targets) CheckType() CheckType                 { return t.Static().Check }
func (t Targets) Direction() Direction                 { return t.Static().Direction }

// IsArea reports whether the selector may yield more than one unit.
func (t Targets) IsArea() bool {
	switch t.SelectionCategory() {
	case SelectArea, SelectCone, SelectLine:
		return true
	}
	return false
}

// IsDest reports whether the selector produces a location rather than an object.
func (t Targets) IsDest() bool {
	o := t.ObjectType()
	return o == ObjectDest || o == ObjectSrc
}

// DirectionAngle returns the angle in radians relative to the reference
// orientation. roll is used for DirRandom and must be in [0,1).
func (t Targets) DirectionAngle(roll float64) float64 {
	switch t.Direction() {
	case DirFront:
		return 0
	case DirBack:
		return math.Pi
	case DirRight:
		return -math.Pi / 2
	case DirLeft:
		return math.Pi / 2
	case DirFrontRight:
		return -math.Pi / 4
	case DirBackRight:
		return -3 * math.Pi / 4
	case DirBackLeft:
		return 3 * math.Pi / 4
	case DirFrontLeft:
		return math.Pi / 4
	case DirRandom:
		return roll * 2 * math.Pi
	}
	return 0
}

func indexNames[T ~uint8 | ~uint16](names []string) map[string]T {
	m := make(map[string]T, len(names))
	for i, n := range names {
		m[n] = T(i)
	}
	return m
}
