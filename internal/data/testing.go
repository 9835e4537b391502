package data

// TestSpell builds a minimal spell definition for tests in other packages.
func TestSpell(id SpellID, name string, effects ...SpellEffectInfo) SpellInfo {
	return SpellInfo{
		ID:         id,
		Name:       name,
		SchoolMask: SchoolMaskFire,
		DmgClass:   DmgClassMagic,
		MaxRange:   40,
		Effects:    effects,
	}
}

// TestDamageEffect is a single-target school damage effect.
func TestDamageEffect(points int32) SpellEffectInfo {
	return SpellEffectInfo{
		Effect:     EffectSchoolDamage,
		BasePoints: points,
		TargetA:    TargetUnitTargetEnemy,
	}
}

// TestAuraEffect applies an aura to the explicit target.
func TestAuraEffect(aura AuraType, points int32, target Targets) SpellEffectInfo {
	return SpellEffectInfo{
		Effect:        EffectApplyAura,
		ApplyAuraName: aura,
		BasePoints:    points,
		TargetA:       target,
	}
}

// MustPublish publishes the builder and panics on error.
// Intended for test setup only.
func MustPublish(b *Builder) *Catalog {
	c, err := b.Publish()
	if err != nil {
		panic(err)
	}
	return c
}

// MustCatalog publishes a catalog holding the given spells.
func MustCatalog(spells ...SpellInfo) *Catalog {
	b := NewBuilder()
	for _, s := range spells {
		if err := b.AddSpell(s); err != nil {
			panic(err)
		}
	}
	return MustPublish(b)
}
