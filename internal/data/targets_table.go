package data

import "fmt"

// Targets is an implicit target selector of a spell effect.
type Targets uint8

const (
	TargetNone                      Targets = 0
	TargetUnitCaster                Targets = 1
	TargetUnitNearbyEnemy           Targets = 2
	TargetUnitNearbyParty           Targets = 3
	TargetUnitNearbyAlly            Targets = 4
	TargetUnitPet                   Targets = 5
	TargetUnitTargetEnemy           Targets = 6
	TargetUnitSrcAreaEntry          Targets = 7
	TargetUnitDestAreaEntry         Targets = 8
	TargetDestHome                  Targets = 9
	TargetUnitSrcAreaUnk11          Targets = 11
	TargetUnitSrcAreaEnemy          Targets = 15
	TargetUnitDestAreaEnemy         Targets = 16
	TargetDestDb                    Targets = 17
	TargetDestCaster                Targets = 18
	TargetUnitCasterAreaParty       Targets = 20
	TargetUnitTargetAlly            Targets = 21
	TargetSrcCaster                 Targets = 22
	TargetGameobjectTarget          Targets = 23
	TargetUnitConeEnemy24           Targets = 24
	TargetUnitTargetAny             Targets = 25
	TargetGameobjectItemTarget      Targets = 26
	TargetUnitMaster                Targets = 27
	TargetDestDynobjEnemy           Targets = 28
	TargetDestDynobjAlly            Targets = 29
	TargetUnitSrcAreaAlly           Targets = 30
	TargetUnitDestAreaAlly          Targets = 31
	TargetDestCasterSummon          Targets = 32
	TargetUnitSrcAreaParty          Targets = 33
	TargetUnitDestAreaParty         Targets = 34
	TargetUnitTargetParty           Targets = 35
	TargetDestCasterUnk36           Targets = 36
	TargetUnitLasttargetAreaParty   Targets = 37
	TargetUnitNearbyEntry           Targets = 38
	TargetDestCasterFishing         Targets = 39
	TargetGameobjectNearbyEntry     Targets = 40
	TargetDestCasterFrontRight      Targets = 41
	TargetDestCasterBackRight       Targets = 42
	TargetDestCasterBackLeft        Targets = 43
	TargetDestCasterFrontLeft       Targets = 44
	TargetUnitTargetChainhealAlly   Targets = 45
	TargetDestNearbyEntry           Targets = 46
	TargetDestCasterFront           Targets = 47
	TargetDestCasterBack            Targets = 48
	TargetDestCasterRight           Targets = 49
	TargetDestCasterLeft            Targets = 50
	TargetGameobjectSrcArea         Targets = 51
	TargetGameobjectDestArea        Targets = 52
	TargetDestTargetEnemy           Targets = 53
	TargetUnitConeEnemy54           Targets = 54
	TargetDestCasterFrontLeap       Targets = 55
	TargetUnitCasterAreaRaid        Targets = 56
	TargetUnitTargetRaid            Targets = 57
	TargetUnitNearbyRaid            Targets = 58
	TargetUnitConeAlly              Targets = 59
	TargetUnitConeEntry             Targets = 60
	TargetUnitTargetAreaRaidClass   Targets = 61
	TargetUnk62                     Targets = 62
	TargetDestTargetAny             Targets = 63
	TargetDestTargetFront           Targets = 64
	TargetDestTargetBack            Targets = 65
	TargetDestTargetRight           Targets = 66
	TargetDestTargetLeft            Targets = 67
	TargetDestTargetFrontRight      Targets = 68
	TargetDestTargetBackRight       Targets = 69
	TargetDestTargetBackLeft        Targets = 70
	TargetDestTargetFrontLeft       Targets = 71
	TargetDestCasterRandom          Targets = 72
	TargetDestCasterRadius          Targets = 73
	TargetDestTargetRandom          Targets = 74
	TargetDestTargetRadius          Targets = 75
	TargetDestChannelTarget         Targets = 76
	TargetUnitChannelTarget         Targets = 77
	TargetDestDestFront             Targets = 78
	TargetDestDestBack              Targets = 79
	TargetDestDestRight             Targets = 80
	TargetDestDestLeft              Targets = 81
	TargetDestDestFrontRight        Targets = 82
	TargetDestDestBackRight         Targets = 83
	TargetDestDestBackLeft          Targets = 84
	TargetDestDestFrontLeft         Targets = 85
	TargetDestDestRandom            Targets = 86
	TargetDestDest                  Targets = 87
	TargetDestDynobjNone            Targets = 88
	TargetDestTraj                  Targets = 89
	TargetUnitTargetMinipet         Targets = 90
	TargetDestDestRadius            Targets = 91
	TargetUnitSummoner              Targets = 92
	TargetCorpseSrcAreaEnemy        Targets = 93
	TargetUnitVehicle               Targets = 94
	TargetUnitTargetPassenger       Targets = 95
	TargetUnitPassenger0            Targets = 96
	TargetUnitPassenger1            Targets = 97
	TargetUnitPassenger2            Targets = 98
	TargetUnitPassenger3            Targets = 99
	TargetUnitPassenger4            Targets = 100
	TargetUnitPassenger5            Targets = 101
	TargetUnitPassenger6            Targets = 102
	TargetUnitPassenger7            Targets = 103
	TargetUnitConeEnemy104          Targets = 104
	TargetUnitUnk105                Targets = 105
	TargetDestChannelCaster         Targets = 106
	TargetUnkDestAreaUnk107         Targets = 107
	TargetGameobjectCone            Targets = 108
	TargetDestUnk110                Targets = 110
	TargetUnitLineCasterToDestEnemy Targets = 111
	TargetUnitLineCasterToDestAlly  Targets = 112

	TotalSpellTargets = 113
)

var targetNames = [TotalSpellTargets]string{
	"none",
	"unit_caster",
	"unit_nearby_enemy",
	"unit_nearby_party",
	"unit_nearby_ally",
	"unit_pet",
	"unit_target_enemy",
	"unit_src_area_entry",
	"unit_dest_area_entry",
	"dest_home",
	"unused_10",
	"unit_src_area_unk_11",
	"unused_12",
	"unused_13",
	"unused_14",
	"unit_src_area_enemy",
	"unit_dest_area_enemy",
	"dest_db",
	"dest_caster",
	"unused_19",
	"unit_caster_area_party",
	"unit_target_ally",
	"src_caster",
	"gameobject_target",
	"unit_cone_enemy_24",
	"unit_target_any",
	"gameobject_item_target",
	"unit_master",
	"dest_dynobj_enemy",
	"dest_dynobj_ally",
	"unit_src_area_ally",
	"unit_dest_area_ally",
	"dest_caster_summon",
	"unit_src_area_party",
	"unit_dest_area_party",
	"unit_target_party",
	"dest_caster_unk_36",
	"unit_lasttarget_area_party",
	"unit_nearby_entry",
	"dest_caster_fishing",
	"gameobject_nearby_entry",
	"dest_caster_front_right",
	"dest_caster_back_right",
	"dest_caster_back_left",
	"dest_caster_front_left",
	"unit_target_chainheal_ally",
	"dest_nearby_entry",
	"dest_caster_front",
	"dest_caster_back",
	"dest_caster_right",
	"dest_caster_left",
	"gameobject_src_area",
	"gameobject_dest_area",
	"dest_target_enemy",
	"unit_cone_enemy_54",
	"dest_caster_front_leap",
	"unit_caster_area_raid",
	"unit_target_raid",
	"unit_nearby_raid",
	"unit_cone_ally",
	"unit_cone_entry",
	"unit_target_area_raid_class",
	"unk_62",
	"dest_target_any",
	"dest_target_front",
	"dest_target_back",
	"dest_target_right",
	"dest_target_left",
	"dest_target_front_right",
	"dest_target_back_right",
	"dest_target_back_left",
	"dest_target_front_left",
	"dest_caster_random",
	"dest_caster_radius",
	"dest_target_random",
	"dest_target_radius",
	"dest_channel_target",
	"unit_channel_target",
	"dest_dest_front",
	"dest_dest_back",
	"dest_dest_right",
	"dest_dest_left",
	"dest_dest_front_right",
	"dest_dest_back_right",
	"dest_dest_back_left",
	"dest_dest_front_left",
	"dest_dest_random",
	"dest_dest",
	"dest_dynobj_none",
	"dest_traj",
	"unit_target_minipet",
	"dest_dest_radius",
	"unit_summoner",
	"corpse_src_area_enemy",
	"unit_vehicle",
	"unit_target_passenger",
	"unit_passenger_0",
	"unit_passenger_1",
	"unit_passenger_2",
	"unit_passenger_3",
	"unit_passenger_4",
	"unit_passenger_5",
	"unit_passenger_6",
	"unit_passenger_7",
	"unit_cone_enemy_104",
	"unit_unk_105",
	"dest_channel_caster",
	"unk_dest_area_unk_107",
	"gameobject_cone",
	"unused_109",
	"dest_unk_110",
	"unit_line_caster_to_dest_enemy",
	"unit_line_caster_to_dest_ally",
}

var targetNamesIndex = indexNames[Targets](targetNames[:])

func (t Targets) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return fmt.Sprintf("targets(%d)", int(t))
}

// ParseTargets resolves the snake_case name used in data files.
func ParseTargets(name string) (Targets, bool) {
	t, ok := targetNamesIndex[name]
	return t, ok
}

// targetStatic describes how every selector is resolved. Unlisted selectors stay
// zero-valued, which reads as ObjectNone/SelectNyi.
var targetStatic = [TotalSpellTargets]TargetStaticData{
	TargetUnitCaster:                {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitNearbyEnemy:           {ObjectUnit, RefCaster, SelectNearby, CheckEnemy, DirNone},
	TargetUnitNearbyParty:           {ObjectUnit, RefCaster, SelectNearby, CheckParty, DirNone},
	TargetUnitNearbyAlly:            {ObjectUnit, RefCaster, SelectNearby, CheckAlly, DirNone},
	TargetUnitPet:                   {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitTargetEnemy:           {ObjectUnit, RefTarget, SelectDefault, CheckEnemy, DirNone},
	TargetUnitSrcAreaEntry:          {ObjectUnit, RefSrc, SelectArea, CheckEntry, DirNone},
	TargetUnitDestAreaEntry:         {ObjectUnit, RefDest, SelectArea, CheckEntry, DirNone},
	TargetDestHome:                  {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitSrcAreaUnk11:          {ObjectUnit, RefSrc, SelectNyi, CheckDefault, DirNone},
	TargetUnitSrcAreaEnemy:          {ObjectUnit, RefSrc, SelectArea, CheckEnemy, DirNone},
	TargetUnitDestAreaEnemy:         {ObjectUnit, RefDest, SelectArea, CheckEnemy, DirNone},
	TargetDestDb:                    {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetDestCaster:                {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitCasterAreaParty:       {ObjectUnit, RefCaster, SelectArea, CheckParty, DirNone},
	TargetUnitTargetAlly:            {ObjectUnit, RefTarget, SelectDefault, CheckAlly, DirNone},
	TargetSrcCaster:                 {ObjectSrc, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetGameobjectTarget:          {ObjectGameObject, RefTarget, SelectDefault, CheckDefault, DirNone},
	TargetUnitConeEnemy24:           {ObjectUnit, RefCaster, SelectCone, CheckEnemy, DirFront},
	TargetUnitTargetAny:             {ObjectUnit, RefTarget, SelectDefault, CheckDefault, DirNone},
	TargetGameobjectItemTarget:      {ObjectGameObjectItem, RefTarget, SelectDefault, CheckDefault, DirNone},
	TargetUnitMaster:                {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetDestDynobjEnemy:           {ObjectDest, RefCaster, SelectDefault, CheckEnemy, DirNone},
	TargetDestDynobjAlly:            {ObjectDest, RefCaster, SelectDefault, CheckAlly, DirNone},
	TargetUnitSrcAreaAlly:           {ObjectUnit, RefSrc, SelectArea, CheckAlly, DirNone},
	TargetUnitDestAreaAlly:          {ObjectUnit, RefDest, SelectArea, CheckAlly, DirNone},
	TargetDestCasterSummon:          {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirFrontLeft},
	TargetUnitSrcAreaParty:          {ObjectUnit, RefSrc, SelectArea, CheckParty, DirNone},
	TargetUnitDestAreaParty:         {ObjectUnit, RefDest, SelectArea, CheckParty, DirNone},
	TargetUnitTargetParty:           {ObjectUnit, RefTarget, SelectDefault, CheckParty, DirNone},
	TargetDestCasterUnk36:           {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitLasttargetAreaParty:   {ObjectUnit, RefLast, SelectArea, CheckParty, DirNone},
	TargetUnitNearbyEntry:           {ObjectUnit, RefCaster, SelectNearby, CheckEntry, DirNone},
	TargetDestCasterFishing:         {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetGameobjectNearbyEntry:     {ObjectGameObject, RefCaster, SelectNearby, CheckEntry, DirNone},
	TargetDestCasterFrontRight:      {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirFrontRight},
	TargetDestCasterBackRight:       {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirBackRight},
	TargetDestCasterBackLeft:        {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirBackLeft},
	TargetDestCasterFrontLeft:       {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirFrontLeft},
	TargetUnitTargetChainhealAlly:   {ObjectUnit, RefTarget, SelectDefault, CheckAlly, DirNone},
	TargetDestNearbyEntry:           {ObjectDest, RefCaster, SelectNearby, CheckEntry, DirNone},
	TargetDestCasterFront:           {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirFront},
	TargetDestCasterBack:            {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirBack},
	TargetDestCasterRight:           {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirRight},
	TargetDestCasterLeft:            {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirLeft},
	TargetGameobjectSrcArea:         {ObjectGameObject, RefSrc, SelectArea, CheckDefault, DirNone},
	TargetGameobjectDestArea:        {ObjectGameObject, RefDest, SelectArea, CheckDefault, DirNone},
	TargetDestTargetEnemy:           {ObjectDest, RefTarget, SelectDefault, CheckEnemy, DirNone},
	TargetUnitConeEnemy54:           {ObjectUnit, RefCaster, SelectCone, CheckEnemy, DirFront},
	TargetDestCasterFrontLeap:       {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirFront},
	TargetUnitCasterAreaRaid:        {ObjectUnit, RefCaster, SelectArea, CheckRaid, DirNone},
	TargetUnitTargetRaid:            {ObjectUnit, RefTarget, SelectDefault, CheckRaid, DirNone},
	TargetUnitNearbyRaid:            {ObjectUnit, RefCaster, SelectNearby, CheckRaid, DirNone},
	TargetUnitConeAlly:              {ObjectUnit, RefCaster, SelectCone, CheckAlly, DirFront},
	TargetUnitConeEntry:             {ObjectUnit, RefCaster, SelectCone, CheckEntry, DirFront},
	TargetUnitTargetAreaRaidClass:   {ObjectUnit, RefTarget, SelectArea, CheckRaidClass, DirNone},
	TargetUnk62:                     {ObjectNone, RefNone, SelectNyi, CheckDefault, DirNone},
	TargetDestTargetAny:             {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirNone},
	TargetDestTargetFront:           {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirFront},
	TargetDestTargetBack:            {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirBack},
	TargetDestTargetRight:           {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirRight},
	TargetDestTargetLeft:            {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirLeft},
	TargetDestTargetFrontRight:      {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirFrontRight},
	TargetDestTargetBackRight:       {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirBackRight},
	TargetDestTargetBackLeft:        {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirBackLeft},
	TargetDestTargetFrontLeft:       {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirFrontLeft},
	TargetDestCasterRandom:          {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirRandom},
	TargetDestCasterRadius:          {ObjectDest, RefCaster, SelectDefault, CheckDefault, DirRandom},
	TargetDestTargetRandom:          {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirRandom},
	TargetDestTargetRadius:          {ObjectDest, RefTarget, SelectDefault, CheckDefault, DirRandom},
	TargetDestChannelTarget:         {ObjectDest, RefCaster, SelectChannel, CheckDefault, DirNone},
	TargetUnitChannelTarget:         {ObjectUnit, RefCaster, SelectChannel, CheckDefault, DirNone},
	TargetDestDestFront:             {ObjectDest, RefDest, SelectDefault, CheckDefault, DirFront},
	TargetDestDestBack:              {ObjectDest, RefDest, SelectDefault, CheckDefault, DirBack},
	TargetDestDestRight:             {ObjectDest, RefDest, SelectDefault, CheckDefault, DirRight},
	TargetDestDestLeft:              {ObjectDest, RefDest, SelectDefault, CheckDefault, DirLeft},
	TargetDestDestFrontRight:        {ObjectDest, RefDest, SelectDefault, CheckDefault, DirFrontRight},
	TargetDestDestBackRight:         {ObjectDest, RefDest, SelectDefault, CheckDefault, DirBackRight},
	TargetDestDestBackLeft:          {ObjectDest, RefDest, SelectDefault, CheckDefault, DirBackLeft},
	TargetDestDestFrontLeft:         {ObjectDest, RefDest, SelectDefault, CheckDefault, DirFrontLeft},
	TargetDestDestRandom:            {ObjectDest, RefDest, SelectDefault, CheckDefault, DirRandom},
	TargetDestDest:                  {ObjectDest, RefDest, SelectDefault, CheckDefault, DirNone},
	TargetDestDynobjNone:            {ObjectDest, RefDest, SelectDefault, CheckDefault, DirNone},
	TargetDestTraj:                  {ObjectDest, RefDest, SelectTraj, CheckDefault, DirNone},
	TargetUnitTargetMinipet:         {ObjectUnit, RefTarget, SelectDefault, CheckDefault, DirNone},
	TargetDestDestRadius:            {ObjectDest, RefDest, SelectDefault, CheckDefault, DirRandom},
	TargetUnitSummoner:              {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetCorpseSrcAreaEnemy:        {ObjectCorpseEnemy, RefSrc, SelectArea, CheckEnemy, DirNone},
	TargetUnitVehicle:               {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitTargetPassenger:       {ObjectUnit, RefTarget, SelectDefault, CheckPassenger, DirNone},
	TargetUnitPassenger0:            {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitPassenger1:            {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitPassenger2:            {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitPassenger3:            {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitPassenger4:            {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitPassenger5:            {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitPassenger6:            {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitPassenger7:            {ObjectUnit, RefCaster, SelectDefault, CheckDefault, DirNone},
	TargetUnitConeEnemy104:          {ObjectUnit, RefCaster, SelectCone, CheckEnemy, DirFront},
	TargetUnitUnk105:                {ObjectUnit, RefCaster, SelectNyi, CheckDefault, DirNone},
	TargetDestChannelCaster:         {ObjectDest, RefCaster, SelectChannel, CheckDefault, DirNone},
	TargetUnkDestAreaUnk107:         {ObjectNone, RefDest, SelectNyi, CheckDefault, DirNone},
	TargetGameobjectCone:            {ObjectGameObject, RefCaster, SelectCone, CheckDefault, DirFront},
	TargetDestUnk110:                {ObjectDest, RefCaster, SelectNyi, CheckDefault, DirNone},
	TargetUnitLineCasterToDestEnemy: {ObjectUnit, RefCaster, SelectLine, CheckEnemy, DirNone},
	TargetUnitLineCasterToDestAlly:  {ObjectUnit, RefCaster, SelectLine, CheckAlly, DirNone},
}
