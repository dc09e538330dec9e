package domain

// PriceTier represents the commission pricing tier of a district.
type PriceTier string

const (
	TierBase PriceTier = "BASE"
	TierMid  PriceTier = "MID"
	TierHigh PriceTier = "HIGH"
)

// ZoneGroup is a short code grouping districts for default
// motorized-driver pool assignment. ZoneGroupNone means the district
// belongs to no group and the order needs manual assignment.
type ZoneGroup string

const (
	ZoneGroupNone ZoneGroup = ""
	ZoneGroupNOR  ZoneGroup = "NOR"
	ZoneGroupSUR  ZoneGroup = "SUR"
	ZoneGroupEST  ZoneGroup = "EST"
	ZoneGroupOES  ZoneGroup = "OES"
	ZoneGroupSJL  ZoneGroup = "SJL"
)
