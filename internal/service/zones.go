package service

import "courier/internal/domain"

// ZoneMap is the static district lookup: district name (in its
// city-suffix form, e.g. "Carabayllo (Lima)") to pricing tier and zone
// group. Built once at startup and injected into the pricing and order
// services; it is never mutated after construction.
type ZoneMap struct {
	tiers  map[string]domain.PriceTier
	groups map[string]domain.ZoneGroup
}

// highTierDistricts are the distant districts billed at the high rate.
var highTierDistricts = []string{
	"Carabayllo (Lima)",
	"Ventanilla (Callao)",
	"Puente Piedra (Lima)",
}

// midTierDistricts are billed at the intermediate rate.
var midTierDistricts = []string{
	"Comas (Lima)",
	"Villa El Salvador (Lima)",
	"Villa María del Triunfo (Lima)",
	"Oquendo (Callao)",
	"Santa Clara (Ate, Lima)",
}

// zoneGroupDistricts maps each zone group to its districts. Evaluated
// in declaration order: a district listed in more than one group keeps
// the first group (San Juan de Lurigancho resolves to EST, not SJL).
var zoneGroupDistricts = []struct {
	group     domain.ZoneGroup
	districts []string
}{
	{domain.ZoneGroupNOR, []string{
		"Carabayllo (Lima)", "Comas (Lima)", "Independencia (Lima)",
		"Los Olivos (Lima)", "Puente Piedra (Lima)", "San Martín de Porres (Lima)",
		"Santa Rosa (Callao)", "Ventanilla (Callao)", "Mi Perú (Callao)",
		"Oquendo (Callao)",
	}},
	{domain.ZoneGroupSUR, []string{
		"San Borja (Lima)", "Barranco (Lima)", "Chorrillos (Lima)",
		"Lurín (Lima)", "San Juan de Miraflores (Lima)", "Surco (Lima)",
		"Surquillo (Lima)", "Villa El Salvador (Lima)",
		"Villa María del Triunfo (Lima)",
	}},
	{domain.ZoneGroupEST, []string{
		"La Molina (Lima)", "Ate (Lima)", "Chaclacayo (Lima)",
		"Huachipa (Ate, Lima)", "San Juan de Lurigancho (Lima)",
		"Santa Anita (Lima)", "Santa Clara (Ate, Lima)",
	}},
	{domain.ZoneGroupOES, []string{
		"Magdalena del Mar (Lima)", "Lince (Lima)", "Pueblo Libre (Lima)",
		"Bellavista (Callao)", "San Miguel (Lima)", "Callao (Callao)",
		"Carmen de la Legua (Callao)", "La Perla (Callao)", "La Punta (Callao)",
	}},
	{domain.ZoneGroupSJL, []string{
		"San Juan de Lurigancho (Lima)",
	}},
}

// NewDefaultZoneMap builds the production district map.
func NewDefaultZoneMap() *ZoneMap {
	tiers := make(map[string]domain.PriceTier)
	for _, d := range highTierDistricts {
		tiers[d] = domain.TierHigh
	}
	for _, d := range midTierDistricts {
		tiers[d] = domain.TierMid
	}

	groups := make(map[string]domain.ZoneGroup)
	for _, zg := range zoneGroupDistricts {
		for _, d := range zg.districts {
			if _, ok := groups[d]; !ok {
				groups[d] = zg.group
			}
		}
	}

	return &ZoneMap{tiers: tiers, groups: groups}
}

// Tier returns the pricing tier for a district. Unknown districts are
// billed at the base tier.
func (m *ZoneMap) Tier(district string) domain.PriceTier {
	if tier, ok := m.tiers[district]; ok {
		return tier
	}
	return domain.TierBase
}

// Group returns the zone group a district belongs to, or ZoneGroupNone
// when the district is not in any group and the order needs manual
// assignment.
func (m *ZoneMap) Group(district string) domain.ZoneGroup {
	return m.groups[district]
}
