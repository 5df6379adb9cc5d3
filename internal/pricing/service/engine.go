package service

import (
	sitetransport "servant_backend/internal/siteconfig/transport"
	"servant_backend/internal/pricing/transport"
)

// lookupEntry resolves a rate table key and returns its contribution for the
// given guest count. Missing keys contribute zero and are reported so callers
// can surface stale references without failing the estimate.
func lookupEntry(table map[string]transport.PricingEntry, key string, guestCount int) (float64, bool) {
	if key == "" {
		return 0, true
	}
	entry, ok := table[key]
	if !ok {
		return 0, false
	}
	price := entry.Price.Float64()
	if entry.PricingType == transport.PricingPerPerson {
		return price * float64(guestCount), true
	}
	return price, true
}

// resolveAddOns maps selected add-on ids to breakdown lines. Unknown ids are
// skipped and reported.
func resolveAddOns(addOns []transport.AddOn, selected []string, guestCount int) ([]transport.AddOnLine, float64, []string) {
	byID := make(map[string]transport.AddOn, len(addOns))
	for _, a := range addOns {
		byID[a.ID] = a
	}

	lines := make([]transport.AddOnLine, 0, len(selected))
	var total float64
	var unresolved []string
	for _, id := range selected {
		addOn, ok := byID[id]
		if !ok {
			unresolved = append(unresolved, "addOn:"+id)
			continue
		}
		price := addOn.Price.Float64()
		if addOn.PricingType == transport.PricingPerPerson {
			price *= float64(guestCount)
		}
		lines = append(lines, transport.AddOnLine{
			ID:          addOn.ID,
			Name:        addOn.Name,
			PricingType: addOn.PricingType,
			Price:       price,
		})
		total += price
	}
	return lines, total, unresolved
}

// mealPrice computes the meal contribution. A preset's own per-person rate
// is authoritative regardless of its listed items; a custom selection sums
// the chosen items' per-person prices. Either way the rate is multiplied by
// guest count.
func mealPrice(menu sitetransport.MenuConfig, meal *transport.MealSelection, guestCount int) (float64, []string) {
	if meal == nil {
		return 0, nil
	}

	switch meal.Type {
	case transport.MealPreset:
		for _, preset := range menu.Presets {
			if preset.ID == meal.PresetID {
				return preset.PricePerPerson.Float64() * float64(guestCount), nil
			}
		}
		if meal.PresetID != "" {
			return 0, []string{"preset:" + meal.PresetID}
		}
		return 0, nil

	case transport.MealCustom:
		byID := make(map[string]sitetransport.MenuItem, len(menu.Items))
		for _, item := range menu.Items {
			byID[item.ID] = item
		}
		var perPerson float64
		var unresolved []string
		for _, id := range meal.ItemIDs {
			item, ok := byID[id]
			if !ok {
				unresolved = append(unresolved, "menuItem:"+id)
				continue
			}
			perPerson += item.PricePerPerson.Float64()
		}
		return perPerson * float64(guestCount), unresolved
	}

	return 0, nil
}

// CalculateEstimate computes the full price breakdown for a set of event
// selections. It is a pure function of its inputs: no clock, no randomness,
// no I/O. Every unknown reference contributes zero instead of failing, so the
// public preview keeps working while the owner edits the rate tables.
func CalculateEstimate(cfg transport.PricingConfig, menu sitetransport.MenuConfig, in transport.EstimateInput) transport.QuoteEstimate {
	guestCount := in.GuestCount
	if guestCount < 0 {
		guestCount = 0
	}

	var unresolved []string

	eventTypePrice, ok := lookupEntry(cfg.EventTypes, in.EventType, guestCount)
	if !ok {
		unresolved = append(unresolved, "eventType:"+in.EventType)
	}
	serviceStylePrice, ok := lookupEntry(cfg.ServiceStyles, in.ServiceStyle, guestCount)
	if !ok {
		unresolved = append(unresolved, "serviceStyle:"+in.ServiceStyle)
	}

	perPersonTotal := cfg.PerPersonRate.Float64() * float64(guestCount)

	addOnLines, addOnsTotal, addOnUnresolved := resolveAddOns(cfg.AddOns, in.AddOnIDs, guestCount)
	unresolved = append(unresolved, addOnUnresolved...)

	mealTotal, mealUnresolved := mealPrice(menu, in.Meal, guestCount)
	unresolved = append(unresolved, mealUnresolved...)

	return transport.QuoteEstimate{
		EventTypePrice:     eventTypePrice,
		ServiceStylePrice:  serviceStylePrice,
		PerPersonTotal:     perPersonTotal,
		AddOnBreakdown:     addOnLines,
		AddOnsTotal:        addOnsTotal,
		MealSelectionPrice: mealTotal,
		Total:              eventTypePrice + serviceStylePrice + perPersonTotal + addOnsTotal + mealTotal,
		UnresolvedRefs:     unresolved,
	}
}
