package service

import (
	"encoding/json"
	"testing"

	"servant_backend/internal/pricing/transport"
	sitetransport "servant_backend/internal/siteconfig/transport"
)

func testConfig() transport.PricingConfig {
	return transport.PricingConfig{
		EventTypes: map[string]transport.PricingEntry{
			"wedding":   {Price: 500, PricingType: transport.PricingFlat},
			"corporate": {Price: 8, PricingType: transport.PricingPerPerson},
		},
		ServiceStyles: map[string]transport.PricingEntry{
			"plated":  {Price: 5, PricingType: transport.PricingPerPerson},
			"dropoff": {Price: -100, PricingType: transport.PricingFlat},
		},
		PerPersonRate: 10,
		AddOns: []transport.AddOn{
			{ID: "bar", Name: "Open Bar", PricingType: transport.PricingPerPerson, Price: 5},
			{ID: "photobooth", Name: "Photo Booth", PricingType: transport.PricingFlat, Price: 250},
		},
	}
}

func testMenu() sitetransport.MenuConfig {
	return sitetransport.MenuConfig{
		Items: []sitetransport.MenuItem{
			{ID: "chicken", Name: "Roast Chicken", PricePerPerson: 6, IsAvailable: true},
			{ID: "salmon", Name: "Grilled Salmon", PricePerPerson: 9, IsAvailable: true},
		},
		Presets: []sitetransport.PresetMeal{
			{ID: "classic", Name: "Classic Dinner", ItemIDs: []string{"chicken", "salmon"}, PricePerPerson: 12},
		},
	}
}

func TestCalculateEstimate_FullBreakdown(t *testing.T) {
	in := transport.EstimateInput{
		EventType:    "wedding",
		ServiceStyle: "plated",
		GuestCount:   50,
		AddOnIDs:     []string{"bar", "photobooth"},
		Meal:         &transport.MealSelection{Type: transport.MealCustom, ItemIDs: []string{"chicken", "salmon"}},
	}

	result := CalculateEstimate(testConfig(), testMenu(), in)

	if result.EventTypePrice != 500 {
		t.Fatalf("expected event type price 500, got %v", result.EventTypePrice)
	}
	if result.ServiceStylePrice != 250 {
		t.Fatalf("expected service style price 250, got %v", result.ServiceStylePrice)
	}
	if result.PerPersonTotal != 500 {
		t.Fatalf("expected per-person total 500, got %v", result.PerPersonTotal)
	}
	if result.AddOnsTotal != 500 {
		t.Fatalf("expected add-ons total 500, got %v", result.AddOnsTotal)
	}
	if result.MealSelectionPrice != 750 {
		t.Fatalf("expected meal price 750, got %v", result.MealSelectionPrice)
	}
	if result.Total != 2500 {
		t.Fatalf("expected total 2500, got %v", result.Total)
	}
	if len(result.UnresolvedRefs) != 0 {
		t.Fatalf("expected no unresolved refs, got %v", result.UnresolvedRefs)
	}

	sum := result.EventTypePrice + result.ServiceStylePrice + result.PerPersonTotal + result.AddOnsTotal + result.MealSelectionPrice
	if result.Total != sum {
		t.Fatalf("total %v does not equal component sum %v", result.Total, sum)
	}
}

func TestCalculateEstimate_NegativeServiceStyleIsADiscount(t *testing.T) {
	in := transport.EstimateInput{
		EventType:    "corporate",
		ServiceStyle: "dropoff",
		GuestCount:   10,
	}

	result := CalculateEstimate(testConfig(), sitetransport.MenuConfig{}, in)

	if result.EventTypePrice != 80 {
		t.Fatalf("expected event type price 80, got %v", result.EventTypePrice)
	}
	if result.ServiceStylePrice != -100 {
		t.Fatalf("expected service style price -100, got %v", result.ServiceStylePrice)
	}
	if result.Total != 80 {
		t.Fatalf("expected total 80, got %v", result.Total)
	}
}

func TestCalculateEstimate_UnknownRefsPriceAtZero(t *testing.T) {
	in := transport.EstimateInput{
		EventType:    "gala",
		ServiceStyle: "plated",
		GuestCount:   10,
		AddOnIDs:     []string{"bar", "fireworks"},
		Meal:         &transport.MealSelection{Type: transport.MealPreset, PresetID: "deluxe"},
	}

	result := CalculateEstimate(testConfig(), testMenu(), in)

	if result.EventTypePrice != 0 {
		t.Fatalf("expected unknown event type to price at 0, got %v", result.EventTypePrice)
	}
	if result.MealSelectionPrice != 0 {
		t.Fatalf("expected unknown preset to price at 0, got %v", result.MealSelectionPrice)
	}
	if result.AddOnsTotal != 50 {
		t.Fatalf("expected only the known add-on priced, got %v", result.AddOnsTotal)
	}
	if len(result.AddOnBreakdown) != 1 || result.AddOnBreakdown[0].ID != "bar" {
		t.Fatalf("expected unknown add-on filtered from breakdown, got %+v", result.AddOnBreakdown)
	}

	want := map[string]bool{"eventType:gala": true, "addOn:fireworks": true, "preset:deluxe": true}
	if len(result.UnresolvedRefs) != len(want) {
		t.Fatalf("expected %d unresolved refs, got %v", len(want), result.UnresolvedRefs)
	}
	for _, ref := range result.UnresolvedRefs {
		if !want[ref] {
			t.Fatalf("unexpected unresolved ref %q", ref)
		}
	}
}

func TestCalculateEstimate_PresetPriceOverridesItemSum(t *testing.T) {
	in := transport.EstimateInput{
		GuestCount: 20,
		Meal:       &transport.MealSelection{Type: transport.MealPreset, PresetID: "classic"},
	}

	result := CalculateEstimate(transport.PricingConfig{}, testMenu(), in)

	// Items in the bundle would sum to 15/person; the preset's own 12/person wins.
	if result.MealSelectionPrice != 240 {
		t.Fatalf("expected preset meal price 240, got %v", result.MealSelectionPrice)
	}
}

func TestCalculateEstimate_CustomMealSkipsUnknownItems(t *testing.T) {
	in := transport.EstimateInput{
		GuestCount: 10,
		Meal:       &transport.MealSelection{Type: transport.MealCustom, ItemIDs: []string{"salmon", "ghost"}},
	}

	result := CalculateEstimate(transport.PricingConfig{}, testMenu(), in)

	if result.MealSelectionPrice != 90 {
		t.Fatalf("expected meal price 90, got %v", result.MealSelectionPrice)
	}
	if len(result.UnresolvedRefs) != 1 || result.UnresolvedRefs[0] != "menuItem:ghost" {
		t.Fatalf("expected unresolved menu item ref, got %v", result.UnresolvedRefs)
	}
}

func TestCalculateEstimate_AddOnBreakdownFollowsSelectionOrder(t *testing.T) {
	in := transport.EstimateInput{
		GuestCount: 10,
		AddOnIDs:   []string{"photobooth", "bar"},
	}

	result := CalculateEstimate(testConfig(), sitetransport.MenuConfig{}, in)

	if len(result.AddOnBreakdown) != 2 {
		t.Fatalf("expected 2 breakdown lines, got %d", len(result.AddOnBreakdown))
	}
	if result.AddOnBreakdown[0].ID != "photobooth" || result.AddOnBreakdown[1].ID != "bar" {
		t.Fatalf("expected breakdown in selection order, got %+v", result.AddOnBreakdown)
	}
}

func TestCalculateEstimate_ZeroGuestsZeroesPerPersonContributions(t *testing.T) {
	in := transport.EstimateInput{
		EventType:    "wedding",
		ServiceStyle: "plated",
		GuestCount:   0,
		AddOnIDs:     []string{"bar"},
	}

	result := CalculateEstimate(testConfig(), sitetransport.MenuConfig{}, in)

	if result.ServiceStylePrice != 0 || result.PerPersonTotal != 0 || result.AddOnsTotal != 0 {
		t.Fatalf("expected per-person contributions to be 0, got %+v", result)
	}
	if result.Total != 500 {
		t.Fatalf("expected only the flat event type price, got %v", result.Total)
	}
}

func TestAmount_CoercesFormInputs(t *testing.T) {
	payload := `{
		"eventTypes": {
			"wedding": {"price": "250.50", "pricingType": "flat"},
			"birthday": {"price": "", "pricingType": "flat"},
			"gala": {"price": null, "pricingType": "flat"},
			"picnic": {"price": "not a number", "pricingType": "flat"}
		},
		"serviceStyles": {},
		"perPersonRate": "12",
		"addOns": []
	}`

	var cfg transport.PricingConfig
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got := cfg.EventTypes["wedding"].Price.Float64(); got != 250.50 {
		t.Fatalf("expected numeric string to parse, got %v", got)
	}
	if got := cfg.EventTypes["birthday"].Price.Float64(); got != 0 {
		t.Fatalf("expected empty string to coerce to 0, got %v", got)
	}
	if got := cfg.EventTypes["gala"].Price.Float64(); got != 0 {
		t.Fatalf("expected null to coerce to 0, got %v", got)
	}
	if got := cfg.EventTypes["picnic"].Price.Float64(); got != 0 {
		t.Fatalf("expected garbage to coerce to 0, got %v", got)
	}
	if got := cfg.PerPersonRate.Float64(); got != 12 {
		t.Fatalf("expected per-person rate 12, got %v", got)
	}
}

func TestCalculateEstimate_SameInputsSameOutput(t *testing.T) {
	in := transport.EstimateInput{
		EventType:    "corporate",
		ServiceStyle: "plated",
		GuestCount:   25,
		AddOnIDs:     []string{"bar"},
		Meal:         &transport.MealSelection{Type: transport.MealPreset, PresetID: "classic"},
	}

	first := CalculateEstimate(testConfig(), testMenu(), in)
	second := CalculateEstimate(testConfig(), testMenu(), in)

	if first.Total != second.Total || first.MealSelectionPrice != second.MealSelectionPrice {
		t.Fatalf("expected deterministic results, got %v then %v", first.Total, second.Total)
	}
}

func TestCalculateEstimate_AllFlatWithPerPersonRate(t *testing.T) {
	cfg := transport.PricingConfig{
		EventTypes:    map[string]transport.PricingEntry{"Wedding": {Price: 500, PricingType: transport.PricingFlat}},
		ServiceStyles: map[string]transport.PricingEntry{"Buffet": {Price: 100, PricingType: transport.PricingFlat}},
		PerPersonRate: 20,
		AddOns:        []transport.AddOn{{ID: "a1", Name: "DJ", PricingType: transport.PricingFlat, Price: 150}},
	}
	in := transport.EstimateInput{EventType: "Wedding", ServiceStyle: "Buffet", GuestCount: 50, AddOnIDs: []string{"a1"}}

	result := CalculateEstimate(cfg, sitetransport.MenuConfig{}, in)

	if result.EventTypePrice != 500 || result.ServiceStylePrice != 100 {
		t.Fatalf("flat contributions = %v/%v, want 500/100", result.EventTypePrice, result.ServiceStylePrice)
	}
	if result.PerPersonTotal != 1000 {
		t.Fatalf("per-person total = %v, want 1000", result.PerPersonTotal)
	}
	if result.AddOnsTotal != 150 {
		t.Fatalf("add-ons total = %v, want 150", result.AddOnsTotal)
	}
	if result.Total != 1750 {
		t.Fatalf("total = %v, want 1750", result.Total)
	}

	// And with no guests only the per-person contribution drops out.
	in.GuestCount = 0
	result = CalculateEstimate(cfg, sitetransport.MenuConfig{}, in)
	if result.PerPersonTotal != 0 || result.Total != 750 {
		t.Fatalf("zero-guest total = %v (per-person %v), want 750 (0)", result.Total, result.PerPersonTotal)
	}
}
