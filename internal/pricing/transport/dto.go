package transport

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// PricingType selects whether a price is charged once or per guest.
type PricingType string

const (
	PricingFlat      PricingType = "flat"
	PricingPerPerson PricingType = "per-person"
)

// Amount is a monetary value that tolerates the shapes admin forms produce:
// numbers, numeric strings, empty strings, and null all decode; anything
// unparseable (or NaN/Inf) coerces to 0. The same coercion runs on stored
// documents and on request payloads so preview and authoritative computation
// normalize identically.
type Amount float64

// UnmarshalJSON implements the lenient decoding described above.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*a = 0
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			*a = 0
			return nil
		}
		*a = parseAmount(text)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		*a = 0
		return nil
	}
	*a = sanitizeAmount(value)
	return nil
}

// Float64 returns the normalized numeric value.
func (a Amount) Float64() float64 { return float64(a) }

func parseAmount(text string) Amount {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return sanitizeAmount(value)
}

func sanitizeAmount(value float64) Amount {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return Amount(value)
}

// PricingEntry prices one event type or service style.
type PricingEntry struct {
	Price       Amount      `json:"price"`
	PricingType PricingType `json:"pricingType"`
}

// AddOn is an optional extra the client can select. The ID is assigned once
// and never changes; name and price are admin-editable.
type AddOn struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	PricingType PricingType `json:"pricingType"`
	Price       Amount      `json:"price"`
}

// PricingConfig is the admin-tunable rate table.
type PricingConfig struct {
	EventTypes    map[string]PricingEntry `json:"eventTypes"`
	ServiceStyles map[string]PricingEntry `json:"serviceStyles"`
	PerPersonRate Amount                  `json:"perPersonRate"`
	AddOns        []AddOn                 `json:"addOns"`
}

// MealSelectionType distinguishes preset bundles from custom item picks.
type MealSelectionType string

const (
	MealPreset MealSelectionType = "preset"
	MealCustom MealSelectionType = "custom"
)

// MealSelection captures the client's menu choice for an event.
type MealSelection struct {
	Type     MealSelectionType `json:"type"`
	PresetID string            `json:"presetId,omitempty"`
	ItemIDs  []string          `json:"itemIds,omitempty"`
}

// EstimateInput holds the request selections an estimate is computed from.
type EstimateInput struct {
	EventType    string         `json:"eventType"`
	ServiceStyle string         `json:"serviceType"`
	GuestCount   int            `json:"guestCount"`
	AddOnIDs     []string       `json:"selectedAddOns,omitempty"`
	Meal         *MealSelection `json:"mealSelection,omitempty"`
}

// AddOnLine is one resolved add-on in an estimate breakdown.
type AddOnLine struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	PricingType PricingType `json:"pricingType"`
	Price       float64     `json:"price"`
}

// QuoteEstimate is the computed price breakdown. It is derived state: the
// same config and input always produce the same estimate, and it is only
// persisted as a snapshot inside a booking.
type QuoteEstimate struct {
	EventTypePrice     float64     `json:"eventTypePrice"`
	ServiceStylePrice  float64     `json:"serviceStylePrice"`
	PerPersonTotal     float64     `json:"perPersonTotal"`
	AddOnBreakdown     []AddOnLine `json:"addOnBreakdown"`
	AddOnsTotal        float64     `json:"addOnsTotal"`
	MealSelectionPrice float64     `json:"mealSelectionPrice"`
	Total              float64     `json:"total"`
	// UnresolvedRefs lists ids/keys that priced at zero because they are
	// missing from the current config. Diagnostic only; never an error.
	UnresolvedRefs []string `json:"unresolvedRefs,omitempty"`
}

// EstimateRequest is the public preview endpoint's request body.
type EstimateRequest struct {
	EventType    string         `json:"eventType" validate:"required"`
	ServiceStyle string         `json:"serviceType"`
	GuestCount   int            `json:"guestCount" validate:"min=0"`
	AddOnIDs     []string       `json:"selectedAddOns,omitempty"`
	Meal         *MealSelection `json:"mealSelection,omitempty"`
}
