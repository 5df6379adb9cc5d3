package calendar

import (
	"fmt"
	"strings"
)

// buildDescription renders the multi-section plain-text body shown to anyone
// reading the calendar event directly. Structured state lives in the event's
// private metadata, not here; this text is for humans.
func buildDescription(d BookingDetails) string {
	var b strings.Builder

	b.WriteString("CLIENT\n")
	fmt.Fprintf(&b, "Name: %s\n", d.ClientName)
	fmt.Fprintf(&b, "Email: %s\n", d.ClientEmail)
	if d.ClientPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", d.ClientPhone)
	}

	b.WriteString("\nEVENT\n")
	fmt.Fprintf(&b, "Type: %s\n", d.EventType)
	if d.ServiceType != "" {
		fmt.Fprintf(&b, "Service style: %s\n", d.ServiceType)
	}
	fmt.Fprintf(&b, "Date: %s\n", d.EventDate)
	if d.EventTime != "" {
		fmt.Fprintf(&b, "Time: %s\n", d.EventTime)
	}
	fmt.Fprintf(&b, "Guests: %d\n", d.GuestCount)

	if len(d.AddOnNames) > 0 {
		b.WriteString("\nADD-ONS\n")
		for _, name := range d.AddOnNames {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	if d.DietaryNeeds != "" {
		b.WriteString("\nDIETARY\n")
		b.WriteString(d.DietaryNeeds)
		b.WriteString("\n")
	}

	if d.Notes != "" {
		b.WriteString("\nNOTES\n")
		b.WriteString(d.Notes)
		b.WriteString("\n")
	}

	if d.Estimate != nil {
		b.WriteString("\nESTIMATE\n")
		fmt.Fprintf(&b, "Event type: $%.2f\n", d.Estimate.EventTypePrice)
		fmt.Fprintf(&b, "Service style: $%.2f\n", d.Estimate.ServiceStylePrice)
		fmt.Fprintf(&b, "Per person: $%.2f\n", d.Estimate.PerPersonTotal)
		for _, line := range d.Estimate.AddOnBreakdown {
			fmt.Fprintf(&b, "%s: $%.2f\n", line.Name, line.Price)
		}
		if d.Estimate.MealSelectionPrice != 0 {
			fmt.Fprintf(&b, "Meal: $%.2f\n", d.Estimate.MealSelectionPrice)
		}
		fmt.Fprintf(&b, "Total: $%.2f\n", d.Estimate.Total)
	}

	return strings.TrimRight(b.String(), "\n")
}
