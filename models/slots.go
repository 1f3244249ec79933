package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is the canonical identity of a bookable time of day, in minutes from midnight
// (e.g., 750 for 12:30). Labels are display text; two labels that parse to the same
// Slot refer to the same bookable window.
type Slot int

// ParseSlot converts a slot label such as "9:00", "09:00", "13:30" or "1:30 PM" into a Slot.
func ParseSlot(label string) (Slot, error) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == "" {
		return 0, fmt.Errorf("empty time slot")
	}

	meridiem := ""
	switch {
	case strings.HasSuffix(s, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(s, "PM"):
		meridiem = "PM"
	}
	if meridiem != "" {
		s = strings.TrimSpace(strings.TrimSuffix(s, meridiem))
	}

	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, fmt.Errorf("invalid time slot %q: expected H:MM", label)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || len(hh) > 2 {
		return 0, fmt.Errorf("invalid time slot %q: bad hour", label)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time slot %q: bad minutes", label)
	}

	switch meridiem {
	case "":
		if hours < 0 || hours > 23 {
			return 0, fmt.Errorf("invalid time slot %q: hour out of range", label)
		}
	default:
		if hours < 1 || hours > 12 {
			return 0, fmt.Errorf("invalid time slot %q: hour out of range", label)
		}
		hours %= 12
		if meridiem == "PM" {
			hours += 12
		}
	}
	return Slot(hours*60 + minutes), nil
}

// MustParseSlot is ParseSlot for labels already validated on write.
func MustParseSlot(label string) Slot {
	s, err := ParseSlot(label)
	if err != nil {
		panic(err)
	}
	return s
}

// String renders the slot as HH:MM.
func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", int(s)/60, int(s)%60)
}

// Minutes returns the offset from midnight in minutes.
func (s Slot) Minutes() int { return int(s) }

// ValidateSlotLabels checks every label parses and that no two labels name the same slot.
func ValidateSlotLabels(labels []string) error {
	seen := make(map[Slot]string, len(labels))
	for _, l := range labels {
		s, err := ParseSlot(l)
		if err != nil {
			return err
		}
		if prev, dup := seen[s]; dup {
			return fmt.Errorf("time slots %q and %q refer to the same time", prev, l)
		}
		seen[s] = l
	}
	return nil
}

// SlotSet is a set of canonical slots built from labels. Unparseable labels are ignored.
type SlotSet map[Slot]struct{}

// NewSlotSet builds a SlotSet from labels.
func NewSlotSet(labels []string) SlotSet {
	set := make(SlotSet, len(labels))
	for _, l := range labels {
		if s, err := ParseSlot(l); err == nil {
			set[s] = struct{}{}
		}
	}
	return set
}

// Has reports whether the label's canonical slot is in the set.
func (ss SlotSet) Has(label string) bool {
	s, err := ParseSlot(label)
	if err != nil {
		return false
	}
	_, ok := ss[s]
	return ok
}

// SubtractSlots returns nominal minus removed, preserving the order of nominal.
func SubtractSlots(nominal, removed []string) []string {
	drop := NewSlotSet(removed)
	out := make([]string, 0, len(nominal))
	for _, l := range nominal {
		if !drop.Has(l) {
			out = append(out, l)
		}
	}
	return out
}

// UnionSlots appends labels from extra that are not already in base (by canonical slot).
// The order of base is kept and new labels follow in the order given.
func UnionSlots(base, extra []string) []string {
	seen := NewSlotSet(base)
	out := append(make([]string, 0, len(base)+len(extra)), base...)
	for _, l := range extra {
		s, err := ParseSlot(l)
		if err != nil {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, l)
	}
	return out
}

// RemoveSlot drops every label that names the same slot as label.
func RemoveSlot(labels []string, label string) ([]string, bool) {
	target, err := ParseSlot(label)
	if err != nil {
		return labels, false
	}
	out := make([]string, 0, len(labels))
	removed := false
	for _, l := range labels {
		if s, err := ParseSlot(l); err == nil && s == target {
			removed = true
			continue
		}
		out = append(out, l)
	}
	return out, removed
}
