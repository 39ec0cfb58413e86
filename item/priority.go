package item

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Priority is an ordered urgency level; a higher value is more urgent.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityNormal Priority = 2
	PriorityHigh   Priority = 3
	PriorityUrgent Priority = 4
)

// Priority validation constants
const (
	MinPriority     = PriorityLow
	MaxPriority     = PriorityUrgent
	DefaultPriority = PriorityNormal
)

var priorityNames = map[Priority]string{
	PriorityLow:    "low",
	PriorityNormal: "normal",
	PriorityHigh:   "high",
	PriorityUrgent: "urgent",
}

var priorityIndicators = map[Priority]string{
	PriorityLow:    "🔵",
	PriorityNormal: "⚪",
	PriorityHigh:   "🟡",
	PriorityUrgent: "🔴",
}

// ParsePriority accepts a level name ("high") or its number ("3").
func ParsePriority(s string) (Priority, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range priorityNames {
		if name == s {
			return p, true
		}
	}
	if n, err := strconv.Atoi(s); err == nil && IsValidPriority(Priority(n)) {
		return Priority(n), true
	}
	return DefaultPriority, false
}

func IsValidPriority(p Priority) bool {
	return p >= MinPriority && p <= MaxPriority
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return strconv.Itoa(int(p))
}

// Indicator returns the colored dot shown next to a priority.
func (p Priority) Indicator() string {
	return priorityIndicators[p]
}

// PriorityValue decodes a YAML priority written either as a name or a number.
type PriorityValue Priority

func (pv *PriorityValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("priority must be a scalar, got %v", value.Kind)
	}
	p, ok := ParsePriority(value.Value)
	if !ok {
		// invalid values are defaulted by the loader
		*pv = 0
		return nil
	}
	*pv = PriorityValue(p)
	return nil
}

func (pv PriorityValue) MarshalYAML() (interface{}, error) {
	return Priority(pv).String(), nil
}

// Energy is the effort an item needs. The zero value means not set, which the
// query language calls "normal".
type Energy string

const (
	EnergyNone   Energy = ""
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// ParseEnergy accepts low/medium/high, and normal or empty for unset.
func ParseEnergy(s string) (Energy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "none":
		return EnergyNone, true
	case "low":
		return EnergyLow, true
	case "medium", "med":
		return EnergyMedium, true
	case "high":
		return EnergyHigh, true
	default:
		return EnergyNone, false
	}
}

func (e Energy) String() string {
	if e == EnergyNone {
		return "normal"
	}
	return string(e)
}
