package item

import (
	"strings"
)

type Status string

const (
	StatusInbox        Status = "inbox"
	StatusNextAction   Status = "next_action"
	StatusWaitingFor   Status = "waiting_for"
	StatusSomedayMaybe Status = "someday_maybe"
	StatusReference    Status = "reference"
	StatusProject      Status = "project"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
)

type statusInfo struct {
	label string
	emoji string
}

var statuses = map[Status]statusInfo{
	StatusInbox:        {label: "Inbox", emoji: "📥"},
	StatusNextAction:   {label: "Next Action", emoji: "⚡"},
	StatusWaitingFor:   {label: "Waiting For", emoji: "⏳"},
	StatusSomedayMaybe: {label: "Someday/Maybe", emoji: "💭"},
	StatusReference:    {label: "Reference", emoji: "🗄️"},
	StatusProject:      {label: "Project", emoji: "💼"},
	StatusCompleted:    {label: "Completed", emoji: "✅"},
	StatusCancelled:    {label: "Cancelled", emoji: "🗑️"},
}

// AllStatuses lists statuses in workflow order.
func AllStatuses() []Status {
	return []Status{
		StatusInbox,
		StatusNextAction,
		StatusWaitingFor,
		StatusSomedayMaybe,
		StatusReference,
		StatusProject,
		StatusCompleted,
		StatusCancelled,
	}
}

func normalizeStatusKey(status string) string {
	normalized := strings.ToLower(strings.TrimSpace(status))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "/", "_")
	return normalized
}

// ParseStatus maps a raw status string, including the short forms accepted by
// the query language, to a Status. The bool is false for unknown input.
func ParseStatus(status string) (Status, bool) {
	switch normalizeStatusKey(status) {
	case "", "inbox":
		return StatusInbox, true
	case "next", "action", "next_action", "nextaction":
		return StatusNextAction, true
	case "waiting", "waiting_for", "waitingfor", "delegated":
		return StatusWaitingFor, true
	case "someday", "maybe", "someday_maybe":
		return StatusSomedayMaybe, true
	case "reference", "ref":
		return StatusReference, true
	case "project":
		return StatusProject, true
	case "completed", "done":
		return StatusCompleted, true
	case "cancelled", "canceled":
		return StatusCancelled, true
	default:
		return StatusInbox, false
	}
}

// NormalizeStatus standardizes a raw status string into a Status.
func NormalizeStatus(status string) Status {
	normalized, _ := ParseStatus(status)
	return normalized
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	_, ok := statuses[s]
	return ok
}

func StatusEmoji(status Status) string {
	if info, ok := statuses[status]; ok {
		return info.emoji
	}
	return ""
}

func StatusLabel(status Status) string {
	if info, ok := statuses[status]; ok {
		return info.label
	}
	// fall back to the raw string if unknown
	return string(status)
}

func StatusDisplay(status Status) string {
	label := StatusLabel(status)
	emoji := StatusEmoji(status)
	if emoji == "" {
		return label
	}
	return label + " " + emoji
}
