package models

// Badge is the visual representation of a status value. The frontend renders
// the label with the named tone; it never interprets raw status strings itself.
type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

// OrderCallBadge maps an order's call status to its badge. The mapping is
// total: unknown values render as a neutral "Unknown" badge.
func OrderCallBadge(status string) Badge {
	switch status {
	case CallStatusCompleted:
		return Badge{Label: "Completed", Tone: "green"}
	case CallStatusScheduled:
		return Badge{Label: "Scheduled", Tone: "violet"}
	case CallStatusNotScheduled:
		return Badge{Label: "Unscheduled", Tone: "gray"}
	default:
		return Badge{Label: "Unknown", Tone: "neutral"}
	}
}

// CallBadge maps a call's status to its badge
func CallBadge(status string) Badge {
	switch status {
	case CallStateCompleted:
		return Badge{Label: "Completed", Tone: "green"}
	case CallStateInProgress:
		return Badge{Label: "In Progress", Tone: "blue"}
	case CallStateScheduled:
		return Badge{Label: "Scheduled", Tone: "violet"}
	case CallStateFailed:
		return Badge{Label: "Failed", Tone: "red"}
	default:
		return Badge{Label: "Unknown", Tone: "neutral"}
	}
}

// AssistantBadge maps an assistant's status to its badge. Draft assistants
// display as inactive, and so does anything unrecognized.
func AssistantBadge(status string) Badge {
	switch status {
	case AssistantStatusActive:
		return Badge{Label: "Active", Tone: "green"}
	case AssistantStatusInactive, AssistantStatusDraft:
		return Badge{Label: "Inactive", Tone: "gray"}
	default:
		return Badge{Label: "Inactive", Tone: "gray"}
	}
}
