package domain

// Settings is the single free-form configuration record.
type Settings struct {
	SLAHours        int    `json:"slaHours"`
	ItemsPerPage    int    `json:"itemsPerPage"`
	Theme           string `json:"theme"`
	SheetWebhookURL string `json:"sheetWebhookUrl,omitempty"`
}

// DefaultSettings returns the seed values used when no settings record exists.
func DefaultSettings() Settings {
	return Settings{
		SLAHours:     48,
		ItemsPerPage: 10,
		Theme:        "light",
	}
}
