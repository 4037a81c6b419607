package model

// Settings holds per-user portal preferences. They are persisted locally
// as a single JSON blob, read at startup and written on explicit save.
// There is no schema versioning; unknown fields are dropped on rewrite.
type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Appearance    AppearanceSettings   `json:"appearance"`
}

type NotificationSettings struct {
	Email      bool `json:"email"`
	Push       bool `json:"push"`
	SMS        bool `json:"sms"`
	Newsletter bool `json:"newsletter"`
}

type PrivacySettings struct {
	ProfileVisible bool `json:"profileVisible"`
	ShowEmail      bool `json:"showEmail"`
	ShowPhone      bool `json:"showPhone"`
}

type AppearanceSettings struct {
	Theme      string `json:"theme"`
	Language   string `json:"language"`
	DateFormat string `json:"dateFormat"`
	TimeZone   string `json:"timeZone"`
}

// DefaultSettings mirrors the defaults a fresh profile starts with.
func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{
			Email:      true,
			Push:       false,
			SMS:        false,
			Newsletter: true,
		},
		Privacy: PrivacySettings{
			ProfileVisible: true,
			ShowEmail:      false,
			ShowPhone:      false,
		},
		Appearance: AppearanceSettings{
			Theme:      "light",
			Language:   "en",
			DateFormat: "MM/DD/YYYY",
			TimeZone:   "America/New_York",
		},
	}
}
