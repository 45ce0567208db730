package ui

// Config contains TUI-specific configuration.
type Config struct {
	// Server connection for the translation endpoints.
	BaseURL   string
	PagePath  string
	CSRFToken string `env:"DOCVOICE_CSRF_TOKEN"`

	// Language requests a translation as soon as the program starts.
	Language string

	// Rendering
	GlamourStyle    string `env:"GLAMOUR_STYLE"`
	GlamourMaxWidth uint
	GlamourEnabled  bool `env:"DOCVOICE_ENABLE_GLAMOUR" envDefault:"true"`

	// Speech
	SpeechRate   float64
	SpeechPitch  float64
	SpeechVolume float64
}
