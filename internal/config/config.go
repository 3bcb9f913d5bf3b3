package config

import (
	"errors"
	"os"
	"strings"
)

// Config contains runtime configuration required by the service.
type Config struct {
	Port            string
	ResendAPIKey    string // notifier API key
	ContactFrom     string // sender address for notification emails
	ContactTo       string // chef's inbox
	ChallengeSecret string // Turnstile secret; empty disables the challenge check
	FrontendURL     string // marketing site origin, used for CORS
	Debug           bool   // verbose diagnostic logging
}

// Load reads required values from environment variables. The notifier key
// and destination address are mandatory; everything else has a sane local
// default. An absent TURNSTILE_SECRET_KEY disables challenge verification
// rather than failing, so local dev works without a Turnstile account.
func Load() (Config, error) {
	apiKey := strings.TrimSpace(os.Getenv("RESEND_API_KEY"))
	if apiKey == "" {
		return Config{}, errors.New("RESEND_API_KEY required")
	}

	to := strings.TrimSpace(os.Getenv("CONTACT_TO"))
	if to == "" {
		return Config{}, errors.New("CONTACT_TO required")
	}

	from := strings.TrimSpace(os.Getenv("CONTACT_FROM"))
	if from == "" {
		from = "Table Créole <contact@tablecreole.com>"
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	frontendURL := strings.TrimSpace(os.Getenv("FRONTEND_URL"))
	if frontendURL == "" {
		frontendURL = "http://localhost:4321"
	}

	return Config{
		Port:            port,
		ResendAPIKey:    apiKey,
		ContactFrom:     from,
		ContactTo:       to,
		ChallengeSecret: strings.TrimSpace(os.Getenv("TURNSTILE_SECRET_KEY")),
		FrontendURL:     frontendURL,
		Debug:           os.Getenv("DEBUG") == "true",
	}, nil
}
