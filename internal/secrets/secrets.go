// Package secrets reads provider credentials at process start. The core
// never logs a secret value; it only ever logs whether one was present.
package secrets

import "os"

// Secrets holds the tokens the acquisition and (external) notifier
// collaborators need. Only ProviderAToken is consumed by the core itself.
type Secrets struct {
	ProviderAToken    string
	MessagingBotToken string
	MessagingChannel  string
}

// Load reads secrets from the process environment once at startup.
func Load() Secrets {
	return Secrets{
		ProviderAToken:    os.Getenv("DMA_PROVIDER_A_TOKEN"),
		MessagingBotToken: os.Getenv("DMA_MESSAGING_BOT_TOKEN"),
		MessagingChannel:  os.Getenv("DMA_MESSAGING_CHANNEL"),
	}
}

// HasProviderAToken reports whether the keyed EOD provider can be called.
func (s Secrets) HasProviderAToken() bool {
	return s.ProviderAToken != ""
}
