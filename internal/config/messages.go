package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	pkgconfig "github.com/kolsha/yousum/pkg/config"
)

// Messages holds every user-visible reply text the bot sends.
// Defaults can be overridden per-deployment through an optional YAML file
// (MESSAGES_FILE) and, for the access-denial text, the PLACEHOLDER_MESSAGE
// environment variable.
type Messages struct {
	// Greeting is the reply to the /start command.
	Greeting string `yaml:"greeting"`

	// Placeholder is sent to chats outside the allow-list.
	Placeholder string `yaml:"placeholder"`

	// NoLink is sent when a permitted message contains no recognizable video link.
	NoLink string `yaml:"no_link"`

	// Processing is the interim message edited in place once the summary arrives.
	Processing string `yaml:"processing"`

	// SummaryUnavailable is sent when the provider returns no summary.
	SummaryUnavailable string `yaml:"summary_unavailable"`

	// Failure is sent when summarization fails with an error.
	Failure string `yaml:"failure"`
}

// DefaultMessages returns the built-in reply texts.
func DefaultMessages() Messages {
	return Messages{
		Greeting:           "Hello! Send me a YouTube video link, and I will summarize it for you.",
		Placeholder:        "Sorry, this bot is not available in this chat. Ask @kolsha for access.",
		NoLink:             "Please send a valid YouTube video link (youtube.com or youtu.be format).",
		Processing:         "Processing your YouTube video...",
		SummaryUnavailable: "Sorry, I could not generate a summary for this video. Please try again later.",
		Failure:            "An error occurred while processing the video. Please check if the URL is valid and try again later.",
	}
}

// LoadMessages builds the reply texts: defaults, overlaid with the optional
// YAML file named by MESSAGES_FILE, then the PLACEHOLDER_MESSAGE variable.
// A missing MESSAGES_FILE variable is fine; a configured but unreadable or
// invalid file is an error, because a deployment that asked for custom texts
// should not silently run with the defaults.
func LoadMessages() (Messages, error) {
	messages := DefaultMessages()

	if path := os.Getenv("MESSAGES_FILE"); path != "" {
		// #nosec G304 -- path comes from the deployment's own environment, not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return Messages{}, fmt.Errorf("read messages file: %w", err)
		}

		var overrides Messages
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return Messages{}, fmt.Errorf("parse messages file: %w", err)
		}
		messages.apply(overrides)
	}

	messages.Placeholder = pkgconfig.GetEnvString("PLACEHOLDER_MESSAGE", messages.Placeholder)

	return messages, nil
}

// apply overlays every non-empty field of overrides onto m.
func (m *Messages) apply(overrides Messages) {
	if overrides.Greeting != "" {
		m.Greeting = overrides.Greeting
	}
	if overrides.Placeholder != "" {
		m.Placeholder = overrides.Placeholder
	}
	if overrides.NoLink != "" {
		m.NoLink = overrides.NoLink
	}
	if overrides.Processing != "" {
		m.Processing = overrides.Processing
	}
	if overrides.SummaryUnavailable != "" {
		m.SummaryUnavailable = overrides.SummaryUnavailable
	}
	if overrides.Failure != "" {
		m.Failure = overrides.Failure
	}
}
