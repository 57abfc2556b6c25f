package notification

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Channel identifies a notification delivery channel.
type Channel int

const (
	// UnknownChannel represents an invalid or undefined channel.
	UnknownChannel Channel = iota

	// Log writes the notification to the application log. Always available
	// and used as the baseline channel in every deployment.
	Log

	// Email sends the notification by email.
	Email

	// SMS sends the notification by text message.
	SMS

	// Push sends a mobile push notification.
	Push
)

func getChannelStrings() map[Channel]string {
	return map[Channel]string{
		UnknownChannel: "UNKNOWN",
		Log:            "LOG",
		Email:          "EMAIL",
		SMS:            "SMS",
		Push:           "PUSH",
	}
}

// ParseChannel converts a wire-format channel name to a Channel.
func ParseChannel(s string) (Channel, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for channel, str := range getChannelStrings() {
		if channel != UnknownChannel && str == name {
			return channel, nil
		}
	}
	return UnknownChannel, errs.NewValueIsInvalidError("notification channel " + s)
}

// Validate checks if the Channel value is a defined, non-Unknown channel.
func (c Channel) Validate() error {
	if _, ok := getChannelStrings()[c]; !ok || c == UnknownChannel {
		return errs.NewValueIsInvalidError("notification channel")
	}
	return nil
}

// String returns the wire-format name of the channel.
func (c Channel) String() string {
	if str, ok := getChannelStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}
