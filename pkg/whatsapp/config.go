package whatsapp

import (
	"errors"
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

var (
	ErrInvalidPhoneNumber = errors.New("nomor WhatsApp tidak valid")
	ErrMissingAPIKey      = errors.New("API key Fonnte wajib diisi")
)

// Config is supplied by the caller on every request. There are no defaults:
// without a number and a key nothing is ever sent.
type Config struct {
	Enabled     bool
	PhoneNumber string
	APIKey      string
	DeviceToken string
}

// ValidPhoneNumber reports whether s looks like a WhatsApp number: 10 to 15
// digits with an optional leading plus.
func ValidPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// Validate applies the settings rules. A disabled config is always valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !ValidPhoneNumber(c.PhoneNumber) {
		return ErrInvalidPhoneNumber
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Ready reports whether a forward should be attempted at all.
func (c Config) Ready() bool {
	return c.Enabled && c.Validate() == nil
}

// target is the number in the form the gateway expects, without the plus.
func (c Config) target() string {
	return strings.TrimPrefix(c.PhoneNumber, "+")
}
