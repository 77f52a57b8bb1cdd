package dto

import "nutrilokal-be/pkg/whatsapp"

// WhatsAppSettingsRequest carries the caller's forwarding settings. They are
// used for one request and never stored.
type WhatsAppSettingsRequest struct {
	Enabled     bool   `json:"enabled"`
	PhoneNumber string `json:"phone_number" validate:"required_if=Enabled true,omitempty,wa_phone"`
	ApiKey      string `json:"api_key" validate:"required_if=Enabled true"`
	DeviceToken string `json:"device_token"`
}

func (r *WhatsAppSettingsRequest) ToConfig() whatsapp.Config {
	return whatsapp.Config{
		Enabled:     r.Enabled,
		PhoneNumber: r.PhoneNumber,
		APIKey:      r.ApiKey,
		DeviceToken: r.DeviceToken,
	}
}

type ValidateWhatsAppSettingsResponse struct {
	Valid       bool `json:"valid"`
	WillForward bool `json:"will_forward"`
}

type TestWhatsAppConnectionRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,wa_phone"`
	ApiKey      string `json:"api_key" validate:"required"`
	DeviceToken string `json:"device_token"`
}

func (r *TestWhatsAppConnectionRequest) ToConfig() whatsapp.Config {
	return whatsapp.Config{
		Enabled:     true,
		PhoneNumber: r.PhoneNumber,
		APIKey:      r.ApiKey,
		DeviceToken: r.DeviceToken,
	}
}

type TestWhatsAppConnectionResponse struct {
	Connected bool `json:"connected"`
}

type ForwardLogResponse struct {
	Id        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
