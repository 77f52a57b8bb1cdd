package service

import (
	"context"

	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/pkg/apperror"
	"nutrilokal-be/internal/pkg/logger"
	"nutrilokal-be/pkg/whatsapp"
)

type IWhatsAppService interface {
	ValidateSettings(ctx context.Context, request *dto.WhatsAppSettingsRequest) (*dto.ValidateWhatsAppSettingsResponse, error)
	TestConnection(ctx context.Context, request *dto.TestWhatsAppConnectionRequest) (*dto.TestWhatsAppConnectionResponse, error)
	ForwardLogs(ctx context.Context, level string, limit, offset int) ([]*dto.ForwardLogResponse, error)
}

type whatsAppService struct {
	forwarder  whatsapp.Forwarder
	forwardLog logger.ILogger
}

// NewWhatsAppService backs the settings page. forwardLog is the log the queue
// consumer writes delivery outcomes to.
func NewWhatsAppService(forwarder whatsapp.Forwarder, forwardLog logger.ILogger) IWhatsAppService {
	return &whatsAppService{
		forwarder:  forwarder,
		forwardLog: forwardLog,
	}
}

func (s *whatsAppService) ValidateSettings(ctx context.Context, request *dto.WhatsAppSettingsRequest) (*dto.ValidateWhatsAppSettingsResponse, error) {
	cfg := request.ToConfig()
	if err := cfg.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	return &dto.ValidateWhatsAppSettingsResponse{
		Valid:       true,
		WillForward: cfg.Ready(),
	}, nil
}

// TestConnection reports a gateway failure as Connected=false rather than an
// error; the settings page shows it as a failed test.
func (s *whatsAppService) TestConnection(ctx context.Context, request *dto.TestWhatsAppConnectionRequest) (*dto.TestWhatsAppConnectionResponse, error) {
	cfg := request.ToConfig()
	if err := cfg.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	if err := whatsapp.TestConnection(ctx, s.forwarder, cfg); err != nil {
		s.forwardLog.Warn("WhatsAppService", "Connection test failed", map[string]interface{}{
			"target": maskPhone(cfg.PhoneNumber),
			"error":  err.Error(),
		})
		return &dto.TestWhatsAppConnectionResponse{Connected: false}, nil
	}

	s.forwardLog.Info("WhatsAppService", "Connection test succeeded", map[string]interface{}{
		"target": maskPhone(cfg.PhoneNumber),
	})
	return &dto.TestWhatsAppConnectionResponse{Connected: true}, nil
}

func (s *whatsAppService) ForwardLogs(ctx context.Context, level string, limit, offset int) ([]*dto.ForwardLogResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.forwardLog.GetLogs(level, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ForwardLogResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, &dto.ForwardLogResponse{
			Id:        e.Id,
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Message:   e.Message,
			Details:   e.Details,
		})
	}
	return result, nil
}
