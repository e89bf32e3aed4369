// Package twilio delivers SMS notifications through the Twilio REST API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/salonworks/booking-api/internal/config"
	"github.com/salonworks/booking-api/internal/domain"
)

// smsChannelInfo is the expected shape of an SMS notification's
// channel_info payload.
type smsChannelInfo struct {
	PhoneNumber string `json:"phone_number"`
}

// messageCreator is the slice of the Twilio client the sender uses.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender delivers notifications as SMS messages via Twilio. It
// implements service.Sender for the sms notification type.
type SMSSender struct {
	api        messageCreator
	fromNumber string
}

// NewSMSSender creates an SMSSender from the Twilio configuration.
func NewSMSSender(cfg config.TwilioConfig) (*SMSSender, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil, fmt.Errorf("twilio account sid, auth token, and from number are required")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &SMSSender{
		api:        client.Api,
		fromNumber: cfg.FromNumber,
	}, nil
}

// Send delivers the notification's message to the phone number named in
// its channel_info. Returns the Twilio message SID as the provider
// response.
func (s *SMSSender) Send(ctx context.Context, notification *domain.Notification) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var info smsChannelInfo
	if len(notification.ChannelInfo) == 0 {
		return "", fmt.Errorf("sms notification %s has no channel_info", notification.ID)
	}
	if err := json.Unmarshal(notification.ChannelInfo, &info); err != nil {
		return "", fmt.Errorf("invalid channel_info for notification %s: %w", notification.ID, err)
	}
	if info.PhoneNumber == "" {
		return "", fmt.Errorf("sms notification %s has no phone_number in channel_info", notification.ID)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(info.PhoneNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(notification.Message)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send failed: %w", err)
	}

	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "accepted", nil
}
