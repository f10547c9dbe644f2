// Package email ties inbox selection, admission and the delivery transport
// into the send lifecycle of a single outbound message.
package email

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"github.com/reachforge/sendgate/config"
)

const (
	// EmailProviderLog is the provider name for the LogTransport implementation
	EmailProviderLog = "LOG"
	// EmailProviderAWSSES is the provider name for the SES-backed transport, the default
	EmailProviderAWSSES = "AWS_SES"
)

// OutboundMessage is one email handed to the transport for delivery.
type OutboundMessage struct {
	SenderAccountID string
	From            string
	To              string
	Subject         string
	HTML            string
	CampaignID      string
	SequenceStepID  string
}

// Transport delivers one outbound email through a sending identity.
type Transport interface {
	SendEmail(ctx context.Context, msg OutboundMessage) error
}

// NewTransport returns an initialized Transport implementation according to
// the provider configured in cfg.EmailProvider.
func NewTransport(ctx context.Context, cfg *config.Config) (Transport, error) {
	switch cfg.EmailProvider {
	case EmailProviderLog:
		return &LogTransport{}, nil
	case EmailProviderAWSSES:
		ses, err := NewSES(ctx, cfg.SesMaxBackoffDelay, cfg.SesMaxAttempts)
		if err != nil {
			return nil, err
		}
		return &SESTransport{ses: ses}, nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}

// LogTransport is a Transport implementation that logs messages to glog
// instead of delivering them. Used for local development.
type LogTransport struct{}

// SendEmail simulates delivery by logging the message.
func (l *LogTransport) SendEmail(ctx context.Context, msg OutboundMessage) error {
	glog.Infof("LogTransport.SendEmail called with: from: '%s', to: '%s', subject: '%s', senderAccountID: '%s'",
		msg.From, msg.To, msg.Subject, msg.SenderAccountID)
	return nil
}

// SESTransport delivers email through AWS SES.
type SESTransport struct {
	ses *SES
}

// SendEmail delivers the message via the AWS SES API using the sender
// account's own address as the source.
func (s *SESTransport) SendEmail(ctx context.Context, msg OutboundMessage) error {
	_, err := s.ses.SendEmail(ctx, msg.From, []string{msg.To}, msg.Subject, msg.HTML)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %v", err)
	}
	return nil
}
