package email

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type MockSESClient struct {
	sender   string
	to       []string
	subject  string
	htmlBody string

	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESClient) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.sender = *params.Source
	m.to = params.Destination.ToAddresses
	m.subject = *params.Message.Subject.Data
	m.htmlBody = *params.Message.Body.Html.Data

	return m.SendEmailFunc(ctx, params, optFns...)
}

func TestSendEmail_Success(t *testing.T) {
	sender := "inbox@example.com"
	to := []string{"lead@example.com"}
	subject := "subject"
	htmlBody := "<h1>HTML body</h1>"

	testMessageID := "test-message-id"

	mockClient := &MockSESClient{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{
				MessageId: aws.String(testMessageID),
			}, nil
		},
	}
	mockedSES := SES{sesClient: mockClient}

	messageID, err := mockedSES.SendEmail(context.Background(), sender, to, subject, htmlBody)
	assert.NoError(t, err)
	assert.Equal(t, testMessageID, messageID)
	assert.Equal(t, sender, mockClient.sender)
	assert.Equal(t, to, mockClient.to)
	assert.Equal(t, subject, mockClient.subject)
	assert.Equal(t, htmlBody, mockClient.htmlBody)
}

func TestSendEmail_Failure(t *testing.T) {
	errorText := "failed to send email"

	mockClient := &MockSESClient{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New(errorText)
		},
	}
	mockedSES := SES{sesClient: mockClient}

	_, err := mockedSES.SendEmail(context.Background(), "inbox@example.com", []string{"lead@example.com"}, "subject", "<p>body</p>")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), errorText)
}

func TestSESTransportSendEmail(t *testing.T) {
	mockClient := &MockSESClient{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{MessageId: aws.String("id")}, nil
		},
	}
	transport := &SESTransport{ses: &SES{sesClient: mockClient}}

	err := transport.SendEmail(context.Background(), OutboundMessage{
		SenderAccountID: "a",
		From:            "inbox@example.com",
		To:              "lead@example.com",
		Subject:         "subject",
		HTML:            "<p>body</p>",
	})

	assert.NoError(t, err)
	assert.Equal(t, "inbox@example.com", mockClient.sender)
	assert.Equal(t, []string{"lead@example.com"}, mockClient.to)
}
