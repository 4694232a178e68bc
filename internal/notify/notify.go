// internal/notify/notify.go

// Package notify delivers outreach emails through SES and operational
// alerts through SNS.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pitchforge/internal/common/metrics"
	"pitchforge/internal/composer/assembler"
	"pitchforge/internal/composer/contentfit"
	"pitchforge/internal/models"
	"pitchforge/internal/render"
)

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)

var (
	ErrSendFailed      = errors.New("NOTIFICATION_SEND_FAILED")
	ErrNotOutreach     = errors.New("NOT_OUTREACH_DOCUMENT")
	ErrSectionNotFound = errors.New("SECTION_NOT_FOUND")
	ErrNoRecipient     = errors.New("NO_RECIPIENT")
)

// Interfaces over the AWS clients so tests can swap in function mocks.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Config struct {
	EmailEnabled  bool
	SMSEnabled    bool
	FromEmail     string
	AlertsEnabled bool
	AlertTopicARN string
}

// Recipient is where an outreach email goes. Phone is optional and only
// used for the SMS fallback when the email channel fails.
type Recipient struct {
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Sender delivers one outreach email per call. Sequences are dripped by the
// caller, one section at a time.
type Sender struct {
	config   Config
	ses      SESService
	sns      SNSService
	renderer *render.Markdown
	logger   *zap.Logger
}

func NewSender(cfg Config, sesClient SESService, snsClient SNSService, renderer *render.Markdown, logger *zap.Logger) *Sender {
	if renderer == nil {
		renderer = render.NewMarkdown(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{
		config:   cfg,
		ses:      sesClient,
		sns:      snsClient,
		renderer: renderer,
		logger:   logger,
	}
}

// SendResult reports what one SendOutreach call did.
type SendResult struct {
	NotificationID string `json:"notificationId"`
	SectionID      string `json:"sectionId"`
	Recipient      string `json:"recipient"`
	Channel        string `json:"channel,omitempty"`
	Status         string `json:"status"`
	SentAt         string `json:"sentAt"`
}

// SendOutreach delivers one section of an outreach document. An empty
// sectionID sends the first email in the sequence. When the email channel
// fails and the recipient has a phone number, delivery falls back to a
// short SMS. With both channels disabled the call reports a disabled
// status instead of failing, so dry environments exercise the full path.
func (s *Sender) SendOutreach(ctx context.Context, doc *assembler.ComposedDocument, recipient Recipient, sectionID string) (*SendResult, error) {
	if doc == nil || doc.Level != models.LevelOutreach {
		return nil, ErrNotOutreach
	}
	if recipient.Email == "" {
		return nil, ErrNoRecipient
	}
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("%w: document has no sections", ErrSectionNotFound)
	}

	section := doc.Sections[0]
	if sectionID != "" {
		found := false
		for _, candidate := range doc.Sections {
			if candidate.ID == sectionID {
				section = candidate
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
		}
	}

	result := &SendResult{
		NotificationID: uuid.New().String(),
		SectionID:      section.ID,
		Recipient:      recipient.Email,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	if !s.config.EmailEnabled {
		s.logger.Info("email delivery disabled, skipping send",
			zap.String("sectionId", section.ID),
			zap.String("recipient", recipient.Email))
		result.Status = StatusDisabled
		return result, nil
	}

	subject := contentfit.Coerce(section.Data["subject"])
	if subject == "" {
		subject = "A note for your business"
	}
	textBody := s.renderer.RenderBody(section)
	htmlBody, err := render.ToHTML(textBody)
	if err != nil {
		return nil, fmt.Errorf("%w: render email: %v", ErrSendFailed, err)
	}

	if err := s.sendEmail(ctx, recipient.Email, subject, textBody, htmlBody); err != nil {
		s.logger.Error("email send failed",
			zap.String("sectionId", section.ID),
			zap.String("recipient", recipient.Email),
			zap.Error(err))

		if s.config.SMSEnabled && recipient.Phone != "" && s.sns != nil {
			if smsErr := s.sendSMS(ctx, recipient.Phone, smsText(subject, section)); smsErr != nil {
				s.logger.Error("sms fallback failed",
					zap.String("sectionId", section.ID),
					zap.Error(smsErr))
				return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
			}
			metrics.OutreachSends.WithLabelValues("sms").Inc()
			s.logger.Info("outreach delivered by sms fallback",
				zap.String("notificationId", result.NotificationID),
				zap.String("sectionId", section.ID))
			result.Channel = "sms"
			result.Status = StatusSent
			return result, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	metrics.OutreachSends.WithLabelValues("email").Inc()
	s.logger.Info("outreach email sent",
		zap.String("notificationId", result.NotificationID),
		zap.String("sectionId", section.ID))
	result.Channel = "email"
	result.Status = StatusSent
	return result, nil
}

// QuotaAlert publishes an operational alert when a user exhausts the
// monthly quota. Alert failures are logged, never surfaced; alerting must
// not affect the request that tripped it.
func (s *Sender) QuotaAlert(ctx context.Context, userID string, used, limit int) {
	if !s.config.AlertsEnabled || s.sns == nil || s.config.AlertTopicARN == "" {
		return
	}

	message := fmt.Sprintf("user %s reached the monthly pitch quota (%d/%d)", userID, used, limit)
	_, err := s.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.config.AlertTopicARN),
		Subject:  aws.String("pitch quota reached"),
		Message:  aws.String(message),
	})
	if err != nil {
		s.logger.Error("quota alert publish failed",
			zap.String("userId", userID),
			zap.Error(err))
		return
	}
	metrics.OutreachSends.WithLabelValues("sns").Inc()
}

func (s *Sender) sendEmail(ctx context.Context, to, subject, textBody, htmlBody string) error {
	_, err := s.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(textBody)},
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
		Source: aws.String(s.config.FromEmail),
	})
	return err
}

func (s *Sender) sendSMS(ctx context.Context, to, message string) error {
	_, err := s.sns.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}

// smsText compresses an email into one SMS-sized line.
func smsText(subject string, section assembler.Section) string {
	sender := contentfit.Coerce(section.Data["senderCompany"])
	if sender == "" {
		sender = "our team"
	}
	return contentfit.Fit(fmt.Sprintf("%s: %s put together a plan for you. Reply here to see it.", subject, sender), contentfit.LimitSMS)
}
