// internal/common/aws/clients.go

// Package aws builds the SES and SNS clients behind outreach delivery and
// quota alerts. Both ride one resolved credential chain, so startup only
// walks the provider chain once.
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Clients bundles the service clients the notifier needs.
type Clients struct {
	SES *SESClient
	SNS *SNSClient
}

func NewClients(ctx context.Context, region string) (*Clients, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &Clients{
		SES: &SESClient{client: ses.NewFromConfig(cfg)},
		SNS: &SNSClient{client: sns.NewFromConfig(cfg)},
	}, nil
}

// SESClient narrows SES to the one call outreach email makes.
type SESClient struct {
	client *ses.Client
}

func (s *SESClient) SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return s.client.SendEmail(ctx, input, optFns...)
}

// SNSClient narrows SNS to publishing, which covers both the SMS fallback
// and the quota alert topic.
type SNSClient struct {
	client *sns.Client
}

func (s *SNSClient) Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return s.client.Publish(ctx, input, optFns...)
}
