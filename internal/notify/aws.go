package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// AWSNotifier sends SMS through SNS and email through SES.
type AWSNotifier struct {
	sns      *sns.Client
	ses      *ses.Client
	topicARN string
	sender   string
}

func NewAWSNotifier(ctx context.Context, region, topicARN, sender string) (*AWSNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &AWSNotifier{
		sns:      sns.NewFromConfig(cfg),
		ses:      ses.NewFromConfig(cfg),
		topicARN: topicARN,
		sender:   sender,
	}, nil
}

// SendSMS publishes directly to the number; without one it falls back to the
// configured topic.
func (n *AWSNotifier) SendSMS(ctx context.Context, phoneNumber, message string) error {
	in := &sns.PublishInput{Message: aws.String(message)}
	if phoneNumber != "" {
		in.PhoneNumber = aws.String(phoneNumber)
	} else {
		in.TopicArn = aws.String(n.topicARN)
	}
	_, err := n.sns.Publish(ctx, in)
	return err
}

func (n *AWSNotifier) SendEmail(ctx context.Context, to, subject, message string) error {
	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.sender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(message)},
			},
		},
	})
	return err
}
