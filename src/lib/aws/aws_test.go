package aws

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"portfolio/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticConfig() aws.Config {
	return aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	}
}

func TestPresignUpload(t *testing.T) {
	p := NewS3Presigner(staticConfig(), "portfolio-uploads")

	up, err := p.PresignUpload(context.Background(), "uploads/1-abc.mp4", "video/mp4", 1024, 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "PUT", up.Method)
	assert.Equal(t, "uploads/1-abc.mp4", up.Key)
	assert.Equal(t, "video/mp4", up.Headers["Content-Type"])

	u, err := url.Parse(up.URL)
	require.NoError(t, err)
	assert.Contains(t, u.Host, "portfolio-uploads")
	assert.Contains(t, u.Path, "uploads/1-abc.mp4")
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.Contains(t, u.Query().Get("X-Amz-SignedHeaders"), "content-type")
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSender(t *testing.T) {
	fake := &fakeSES{}
	s := NewSESSender(fake, "site@example.com")

	err := s.Send(context.Background(), &lib.SendMailInput{
		FromName: "Portfolio",
		To:       []string{"owner@example.com"},
		ReplyTo:  "client@example.com",
		Subject:  "Portfolio Inquiry: Hi",
		Body:     "<p>Hi</p>",
		Html:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, `"Portfolio" <site@example.com>`, aws.ToString(fake.input.Source))
	assert.Equal(t, []string{"owner@example.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, []string{"client@example.com"}, fake.input.ReplyToAddresses)
	assert.Equal(t, "<p>Hi</p>", aws.ToString(fake.input.Message.Body.Html.Data))
	assert.Nil(t, fake.input.Message.Body.Text)

	fake.err = errors.New("throttled")
	assert.ErrorContains(t, s.Send(context.Background(), &lib.SendMailInput{To: []string{"a@example.com"}}), "throttled")
}

type fakeSQS struct {
	sent *sqs.SendMessageInput
}

func (f *fakeSQS) GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String("https://sqs.us-east-1.amazonaws.com/123/" + aws.ToString(params.QueueName))}, nil
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.sent = params
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestSQSMailQueue(t *testing.T) {
	fake := &fakeSQS{}
	q, err := NewSQSMailQueue(context.Background(), fake, "emails")
	require.NoError(t, err)

	require.NoError(t, q.Send(context.Background(), &lib.SendMailInput{
		From:    "site@example.com",
		To:      []string{"owner@example.com"},
		Subject: "Daily digest",
		Body:    "2 pending",
	}))
	assert.Equal(t, "https://sqs.us-east-1.amazonaws.com/123/emails", aws.ToString(fake.sent.QueueUrl))

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(fake.sent.MessageBody)), &body))
	assert.Equal(t, "Daily digest", body["subject"])
	assert.Equal(t, false, body["html"])
}

func TestSQSMailQueueAcceptsURL(t *testing.T) {
	q, err := NewSQSMailQueue(context.Background(), &fakeSQS{}, "https://sqs.eu-west-1.amazonaws.com/1/mail")
	require.NoError(t, err)
	assert.Equal(t, "https://sqs.eu-west-1.amazonaws.com/1/mail", q.queueURL)
}

type fakeSecrets struct {
	value string
}

func (f *fakeSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	if f.value == "" {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.value)}, nil
}

func TestGetSecretString(t *testing.T) {
	ctx := context.Background()

	v, err := GetSecretString(ctx, &fakeSecrets{value: " plain-token\n"}, "admin", "ADMIN_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "plain-token", v)

	v, err = GetSecretString(ctx, &fakeSecrets{value: `{"ADMIN_TOKEN":"kv-token"}`}, "admin", "ADMIN_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "kv-token", v)

	_, err = GetSecretString(ctx, &fakeSecrets{value: `{"OTHER":"x"}`}, "admin", "ADMIN_TOKEN")
	assert.Error(t, err)

	_, err = GetSecretString(ctx, &fakeSecrets{}, "admin", "ADMIN_TOKEN")
	assert.ErrorContains(t, err, "reading secret admin")
}
