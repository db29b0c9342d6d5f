package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"portfolio/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type SQSAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSMailQueue hands outgoing mail to a queue drained by a separate mail worker.
type SQSMailQueue struct {
	client   SQSAPI
	queueURL string
}

func NewSQSClient(cfg aws.Config) *sqs.Client {
	return sqs.NewFromConfig(cfg)
}

// NewSQSMailQueue accepts either a queue URL or a queue name to resolve.
func NewSQSMailQueue(ctx context.Context, client SQSAPI, queue string) (*SQSMailQueue, error) {
	if strings.HasPrefix(queue, "https://") {
		return &SQSMailQueue{client: client, queueURL: queue}, nil
	}
	qurl, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		log.Printf("Failed to retrieve queue URL for %s: %s\n", queue, err.Error())
		return nil, err
	}
	return &SQSMailQueue{client: client, queueURL: aws.ToString(qurl.QueueUrl)}, nil
}

func (q *SQSMailQueue) Send(ctx context.Context, in *lib.SendMailInput) error {
	emailBody := map[string]any{
		"from":      in.From,
		"from-name": in.FromName,
		"to":        in.To,
		"cc":        in.Cc,
		"bcc":       in.Bcc,
		"reply-to":  in.ReplyTo,
		"body":      in.Body,
		"html":      in.Html,
		"subject":   in.Subject,
	}
	body, err := json.Marshal(emailBody)
	if err != nil {
		return err
	}
	if _, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(string(body)),
	}); err != nil {
		return fmt.Errorf("error sending message to queue: %w", err)
	}
	return nil
}
