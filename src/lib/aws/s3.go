package aws

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PresignedUpload struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Key     string            `json:"key"`
}

type S3Presigner struct {
	client *s3.PresignClient
	bucket string
}

func NewS3Presigner(cfg aws.Config, bucket string) *S3Presigner {
	return &S3Presigner{
		client: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		bucket: bucket,
	}
}

// PresignUpload signs a PUT of exactly size bytes of contentType to key.
func (p *S3Presigner) PresignUpload(ctx context.Context, key, contentType string, size int64, expires time.Duration) (*PresignedUpload, error) {
	r, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, func(po *s3.PresignOptions) {
		po.Expires = expires
	})
	if err != nil {
		log.Printf("Could not generate presigned URL for object [%s]: %s\n", key, err.Error())
		return nil, err
	}
	return &PresignedUpload{
		URL:     r.URL,
		Method:  r.Method,
		Headers: map[string]string{"Content-Type": contentType},
		Key:     key,
	}, nil
}
