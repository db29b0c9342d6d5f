package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func NewSecretsClient(cfg aws.Config) *secretsmanager.Client {
	return secretsmanager.NewFromConfig(cfg)
}

// GetSecretString returns the secret's string value. A JSON object secret is
// read through field instead, the way key/value secrets are stored in the console.
func GetSecretString(ctx context.Context, client SecretsAPI, id, field string) (string, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("reading secret %s: %w", id, err)
	}
	raw := strings.TrimSpace(aws.ToString(out.SecretString))
	if strings.HasPrefix(raw, "{") {
		var kv map[string]string
		if err := json.Unmarshal([]byte(raw), &kv); err != nil {
			return "", fmt.Errorf("decoding secret %s: %w", id, err)
		}
		v, ok := kv[field]
		if !ok {
			return "", fmt.Errorf("secret %s has no field %s", id, field)
		}
		return v, nil
	}
	return raw, nil
}
