package database

import (
	"context"
	"testing"

	appconfig "copiadora_xpto/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

func TestClientOptions(t *testing.T) {
	if opts := clientOptions(""); len(opts) != 0 {
		t.Fatalf("expected no options without endpoint, got %d", len(opts))
	}

	opts := clientOptions("http://dynamodb:8000")
	if len(opts) != 1 {
		t.Fatalf("expected one option, got %d", len(opts))
	}
	var o dynamodb.Options
	opts[0](&o)
	if o.BaseEndpoint == nil || *o.BaseEndpoint != "http://dynamodb:8000" {
		t.Fatalf("unexpected endpoint %v", o.BaseEndpoint)
	}
}

func TestNewAWSConfig_UsesStaticCredentials(t *testing.T) {
	awsCfg, err := NewAWSConfig(context.Background(), appconfig.Config{
		AWSRegion:          "sa-east-1",
		AWSAccessKeyID:     "local",
		AWSSecretAccessKey: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if awsCfg.Region != "sa-east-1" {
		t.Fatalf("unexpected region %s", awsCfg.Region)
	}
	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if creds.AccessKeyID != "local" || creds.SecretAccessKey != "secret" {
		t.Fatalf("unexpected credentials %+v", creds)
	}
}
