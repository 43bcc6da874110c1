// Package aws builds the EC2 and STS clients quicklaunch talks to.
package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"

	"github.com/yairfalse/quicklaunch/internal/config"
)

// LoadConfig turns the file-level AWS settings into an SDK config.
// Nothing is written to process-wide state; the returned value is owned by
// the caller.
func LoadConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		// Failures surface to the caller as-is, one attempt per operation.
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// NewEC2Client creates an EC2 client. A non-empty endpoint overrides the
// regional default.
func NewEC2Client(awsCfg aws.Config, endpoint string) *ec2.Client {
	return ec2.NewFromConfig(awsCfg, func(o *ec2.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(NormalizeEndpoint(endpoint))
		}
	})
}

// NewClient loads the SDK config and returns an EC2 client bound to endpoint.
func NewClient(ctx context.Context, cfg config.AWSConfig, endpoint string) (*ec2.Client, error) {
	awsCfg, err := LoadConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewEC2Client(awsCfg, endpoint), nil
}

// NormalizeEndpoint accepts either a bare host ("ec2.us-west-2.amazonaws.com")
// or a full URL and returns a URL.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" || strings.Contains(endpoint, "://") {
		return endpoint
	}
	return "https://" + endpoint
}

// ErrorCode returns the AWS API error code carried by err, or "" when err
// did not come from the service.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
