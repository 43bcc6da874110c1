package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Identity is the principal the loaded credentials authenticate as.
type Identity struct {
	Account string `json:"account"`
	ARN     string `json:"arn"`
	UserID  string `json:"user_id"`
}

// NewSTSClient creates an STS client from the same SDK config as EC2.
func NewSTSClient(awsCfg aws.Config) *sts.Client {
	return sts.NewFromConfig(awsCfg)
}

// CallerIdentity asks STS who the credentials belong to.
func CallerIdentity(ctx context.Context, client STSAPI) (Identity, error) {
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, fmt.Errorf("get caller identity: %w", err)
	}

	return Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
