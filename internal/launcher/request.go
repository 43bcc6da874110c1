package launcher

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Defaults applied to every field a LaunchRequest leaves unset.
const (
	DefaultImageID          = "ami-1e3a502e"
	DefaultInstanceType     = "t1.micro"
	DefaultSecurityGroup    = "quicklaunch-1"
	DefaultKeyName          = "DC_Keypair"
	DefaultAvailabilityZone = "us-west-2b"
)

// DefaultCount is the number of instances launched when Count is unset.
const DefaultCount int32 = 1

// LaunchRequest is a partially specified launch. A nil field (or nil
// SecurityGroups slice) means "use the default"; values are passed through
// as given, without checks.
type LaunchRequest struct {
	// Name, when set, is written as the Name tag after creation.
	Name             *string
	ImageID          *string
	InstanceType     *string
	Count            *int32
	SecurityGroups   []string
	KeyName          *string
	AvailabilityZone *string
}

// LaunchParams is the effective parameter record sent to RunInstances.
type LaunchParams struct {
	ImageID          string
	InstanceType     string
	Count            int32
	SecurityGroups   []string
	KeyName          string
	AvailabilityZone string
}

// Resolve fills every unset field of req with its default.
func Resolve(req LaunchRequest) LaunchParams {
	params := LaunchParams{
		ImageID:          valueOr(req.ImageID, DefaultImageID),
		InstanceType:     valueOr(req.InstanceType, DefaultInstanceType),
		Count:            valueOr(req.Count, DefaultCount),
		SecurityGroups:   []string{DefaultSecurityGroup},
		KeyName:          valueOr(req.KeyName, DefaultKeyName),
		AvailabilityZone: valueOr(req.AvailabilityZone, DefaultAvailabilityZone),
	}
	if req.SecurityGroups != nil {
		params.SecurityGroups = make([]string, len(req.SecurityGroups))
		copy(params.SecurityGroups, req.SecurityGroups)
	}
	return params
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// Input builds the RunInstances request. Exactly Count instances are asked
// for: MinCount and MaxCount are both set to it.
func (p LaunchParams) Input() *ec2.RunInstancesInput {
	return &ec2.RunInstancesInput{
		ImageId:        aws.String(p.ImageID),
		InstanceType:   ec2types.InstanceType(p.InstanceType),
		MinCount:       aws.Int32(p.Count),
		MaxCount:       aws.Int32(p.Count),
		SecurityGroups: p.SecurityGroups,
		KeyName:        aws.String(p.KeyName),
		Placement: &ec2types.Placement{
			AvailabilityZone: aws.String(p.AvailabilityZone),
		},
	}
}
