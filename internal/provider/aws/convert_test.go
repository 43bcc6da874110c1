package aws

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResource(t *testing.T) {
	launched := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	r := ToResource(ec2types.Instance{
		InstanceId:   aws.String("i-e366c3eb"),
		InstanceType: ec2types.InstanceTypeT1Micro,
		ImageId:      aws.String("ami-1e3a502e"),
		State:        &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
		Placement:    &ec2types.Placement{AvailabilityZone: aws.String("us-west-2b")},
		LaunchTime:   aws.Time(launched),
		Tags: []ec2types.Tag{
			{Key: aws.String("Name"), Value: aws.String("web-1")},
			{Key: aws.String("team"), Value: aws.String("platform")},
		},
	}, "us-west-2")

	assert.Equal(t, "i-e366c3eb", r.ID)
	assert.Equal(t, "web-1", r.Name)
	assert.Equal(t, "us-west-2", r.Region)
	assert.Equal(t, "us-west-2b", r.Zone)
	assert.Equal(t, "t1.micro", r.InstanceType)
	assert.Equal(t, "ami-1e3a502e", r.ImageID)
	assert.Equal(t, "running", r.Status)
	assert.Equal(t, launched, r.LaunchedAt)
	assert.Equal(t, map[string]string{"Name": "web-1", "team": "platform"}, r.Labels)
}

func TestToResource_Sparse(t *testing.T) {
	r := ToResource(ec2types.Instance{InstanceId: aws.String("i-1")}, "")

	assert.Equal(t, "i-1", r.ID)
	assert.Equal(t, "", r.Name)
	assert.Equal(t, "", r.Status)
	assert.Equal(t, "", r.Zone)
	assert.NotNil(t, r.Labels)
	assert.True(t, r.LaunchedAt.IsZero())
}

func TestEC2Tags_SortedByKey(t *testing.T) {
	tags := EC2Tags(map[string]string{"purpose": "ci", "Name": "web", "image": "Amazon Linux"})

	require.Len(t, tags, 3)
	assert.Equal(t, "Name", aws.ToString(tags[0].Key))
	assert.Equal(t, "web", aws.ToString(tags[0].Value))
	assert.Equal(t, "image", aws.ToString(tags[1].Key))
	assert.Equal(t, "purpose", aws.ToString(tags[2].Key))
}

func TestTagMap_RoundTrip(t *testing.T) {
	in := map[string]string{"Name": "web", "env": "prod"}
	assert.Equal(t, in, TagMap(EC2Tags(in)))
}
