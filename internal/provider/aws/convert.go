package aws

import (
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/yairfalse/quicklaunch/pkg/resource"
)

// NameTagKey is the tag EC2 consoles display as an instance's name.
const NameTagKey = "Name"

// ToResource flattens an EC2 instance for display.
func ToResource(inst ec2types.Instance, region string) resource.Resource {
	labels := TagMap(inst.Tags)

	r := resource.Resource{
		ID:           aws.ToString(inst.InstanceId),
		Name:         labels[NameTagKey],
		Region:       region,
		InstanceType: string(inst.InstanceType),
		ImageID:      aws.ToString(inst.ImageId),
		Labels:       labels,
		LaunchedAt:   aws.ToTime(inst.LaunchTime),
	}
	if inst.State != nil {
		r.Status = string(inst.State.Name)
	}
	if inst.Placement != nil {
		r.Zone = aws.ToString(inst.Placement.AvailabilityZone)
	}
	return r
}

// TagMap converts EC2 tags to a map.
func TagMap(tags []ec2types.Tag) map[string]string {
	result := make(map[string]string, len(tags))
	for _, t := range tags {
		result[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return result
}

// EC2Tags converts a map to EC2 tags, ordered by key.
func EC2Tags(tags map[string]string) []ec2types.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]ec2types.Tag, 0, len(keys))
	for _, k := range keys {
		result = append(result, ec2types.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return result
}
