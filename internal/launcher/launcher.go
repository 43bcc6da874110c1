// Package launcher is a thin facade over the EC2 provisioning API: launch,
// start, stop, terminate and tag instances, and list instances and regions.
//
// Every operation is one call (launch with a name is two) against the
// injected client. Nothing is cached between calls and provider errors are
// returned wrapped, never translated.
package launcher

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rs/zerolog/log"

	"github.com/yairfalse/quicklaunch/internal/config"
	awsprovider "github.com/yairfalse/quicklaunch/internal/provider/aws"
)

// Launcher issues instance operations through an EC2 client.
// It is stateless beyond the client and safe for concurrent use.
type Launcher struct {
	client awsprovider.EC2API
}

// New creates a launcher around an already authenticated client.
func New(client awsprovider.EC2API) *Launcher {
	return &Launcher{client: client}
}

// NewFromConfig loads the config file at configPath and returns a launcher
// whose client talks to endpoint (the file's aws.endpoint when empty).
func NewFromConfig(ctx context.Context, configPath, endpoint string) (*Launcher, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return NewFromAWSConfig(ctx, cfg.AWS, endpoint)
}

// NewFromAWSConfig builds an instrumented EC2 client from already loaded
// settings.
func NewFromAWSConfig(ctx context.Context, cfg config.AWSConfig, endpoint string) (*Launcher, error) {
	if endpoint == "" {
		endpoint = cfg.Endpoint
	}

	client, err := awsprovider.NewClient(ctx, cfg, endpoint)
	if err != nil {
		return nil, err
	}

	instrumented, err := awsprovider.Instrument(client)
	if err != nil {
		return nil, fmt.Errorf("instrument ec2 client: %w", err)
	}
	return New(instrumented), nil
}

// Launch creates the instances described by req, with defaults for every
// unset field, and returns their ids in the order the provider reported
// them. When req.Name is set the new instances are tagged Name=<value>.
//
// If tagging fails the instances stay created; their ids are returned
// together with the error.
func (l *Launcher) Launch(ctx context.Context, req LaunchRequest) ([]string, error) {
	params := Resolve(req)

	log.Debug().Ctx(ctx).
		Str("image_id", params.ImageID).
		Str("instance_type", params.InstanceType).
		Int32("count", params.Count).
		Strs("security_groups", params.SecurityGroups).
		Str("key_name", params.KeyName).
		Str("availability_zone", params.AvailabilityZone).
		Msg("launching instances")

	out, err := l.client.RunInstances(ctx, params.Input())
	if err != nil {
		logFailure(ctx, err, "run instances failed")
		return nil, fmt.Errorf("run instances: %w", err)
	}

	ids := make([]string, 0, len(out.Instances))
	for _, inst := range out.Instances {
		ids = append(ids, aws.ToString(inst.InstanceId))
	}

	log.Info().Ctx(ctx).Strs("instance_ids", ids).Msg("instances launched")

	if req.Name == nil || len(ids) == 0 {
		return ids, nil
	}

	if err := l.createTags(ctx, ids, map[string]string{awsprovider.NameTagKey: *req.Name}); err != nil {
		logFailure(ctx, err, "name tag failed, instances left untagged")
		return ids, fmt.Errorf("tag launched instances %v: %w", ids, err)
	}
	return ids, nil
}

// Instance returns a handle for id. No call is made; the id is resolved by
// the provider on each operation.
func (l *Launcher) Instance(id string) *Instance {
	return &Instance{ID: id, launcher: l}
}

// Stop stops the instance with the given id.
func (l *Launcher) Stop(ctx context.Context, id string) error {
	return l.Instance(id).Stop(ctx)
}

// Start starts the instance with the given id.
func (l *Launcher) Start(ctx context.Context, id string) error {
	return l.Instance(id).Start(ctx)
}

// Terminate terminates the instance with the given id.
func (l *Launcher) Terminate(ctx context.Context, id string) error {
	return l.Instance(id).Terminate(ctx)
}

// SetTags merges tags into the instance's tag set. Existing keys named in
// tags are overwritten; other existing tags are kept.
func (l *Launcher) SetTags(ctx context.Context, id string, tags map[string]string) error {
	return l.Instance(id).SetTags(ctx, tags)
}

// ListInstances returns the instances of every reservation in one
// DescribeInstances response, in response order.
func (l *Launcher) ListInstances(ctx context.Context) ([]ec2types.Instance, error) {
	out, err := l.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{})
	if err != nil {
		logFailure(ctx, err, "describe instances failed")
		return nil, fmt.Errorf("describe instances: %w", err)
	}

	var instances []ec2types.Instance
	for _, reservation := range out.Reservations {
		instances = append(instances, reservation.Instances...)
	}
	return instances, nil
}

// ListInstancesPerRegion returns the regions visible to the account, keyed
// by region name, each mapped to the EC2 endpoint serving its instances.
func (l *Launcher) ListInstancesPerRegion(ctx context.Context) (map[string]string, error) {
	out, err := l.client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		logFailure(ctx, err, "describe regions failed")
		return nil, fmt.Errorf("describe regions: %w", err)
	}

	regions := make(map[string]string, len(out.Regions))
	for _, r := range out.Regions {
		regions[aws.ToString(r.RegionName)] = aws.ToString(r.Endpoint)
	}
	return regions, nil
}

func (l *Launcher) createTags(ctx context.Context, ids []string, tags map[string]string) error {
	_, err := l.client.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: ids,
		Tags:      awsprovider.EC2Tags(tags),
	})
	return err
}

func logFailure(ctx context.Context, err error, msg string) {
	event := log.Error().Ctx(ctx).Err(err)
	if code := awsprovider.ErrorCode(err); code != "" {
		event = event.Str("aws_error_code", code)
	}
	event.Msg(msg)
}
