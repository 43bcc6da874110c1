package launcher

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/rs/zerolog/log"
)

// Instance is a borrowed reference to a provider-owned instance.
type Instance struct {
	ID string

	launcher *Launcher
}

// Stop issues StopInstances for this instance only.
func (i *Instance) Stop(ctx context.Context) error {
	_, err := i.launcher.client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{i.ID},
	})
	return i.done(ctx, err, "stop")
}

// Start issues StartInstances for this instance only.
func (i *Instance) Start(ctx context.Context) error {
	_, err := i.launcher.client.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{i.ID},
	})
	return i.done(ctx, err, "start")
}

// Terminate issues TerminateInstances for this instance only.
func (i *Instance) Terminate(ctx context.Context) error {
	_, err := i.launcher.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{i.ID},
	})
	return i.done(ctx, err, "terminate")
}

// SetTags merges tags into the instance's tags. An empty map is a no-op.
func (i *Instance) SetTags(ctx context.Context, tags map[string]string) error {
	if len(tags) == 0 {
		return nil
	}
	return i.done(ctx, i.launcher.createTags(ctx, []string{i.ID}, tags), "tag")
}

func (i *Instance) done(ctx context.Context, err error, action string) error {
	if err != nil {
		logFailure(ctx, err, action+" failed")
		return fmt.Errorf("%s instance %s: %w", action, i.ID, err)
	}
	log.Info().Ctx(ctx).Str("instance_id", i.ID).Str("action", action).Msg("instance action issued")
	return nil
}
