package launcher

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// mockEC2Client implements EC2API for testing. It keeps a tag store per
// instance so merge behaviour can be asserted, and counts every call.
type mockEC2Client struct {
	RunInstancesFunc      func(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error)
	createTagsFunc        func(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
	lifecycleErr          error
	describeInstancesFunc func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	describeRegionsFunc   func(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)

	mu        sync.Mutex
	calls     map[string]int
	runInputs []*ec2.RunInstancesInput
	lifecycle map[string][]string // action -> instance ids
	tags      map[string]map[string]string
}

func newMockEC2Client() *mockEC2Client {
	return &mockEC2Client{
		calls:     make(map[string]int),
		lifecycle: make(map[string][]string),
		tags:      make(map[string]map[string]string),
	}
}

func (m *mockEC2Client) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
}

func (m *mockEC2Client) RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error) {
	m.record("RunInstances")
	m.mu.Lock()
	m.runInputs = append(m.runInputs, params)
	m.mu.Unlock()

	if m.RunInstancesFunc != nil {
		return m.RunInstancesFunc(ctx, params, optFns...)
	}
	return &ec2.RunInstancesOutput{
		Instances: []ec2types.Instance{{InstanceId: aws.String("i-e366c3eb")}},
	}, nil
}

func (m *mockEC2Client) lifecycleCall(action string, ids []string) error {
	m.record(action)
	m.mu.Lock()
	m.lifecycle[action] = append(m.lifecycle[action], ids...)
	m.mu.Unlock()
	return m.lifecycleErr
}

func (m *mockEC2Client) StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
	if err := m.lifecycleCall("StartInstances", params.InstanceIds); err != nil {
		return nil, err
	}
	return &ec2.StartInstancesOutput{}, nil
}

func (m *mockEC2Client) StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
	if err := m.lifecycleCall("StopInstances", params.InstanceIds); err != nil {
		return nil, err
	}
	return &ec2.StopInstancesOutput{}, nil
}

func (m *mockEC2Client) TerminateInstances(ctx context.Context, params *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error) {
	if err := m.lifecycleCall("TerminateInstances", params.InstanceIds); err != nil {
		return nil, err
	}
	return &ec2.TerminateInstancesOutput{}, nil
}

func (m *mockEC2Client) CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error) {
	m.record("CreateTags")
	if m.createTagsFunc != nil {
		return m.createTagsFunc(ctx, params, optFns...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range params.Resources {
		if m.tags[id] == nil {
			m.tags[id] = make(map[string]string)
		}
		for _, t := range params.Tags {
			m.tags[id][aws.ToString(t.Key)] = aws.ToString(t.Value)
		}
	}
	return &ec2.CreateTagsOutput{}, nil
}

func (m *mockEC2Client) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	m.record("DescribeInstances")
	if m.describeInstancesFunc != nil {
		return m.describeInstancesFunc(ctx, params, optFns...)
	}
	return &ec2.DescribeInstancesOutput{}, nil
}

func (m *mockEC2Client) DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	m.record("DescribeRegions")
	if m.describeRegionsFunc != nil {
		return m.describeRegionsFunc(ctx, params, optFns...)
	}
	return &ec2.DescribeRegionsOutput{}, nil
}

// seedTags sets an instance's existing tags.
func (m *mockEC2Client) seedTags(id string, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[id] = make(map[string]string, len(tags))
	for k, v := range tags {
		m.tags[id][k] = v
	}
}

func (m *mockEC2Client) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}
