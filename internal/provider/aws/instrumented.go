package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/yairfalse/quicklaunch/internal/provider/aws"

// InstrumentedEC2 wraps an EC2API with a span and two metrics per call.
// It never alters requests, responses or errors.
type InstrumentedEC2 struct {
	next     EC2API
	tracer   trace.Tracer
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

var _ EC2API = (*InstrumentedEC2)(nil)

// Instrument wraps next using the global tracer and meter providers.
func Instrument(next EC2API) (*InstrumentedEC2, error) {
	meter := otel.Meter(instrumentationName)

	calls, err := meter.Int64Counter(
		"quicklaunch_ec2_calls_total",
		metric.WithDescription("EC2 API calls issued"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"quicklaunch_ec2_call_duration_seconds",
		metric.WithDescription("Duration of EC2 API calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &InstrumentedEC2{
		next:     next,
		tracer:   otel.Tracer(instrumentationName),
		calls:    calls,
		duration: duration,
	}, nil
}

func observe[T any](ctx context.Context, i *InstrumentedEC2, op string, call func(context.Context) (T, error)) (T, error) {
	ctx, span := i.tracer.Start(ctx, "ec2."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("rpc.method", op)),
	)
	defer span.End()

	start := time.Now()
	out, err := call(ctx)
	elapsed := time.Since(start)

	attrs := []attribute.KeyValue{
		attribute.String("operation", op),
		attribute.String("status", "ok"),
	}
	if err != nil {
		attrs[1] = attribute.String("status", "error")
		if code := ErrorCode(err); code != "" {
			attrs = append(attrs, attribute.String("error.code", code))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	i.calls.Add(ctx, 1, metric.WithAttributes(attrs...))
	i.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))

	log.Debug().Ctx(ctx).
		Str("operation", op).
		Dur("duration", elapsed).
		AnErr("error", err).
		Msg("ec2 call")

	return out, err
}

func (i *InstrumentedEC2) RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error) {
	return observe(ctx, i, "RunInstances", func(ctx context.Context) (*ec2.RunInstancesOutput, error) {
		return i.next.RunInstances(ctx, params, optFns...)
	})
}

func (i *InstrumentedEC2) StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
	return observe(ctx, i, "StartInstances", func(ctx context.Context) (*ec2.StartInstancesOutput, error) {
		return i.next.StartInstances(ctx, params, optFns...)
	})
}

func (i *InstrumentedEC2) StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
	return observe(ctx, i, "StopInstances", func(ctx context.Context) (*ec2.StopInstancesOutput, error) {
		return i.next.StopInstances(ctx, params, optFns...)
	})
}

func (i *InstrumentedEC2) TerminateInstances(ctx context.Context, params *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error) {
	return observe(ctx, i, "TerminateInstances", func(ctx context.Context) (*ec2.TerminateInstancesOutput, error) {
		return i.next.TerminateInstances(ctx, params, optFns...)
	})
}

func (i *InstrumentedEC2) CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error) {
	return observe(ctx, i, "CreateTags", func(ctx context.Context) (*ec2.CreateTagsOutput, error) {
		return i.next.CreateTags(ctx, params, optFns...)
	})
}

func (i *InstrumentedEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	return observe(ctx, i, "DescribeInstances", func(ctx context.Context) (*ec2.DescribeInstancesOutput, error) {
		return i.next.DescribeInstances(ctx, params, optFns...)
	})
}

func (i *InstrumentedEC2) DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	return observe(ctx, i, "DescribeRegions", func(ctx context.Context) (*ec2.DescribeRegionsOutput, error) {
		return i.next.DescribeRegions(ctx, params, optFns...)
	})
}
