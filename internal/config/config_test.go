package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
aws:
  access_key_id: AKIAEXAMPLE
  secret_access_key: secret
  region: us-west-2
  profile: production
  endpoint: ec2.us-west-2.amazonaws.com

otel:
  endpoint: localhost:4317
  insecure: true
  service_name: launcher
  traces:
    enabled: true
    sample_rate: 1.0
  metrics:
    enabled: true
    textfile: /var/lib/node_exporter/quicklaunch.prom

log:
  level: debug
`
	path := writeTempConfig(t, content)
	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", cfg.AWS.AccessKeyID)
	assert.Equal(t, "secret", cfg.AWS.SecretAccessKey)
	assert.Equal(t, "us-west-2", cfg.AWS.Region)
	assert.Equal(t, "production", cfg.AWS.Profile)
	assert.Equal(t, "ec2.us-west-2.amazonaws.com", cfg.AWS.Endpoint)
	assert.True(t, cfg.AWS.HasStaticCredentials())
	assert.Equal(t, "localhost:4317", cfg.OTEL.Endpoint)
	assert.True(t, cfg.OTEL.Insecure)
	assert.Equal(t, "launcher", cfg.OTEL.ServiceName)
	assert.True(t, cfg.OTEL.Traces.Enabled)
	assert.Equal(t, 1.0, cfg.OTEL.Traces.SampleRate)
	assert.True(t, cfg.OTEL.Metrics.Enabled)
	assert.Equal(t, "/var/lib/node_exporter/quicklaunch.prom", cfg.OTEL.Metrics.Textfile)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Defaults(t *testing.T) {
	content := `
aws:
  region: us-west-2
`
	path := writeTempConfig(t, content)
	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "quicklaunch", cfg.OTEL.ServiceName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.AWS.HasStaticCredentials())
	assert.False(t, cfg.OTEL.Traces.Enabled)
	assert.Equal(t, 0.0, cfg.OTEL.Traces.SampleRate)
}

func TestLoad_DefaultsSampleRateWhenTracesEnabled(t *testing.T) {
	content := `
aws:
  region: us-west-2
otel:
  traces:
    enabled: true
`
	path := writeTempConfig(t, content)
	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.OTEL.Traces.SampleRate)
}

func TestLoad_KeepsExplicitSampleRate(t *testing.T) {
	content := `
aws:
  region: us-west-2
otel:
  traces:
    enabled: true
    sample_rate: 0.25
`
	path := writeTempConfig(t, content)
	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.OTEL.Traces.SampleRate)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("QUICKLAUNCH_TEST_KEY", "AKIAFROMENV")
	t.Setenv("QUICKLAUNCH_TEST_SECRET", "secret-from-env")

	content := `
aws:
  access_key_id: {{ env "QUICKLAUNCH_TEST_KEY" }}
  secret_access_key: {{ env "QUICKLAUNCH_TEST_SECRET" | quote }}
  region: {{ env "QUICKLAUNCH_TEST_UNSET_REGION" | default "us-west-2" }}
`
	path := writeTempConfig(t, content)
	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "AKIAFROMENV", cfg.AWS.AccessKeyID)
	assert.Equal(t, "secret-from-env", cfg.AWS.SecretAccessKey)
	assert.Equal(t, "us-west-2", cfg.AWS.Region)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_InvalidTemplate(t *testing.T) {
	content := `
aws:
  region: {{ env "AWS_REGION"
`
	path := writeTempConfig(t, content)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config template")
}

func TestLoad_UnknownTemplateFunction(t *testing.T) {
	content := `
aws:
  region: {{ nosuchfunc }}
`
	path := writeTempConfig(t, content)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `
aws:
  region: [us-west-2
`
	path := writeTempConfig(t, content)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_MissingRegion(t *testing.T) {
	content := `
aws:
  access_key_id: AKIAEXAMPLE
  secret_access_key: secret
`
	path := writeTempConfig(t, content)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region is required")
}

func TestConfig_Validate_HalfCredentials(t *testing.T) {
	cfg := &Config{
		AWS: AWSConfig{Region: "us-west-2", AccessKeyID: "AKIAEXAMPLE"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be set together")
}

func TestConfig_Validate_SampleRate(t *testing.T) {
	cfg := &Config{
		AWS:  AWSConfig{Region: "us-west-2"},
		OTEL: OTELConfig{Traces: TracesConfig{SampleRate: 1.5}},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample_rate")
}

func TestConfig_Validate_Valid(t *testing.T) {
	cfg := &Config{
		AWS: AWSConfig{Region: "us-west-2"},
	}
	require.NoError(t, cfg.Validate())
}

func TestExpand_PlainText(t *testing.T) {
	out, err := Expand("plain", []byte("aws:\n  region: us-west-2\n"))
	require.NoError(t, err)
	assert.Equal(t, "aws:\n  region: us-west-2\n", string(out))
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}
