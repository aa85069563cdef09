package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":     "9090",
		"BAD_INT":  "nine",
		"PRETTY":   "true",
		"TIMEOUT":  "45s",
		"ORIGINS":  "https://a.example, ,https://b.example",
		"EMPTY":    "",
		"NAME":     "portfolio",
		"BAD_BOOL": "maybe",
	}

	assert.Equal(t, 9090, GetInt(cfg, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(cfg, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(cfg, "MISSING", 8080))
	assert.True(t, GetBool(cfg, "PRETTY", false))
	assert.False(t, GetBool(cfg, "BAD_BOOL", false))
	assert.Equal(t, 45*time.Second, GetDuration(cfg, "TIMEOUT", time.Second))
	assert.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, "portfolio", GetString(cfg, "NAME", ""))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetList(cfg, "ORIGINS"))
	assert.Equal(t, "x", GetString(nil, "NAME", "x"))
}

func TestSplit(t *testing.T) {
	key, value := split("DSN=host=db user=app")
	assert.Equal(t, "DSN", key)
	assert.Equal(t, "host=db user=app", value)

	key, value = split("FLAG")
	assert.Equal(t, "FLAG", key)
	assert.Empty(t, value)
}

type fakeSSM struct {
	values map[string]string
	calls  []string
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	name := aws.ToString(in.Name)
	f.calls = append(f.calls, name)
	v, ok := f.values[name]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: in.Name, Value: aws.String(v)}}, nil
}

func TestResolveWith(t *testing.T) {
	client := &fakeSSM{values: map[string]string{"/portfolio/jwt": "s3cr3t"}}
	cfg := map[string]string{"JWT_SECRET_SSM_PARAMETER": "/portfolio/jwt"}

	require.NoError(t, resolveWith(context.Background(), client, cfg, []string{"JWT_SECRET"}))
	assert.Equal(t, "s3cr3t", cfg["JWT_SECRET"])
	assert.Equal(t, []string{"/portfolio/jwt"}, client.calls)

	cfg["DB_PASSWORD_SSM_PARAMETER"] = "/portfolio/missing"
	err := resolveWith(context.Background(), client, cfg, []string{"DB_PASSWORD"})
	assert.ErrorContains(t, err, "/portfolio/missing")
}

func TestResolveSecretsWithoutPointersIsNoop(t *testing.T) {
	cfg := map[string]string{"JWT_SECRET": "plain"}
	require.NoError(t, ResolveSecrets(context.Background(), cfg, "JWT_SECRET", "DB_PASSWORD"))
	assert.Equal(t, "plain", cfg["JWT_SECRET"])
}
