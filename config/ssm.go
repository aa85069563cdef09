package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ssmSuffix marks a key whose value lives in AWS SSM Parameter Store, e.g.
// JWT_SECRET_SSM_PARAMETER=/portfolio/prod/jwt-secret
const ssmSuffix = "_SSM_PARAMETER"

type parameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ResolveSecrets replaces each key with the decrypted SSM parameter named by
// <key>_SSM_PARAMETER. Keys without such a pointer are left untouched and no
// AWS client is created when none of the keys need it.
func ResolveSecrets(ctx context.Context, cfg map[string]string, keys ...string) error {
	var pending []string
	for _, key := range keys {
		if GetString(cfg, key+ssmSuffix, "") != "" {
			pending = append(pending, key)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return resolveWith(ctx, ssm.NewFromConfig(awsCfg), cfg, pending)
}

func resolveWith(ctx context.Context, client parameterGetter, cfg map[string]string, keys []string) error {
	for _, key := range keys {
		name := GetString(cfg, key+ssmSuffix, "")
		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(name),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return fmt.Errorf("failed to read SSM parameter %s for %s: %w", name, key, err)
		}
		if out.Parameter == nil || out.Parameter.Value == nil {
			return fmt.Errorf("SSM parameter %s has no value", name)
		}
		cfg[key] = *out.Parameter.Value
		log.Debug().Str("key", key).Str("parameter", name).Msg("resolved secret from SSM")
	}
	return nil
}
