// Package ssmstore implements jwkscache.SecureStore on AWS SSM Parameter
// Store, persisting entries as SecureString parameters under a shared name
// prefix.
package ssmstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/laurafitzgerald/jwks-cache-go/jwkscache"
)

// Client is the subset of the SSM API the store uses.
type Client interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// Store persists cache entries as SecureString parameters named
// {prefix}{key}. Values are encrypted at rest with the account's default SSM
// key unless the parameters are pre-created with a custom KMS key.
type Store struct {
	client Client
	prefix string
}

// New builds a Store on the given client. prefix should be a parameter name
// prefix such as "/myservice/jwks/".
func New(client Client, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
	}
}

func (s *Store) GetString(ctx context.Context, key string) (string, error) {
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(s.prefix + key),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", jwkscache.ErrNotFound
		}
		return "", fmt.Errorf("getting parameter %s: %w", key, err)
	}
	return aws.ToString(out.Parameter.Value), nil
}

func (s *Store) SetString(ctx context.Context, key, value string) error {
	_, err := s.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(s.prefix + key),
		Value:     aws.String(value),
		Type:      types.ParameterTypeSecureString,
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("putting parameter %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetFloat64(ctx context.Context, key string) (float64, error) {
	raw, err := s.GetString(ctx, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing parameter %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) SetFloat64(ctx context.Context, key string, value float64) error {
	return s.SetString(ctx, key, strconv.FormatFloat(value, 'f', -1, 64))
}
