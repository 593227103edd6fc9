// Package mockssm provides a partial implementation of AWS' SSM Parameter
// Store interface sufficient to satisfy the ssmstore.Client interface.
package mockssm

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// MockSSM implements the ssmstore.Client interface backed by in-memory
// storage. It is safe for concurrent use.
type MockSSM struct {
	mu     sync.Mutex
	params map[string]string
}

// NewMockSSM constructs a new MockSSM instance.
func NewMockSSM() *MockSSM {
	return &MockSSM{
		params: make(map[string]string),
	}
}

func (m *MockSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := aws.ToString(in.Name)
	value, ok := m.params[name]
	if !ok {
		return nil, &types.ParameterNotFound{
			Message: aws.String(fmt.Sprintf("parameter %s not found", name)),
		}
	}

	return &ssm.GetParameterOutput{
		Parameter: &types.Parameter{
			Name:  aws.String(name),
			Value: aws.String(value),
			Type:  types.ParameterTypeSecureString,
		},
	}, nil
}

func (m *MockSSM) PutParameter(_ context.Context, in *ssm.PutParameterInput, _ ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := aws.ToString(in.Name)
	if _, exists := m.params[name]; exists && !aws.ToBool(in.Overwrite) {
		return nil, &types.ParameterAlreadyExists{
			Message: aws.String(fmt.Sprintf("parameter %s already exists", name)),
		}
	}
	m.params[name] = aws.ToString(in.Value)

	return &ssm.PutParameterOutput{}, nil
}
