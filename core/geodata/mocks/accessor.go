package mocks

import (
	"context"

	"relation-checker/core/geodata"

	"github.com/stretchr/testify/mock"
)

// Accessor is a mock implementation of geodata.Accessor
type Accessor struct {
	mock.Mock
}

func (m *Accessor) SetWorkspace(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *Accessor) Count(ctx context.Context, layer string) (int, error) {
	args := m.Called(ctx, layer)
	return args.Int(0), args.Error(1)
}

func (m *Accessor) SelectByAttribute(ctx context.Context, layer string, where geodata.Where) (string, error) {
	args := m.Called(ctx, layer, where)
	return args.String(0), args.Error(1)
}

func (m *Accessor) Intersect(ctx context.Context, layers []string, output string) (string, error) {
	args := m.Called(ctx, layers, output)
	return args.String(0), args.Error(1)
}

func (m *Accessor) SearchCursor(ctx context.Context, layer string, fields []string, where geodata.Where) (geodata.Cursor, error) {
	args := m.Called(ctx, layer, fields, where)
	if cur, ok := args.Get(0).(geodata.Cursor); ok {
		return cur, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Accessor) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
