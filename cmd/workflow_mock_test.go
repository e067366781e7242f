package cmd

import (
	"context"

	"github.com/stretchr/testify/mock"

	"intlcode.dev/pkg/intlcode/internal/domain"
)

type mockWorkflow struct {
	mock.Mock
}

func newMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockWorkflow {
	w := &mockWorkflow{}
	w.Test(t)
	t.Cleanup(func() { w.AssertExpectations(t) })

	return w
}

func (w *mockWorkflow) Generate(ctx context.Context, args domain.GenerateArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) Check(ctx context.Context, args domain.CheckArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) List(ctx context.Context, args domain.ListArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *mockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	return w.Called(ctx, args).Error(0)
}

// useWorkflow swaps the package workflow for the duration of the test.
func useWorkflow(t interface{ Cleanup(func()) }, w domain.Workflow) {
	original := workflow
	workflow = w

	t.Cleanup(func() { workflow = original })
}
