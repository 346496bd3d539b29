package table_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/table"
)

type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) Create(ctx context.Context, t *table.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTableRepository) GetByID(ctx context.Context, id int64) (*table.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *MockTableRepository) List(ctx context.Context) ([]table.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]table.Table), args.Error(1)
}

func (m *MockTableRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_CreateTable(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   table.Table
		repoErr error
		wantErr error
	}{
		{name: "ok", input: table.Table{Number: 2, Capacity: 4, Location: "Terrace"}},
		{name: "zero capacity", input: table.Table{Number: 2, Capacity: 0, Location: "Terrace"}, wantErr: table.ErrInvalidTable},
		{name: "negative number", input: table.Table{Number: -1, Capacity: 4, Location: "Hall"}, wantErr: table.ErrInvalidTable},
		{name: "blank location", input: table.Table{Number: 3, Capacity: 4, Location: "  "}, wantErr: table.ErrInvalidTable},
		{name: "duplicate number", input: table.Table{Number: 2, Capacity: 4, Location: "Hall"}, repoErr: table.ErrTableNumberExists, wantErr: table.ErrTableNumberExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTableRepository)
			svc := table.NewService(repo)

			input := tt.input
			if tt.wantErr == nil || tt.repoErr != nil {
				repo.On("Create", ctx, &input).Return(tt.repoErr).Once()
			}

			got, err := svc.CreateTable(ctx, &input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input.Number, got.Number)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_DeleteTable_InUse(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTableRepository)
	svc := table.NewService(repo)

	repo.On("Delete", ctx, int64(7)).Return(table.ErrTableInUse).Once()

	err := svc.DeleteTable(ctx, 7)
	require.ErrorIs(t, err, apperr.ErrConflict)
	repo.AssertExpectations(t)
}
