package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListProducts(ctx context.Context, opts ListOptions) ([]Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) GetProduct(ctx context.Context, id int) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func TestServiceListProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListProducts", mock.Anything, ListOptions{}).
			Return([]Product{{ID: 1, Name: "Baguette"}}, nil)

		svc := NewService(repo)
		res, err := svc.ListProducts(context.Background(), ListOptions{})

		require.NoError(t, err)
		assert.Len(t, res, 1)
		repo.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListProducts", mock.Anything, mock.Anything).
			Return(nil, errors.New("db error"))

		svc := NewService(repo)
		_, err := svc.ListProducts(context.Background(), ListOptions{})

		assert.Error(t, err)
	})
}

func TestStaticRepository(t *testing.T) {
	repo := NewStaticRepository()
	ctx := context.Background()

	t.Run("ListAll", func(t *testing.T) {
		res, err := repo.ListProducts(ctx, ListOptions{})
		require.NoError(t, err)
		assert.Len(t, res, len(Menu))
	})

	t.Run("FilterCategory", func(t *testing.T) {
		cat := "bread"
		res, err := repo.ListProducts(ctx, ListOptions{Category: &cat})
		require.NoError(t, err)
		for _, p := range res {
			assert.Equal(t, "bread", p.Category)
		}
		assert.NotEmpty(t, res)
	})

	t.Run("FilterDietary", func(t *testing.T) {
		res, err := repo.ListProducts(ctx, ListOptions{VeganOnly: true, GlutenFree: true})
		require.NoError(t, err)
		for _, p := range res {
			assert.True(t, p.IsVegan)
			assert.True(t, p.IsGlutenFree)
		}
	})

	t.Run("GetProduct", func(t *testing.T) {
		p, err := repo.GetProduct(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Classic Sourdough", p.Name)

		_, err = repo.GetProduct(ctx, 404)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
