package search

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hairven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *mockStore) GetJSON(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(key)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	data, _ := json.Marshal(args.Get(1))
	return json.Unmarshal(data, dest)
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...interface{}) error {
	args := m.Called(key, members)
	return args.Error(0)
}

func (m *mockStore) SInter(ctx context.Context, keys ...string) ([]string, error) {
	args := m.Called(keys)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStore) DeleteByPattern(ctx context.Context, pattern string) error {
	args := m.Called(pattern)
	return args.Error(0)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		want   []string
	}{
		{
			name:   "lowercases and splits on non alphanumerics",
			inputs: []string{"Argan Repair Shampoo", "argan-repair-shampoo"},
			want:   []string{"argan", "repair", "shampoo"},
		},
		{
			name:   "keeps digits",
			inputs: []string{"Daily Sunscreen SPF50"},
			want:   []string{"daily", "sunscreen", "spf50"},
		},
		{
			name:   "empty input",
			inputs: []string{"", "  "},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.inputs...))
		})
	}
}

func TestIndexProducts(t *testing.T) {
	product := models.Product{
		Title:        "Argan Repair Shampoo",
		Handle:       "argan-repair-shampoo",
		ProductType:  "hair-care",
		UnitPrice:    24900,
		CurrencyCode: "zar",
	}
	product.ID = 7

	lister := new(mockLister)
	lister.On("ListAll").Return([]models.Product{product}, nil)

	store := new(mockStore)
	store.On("DeleteByPattern", "search:*").Return(nil)
	store.On("SetWithTTL", "search:product:7", mock.Anything).Return(nil)
	for _, term := range []string{"argan", "repair", "shampoo", "hair", "care"} {
		store.On("SAdd", "search:term:"+term, mock.Anything).Return(nil)
	}

	s := NewService(lister, store, zap.NewNop())
	count, err := s.IndexProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	store.AssertExpectations(t)
}

func TestSearch(t *testing.T) {
	doc := ProductDocument{ID: 7, Title: "Argan Repair Shampoo", Handle: "argan-repair-shampoo"}

	store := new(mockStore)
	store.On("SInter", []string{"search:term:argan", "search:term:shampoo"}).Return([]string{"7"}, nil)
	store.On("GetJSON", "search:product:7").Return(nil, doc)

	s := NewService(new(mockLister), store, zap.NewNop())
	docs, err := s.Search(context.Background(), "Argan Shampoo")
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, doc, docs[0])
}

func TestSearchEmptyQuery(t *testing.T) {
	s := NewService(new(mockLister), new(mockStore), zap.NewNop())

	docs, err := s.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, docs)
}
