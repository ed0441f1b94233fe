// Package search maintains the product search index. Documents and term sets
// live in redis; the index is rebuilt in full on demand.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hairven/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	documentKeyPrefix = "search:product:"
	termKeyPrefix     = "search:term:"
	keyPattern        = "search:*"
)

// ProductDocument is the indexed shape of a product.
type ProductDocument struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Handle       string `json:"handle"`
	Description  string `json:"description"`
	ProductType  string `json:"product_type"`
	UnitPrice    int64  `json:"unit_price"`
	CurrencyCode string `json:"currency_code"`
}

// ProductLister loads the catalog to be indexed.
type ProductLister interface {
	ListAll(ctx context.Context) ([]models.Product, error)
}

// IndexStore is the subset of the cache service the index is built on.
type IndexStore interface {
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SAdd(ctx context.Context, key string, members ...interface{}) error
	SInter(ctx context.Context, keys ...string) ([]string, error)
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Service builds and queries the product index.
type Service struct {
	products ProductLister
	store    IndexStore
	logger   *zap.SugaredLogger
}

func NewService(products ProductLister, store IndexStore, logger *zap.Logger) *Service {
	return &Service{
		products: products,
		store:    store,
		logger:   logger.Sugar(),
	}
}

// IndexProducts rebuilds the whole index from the catalog. Returns the
// number of products indexed.
func (s *Service) IndexProducts(ctx context.Context) (int, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}

	if err := s.store.DeleteByPattern(ctx, keyPattern); err != nil {
		return 0, fmt.Errorf("clear search index: %w", err)
	}

	for _, product := range products {
		doc := ProductDocument{
			ID:           product.ID,
			Title:        product.Title,
			Handle:       product.Handle,
			Description:  product.Description,
			ProductType:  product.ProductType,
			UnitPrice:    product.UnitPrice,
			CurrencyCode: product.CurrencyCode,
		}

		docKey := fmt.Sprintf("%s%d", documentKeyPrefix, product.ID)
		if err := s.store.SetWithTTL(ctx, docKey, doc, 0); err != nil {
			return 0, fmt.Errorf("index product %d: %w", product.ID, err)
		}

		for _, term := range tokenize(product.Title, product.Handle, product.ProductType) {
			if err := s.store.SAdd(ctx, termKeyPrefix+term, product.ID); err != nil {
				return 0, fmt.Errorf("index term %q: %w", term, err)
			}
		}
	}

	s.logger.Infow("product index rebuilt", "products", len(products))
	return len(products), nil
}

// Search returns the documents matching every token of the query.
func (s *Service) Search(ctx context.Context, query string) ([]ProductDocument, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	keys := make([]string, len(terms))
	for i, term := range terms {
		keys[i] = termKeyPrefix + term
	}

	ids, err := s.store.SInter(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("search index lookup: %w", err)
	}

	docs := make([]ProductDocument, 0, len(ids))
	for _, id := range ids {
		var doc ProductDocument
		if err := s.store.GetJSON(ctx, documentKeyPrefix+id, &doc); err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("load document %s: %w", id, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// tokenize lowercases the inputs and splits them into deduplicated terms.
func tokenize(inputs ...string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, input := range inputs {
		fields := strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
			return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
		})
		for _, field := range fields {
			if _, ok := seen[field]; ok {
				continue
			}
			seen[field] = struct{}{}
			terms = append(terms, field)
		}
	}
	return terms
}
