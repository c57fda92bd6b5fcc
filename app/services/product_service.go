package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ethioagri/gebeya/app/models"
	"github.com/ethioagri/gebeya/pkg/collection"
	"github.com/ethioagri/gebeya/pkg/kv"
)

// productKeyPrefix partitions product collections per farmer. Every key
// matching this prefix is treated as a collection during catalog
// aggregation.
const productKeyPrefix = "farmer_products_"

// ErrProductNotFound is returned by Update when the referenced product id
// is absent from the farmer's collection.
var ErrProductNotFound = errors.New("product not found")

// ProductService owns the per-farmer product collections. Every mutation
// reads, modifies and rewrites the farmer's whole collection — last
// writer wins across concurrent processes.
type ProductService struct {
	store kv.Store
}

// NewProductService wires the product store to its persistence medium.
func NewProductService(store kv.Store) *ProductService {
	return &ProductService{store: store}
}

func storageKey(farmerID int64) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, farmerID)
}

// ListForFarmer returns the farmer's collection. A missing or corrupt
// collection reads as empty.
func (s *ProductService) ListForFarmer(farmerID int64) []models.Product {
	var products []models.Product
	if !s.store.Get(storageKey(farmerID), &products) {
		return nil
	}
	return products
}

// Create appends a new product to the farmer's collection and persists
// it. The id is freshly generated and InStock derived from the supplied
// stock quantity.
func (s *ProductService) Create(farmerID int64, farmerName, location string, data models.CreateProductData) (models.Product, error) {
	if err := checkInput(data); err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		ID:            uuid.NewString(),
		Name:          data.Name,
		Description:   data.Description,
		Price:         data.Price,
		Unit:          data.Unit,
		Category:      data.Category,
		FarmerID:      farmerID,
		FarmerName:    farmerName,
		Location:      location,
		ImageURL:      data.ImageURL,
		InStock:       data.StockQuantity > 0,
		StockQuantity: data.StockQuantity,
		DateAdded:     time.Now().UTC(),
	}

	products := append(s.ListForFarmer(farmerID), product)
	if err := s.store.Put(storageKey(farmerID), products); err != nil {
		return models.Product{}, fmt.Errorf("products: persist collection: %w", err)
	}
	return product, nil
}

// Update merges patch over the identified product, recomputes InStock
// from the resulting stock quantity, and rewrites the collection.
// Fields absent from patch are untouched. Returns ErrProductNotFound —
// and leaves the collection unchanged — when the id is absent.
func (s *ProductService) Update(farmerID int64, productID string, patch models.ProductPatch) (models.Product, error) {
	if err := checkInput(patch); err != nil {
		return models.Product{}, err
	}

	products := s.ListForFarmer(farmerID)

	idx := -1
	for i := range products {
		if products[i].ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Product{}, ErrProductNotFound
	}

	updated := applyPatch(products[idx], patch)
	products[idx] = updated

	if err := s.store.Put(storageKey(farmerID), products); err != nil {
		return models.Product{}, fmt.Errorf("products: persist collection: %w", err)
	}
	return updated, nil
}

// Delete filters the product out of the farmer's collection. Removing an
// id that isn't there is a silent no-op.
func (s *ProductService) Delete(farmerID int64, productID string) error {
	products := collection.Reject(s.ListForFarmer(farmerID), func(p models.Product) bool {
		return p.ID == productID
	})

	if err := s.store.Put(storageKey(farmerID), products); err != nil {
		return fmt.Errorf("products: persist collection: %w", err)
	}
	return nil
}

// AllInStock aggregates every farmer collection in the store and returns
// the in-stock products. Ordering follows the medium's key enumeration
// and is unspecified. An unavailable medium reads as an empty catalog.
func (s *ProductService) AllInStock() []models.Product {
	keys := s.store.Keys(productKeyPrefix)

	groups := make([][]models.Product, 0, len(keys))
	for _, key := range keys {
		var products []models.Product
		if !s.store.Get(key, &products) {
			continue // corrupt collection — skip, don't fail the catalog
		}
		groups = append(groups, products)
	}

	return collection.Filter(collection.Flatten(groups), func(p models.Product) bool {
		return p.InStock
	})
}

func applyPatch(p models.Product, patch models.ProductPatch) models.Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Unit != nil {
		p.Unit = *patch.Unit
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.StockQuantity != nil {
		p.StockQuantity = *patch.StockQuantity
	}

	// InStock is always derived, never taken from the patch.
	p.InStock = p.StockQuantity > 0
	return p
}
