package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethioagri/gebeya/app/clients"
	"github.com/ethioagri/gebeya/app/models"
	"github.com/ethioagri/gebeya/app/services"
	"github.com/ethioagri/gebeya/pkg/kv"
)

func newProducts(t *testing.T) (*services.ProductService, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	return services.NewProductService(store), store
}

func teffListing(stock int) models.CreateProductData {
	return models.CreateProductData{
		Name:          "Teff",
		Description:   "White teff, this season's harvest",
		Price:         120,
		Unit:          "kg",
		Category:      "grain",
		StockQuantity: stock,
	}
}

func TestCreate_AssignsIdentityAndDerivesStock(t *testing.T) {
	svc, _ := newProducts(t)

	product, err := svc.Create(7, "Abel", "Addis Ababa", teffListing(50))
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, int64(7), product.FarmerID)
	assert.Equal(t, "Abel", product.FarmerName)
	assert.Equal(t, "Addis Ababa", product.Location)
	assert.True(t, product.InStock)
	assert.False(t, product.DateAdded.IsZero())

	listed := svc.ListForFarmer(7)
	require.Len(t, listed, 1)
	assert.Equal(t, product, listed[0])
}

func TestCreate_ZeroStockIsOutOfStock(t *testing.T) {
	svc, _ := newProducts(t)

	product, err := svc.Create(7, "Abel", "Addis Ababa", teffListing(0))
	require.NoError(t, err)
	assert.False(t, product.InStock)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc, _ := newProducts(t)

	_, err := svc.Create(7, "Abel", "Addis Ababa", models.CreateProductData{Price: -1})

	var ve *clients.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, svc.ListForFarmer(7))
}

func TestUpdate_MergesPatchAndRederivesStock(t *testing.T) {
	svc, _ := newProducts(t)

	product, err := svc.Create(7, "Abel", "Addis Ababa", teffListing(50))
	require.NoError(t, err)

	price := 150.0
	stock := 0
	updated, err := svc.Update(7, product.ID, models.ProductPatch{
		Price:         &price,
		StockQuantity: &stock,
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, updated.Price)
	assert.Equal(t, 0, updated.StockQuantity)
	assert.False(t, updated.InStock, "stock hitting zero must flip InStock off")

	// Untouched fields survive.
	assert.Equal(t, "Teff", updated.Name)
	assert.Equal(t, product.DateAdded, updated.DateAdded)

	listed := svc.ListForFarmer(7)
	require.Len(t, listed, 1)
	assert.Equal(t, updated, listed[0])
}

func TestUpdate_RestockFlipsInStockBackOn(t *testing.T) {
	svc, _ := newProducts(t)

	product, err := svc.Create(7, "Abel", "Addis Ababa", teffListing(0))
	require.NoError(t, err)
	require.False(t, product.InStock)

	stock := 25
	updated, err := svc.Update(7, product.ID, models.ProductPatch{StockQuantity: &stock})
	require.NoError(t, err)
	assert.True(t, updated.InStock)
}

func TestUpdate_UnknownIDLeavesCollectionUntouched(t *testing.T) {
	svc, _ := newProducts(t)

	product, err := svc.Create(7, "Abel", "Addis Ababa", teffListing(50))
	require.NoError(t, err)

	price := 999.0
	_, err = svc.Update(7, "no-such-id", models.ProductPatch{Price: &price})
	require.ErrorIs(t, err, services.ErrProductNotFound)

	listed := svc.ListForFarmer(7)
	require.Len(t, listed, 1)
	assert.Equal(t, product, listed[0])
}

func TestDelete_RemovesOnlyTheTarget(t *testing.T) {
	svc, _ := newProducts(t)

	keep, err := svc.Create(7, "Abel", "Addis Ababa", teffListing(50))
	require.NoError(t, err)
	gone, err := svc.Create(7, "Abel", "Addis Ababa", teffListing(10))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(7, gone.ID))

	listed := svc.ListForFarmer(7)
	require.Len(t, listed, 1)
	assert.Equal(t, keep.ID, listed[0].ID)
}

func TestDelete_MissingIDIsNoOp(t *testing.T) {
	svc, _ := newProducts(t)

	_, err := svc.Create(7, "Abel", "Addis Ababa", teffListing(50))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(7, "no-such-id"))
	assert.Len(t, svc.ListForFarmer(7), 1)
}

func TestListForFarmer_CorruptCollectionReadsAsEmpty(t *testing.T) {
	svc, store := newProducts(t)

	store.PutRaw("farmer_products_7", []byte("[{broken"))

	assert.Empty(t, svc.ListForFarmer(7))
}

func TestAllInStock_AggregatesAcrossFarmers(t *testing.T) {
	svc, store := newProducts(t)

	inStock, err := svc.Create(1, "Abel", "Addis Ababa", teffListing(50))
	require.NoError(t, err)

	_, err = svc.Create(1, "Abel", "Addis Ababa", teffListing(0))
	require.NoError(t, err)

	other, err := svc.Create(2, "Hana", "Bahir Dar", models.CreateProductData{
		Name:          "Red Onion",
		Price:         40,
		Unit:          "kg",
		Category:      "vegetable",
		StockQuantity: 200,
	})
	require.NoError(t, err)

	// A corrupt third collection must not break the catalog.
	store.PutRaw("farmer_products_3", []byte("not json"))

	catalog := svc.AllInStock()
	require.Len(t, catalog, 2)

	ids := []string{catalog[0].ID, catalog[1].ID}
	assert.ElementsMatch(t, []string{inStock.ID, other.ID}, ids)
	for _, p := range catalog {
		assert.True(t, p.InStock)
	}
}

func TestAllInStock_EmptyStore(t *testing.T) {
	svc, _ := newProducts(t)
	assert.Empty(t, svc.AllInStock())
}
