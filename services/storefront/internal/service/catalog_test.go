package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
	"github.com/Georgesib05/comming-soon/pkg/i18n"
	"github.com/Georgesib05/comming-soon/pkg/pagination"
)

func TestListProducts_ToggleReplay(t *testing.T) {
	svc := NewCatalogService(testCatalog(t))

	list, err := svc.ListProducts(context.Background(), ListProductsInput{
		Sort: []string{"newest,price-low-high", "oldest"},
		Page: pagination.DefaultParams(),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"price-low-high", "oldest"}, list.Sort)
	require.Len(t, list.Data, 2)
	assert.Equal(t, 2, list.Data[0].ID)
}

func TestListProducts_FilterAndSearch(t *testing.T) {
	svc := NewCatalogService(testCatalog(t))
	ctx := context.Background()

	list, err := svc.ListProducts(ctx, ListProductsInput{Category: " T-Shirts ", Search: "VISUAL", Page: pagination.DefaultParams()})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Visual Trap T-Shirt", list.Data[0].Name)

	list, err = svc.ListProducts(ctx, ListProductsInput{Category: "Hoodies", Page: pagination.DefaultParams()})
	require.NoError(t, err)
	assert.Empty(t, list.Data)
	assert.Zero(t, list.TotalCount)
}

func TestListProducts_UnknownSort(t *testing.T) {
	svc := NewCatalogService(testCatalog(t))
	ctx := i18n.NewContext(context.Background(), i18n.Arabic)

	_, err := svc.ListProducts(ctx, ListProductsInput{Sort: []string{"newest", "Cheapest"}})

	appErr := requireAppError(t, err)
	assert.Equal(t, "INVALID_SORT_OPTION", appErr.Code)
	assert.Equal(t, i18n.T(i18n.Arabic, i18n.MsgUnknownSortOption, "cheapest"), appErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestGetProduct(t *testing.T) {
	svc := NewCatalogService(testCatalog(t))
	ctx := context.Background()

	p, err := svc.GetProduct(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Visual Trap T-Shirt", p.Name)

	p, err = svc.GetProduct(ctx, "Ocular-Trap-T-Shirt")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)

	_, err = svc.GetProduct(ctx, "nope")
	appErr := requireAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "Product not found", appErr.Message)
}

func TestCategoriesAndSortOptions(t *testing.T) {
	svc := NewCatalogService(testCatalog(t))

	assert.Equal(t, []string{"T-Shirts"}, svc.Categories(context.Background()))
	assert.Len(t, svc.SortOptions(context.Background()), 3)
}
