package service

import (
	"strings"
	"testing"

	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupCatalogTest(t *testing.T) *CatalogService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewCatalogService(repos.Partner, repos.Product)
}

func TestCreateCustomerGeneratesCode(t *testing.T) {
	svc := setupCatalogTest(t)

	c, err := svc.CreateCustomer(CustomerRequest{Name: "客户甲"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(c.Code, "KH"), "code: %s", c.Code)

	// 给定编号则保留
	c2, err := svc.CreateCustomer(CustomerRequest{Code: "KH-VIP-01", Name: "客户乙"})
	require.NoError(t, err)
	require.Equal(t, "KH-VIP-01", c2.Code)
}

func TestCustomerCRUD(t *testing.T) {
	svc := setupCatalogTest(t)

	c, err := svc.CreateCustomer(CustomerRequest{Name: "客户甲", Phone: "0901234567"})
	require.NoError(t, err)

	updated, err := svc.UpdateCustomer(c.ID, CustomerRequest{Name: "客户甲二", Phone: "0907654321"})
	require.NoError(t, err)
	require.Equal(t, "客户甲二", updated.Name)

	require.NoError(t, svc.DeleteCustomer(c.ID))
	_, err = svc.GetCustomer(c.ID)
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestProductCRUD(t *testing.T) {
	svc := setupCatalogTest(t)

	p, err := svc.CreateProduct(ProductRequest{Name: "衬衫", Price: 200})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(p.Code, "SP"))

	updated, err := svc.UpdateProduct(p.ID, ProductRequest{Name: "衬衫 L", Price: 220})
	require.NoError(t, err)
	require.Equal(t, float64(220), updated.Price)

	items, total, err := svc.ListProducts(repository.ProductListParams{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, items, 1)

	require.NoError(t, svc.DeleteProduct(p.ID))
	_, err = svc.GetProduct(p.ID)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestStoreAndSupplierCodes(t *testing.T) {
	svc := setupCatalogTest(t)

	st, err := svc.CreateStore(StoreRequest{Name: "门店一"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(st.Code, "CH"))

	sup, err := svc.CreateSupplier(SupplierRequest{Name: "供应商一"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(sup.Code, "NCC"))
}
