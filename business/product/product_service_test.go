package product

import (
	"context"
	"errors"
	"testing"

	"github.com/Sandeep-S-M/FarmConn/domain"
)

type fakeProductRepo struct {
	products map[uint]domain.Product
	nextID   uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uint]domain.Product), nextID: 1}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (r *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return []domain.Product{}, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	existing := r.products[product.ID]
	product.SellerID = existing.SellerID
	r.products[product.ID] = *product
	return nil
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	created, err := svc.CreateProduct(context.Background(), 2, &domain.Product{
		Name:     "Rose Bush",
		Breed:    "Damask",
		Price:    120.00,
		Quantity: 15,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	if created.ID == 0 {
		t.Error("created product should get an ID")
	}
	if created.SellerID != 2 {
		t.Errorf("seller id = %d, want 2", created.SellerID)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	cases := []struct {
		name    string
		product domain.Product
	}{
		{"missing name", domain.Product{Price: 10, Quantity: 1}},
		{"zero price", domain.Product{Name: "Rose Bush", Price: 0, Quantity: 1}},
		{"negative price", domain.Product{Name: "Rose Bush", Price: -5, Quantity: 1}},
		{"negative quantity", domain.Product{Name: "Rose Bush", Price: 10, Quantity: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.product
			if _, err := svc.CreateProduct(context.Background(), 2, &p); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if len(repo.products) != 0 {
		t.Errorf("invalid products must not be persisted, got %d", len(repo.products))
	}
}

func TestUpdateProduct_SellerOwnership(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	created, err := svc.CreateProduct(context.Background(), 2, &domain.Product{
		Name:     "Rose Bush",
		Price:    120.00,
		Quantity: 15,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	created.Price = 150.00
	if _, err := svc.UpdateProduct(context.Background(), 3, created); !errors.Is(err, domain.ErrNotProductSeller) {
		t.Errorf("update by another seller: err = %v, want ErrNotProductSeller", err)
	}

	updated, err := svc.UpdateProduct(context.Background(), 2, created)
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Price != 150.00 {
		t.Errorf("price = %v, want 150.00", updated.Price)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	_, err := svc.UpdateProduct(context.Background(), 2, &domain.Product{
		ID:       42,
		Name:     "Rose Bush",
		Price:    10,
		Quantity: 1,
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestSearchProducts_EmptyQuery(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	results, err := svc.SearchProducts(context.Background(), "")
	if err != nil {
		t.Fatalf("SearchProducts failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("empty query should return no results, got %d", len(results))
	}
}

func TestGetProductByID_Invalid(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	if _, err := svc.GetProductByID(context.Background(), 0); err == nil {
		t.Error("id 0 should be rejected")
	}
}
