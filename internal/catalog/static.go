package catalog

import "context"

// Menu is the seeded bakery catalog. cmd/migrate writes it into postgres;
// StaticRepository serves it directly when the service runs without a
// database (CATALOG_STATIC=true).
var Menu = []Product{
	{ID: 1, Name: "Classic Sourdough", Category: "bread", PriceCents: 650, IsVegan: true, Allergens: []string{"gluten"}, Rating: 4.8},
	{ID: 2, Name: "Seeded Rye Loaf", Category: "bread", PriceCents: 725, IsVegan: true, Allergens: []string{"gluten", "sesame"}, Rating: 4.5},
	{ID: 3, Name: "Butter Croissant", Category: "pastry", PriceCents: 395, Allergens: []string{"gluten", "dairy", "egg"}, Rating: 4.9},
	{ID: 4, Name: "Almond Croissant", Category: "pastry", PriceCents: 475, Allergens: []string{"gluten", "dairy", "egg", "tree nuts"}, Rating: 4.7},
	{ID: 5, Name: "Chocolate Babka", Category: "pastry", PriceCents: 1450, Allergens: []string{"gluten", "dairy", "egg"}, Rating: 4.6},
	{ID: 6, Name: "Flourless Chocolate Torte", Category: "cake", PriceCents: 2800, IsGlutenFree: true, Allergens: []string{"dairy", "egg"}, Rating: 4.8},
	{ID: 7, Name: "Carrot Cake (8-inch)", Category: "cake", PriceCents: 3200, Allergens: []string{"gluten", "dairy", "egg", "tree nuts"}, Rating: 4.4},
	{ID: 8, Name: "Vegan Banana Bread", Category: "cake", PriceCents: 900, IsVegan: true, Allergens: []string{"gluten"}, Rating: 4.2},
	{ID: 9, Name: "Lemon Poppyseed Muffin", Category: "pastry", PriceCents: 350, Allergens: []string{"gluten", "dairy", "egg"}, Rating: 4.1},
	{ID: 10, Name: "GF Oat Cookie Box", Category: "cookies", PriceCents: 1200, IsVegan: true, IsGlutenFree: true, Rating: 4.3},
	{ID: 11, Name: "Cinnamon Roll", Category: "pastry", PriceCents: 425, Allergens: []string{"gluten", "dairy", "egg"}, Rating: 4.7},
	{ID: 12, Name: "Baguette", Category: "bread", PriceCents: 400, IsVegan: true, Allergens: []string{"gluten"}, Rating: 4.6},
}

// StaticRepository serves the built-in menu without a database. It backs
// local development and is the fallback the original shipped as mock data.
type StaticRepository struct {
	products []Product
}

func NewStaticRepository() *StaticRepository {
	return &StaticRepository{products: Menu}
}

func (r *StaticRepository) ListProducts(_ context.Context, opts ListOptions) ([]Product, error) {
	var out []Product
	for _, p := range r.products {
		if opts.Category != nil && p.Category != *opts.Category {
			continue
		}
		if opts.VeganOnly && !p.IsVegan {
			continue
		}
		if opts.GlutenFree && !p.IsGlutenFree {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *StaticRepository) GetProduct(_ context.Context, id int) (*Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrProductNotFound
}
