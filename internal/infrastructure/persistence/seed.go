package persistence

import (
	"context"
	"fmt"

	"github.com/komorebi/backend/internal/domain/cart"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/komorebi/backend/internal/domain/identity"
	"github.com/komorebi/backend/internal/domain/inquiry"
	"github.com/komorebi/backend/internal/domain/order"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every aggregate. Used in
// development and with the sqlite driver; production postgres schemas
// are managed by the SQL migrations under cmd/migrate.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.User{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductVariant{},
		&cart.Cart{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
		&inquiry.Inquiry{},
	)
}

type seedVariant struct {
	sku   string
	color string
	size  string
	stock int
}

type seedProduct struct {
	name        string
	description string
	material    string
	origin      string
	price       string
	imageURL    string
	category    string
	variants    []seedVariant
	featured    bool
}

var seedCategories = []struct {
	name        string
	description string
}{
	{"Tea Ritual", "Teaware for a slower morning"},
	{"Apparel", "Japanese-inspired clothing"},
	{"Home Decor", "Minimalist home decorations"},
	{"Bath", "Bath and wellness products"},
	{"Accessories", "Handcrafted accessories"},
	{"Kitchen", "Artisan kitchen items"},
}

var seedProducts = []seedProduct{
	{
		name:        "Iron Teapot (Kyusu)",
		description: "Hand-cast iron teapot retaining heat for the perfect brew. Crafted in Morioka, this iron teapot develops a unique patina over time. The interior is untreated to allow the iron to subtly enhance the flavor of the tea.",
		material:    "Cast iron",
		origin:      "Morioka, Japan",
		price:       "120",
		imageURL:    "https://picsum.photos/800/800?random=1",
		category:    "Tea Ritual",
		variants: []seedVariant{
			{"TEBL-F-001", "Black", "Free", 15},
		},
	},
	{
		name:        "Linen Haori Jacket",
		description: "A modern reinterpretation of the Haori. Made from 100% organic French linen, dyed with natural indigo. Perfect for layering in transitional seasons.",
		material:    "Organic linen",
		origin:      "Kyoto, Japan",
		price:       "240",
		imageURL:    "https://picsum.photos/800/1000?random=2",
		category:    "Apparel",
		variants: []seedVariant{
			{"APNA-S-001", "Natural", "S", 3},
			{"APNA-M-001", "Natural", "M", 5},
			{"APNA-L-001", "Natural", "L", 2},
			{"APIN-M-001", "Indigo", "M", 4},
		},
		featured: true,
	},
	{
		name:        "Ceramic Flower Vase",
		description: "Wheel-thrown stoneware. The glaze is applied unevenly by hand to create depth and texture, embodying the philosophy of Wabi-sabi.",
		material:    "Stoneware",
		origin:      "Mashiko, Japan",
		price:       "85",
		imageURL:    "https://picsum.photos/800/900?random=3",
		category:    "Home Decor",
		variants: []seedVariant{
			{"HOGR-F-001", "Grey", "Free", 20},
		},
	},
	{
		name:        "Hinoki Bath Stool",
		description: "Made from high-quality Hinoki cypress, known for its calming scent and resistance to humidity. Smoothly sanded finish.",
		material:    "Hinoki cypress",
		origin:      "Kiso Valley, Japan",
		price:       "150",
		imageURL:    "https://picsum.photos/800/800?random=4",
		category:    "Bath",
		variants: []seedVariant{
			{"BANA-F-001", "Natural", "Free", 12},
		},
		featured: true,
	},
	{
		name:        "Indigo Dyed Scarf",
		description: "Utilizing the \"Shibori\" tie-dye technique. Each piece is unique with slight variations in the pattern.",
		material:    "Cotton",
		origin:      "Tokushima, Japan",
		price:       "95",
		imageURL:    "https://picsum.photos/800/800?random=5",
		category:    "Accessories",
		variants: []seedVariant{
			{"ACDE-F-001", "Deep Blue", "Free", 10},
			{"ACLI-F-001", "Light Blue", "Free", 15},
		},
	},
	{
		name:        "Wooden Bento Box",
		description: "Traditional craftsmanship that bends thin sheets of cedar wood. It regulates moisture naturally, keeping rice fresh and delicious.",
		material:    "Cedar",
		origin:      "Odate, Japan",
		price:       "110",
		imageURL:    "https://picsum.photos/800/700?random=6",
		category:    "Kitchen",
		variants: []seedVariant{
			{"KINA-F-001", "Natural", "Free", 18},
		},
		featured: true,
	},
}

// Seeder loads the demo catalog and the initial admin account
type Seeder struct {
	db       *gorm.DB
	featured catalog.FeaturedStore
	logger   *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(db *gorm.DB, featured catalog.FeaturedStore, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{db: db, featured: featured, logger: logger}
}

// Seed populates an empty database with the demo catalog, the admin
// account and the initial featured list. A database that already has
// users is left untouched.
func (s *Seeder) Seed(ctx context.Context, adminPassword string) error {
	var userCount int64
	if err := s.db.WithContext(ctx).Model(&identity.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if userCount > 0 {
		s.logger.Info("seed skipped, database not empty")
		return nil
	}

	admin, err := identity.NewAdmin("admin@komorebi.com", "Admin", adminPassword)
	if err != nil {
		return fmt.Errorf("failed to build admin account: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	categoryIDs := make(map[string]*catalog.Category, len(seedCategories))
	for _, sc := range seedCategories {
		category, err := catalog.NewCategory(sc.name, sc.description)
		if err != nil {
			return fmt.Errorf("failed to build category %q: %w", sc.name, err)
		}
		if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", sc.name, err)
		}
		categoryIDs[sc.name] = category
	}

	for _, sp := range seedProducts {
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			return fmt.Errorf("invalid seed price for %q: %w", sp.name, err)
		}

		product, err := catalog.NewProduct(sp.name, sp.description, price)
		if err != nil {
			return fmt.Errorf("failed to build product %q: %w", sp.name, err)
		}
		if err := product.Update(sp.name, sp.description, sp.material, sp.origin); err != nil {
			return fmt.Errorf("failed to set details for %q: %w", sp.name, err)
		}
		if err := product.SetImageURL(sp.imageURL); err != nil {
			return fmt.Errorf("failed to set image for %q: %w", sp.name, err)
		}
		if category, ok := categoryIDs[sp.category]; ok {
			id := category.ID
			product.SetCategory(&id)
		}

		for _, sv := range sp.variants {
			variant, err := catalog.NewProductVariant(product.ID, sv.sku, sv.color, sv.size, sv.stock)
			if err != nil {
				return fmt.Errorf("failed to build variant %q: %w", sv.sku, err)
			}
			product.Variants = append(product.Variants, *variant)
		}

		if err := s.db.WithContext(ctx).
			Session(&gorm.Session{FullSaveAssociations: true}).
			Create(product).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", sp.name, err)
		}

		if sp.featured {
			if err := s.featured.Add(ctx, product.ID); err != nil {
				return fmt.Errorf("failed to feature %q: %w", sp.name, err)
			}
		}
	}

	s.logger.Info("seed completed",
		zap.Int("categories", len(seedCategories)),
		zap.Int("products", len(seedProducts)))
	return nil
}
