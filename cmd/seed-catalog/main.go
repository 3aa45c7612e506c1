package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/config"
	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository/postgres"
)

type seedCategory struct {
	bucket      string
	name        string
	slug        string
	description string
	products    []string
	basePrice   int64
	variation   int64
}

var seedCategories = []seedCategory{
	{
		bucket:      "Branded shorts",
		name:        "Branded Shorts",
		slug:        "branded-shorts",
		description: "Premium branded shorts for casual and semi-formal occasions",
		basePrice:   2500,
		variation:   500,
		products: []string{
			"Classic Denim Shorts", "Cargo Shorts", "Chino Shorts", "Athletic Shorts",
			"Casual Shorts", "Board Shorts", "Cargo Denim Shorts", "Khaki Shorts",
			"Sport Shorts", "Beach Shorts", "Work Shorts", "Weekend Shorts",
		},
	},
	{
		bucket:      "Branded trousers",
		name:        "Branded Trousers",
		slug:        "branded-trousers",
		description: "High-quality branded trousers for professional and formal wear",
		basePrice:   3500,
		variation:   800,
		products: []string{
			"Formal Dress Trousers", "Business Chinos", "Classic Trousers", "Slim Fit Pants",
			"Cargo Trousers", "Dress Pants", "Casual Trousers", "Office Pants",
			"Smart Trousers", "Professional Pants",
		},
	},
	{
		bucket:      "cotton pants",
		name:        "Cotton Pants",
		slug:        "cotton-pants",
		description: "Comfortable cotton pants perfect for everyday wear",
		basePrice:   2000,
		variation:   400,
		products: []string{
			"Cotton Chinos", "Cotton Cargo Pants", "Cotton Trousers", "Cotton Work Pants",
			"Cotton Casual Pants", "Cotton Dress Pants", "Cotton Utility Pants",
			"Cotton Relaxed Fit", "Cotton Straight Leg",
		},
	},
	{
		bucket:      "Linen trousers",
		name:        "Linen Trousers",
		slug:        "linen-trousers",
		description: "Breathable linen trousers ideal for summer and warm weather",
		basePrice:   3000,
		variation:   600,
		products: []string{
			"Linen Dress Pants", "Linen Chinos", "Linen Casual Trousers", "Linen Summer Pants",
			"Linen Office Trousers", "Linen Relaxed Fit", "Linen Straight Leg", "Linen Cargo Pants",
			"Linen Work Pants", "Linen Formal Trousers", "Linen Beach Pants", "Linen Travel Pants",
			"Linen Weekend Trousers", "Linen Smart Pants", "Linen Comfort Fit",
		},
	},
}

var descriptions = map[string]string{
	"Branded shorts":   "Premium quality branded shorts crafted from high-grade materials. Perfect for casual outings, beach trips, and weekend activities. Features comfortable fit and durable construction.",
	"Branded trousers": "Professional branded trousers designed for the modern gentleman. Excellent for office wear, business meetings, and formal occasions. Tailored fit with premium finishing.",
	"cotton pants":     "Comfortable cotton pants made from 100% cotton fabric. Ideal for everyday wear, casual outings, and relaxed settings. Breathable and easy to care for.",
	"Linen trousers":   "Lightweight linen trousers perfect for warm weather. Made from premium linen fabric that is breathable and comfortable. Great for summer events and casual occasions.",
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]`)

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.Join(strings.Fields(slug), "-")
	return slugStrip.ReplaceAllString(slug, "")
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create schema: %v\n", err)
		os.Exit(1)
	}

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	for _, seed := range seedCategories {
		category := &domain.Category{
			Name:        seed.name,
			Slug:        seed.slug,
			Description: seed.description,
			ImageURL:    fmt.Sprintf("store://%s/img-1.jpg", seed.bucket),
		}
		if err := repos.Category.Create(ctx, category); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create category %s: %v\n", seed.name, err)
			os.Exit(1)
		}
		fmt.Printf("Category created: %s\n", seed.name)

		// upserts are keyed by slug; re-runs refresh rather than duplicate
		created, err := repos.Category.GetBySlug(ctx, seed.slug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read back category %s: %v\n", seed.name, err)
			os.Exit(1)
		}

		galleryLen := len(seed.products)
		if galleryLen > 4 {
			galleryLen = 4
		}
		gallery := make([]string, galleryLen)
		for j := range gallery {
			gallery[j] = fmt.Sprintf("store://%s/img-%d.jpg", seed.bucket, j+1)
		}

		for i, productName := range seed.products {
			product := &domain.Product{
				Name:        productName,
				Slug:        slugify(productName),
				Description: descriptions[seed.bucket],
				Price:       seed.basePrice + rand.Int63n(seed.variation+1),
				CategoryID:  &created.ID,
				ImageURL:    fmt.Sprintf("store://%s/img-%d.jpg", seed.bucket, i%len(seed.products)+1),
				Images:      gallery,
				Sizes:       []string{"S", "M", "L", "XL", "XXL"},
				Stock:       rand.Intn(51) + 10,
				Featured:    i < 3,
			}
			if err := repos.Product.Create(ctx, product); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to create product %s: %v\n", productName, err)
				os.Exit(1)
			}
			fmt.Printf("Product created: %s\n", productName)
		}
	}

	fmt.Println("Catalog seeded successfully")
}
