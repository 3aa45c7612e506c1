package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/config"
	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository/postgres"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/upload-images/main.go <assets-dir> [store-picture-file]")
		fmt.Println("Each subdirectory of <assets-dir> is uploaded as one image bucket.")
		os.Exit(1)
	}

	assetsDir := os.Args[1]

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

	repos := postgres.NewRepositories(db, logger)

	entries, err := os.ReadDir(assetsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read assets directory: %v\n", err)
		os.Exit(1)
	}

	uploaded := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		// the directory name is the bucket name
		bucket := entry.Name()
		bucketDir := filepath.Join(assetsDir, bucket)

		files, err := os.ReadDir(bucketDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", bucketDir, err)
			os.Exit(1)
		}

		count := 0
		for _, file := range files {
			if file.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(file.Name()))] {
				continue
			}

			data, err := os.ReadFile(filepath.Join(bucketDir, file.Name()))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", file.Name(), err)
				os.Exit(1)
			}

			name := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
			image := &domain.StoreImage{
				Name:     name,
				Category: bucket,
				Data:     data,
			}
			if err := repos.Image.Upsert(ctx, image); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to upload %s: %v\n", file.Name(), err)
				os.Exit(1)
			}
			count++
		}

		fmt.Printf("Uploaded %d images to bucket %q\n", count, bucket)
		uploaded += count
	}

	// Optional standalone store picture, served by name
	if len(os.Args) > 2 {
		data, err := os.ReadFile(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read store picture: %v\n", err)
			os.Exit(1)
		}
		image := &domain.StoreImage{
			Name:     "store-picture",
			Category: "store",
			Data:     data,
		}
		if err := repos.Image.Upsert(ctx, image); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to upload store picture: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Uploaded store picture")
		uploaded++
	}

	fmt.Printf("Done: %d images uploaded\n", uploaded)
}
