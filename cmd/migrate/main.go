package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"loyalt/internal/datastore"
	"loyalt/internal/models"
	"loyalt/internal/services"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandSeedDemo(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableProfile(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableShop(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableReward(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUserReward(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableTransaction(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableQRCode(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert default configs to db
func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-config",
		Description: "Insert default configs to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			configs := []models.Config{
				{Key: services.CONFIG_SERVER_MODE, Value: services.SERVER_MODE_PRODUCTION},
				{Key: services.CONFIG_SCAN_RATE_LIMIT_PER_MINUTE, Value: "30"},
				{Key: services.CONFIG_QR_RATE_LIMIT_PER_MINUTE, Value: "60"},
				{Key: services.CONFIG_ACTIVITY_LOG_LIMIT, Value: "20"},
			}

			for _, config := range configs {
				if err := datastore.InsertConfig(ctx, db, config); err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// commandSeedDemo populates a development database with a couple of shops,
// rewards and codes. Never run against production.
func commandSeedDemo() *cli.Command {
	return &cli.Command{
		Name:        "seed-demo",
		Description: "Insert demo shops, rewards and qr codes for local development",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			now := time.Now()

			shops := []*models.Shop{
				{
					ID:          uuid.NewString(),
					Name:        "Brew & Bean",
					Description: "Specialty coffee and pastries",
					Category:    "cafe",
					Address:     "12 Roaster Lane",
					Lat:         10.7769,
					Lng:         106.7009,
					Rating:      4.7,
					APIKey:      uuid.NewString(),
					CreatedAt:   now,
				},
				{
					ID:          uuid.NewString(),
					Name:        "Green Basket",
					Description: "Organic groceries",
					Category:    "grocery",
					Address:     "88 Market Street",
					Lat:         10.7812,
					Lng:         106.6958,
					Rating:      4.3,
					APIKey:      uuid.NewString(),
					CreatedAt:   now,
				},
			}

			for _, shop := range shops {
				if err := datastore.CreateShop(ctx, db, shop); err != nil {
					fmt.Println(err)
					continue
				}
				fmt.Printf("shop %s\tapi key %s\n", shop.Name, shop.APIKey)
			}

			rewards := []*models.Reward{
				{
					ID:             uuid.NewString(),
					ShopID:         shops[0].ID,
					Title:          "Free Espresso",
					Description:    "One free espresso shot",
					PointsRequired: 80,
					ExpiryDate:     now.AddDate(0, 3, 0),
					IsActive:       true,
					ColorScheme:    "amber",
					CreatedAt:      now,
				},
				{
					ID:             uuid.NewString(),
					ShopID:         shops[0].ID,
					Title:          "Pastry Combo",
					Description:    "Croissant plus any drink",
					PointsRequired: 250,
					ExpiryDate:     now.AddDate(0, 3, 0),
					IsActive:       true,
					ColorScheme:    "rose",
					CreatedAt:      now,
				},
				{
					ID:             uuid.NewString(),
					ShopID:         shops[1].ID,
					Title:          "5% Off Basket",
					Description:    "Five percent off one purchase",
					PointsRequired: 150,
					ExpiryDate:     now.AddDate(0, 1, 0),
					IsActive:       true,
					ColorScheme:    "green",
					CreatedAt:      now,
				},
			}

			for _, reward := range rewards {
				if err := datastore.CreateReward(ctx, db, reward); err != nil {
					fmt.Println(err)
				}
			}

			codes := []*models.QRCode{
				{
					ShopID:      shops[0].ID,
					PointsValue: 10,
					Description: "Counter code",
					ExpiryDate:  now.AddDate(1, 0, 0),
					IsSingleUse: false,
					CreatedAt:   now,
				},
				{
					ShopID:      shops[1].ID,
					PointsValue: 25,
					Description: "Checkout code",
					ExpiryDate:  now.AddDate(1, 0, 0),
					IsSingleUse: false,
					CreatedAt:   now,
				},
			}

			for _, code := range codes {
				if err := datastore.InsertQRCode(ctx, db, code); err != nil {
					fmt.Println(err)
				}
			}

			fmt.Println("Seed success")

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
