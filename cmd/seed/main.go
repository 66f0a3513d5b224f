package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"salon-api/internal/config"
	"salon-api/internal/db"
	"salon-api/internal/models"
	"salon-api/internal/resource"
	"salon-api/internal/theme"
	"salon-api/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	themes := theme.NewService(resource.NewRepository[models.Theme](cols.Themes, "theme"), logger)
	if _, err := themes.EnsureDefault(ctx); err != nil {
		log.Fatalf("seed theme: %v", err)
	}

	val := validation.New()
	for _, svc := range catalogue() {
		if err := resource.Validate(val, &svc); err != nil {
			log.Fatalf("seed service %q: %v", svc.Name, err)
		}

		now := time.Now().UTC().Truncate(time.Millisecond)
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":               primitive.NewObjectID(),
				"description":       svc.Description,
				"price":             svc.Price,
				"durationInMinutes": svc.DurationInMinutes,
				"createdAt":         now,
				"updatedAt":         now,
			},
		}
		_, err := cols.Services.UpdateOne(ctx, bson.M{"name": svc.Name}, update, options.Update().SetUpsert(true))
		if err != nil {
			log.Fatalf("seed error for %s: %v", svc.Name, err)
		}
	}

	log.Println("seed completed")
}

func catalogue() []models.Service {
	price := func(amount float64) models.Price {
		return models.Price{Amount: &amount, Currency: "SEK"}
	}
	return []models.Service{
		{Name: "Haircut", Description: "Wash, cut and style.", Price: price(450), DurationInMinutes: 45},
		{Name: "Beard trim", Description: "Shape and trim with hot towel finish.", Price: price(250), DurationInMinutes: 20},
		{Name: "Colouring", Description: "Full colour including toner.", Price: price(1200), DurationInMinutes: 120},
		{Name: "Consultation", Description: "Style consultation before a larger treatment.", Price: price(0), DurationInMinutes: 15},
	}
}
