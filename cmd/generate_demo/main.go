// Command generate_demo creates a sqlite bookstore with couriers, customers
// and books waiting to be received or delivered.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
//
// Every demo courier's password is "demo". Point the desk at the file with
//
//	DATABASE_DRIVER=sqlite DATABASE_DATABASE=./bookstore-demo.db bookcourier serve
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookcourier/internal/auth"
	"github.com/mrlokans/bookcourier/internal/config"
	"github.com/mrlokans/bookcourier/internal/database"
	"github.com/mrlokans/bookcourier/internal/entities"
)

const demoPassword = "demo"

func main() {
	dbPath := flag.String("db", config.DefaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo bookstore at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	conn, err := database.NewConnector(config.Database{Driver: config.DriverSQLite, Name: *dbPath})
	if err != nil {
		log.Fatalf("Failed to configure database: %v", err)
	}
	conn.Silence()

	ctx := context.Background()
	if err := conn.Migrate(ctx); err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}

	err = conn.Transact(ctx, func(tx *gorm.DB) error {
		for _, seed := range []func(*gorm.DB) error{seedCouriers, seedCustomers, seedBooks, seedTasks} {
			if err := seed(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("Demo bookstore generated successfully!")
}

func seedCouriers(tx *gorm.DB) error {
	names := []string{"Olga Petrova", "Ivan Sidorov", "Marta Kowalska"}
	for i, name := range names {
		id := uint(i + 1)
		courier := entities.Courier{
			ID:           id,
			Name:         name,
			PasswordHash: auth.HashPassword(fmt.Sprint(id), demoPassword),
		}
		if err := tx.Create(&courier).Error; err != nil {
			return fmt.Errorf("courier %s: %w", name, err)
		}
		log.Printf("Courier %d: %s", id, name)
	}
	return nil
}

func seedCustomers(tx *gorm.DB) error {
	customers := []entities.Customer{
		{ID: 101, Name: "Anna Karenina", Phone: "+7 495 000 0101"},
		{ID: 102, Name: "Pierre Bezukhov", Phone: "+7 495 000 0102"},
		{ID: 103, Name: "Elizabeth Bennet", Phone: "+44 20 0000 0103"},
		{ID: 104, Name: "Ishmael", Phone: "+1 508 000 0104"},
	}
	return tx.Create(&customers).Error
}

func seedBooks(tx *gorm.DB) error {
	books := []entities.Book{
		{ISBN: "9780140449174", Title: "Anna Karenina", Author: "Leo Tolstoy"},
		{ISBN: "9780140447934", Title: "War and Peace", Author: "Leo Tolstoy"},
		{ISBN: "9780141439518", Title: "Pride and Prejudice", Author: "Jane Austen"},
		{ISBN: "9780142437247", Title: "Moby-Dick", Author: "Herman Melville"},
		{ISBN: "9780140449136", Title: "Crime and Punishment", Author: "Fyodor Dostoevsky"},
		{ISBN: "9780140441185", Title: "Meditations", Author: "Marcus Aurelius"},
	}
	return tx.Create(&books).Error
}

func seedTasks(tx *gorm.DB) error {
	receive := []entities.BookToReceive{
		{PurchasingDate: "2024-03-01", ISBN: "9780140449174", CustomerID: 101, Address: "12 Tverskaya St, apt 4"},
		{PurchasingDate: "2024-03-02", ISBN: "9780141439518", CustomerID: 103, Address: "3 Longbourn Lane"},
		{PurchasingDate: "2024-03-04", ISBN: "9780140441185", CustomerID: 102, Address: "8 Arbat St"},
	}
	deliver := []entities.BookToDeliver{
		{PurchasingDate: "2024-03-01", ISBN: "9780140447934", CustomerID: 102, AddressTo: "8 Arbat St"},
		{PurchasingDate: "2024-03-03", ISBN: "9780142437247", CustomerID: 104, AddressTo: "1 Nantucket Wharf"},
		{PurchasingDate: "2024-03-05", ISBN: "9780140449136", CustomerID: 101, AddressTo: "12 Tverskaya St, apt 4", Comment: "Call before arriving"},
	}
	if err := tx.Create(&receive).Error; err != nil {
		return err
	}
	if err := tx.Create(&deliver).Error; err != nil {
		return err
	}

	// Courier 2 already holds one delivery and has finished another, so the
	// demo shows both tabs populated and a completed task staying hidden.
	now := time.Now()
	done := now.Add(-time.Hour)
	links := []entities.Delivery{
		{TaskLink: entities.TaskLink{PurchasingDate: "2024-03-05", ISBN: "9780140449136", CustomerID: 101, CourierID: 2, AssignedAt: now}},
		{TaskLink: entities.TaskLink{PurchasingDate: "2024-03-03", ISBN: "9780142437247", CustomerID: 104, CourierID: 2, AssignedAt: done, CompletedAt: &done}},
	}
	if err := tx.Create(&links).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d books to receive and %d to deliver", len(receive), len(deliver))
	return nil
}
