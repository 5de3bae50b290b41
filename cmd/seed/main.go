package main

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tradebridge/internal/config"
	"tradebridge/internal/database"
	"tradebridge/internal/domain"
)

// Seeds a demo lender, borrower, a few products and one paid booking so the
// collection flow can be exercised end to end on a fresh database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}

	lender := domain.User{
		ID:           uuid.New(),
		Email:        "lender@example.com",
		PasswordHash: string(hash),
		Name:         "Lena Lender",
		Role:         domain.RoleUser,
	}
	borrower := domain.User{
		ID:           uuid.New(),
		Email:        "borrower@example.com",
		PasswordHash: string(hash),
		Name:         "Boris Borrower",
		Role:         domain.RoleUser,
	}

	for _, u := range []*domain.User{&lender, &borrower} {
		var existing domain.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			*u = existing
			continue
		}
		if err := db.Create(u).Error; err != nil {
			log.Fatalf("seed user %s: %v", u.Email, err)
		}
	}

	products := []domain.Product{
		{
			LenderID:    lender.ID,
			Name:        "Cordless drill",
			Description: "18V drill with two batteries and a charger.",
			Category:    "tools",
			Condition:   "good",
			PricePerDay: 8,
			Value:       120,
			Available:   true,
		},
		{
			LenderID:    lender.ID,
			Name:        "4-person tent",
			Description: "Waterproof dome tent, packs small.",
			Category:    "outdoors",
			Condition:   "like new",
			PricePerDay: 12,
			Value:       200,
			Available:   true,
		},
		{
			LenderID:    lender.ID,
			Name:        "DSLR camera",
			Description: "Canon body with a 50mm lens.",
			Category:    "electronics",
			Condition:   "good",
			PricePerDay: 25,
			Value:       600,
			Available:   true,
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Fatalf("seed product %q: %v", products[i].Name, err)
		}
	}

	now := time.Now()
	bk := domain.Booking{
		ProductID:       products[0].ID,
		BorrowerID:      borrower.ID,
		LenderID:        lender.ID,
		StartDate:       now.AddDate(0, 0, 1),
		EndDate:         now.AddDate(0, 0, 3),
		TotalAmount:     24,
		Status:          domain.BookingPaid,
		PaymentStatus:   domain.PaymentPaid,
		PaymentIntentID: "seed_session_1",
	}
	if err := db.Create(&bk).Error; err != nil {
		log.Fatalf("seed booking: %v", err)
	}

	log.Printf("seeded %d users, %d products, booking #%d (paid, ready for pickup QR)",
		2, len(products), bk.ID)
}
