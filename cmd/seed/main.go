package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"rentnest-backend/internal/config"
	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository/postgres"
	"rentnest-backend/internal/security"
	"rentnest-backend/internal/service"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type seedTier struct {
	PersonsPerRoom int32  `yaml:"persons_per_room"`
	PricePerPerson string `yaml:"price_per_person"`
	AvailableBeds  int32  `yaml:"available_beds"`
	TotalBeds      int32  `yaml:"total_beds"`
}

type seedListing struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Type        string     `yaml:"type"`
	Status      string     `yaml:"status"`
	Location    string     `yaml:"location"`
	City        string     `yaml:"city"`
	Furnished   bool       `yaml:"furnished"`
	Rooms       int32      `yaml:"rooms"`
	Bathrooms   int32      `yaml:"bathrooms"`
	Amenities   []string   `yaml:"amenities"`
	Rules       []string   `yaml:"rules"`
	Price       string     `yaml:"price"`
	Tiers       []seedTier `yaml:"sharing_tiers"`
	Images      []string   `yaml:"images"`
}

type seedUser struct {
	Name     string        `yaml:"name"`
	Email    string        `yaml:"email"`
	Phone    string        `yaml:"phone"`
	Password string        `yaml:"password"`
	Role     string        `yaml:"role"`
	Listings []seedListing `yaml:"listings"`
}

type seedData struct {
	Users []seedUser `yaml:"users"`
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	dataPath := flag.String("data", "config/seed.dev.yaml", "Path to seed data file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	data, err := readSeedFile(*dataPath)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db)
	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.SessionExpiry(), cfg.AdminExpiry())
	auth := service.NewAuthService(store.UserRepository, tokens, cfg.Admin)
	listings := service.NewListingService(store.ListingRepository, store.UserRepository, nil, service.ListingOptions{
		PlaceholderImage: cfg.Listings.PlaceholderImage,
		DefaultPageSize:  cfg.Listings.DefaultPageSize,
		MaxPageSize:      cfg.Listings.MaxPageSize,
	})

	if err := populate(context.Background(), auth, listings, data); err != nil {
		log.Fatalf("Failed to populate data: %v", err)
	}
	logger.Info("Seed data populated", "users", len(data.Users))
}

func readSeedFile(filename string) (*seedData, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var data seedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// populate goes through the services so seeded rows pass the same checks
// as API writes. Users that already exist are skipped with their listings.
func populate(ctx context.Context, auth service.AuthService, listings service.ListingService, data *seedData) error {
	for _, u := range data.Users {
		user, _, err := auth.Signup(ctx, u.Name, u.Email, u.Phone, u.Password, domain.UserRole(strings.ToUpper(u.Role)))
		if errors.Is(err, service.ErrEmailTaken) {
			logger.Warn("User already exists, skipping", "email", u.Email)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		logger.Info("Created user", "id", user.ID, "email", user.Email, "role", user.Role)

		caller := &domain.Identity{ID: user.ID, Email: user.Email, Name: user.Name, Phone: user.Phone, Role: user.Role}
		for _, l := range u.Listings {
			in, err := l.toInput()
			if err != nil {
				return fmt.Errorf("listing %q: %w", l.Title, err)
			}
			created, err := listings.Create(ctx, caller, in)
			if err != nil {
				return fmt.Errorf("failed to create listing %q: %w", l.Title, err)
			}
			logger.Info("Created listing", "id", created.ID, "title", created.Title, "kind", created.Kind)
		}
	}
	return nil
}

func (l seedListing) toInput() (domain.ListingInput, error) {
	in := domain.ListingInput{
		Title:       l.Title,
		Description: l.Description,
		Kind:        domain.ListingKind(strings.ToUpper(l.Type)),
		Status:      domain.ListingStatus(strings.ToUpper(l.Status)),
		Location:    l.Location,
		Furnished:   l.Furnished,
		Rooms:       l.Rooms,
		Bathrooms:   l.Bathrooms,
		Amenities:   l.Amenities,
		Rules:       l.Rules,
	}
	if l.City != "" {
		in.Address = &domain.Address{City: l.City}
	}
	if l.Price != "" {
		p, err := decimal.NewFromString(l.Price)
		if err != nil {
			return in, fmt.Errorf("bad price %q: %w", l.Price, err)
		}
		in.Price = &p
	}
	for _, t := range l.Tiers {
		p, err := decimal.NewFromString(t.PricePerPerson)
		if err != nil {
			return in, fmt.Errorf("bad tier price %q: %w", t.PricePerPerson, err)
		}
		in.Tiers = append(in.Tiers, domain.SharingTier{
			PersonsPerRoom: t.PersonsPerRoom,
			PricePerPerson: p,
			AvailableBeds:  t.AvailableBeds,
			TotalBeds:      t.TotalBeds,
		})
	}
	for _, url := range l.Images {
		in.Images = append(in.Images, domain.Image{URL: url})
	}
	return in, nil
}
