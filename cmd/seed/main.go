package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"railbook/internal/database"
	"railbook/internal/domain"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = "railbook.db"
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM booking_passengers")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM schedules")
	db.Exec("DELETE FROM routes")
	db.Exec("DELETE FROM trains")
	db.Exec("DELETE FROM stations")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	admin := domain.User{
		Name:         "Admin",
		Email:        "admin@gmail.com",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@gmail.com / password")

	for _, name := range []string{"adi", "dawud", "aden", "aby", "dafa", "adha", "hafiz"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		db.Create(&domain.User{
			Name:         name,
			Email:        fmt.Sprintf("%s@gmail.com", name),
			PasswordHash: string(hash),
			Role:         domain.RoleCustomer,
		})
	}

	// ================== STATIONS ==================
	log.Println("Creating stations...")

	stations := []domain.Station{
		{Name: "Stasiun Gambir", Code: "GMR", Latitude: "-6.1767", Longitude: "106.8305", City: "Jakarta"},
		{Name: "Stasiun Bandung", Code: "BD", Latitude: "-6.9147", Longitude: "107.6021", City: "Bandung"},
		{Name: "Stasiun Yogyakarta", Code: "YK", Latitude: "-7.7892", Longitude: "110.3636", City: "Yogyakarta"},
		{Name: "Stasiun Surabaya Gubeng", Code: "SGU", Latitude: "-7.2650", Longitude: "112.7504", City: "Surabaya"},
		{Name: "Stasiun Semarang Tawang", Code: "SMT", Latitude: "-6.9647", Longitude: "110.4283", City: "Semarang"},
		{Name: "Stasiun Malang", Code: "ML", Latitude: "-7.9777", Longitude: "112.6337", City: "Malang"},
		{Name: "Stasiun Cirebon", Code: "CN", Latitude: "-6.7084", Longitude: "108.5563", City: "Cirebon"},
		{Name: "Stasiun Solo Balapan", Code: "SLO", Latitude: "-7.5597", Longitude: "110.8203", City: "Surakarta"},
		{Name: "Stasiun Purwokerto", Code: "PWT", Latitude: "-7.4197", Longitude: "109.2027", City: "Purwokerto"},
		{Name: "Stasiun Madiun", Code: "MDN", Latitude: "-7.6184", Longitude: "111.5237", City: "Madiun"},
	}
	for i := range stations {
		db.Create(&stations[i])
	}

	// ================== TRAINS ==================
	log.Println("Creating trains...")

	classes := []struct {
		suffix   string
		class    domain.TrainClass
		capacity int
	}{
		{"EXE", domain.TrainClassExecutive, 50},
		{"BUS", domain.TrainClassBusiness, 60},
		{"ECO", domain.TrainClassEconomy, 80},
		{"PRE", domain.TrainClassNonEconomy, 70},
	}

	trains := []domain.Train{}
	for _, name := range []struct{ full, short string }{
		{"Argo Bromo Anggrek", "ABA"},
		{"Gajayana", "GJY"},
		{"Bima", "BMA"},
		{"Taksaka", "TKS"},
	} {
		for _, c := range classes {
			t := domain.Train{
				Name:     name.full,
				Code:     fmt.Sprintf("%s-%s", name.short, c.suffix),
				Class:    c.class,
				Capacity: c.capacity,
			}
			db.Create(&t)
			trains = append(trains, t)
		}
	}

	// ================== ROUTES ==================
	log.Println("Creating routes...")

	routes := []domain.Route{}
	seen := map[string]bool{}
	for len(routes) < 10 {
		origin := stations[rand.Intn(len(stations))]
		destination := stations[rand.Intn(len(stations))]
		if origin.ID == destination.ID {
			continue
		}
		key := origin.ID + "-" + destination.ID
		if seen[key] {
			continue
		}
		seen[key] = true

		rt := domain.Route{OriginID: origin.ID, DestinationID: destination.ID}
		db.Create(&rt)
		routes = append(routes, rt)
	}

	// ================== SCHEDULES ==================
	log.Println("Creating schedules...")

	for i := 0; i < 10; i++ {
		train := trains[rand.Intn(len(trains))]
		route := routes[rand.Intn(len(routes))]

		departure := time.Now().Add(time.Duration(24+rand.Intn(240)) * time.Hour)
		db.Create(&domain.Schedule{
			TrainID:       train.ID,
			RouteID:       route.ID,
			DepartureTime: departure,
			ArrivalTime:   departure.Add(time.Duration(1+rand.Intn(8)) * time.Hour),
			Price:         float64(150000 + rand.Intn(850001)),
			SeatAvailable: train.Capacity,
		})
	}

	log.Println("Seeding done.")
}
