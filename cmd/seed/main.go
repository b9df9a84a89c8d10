package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
	"github.com/yuvasaathi/yuvasaathi-api/internal/logger"
	"github.com/yuvasaathi/yuvasaathi-api/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	users := []struct {
		User     models.User
		Password string
	}{
		{
			User: models.User{
				FirstName:              "Ravi",
				MiddleName:             "Kumar",
				Surname:                "Singh",
				Email:                  "ravi.singh@example.com",
				Mobile:                 "9800012345",
				AadhaarNumber:          "123412341234",
				PANNumber:              "ABCDE1234F",
				Education:              "B.Sc Computer Science, Patna University",
				CurrentLocation:        "Patna",
				EmploymentHistory:      "Junior Developer at a local IT firm (2022-2024)\nData entry operator (2021-2022)",
				Certifications:         "NIELIT CCC, Tally ERP 9",
				PrevEmploymentExchange: false,
				Verified:               true,
			},
			Password: "demo-password-1",
		},
		{
			User: models.User{
				FirstName:              "Priya",
				Surname:                "Kumari",
				Email:                  "priya.kumari@example.com",
				Mobile:                 "9800067890",
				AadhaarNumber:          "567856785678",
				PANNumber:              "FGHIJ5678K",
				Education:              "Intermediate, Gaya College",
				CurrentLocation:        "Gaya",
				EmploymentHistory:      "Shop assistant (2023-2024)",
				Certifications:         "Basic Computer Course",
				PrevEmploymentExchange: true,
				Verified:               false,
			},
			Password: "demo-password-2",
		},
	}

	for _, entry := range users {
		existing, err := findUserByEmail(entry.User.Email)
		if err != nil {
			stdLog.Printf("Failed to look up user %s: %v", entry.User.Email, err)
			continue
		}
		if existing != nil {
			stdLog.Printf("User already exists: %s", entry.User.Email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(entry.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", entry.User.Email, err)
			continue
		}
		user := entry.User
		user.PasswordHash = string(hash)
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", user.Email, err)
			continue
		}
		stdLog.Printf("Created user: %s", user.Email)
	}

	seedGeodataFiles(cfg, stdLog)

	fmt.Println("\nSeed data ready.")
	fmt.Println("- 2 demo users (ravi.singh verified, priya.kumari unverified)")
	fmt.Println("- sample map layers and skills CSV (only written when missing)")
}

func findUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := models.DB.Where("email = ?", email).Limit(1).Find(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &user, nil
}

// seedGeodataFiles writes tiny sample layers so the map endpoints work
// out of the box. Real deployments replace these with survey exports.
func seedGeodataFiles(cfg *config.Config, stdLog interface{ Printf(string, ...interface{}) }) {
	files := map[string]string{
		cfg.Geodata.DistrictsFile: sampleDistricts,
		cfg.Geodata.BlocksFile:    sampleBlocks,
		cfg.Geodata.VillagesFile:  sampleVillages,
		cfg.Geodata.SkillsCSV:     sampleSkillsCSV,
	}
	for path, content := range files {
		if _, err := os.Stat(path); err == nil {
			stdLog.Printf("Geodata file already exists: %s", path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			stdLog.Printf("Failed to create directory for %s: %v", path, err)
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			stdLog.Printf("Failed to write %s: %v", path, err)
			continue
		}
		stdLog.Printf("Wrote sample geodata: %s", path)
	}
}

const sampleDistricts = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"district_name": "Patna"}, "geometry": {"type": "Polygon", "coordinates": [[[85.0, 25.5], [85.3, 25.5], [85.3, 25.7], [85.0, 25.7], [85.0, 25.5]]]}},
    {"type": "Feature", "properties": {"district_name": "Gaya"}, "geometry": {"type": "Polygon", "coordinates": [[[84.9, 24.7], [85.2, 24.7], [85.2, 24.9], [84.9, 24.9], [84.9, 24.7]]]}}
  ]
}
`

const sampleBlocks = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"district_name": "Patna", "mandal_name": "Patna Sadar"}, "geometry": {"type": "Polygon", "coordinates": [[[85.1, 25.58], [85.2, 25.58], [85.2, 25.64], [85.1, 25.64], [85.1, 25.58]]]}},
    {"type": "Feature", "properties": {"district_name": "Patna", "mandal_name": "Danapur"}, "geometry": {"type": "Polygon", "coordinates": [[[85.0, 25.56], [85.1, 25.56], [85.1, 25.62], [85.0, 25.62], [85.0, 25.56]]]}},
    {"type": "Feature", "properties": {"district_name": "Gaya", "mandal_name": "Gaya Town"}, "geometry": {"type": "Polygon", "coordinates": [[[84.95, 24.75], [85.05, 24.75], [85.05, 24.82], [84.95, 24.82], [84.95, 24.75]]]}}
  ]
}
`

const sampleVillages = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"district_name": "Patna", "mandal_name": "Patna Sadar", "village_name": "Kurthaul"}, "geometry": {"type": "Point", "coordinates": [85.15, 25.60]}},
    {"type": "Feature", "properties": {"district_name": "Patna", "mandal_name": "Danapur", "village_name": "Shahpur"}, "geometry": {"type": "Point", "coordinates": [85.04, 25.59]}},
    {"type": "Feature", "properties": {"district_name": "Gaya", "mandal_name": "Gaya Town", "village_name": "Bodh Nagar"}, "geometry": {"type": "Point", "coordinates": [85.00, 24.78]}}
  ]
}
`

const sampleSkillsCSV = `district_name,mandal_name,it_jobs,non_it_jobs,test_results
Patna,Patna Sadar,120,340,80
Patna,Danapur,45,210,35
Gaya,Gaya Town,30,180,25
`
