package database

import (
	"log"

	"github.com/sagarpandeyprofessional/keasy-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres database and runs migrations.
// TranslateError matters here: it turns unique-index violations into
// gorm.ErrDuplicatedKey, which the interaction tracker relies on as
// its idempotency signal.
func Connect(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	log.Println("Running Migrations...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Category{},
		&models.Language{},
		&models.Job{},
		&models.JobLanguage{},
		&models.Application{},
		&models.SavedJob{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}
	return db
}
