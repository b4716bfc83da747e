package migration

import (
	"agri-assistant/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"session", &entities.Session{}},
		{"profile", &entities.Profile{}},
		{"scan result", &entities.ScanResult{}},
		{"advice conversation", &entities.AdviceConversation{}},
		{"advice message", &entities.AdviceMessage{}},
		{"forum post", &entities.ForumPost{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Printf("Error migrating %s database: %v", m.name, err)
			return fmt.Errorf("migrate %s: %w", m.name, err)
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
