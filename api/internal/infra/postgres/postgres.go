package postgres

import (
	"fmt"
	"payme/api/internal/config"
	"payme/api/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Partial unique indexes back the webhook dedup: the insert of a RECEIVED
// row is the authoritative dedup gate, while DUPLICATE audit rows are
// allowed to repeat the same keys.
var dedupIndexes = []string{
	fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS ux_webhook_events_provider_event
		ON webhook_events (provider, provider_event_id)
		WHERE provider_event_id <> '' AND processing_status <> %d`, domain.WEBHOOK_DUPLICATE),
	fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS ux_webhook_events_payload_hash
		ON webhook_events (payload_hash)
		WHERE processing_status <> %d`, domain.WEBHOOK_DUPLICATE),
}

func Init(config *config.Config) *gorm.DB {
	dbConfig := config.Postgres
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s", dbConfig.Host, dbConfig.User, dbConfig.Password, dbConfig.Db_name, dbConfig.Port, dbConfig.Ssl_mode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("Gorm error: " + err.Error())
	}

	migrate(db)

	return db
}

func migrate(db *gorm.DB) {
	err := db.AutoMigrate(&domain.Merchants{}, &domain.Invoices{}, &domain.PaymentAttempts{}, &domain.WebhookEvents{})
	if err != nil {
		panic("Auto migrate error: " + err.Error())
	}

	for _, stmt := range dedupIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			panic("Dedup index error: " + err.Error())
		}
	}
}

type TestConfig struct {
	Host     string
	User     string
	Password string
	DbName   string
	Port     uint16
}

var TEST_CONFIG = TestConfig{
	Host:     "localhost",
	User:     "postgres",
	Password: "lol",
	DbName:   "test",
	Port:     5432,
}

func InitTest(dbConfig TestConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s", dbConfig.Host, dbConfig.User, dbConfig.Password, dbConfig.DbName, dbConfig.Port, "disable")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("Gorm error: " + err.Error())
	}

	migrate(db)

	return db
}

func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(&domain.Merchants{}, &domain.Invoices{}, &domain.PaymentAttempts{}, &domain.WebhookEvents{})
}
