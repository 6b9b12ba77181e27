package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/models"
)

// DSNFromEnv собирает строку подключения из DB_* переменных окружения
func DSNFromEnv() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetEnv("DB_HOST"),
		config.GetEnv("DB_USER"),
		config.GetEnv("DB_PASSWORD"),
		config.GetEnv("DB_NAME"),
		config.GetEnv("DB_PORT"),
		config.GetEnvDefault("DB_SSLMODE", "disable"),
	)
}

// InitDB подключается к базе данных PostgreSQL
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	db.DB().SetMaxOpenConns(25)
	db.DB().SetMaxIdleConns(5)
	db.SetLogger(log.StandardLogger())

	log.Info("Successfully connected to the database.")
	return db, nil
}

// Migrate создает или дополняет таблицы всех сущностей
func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	}
	for _, table := range tables {
		if err := db.AutoMigrate(table).Error; err != nil {
			return fmt.Errorf("error migrating %T: %w", table, err)
		}
		log.Debugf("%T migrated", table)
	}
	return nil
}

// CloseDB закрывает соединение с базой данных
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	err := db.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %w", err)
	}

	log.Info("Database connection closed.")
	return nil
}

// notFound переводит ошибку gorm "record not found" в storage.ErrNotFound
func notFound(err error) bool {
	return gorm.IsRecordNotFoundError(err)
}

// uniqueViolation - вставка нарушила уникальный индекс.
// postgres отдает код 23505, sqlite в тестах только текст ошибки.
func uniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
