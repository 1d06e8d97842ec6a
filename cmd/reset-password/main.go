package main

import (
	"flag"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/pkg/database"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "admin@example.com", "account email to reset")
	password := flag.String("password", "admin123", "new password")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, relying on system env")
	}

	db := database.ConnectDB()

	var user model.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		logrus.WithError(err).Fatalf("user %s not found in database", *email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash password")
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		logrus.WithError(err).Fatal("failed to update password")
	}

	logrus.WithField("email", *email).Info("password has been reset")
}
