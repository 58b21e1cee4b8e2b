// 개발용 시드 데이터 생성기. 기존 데이터 위에 덧붙이므로 빈 DB에서 실행할 것.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/maeum-crm/backend/internal/config"
	"github.com/maeum-crm/backend/internal/db"
	"github.com/maeum-crm/backend/internal/model"
	"github.com/maeum-crm/backend/internal/service"
)

const seedPassword = "password123"

func main() {
	envFile := pflag.String("env-file", "", "path to an env file loaded before reading configuration")
	users := pflag.Int("users", 30, "number of users to create")
	customersPer := pflag.Int("customers", 30, "number of customers per user")
	counselsPer := pflag.Int("counsels", 3, "number of counsels per customer")
	seed := pflag.Uint64("seed", 0, "fake data seed, 0 means random")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			logger.Error("failed to load env file", "path", *envFile, "err", err)
			os.Exit(1)
		}
	}

	faker := gofakeit.New(*seed)

	cfg := config.Load()
	ctx := context.Background()

	database, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		logger.Error("failed to connect to postgres", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure schema", "err", err)
		os.Exit(1)
	}

	userService := service.NewUserService(database, logger)
	customerService := service.NewCustomerService(database, logger)
	counselService := service.NewCounselService(database, logger)

	genders := []string{model.GenderMale, model.GenderFemale, model.GenderOther}

	var created int
	for i := 0; i < *users; i++ {
		user, err := userService.SignUp(ctx, model.SignUpRequest{
			PhoneNumber: fakePhoneNumber(faker),
			Name:        faker.Name(),
			Gender:      genders[faker.IntRange(0, len(genders)-1)],
			DateOfBirth: faker.DateRange(mustDate("1950-01-01"), mustDate("2005-12-31")).Format("2006-01-02"),
			Address:     faker.Address().Address,
			Password:    seedPassword,
			Key:         fmt.Sprintf("%06d", faker.IntRange(0, 999999)),
		})
		if err != nil {
			// 같은 번호가 이미 있으면 넘어간다
			logger.Warn("skipping user", "err", err)
			continue
		}
		created++

		for j := 0; j < *customersPer; j++ {
			customer, err := customerService.Create(ctx, user.ID, model.CustomerCreateRequest{
				Name:        faker.Name(),
				Gender:      genders[faker.IntRange(0, len(genders)-1)],
				PhoneNumber: fakePhoneNumber(faker),
				Address:     faker.Address().Address,
			})
			if err != nil {
				logger.Warn("skipping customer", "user", user.ID, "err", err)
				continue
			}

			for k := 0; k < *counselsPer; k++ {
				status := model.CounselStatusPending
				switch faker.IntRange(0, 2) {
				case 1:
					status = model.CounselStatusInProgress
				case 2:
					status = model.CounselStatusCompleted
				}
				if _, err := counselService.Create(ctx, user.ID, model.CounselCreateRequest{
					Customer:  customer.ID,
					Summary:   faker.Sentence(6),
					Details:   faker.Paragraph(1, 3, 10, " "),
					Emergency: faker.Bool(),
					Status:    status,
				}); err != nil {
					logger.Warn("skipping counsel", "customer", customer.ID, "err", err)
				}
			}
		}
	}

	logger.Info("seeding finished", "users", created, "password", seedPassword)
}

func fakePhoneNumber(faker *gofakeit.Faker) string {
	return fmt.Sprintf("010-%04d-%04d", faker.IntRange(0, 9999), faker.IntRange(0, 9999))
}

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}
