package routes

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leave-backend/config"
	"leave-backend/internal/handler"
	"leave-backend/internal/middleware"
	"leave-backend/internal/model"
	"leave-backend/internal/notification"
	"leave-backend/internal/properties"
	"leave-backend/internal/repository"
	"leave-backend/internal/usecase"
	"leave-backend/internal/validator"
)

// Setup builds the repositories, the notification engine and the usecases on
// top of db and registers every route.
func Setup(app *fiber.App, db *gorm.DB, cfg config.Config, logger *zap.SugaredLogger) error {
	messages := properties.Load(cfg.MessagesFile, logger)
	custom := properties.Load(cfg.CustomPropertiesFile, logger)

	personRepo := repository.NewPersonRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db, model.Settings{Mail: cfg.Mail})
	sickNoteRepo := repository.NewSickNoteRepository(db)
	overtimeRepo := repository.NewOvertimeRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	renderer, err := notification.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("load mail templates: %w", err)
	}
	dispatcher := notification.NewDispatcher(notification.NewSMTPTransport(cfg.SMTPInsecure), settingsRepo, messages, logger)
	notifier := notification.NewService(
		notification.NewResolver(personRepo, departmentRepo),
		departmentRepo,
		notification.NewContextBuilder(cfg.ApplicationURL, messages),
		renderer,
		dispatcher,
		time.Now,
		logger,
	)

	v := validator.NewApplicationValidator(validator.NewAdvanceBookingPolicy(custom, time.Now), time.Now)

	personUC := usecase.NewPersonUsecase(personRepo, notifier, cfg.JWTSecret, time.Now, logger)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, personRepo, departmentRepo, v, notifier, time.Now, logger)
	sickNoteUC := usecase.NewSickNoteUsecase(sickNoteRepo, applicationRepo, settingsRepo, v, notifier, time.Now, logger)
	overtimeUC := usecase.NewOvertimeUsecase(overtimeRepo, personRepo, v, notifier, logger)
	settingsUC := usecase.NewSettingsUsecase(settingsRepo, notifier, logger)
	accountUC := usecase.NewAccountUsecase(accountRepo, applicationRepo, notifier, logger)

	auth := middleware.Auth(cfg.JWTSecret)

	SetupPersonRoutes(app, handler.NewPersonHandler(personUC, logger), auth)
	SetupApplicationRoutes(app, handler.NewApplicationHandler(applicationUC, personUC, logger), auth)
	SetupSickNoteRoutes(app, handler.NewSickNoteHandler(sickNoteUC, personUC, logger), auth)
	SetupOvertimeRoutes(app, handler.NewOvertimeHandler(overtimeUC, personUC, logger), auth)
	SetupSettingsRoutes(app, handler.NewSettingsHandler(settingsUC, logger), auth)
	SetupAccountRoutes(app, handler.NewAccountHandler(accountUC, logger), auth)
	SetupMetricsRoutes(app)
	return nil
}
