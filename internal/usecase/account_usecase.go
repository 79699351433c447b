package usecase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"leave-backend/internal/model"
	"leave-backend/internal/repository"
)

type AccountNotifier interface {
	SendSuccessfullyUpdatedAccountsNotification(accounts []model.Account)
}

type AccountUsecase struct {
	accounts repository.AccountRepository
	apps     repository.ApplicationRepository
	notifier AccountNotifier
	logger   *zap.SugaredLogger
}

func NewAccountUsecase(accounts repository.AccountRepository, apps repository.ApplicationRepository, notifier AccountNotifier, logger *zap.SugaredLogger) *AccountUsecase {
	return &AccountUsecase{accounts: accounts, apps: apps, notifier: notifier, logger: logger.Named("account")}
}

// UpdateRemainingVacationDays opens the accounts of year from the accounts of
// the year before. Days not taken in allowed holiday applications are carried
// over as remaining vacation days.
func (u *AccountUsecase) UpdateRemainingVacationDays(year int) ([]model.Account, error) {
	previous, err := u.accounts.GetByYear(year - 1)
	if err != nil {
		return nil, fmt.Errorf("list accounts of %d: %w", year-1, err)
	}

	current, err := u.accounts.GetByYear(year)
	if err != nil {
		return nil, fmt.Errorf("list accounts of %d: %w", year, err)
	}
	existing := make(map[uint]model.Account, len(current))
	for _, a := range current {
		existing[a.PersonID] = a
	}

	updated := make([]model.Account, 0, len(previous))
	for _, prev := range previous {
		apps, err := u.apps.GetByPersonID(prev.PersonID)
		if err != nil {
			return nil, fmt.Errorf("list applications of person %d: %w", prev.PersonID, err)
		}
		remaining := prev.VacationDays + prev.RemainingVacationDays - usedVacationDays(apps, year-1)
		if remaining < 0 {
			remaining = 0
		}

		account := model.Account{
			PersonID:              prev.PersonID,
			Year:                  year,
			AnnualVacationDays:    prev.AnnualVacationDays,
			VacationDays:          prev.AnnualVacationDays,
			RemainingVacationDays: remaining,
		}
		// Akun tahun ini sudah ada: timpa, jangan insert baru.
		if a, ok := existing[prev.PersonID]; ok {
			account.Model = a.Model
		}
		if err := u.accounts.Save(&account); err != nil {
			return nil, fmt.Errorf("save account of person %d: %w", prev.PersonID, err)
		}
		account.Person = prev.Person
		updated = append(updated, account)
	}

	u.logger.Infow("Remaining vacation days updated", "year", year, "accounts", len(updated))
	u.notifier.SendSuccessfullyUpdatedAccountsNotification(updated)
	return updated, nil
}

// usedVacationDays counts the workdays of allowed holiday applications within
// year. Half days count half.
func usedVacationDays(apps []model.Application, year int) float64 {
	var used float64
	for _, app := range apps {
		if app.Status != model.StatusAllowed || app.VacationType != model.VacationTypeHoliday {
			continue
		}
		perDay := 1.0
		if app.HalfDay() {
			perDay = 0.5
		}
		for d := app.StartDate; !d.After(app.EndDate); d = d.AddDate(0, 0, 1) {
			if d.Year() == year && d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
				used += perDay
			}
		}
	}
	return used
}
