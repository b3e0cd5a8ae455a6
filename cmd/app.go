package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arivarton/stamp/internal/config"
	"github.com/arivarton/stamp/internal/logger"
	"github.com/arivarton/stamp/internal/model"
	"github.com/arivarton/stamp/internal/prompt"
	"github.com/arivarton/stamp/internal/storage"
)

// app bundles the loaded configuration and the open database handle
// that every command needs.
type app struct {
	cfg   config.Config
	store *storage.Store
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, store: store}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Error("closing database", "error", err)
	}
}

// stampTime resolves the -D/-T flags into a concrete timestamp.
// An empty date means today. An empty time falls back to the
// configured workday boundary; "current" means the wall clock.
func stampTime(dateArg, timeArg string, fallback config.TimeOfDay) (time.Time, error) {
	now := time.Now()
	day := now
	if dateArg != "" {
		d, err := time.ParseInLocation("2006-01-02", dateArg, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: expected the format 2006-01-02", dateArg)
		}
		day = d
	}

	var hour, minute int
	switch {
	case timeArg == "current":
		hour, minute = now.Hour(), now.Minute()
	case timeArg == "":
		hour, minute = fallback.Hour, fallback.Minute
	default:
		t, err := time.ParseInLocation("15:04", timeArg, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q: expected the format 15:04 or \"current\"", timeArg)
		}
		hour, minute = t.Hour(), t.Minute()
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local), nil
}

// resolveCustomer looks name up and offers to create it when missing.
func resolveCustomer(ctx context.Context, a *app, p *prompt.Prompter, name string) (model.Customer, error) {
	customer, err := a.store.CustomerByName(ctx, name)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, storage.ErrNoMatch) {
		return model.Customer{}, err
	}

	if !p.Confirm(fmt.Sprintf("Customer %q does not exist, create it?", name)) {
		return model.Customer{}, fmt.Errorf("customer %q: %w", name, prompt.ErrCanceled)
	}
	customer = model.Customer{Name: name}
	if p.Confirm("Add contact details now?") {
		customer.ContactPerson = p.Value("contact person")
		customer.OrgNr = p.Value("org nr")
		customer.Address = p.Value("address")
		customer.ZipCode = p.Value("zip code")
		customer.Mail = p.Value("mail")
		customer.Phone = p.Value("phone")
	}
	if err := a.store.CreateCustomer(ctx, &customer); err != nil {
		return model.Customer{}, err
	}
	logger.Info("created customer", "id", customer.ID, "name", customer.Name)
	return customer, nil
}

// resolveProject looks name up under the given customer and offers to
// create it when missing. A project belonging to another customer
// counts as missing here.
func resolveProject(ctx context.Context, a *app, p *prompt.Prompter, name string, customerID int64) (model.Project, error) {
	project, err := a.store.ProjectByName(ctx, name)
	if err == nil && project.CustomerID == customerID {
		return project, nil
	}
	if err != nil && !errors.Is(err, storage.ErrNoMatch) {
		return model.Project{}, err
	}

	if !p.Confirm(fmt.Sprintf("Project %q does not exist for this customer, create it?", name)) {
		return model.Project{}, fmt.Errorf("project %q: %w", name, prompt.ErrCanceled)
	}
	project = model.Project{Name: name, CustomerID: customerID, Link: p.Value("project link")}
	if err := a.store.CreateProject(ctx, &project); err != nil {
		return model.Project{}, err
	}
	logger.Info("created project", "id", project.ID, "name", project.Name)
	return project, nil
}
