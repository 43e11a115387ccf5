package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/dayplan/internal/cli"
	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/notify"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	uow := db.NewSQLiteUnitOfWork(database)
	scheduleRepo := repository.NewSQLiteScheduleRepo(database, uow)
	meetingRepo := repository.NewSQLiteMeetingRepo(database, uow, loc)
	receptionRepo := repository.NewSQLiteReceptionRepo(database, uow)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database, loc)

	// Notifications go to Telegram when a bot token is configured and to
	// the log otherwise.
	var dispatcher notify.Dispatcher = notify.LogDispatcher{Logger: logger}
	if cfg.Telegram.Enabled() {
		client := notify.NewTelegramClient(cfg.Telegram.Token, cfg.Telegram.BaseURL)
		dispatcher = notify.NewTelegramDispatcher(client, employeeRepo)
	}
	notifier := notify.NewSender(dispatcher, logger)

	// Wire services
	opts := []service.Option{service.WithLocation(loc), service.WithLogger(logger)}
	if cfg.LogUseCases {
		opts = append(opts, service.WithObserver(service.NewLogUseCaseObserver(logger)))
	}
	receptionSvc := service.NewReceptionService(receptionRepo, opts...)

	app := &cli.App{
		DailyPlan:  service.NewDailyPlanService(scheduleRepo, meetingRepo, receptionRepo, employeeRepo, notifier, opts...),
		Schedule:   service.NewScheduleService(scheduleRepo, opts...),
		Meetings:   service.NewMeetingService(meetingRepo, employeeRepo, notifier, opts...),
		Receptions: receptionSvc,
		Employees:  service.NewEmployeeService(employeeRepo, opts...),
		Jobs:       service.NewJobsService(receptionRepo, receptionSvc, notifier, opts...),
		Location:   loc,

		ReminderLeadDays: cfg.ReminderLeadDays,
	}

	// Forms only run on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
