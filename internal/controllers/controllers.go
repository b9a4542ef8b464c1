package controllers

import (
	"mantis/internal/database"
	"mantis/internal/repositories"
	"mantis/internal/services"

	machineController "mantis/internal/controllers/machines"
	maintenanceController "mantis/internal/controllers/maintenance"
	performanceController "mantis/internal/controllers/performance"
	questionController "mantis/internal/controllers/questions"
	userController "mantis/internal/controllers/users"
)

type Controllers struct {
	Machine     machineController.MachineControllerInterface
	Question    questionController.QuestionControllerInterface
	Maintenance maintenanceController.MaintenanceControllerInterface
	Performance performanceController.PerformanceControllerInterface
	User        userController.UserControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) Controllers {
	return Controllers{
		Machine:     machineController.New(repos, services.Transaction, db),
		Question:    questionController.New(repos, db),
		Maintenance: maintenanceController.New(repos, services.Transaction, db),
		Performance: performanceController.New(repos, db),
		User:        userController.New(repos, db),
	}
}
