package repositories

type Repository struct {
	Machine          MachineRepository
	QuestionTemplate QuestionTemplateRepository
	Maintenance      MaintenanceRepository
	User             UserRepository
}

func New() Repository {
	return Repository{
		Machine:          NewMachineRepository(),
		QuestionTemplate: NewQuestionTemplateRepository(),
		Maintenance:      NewMaintenanceRepository(),
		User:             NewUserRepository(),
	}
}
