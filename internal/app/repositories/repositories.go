package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories is the container for all repository instances
type Repositories struct {
	StudentRepository      *StudentRepository
	ExamScoreRepository    *ExamScoreRepository
	ConsultationRepository *ConsultationRepository
	EvaluationRepository   *EvaluationRepository
	GoalRepository         *GoalRepository
	TemplateRepository     *TemplateRepository
	ReportRepository       *ReportRepository
}

// NewRepositories creates all repositories over one shared pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(db),
		ExamScoreRepository:    NewExamScoreRepository(db),
		ConsultationRepository: NewConsultationRepository(db),
		EvaluationRepository:   NewEvaluationRepository(db),
		GoalRepository:         NewGoalRepository(db),
		TemplateRepository:     NewTemplateRepository(db),
		ReportRepository:       NewReportRepository(db),
	}
}
