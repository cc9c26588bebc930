package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jyhan-dev/seodang/internal/app/models"
	"github.com/jyhan-dev/seodang/internal/app/repositories"
	"github.com/jyhan-dev/seodang/internal/pkg/apperrors"
	"github.com/jyhan-dev/seodang/internal/pkg/logger"
)

// AggregateService assembles the unified student snapshot consumed by report
// rendering
type AggregateService interface {
	GetStudentView(ctx context.Context, studentID int64, dateRange models.DateRange, language string) (*models.StudentReportView, error)
}

// aggregateServiceImpl implements AggregateService
type aggregateServiceImpl struct {
	studentRepo      *repositories.StudentRepository
	examScoreRepo    *repositories.ExamScoreRepository
	consultationRepo *repositories.ConsultationRepository
	evaluationRepo   *repositories.EvaluationRepository
	goalRepo         *repositories.GoalRepository

	recentScoreCount        int
	recentConsultationCount int
	log                     zerolog.Logger
}

// NewAggregateService creates a new AggregateService
func NewAggregateService(
	studentRepo *repositories.StudentRepository,
	examScoreRepo *repositories.ExamScoreRepository,
	consultationRepo *repositories.ConsultationRepository,
	evaluationRepo *repositories.EvaluationRepository,
	goalRepo *repositories.GoalRepository,
	recentScoreCount int,
	recentConsultationCount int,
) AggregateService {
	if recentScoreCount <= 0 {
		recentScoreCount = 10
	}
	if recentConsultationCount <= 0 {
		recentConsultationCount = 5
	}
	return &aggregateServiceImpl{
		studentRepo:             studentRepo,
		examScoreRepo:           examScoreRepo,
		consultationRepo:        consultationRepo,
		evaluationRepo:          evaluationRepo,
		goalRepo:                goalRepo,
		recentScoreCount:        recentScoreCount,
		recentConsultationCount: recentConsultationCount,
		log:                     logger.WithComponent("aggregator"),
	}
}

// GetStudentView fetches the student core record plus every report source.
// Only a missing student fails the call; every other source degrades to an
// empty collection with a warning so one unreadable table cannot block a
// report.
func (s *aggregateServiceImpl) GetStudentView(ctx context.Context, studentID int64, dateRange models.DateRange, language string) (*models.StudentReportView, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	view := &models.StudentReportView{
		Student:     student,
		Language:    language,
		Range:       dateRange,
		AssembledAt: time.Now(),
	}

	view.Attributes = s.attributesOrEmpty(ctx, studentID)
	view.ScoresAsc = s.scoresAscOrEmpty(ctx, studentID, dateRange)
	view.RecentScores = s.recentScoresOrEmpty(ctx, studentID)
	view.Consultations = s.consultationsOrEmpty(ctx, studentID, dateRange)
	view.Evaluation = s.evaluationOrNil(ctx, studentID)
	view.Goals = s.goalsOrEmpty(ctx, studentID)

	student.Attributes = view.Attributes
	return view, nil
}

func (s *aggregateServiceImpl) attributesOrEmpty(ctx context.Context, studentID int64) []models.StudentAttribute {
	attrs, err := s.studentRepo.GetAttributes(ctx, studentID)
	if err != nil {
		s.log.Warn().Err(err).Int64("studentId", studentID).Msg("Attribute read degraded, continuing with empty set")
		return []models.StudentAttribute{}
	}
	return attrs
}

func (s *aggregateServiceImpl) scoresAscOrEmpty(ctx context.Context, studentID int64, dateRange models.DateRange) []models.ExamScore {
	scores, err := s.examScoreRepo.GetHistoryAsc(ctx, studentID, dateRange)
	if err != nil {
		s.log.Warn().Err(err).Int64("studentId", studentID).Msg("Score history read degraded, continuing with empty set")
		return []models.ExamScore{}
	}
	return scores
}

func (s *aggregateServiceImpl) recentScoresOrEmpty(ctx context.Context, studentID int64) []models.ExamScore {
	scores, err := s.examScoreRepo.GetRecent(ctx, studentID, s.recentScoreCount)
	if err != nil {
		s.log.Warn().Err(err).Int64("studentId", studentID).Msg("Recent score read degraded, continuing with empty set")
		return []models.ExamScore{}
	}
	return scores
}

func (s *aggregateServiceImpl) consultationsOrEmpty(ctx context.Context, studentID int64, dateRange models.DateRange) []models.Consultation {
	consultations, err := s.consultationRepo.GetRecent(ctx, studentID, dateRange, s.recentConsultationCount)
	if err != nil {
		s.log.Warn().Err(err).Int64("studentId", studentID).Msg("Consultation read degraded, continuing with empty set")
		return []models.Consultation{}
	}
	return consultations
}

func (s *aggregateServiceImpl) evaluationOrNil(ctx context.Context, studentID int64) *models.StudentEvaluation {
	eval, err := s.evaluationRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		s.log.Warn().Err(err).Int64("studentId", studentID).Msg("Dedicated evaluation read degraded, continuing without it")
		return nil
	}
	return eval
}

func (s *aggregateServiceImpl) goalsOrEmpty(ctx context.Context, studentID int64) []models.StudentGoal {
	goals, err := s.goalRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		s.log.Warn().Err(err).Int64("studentId", studentID).Msg("Goal read degraded, continuing with empty set")
		return []models.StudentGoal{}
	}
	return goals
}
