package interfaces

import (
	"campus-vote/internal/database/repositories"
	"campus-vote/internal/events"
	"campus-vote/internal/voting"
	"campus-vote/pkg/config"
	"campus-vote/pkg/logger"
)

// Services defines the interface for API services
type Services interface {
	GetLogger() *logger.Logger
	GetConfig() *config.Config
	GetCaster() *voting.Caster
	GetEventHub() *events.Hub
	AuthService() AuthServiceInterface
	ElectionRepository() *repositories.ElectionRepository
	PositionRepository() *repositories.PositionRepository
	CandidateRepository() *repositories.CandidateRepository
	BallotRepository() *repositories.BallotRepository
	StudentRepository() *repositories.StudentRepository
	AuditLogRepository() *repositories.AuditLogRepository
	IsHealthy() bool
}
