package api

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"campus-vote/internal/api/interfaces"
	"campus-vote/internal/database"
	"campus-vote/internal/database/repositories"
	"campus-vote/internal/events"
	"campus-vote/internal/voting"
	"campus-vote/pkg/config"
	"campus-vote/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// Services contains all the dependencies for API handlers
type Services struct {
	DB     *sql.DB
	Logger *logger.Logger
	Config *config.Config
	Hub    *events.Hub

	caster      *voting.Caster
	authService interfaces.AuthServiceInterface

	electionRepository  *repositories.ElectionRepository
	positionRepository  *repositories.PositionRepository
	candidateRepository *repositories.CandidateRepository
	ballotRepository    *repositories.BallotRepository
	studentRepository   *repositories.StudentRepository
	auditLogRepository  *repositories.AuditLogRepository
}

// NewServices creates a new services container
func NewServices(db *sql.DB, log *logger.Logger, cfg *config.Config) *Services {
	services := &Services{
		DB:     db,
		Logger: log,
		Config: cfg,
		Hub:    events.NewHub(log),
	}

	services.authService = services

	services.electionRepository = repositories.NewElectionRepository(db)
	services.positionRepository = repositories.NewPositionRepository(db)
	services.candidateRepository = repositories.NewCandidateRepository(db)
	services.ballotRepository = repositories.NewBallotRepository(db)
	services.studentRepository = repositories.NewStudentRepository(db)
	services.auditLogRepository = repositories.NewAuditLogRepository(db)

	sink := &auditSink{
		repo: services.auditLogRepository,
		hub:  services.Hub,
		log:  log.WithComponent("audit"),
	}
	services.caster = voting.NewCaster(services.ballotRepository, sink)

	return services
}

// Start starts all background services
func (s *Services) Start() {
	s.Logger.Info("Starting API services...")
	go s.Hub.Run()
	s.Logger.Info("All API services started successfully")
}

// Stop stops all background services
func (s *Services) Stop() {
	s.Logger.Info("Stopping API services...")
	s.Hub.Stop()
	s.Logger.Info("All API services stopped")
}

// Interface implementation methods
func (s *Services) GetLogger() *logger.Logger {
	return s.Logger
}

func (s *Services) GetConfig() *config.Config {
	return s.Config
}

func (s *Services) GetCaster() *voting.Caster {
	return s.caster
}

func (s *Services) GetEventHub() *events.Hub {
	return s.Hub
}

func (s *Services) AuthService() interfaces.AuthServiceInterface {
	return s.authService
}

func (s *Services) ElectionRepository() *repositories.ElectionRepository {
	return s.electionRepository
}

func (s *Services) PositionRepository() *repositories.PositionRepository {
	return s.positionRepository
}

func (s *Services) CandidateRepository() *repositories.CandidateRepository {
	return s.candidateRepository
}

func (s *Services) BallotRepository() *repositories.BallotRepository {
	return s.ballotRepository
}

func (s *Services) StudentRepository() *repositories.StudentRepository {
	return s.studentRepository
}

func (s *Services) AuditLogRepository() *repositories.AuditLogRepository {
	return s.auditLogRepository
}

// IsHealthy checks if all critical services are healthy
func (s *Services) IsHealthy() bool {
	if err := s.DB.Ping(); err != nil {
		s.Logger.Error("Database health check failed: %v", err)
		return false
	}
	return true
}

// ValidateToken implements the AuthServiceInterface. Tokens are minted by
// the campus identity provider; this service only verifies the signature
// and extracts the eligibility attributes.
func (s *Services) ValidateToken(token string) (*interfaces.Claims, error) {
	token = strings.TrimPrefix(token, "Bearer ")

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		secretKey := s.Config.Security.JWTSecret
		if secretKey == "" {
			return nil, errors.New("JWT secret key not configured")
		}

		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v", err)
	}

	if !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	studentID, err := numericClaim(claims, "student_id")
	if err != nil {
		return nil, err
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing expiration claim")
	}
	if time.Now().Unix() > int64(exp) {
		return nil, errors.New("token has expired")
	}

	department, _ := claims["department"].(string)
	classLevel, _ := claims["class_level"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = "student"
	}

	var organizations []int64
	if orgs, ok := claims["organizations"].([]interface{}); ok {
		for _, org := range orgs {
			if id, ok := org.(float64); ok {
				organizations = append(organizations, int64(id))
			}
		}
	}

	return &interfaces.Claims{
		StudentID:     studentID,
		Department:    department,
		ClassLevel:    classLevel,
		Organizations: organizations,
		Role:          role,
		ExpiresAt:     int64(exp),
	}, nil
}

// numericClaim reads an id claim that may arrive as a JSON number or string
func numericClaim(claims jwt.MapClaims, key string) (int64, error) {
	switch v := claims[key].(type) {
	case float64:
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s claim", key)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("missing %s claim", key)
	}
}

// auditSink is the fire-and-forget audit boundary for the casting
// protocol: durable audit rows, structured logs, and the live event feed.
// Failures here never roll back a recorded ballot.
type auditSink struct {
	repo *repositories.AuditLogRepository
	hub  *events.Hub
	log  *logger.Logger
}

func (s *auditSink) BallotCast(election *database.Election, voter voting.Voter, ballot *database.Ballot) {
	entry := &database.AuditLog{
		Action:     "ballot_cast",
		UserID:     strconv.FormatInt(voter.ID, 10),
		ElectionID: election.ID,
		Details:    fmt.Sprintf("Ballot %d recorded for election %q", ballot.ID, election.Title),
		CreatedAt:  time.Now(),
	}
	if err := s.repo.InsertAuditLog(entry); err != nil {
		s.log.Error("Failed to record cast audit log: %v", err)
	}

	s.log.BallotLogger("ballot_cast", election.ID, voter.ID, "Ballot recorded")

	// The feed carries election-level data only; never voter identity
	s.hub.Broadcast("ballot_cast", map[string]interface{}{
		"election_id": election.ID,
		"voted_at":    ballot.VotedAt.Unix(),
	})
}

func (s *auditSink) BallotRejected(election *database.Election, voter voting.Voter, reason string) {
	entry := &database.AuditLog{
		Action:     "ballot_rejected_" + reason,
		UserID:     strconv.FormatInt(voter.ID, 10),
		ElectionID: election.ID,
		Details:    fmt.Sprintf("Ballot rejected (%s) for election %q", reason, election.Title),
		CreatedAt:  time.Now(),
	}
	if err := s.repo.InsertAuditLog(entry); err != nil {
		s.log.Error("Failed to record rejection audit log: %v", err)
	}

	s.log.BallotLogger("ballot_rejected", election.ID, voter.ID, reason)
}
