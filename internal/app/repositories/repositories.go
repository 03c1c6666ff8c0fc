package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ProfileRepository      *ProfileRepository
	StudentRepository      *StudentRepository
	GraduationRepository   *GraduationRepository
	MessageRepository      *MessageRepository
	AttendanceRepository   *AttendanceRepository
	ClassSessionRepository *ClassSessionRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories over one shared pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ProfileRepository:      NewProfileRepository(db),
		StudentRepository:      NewStudentRepository(db),
		GraduationRepository:   NewGraduationRepository(db),
		MessageRepository:      NewMessageRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
		ClassSessionRepository: NewClassSessionRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
