package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrBadCredentials = errors.New("invalid credentials")

// Session is a login token for one member.
type Session struct {
	Token     string `gorm:"primaryKey"`
	MemberID  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Identity is the request-scoped view of the logged-in member. Handlers get
// this instead of the ambient "current user" the old portal kept in session
// state.
type Identity struct {
	MemberID string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type Repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) *Repository { return &Repository{db: db} }

// memberRow is the slice of the members table auth cares about.
type memberRow struct {
	ID           string
	Name         string
	Role         string
	PasswordHash string
}

// Login checks the submitted credentials against the member's stored hash.
// There is no bypass pair; every login goes through bcrypt.
func (r *Repository) Login(memberID, password string) (Identity, error) {
	var m memberRow
	err := r.db.Table("members").Where("id = ?", memberID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Identity{}, ErrBadCredentials
	}
	if err != nil {
		return Identity{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		return Identity{}, ErrBadCredentials
	}
	return Identity{MemberID: m.ID, Name: m.Name, Role: m.Role}, nil
}

// NewToken returns a cryptographically secure random token (hex-64).
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (r *Repository) CreateSession(memberID string, ttl time.Duration) (Session, error) {
	tok, err := NewToken()
	if err != nil {
		return Session{}, err
	}
	s := Session{
		Token:     tok,
		MemberID:  memberID,
		ExpiresAt: time.Now().Add(ttl).UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.Create(&s).Error; err != nil {
		return Session{}, err
	}
	return s, nil
}

func (r *Repository) DeleteSession(token string) error {
	return r.db.Delete(&Session{}, "token = ?", token).Error
}

// IdentityBySession resolves a token to a live identity, sweeping expired
// sessions along the way.
func (r *Repository) IdentityBySession(token string) (Identity, error) {
	_ = r.db.Delete(&Session{}, "expires_at < ?", time.Now().UTC()).Error

	var s Session
	if err := r.db.Where("token = ? AND expires_at > ?", token, time.Now().UTC()).Take(&s).Error; err != nil {
		return Identity{}, err
	}
	var m memberRow
	if err := r.db.Table("members").Where("id = ?", s.MemberID).Take(&m).Error; err != nil {
		return Identity{}, err
	}
	return Identity{MemberID: m.ID, Name: m.Name, Role: m.Role}, nil
}
