package inquiry

import (
	"strings"
	"time"

	"github.com/komorebi/backend/internal/domain/shared"
)

// Status of a contact inquiry. Replying is one-way: there is no
// transition back to unread.
type Status string

const (
	StatusUnread  Status = "UNREAD"
	StatusReplied Status = "REPLIED"
)

// Inquiry is a message submitted through the contact form
type Inquiry struct {
	shared.BaseAggregateRoot
	Name      string     `gorm:"type:varchar(100);not null"`
	Email     string     `gorm:"type:varchar(200);not null"`
	Message   string     `gorm:"type:text;not null"`
	Status    Status     `gorm:"type:varchar(10);not null;default:'UNREAD'"`
	RepliedAt *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (Inquiry) TableName() string {
	return "inquiries"
}

// NewInquiry creates a new unread inquiry
func NewInquiry(name, email, message string) (*Inquiry, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}

	return &Inquiry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Message:           message,
		Status:            StatusUnread,
	}, nil
}

// MarkReplied records that the inquiry was answered. Idempotent: marking
// an already replied inquiry keeps its original reply timestamp.
func (i *Inquiry) MarkReplied() {
	if i.Status == StatusReplied {
		return
	}
	now := time.Now()
	i.Status = StatusReplied
	i.RepliedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()
}

// IsReplied reports whether the inquiry was answered
func (i *Inquiry) IsReplied() bool {
	return i.Status == StatusReplied
}
