package domain

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RequestType is the kind of help an inquiry asks for
type RequestType string

const (
	RequestCustom       RequestType = "custom"
	RequestAlteration   RequestType = "alteration"
	RequestConsultation RequestType = "consultation"
)

// RequestTypes lists the accepted request types in display order
var RequestTypes = []RequestType{RequestCustom, RequestAlteration, RequestConsultation}

// ParseRequestType returns the RequestType named by s
func ParseRequestType(s string) (RequestType, error) {
	for _, rt := range RequestTypes {
		if string(rt) == s {
			return rt, nil
		}
	}
	return "", fmt.Errorf("unknown request type %q", s)
}

// Inquiry represents a contact form submission.
// Email and Phone hold "" rather than NULL when not provided.
type Inquiry struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Email       string      `gorm:"not null" json:"email"`
	Phone       string      `gorm:"not null" json:"phone"`
	RequestType RequestType `gorm:"size:50;not null;index" json:"request_type"`
	Message     string      `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TableName specifies the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate hook
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.CreatedAt.IsZero() {
		i.CreatedAt = tx.NowFunc()
	}
	return nil
}

func (i Inquiry) String() string {
	return fmt.Sprintf("%s - %s", i.Name, i.RequestType)
}
