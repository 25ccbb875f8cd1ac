package models

import (
	"errors"
	"strings"
	"time"
)

type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusRead      ContactStatus = "read"
	ContactStatusResponded ContactStatus = "responded"
	ContactStatusResolved  ContactStatus = "resolved"
)

var contactStatusRank = map[ContactStatus]int{
	ContactStatusNew:       0,
	ContactStatusRead:      1,
	ContactStatusResponded: 2,
	ContactStatusResolved:  3,
}

func ParseContactStatus(s string) (ContactStatus, error) {
	status := ContactStatus(strings.ToLower(s))
	if _, ok := contactStatusRank[status]; !ok {
		return "", errors.New("invalid contact status: " + s)
	}
	return status, nil
}

func (s ContactStatus) Terminal() bool {
	return s == ContactStatusResolved
}

// CanTransition: forward-only along new -> read -> responded -> resolved.
func (s ContactStatus) CanTransition(target ContactStatus) bool {
	fromRank, ok := contactStatusRank[s]
	if !ok || s.Terminal() {
		return false
	}
	toRank, ok := contactStatusRank[target]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// ContactMessage is a customer support inquiry, unrelated to orders but sharing
// the same bulk-transition machinery.
type ContactMessage struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"not null" json:"name"`
	Email     string        `gorm:"not null" json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `gorm:"not null" json:"message"`
	Status    ContactStatus `gorm:"type:VARCHAR(20);default:'new'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
