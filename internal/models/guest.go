package models

import (
	"time"
)

type InvitationType string

const (
	InvitationFull    InvitationType = "full"
	InvitationEvening InvitationType = "evening"
)

type ResponseStatus string

const (
	ResponsePending   ResponseStatus = "pending"
	ResponseConfirmed ResponseStatus = "confirmed"
	ResponseDeclined  ResponseStatus = "declined"
)

type MenuType string

const (
	MenuAdulto  MenuType = "adulto"
	MenuBambino MenuType = "bambino"
	MenuNeonato MenuType = "neonato"
)

// Guest is one invitee. A guest with FamilyID set is a dependent member of
// the household led by the guest whose ID equals FamilyID; a guest with a
// nil FamilyID is either a household leader or a household of one.
type Guest struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	Name                string         `gorm:"not null" json:"name"`
	Surname             string         `gorm:"index" json:"surname"`
	Email               *string        `json:"email"`
	FamilyID            *uint          `gorm:"index" json:"family_id"`
	Family              *Guest         `gorm:"foreignKey:FamilyID;constraint:OnDelete:SET NULL" json:"-"`
	InvitationType      InvitationType `gorm:"not null" json:"invitation_type"`
	ResponseStatus      ResponseStatus `gorm:"default:pending;index" json:"response_status"`
	ResponseDate        *time.Time     `json:"response_date"`
	MenuType            *MenuType      `json:"menu_type"`
	DietaryRequirements *string        `json:"dietary_requirements"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// HasEmail reports whether the guest has a usable contact address.
func (g Guest) HasEmail() bool {
	return g.Email != nil && *g.Email != ""
}

func ValidInvitationType(t InvitationType) bool {
	return t == InvitationFull || t == InvitationEvening
}

func ValidMenuType(m MenuType) bool {
	return m == MenuAdulto || m == MenuBambino || m == MenuNeonato
}
