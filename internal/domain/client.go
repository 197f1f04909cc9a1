package domain

import "strings"

// Client is a private person the workshop contracts with.
type Client struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	FirstName     string `json:"first_name" gorm:"size:100"`
	LastName      string `json:"last_name" gorm:"size:100"`
	MiddleName    string `json:"middle_name" gorm:"size:100"`
	ContactNumber string `json:"contact_number" gorm:"size:20"`
	Address       string `json:"address" gorm:"type:text"`
	Comments      string `json:"comments" gorm:"type:text"`
}

func (c *Client) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.LastName, c.FirstName, c.MiddleName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Firm is a corporate client. The contact person is always a Client row.
type Firm struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ContactID uint   `json:"contact_id" gorm:"not null"`
	Contact   Client `json:"contact" gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`

	ShortName     string `json:"short_name" gorm:"size:100"`
	FullName      string `json:"full_name" gorm:"size:255"`
	LegalAddress  string `json:"legal_address" gorm:"type:text"`
	ActualAddress string `json:"actual_address" gorm:"type:text"`

	INN  string `json:"inn" gorm:"column:inn;size:12"`
	KPP  string `json:"kpp" gorm:"column:kpp;size:9"`
	OGRN string `json:"ogrn" gorm:"column:ogrn;size:15"`

	ContactNumber   string `json:"contact_number" gorm:"size:20"`
	CorporateNumber string `json:"corporate_number" gorm:"size:20"`
	Comments        string `json:"comments" gorm:"type:text"`
}
