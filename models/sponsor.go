package models

type Sponsor struct {
	ID           int     `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	LogoKey      string  `json:"-" db:"logo_key"`
	LogoURL      string  `json:"logo_url" db:"-"`
	LinkURL      *string `json:"link_url,omitempty" db:"link_url"`
	DisplayOrder int     `json:"display_order" db:"display_order"`
	Active       bool    `json:"active" db:"active"`
}
