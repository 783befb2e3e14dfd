package models

import "time"

type User struct {
	UUID             string    `json:"uuid" db:"uuid"`
	Email            string    `json:"-" db:"email"`
	IP               string    `json:"-" db:"ip"`
	AvailableCredits float64   `json:"available_credits" db:"available_credits"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
