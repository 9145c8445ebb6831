// Package models defines the server-side data types: stored account and
// provider records plus the wire shapes returned by the HTTP API.
package models

import "time"

// User is a stored account record. The password hash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Gender       string    `json:"gender"`
	Image        string    `json:"image"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// AuthenticatedUser is the login response payload: the account record plus a
// fresh access token.
type AuthenticatedUser struct {
	User
	Token string `json:"token"`
}

// Provider is a directory listing entry. PhotoKey is the object storage key
// of the profile photo; Photo carries the resolved (possibly presigned) URL
// on the wire.
type Provider struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	PhotoKey string   `json:"-"`
	Photo    string   `json:"photo"`
	Rating   string   `json:"rating"`
	Distance string   `json:"distance"`
	Services []string `json:"services"`
	Price    string   `json:"price"`
}

// ServiceOffer is a single priced service on a provider profile.
type ServiceOffer struct {
	Name       string `json:"name"`
	PriceRange string `json:"priceRange"`
}

// Review is a customer review attached to a provider profile.
type Review struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Date         string `json:"date"`
}

// Profile is the full provider record returned by the profile endpoint.
type Profile struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	PhotoKey       string         `json:"-"`
	Photo          string         `json:"photo"`
	Bio            string         `json:"bio"`
	Rating         string         `json:"rating"`
	ReviewCount    int            `json:"reviewCount"`
	Experience     int            `json:"experience"`
	Specialization string         `json:"specialization"`
	Education      string         `json:"education"`
	WorkingHours   string         `json:"workingHours"`
	Status         string         `json:"status"`
	Distance       string         `json:"distance"`
	Offers         []ServiceOffer `json:"services"`
	Reviews        []Review       `json:"reviews"`
}
