package models

// Provider is a seamstress directory entry. Records are immutable once
// fetched; the identifier is stable within one data-source snapshot.
type Provider struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
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

// Review is a customer review shown on a provider profile.
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
