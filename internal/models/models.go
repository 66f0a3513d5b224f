package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var Currencies = []string{"USD", "EUR", "GBP", "CHF", "CAD", "AUD", "NZD", "DKK", "NOK", "SEK"}

const (
	DefaultPrimaryColor   = "#2196f3"
	DefaultSecondaryColor = "#4caf50"
	DefaultErrorColor     = "#f44336"
)

// Base holds the fields the server owns on every stored document. The
// ObjectID serialises to JSON as its hex string.
type Base struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (b *Base) Meta() *Base {
	return b
}

type Appointment struct {
	Base         `bson:",inline"`
	ServiceID    primitive.ObjectID `bson:"serviceId" json:"serviceId" validate:"required"`
	Time         DateTime           `bson:"time" json:"time" validate:"required,appointmentwindow"`
	FirstName    string             `bson:"firstName" json:"firstName" validate:"required,min=2,max=50"`
	LastName     string             `bson:"lastName" json:"lastName" validate:"required,min=2,max=50"`
	MobileNumber string             `bson:"mobileNumber" json:"mobileNumber" validate:"required,min=4,max=15"`
	Email        string             `bson:"email" json:"email" validate:"required,max=255,looseemail"`
}

type ContactRequest struct {
	Base    `bson:",inline"`
	Message string `bson:"message" json:"message" validate:"required,min=10,max=2000"`
	Email   string `bson:"email" json:"email" validate:"required,max=255,looseemail"`
}

type Email struct {
	Base  `bson:",inline"`
	Email string `bson:"email" json:"email" validate:"required,max=255,looseemail"`
}

type Price struct {
	Amount   *float64 `bson:"amount" json:"amount" validate:"required,gte=0"`
	Currency string   `bson:"currency" json:"currency" validate:"required,currency"`
}

type Service struct {
	Base              `bson:",inline"`
	Name              string `bson:"name" json:"name" validate:"required"`
	Description       string `bson:"description" json:"description" validate:"required"`
	Price             Price  `bson:"price" json:"price"`
	DurationInMinutes int    `bson:"durationInMinutes" json:"durationInMinutes" validate:"required,gte=1"`
}

func (s *Service) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
}

type Color struct {
	Main string `bson:"main" json:"main" validate:"required,themecolor"`
}

type Palette struct {
	Primary   Color `bson:"primary" json:"primary"`
	Secondary Color `bson:"secondary" json:"secondary"`
	Error     Color `bson:"error" json:"error"`
}

// Theme is stored as a single document; see theme.Service.
type Theme struct {
	Base    `bson:",inline"`
	Palette Palette `bson:"palette" json:"palette"`
}

func DefaultTheme() Theme {
	return Theme{
		Palette: Palette{
			Primary:   Color{Main: DefaultPrimaryColor},
			Secondary: Color{Main: DefaultSecondaryColor},
			Error:     Color{Main: DefaultErrorColor},
		},
	}
}
