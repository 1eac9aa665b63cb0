package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// Typed views over data.attributes for mutating requests. The json tags
// use the flat wire keys, the validate tags run through the server's
// registered validator before the frontend layer sees the payload.

type reviewPayload struct {
	RefID   string  `json:"review.refid" validate:"required"`
	Rating  float64 `json:"review.rating" validate:"gte=0,lte=5"`
	Name    string  `json:"review.name" validate:"omitempty,max=100"`
	Comment string  `json:"review.comment" validate:"omitempty,max=4000"`
}

type customerPayload struct {
	Code      string `json:"customer.code" validate:"required,email"`
	Password  string `json:"customer.password" validate:"required"`
	FirstName string `json:"customer.firstname" validate:"omitempty,max=100"`
	LastName  string `json:"customer.lastname" validate:"omitempty,max=100"`
}

type basketAddressPayload struct {
	Type       string `json:"basket.address.type" validate:"required,oneof=delivery payment"`
	Salutation string `json:"basket.address.salutation" validate:"omitempty,max=20"`
	FirstName  string `json:"basket.address.firstname" validate:"omitempty,max=100"`
	LastName   string `json:"basket.address.lastname" validate:"omitempty,max=100"`
	Address1   string `json:"basket.address.address1" validate:"omitempty,max=200"`
	Address2   string `json:"basket.address.address2" validate:"omitempty,max=200"`
	PostalCode string `json:"basket.address.postal" validate:"omitempty,max=20"`
	City       string `json:"basket.address.city" validate:"omitempty,max=100"`
	CountryID  string `json:"basket.address.countryid" validate:"omitempty,len=2"`
	Email      string `json:"basket.address.email" validate:"omitempty,email"`
}

// bindAttributes decodes data.attributes into a typed payload and runs
// the struct validation rules. Validation failures surface as 400s.
func (s *Server) bindAttributes(c echo.Context, body map[string]any, dst any) error {
	raw, err := json.Marshal(bodyAttributes(body))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed attributes")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed attributes").SetInternal(err)
	}
	return c.Validate(dst)
}
