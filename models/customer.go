package models

// Customer is the account of a shop user. The password hash never leaves
// the frontend layer; ToMap exports only presentable attributes.
type Customer struct {
	ID           string
	Code         string // login, usually the email address
	Label        string
	Salutation   string
	FirstName    string
	LastName     string
	Email        string
	Status       int
	PasswordHash string
	Addresses    []*Address
	Lists        []*ListItem // favorite/watch product references
	Properties   []*Property
}

func (c *Customer) ItemID() string             { return c.ID }
func (c *Customer) ResourceType() string       { return "customer" }
func (c *Customer) ListItems() []*ListItem     { return c.Lists }
func (c *Customer) PropertyItems() []*Property { return c.Properties }

func (c *Customer) ToMap() map[string]any {
	return map[string]any{
		"customer.id":         c.ID,
		"customer.code":       c.Code,
		"customer.label":      c.Label,
		"customer.salutation": c.Salutation,
		"customer.firstname":  c.FirstName,
		"customer.lastname":   c.LastName,
		"customer.email":      c.Email,
		"customer.status":     c.Status,
	}
}

// Address returns the customer address with the given id, or nil.
func (c *Customer) Address(id string) *Address {
	for _, a := range c.Addresses {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Address is a delivery or billing address owned by a customer.
type Address struct {
	ID         string
	ParentID   string
	Salutation string
	FirstName  string
	LastName   string
	Address1   string // street
	Address2   string // number
	PostalCode string
	City       string
	CountryID  string
	LanguageID string
	Telephone  string
	Email      string
	Position   int
}

func (a *Address) ItemID() string       { return a.ID }
func (a *Address) ResourceType() string { return "customer.address" }

func (a *Address) ToMap() map[string]any {
	return map[string]any{
		"customer.address.id":         a.ID,
		"customer.address.parentid":   a.ParentID,
		"customer.address.salutation": a.Salutation,
		"customer.address.firstname":  a.FirstName,
		"customer.address.lastname":   a.LastName,
		"customer.address.address1":   a.Address1,
		"customer.address.address2":   a.Address2,
		"customer.address.postal":     a.PostalCode,
		"customer.address.city":       a.City,
		"customer.address.countryid":  a.CountryID,
		"customer.address.languageid": a.LanguageID,
		"customer.address.telephone":  a.Telephone,
		"customer.address.email":      a.Email,
		"customer.address.position":   a.Position,
	}
}
