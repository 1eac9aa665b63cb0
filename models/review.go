package models

// Review is a customer rating for an item of another domain, usually a
// product.
type Review struct {
	ID         string
	CustomerID string
	Domain     string // reviewed domain, "product"
	RefID      string // reviewed item id
	Name       string // display name of the reviewer
	Rating     int
	Comment    string
	Response   string // shop owner response
	Status     int
	CTime      string
}

func (r *Review) ItemID() string       { return r.ID }
func (r *Review) ResourceType() string { return "review" }

func (r *Review) ToMap() map[string]any {
	return map[string]any{
		"review.id":         r.ID,
		"review.customerid": r.CustomerID,
		"review.domain":     r.Domain,
		"review.refid":      r.RefID,
		"review.name":       r.Name,
		"review.rating":     r.Rating,
		"review.comment":    r.Comment,
		"review.response":   r.Response,
		"review.status":     r.Status,
		"review.ctime":      r.CTime,
	}
}
