package dto

// CountResponse is returned by the registration count endpoint.
type CountResponse struct {
	Count int `json:"count"`
}
