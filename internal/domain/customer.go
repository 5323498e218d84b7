package domain

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Phone2  string `json:"phone2,omitempty"`
	Aadhar  string `json:"aadhar,omitempty"`
	Address string `json:"address,omitempty"`
	Photo   string `json:"photo,omitempty"`
}
