package dto

// NaturalPersonDTO datos de persona natural.
type NaturalPersonDTO struct {
	FirstName     string `json:"first_name"`
	SecondName    string `json:"second_name,omitempty"`
	FirstSurname  string `json:"first_surname,omitempty"`
	SecondSurname string `json:"second_surname,omitempty"`
}

// LegalEntityDTO datos de persona jurídica y de su contacto.
type LegalEntityDTO struct {
	BusinessName string `json:"business_name"`
	WebSite      string `json:"web_site,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// CreateCustomerRequest alta de cliente. PersonType "N" exige NaturalPerson y "J"
// exige LegalEntity; nunca ambos.
type CreateCustomerRequest struct {
	UserName       string            `json:"user_name"`
	PersonType     string            `json:"person_type"`
	DocumentType   string            `json:"document_type"`
	DocumentNumber string            `json:"document_number"`
	NaturalPerson  *NaturalPersonDTO `json:"natural_person,omitempty"`
	LegalEntity    *LegalEntityDTO   `json:"legal_entity,omitempty"`
}

// CustomerResponse cliente con su nombre para mostrar ya resuelto.
type CustomerResponse struct {
	ID             string            `json:"id"`
	UserName       string            `json:"user_name"`
	PersonType     string            `json:"person_type"`
	DisplayName    string            `json:"display_name"`
	DocumentType   string            `json:"document_type,omitempty"`
	DocumentNumber string            `json:"document_number,omitempty"`
	Document       string            `json:"document,omitempty"`
	NaturalPerson  *NaturalPersonDTO `json:"natural_person,omitempty"`
	LegalEntity    *LegalEntityDTO   `json:"legal_entity,omitempty"`
}

// CustomerListResponse página de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
