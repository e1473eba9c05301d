package form

import "cadastro/pkg/validation"

// Submission is the registration form as it would be posted. The handlers never block on
// it; hosts call Validate before sending.
type Submission struct {
	Name         string `form:"nome_completo" validate:"notblank,max=120"`
	CPF          string `form:"cpf" validate:"cpf"`
	Phone        string `form:"telefone" validate:"phone_br"`
	BirthDate    string `form:"data_nascimento" validate:"omitempty,date_br"`
	CEP          string `form:"cep" validate:"cep"`
	Street       string `form:"logradouro" validate:"max=120"`
	Neighborhood string `form:"bairro" validate:"max=80"`
	City         string `form:"cidade" validate:"max=80"`
	State        string `form:"uf" validate:"omitempty,uf"`

	Amounts map[FieldID]string `form:"valores" validate:"dive,omitempty,money_br"`
}

// Collect reads the layout's fields. Fields missing from the page read as empty.
func Collect(fields Fields, l Layout) Submission {
	read := func(id FieldID) string {
		if id == "" {
			return ""
		}
		v, _ := fields.Value(id)
		return v
	}
	s := Submission{
		Name:         read(l.Name),
		CPF:          read(l.CPF),
		Phone:        read(l.Phone),
		BirthDate:    read(l.BirthDate),
		CEP:          read(l.CEP),
		Street:       read(l.Street),
		Neighborhood: read(l.Neighborhood),
		City:         read(l.City),
		State:        read(l.State),
	}
	if len(l.Money) > 0 {
		s.Amounts = make(map[FieldID]string, len(l.Money))
		for _, id := range l.Money {
			s.Amounts[id] = read(id)
		}
	}
	return s
}

// Validate checks every value is in its final format. The error is a domain validation
// error naming the first offending field.
func (s Submission) Validate() error {
	return validation.Validate(s)
}
