package form

import (
	"cadastro/internal/postal"
	"cadastro/pkg/mask"
)

// Layout names the fields of the client registration form. Empty identifiers and
// identifiers missing from the page are skipped.
type Layout struct {
	// Name is free text; it is only checked on submission.
	Name FieldID

	CPF       FieldID
	Phone     FieldID
	BirthDate FieldID
	CEP       FieldID

	// Filled from the postal lookup.
	Street       FieldID
	Neighborhood FieldID
	City         FieldID
	State        FieldID

	Money []FieldID
}

// DefaultLayout matches the element ids rendered by the registration form.
func DefaultLayout() Layout {
	return Layout{
		Name:         "id_nome_completo",
		CPF:          "id_cpf",
		Phone:        "id_telefone",
		BirthDate:    "id_data_nascimento",
		CEP:          "id_cep",
		Street:       "id_logradouro",
		Neighborhood: "id_bairro",
		City:         "id_cidade",
		State:        "id_uf",
	}
}

// maskedFields lists each masked field with its format, in a stable order.
func (l Layout) maskedFields() []maskedField {
	out := []maskedField{
		{l.CPF, mask.KindCPF},
		{l.Phone, mask.KindPhone},
		{l.BirthDate, mask.KindDate},
		{l.CEP, mask.KindCEP},
	}
	for _, id := range l.Money {
		out = append(out, maskedField{id, mask.KindMoney})
	}
	return out
}

type maskedField struct {
	id   FieldID
	kind mask.Kind
}

// addressTargets pairs each dependent field with the record value that fills it.
func (l Layout) addressTargets(a *postal.Address) []addressTarget {
	return []addressTarget{
		{l.Street, a.Street},
		{l.Neighborhood, a.Neighborhood},
		{l.City, a.City},
		{l.State, a.State},
	}
}

type addressTarget struct {
	id    FieldID
	value string
}
