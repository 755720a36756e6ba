package mail

import (
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Message struct {
	To         string
	TemplateID string
	Data       map[string]any
}

func (m Message) toV3(from string) *sgmail.SGMailV3 {
	personalization := sgmail.NewPersonalization()
	personalization.AddTos(sgmail.NewEmail("", m.To))
	for key, value := range m.Data {
		personalization.SetDynamicTemplateData(key, value)
	}

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(sgmail.NewEmail("", from))
	v3.SetTemplateID(m.TemplateID)
	v3.AddPersonalizations(personalization)
	return v3
}
