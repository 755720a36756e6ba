package services

import (
	"context"
	"errors"
	"github.com/maxaizer/talent-jobs/internal/clients/mail"
	"github.com/maxaizer/talent-jobs/internal/clients/probe"
	"github.com/maxaizer/talent-jobs/internal/config"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/stretchr/testify/mock"
	"sync"
)

var testMailConfig = config.MailConfig{
	APIKey:               "SG.test",
	From:                 "team@example.com",
	TeamAddress:          "team@example.com",
	MaxRequestsPerSecond: 10,
	Templates: config.TemplatesConfig{
		CandidateWelcome:  "tpl-candidate-welcome",
		RecruiterWelcome:  "tpl-recruiter-welcome",
		NewCandidateAlert: "tpl-new-candidate",
		Notification:      "tpl-notification",
		ProfileReminder:   "tpl-reminder",
		Recommendations:   "tpl-recommendations",
		SweepReport:       "tpl-sweep",
		GapReport:         "tpl-gap",
	},
}

type fakeMailer struct {
	mu       sync.Mutex
	messages []mail.Message
	failFor  map[string]error
}

func (m *fakeMailer) Send(_ context.Context, message mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[message.To]; ok {
		return err
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *fakeMailer) sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.messages...)
}

func (m *fakeMailer) byTemplate(templateID string) []mail.Message {
	var result []mail.Message
	for _, msg := range m.sent() {
		if msg.TemplateID == templateID {
			result = append(result, msg)
		}
	}
	return result
}

type fakeUsers struct {
	users []entities.User
}

func (f *fakeUsers) GetByID(_ context.Context, ID string) (*entities.User, error) {
	for _, user := range f.users {
		if user.ID == ID {
			u := user
			return &u, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeUsers) GetAll(_ context.Context) ([]entities.User, error) {
	return f.users, nil
}

type fakeProfiles struct {
	profiles []entities.CandidateProfile
}

func (f *fakeProfiles) GetAll(_ context.Context) ([]entities.CandidateProfile, error) {
	return append([]entities.CandidateProfile(nil), f.profiles...), nil
}

func (f *fakeProfiles) GetIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.profiles))
	for _, p := range f.profiles {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

type mockNotifications struct {
	mock.Mock
}

func (m *mockNotifications) GetByID(ctx context.Context, userID, ID string) (*entities.Notification, error) {
	args := m.Called(ctx, userID, ID)
	notification, _ := args.Get(0).(*entities.Notification)
	return notification, args.Error(1)
}

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Check(ctx context.Context, link string) probe.Result {
	return m.Called(ctx, link).Get(0).(probe.Result)
}

type mockPositions struct {
	mock.Mock
}

func (m *mockPositions) GetAll(ctx context.Context) ([]entities.Position, error) {
	args := m.Called(ctx)
	positions, _ := args.Get(0).([]entities.Position)
	return positions, args.Error(1)
}

func (m *mockPositions) RemoveCascade(ctx context.Context, position entities.Position,
	notice func(interest entities.MutualInterest) entities.Notification) ([]entities.MutualInterest, error) {
	args := m.Called(ctx, position, notice)
	interests, _ := args.Get(0).([]entities.MutualInterest)
	return interests, args.Error(1)
}

type fakeAlerter struct {
	texts []string
}

func (f *fakeAlerter) SendText(text string) error {
	f.texts = append(f.texts, text)
	return nil
}
