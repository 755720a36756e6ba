package services

import (
	"context"
	"github.com/maxaizer/talent-jobs/internal/clients/mail"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/samber/lo"
)

type mailSender interface {
	Send(ctx context.Context, message mail.Message) error
}

type teamAlerter interface {
	SendText(text string) error
}

type userReader interface {
	GetByID(ctx context.Context, ID string) (*entities.User, error)
}

type userLister interface {
	GetAll(ctx context.Context) ([]entities.User, error)
}

type profileIDLister interface {
	GetIDs(ctx context.Context) ([]string, error)
}

type profileLister interface {
	GetAll(ctx context.Context) ([]entities.CandidateProfile, error)
}

type notificationReader interface {
	GetByID(ctx context.Context, userID, ID string) (*entities.Notification, error)
}

type notificationWriter interface {
	Add(ctx context.Context, notification entities.Notification) error
}

// findIncompleteCandidates returns candidate users that have no candidate profile yet.
func findIncompleteCandidates(users []entities.User, profileIDs []string) []entities.User {
	completed := lo.SliceToMap(profileIDs, func(id string) (string, struct{}) {
		return id, struct{}{}
	})
	return lo.Filter(users, func(user entities.User, _ int) bool {
		_, ok := completed[user.ID]
		return user.IsCandidate() && !ok
	})
}

type incompleteCandidates struct {
	users    userLister
	profiles profileIDLister
}

func (s incompleteCandidates) load(ctx context.Context) ([]entities.User, error) {
	profileIDs, err := s.profiles.GetIDs(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return findIncompleteCandidates(users, profileIDs), nil
}
