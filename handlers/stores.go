package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/bbyeodagung/web/repository"
)

// The stores below are satisfied by *repository.Queries.

type UserStore interface {
	ListUsers(ctx context.Context) ([]repository.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (repository.User, error)
	GetUserByEmail(ctx context.Context, email string) (repository.User, error)
	CreateUser(ctx context.Context, arg repository.CreateUserParams) (repository.User, error)
	UpdateUser(ctx context.Context, arg repository.UpdateUserParams) (repository.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// SubscriberFinder links users to the subscriber with the same email.
type SubscriberFinder interface {
	GetSubscriberByEmail(ctx context.Context, email string) (repository.Subscriber, error)
}

type SubscriberStore interface {
	SubscriberFinder
	ListSubscribers(ctx context.Context) ([]repository.Subscriber, error)
	GetSubscriber(ctx context.Context, id uuid.UUID) (repository.Subscriber, error)
	CreateSubscriber(ctx context.Context, arg repository.CreateSubscriberParams) (repository.Subscriber, error)
	UpdateSubscriber(ctx context.Context, arg repository.UpdateSubscriberParams) (repository.Subscriber, error)
	DeleteSubscriber(ctx context.Context, id uuid.UUID) error
}

type CourseStore interface {
	ListCourses(ctx context.Context) ([]repository.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (repository.Course, error)
	CreateCourse(ctx context.Context, arg repository.CreateCourseParams) (repository.Course, error)
	UpdateCourse(ctx context.Context, arg repository.UpdateCourseParams) (repository.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type TalkStore interface {
	ListTalks(ctx context.Context) ([]repository.Talk, error)
	GetTalk(ctx context.Context, id uuid.UUID) (repository.Talk, error)
	CreateTalk(ctx context.Context, arg repository.CreateTalkParams) (repository.Talk, error)
	UpdateTalk(ctx context.Context, arg repository.UpdateTalkParams) (repository.Talk, error)
	DeleteTalk(ctx context.Context, id uuid.UUID) error
}

type TrainStore interface {
	ListTrains(ctx context.Context) ([]repository.Train, error)
	ListTrainsByDeparture(ctx context.Context) ([]repository.Train, error)
	GetTrain(ctx context.Context, id uuid.UUID) (repository.Train, error)
	CreateTrain(ctx context.Context, arg repository.CreateTrainParams) (repository.Train, error)
	UpdateTrain(ctx context.Context, arg repository.UpdateTrainParams) (repository.Train, error)
	DeleteTrain(ctx context.Context, id uuid.UUID) error
}
