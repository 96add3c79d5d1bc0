package handlers_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bbyeodagung/web/pkg/job"
	"github.com/bbyeodagung/web/repository"
)

// table keeps rows in insertion order.
type table[T any] struct {
	rows []T
	id   func(T) uuid.UUID
}

func (t *table[T]) get(id uuid.UUID) (T, error) {
	for _, r := range t.rows {
		if t.id(r) == id {
			return r, nil
		}
	}
	var zero T
	return zero, repository.ErrNotFound
}

func (t *table[T]) put(v T) {
	for i, r := range t.rows {
		if t.id(r) == t.id(v) {
			t.rows[i] = v
			return
		}
	}
	t.rows = append(t.rows, v)
}

func (t *table[T]) remove(id uuid.UUID) error {
	for i, r := range t.rows {
		if t.id(r) == id {
			t.rows = slices.Delete(t.rows, i, i+1)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (t *table[T]) newest() []T {
	out := slices.Clone(t.rows)
	slices.Reverse(out)
	return out
}

// memDB implements every store the handlers need.
type memDB struct {
	mu          sync.Mutex
	fail        error
	users       table[repository.User]
	subscribers table[repository.Subscriber]
	courses     table[repository.Course]
	talks       table[repository.Talk]
	trains      table[repository.Train]
	trainLists  int
}

func newMemDB() *memDB {
	return &memDB{
		users:       table[repository.User]{id: func(v repository.User) uuid.UUID { return v.ID }},
		subscribers: table[repository.Subscriber]{id: func(v repository.Subscriber) uuid.UUID { return v.ID }},
		courses:     table[repository.Course]{id: func(v repository.Course) uuid.UUID { return v.ID }},
		talks:       table[repository.Talk]{id: func(v repository.Talk) uuid.UUID { return v.ID }},
		trains:      table[repository.Train]{id: func(v repository.Train) uuid.UUID { return v.ID }},
	}
}

func (m *memDB) lock() (func(), error) {
	m.mu.Lock()
	return m.mu.Unlock, m.fail
}

func duplicateEmail(constraint string) error {
	return &repository.DuplicateError{Field: "email", Constraint: constraint}
}

// users

func (m *memDB) ListUsers(context.Context) ([]repository.User, error) {
	unlock, err := m.lock()
	defer unlock()
	return m.users.newest(), err
}

func (m *memDB) GetUser(_ context.Context, id uuid.UUID) (repository.User, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.User{}, err
	}
	return m.users.get(id)
}

func (m *memDB) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.User{}, err
	}
	for _, u := range m.users.rows {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (m *memDB) userEmailTaken(email string, except uuid.UUID) bool {
	return slices.ContainsFunc(m.users.rows, func(u repository.User) bool {
		return u.Email == email && u.ID != except
	})
}

func (m *memDB) CreateUser(_ context.Context, arg repository.CreateUserParams) (repository.User, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.User{}, err
	}
	if m.userEmailTaken(arg.Email, uuid.Nil) {
		return repository.User{}, duplicateEmail("users_email_key")
	}
	u := repository.User{
		ID:           uuid.New(),
		FirstName:    arg.FirstName,
		LastName:     arg.LastName,
		Email:        arg.Email,
		ZipCode:      arg.ZipCode,
		PasswordHash: arg.PasswordHash,
		SubscriberID: arg.SubscriberID,
		CreatedAt:    time.Now(),
	}
	m.users.put(u)
	return u, nil
}

func (m *memDB) UpdateUser(_ context.Context, arg repository.UpdateUserParams) (repository.User, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.User{}, err
	}
	u, err := m.users.get(arg.ID)
	if err != nil {
		return u, err
	}
	if m.userEmailTaken(arg.Email, arg.ID) {
		return repository.User{}, duplicateEmail("users_email_key")
	}
	u.FirstName, u.LastName, u.Email, u.ZipCode = arg.FirstName, arg.LastName, arg.Email, arg.ZipCode
	u.SubscriberID = arg.SubscriberID
	if arg.PasswordHash != "" {
		u.PasswordHash = arg.PasswordHash
	}
	m.users.put(u)
	return u, nil
}

func (m *memDB) DeleteUser(_ context.Context, id uuid.UUID) error {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return err
	}
	return m.users.remove(id)
}

// subscribers

func (m *memDB) ListSubscribers(context.Context) ([]repository.Subscriber, error) {
	unlock, err := m.lock()
	defer unlock()
	return m.subscribers.newest(), err
}

func (m *memDB) GetSubscriber(_ context.Context, id uuid.UUID) (repository.Subscriber, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Subscriber{}, err
	}
	return m.subscribers.get(id)
}

func (m *memDB) GetSubscriberByEmail(_ context.Context, email string) (repository.Subscriber, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Subscriber{}, err
	}
	for _, s := range m.subscribers.rows {
		if s.Email == email {
			return s, nil
		}
	}
	return repository.Subscriber{}, repository.ErrNotFound
}

func (m *memDB) subscriberEmailTaken(email string, except uuid.UUID) bool {
	return slices.ContainsFunc(m.subscribers.rows, func(s repository.Subscriber) bool {
		return s.Email == email && s.ID != except
	})
}

func (m *memDB) CreateSubscriber(_ context.Context, arg repository.CreateSubscriberParams) (repository.Subscriber, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Subscriber{}, err
	}
	if m.subscriberEmailTaken(arg.Email, uuid.Nil) {
		return repository.Subscriber{}, duplicateEmail("subscribers_email_key")
	}
	s := repository.Subscriber{ID: uuid.New(), Name: arg.Name, Email: arg.Email, ZipCode: arg.ZipCode, CreatedAt: time.Now()}
	m.subscribers.put(s)
	return s, nil
}

func (m *memDB) UpdateSubscriber(_ context.Context, arg repository.UpdateSubscriberParams) (repository.Subscriber, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Subscriber{}, err
	}
	s, err := m.subscribers.get(arg.ID)
	if err != nil {
		return s, err
	}
	if m.subscriberEmailTaken(arg.Email, arg.ID) {
		return repository.Subscriber{}, duplicateEmail("subscribers_email_key")
	}
	s.Name, s.Email, s.ZipCode = arg.Name, arg.Email, arg.ZipCode
	m.subscribers.put(s)
	return s, nil
}

func (m *memDB) DeleteSubscriber(_ context.Context, id uuid.UUID) error {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return err
	}
	return m.subscribers.remove(id)
}

// courses

func (m *memDB) ListCourses(context.Context) ([]repository.Course, error) {
	unlock, err := m.lock()
	defer unlock()
	return m.courses.newest(), err
}

func (m *memDB) GetCourse(_ context.Context, id uuid.UUID) (repository.Course, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Course{}, err
	}
	return m.courses.get(id)
}

func (m *memDB) CreateCourse(_ context.Context, arg repository.CreateCourseParams) (repository.Course, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Course{}, err
	}
	for _, c := range m.courses.rows {
		if c.Title == arg.Title {
			return repository.Course{}, &repository.DuplicateError{Field: "title", Constraint: "courses_title_key"}
		}
	}
	c := repository.Course{
		ID:          uuid.New(),
		Title:       arg.Title,
		Description: arg.Description,
		MaxStudents: arg.MaxStudents,
		Cost:        arg.Cost,
		ImageKey:    arg.ImageKey,
		CreatedAt:   time.Now(),
	}
	m.courses.put(c)
	return c, nil
}

func (m *memDB) UpdateCourse(_ context.Context, arg repository.UpdateCourseParams) (repository.Course, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Course{}, err
	}
	c, err := m.courses.get(arg.ID)
	if err != nil {
		return c, err
	}
	c.Title, c.Description, c.MaxStudents, c.Cost, c.ImageKey = arg.Title, arg.Description, arg.MaxStudents, arg.Cost, arg.ImageKey
	m.courses.put(c)
	return c, nil
}

func (m *memDB) DeleteCourse(_ context.Context, id uuid.UUID) error {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return err
	}
	return m.courses.remove(id)
}

// talks

func (m *memDB) ListTalks(context.Context) ([]repository.Talk, error) {
	unlock, err := m.lock()
	defer unlock()
	return m.talks.newest(), err
}

func (m *memDB) GetTalk(_ context.Context, id uuid.UUID) (repository.Talk, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Talk{}, err
	}
	return m.talks.get(id)
}

func (m *memDB) CreateTalk(_ context.Context, arg repository.CreateTalkParams) (repository.Talk, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Talk{}, err
	}
	t := repository.Talk{
		ID:          uuid.New(),
		Title:       arg.Title,
		Speaker:     arg.Speaker,
		Description: arg.Description,
		ScheduledAt: arg.ScheduledAt,
		Location:    arg.Location,
		CreatedAt:   time.Now(),
	}
	m.talks.put(t)
	return t, nil
}

func (m *memDB) UpdateTalk(_ context.Context, arg repository.UpdateTalkParams) (repository.Talk, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Talk{}, err
	}
	t, err := m.talks.get(arg.ID)
	if err != nil {
		return t, err
	}
	t.Title, t.Speaker, t.Description, t.ScheduledAt, t.Location = arg.Title, arg.Speaker, arg.Description, arg.ScheduledAt, arg.Location
	m.talks.put(t)
	return t, nil
}

func (m *memDB) DeleteTalk(_ context.Context, id uuid.UUID) error {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return err
	}
	return m.talks.remove(id)
}

// trains

func (m *memDB) ListTrains(context.Context) ([]repository.Train, error) {
	unlock, err := m.lock()
	defer unlock()
	return m.trains.newest(), err
}

func (m *memDB) ListTrainsByDeparture(context.Context) ([]repository.Train, error) {
	unlock, err := m.lock()
	defer unlock()
	m.trainLists++
	out := slices.Clone(m.trains.rows)
	slices.SortFunc(out, func(a, b repository.Train) int { return strings.Compare(a.DepartsAt, b.DepartsAt) })
	return out, err
}

func (m *memDB) GetTrain(_ context.Context, id uuid.UUID) (repository.Train, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Train{}, err
	}
	return m.trains.get(id)
}

func (m *memDB) CreateTrain(_ context.Context, arg repository.CreateTrainParams) (repository.Train, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Train{}, err
	}
	t := repository.Train{
		ID:          uuid.New(),
		LineName:    arg.LineName,
		TrainNumber: arg.TrainNumber,
		Origin:      arg.Origin,
		Destination: arg.Destination,
		DepartsAt:   arg.DepartsAt,
		ArrivesAt:   arg.ArrivesAt,
		Fare:        arg.Fare,
		CreatedAt:   time.Now(),
	}
	m.trains.put(t)
	return t, nil
}

func (m *memDB) UpdateTrain(_ context.Context, arg repository.UpdateTrainParams) (repository.Train, error) {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return repository.Train{}, err
	}
	t, err := m.trains.get(arg.ID)
	if err != nil {
		return t, err
	}
	t.LineName, t.TrainNumber, t.Origin, t.Destination = arg.LineName, arg.TrainNumber, arg.Origin, arg.Destination
	t.DepartsAt, t.ArrivesAt, t.Fare = arg.DepartsAt, arg.ArrivesAt, arg.Fare
	m.trains.put(t)
	return t, nil
}

func (m *memDB) DeleteTrain(_ context.Context, id uuid.UUID) error {
	unlock, err := m.lock()
	defer unlock()
	if err != nil {
		return err
	}
	return m.trains.remove(id)
}

// recordingEnqueuer captures jobs instead of running them.
type recordingEnqueuer struct {
	mu   sync.Mutex
	jobs []enqueued
	err  error
}

type enqueued struct {
	name    string
	payload any
}

func (e *recordingEnqueuer) Enqueue(_ context.Context, name string, payload any, _ ...job.EnqueueOption) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.jobs = append(e.jobs, enqueued{name: name, payload: payload})
	return nil
}

func (e *recordingEnqueuer) names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.jobs))
	for _, j := range e.jobs {
		out = append(out, j.name)
	}
	return out
}
