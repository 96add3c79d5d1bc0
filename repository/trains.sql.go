package repository

import (
	"context"

	"github.com/google/uuid"
)

const trainColumns = `id, line_name, train_number, origin, destination, departs_at, arrives_at, fare, created_at, updated_at`

const listTrains = `SELECT ` + trainColumns + ` FROM trains ORDER BY created_at DESC`

func (q *Queries) ListTrains(ctx context.Context) ([]Train, error) {
	return list[Train](ctx, q.db, "list trains", listTrains)
}

// Timetable order, used by the transportation page.
const listTrainsByDeparture = `SELECT ` + trainColumns + ` FROM trains ORDER BY departs_at, line_name`

func (q *Queries) ListTrainsByDeparture(ctx context.Context) ([]Train, error) {
	return list[Train](ctx, q.db, "list trains by departure", listTrainsByDeparture)
}

const getTrain = `SELECT ` + trainColumns + ` FROM trains WHERE id = $1`

func (q *Queries) GetTrain(ctx context.Context, id uuid.UUID) (Train, error) {
	return getOne[Train](ctx, q.db, "get train", getTrain, id)
}

const createTrain = `INSERT INTO trains (id, line_name, train_number, origin, destination, departs_at, arrives_at, fare)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + trainColumns

type CreateTrainParams struct {
	LineName    string
	TrainNumber string
	Origin      string
	Destination string
	DepartsAt   string
	ArrivesAt   string
	Fare        int
}

func (q *Queries) CreateTrain(ctx context.Context, arg CreateTrainParams) (Train, error) {
	return getOne[Train](ctx, q.db, "create train", createTrain,
		uuid.New(), arg.LineName, arg.TrainNumber, arg.Origin, arg.Destination, arg.DepartsAt, arg.ArrivesAt, arg.Fare)
}

const updateTrain = `UPDATE trains SET
    line_name = $2,
    train_number = $3,
    origin = $4,
    destination = $5,
    departs_at = $6,
    arrives_at = $7,
    fare = $8,
    updated_at = now()
WHERE id = $1
RETURNING ` + trainColumns

type UpdateTrainParams struct {
	ID          uuid.UUID
	LineName    string
	TrainNumber string
	Origin      string
	Destination string
	DepartsAt   string
	ArrivesAt   string
	Fare        int
}

func (q *Queries) UpdateTrain(ctx context.Context, arg UpdateTrainParams) (Train, error) {
	return getOne[Train](ctx, q.db, "update train", updateTrain,
		arg.ID, arg.LineName, arg.TrainNumber, arg.Origin, arg.Destination, arg.DepartsAt, arg.ArrivesAt, arg.Fare)
}

const deleteTrain = `DELETE FROM trains WHERE id = $1`

func (q *Queries) DeleteTrain(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, q.db, "delete train", deleteTrain, id)
}
