package repository

import (
	"context"

	"github.com/garnizeh/crm/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Get and Update return (nil, nil) when the id does not exist. Delete
// reports whether a row was actually removed.

type PersonRepo interface {
	CreatePerson(ctx context.Context, p *models.Person) error
	GetPerson(ctx context.Context, id string) (*models.Person, error)
	ListPeople(ctx context.Context) ([]models.Person, error)
	UpdatePerson(ctx context.Context, id string, u *models.PersonUpdate) (*models.Person, error)
	DeletePerson(ctx context.Context, id string) (bool, error)
}

type ClientRepo interface {
	CreateClient(ctx context.Context, c *models.Client) error
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	UpdateClient(ctx context.Context, id string, u *models.ClientUpdate) (*models.Client, error)
	DeleteClient(ctx context.Context, id string) (bool, error)
}

type JobRepo interface {
	// CreateJob persists the job row and one linking row per person id in a
	// single transaction.
	CreateJob(ctx context.Context, j *models.Job, personIDs []string) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	GetJobWithPeople(ctx context.Context, id string) (*models.JobWithPeople, error)
	ListJobsWithPeople(ctx context.Context) ([]models.JobWithPeople, error)
	UpdateJob(ctx context.Context, id string, u *models.JobUpdate) (*models.JobWithPeople, error)
	DeleteJob(ctx context.Context, id string) (bool, error)

	// AddPersonToJob returns false when the job or person does not exist or
	// the pair is already assigned.
	AddPersonToJob(ctx context.Context, jobID, personID string) (bool, error)
	RemovePersonFromJob(ctx context.Context, jobID, personID string) (bool, error)
}
