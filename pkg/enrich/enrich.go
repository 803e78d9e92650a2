// Package enrich joins independently fetched entity lists into the
// denormalized job views the UI renders. The join is a pure projection over
// explicit inputs: no fetching, no hidden cache, and correctness depends
// only on the freshness of the three lists the caller supplies.
package enrich

import "github.com/garnizeh/crm/pkg/models"

// EnrichedJob pairs a job with its owning client and the detail records of
// its assigned people.
type EnrichedJob struct {
	models.JobWithPeople
	Client                *models.Client  `json:"client,omitempty"`
	AssignedPeopleDetails []models.Person `json:"assignedPeopleDetails"`
}

// Jobs matches each job's client by id and filters people down to the
// job's assignment list. Jobs referencing a client or person missing from
// the inputs keep a nil client or a shorter details list; they are not
// dropped.
func Jobs(jobs []models.JobWithPeople, clients []models.Client, people []models.Person) []EnrichedJob {
	clientsByID := make(map[string]*models.Client, len(clients))
	for i := range clients {
		clientsByID[clients[i].ID] = &clients[i]
	}

	peopleByID := make(map[string]models.Person, len(people))
	for i := range people {
		peopleByID[people[i].ID] = people[i]
	}

	out := make([]EnrichedJob, 0, len(jobs))
	for _, j := range jobs {
		e := EnrichedJob{
			JobWithPeople:         j,
			Client:                clientsByID[j.ClientID],
			AssignedPeopleDetails: []models.Person{},
		}
		for _, pid := range j.AssignedPeople {
			if p, ok := peopleByID[pid]; ok {
				e.AssignedPeopleDetails = append(e.AssignedPeopleDetails, p)
			}
		}

		out = append(out, e)
	}

	return out
}
