package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/garnizeh/crm/pkg/models"
)

func (r *SQLiteRepo) CreateClient(ctx context.Context, c *models.Client) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	contacts, err := marshalContacts(c.ExtraContacts)
	if err != nil {
		return err
	}

	c.ID = newID()
	c.Created = now()
	if c.ExtraContacts == nil {
		c.ExtraContacts = []models.ClientContact{}
	}

	_, err = r.conn.Exec(ctx, `INSERT INTO clients (id, name, address, lead_contact, lead_contact_phone, lead_contact_email, extra_contacts, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, nullable(c.Address), nullable(c.LeadContact), nullable(c.LeadContactPhone), nullable(c.LeadContactEmail), contacts, c.Created)
	return err
}

func (r *SQLiteRepo) GetClient(ctx context.Context, id string) (*models.Client, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, address, lead_contact, lead_contact_phone, lead_contact_email, extra_contacts, created FROM clients WHERE id = ?`, id)
	c, err := scanClient(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return c, nil
}

func (r *SQLiteRepo) ListClients(ctx context.Context) ([]models.Client, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, address, lead_contact, lead_contact_phone, lead_contact_email, extra_contacts, created FROM clients ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Client
	for rows.Next() {
		c, err := scanClient(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *c)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateClient(ctx context.Context, id string, u *models.ClientUpdate) (*models.Client, error) {
	if u == nil {
		return nil, fmt.Errorf("client update is nil")
	}

	cur, err := r.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, nil
	}

	if u.Name != nil {
		cur.Name = *u.Name
	}
	if u.Address != nil {
		cur.Address = *u.Address
	}
	if u.LeadContact != nil {
		cur.LeadContact = *u.LeadContact
	}
	if u.LeadContactPhone != nil {
		cur.LeadContactPhone = *u.LeadContactPhone
	}
	if u.LeadContactEmail != nil {
		cur.LeadContactEmail = *u.LeadContactEmail
	}
	if u.ExtraContacts != nil {
		cur.ExtraContacts = *u.ExtraContacts
	}

	contacts, err := marshalContacts(cur.ExtraContacts)
	if err != nil {
		return nil, err
	}

	_, err = r.conn.Exec(ctx, `UPDATE clients SET name = ?, address = ?, lead_contact = ?, lead_contact_phone = ?, lead_contact_email = ?, extra_contacts = ? WHERE id = ?`,
		cur.Name, nullable(cur.Address), nullable(cur.LeadContact), nullable(cur.LeadContactPhone), nullable(cur.LeadContactEmail), contacts, id)
	if err != nil {
		return nil, err
	}

	return cur, nil
}

// DeleteClient fails with a foreign key error while the client still owns
// jobs; deletion does not cascade to jobs.
func (r *SQLiteRepo) DeleteClient(ctx context.Context, id string) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func marshalContacts(contacts []models.ClientContact) (any, error) {
	if len(contacts) == 0 {
		return nil, nil
	}

	b, err := json.Marshal(contacts)
	if err != nil {
		return nil, fmt.Errorf("marshal extra contacts: %w", err)
	}

	return string(b), nil
}

func scanClient(scan func(dest ...any) error) (*models.Client, error) {
	var c models.Client
	var address, lead, leadPhone, leadEmail, contacts sql.NullString
	if err := scan(&c.ID, &c.Name, &address, &lead, &leadPhone, &leadEmail, &contacts, &c.Created); err != nil {
		return nil, err
	}

	c.Address = address.String
	c.LeadContact = lead.String
	c.LeadContactPhone = leadPhone.String
	c.LeadContactEmail = leadEmail.String

	c.ExtraContacts = []models.ClientContact{}
	if contacts.Valid && contacts.String != "" {
		if err := json.Unmarshal([]byte(contacts.String), &c.ExtraContacts); err != nil {
			return nil, fmt.Errorf("unmarshal extra contacts for client %s: %w", c.ID, err)
		}
	}

	return &c, nil
}
