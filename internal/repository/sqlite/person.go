package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/crm/pkg/models"
)

func (r *SQLiteRepo) CreatePerson(ctx context.Context, p *models.Person) error {
	if p == nil {
		return fmt.Errorf("person is nil")
	}

	p.ID = newID()
	p.Created = now()

	_, err := r.conn.Exec(ctx, `INSERT INTO people (id, name, address, telephone, email, created) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, nullable(p.Address), nullable(p.Telephone), nullable(p.Email), p.Created)
	return err
}

func (r *SQLiteRepo) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, address, telephone, email, created FROM people WHERE id = ?`, id)
	p, err := scanPerson(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return p, nil
}

func (r *SQLiteRepo) ListPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, address, telephone, email, created FROM people ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Person
	for rows.Next() {
		p, err := scanPerson(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *p)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdatePerson(ctx context.Context, id string, u *models.PersonUpdate) (*models.Person, error) {
	if u == nil {
		return nil, fmt.Errorf("person update is nil")
	}

	cur, err := r.GetPerson(ctx, id)
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
	if u.Telephone != nil {
		cur.Telephone = *u.Telephone
	}
	if u.Email != nil {
		cur.Email = *u.Email
	}

	_, err = r.conn.Exec(ctx, `UPDATE people SET name = ?, address = ?, telephone = ?, email = ? WHERE id = ?`,
		cur.Name, nullable(cur.Address), nullable(cur.Telephone), nullable(cur.Email), id)
	if err != nil {
		return nil, err
	}

	return cur, nil
}

func (r *SQLiteRepo) DeletePerson(ctx context.Context, id string) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func scanPerson(scan func(dest ...any) error) (*models.Person, error) {
	var p models.Person
	var address, telephone, email sql.NullString
	if err := scan(&p.ID, &p.Name, &address, &telephone, &email, &p.Created); err != nil {
		return nil, err
	}

	p.Address = address.String
	p.Telephone = telephone.String
	p.Email = email.String

	return &p, nil
}
