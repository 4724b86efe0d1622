package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-shelter-manager/internal/domain/accounts"
	"animal-shelter-manager/internal/domain/adoptions"
	"animal-shelter-manager/internal/domain/animals"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB // nil inside a transaction
	q  querier
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Animals() animals.Repository    { return &animalRepo{q: s.q} }
func (s *Store) Requests() adoptions.Repository { return &requestRepo{q: s.q} }
func (s *Store) Users() accounts.Repository     { return &userRepo{q: s.q} }

func (s *Store) Atomic(ctx context.Context, fn func(adoptions.Store) error) error {
	if s.db == nil {
		// Already transactional.
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&Store{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// -------------------------
// animals
// -------------------------

type animalRepo struct {
	q querier
}

const animalColumns = `id, name, species, breed, sex, birth_month, birth_year, neutered, admission_timestamp, status, image_path, appearance, bio`

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID, a.Name, a.Species, a.Breed, a.Sex,
		a.BirthMonth, a.BirthYear, a.Neutered, a.AdmittedAt,
		a.Status, a.ImagePath, a.Appearance, a.Bio,
	)
	return err
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE animals
		SET name = $1, species = $2, breed = $3, sex = $4,
			birth_month = $5, birth_year = $6, neutered = $7,
			status = $8, image_path = $9, appearance = $10, bio = $11
		WHERE id = $12
	`,
		a.Name, a.Species, a.Breed, a.Sex,
		a.BirthMonth, a.BirthYear, a.Neutered,
		a.Status, a.ImagePath, a.Appearance, a.Bio,
		a.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.q.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)

	var a animals.Animal
	err := row.Scan(
		&a.ID, &a.Name, &a.Species, &a.Breed, &a.Sex,
		&a.BirthMonth, &a.BirthYear, &a.Neutered, &a.AdmittedAt,
		&a.Status, &a.ImagePath, &a.Appearance, &a.Bio,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, err
}

func (r *animalRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *animalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Summary, error) {
	where, args := buildFilterWhere(f, time.Now())

	query := `SELECT id, name, species, breed, sex, admission_timestamp, status, image_path FROM animals`
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY admission_timestamp ASC, id ASC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Summary, 0)
	for rows.Next() {
		var s animals.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Species, &s.Breed, &s.Sex, &s.AdmittedAt, &s.Status, &s.ImagePath); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// argList collects query arguments and hands out numbered placeholders.
type argList struct {
	args []any
}

func (l *argList) add(v any) string {
	l.args = append(l.args, v)
	return fmt.Sprintf("$%d", len(l.args))
}

func (l *argList) addAll(vs ...any) string {
	ph := make([]string, 0, len(vs))
	for _, v := range vs {
		ph = append(ph, l.add(v))
	}
	return strings.Join(ph, ",")
}

// buildFilterWhere mirrors the sqlite backend with numbered placeholders. A
// present but empty selection must match nothing, hence the 1=0 clauses.
func buildFilterWhere(f animals.Filter, now time.Time) (string, []any) {
	clauses := make([]string, 0, 4)
	l := &argList{}

	if f.Statuses != nil {
		if len(f.Statuses) == 0 {
			clauses = append(clauses, "1=0")
		} else {
			vs := make([]any, 0, len(f.Statuses))
			for _, st := range f.Statuses {
				vs = append(vs, st)
			}
			clauses = append(clauses, "status IN ("+l.addAll(vs...)+")")
		}
	}

	if f.Sexes != nil {
		if len(f.Sexes) == 0 {
			clauses = append(clauses, "1=0")
		} else {
			vs := make([]any, 0, len(f.Sexes))
			for _, sx := range f.Sexes {
				vs = append(vs, sx)
			}
			clauses = append(clauses, "sex IN ("+l.addAll(vs...)+")")
		}
	}

	if f.Breeds != nil {
		speciesClauses := make([]string, 0, len(f.Breeds))
		for species, breeds := range f.Breeds {
			if len(breeds) == 0 {
				continue
			}
			vs := make([]any, 0, len(breeds))
			for _, b := range breeds {
				vs = append(vs, b)
			}
			speciesClauses = append(speciesClauses, "(species = "+l.add(species)+" AND breed IN ("+l.addAll(vs...)+"))")
		}
		if len(speciesClauses) == 0 {
			clauses = append(clauses, "1=0")
		} else {
			clauses = append(clauses, "("+strings.Join(speciesClauses, " OR ")+")")
		}
	}

	if start, ok := f.Admitted.Start(now); ok {
		clauses = append(clauses, "admission_timestamp >= "+l.add(start))
	}

	if start, ok := f.Adopted.Start(now); ok {
		clauses = append(clauses, `EXISTS (
			SELECT 1 FROM adoption_requests ar
			WHERE ar.animal_id = animals.id
			  AND ar.status = 'approved'
			  AND ar.adoption_timestamp >= `+l.add(start)+`
		)`)
	}

	return strings.Join(clauses, " AND "), l.args
}

// -------------------------
// adoption requests
// -------------------------

type requestRepo struct {
	q querier
}

const requestColumns = `id, animal_id, username, name, email, tel_number, address, country, occupation, annual_income, num_people, num_children, request_timestamp, adoption_timestamp, status`

func (r *requestRepo) Create(ctx context.Context, req adoptions.Request) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO adoption_requests (`+requestColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		req.ID, req.AnimalID, req.Username, req.Name, req.Email,
		req.TelNumber, req.Address, req.Country, req.Occupation, req.AnnualIncome,
		req.NumPeople, req.NumChildren, req.RequestedAt, req.AdoptedAt, req.Status,
	)
	return err
}

func (r *requestRepo) Update(ctx context.Context, req adoptions.Request) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE adoption_requests
		SET animal_id = $1, username = $2, name = $3, email = $4,
			tel_number = $5, address = $6, country = $7, occupation = $8,
			annual_income = $9, num_people = $10, num_children = $11,
			request_timestamp = $12, adoption_timestamp = $13, status = $14
		WHERE id = $15
	`,
		req.AnimalID, req.Username, req.Name, req.Email,
		req.TelNumber, req.Address, req.Country, req.Occupation,
		req.AnnualIncome, req.NumPeople, req.NumChildren,
		req.RequestedAt, req.AdoptedAt, req.Status,
		req.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return adoptions.ErrNotFound
	}
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM adoption_requests WHERE id = $1`, id)

	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	return req, err
}

func (r *requestRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM adoption_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return adoptions.ErrNotFound
	}
	return nil
}

func (r *requestRepo) ListByAnimal(ctx context.Context, animalID string) ([]adoptions.Request, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM adoption_requests WHERE animal_id = $1 ORDER BY request_timestamp ASC, id ASC`, animalID)
}

func (r *requestRepo) ListByRequester(ctx context.Context, username string) ([]adoptions.Request, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM adoption_requests WHERE username = $1 ORDER BY request_timestamp ASC, id ASC`, username)
}

func (r *requestRepo) list(ctx context.Context, query string, arg any) ([]adoptions.Request, error) {
	rows, err := r.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (adoptions.Request, error) {
	var req adoptions.Request
	err := row.Scan(
		&req.ID, &req.AnimalID, &req.Username, &req.Name, &req.Email,
		&req.TelNumber, &req.Address, &req.Country, &req.Occupation, &req.AnnualIncome,
		&req.NumPeople, &req.NumChildren, &req.RequestedAt, &req.AdoptedAt, &req.Status,
	)
	return req, err
}

// -------------------------
// users
// -------------------------

type userRepo struct {
	q querier
}

func (r *userRepo) Create(ctx context.Context, u accounts.User) error {
	var exists int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE username = $1`, u.Username).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return accounts.ErrExists
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role) VALUES ($1,$2,$3)
	`, u.Username, u.PasswordHash, u.Role)
	return err
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (accounts.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT username, password_hash, role FROM users WHERE username = $1`, username)

	var u accounts.User
	if err := row.Scan(&u.Username, &u.PasswordHash, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.User{}, accounts.ErrNotFound
		}
		return accounts.User{}, err
	}
	return u, nil
}
