package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"rentacar/internal/db"
)

type UserRepository interface {
	Create(user *db.User) error
	GetByID(id int) (*db.User, error)
	// GetByEmail returns the active user together with its password hash,
	// for login only. Public reads go through GetByID/List, which never
	// carry the hash.
	GetByEmail(email string) (*db.User, error)
	GetByCedula(cedula string) (*db.User, error)
	List() ([]db.User, error)
	Deactivate(cedula string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{DB: database}
}

func (r *userRepository) Create(user *db.User) error {
	query := `
		INSERT INTO users (nombre, apellido, cedula, direccion, telefono, email, password_hash, rol, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	return r.DB.QueryRow(query,
		user.Nombre, user.Apellido, user.Cedula, user.Direccion, user.Telefono,
		user.Email, user.PasswordHash, user.Rol, user.Estado,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(id int) (*db.User, error) {
	var u db.User
	err := r.DB.QueryRow(
		`SELECT id, nombre, apellido, cedula, direccion, telefono, email, rol, estado, created_at
		 FROM users WHERE id = $1 AND estado = 'activo'`, id,
	).Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Cedula, &u.Direccion, &u.Telefono, &u.Email, &u.Rol, &u.Estado, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user %d: %w", id, err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	var u db.User
	err := r.DB.QueryRow(
		`SELECT id, nombre, apellido, cedula, direccion, telefono, email, password_hash, rol, estado, created_at
		 FROM users WHERE email = $1 AND estado = 'activo'`, email,
	).Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Cedula, &u.Direccion, &u.Telefono, &u.Email, &u.PasswordHash, &u.Rol, &u.Estado, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetByCedula(cedula string) (*db.User, error) {
	var u db.User
	err := r.DB.QueryRow(
		`SELECT id, nombre, apellido, cedula, direccion, telefono, email, rol, estado, created_at
		 FROM users WHERE cedula = $1`, cedula,
	).Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Cedula, &u.Direccion, &u.Telefono, &u.Email, &u.Rol, &u.Estado, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by cedula: %w", err)
	}
	return &u, nil
}

func (r *userRepository) List() ([]db.User, error) {
	rows, err := r.DB.Query(
		`SELECT id, nombre, apellido, cedula, direccion, telefono, email, rol, estado, created_at
		 FROM users ORDER BY apellido, nombre`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		var u db.User
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Cedula, &u.Direccion, &u.Telefono, &u.Email, &u.Rol, &u.Estado, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Deactivate(cedula string) error {
	result, err := r.DB.Exec(`UPDATE users SET estado = 'desactivado' WHERE cedula = $1`, cedula)
	if err != nil {
		return fmt.Errorf("error deactivating user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
