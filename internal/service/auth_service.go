package service

import (
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	apperrors "rentacar/internal/errors"
	"rentacar/internal/repository"
	"rentacar/internal/utils"
)

type AuthService interface {
	Register(req *entities.RegisterRequest) (*db.User, error)
	CreateUser(req *entities.RegisterRequest) (*db.User, error)
	Login(email, password string) (string, *db.User, error)
	ListUsers() ([]db.User, error)
	DeactivateUser(cedula string) error
}

type authService struct {
	repo repository.UserRepository
}

func NewAuthService(repo repository.UserRepository) AuthService {
	return &authService{repo: repo}
}

// Register is the public sign-up: it only ever creates cliente accounts.
// Staff accounts go through CreateUser on the admin surface.
func (s *authService) Register(req *entities.RegisterRequest) (*db.User, error) {
	if req.Rol != "" && req.Rol != db.RolCliente {
		return nil, apperrors.NewValidation("El registro público sólo crea cuentas de cliente")
	}
	return s.createUser(req, db.RolCliente)
}

// CreateUser creates an account with any valid role.
func (s *authService) CreateUser(req *entities.RegisterRequest) (*db.User, error) {
	rol := req.Rol
	if rol == "" {
		rol = db.RolCliente
	}
	if rol != db.RolAdmin && rol != db.RolEmpleado && rol != db.RolCliente {
		return nil, apperrors.NewValidation("Rol inválido. Usa 'admin', 'empleado' o 'cliente'.")
	}
	return s.createUser(req, rol)
}

func (s *authService) createUser(req *entities.RegisterRequest, rol string) (*db.User, error) {
	if req.Nombre == "" || req.Apellido == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidation("Faltan datos obligatorios")
	}
	if !utils.ValidateCedula(req.Cedula) {
		return nil, apperrors.NewValidation("La cédula no es válida")
	}

	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("Ya existe un usuario con ese correo")
	}
	existing, err = s.repo.GetByCedula(req.Cedula)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("Ya existe un usuario con esa cédula")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Cedula:       req.Cedula,
		Direccion:    req.Direccion,
		Telefono:     req.Telefono,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          rol,
		Estado:       "activo",
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(email, password string) (string, *db.User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperrors.NewUnauthorized("Credenciales inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.NewUnauthorized("Credenciales inválidas")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", nil, errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"rol":     user.Rol,
		"exp":     time.Now().Add(8 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}

	user.PasswordHash = ""
	return signed, user, nil
}

func (s *authService) ListUsers() ([]db.User, error) {
	return s.repo.List()
}

// DeactivateUser soft-deletes the account; a deactivated user can no longer
// log in (lookups filter on estado = 'activo').
func (s *authService) DeactivateUser(cedula string) error {
	err := s.repo.Deactivate(cedula)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFound("No se encontró el usuario con la cédula proporcionada")
	}
	return err
}
