package pets

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Service implementa el contrato de la colección /pets del stand-in.
// No valida reglas de negocio (eso es del cliente): solo asigna id y
// recalcula la clasificación en cada escritura.
type Service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newID: uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context, in Pet) (Pet, error) {
	p := normalize(in)
	p.ID = s.newID()

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Update reemplaza todos los campos mutables. El id no cambia.
func (s *Service) Update(ctx context.Context, id string, in Pet) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return Pet{}, err
	}

	p := normalize(in)
	p.ID = id

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func normalize(in Pet) Pet {
	return Pet{
		Name:           strings.TrimSpace(in.Name),
		Species:        in.Species,
		Gender:         in.Gender,
		Age:            in.Age,
		Photo:          strings.TrimSpace(in.Photo),
		Description:    strings.TrimSpace(in.Description),
		Classification: Classify(in.Age),
	}
}
