package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	"github.com/pethaven/pethaven-api/internal/domains/pets/ports"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pet listings in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB
// lifecycle; schema setup lives in platform/migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type petRecord struct {
	ID          int64          `gorm:"primaryKey;column:id;autoIncrement"`
	OwnerID     int64          `gorm:"column:owner_id;index"`
	Name        string         `gorm:"column:name"`
	Species     string         `gorm:"column:species"`
	Breed       string         `gorm:"column:breed"`
	AgeMonths   int            `gorm:"column:age_months"`
	Description string         `gorm:"column:description;type:text"`
	PhotoURLs   pq.StringArray `gorm:"column:photo_urls;type:text[]"`
	Status      string         `gorm:"column:status;type:varchar(32);index"`
	AdoptedByID *int64         `gorm:"column:adopted_by_id"`
	AdoptedAt   *time.Time     `gorm:"column:adopted_at"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

func newPetRecord(p *domain.Pet) petRecord {
	rec := petRecord{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		AgeMonths:   p.AgeMonths,
		Description: p.Description,
		Status:      string(p.Status),
		AdoptedByID: p.AdoptedByID,
		AdoptedAt:   p.AdoptedAt,
	}
	if len(p.PhotoURLs) > 0 {
		rec.PhotoURLs = pq.StringArray(append([]string{}, p.PhotoURLs...))
	}
	return rec
}

func (r *petRecord) toDomain() *domain.Pet {
	pet := &domain.Pet{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		AgeMonths:   r.AgeMonths,
		Description: r.Description,
		Status:      domain.AdoptionStatus(r.Status),
		AdoptedByID: r.AdoptedByID,
		AdoptedAt:   r.AdoptedAt,
	}
	if len(r.PhotoURLs) > 0 {
		pet.PhotoURLs = append([]string{}, r.PhotoURLs...)
	}
	return pet
}

// Save inserts or updates a pet listing.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*ports.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	pet.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a pet listing by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*ports.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// Delete removes a pet listing by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&petRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindByStatus returns listings matching any provided status.
func (r *Repository) FindByStatus(ctx context.Context, statuses []domain.AdoptionStatus) ([]*ports.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return nil, nil
	}
	args := make([]string, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, string(s))
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).
		Where("status IN ?", args).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// FindByOwner returns every listing posted by the given owner.
func (r *Repository) FindByOwner(ctx context.Context, ownerID int64) ([]*ports.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// List returns every persisted listing.
func (r *Repository) List(ctx context.Context) ([]*ports.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

func recordsToProjections(records []petRecord) []*ports.PetProjection {
	list := make([]*ports.PetProjection, 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list
}

func toProjection(record *petRecord) *ports.PetProjection {
	return &ports.PetProjection{
		Entity:   record.toDomain(),
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
