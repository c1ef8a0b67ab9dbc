package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pethaven/pethaven-api/internal/domains/adoptions/domain"
	"github.com/pethaven/pethaven-api/internal/domains/adoptions/ports"
	petsdomain "github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists adoption requests in PostgreSQL using GORM-mapped
// columns. Adoption completion commits the request, its siblings, and the pet
// row in one transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB
// lifecycle; schema setup lives in platform/migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type requestRecord struct {
	ID          int64 `gorm:"primaryKey;column:id;autoIncrement"`
	PetID       int64 `gorm:"column:pet_id;index"`
	RequesterID int64 `gorm:"column:requester_id;index"`

	Message          string `gorm:"column:message;type:text"`
	RequesterPhone   string `gorm:"column:requester_phone"`
	RequesterAddress string `gorm:"column:requester_address"`
	HousingType      string `gorm:"column:housing_type"`

	HasExperience     bool `gorm:"column:has_experience"`
	HasOtherPets      bool `gorm:"column:has_other_pets"`
	HasChildren       bool `gorm:"column:has_children"`
	YearsOfExperience int  `gorm:"column:years_of_experience"`

	Status         string `gorm:"column:status;type:varchar(32);index"`
	OwnerNotes     string `gorm:"column:owner_notes;type:text"`
	RequesterNotes string `gorm:"column:requester_notes;type:text"`

	ContactShared   bool       `gorm:"column:contact_shared"`
	ContactSharedAt *time.Time `gorm:"column:contact_shared_at"`

	ReviewedByID *int64     `gorm:"column:reviewed_by_id"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (requestRecord) TableName() string { return "adoption_requests" }

func newRequestRecord(req *domain.Request) requestRecord {
	return requestRecord{
		ID:                req.ID,
		PetID:             req.PetID,
		RequesterID:       req.RequesterID,
		Message:           req.Message,
		RequesterPhone:    req.RequesterPhone,
		RequesterAddress:  req.RequesterAddress,
		HousingType:       req.HousingType,
		HasExperience:     req.HasExperience,
		HasOtherPets:      req.HasOtherPets,
		HasChildren:       req.HasChildren,
		YearsOfExperience: req.YearsOfExperience,
		Status:            string(req.Status),
		OwnerNotes:        req.OwnerNotes,
		RequesterNotes:    req.RequesterNotes,
		ContactShared:     req.ContactShared,
		ContactSharedAt:   req.ContactSharedAt,
		ReviewedByID:      req.ReviewedByID,
		ReviewedAt:        req.ReviewedAt,
		CompletedAt:       req.CompletedAt,
	}
}

func (r *requestRecord) toDomain() *domain.Request {
	return &domain.Request{
		ID:                r.ID,
		PetID:             r.PetID,
		RequesterID:       r.RequesterID,
		Message:           r.Message,
		RequesterPhone:    r.RequesterPhone,
		RequesterAddress:  r.RequesterAddress,
		HousingType:       r.HousingType,
		HasExperience:     r.HasExperience,
		HasOtherPets:      r.HasOtherPets,
		HasChildren:       r.HasChildren,
		YearsOfExperience: r.YearsOfExperience,
		Status:            domain.Status(r.Status),
		OwnerNotes:        r.OwnerNotes,
		RequesterNotes:    r.RequesterNotes,
		ContactShared:     r.ContactShared,
		ContactSharedAt:   r.ContactSharedAt,
		ReviewedByID:      r.ReviewedByID,
		ReviewedAt:        r.ReviewedAt,
		CompletedAt:       r.CompletedAt,
	}
}

// Create inserts a new request. The partial unique index on pending
// (pet, requester) pairs surfaces as ErrDuplicatePending.
func (r *Repository) Create(ctx context.Context, req *domain.Request) (*ports.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errors.New("cannot create nil request")
	}
	record := newRequestRecord(req)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicatePending
		}
		return nil, err
	}
	req.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// Save updates an existing request.
func (r *Repository) Save(ctx context.Context, req *domain.Request) (*ports.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errors.New("cannot save nil request")
	}
	if req.ID == 0 {
		return nil, ports.ErrNotFound
	}
	record := newRequestRecord(req)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a request by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*ports.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record requestRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// Delete removes a request by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&requestRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindPending returns the pending request for a (pet, requester) pair.
func (r *Repository) FindPending(ctx context.Context, petID, requesterID int64) (*ports.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record requestRecord
	err := r.db.WithContext(ctx).
		Where("pet_id = ? AND requester_id = ? AND status = ?", petID, requesterID, string(domain.StatusPending)).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// ListByPet returns every request filed for the given pet.
func (r *Repository) ListByPet(ctx context.Context, petID int64) ([]*ports.RequestProjection, error) {
	return r.list(ctx, "pet_id = ?", petID)
}

// ListByRequester returns every request filed by the given user.
func (r *Repository) ListByRequester(ctx context.Context, requesterID int64) ([]*ports.RequestProjection, error) {
	return r.list(ctx, "requester_id = ?", requesterID)
}

// ListByPetIDs returns every request filed for any of the given pets.
func (r *Repository) ListByPetIDs(ctx context.Context, petIDs []int64) ([]*ports.RequestProjection, error) {
	if len(petIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, "pet_id IN ?", petIDs)
}

// ListAll returns one page of requests plus the total count.
func (r *Repository) ListAll(ctx context.Context, page pagination.Request) ([]*ports.RequestProjection, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&requestRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []requestRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return recordsToProjections(records), total, nil
}

// CountByStatus tallies requests per lifecycle status.
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&requestRecord{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[domain.Status(row.Status)] = row.Total
	}
	return counts, nil
}

// CompleteAdoption persists the adopted request, the auto-rejected siblings,
// and the pet row in one transaction.
func (r *Repository) CompleteAdoption(ctx context.Context, adopted *domain.Request, siblings []*domain.Request, pet *petsdomain.Pet) (*ports.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if adopted == nil || pet == nil {
		return nil, errors.New("cannot complete adoption without request and pet")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := newRequestRecord(adopted)
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		for _, sibling := range siblings {
			siblingRecord := newRequestRecord(sibling)
			if err := tx.Save(&siblingRecord).Error; err != nil {
				return err
			}
		}
		result := tx.Table("pets").Where("id = ?", pet.ID).Updates(map[string]any{
			"status":        string(pet.Status),
			"adopted_by_id": pet.AdoptedByID,
			"adopted_at":    pet.AdoptedAt,
			"updated_at":    time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, adopted.ID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*ports.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []requestRecord
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

func recordsToProjections(records []requestRecord) []*ports.RequestProjection {
	list := make([]*ports.RequestProjection, 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list
}

func toProjection(record *requestRecord) *ports.RequestProjection {
	return &ports.RequestProjection{
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
