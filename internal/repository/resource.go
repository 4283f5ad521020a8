package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/prepsync/prepsync/internal/model"
)

var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrResourceNotInGroup = errors.New("resource is not shared in this group")
)

type ResourceRepository interface {
	// Create inserts the resource and its first group association in one
	// transaction.
	Create(resource *model.Resource, groupID string) error
	ByID(id string) (*model.Resource, error)
	ByGroup(groupID string) ([]model.ResourceDetail, error)
	InGroup(resourceID, groupID string) (bool, error)

	// RemoveFromGroup detaches the resource from the group and returns how
	// many group associations remain.
	RemoveFromGroup(resourceID, groupID string) (int, error)

	// OnlyInGroup returns resources whose sole group association is the
	// given group, i.e. the resources a group delete would orphan.
	OnlyInGroup(groupID string) ([]*model.Resource, error)
	Delete(id string) error
}

type resourceRepository struct {
	db *sqlx.DB
}

func NewResourceRepository(db *sqlx.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(resource *model.Resource, groupID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO resources (id, title, url, storage_path, mime_type, size, added_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = tx.Exec(query, resource.ID, resource.Title, resource.URL, resource.StoragePath, resource.MimeType, resource.Size, resource.AddedBy, resource.CreatedAt)
	if err != nil {
		return err
	}

	linkQuery := `INSERT INTO resource_groups (resource_id, group_id) VALUES ($1, $2)`
	_, err = tx.Exec(linkQuery, resource.ID, groupID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *resourceRepository) ByID(id string) (*model.Resource, error) {
	resource := &model.Resource{}
	query := `SELECT * FROM resources WHERE id = $1`

	err := r.db.Get(resource, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}

	return resource, err
}

func (r *resourceRepository) ByGroup(groupID string) ([]model.ResourceDetail, error) {
	var details []model.ResourceDetail
	query := `SELECT res.*, u.name AS added_by_name, u.email AS added_by_email
	          FROM resources res
	          JOIN resource_groups rg ON rg.resource_id = res.id
	          JOIN users u ON u.id = res.added_by
	          WHERE rg.group_id = $1
	          ORDER BY res.created_at DESC`

	err := r.db.Select(&details, query, groupID)
	if err != nil {
		return nil, err
	}

	return details, nil
}

func (r *resourceRepository) InGroup(resourceID, groupID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM resource_groups WHERE resource_id = $1 AND group_id = $2`

	err := r.db.QueryRow(query, resourceID, groupID).Scan(&count)
	return count > 0, err
}

func (r *resourceRepository) RemoveFromGroup(resourceID, groupID string) (int, error) {
	result, err := r.db.Exec(`DELETE FROM resource_groups WHERE resource_id = $1 AND group_id = $2`, resourceID, groupID)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, ErrResourceNotInGroup
	}

	var remaining int
	err = r.db.QueryRow(`SELECT COUNT(*) FROM resource_groups WHERE resource_id = $1`, resourceID).Scan(&remaining)
	return remaining, err
}

func (r *resourceRepository) OnlyInGroup(groupID string) ([]*model.Resource, error) {
	var resources []*model.Resource
	query := `SELECT res.* FROM resources res
	          JOIN resource_groups rg ON rg.resource_id = res.id
	          WHERE rg.group_id = $1
	            AND NOT EXISTS (SELECT 1 FROM resource_groups other
	                            WHERE other.resource_id = res.id AND other.group_id <> $1)`

	err := r.db.Select(&resources, query, groupID)
	if err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *resourceRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrResourceNotFound
	}

	return nil
}
