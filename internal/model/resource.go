package model

import (
	"time"
)

type Resource struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	URL         string    `db:"url" json:"url"`
	StoragePath *string   `db:"storage_path" json:"-"` // set for uploaded files, nil for plain links
	MimeType    string    `db:"mime_type" json:"mimeType"`
	Size        int64     `db:"size" json:"size"`
	AddedBy     string    `db:"added_by" json:"addedBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

func (r *Resource) IsUpload() bool {
	return r.StoragePath != nil && *r.StoragePath != ""
}

// ResourceDetail joins a resource with the sharing user's name and email.
type ResourceDetail struct {
	Resource
	AddedByName  string `db:"added_by_name" json:"addedByName"`
	AddedByEmail string `db:"added_by_email" json:"addedByEmail"`
}
