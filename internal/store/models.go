package store

import "time"

type User struct {
	ID                int64     `gorm:"column:id;primaryKey" json:"id"`
	Name              string    `gorm:"column:name" json:"name"`
	CreationTimestamp time.Time `gorm:"column:creation_timestamp" json:"creationTimestamp"`
}

func (User) TableName() string { return "users" }

type Post struct {
	ID                int64     `gorm:"column:id;primaryKey" json:"id"`
	CreationTimestamp time.Time `gorm:"column:creation_timestamp" json:"creationTimestamp"`
	OwnerID           int64     `gorm:"column:owner_id" json:"ownerId"`
	Title             string    `gorm:"column:title" json:"title"`
	Body              string    `gorm:"column:body" json:"body"`
}

func (Post) TableName() string { return "posts" }

type Image struct {
	ID                int64     `gorm:"column:id;primaryKey" json:"id"`
	CreationTimestamp time.Time `gorm:"column:creation_timestamp" json:"creationTimestamp"`
	OwnerID           int64     `gorm:"column:owner_id" json:"ownerId"`
	URL               string    `gorm:"column:url" json:"url"`
	Caption           string    `gorm:"column:caption" json:"caption"`
}

func (Image) TableName() string { return "images" }

type Tag struct {
	ID                int64     `gorm:"column:id;primaryKey" json:"id"`
	CreationTimestamp time.Time `gorm:"column:creation_timestamp" json:"creationTimestamp"`
	Name              string    `gorm:"column:name" json:"name"`
}

func (Tag) TableName() string { return "tags" }
