package store

import (
	"github.com/Alp4ka/keyset"
)

// Entity describes how a table is paginated: which aliases callers may sort
// by, how to read the sort value from a model and the default ordering.
type Entity[M any] struct {
	Name        string
	Table       string
	Columns     keyset.ColumnMapping
	Getters     keyset.Getters[M, string]
	DefaultSort keyset.OrderBy[string]
	// Owned entities have an owner_id column and accept WithOwner.
	Owned bool
}

var _defaultSort = keyset.OrderBy[string]{Column: "id", Direction: keyset.DirectionASC}

var Users = Entity[User]{
	Name:  "users",
	Table: User{}.TableName(),
	Columns: keyset.ColumnMapping{
		"id":                "id",
		"creationTimestamp": "creation_timestamp",
		"name":              "name",
	},
	Getters: keyset.Getters[User, string]{
		"id":                 func(u User) any { return u.ID },
		"creation_timestamp": func(u User) any { return u.CreationTimestamp },
		"name":               func(u User) any { return u.Name },
	},
	DefaultSort: _defaultSort,
}

var Posts = Entity[Post]{
	Name:  "posts",
	Table: Post{}.TableName(),
	Columns: keyset.ColumnMapping{
		"id":                "id",
		"creationTimestamp": "creation_timestamp",
		"title":             "title",
	},
	Getters: keyset.Getters[Post, string]{
		"id":                 func(p Post) any { return p.ID },
		"creation_timestamp": func(p Post) any { return p.CreationTimestamp },
		"title":              func(p Post) any { return p.Title },
	},
	DefaultSort: _defaultSort,
	Owned:       true,
}

var Images = Entity[Image]{
	Name:  "images",
	Table: Image{}.TableName(),
	Columns: keyset.ColumnMapping{
		"id":                "id",
		"creationTimestamp": "creation_timestamp",
	},
	Getters: keyset.Getters[Image, string]{
		"id":                 func(i Image) any { return i.ID },
		"creation_timestamp": func(i Image) any { return i.CreationTimestamp },
	},
	DefaultSort: _defaultSort,
	Owned:       true,
}

var Tags = Entity[Tag]{
	Name:  "tags",
	Table: Tag{}.TableName(),
	Columns: keyset.ColumnMapping{
		"id":                "id",
		"creationTimestamp": "creation_timestamp",
		"name":              "name",
	},
	Getters: keyset.Getters[Tag, string]{
		"id":                 func(t Tag) any { return t.ID },
		"creation_timestamp": func(t Tag) any { return t.CreationTimestamp },
		"name":               func(t Tag) any { return t.Name },
	},
	DefaultSort: _defaultSort,
}
