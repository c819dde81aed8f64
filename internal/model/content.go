package model

import (
	"encoding/json"
	"time"
)

// Document is a single content record in the document store. The payload is
// schemaless JSON; the collection name determines how the site renders it.
type Document struct {
	ID         string    `json:"id" db:"id"`
	Collection string    `json:"collection" db:"collection"`
	Data       string    `json:"-" db:"data"` // raw JSON payload
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Payload decodes the document body into a generic map. A corrupt payload
// yields an empty map rather than an error; the store only accepts valid JSON.
func (d *Document) Payload() map[string]interface{} {
	out := map[string]interface{}{}
	if err := json.Unmarshal([]byte(d.Data), &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}

// Resource returns the document as a flat API resource: payload fields plus
// the server-managed id and timestamps.
func (d *Document) Resource() map[string]interface{} {
	out := d.Payload()
	out["id"] = d.ID
	out["created_at"] = d.CreatedAt
	out["updated_at"] = d.UpdatedAt
	return out
}

// Content collections known to the site. Everything else is rejected at the
// router, so a typo'd URL can't create a stray collection.
const (
	CollectionProjects     = "projects"
	CollectionPosts        = "posts"
	CollectionChallenges   = "challenges"
	CollectionAchievements = "achievements"
	CollectionPhotos       = "photos"
	CollectionJourneys     = "journeys"
	CollectionPlatforms    = "platforms"
	CollectionResumes      = "resumes"
	CollectionMessages     = "messages"
	CollectionLaunches     = "launches"
	CollectionStats        = "stats"
)

// Collections lists every known content collection.
var Collections = []string{
	CollectionProjects,
	CollectionPosts,
	CollectionChallenges,
	CollectionAchievements,
	CollectionPhotos,
	CollectionJourneys,
	CollectionPlatforms,
	CollectionResumes,
	CollectionMessages,
	CollectionLaunches,
	CollectionStats,
}

// PublicCollections lists the collections readable without authentication.
// Messages (contact-form submissions) and stats are excluded: messages are
// operator-only, stats has its own endpoint.
var PublicCollections = []string{
	CollectionProjects,
	CollectionPosts,
	CollectionChallenges,
	CollectionAchievements,
	CollectionPhotos,
	CollectionJourneys,
	CollectionPlatforms,
	CollectionResumes,
	CollectionLaunches,
}

// IsCollection reports whether name is a known collection.
func IsCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// IsPublicCollection reports whether name is readable without authentication.
func IsPublicCollection(name string) bool {
	for _, c := range PublicCollections {
		if c == name {
			return true
		}
	}
	return false
}
