// internal/domain/models/sitesettings.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultSiteName is used when no settings document exists yet.
const DefaultSiteName = "Humanities Hub"

// SiteSettings holds the site-wide branding an admin can change. A single
// document in the site_settings collection.
type SiteSettings struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SiteName string             `bson:"site_name" json:"site_name"`
	LogoURL  string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
}
