// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/ycyw/humanitieshub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("resources", resourcesSchema())
	ensure("forum_posts", forumPostsSchema())
	ensure("calendar_events", calendarEventsSchema())

	// No validator needed; we still ensure the collection exists.
	ensure("site_settings", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "email_ci", "name", "role"},
			"properties": bson.M{
				"email":    bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"email_ci": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"name":     bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"name_ci":  bson.M{"bsonType": "string"},

				"role":        bson.M{"enum": bson.A{models.RoleAdmin, models.RoleStaff}},
				"is_approved": bson.M{"bsonType": "bool"},

				"password_hash":   bson.M{"bsonType": bson.A{"string", "null"}},
				"school":          bson.M{"bsonType": "string"},
				"subjects_taught": bson.M{"bsonType": "array"},
				"subscriptions":   bson.M{"bsonType": "array"},
				"notifications":   bson.M{"bsonType": "array"},
			},
		},
	}
}

func resourcesSchema() bson.M {
	// Build the enum for the type field from the canonical list in the domain models.
	typeEnum := bson.A{}
	for _, t := range models.ResourceTypes {
		typeEnum = append(typeEnum, t)
	}

	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "title_ci", "author", "status", "type"},
			"properties": bson.M{
				"title":    bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"title_ci": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},

				"author":     bson.M{"bsonType": "string", "minLength": 1},
				"year_group": bson.M{"bsonType": "string"},
				"subject":    bson.M{"bsonType": "string"},
				"curriculum": bson.M{"bsonType": "string"},

				"status": bson.M{"enum": bson.A{models.StatusPending, models.StatusApproved}},

				"type": bson.M{
					"bsonType": "string",
					"enum":     typeEnum,
				},

				"description": bson.M{"bsonType": "string"},
				"tags":        bson.M{"bsonType": "array"},
				"exam_paper":  bson.M{"bsonType": "string"},
				"downloads":   bson.M{"bsonType": bson.A{"int", "long"}},
				"files":       bson.M{"bsonType": "array"},
				"comments":    bson.M{"bsonType": "array"},
			},
		},
	}
}

func forumPostsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "content", "author"},
			"properties": bson.M{
				"title":   bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"content": bson.M{"bsonType": "string", "minLength": 1},
				"author":  bson.M{"bsonType": "string", "minLength": 1},
				"context": bson.M{"bsonType": "string"},
				"replies": bson.M{"bsonType": "array"},
			},
		},
	}
}

func calendarEventsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "date", "type"},
			"properties": bson.M{
				"title": bson.M{"bsonType": "string", "minLength": 1},
				"date":  bson.M{"bsonType": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
				"type":  bson.M{"enum": bson.A{models.EventPD, models.EventDeadline}},

				"resource_id": bson.M{"bsonType": "string"},
			},
		},
	}
}
