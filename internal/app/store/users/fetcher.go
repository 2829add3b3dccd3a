package userstore

import (
	"context"
	"strings"

	"github.com/ycyw/humanitieshub/internal/app/system/auth"
	"github.com/ycyw/humanitieshub/internal/app/system/normalize"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewFetcher returns an auth.UserFetcher that re-loads the user from MongoDB
// on each request, so role changes and revoked approvals take effect
// immediately. A user that no longer exists or is no longer approved resolves
// to nil, which signs the session out.
//
// superAdminEmail, when non-empty, marks the matching account as super-admin
// for authorization checks.
func NewFetcher(db *mongo.Database, superAdminEmail string) auth.UserFetcher {
	users := db.Collection("users")

	return func(ctx context.Context, userID string) (*auth.SessionUser, error) {
		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return nil, nil
		}

		ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
		defer cancel()

		var u models.User
		proj := options.FindOne().SetProjection(bson.M{
			"_id":         1,
			"name":        1,
			"email":       1,
			"role":        1,
			"is_approved": 1,
		})
		if err := users.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&u); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, nil
			}
			return nil, err
		}

		if !u.IsApproved {
			return nil, nil
		}

		return &auth.SessionUser{
			ID:           u.ID.Hex(),
			Name:         u.Name,
			Email:        u.Email,
			Role:         normalize.Role(u.Role),
			IsSuperAdmin: superAdminEmail != "" && strings.EqualFold(u.Email, superAdminEmail),
		}, nil
	}
}
