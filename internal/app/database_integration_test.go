//go:build integration

package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"

	"parcel/internal/app"
	"parcel/internal/config"
	"parcel/internal/domain"
	"parcel/internal/repository"
	"parcel/internal/repository/mongodb"
)

func startMongo(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return uri
}

func TestOpenDatabase_PingsAdmin(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{URI: startMongo(t), Name: "parcelDB", ConnectTimeout: 10 * time.Second}

	db, err := app.OpenDatabase(ctx, cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Disconnect(context.Background()) })

	assert.NoError(t, db.Ping(ctx))
}

func TestDatabase_EnsuresIndexesOnFirstConnect(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{URI: startMongo(t), Name: "parcelDB", ConnectTimeout: 10 * time.Second}

	// Nothing connects until the first repository call.
	db := app.NewDatabase(cfg, nil, zerolog.Nop())
	t.Cleanup(func() { _ = db.Disconnect(context.Background()) })

	users := mongodb.NewUserRepository(db.Collection(mongodb.UsersCollection))
	_, err := users.Create(ctx, domain.Document{"email": "a@x.com"})
	require.NoError(t, err)

	_, err = users.Create(ctx, domain.Document{"email": "a@x.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	client, err := db.Client(ctx)
	require.NoError(t, err)
	cursor, err := client.Database(cfg.Name).Collection(mongodb.UsersCollection).Indexes().List(ctx)
	require.NoError(t, err)
	var indexes []bson.M
	require.NoError(t, cursor.All(ctx, &indexes))

	names := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		names = append(names, idx["name"].(string))
	}
	assert.Contains(t, names, "email_unique")
}
