package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMongoStore_Contract(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Skipf("Skipping test: cannot connect to test mongo: %v", err)
	}
	db := client.Database(fmt.Sprintf("locallibrary_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	if err := EnsureMongoIndexes(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	runStoreContract(t, NewMongoStore(db))
}

func TestObjectID(t *testing.T) {
	_, ok := objectID("65f1c0ffee0000000000beef")
	assert.True(t, ok)
	_, ok = objectID("not-an-id")
	assert.False(t, ok)

	_, err := refIDs([]string{"65f1c0ffee0000000000beef", "nope"})
	assert.Error(t, err)
}
