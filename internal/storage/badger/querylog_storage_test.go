package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/models"
)

func TestQueryLogStorage_PruneKeepsNewest(t *testing.T) {
	db := openTestDB(t)
	queryLog := NewQueryLogStorage(db, common.GetLogger())

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		queryLog.Record(context.Background(), models.QueryLogEntry{
			Query:     fmt.Sprintf("question %d", i),
			Answer:    "answer",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	deleted, err := queryLog.Prune(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 6, deleted)

	deleted, err = queryLog.Prune(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

func TestQueryLogStorage_PruneOnEmptyLog(t *testing.T) {
	db := openTestDB(t)
	queryLog := NewQueryLogStorage(db, common.GetLogger())

	deleted, err := queryLog.Prune(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}
