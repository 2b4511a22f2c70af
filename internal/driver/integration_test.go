//go:build integration

package driver_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/core/state"
	"github.com/agenthands/kgraph/internal/driver"
)

func TestPushToMemgraph(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	ctx := context.Background()
	d, err := driver.NewMemgraphDriver(ctx, uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"), nil)
	require.NoError(t, err)
	defer d.Close(ctx)

	suffix := uuid.NewString()
	thoughtID := "thought_it_" + suffix
	conceptID := "concept_it_" + suffix

	st := state.New()
	st.AddNode(model.Node{ID: thoughtID, Label: model.LabelThought, Properties: model.Properties{
		{Key: "title", Value: model.StringValue("integration")},
	}})
	st.AddNode(model.Node{ID: conceptID, Label: model.LabelConcept, Properties: model.Properties{
		{Key: "name", Value: model.StringValue("Integration")},
	}})
	// duplicate log entries must collapse into one relationship
	for i := 0; i < 2; i++ {
		st.AddRelationship(model.Relationship{SourceID: thoughtID, TargetID: conceptID, Type: model.RelMentions})
	}

	exporter := driver.NewExporter(d, nil)
	for i := 0; i < 2; i++ {
		stats, err := exporter.Push(ctx, st)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Nodes)
	}

	res, err := d.ExecuteQuery(ctx, `MATCH (a {id: $src})-[r:MENTIONS]->(b {id: $tgt}) RETURN count(r) AS count`,
		map[string]any{"src": thoughtID, "tgt": conceptID})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	count, _ := res.Records[0].Get("count")
	assert.EqualValues(t, 1, count)

	_, err = d.ExecuteQuery(ctx, `MATCH (n) WHERE n.id IN $ids DETACH DELETE n`, map[string]any{"ids": []string{thoughtID, conceptID}})
	require.NoError(t, err)
}
