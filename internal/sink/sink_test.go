package sink_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/config"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/event"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/hepmc"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/record"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/sink"
)

func result(id string) *event.Result {
	return &event.Result{
		EventID:  id,
		Run:      1,
		StreamID: 2,
		Outputs: []record.Output{
			{Tag: record.InputTag{Label: "VtxSmeared", Instance: "vertex"}, Product: hepmc.FourVector{Z: 12.5}},
		},
	}
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestNew(t *testing.T) {
	p, err := sink.New(config.OutputConf{Kind: "none"})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())
	assert.NoError(t, p.Publish(context.Background(), result("e")))

	_, err = sink.New(config.OutputConf{Kind: "kafka"})
	assert.ErrorContains(t, err, "unknown output kind")

	path := filepath.Join(t.TempDir(), "out.jsonl")
	p, err = sink.New(config.OutputConf{Kind: "file", Path: path})
	require.NoError(t, err)
	assert.Equal(t, "file", p.Kind())
	require.NoError(t, p.Close())

	mr := miniredis.RunT(t)
	p, err = sink.New(config.OutputConf{Kind: "redis", RedisAddr: mr.Addr(), RedisKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "redis", p.Kind())
	require.NoError(t, p.Close())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	f, err := sink.NewFile(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, f.Publish(ctx, result("e1")))
	require.NoError(t, f.Publish(ctx, result("e2")))
	require.NoError(t, f.Close())

	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	var ids []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		var r struct {
			EventID string `json:"event_id"`
			Outputs []struct {
				Tag     record.InputTag  `json:"tag"`
				Product hepmc.FourVector `json:"product"`
			} `json:"outputs"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		ids = append(ids, r.EventID)
		require.Len(t, r.Outputs, 1)
		assert.Equal(t, 12.5, r.Outputs[0].Product.Z)
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []string{"e1", "e2"}, ids)
}

func TestFile_BadPath(t *testing.T) {
	_, err := sink.NewFile(filepath.Join(t.TempDir(), "missing", "out.jsonl"))
	assert.ErrorContains(t, err, "open output")
}

func TestRedis(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := sink.NewRedis(client, "vtxsmear:events")
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Publish(ctx, result("e1")))
	require.NoError(t, s.Publish(ctx, result("e2")))

	items, err := mr.List("vtxsmear:events")
	require.NoError(t, err)
	require.Len(t, items, 2)

	var r event.Result
	require.NoError(t, json.Unmarshal([]byte(items[1]), &r))
	assert.Equal(t, "e2", r.EventID)
	assert.Equal(t, 2, r.StreamID)
}

func TestRedis_Down(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	s := sink.NewRedis(client, "k")
	defer s.Close()

	mr.Close()
	assert.ErrorContains(t, s.Publish(context.Background(), result("e1")), "failed to push result e1")
}
