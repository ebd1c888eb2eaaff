package record_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/record"
)

func TestParseInputTag(t *testing.T) {
	cases := []struct {
		in      string
		want    record.InputTag
		wantErr bool
	}{
		{in: "generator", want: record.InputTag{Label: "generator"}},
		{in: "generator:unsmeared", want: record.InputTag{Label: "generator", Instance: "unsmeared"}},
		{in: "generator:unsmeared:GEN", want: record.InputTag{Label: "generator", Instance: "unsmeared", Process: "GEN"}},
		{in: " generator ", want: record.InputTag{Label: "generator"}},
		{in: "", wantErr: true},
		{in: ":x", wantErr: true},
		{in: "a:b:c:d", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := record.ParseInputTag(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			again, err := record.ParseInputTag(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

type product struct{ n int }

func TestGet(t *testing.T) {
	ev := record.NewEvent("e1", 0, "SMEAR")
	require.NoError(t, ev.Seed(record.InputTag{Label: "generator", Instance: "unsmeared", Process: "GEN"}, &product{n: 1}))

	p, err := record.Get[*product](ev, record.InputTag{Label: "generator", Instance: "unsmeared"})
	require.NoError(t, err)
	assert.Equal(t, 1, p.n)

	_, err = record.Get[*product](ev, record.InputTag{Label: "generator", Instance: "unsmeared", Process: "GEN"})
	assert.NoError(t, err)

	_, err = record.Get[*product](ev, record.InputTag{Label: "generator", Instance: "unsmeared", Process: "HLT"})
	assert.ErrorIs(t, err, record.ErrProductNotFound)

	_, err = record.Get[*product](ev, record.InputTag{Label: "generator"})
	assert.ErrorIs(t, err, record.ErrProductNotFound)
	var re *record.RetrievalError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "generator", re.Tag.Label)

	_, err = record.Get[string](ev, record.InputTag{Label: "generator", Instance: "unsmeared"})
	assert.ErrorIs(t, err, record.ErrProductType)
}

func TestPut(t *testing.T) {
	ev := record.NewEvent("e1", 2, "SMEAR")
	require.NoError(t, ev.Seed(record.InputTag{Label: "generator"}, &product{n: 1}))
	assert.Empty(t, ev.Outputs(), "seeded inputs are not outputs")

	require.NoError(t, ev.Put("VtxSmeared", "", &product{n: 2}))
	require.NoError(t, ev.Put("VtxSmeared", "vertex", 3.0))

	err := ev.Put("VtxSmeared", "", &product{n: 4})
	assert.ErrorIs(t, err, record.ErrDuplicatePut)

	outs := ev.Outputs()
	require.Len(t, outs, 2)
	assert.Equal(t, record.InputTag{Label: "VtxSmeared", Process: "SMEAR"}, outs[0].Tag)
	assert.Equal(t, "vertex", outs[1].Tag.Instance)

	p, err := record.Get[*product](ev, record.InputTag{Label: "VtxSmeared", Process: "SMEAR"})
	require.NoError(t, err)
	assert.Equal(t, 2, p.n)
}
