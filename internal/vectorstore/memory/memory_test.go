package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage_Search(t *testing.T) {
	req := require.New(t)
	s := NewStorage()
	req.NoError(s.Init(2))
	req.NoError(s.Upsert(
		[]string{"king", "queen", "apple", "zero"},
		[][]float32{{1, 0}, {0.9, 0.1}, {0, 1}, {0, 0}},
	))

	res, err := s.Search([]float32{2, 0}, 2)
	req.NoError(err)
	req.Len(res, 2)
	req.Equal("king", res[0].Word)
	req.InDelta(1.0, res[0].Score, 1e-6)
	req.Equal("queen", res[1].Word)

	all, err := s.Search([]float32{0, 3}, 10)
	req.NoError(err)
	req.Len(all, 4)
	req.Equal("apple", all[0].Word)
	req.Equal("king", all[2].Word, "ties keep insertion order")
	req.Equal("zero", all[3].Word)
}

func TestStorage_Errors(t *testing.T) {
	req := require.New(t)
	s := NewStorage()
	req.Error(s.Init(0))
	req.NoError(s.Init(3))
	req.Error(s.Upsert([]string{"a"}, nil))
	req.Error(s.Upsert([]string{"a"}, [][]float32{{1, 2}}))
	_, err := s.Search([]float32{1, 2}, 1)
	req.Error(err)
}

func TestStorage_Clear(t *testing.T) {
	req := require.New(t)
	s := NewStorage()
	req.NoError(s.Init(1))
	req.NoError(s.Upsert([]string{"a"}, [][]float32{{1}}))
	req.NoError(s.Clear())
	res, err := s.Search([]float32{1}, 5)
	req.NoError(err)
	req.Empty(res)
}

func TestArgsortDesc(t *testing.T) {
	require.Equal(t, []int{1, 3, 0, 2}, argsortDesc([]float64{0.5, 0.9, 0.1, 0.9}))
	require.Empty(t, argsortDesc(nil))
}
